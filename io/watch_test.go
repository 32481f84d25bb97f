package io

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/tabular/math/interpolate"
	"github.com/phil-mansfield/tabular/parse"
)

const (
	lineV1 = "((0 ((0 0) (1 1))) (1 ((0 10) (1 11))))"
	lineV2 = "((0 ((0 0) (1 2))) (1 ((0 20) (1 22))))"
)

func TestWatcherReload(t *testing.T) {
	path := writeFile(t, t.TempDir(), "t.dat", lineV1)
	cfg := &parse.TableConfig{Source: interpolate.Source{FileName: path}}

	w, err := NewWatcher[float64](cfg, scalars)
	require.NoError(t, err)
	defer w.Close()

	old := w.Table()
	v, err := old.Eval(1, 1)
	require.NoError(t, err)
	assert.Equal(t, 11.0, v)

	// Nothing changed.
	ok, err := w.Reload()
	require.NoError(t, err)
	assert.False(t, ok)

	// Invalid contents are never published.
	require.NoError(t, os.WriteFile(path, []byte("((1 ((0 0))) (0 ((0 0))))"), 0o644))
	ok, err = w.Reload()
	assert.ErrorIs(t, err, interpolate.ErrOutOfOrder)
	assert.False(t, ok)
	assert.Same(t, old, w.Table())

	require.NoError(t, os.WriteFile(path, []byte(lineV2), 0o644))
	ok, err = w.Reload()
	require.NoError(t, err)
	assert.True(t, ok)

	v, err = w.Table().Eval(1, 1)
	require.NoError(t, err)
	assert.Equal(t, 22.0, v)
	assert.Same(t, w.Table(), <-w.Reloads())

	// Readers holding the old table are undisturbed.
	v, err = old.Eval(1, 1)
	require.NoError(t, err)
	assert.Equal(t, 11.0, v)
}

func TestWatcherRun(t *testing.T) {
	path := writeFile(t, t.TempDir(), "t.dat", lineV1)
	cfg := &parse.TableConfig{Source: interpolate.Source{FileName: path}}

	w, err := NewWatcher[float64](cfg, scalars)
	require.NoError(t, err)
	defer w.Close()
	w.Delay = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.NoError(t, os.WriteFile(path, []byte(lineV2), 0o644))

	select {
	case tab := <-w.Reloads():
		v, err := tab.Eval(1, 0)
		require.NoError(t, err)
		assert.Equal(t, 20.0, v)
	case <-time.After(5 * time.Second):
		t.Fatal("table was never reloaded")
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

/*package logging owns the diagnostics sink shared by every package. Tables
report out-of-bounds queries and degenerate evaluations through it.*/
package logging

import (
	"fmt"
	"os"
	"runtime"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Flag int

const (
	Nil Flag = iota
	Performance
	Debug
)

// This is handled this way so that the run mode doesn't need to be passed
// to literally every function in the project.
var (
	Mode Flag = Nil

	mu     sync.Mutex
	logger *zap.Logger
)

// New creates a console logger writing to stderr. Nil mode only reports
// warnings and errors, Performance mode adds info messages, and Debug mode
// reports everything.
func New(mode Flag) *zap.Logger {
	level := zapcore.WarnLevel
	switch mode {
	case Performance:
		level = zapcore.InfoLevel
	case Debug:
		level = zapcore.DebugLevel
	}

	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(cfg), zapcore.Lock(os.Stderr), level,
	)
	return zap.New(core)
}

// L returns the process logger, creating it from Mode on first use.
func L() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		logger = New(Mode)
	}
	return logger
}

// SetLogger replaces the process logger and returns the previous one.
func SetLogger(l *zap.Logger) *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	prev := logger
	logger = l
	return prev
}

// MemString returns a string containing various statistics on the current
// memory usage of the process.
func MemString() string {
	ms := runtime.MemStats{}
	runtime.ReadMemStats(&ms)
	return fmt.Sprintf(
		"Alloc - %d MB; Sys - %d MB Integrated - %d MB",
		ms.Alloc>>20, ms.Sys>>20, ms.TotalAlloc>>20,
	)
}

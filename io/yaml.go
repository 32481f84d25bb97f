package io

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/phil-mansfield/tabular/math/interpolate"
	"github.com/phil-mansfield/tabular/math/mat"
	"github.com/phil-mansfield/tabular/version"
)

// YAMLReader reads tables stored as YAML documents:
//
//	version: 1.1.0
//	fileName: cp.yaml
//	outOfBounds: warn
//	rows:
//	  - x: 300
//	    cols:
//	      - [100000, 1005]
//	      - [200000, 1010]
//
// Each column is its y value followed by the components of its value. The
// version is that of the code which wrote the file.
type YAMLReader struct{}

type yamlTable struct {
	Version     string    `yaml:"version,omitempty"`
	FileName    string    `yaml:"fileName,omitempty"`
	OutOfBounds string    `yaml:"outOfBounds,omitempty"`
	Rows        []yamlRow `yaml:"rows"`
}

type yamlRow struct {
	X    float64   `yaml:"x"`
	Cols []yamlCol `yaml:"cols"`
}

type yamlCol []float64

// MarshalYAML writes columns on a single line.
func (c yamlCol) MarshalYAML() (interface{}, error) {
	n := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, x := range c {
		n.Content = append(n.Content, &yaml.Node{
			Kind: yaml.ScalarNode, Value: formatFloat(x),
		})
	}
	return n, nil
}

// ReadTable reads a YAML table.
func (r *YAMLReader) ReadTable(rd io.Reader) (*RawTable, error) {
	dec := yaml.NewDecoder(rd)
	dec.KnownFields(true)

	yt := &yamlTable{}
	if err := dec.Decode(yt); err != nil && err != io.EOF {
		return nil, err
	}

	if yt.Version != "" {
		if err := version.Readable(yt.Version); err != nil {
			return nil, err
		}
	}

	raw := &RawTable{Header: map[string]interface{}{}}
	if yt.FileName != "" {
		raw.Header["fileName"] = yt.FileName
	}
	if yt.OutOfBounds != "" {
		raw.Header["outOfBounds"] = yt.OutOfBounds
	}

	raw.Rows = make([]RawRow, len(yt.Rows))
	for i, row := range yt.Rows {
		raw.Rows[i].X = row.X
		raw.Rows[i].Cols = make([]RawColumn, len(row.Cols))
		for j, col := range row.Cols {
			if len(col) < 2 {
				return nil, fmt.Errorf(
					"Column %d of row %d (x = %g) has %d entries, but I "+
						"need at least two (y and a value).",
					j, i, row.X, len(col),
				)
			}
			raw.Rows[i].Cols[j] = RawColumn{Y: col[0], Val: col[1:]}
		}
	}

	return raw, nil
}

// WriteYAML writes t in the format read by YAMLReader.
func WriteYAML[T any](
	wr io.Writer, t *interpolate.Table[T], space mat.Space[T],
) error {
	raw := Encode(t, space)
	yt := &yamlTable{
		Version:     version.SourceVersion,
		FileName:    t.Source().FileName,
		OutOfBounds: t.Bounds().String(),
		Rows:        make([]yamlRow, len(raw.Rows)),
	}
	for i, row := range raw.Rows {
		yt.Rows[i].X = row.X
		yt.Rows[i].Cols = make([]yamlCol, len(row.Cols))
		for j, col := range row.Cols {
			yt.Rows[i].Cols[j] = append(yamlCol{col.Y}, col.Val...)
		}
	}

	enc := yaml.NewEncoder(wr)
	enc.SetIndent(2)
	if err := enc.Encode(yt); err != nil {
		return err
	}
	return enc.Close()
}

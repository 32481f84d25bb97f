package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gonum/matrix/mat64"

	"github.com/phil-mansfield/tabular/math/mat"
)

// Spaces holds one version of a mode for each value type. Go doesn't have
// generic methods, so the modes are written as generic functions which
// return these.
type Spaces struct {
	Scalar func(mat.Space[float64]) error
	Vector func(mat.Space[[]float64]) error
	Tensor func(mat.Space[*mat64.Dense]) error
}

// run calls the version of a mode which matches the --type flag.
func (config *GlobalConfig) run(s Spaces) error {
	switch config.ValueType {
	case "scalar":
		return s.Scalar(mat.Scalars{})
	case "vector":
		if config.Dim <= 0 {
			return fmt.Errorf(
				"The --dim flag is set to %d, but vectors need at least "+
					"one component.", config.Dim,
			)
		}
		return s.Vector(mat.Vectors{Dim: config.Dim})
	case "tensor":
		rows, cols, err := parseShape(config.Shape)
		if err != nil {
			return err
		}
		return s.Tensor(mat.Tensors{Rows: rows, Cols: cols})
	}
	return fmt.Errorf(
		"The --type flag is set to '%s', which I don't recognize.",
		config.ValueType,
	)
}

func parseShape(shape string) (rows, cols int, err error) {
	toks := strings.Split(strings.ToLower(shape), "x")
	if len(toks) == 2 {
		r, err1 := strconv.Atoi(toks[0])
		c, err2 := strconv.Atoi(toks[1])
		if err1 == nil && err2 == nil && r > 0 && c > 0 {
			return r, c, nil
		}
	}
	return 0, 0, fmt.Errorf(
		"The --shape flag is set to '%s', but it should look like '3x3'.",
		shape,
	)
}

// readLines reads rd and splits it into lines, dropping blank lines and
// '#' comments.
func readLines(rd io.Reader) ([]string, error) {
	bs, err := io.ReadAll(rd)
	if err != nil {
		return nil, fmt.Errorf("Error reading stdin: %s.", err.Error())
	}

	var lines []string
	for _, line := range strings.Split(string(bs), "\n") {
		if i := strings.Index(line, "#"); i >= 0 {
			line = line[:i]
		}
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

// parsePoints parses lines of whitespace-separated x y pairs.
func parsePoints(lines []string) (xs, ys []float64, err error) {
	for i, line := range lines {
		toks := strings.Fields(line)
		if len(toks) != 2 {
			return nil, nil, fmt.Errorf(
				"Line %d of the input, '%s', should have two values, x and "+
					"y, but it has %d.", i+1, line, len(toks),
			)
		}
		x, err1 := strconv.ParseFloat(toks[0], 64)
		y, err2 := strconv.ParseFloat(toks[1], 64)
		if err1 != nil || err2 != nil {
			return nil, nil, fmt.Errorf(
				"I could not parse line %d of the input, '%s', as a pair "+
					"of numbers.", i+1, line,
			)
		}
		xs, ys = append(xs, x), append(ys, y)
	}
	return xs, ys, nil
}

// argPoints parses points given on the command line as x,y.
func argPoints(args []string) (xs, ys []float64, err error) {
	lines := make([]string, len(args))
	for i := range args {
		lines[i] = strings.Replace(args[i], ",", " ", 1)
	}
	return parsePoints(lines)
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

// formatValue writes the components of v separated by spaces.
func formatValue[T any](space mat.Space[T], v T) string {
	comps := space.Components(v)
	toks := make([]string, len(comps))
	for i := range comps {
		toks[i] = formatFloat(comps[i])
	}
	return strings.Join(toks, " ")
}

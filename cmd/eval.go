package cmd

import (
	"fmt"
	"io"

	"github.com/gonum/matrix/mat64"
	"github.com/spf13/cobra"

	tio "github.com/phil-mansfield/tabular/io"
	"github.com/phil-mansfield/tabular/math/mat"
	"github.com/phil-mansfield/tabular/parse"
)

// NewEvalCommand creates the eval mode.
func NewEvalCommand(config *GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "eval TABLE [x,y ...]",
		Short: "Evaluate a table at a list of points",
		Long: `eval evaluates TABLE at each of the given x,y points. If no points are
given, they're read from stdin as lines of "x y" pairs. Each output line is
x, y, and the components of the value.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.evalMode(cmd, args, false)
		},
	}
}

// NewDerivCommand creates the deriv mode.
func NewDerivCommand(config *GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "deriv TABLE [x,y ...]",
		Short: "Differentiate a table along x at a list of points",
		Long: `deriv estimates the derivative of TABLE along its first (x) axis at
each of the given x,y points. Points are read exactly as they are by eval.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.evalMode(cmd, args, true)
		},
	}
}

func (config *GlobalConfig) evalMode(
	cmd *cobra.Command, args []string, deriv bool,
) error {
	var xs, ys []float64
	var err error
	if len(args) > 1 {
		xs, ys, err = argPoints(args[1:])
	} else {
		var lines []string
		if lines, err = readLines(cmd.InOrStdin()); err == nil {
			xs, ys, err = parsePoints(lines)
		}
	}
	if err != nil {
		return err
	}

	cfg, err := config.TableConfig(args[0])
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	return config.run(Spaces{
		Scalar: evalPoints[float64](w, cfg, xs, ys, deriv),
		Vector: evalPoints[[]float64](w, cfg, xs, ys, deriv),
		Tensor: evalPoints[*mat64.Dense](w, cfg, xs, ys, deriv),
	})
}

func evalPoints[T any](
	w io.Writer, cfg *parse.TableConfig, xs, ys []float64, deriv bool,
) func(mat.Space[T]) error {
	return func(space mat.Space[T]) error {
		t, err := tio.Load(cfg, space)
		if err != nil {
			return err
		}

		f := t.Eval
		if deriv {
			f = t.DerivX
		}
		for i := range xs {
			v, err := f(xs[i], ys[i])
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s %s %s\n",
				formatFloat(xs[i]), formatFloat(ys[i]), formatValue(space, v))
		}
		return nil
	}
}

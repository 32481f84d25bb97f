package cmd

import (
	"fmt"
	"io"

	"github.com/gonum/matrix/mat64"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	tio "github.com/phil-mansfield/tabular/io"
	"github.com/phil-mansfield/tabular/math/interpolate"
	"github.com/phil-mansfield/tabular/math/mat"
	"github.com/phil-mansfield/tabular/math/rand"
	"github.com/phil-mansfield/tabular/math/stats"
	"github.com/phil-mansfield/tabular/parse"
)

// SampleConfig holds the flags of the sample mode.
type SampleConfig struct {
	N       int
	Random  bool
	Seed    uint64
	Summary bool
}

// NewSampleCommand creates the sample mode.
func NewSampleCommand(config *GlobalConfig) *cobra.Command {
	sc := &SampleConfig{}
	cmd := &cobra.Command{
		Use:   "sample TABLE",
		Short: "Evaluate a table at points spread over its domain",
		Long: `sample evaluates TABLE at -n points spread over the rectangle spanned by
its row keys and all of its column keys. Points come from a Sobol sequence
unless --random is set. Points between rows with narrower columns are
extrapolated regardless of --bounds. Output lines look like eval's.

With --summary, one line is printed per value component instead, giving the
minimum, 5th percentile, median, 95th percentile, and maximum of that
component over the sampled points.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if sc.N <= 0 {
				return fmt.Errorf("The --points flag is set to %d, but it must be "+
					"positive.", sc.N)
			}
			cfg, err := config.TableConfig(args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			return config.run(Spaces{
				Scalar: sampleSpace[float64](w, cfg, sc),
				Vector: sampleSpace[[]float64](w, cfg, sc),
				Tensor: sampleSpace[*mat64.Dense](w, cfg, sc),
			})
		},
	}

	sc.AddFlags(cmd.Flags())
	return cmd
}

// AddFlags registers the sample flags on flags.
func (sc *SampleConfig) AddFlags(flags *pflag.FlagSet) {
	flags.IntVarP(&sc.N, "points", "n", 100, "Number of points")
	flags.BoolVar(&sc.Random, "random", false,
		"Use pseudo random points instead of a Sobol sequence")
	flags.Uint64Var(&sc.Seed, "seed", 0,
		"Seed for --random; the current time is used if it's zero")
	flags.BoolVar(&sc.Summary, "summary", false,
		"Print order statistics of each component instead of every point")
}

// samplePoints returns n points in the unit square.
func (sc *SampleConfig) samplePoints() (us, vs []float64, err error) {
	us, vs = make([]float64, sc.N), make([]float64, sc.N)
	if sc.Random {
		gen := rand.NewTimeSeed()
		if sc.Seed != 0 {
			gen = rand.New(sc.Seed)
		}
		gen.UniformAt(0, 1, us)
		gen.UniformAt(0, 1, vs)
		return us, vs, nil
	}

	seq := rand.NewSobolSequence()
	p := make([]float64, 2)
	for i := range us {
		if err := seq.NextAt(p); err != nil {
			return nil, nil, err
		}
		us[i], vs[i] = p[0], p[1]
	}
	return us, vs, nil
}

// domain returns the smallest rectangle containing every key of t.
func domain[T any](t *interpolate.Table[T]) (x0, x1, y0, y1 float64) {
	rows := t.Rows()
	x0, x1 = rows[0].X, rows[len(rows)-1].X
	y0, y1 = rows[0].Cols[0].Y, rows[0].Cols[len(rows[0].Cols)-1].Y
	for _, row := range rows[1:] {
		if lo := row.Cols[0].Y; lo < y0 {
			y0 = lo
		}
		if hi := row.Cols[len(row.Cols)-1].Y; hi > y1 {
			y1 = hi
		}
	}
	return x0, x1, y0, y1
}

func sampleSpace[T any](
	w io.Writer, cfg *parse.TableConfig, sc *SampleConfig,
) func(mat.Space[T]) error {
	return func(space mat.Space[T]) error {
		t, err := tio.Load(cfg, space)
		if err != nil {
			return err
		}
		us, vs, err := sc.samplePoints()
		if err != nil {
			return err
		}

		x0, x1, y0, y1 := domain(t)
		xs, ys := make([]float64, len(us)), make([]float64, len(vs))
		for i := range us {
			xs[i] = x0 + us[i]*(x1-x0)
			ys[i] = y0 + vs[i]*(y1-y0)
		}

		return t.WithBounds(interpolate.BoundsExtrapolate, func(
			t *interpolate.Table[T],
		) error {
			vals, err := t.EvalAll(xs, ys)
			if err != nil {
				return err
			}
			if sc.Summary {
				return summarize(w, space, vals)
			}
			for i := range vals {
				fmt.Fprintf(w, "%s %s %s\n", formatFloat(xs[i]),
					formatFloat(ys[i]), formatValue(space, vals[i]))
			}
			return nil
		})
	}
}

// summarize writes the order statistics of each component of vals.
func summarize[T any](w io.Writer, space mat.Space[T], vals []T) error {
	var comps [][]float64
	for i := range vals {
		c := space.Components(vals[i])
		if comps == nil {
			comps = make([][]float64, len(c))
		}
		for j := range c {
			comps[j] = append(comps[j], c[j])
		}
	}

	for j := range comps {
		s := stats.Summarize(comps[j])
		fmt.Fprintf(w, "component %d: min %s, 5%% %s, median %s, "+
			"95%% %s, max %s\n", j, formatFloat(s.Min), formatFloat(s.Lo),
			formatFloat(s.Median), formatFloat(s.Hi), formatFloat(s.Max))
	}
	return nil
}

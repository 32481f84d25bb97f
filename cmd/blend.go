package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/gonum/matrix/mat64"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	tio "github.com/phil-mansfield/tabular/io"
	"github.com/phil-mansfield/tabular/logging"
	"github.com/phil-mansfield/tabular/math/interpolate"
	"github.com/phil-mansfield/tabular/math/mat"
	"github.com/phil-mansfield/tabular/parse"
)

// NewBlendCommand creates the blend mode.
func NewBlendCommand(config *GlobalConfig) *cobra.Command {
	out := &OutputConfig{}
	var weights []float64
	var fileName string

	cmd := &cobra.Command{
		Use:   "blend TABLE ...",
		Short: "Write the weighted sum of several tables",
		Long: `blend computes the weighted sum of the given tables, e.g. the property
table of a mixture from the tables of its components and their mass fractions.
All the tables must share the same grid. Weights default to an even split.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.validate(); err != nil {
				return err
			}
			if len(weights) == 0 {
				for range args {
					weights = append(weights, 1/float64(len(args)))
				}
			} else if len(weights) != len(args) {
				return fmt.Errorf(
					"I was given %d weights, but %d tables.",
					len(weights), len(args),
				)
			}

			cfgs := make([]*parse.TableConfig, len(args))
			for i := range args {
				var err error
				if cfgs[i], err = config.TableConfig(args[i]); err != nil {
					return err
				}
			}

			w := cmd.OutOrStdout()
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return config.run(Spaces{
				Scalar: blendSpace[float64](ctx, w, cfgs, weights, fileName, out),
				Vector: blendSpace[[]float64](ctx, w, cfgs, weights, fileName, out),
				Tensor: blendSpace[*mat64.Dense](ctx, w, cfgs, weights, fileName, out),
			})
		},
	}
	cmd.Flags().Float64SliceVarP(&weights, "weights", "w", nil,
		"Weight of each table")
	cmd.Flags().StringVar(&fileName, "name", "",
		"fileName written into the output table")
	out.AddFlags(cmd.Flags())
	return cmd
}

// loadAll loads every table concurrently.
func loadAll[T any](
	ctx context.Context, cfgs []*parse.TableConfig, space mat.Space[T],
) ([]*interpolate.Table[T], error) {
	tables := make([]*interpolate.Table[T], len(cfgs))
	g, ctx := errgroup.WithContext(ctx)
	for i := range cfgs {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			t, err := tio.Load(cfgs[i], space)
			if err != nil {
				return err
			}
			tables[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tables, nil
}

func blendSpace[T any](
	ctx context.Context, w io.Writer, cfgs []*parse.TableConfig,
	weights []float64, fileName string, out *OutputConfig,
) func(mat.Space[T]) error {
	return func(space mat.Space[T]) error {
		tables, err := loadAll(ctx, cfgs, space)
		if err != nil {
			return err
		}

		mix, err := interpolate.Mix(weights, tables)
		if err != nil {
			return err
		}
		logging.L().Info("blended tables",
			zap.Int("tables", len(tables)), zap.Float64s("weights", weights))

		if fileName != "" {
			src := mix.Source()
			src.FileName = fileName
			rows := mix.Rows()
			mix, err = interpolate.New[T](space, rows,
				interpolate.WithSource(src), interpolate.WithBounds(mix.Bounds()))
			if err != nil {
				return err
			}
		}
		return writeTable(w, out, mix, space)
	}
}

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/gonum/matrix/mat64"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	tio "github.com/phil-mansfield/tabular/io"
	"github.com/phil-mansfield/tabular/math/interpolate"
	"github.com/phil-mansfield/tabular/math/mat"
	"github.com/phil-mansfield/tabular/parse"
)

// NewWatchCommand creates the watch mode.
func NewWatchCommand(config *GlobalConfig) *cobra.Command {
	var at []string
	cmd := &cobra.Command{
		Use:   "watch TABLE",
		Short: "Reload a table whenever its file changes",
		Long: `watch loads TABLE and reloads it every time its file is written. A line
is printed for each valid reload, along with the value of the table at every
--at point. Invalid versions of the file are reported and skipped. watch runs
until it's interrupted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			xs, ys, err := argPoints(at)
			if err != nil {
				return err
			}
			cfg, err := config.TableConfig(args[0])
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
			defer stop()

			w := cmd.OutOrStdout()
			return config.run(Spaces{
				Scalar: watchSpace[float64](ctx, w, cfg, xs, ys),
				Vector: watchSpace[[]float64](ctx, w, cfg, xs, ys),
				Tensor: watchSpace[*mat64.Dense](ctx, w, cfg, xs, ys),
			})
		},
	}
	cmd.Flags().StringSliceVar(&at, "at", nil,
		"x,y points to evaluate after each reload")
	return cmd
}

func watchSpace[T any](
	ctx context.Context, w io.Writer, cfg *parse.TableConfig, xs, ys []float64,
) func(mat.Space[T]) error {
	return func(space mat.Space[T]) error {
		watcher, err := tio.NewWatcher(cfg, space)
		if err != nil {
			return err
		}
		defer watcher.Close()

		report := func(t *interpolate.Table[T]) {
			fmt.Fprintf(w, "%s: %d rows, fingerprint %016x\n",
				cfg.Source.FileName, t.Len(), tio.Fingerprint(t, space))
			for i := range xs {
				v, err := t.Eval(xs[i], ys[i])
				if err != nil {
					fmt.Fprintf(w, "    %s %s: %s\n",
						formatFloat(xs[i]), formatFloat(ys[i]), err.Error())
					continue
				}
				fmt.Fprintf(w, "    %s %s %s\n",
					formatFloat(xs[i]), formatFloat(ys[i]), formatValue(space, v))
			}
		}
		report(watcher.Table())

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error { return watcher.Run(ctx) })
		g.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return nil
				case t := <-watcher.Reloads():
					report(t)
				}
			}
		})

		if err := g.Wait(); err != nil && err != context.Canceled {
			return err
		}
		return nil
	}
}

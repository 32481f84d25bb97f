package cmd

import (
	"fmt"
	"io"

	"github.com/gonum/matrix/mat64"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	tio "github.com/phil-mansfield/tabular/io"
	"github.com/phil-mansfield/tabular/logging"
	"github.com/phil-mansfield/tabular/math/mat"
	"github.com/phil-mansfield/tabular/parse"
)

// NewCheckCommand creates the check mode.
func NewCheckCommand(config *GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "check TABLE ...",
		Short: "Check that tables can be loaded",
		Long: `check loads each TABLE and reports its size, its domain, and a
fingerprint of its contents. Tables with equal contents have equal
fingerprints. check fails if any table couldn't be loaded.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			failed := 0
			for _, arg := range args {
				err := config.checkTable(w, arg)
				if err != nil {
					failed++
					fmt.Fprintf(w, "%s: FAILED: %s\n", arg, err.Error())
					logging.L().Debug("check failed",
						zap.String("fileName", arg), zap.Error(err))
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d tables failed.", failed, len(args))
			}
			return nil
		},
	}
}

func (config *GlobalConfig) checkTable(w io.Writer, path string) error {
	cfg, err := config.TableConfig(path)
	if err != nil {
		return err
	}

	return config.run(Spaces{
		Scalar: checkSpace[float64](w, path, cfg),
		Vector: checkSpace[[]float64](w, path, cfg),
		Tensor: checkSpace[*mat64.Dense](w, path, cfg),
	})
}

func checkSpace[T any](
	w io.Writer, name string, cfg *parse.TableConfig,
) func(mat.Space[T]) error {
	return func(space mat.Space[T]) error {
		t, err := tio.Load(cfg, space)
		if err != nil {
			return err
		}

		rows := t.Rows()
		minCols, maxCols := len(rows[0].Cols), len(rows[0].Cols)
		for _, row := range rows {
			minCols = min(minCols, len(row.Cols))
			maxCols = max(maxCols, len(row.Cols))
		}

		fmt.Fprintf(w,
			"%s: OK, %d rows, %d-%d columns per row, x in [%s, %s], "+
				"fingerprint %016x\n",
			name, len(rows), minCols, maxCols,
			formatFloat(rows[0].X), formatFloat(rows[len(rows)-1].X),
			tio.Fingerprint(t, space),
		)
		return nil
	}
}

package cmd

import (
	"fmt"
	"io"

	"github.com/gonum/matrix/mat64"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	tio "github.com/phil-mansfield/tabular/io"
	"github.com/phil-mansfield/tabular/math/mat"
	"github.com/phil-mansfield/tabular/parse"
)

// NewShowCommand creates the show mode.
func NewShowCommand(config *GlobalConfig) *cobra.Command {
	format := "text"
	cmd := &cobra.Command{
		Use:   "show TABLE",
		Short: "Print the entries of a table",
		Long: `show prints every entry of TABLE, one line per (x, y) pair, in load
order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case "text", "markdown", "md", "csv":
			default:
				return fmt.Errorf(
					"The --format flag is set to '%s', which I don't "+
						"recognize.", format,
				)
			}

			cfg, err := config.TableConfig(args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			return config.run(Spaces{
				Scalar: showSpace[float64](w, cfg, format),
				Vector: showSpace[[]float64](w, cfg, format),
				Tensor: showSpace[*mat64.Dense](w, cfg, format),
			})
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", format,
		"Output format (text|markdown|csv)")
	return cmd
}

func showSpace[T any](
	w io.Writer, cfg *parse.TableConfig, format string,
) func(mat.Space[T]) error {
	return func(space mat.Space[T]) error {
		t, err := tio.Load(cfg, space)
		if err != nil {
			return err
		}
		raw := tio.Encode(t, space)

		nv := len(raw.Rows[0].Cols[0].Val)
		header := table.Row{"x", "y"}
		if nv == 1 {
			header = append(header, "value")
		} else {
			for i := 0; i < nv; i++ {
				header = append(header, fmt.Sprintf("value[%d]", i))
			}
		}

		tw := table.NewWriter()
		tw.SetOutputMirror(w)
		tw.SetStyle(table.StyleLight)
		tw.SetTitle(cfg.Source.FileName)
		tw.AppendHeader(header)
		for _, row := range raw.Rows {
			for _, col := range row.Cols {
				r := table.Row{row.X, col.Y}
				for _, v := range col.Val {
					r = append(r, v)
				}
				tw.AppendRow(r)
			}
			tw.AppendSeparator()
		}
		tw.AppendFooter(table.Row{
			fmt.Sprintf("%d rows", len(raw.Rows)), t.Bounds().String(),
		})

		switch format {
		case "markdown", "md":
			tw.RenderMarkdown()
		case "csv":
			tw.RenderCSV()
		default:
			tw.Render()
		}
		return nil
	}
}

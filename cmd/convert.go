package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/gonum/matrix/mat64"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	tio "github.com/phil-mansfield/tabular/io"
	"github.com/phil-mansfield/tabular/math/interpolate"
	"github.com/phil-mansfield/tabular/math/mat"
	"github.com/phil-mansfield/tabular/parse"
)

// OutputConfig describes where and how a mode writes a table.
type OutputConfig struct {
	Format string
	File   string
	Header bool
}

// AddFlags registers the output flags on fs.
func (out *OutputConfig) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&out.Format, "to", parse.OpenFoam,
		"Output format (openFoam|yaml|csv)")
	fs.StringVarP(&out.File, "output", "o", "",
		"Output file (default: stdout)")
	fs.BoolVar(&out.Header, "write-header", true,
		"Write a header line in csv output")
}

func (out *OutputConfig) validate() error {
	switch out.Format {
	case parse.OpenFoam, parse.YAML, parse.CSV:
		return nil
	}
	return fmt.Errorf(
		"The --to flag is set to '%s', but the only formats I can write "+
			"are '%s', '%s', and '%s'.",
		out.Format, parse.OpenFoam, parse.YAML, parse.CSV,
	)
}

// open returns the output stream and a function which closes it.
func (out *OutputConfig) open(stdout io.Writer) (io.Writer, func() error, error) {
	if out.File == "" {
		return stdout, func() error { return nil }, nil
	}
	f, err := os.Create(out.File)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func writeTable[T any](
	stdout io.Writer, out *OutputConfig, t *interpolate.Table[T], space mat.Space[T],
) error {
	w, closer, err := out.open(stdout)
	if err != nil {
		return err
	}

	switch out.Format {
	case parse.YAML:
		err = tio.WriteYAML(w, t, space)
	case parse.CSV:
		err = tio.WriteCSV(w, t, space, out.Header)
	default:
		err = tio.WriteDict(w, t, space)
	}

	if cerr := closer(); err == nil {
		err = cerr
	}
	return err
}

// NewConvertCommand creates the convert mode.
func NewConvertCommand(config *GlobalConfig) *cobra.Command {
	out := &OutputConfig{}
	cmd := &cobra.Command{
		Use:   "convert TABLE",
		Short: "Convert a table to another format",
		Long: `convert reads TABLE and writes it back out in the format given by --to.
Rows and columns are written in load order, so converting a table back to its
original format reproduces the same table.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := out.validate(); err != nil {
				return err
			}
			cfg, err := config.TableConfig(args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			return config.run(Spaces{
				Scalar: convertSpace[float64](w, cfg, out),
				Vector: convertSpace[[]float64](w, cfg, out),
				Tensor: convertSpace[*mat64.Dense](w, cfg, out),
			})
		},
	}
	out.AddFlags(cmd.Flags())
	return cmd
}

func convertSpace[T any](
	w io.Writer, cfg *parse.TableConfig, out *OutputConfig,
) func(mat.Space[T]) error {
	return func(space mat.Space[T]) error {
		t, err := tio.Load(cfg, space)
		if err != nil {
			return err
		}
		return writeTable(w, out, t, space)
	}
}

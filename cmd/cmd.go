/*package cmd contains code for running tabular in its various command line
modes. Every mode reads a single table (or, for blend, several tables) and
writes lines of text to stdout.*/
package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/phil-mansfield/tabular/logging"
	"github.com/phil-mansfield/tabular/parse"
	"github.com/phil-mansfield/tabular/version"
)

// GlobalConfig holds the flags shared by every mode.
type GlobalConfig struct {
	Mode string

	// ValueType is one of "scalar", "vector", or "tensor".
	ValueType string
	Dim       int
	Shape     string

	// Dict is true if tables are named by dictionary files rather than
	// directly.
	Dict          bool
	ReaderType    string
	HasHeaderLine bool
	OutOfBounds   string

	flags *pflag.FlagSet
}

// NewRootCmd creates the tabular command and all its modes.
func NewRootCmd() *cobra.Command {
	config := &GlobalConfig{}

	root := &cobra.Command{
		Use:   "tabular",
		Short: "Inspect and evaluate two dimensional property tables",
		Long: `tabular reads the 2D lookup tables used for thermophysical properties,
evaluates and differentiates them, checks them for errors, and converts them
between formats.

Tables can be named directly, or through a dictionary file (--dict) which
sets fileName, outOfBounds, readerType, and hasHeaderLine. Environment
variables (TABULAR_OUTOFBOUNDS, TABULAR_READERTYPE, ...) override the
dictionary, and --bounds, --reader, and --header override both when set.`,
		Version: version.SourceVersion,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			config.flags = cmd.Flags()
			return config.initLogging()
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if logging.Mode == logging.Debug {
				logging.L().Debug(logging.MemString())
			}
			_ = logging.L().Sync()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate("tabular version {{.Version}}\n")

	flags := root.PersistentFlags()
	flags.StringVar(&config.Mode, "mode", "nil",
		"Logging mode (nil|performance|debug)")
	flags.StringVarP(&config.ValueType, "type", "t", "scalar",
		"Type of the table's values (scalar|vector|tensor)")
	flags.IntVar(&config.Dim, "dim", 3, "Length of vector values")
	flags.StringVar(&config.Shape, "shape", "3x3", "Shape of tensor values")
	flags.BoolVarP(&config.Dict, "dict", "d", false,
		"Tables are named by dictionary files")
	flags.StringVarP(&config.ReaderType, "reader", "r", "",
		"Table format (openFoam|csv|yaml); guessed from the file extension by default")
	flags.BoolVar(&config.HasHeaderLine, "header", false,
		"csv tables start with a header line")
	flags.StringVarP(&config.OutOfBounds, "bounds", "b", "warn",
		"Out of bounds handling (error|warn|extrapolate)")

	_ = root.RegisterFlagCompletionFunc("type", func(
		_ *cobra.Command, _ []string, _ string,
	) ([]string, cobra.ShellCompDirective) {
		return []string{"scalar", "vector", "tensor"}, cobra.ShellCompDirectiveNoFileComp
	})

	root.AddCommand(
		NewEvalCommand(config),
		NewDerivCommand(config),
		NewSampleCommand(config),
		NewCheckCommand(config),
		NewShowCommand(config),
		NewBlendCommand(config),
		NewConvertCommand(config),
		NewWatchCommand(config),
		NewExampleCommand(),
		NewVersionCommand(),
	)
	return root
}

func (config *GlobalConfig) initLogging() error {
	switch strings.ToLower(config.Mode) {
	case "nil", "":
		logging.Mode = logging.Nil
	case "performance":
		logging.Mode = logging.Performance
	case "debug":
		logging.Mode = logging.Debug
	default:
		return fmt.Errorf(
			"The --mode flag is set to '%s', which I don't recognize.",
			config.Mode,
		)
	}
	logging.SetLogger(logging.New(logging.Mode))
	return nil
}

// TableConfig returns the configuration of the table named by path.
func (config *GlobalConfig) TableConfig(path string) (*parse.TableConfig, error) {
	log := logging.L()
	layers := []parse.Layer{parse.FromEnv(), parse.FromFlags(config.flags)}
	if config.Dict {
		return parse.ReadTableConfigFile(path, log, layers...)
	}

	readerType := config.ReaderType
	if readerType == "" {
		readerType = guessReaderType(path)
	}
	log.Debug("reading table", zap.String("fileName", path),
		zap.String("readerType", readerType))

	return parse.TableConfigFromMap(map[string]interface{}{
		parse.FileNameKey:   path,
		parse.ReaderTypeKey: readerType,
	}, log, layers...)
}

func guessReaderType(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return parse.CSV
	case ".yaml", ".yml":
		return parse.YAML
	}
	return parse.DefaultReaderType
}

/*package parse reads the dictionaries which describe where a table lives
and how it should be evaluated.*/
package parse

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/phil-mansfield/tabular/logging"
	"github.com/phil-mansfield/tabular/math/interpolate"
)

// Dictionary keys.
const (
	FileNameKey      = "fileName"
	OutOfBoundsKey   = "outOfBounds"
	ReaderTypeKey    = "readerType"
	HasHeaderLineKey = "hasHeaderLine"
)

// Reader types.
const (
	OpenFoam = "openFoam"
	CSV      = "csv"
	YAML     = "yaml"
)

// DefaultReaderType is used when a dictionary doesn't name a reader.
const DefaultReaderType = OpenFoam

// EnvPrefix starts the names of environment variables which override
// dictionary keys, e.g. TABULAR_OUTOFBOUNDS=error.
const EnvPrefix = "TABULAR_"

// FlagKeys maps command line flags onto the dictionary keys they override.
var FlagKeys = map[string]string{
	"bounds": OutOfBoundsKey,
	"reader": ReaderTypeKey,
	"header": HasHeaderLineKey,
}

var envKeys = map[string]string{
	"FILENAME":      FileNameKey,
	"OUTOFBOUNDS":   OutOfBoundsKey,
	"READERTYPE":    ReaderTypeKey,
	"HASHEADERLINE": HasHeaderLineKey,
}

// Layer loads values on top of a dictionary.
type Layer func(k *koanf.Koanf) error

// FromEnv overrides dictionary keys with EnvPrefix environment variables.
// Variables which don't name a key are ignored.
func FromEnv() Layer {
	return func(k *koanf.Koanf) error {
		return k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
			return envKeys[strings.ToUpper(strings.TrimPrefix(s, EnvPrefix))]
		}), nil)
	}
}

// FromFlags overrides dictionary keys with the flags in FlagKeys which were
// set on fs. Flags left at their defaults don't override anything.
func FromFlags(fs *pflag.FlagSet) Layer {
	return func(k *koanf.Koanf) error {
		if fs == nil {
			return nil
		}
		return k.Load(posflag.ProviderWithFlag(fs, ".", k,
			func(f *pflag.Flag) (string, interface{}) {
				key, ok := FlagKeys[f.Name]
				if !ok || !f.Changed {
					return "", nil
				}
				return key, posflag.FlagVal(fs, f)
			}), nil)
	}
}

func applyLayers(k *koanf.Koanf, layers []Layer) error {
	for _, layer := range layers {
		if err := layer(k); err != nil {
			return fmt.Errorf("I could not load the table dictionary "+
				"overrides: %w", err)
		}
	}
	return nil
}

// TableConfig is the contents of a table dictionary.
type TableConfig struct {
	Source interpolate.Source
	Bounds interpolate.Bounds
	// BoundsSet is true if the dictionary set outOfBounds. Otherwise a
	// policy stored in the table file itself takes precedence over Bounds.
	BoundsSet bool
}

// Options returns the table options described by the config.
func (c *TableConfig) Options() []interpolate.Option {
	return []interpolate.Option{
		interpolate.WithSource(c.Source), interpolate.WithBounds(c.Bounds),
	}
}

// ReadTableConfig reads a table dictionary out of k. Unknown keys are
// ignored, so k can be a larger dictionary which also describes other
// things. An unrecognized outOfBounds word is replaced by "warn" and logged
// to log, which may be nil.
func ReadTableConfig(k *koanf.Koanf, log *zap.Logger) (*TableConfig, error) {
	if log == nil {
		log = logging.L()
	}

	if !k.Exists(FileNameKey) || k.String(FileNameKey) == "" {
		return nil, fmt.Errorf(
			"I expected the table dictionary to set the variable '%s', "+
				"but it didn't.", FileNameKey,
		)
	}

	cfg := &TableConfig{
		Source: interpolate.Source{
			FileName:   os.ExpandEnv(k.String(FileNameKey)),
			ReaderType: DefaultReaderType,
		},
		Bounds: interpolate.BoundsWarn,
	}

	if k.Exists(OutOfBoundsKey) {
		cfg.Bounds = interpolate.ParseBounds(k.String(OutOfBoundsKey), log)
		cfg.BoundsSet = true
	}

	if k.Exists(ReaderTypeKey) {
		rt := k.String(ReaderTypeKey)
		switch rt {
		case OpenFoam, CSV, YAML:
		default:
			return nil, fmt.Errorf(
				"The table dictionary for %s sets '%s' to '%s', but the "+
					"only reader types I know about are '%s', '%s', and '%s'.",
				cfg.Source.FileName, ReaderTypeKey, rt, OpenFoam, CSV, YAML,
			)
		}
		cfg.Source.ReaderType = rt
	}

	if k.Exists(HasHeaderLineKey) {
		b, err := parseBool(k.Get(HasHeaderLineKey))
		if err != nil {
			return nil, fmt.Errorf(
				"The table dictionary for %s sets '%s' to '%v', which I "+
					"couldn't convert to a bool.",
				cfg.Source.FileName, HasHeaderLineKey, k.Get(HasHeaderLineKey),
			)
		}
		cfg.Source.HasHeaderLine = b
	}

	return cfg, nil
}

// TableConfigFromMap reads a table dictionary out of an in-memory map, with
// layers applied on top in order.
func TableConfigFromMap(
	m map[string]interface{}, log *zap.Logger, layers ...Layer,
) (*TableConfig, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(m, "."), nil); err != nil {
		return nil, err
	}
	if err := applyLayers(k, layers); err != nil {
		return nil, err
	}
	return ReadTableConfig(k, log)
}

// ReadTableConfigFile reads a table dictionary out of a YAML file, with
// layers applied on top in order. A relative fileName is resolved against
// the directory of the file.
func ReadTableConfigFile(
	path string, log *zap.Logger, layers ...Layer,
) (*TableConfig, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("I could not read the config file %s: %w", path, err)
	}
	if err := applyLayers(k, layers); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	cfg, err := ReadTableConfig(k, log)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Source.FileName = resolve(cfg.Source.FileName, filepath.Dir(path))
	return cfg, nil
}

func resolve(path, dir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

func parseBool(v interface{}) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		return strconv.ParseBool(b)
	}
	return false, fmt.Errorf("%v is not a bool", v)
}

package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/signadot/go-ojai/fieldpath"
	"github.com/signadot/go-ojai/stream"
	"github.com/signadot/go-ojai/types"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
)

type MainConfig struct {
	V      bool   `cli:"name=v desc='log at debug level'"`
	Color  bool   `cli:"name=color desc='output with color'"`
	Gops   bool   `cli:"name=gops desc='start a gops diagnostics agent'"`
	Legacy bool   `cli:"name=legacy desc='write the argonaut dialect'"`
	Indent string `cli:"name=indent desc='indent output with this string'"`

	Dialect types.Dialect
	File    *FileConfig

	Out      string
	CloseOut func() error

	Main *cli.Command
}

// FileConfig holds defaults read from a yaml file given with -config.
// Command line options take precedence.
type FileConfig struct {
	Dialect string   `yaml:"dialect"`
	Color   *bool    `yaml:"color"`
	Indent  string   `yaml:"indent"`
	Paths   []string `yaml:"paths"`
}

func loadFileConfig(name string) (*FileConfig, error) {
	d, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	fc := &FileConfig{}
	if err := yaml.Unmarshal(d, fc); err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", name, err)
	}
	return fc, nil
}

func (cfg *MainConfig) configOpt(_ *cli.Context, a string) (any, error) {
	fc, err := loadFileConfig(a)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	cfg.File = fc
	return a, nil
}

func (cfg *MainConfig) dialectOpt(_ *cli.Context, a string) (any, error) {
	d, err := types.ParseDialect(a)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	cfg.Dialect = d
	return d, nil
}

// isSet reports whether the main option name was given on the command
// line.
func (cfg *MainConfig) isSet(name string) bool {
	for _, opt := range cfg.Main.Opts {
		if opt.Name != name {
			continue
		}
		return opt.Value != nil
	}
	return false
}

// resolve merges the file config into the command line config.
func (cfg *MainConfig) resolve() error {
	if cfg.V {
		logLevel.Set(slog.LevelDebug)
	}
	if cfg.Legacy {
		cfg.Dialect = types.DialectArgonaut
	}
	fc := cfg.File
	if fc == nil {
		return nil
	}
	if fc.Dialect != "" && !cfg.isSet("dialect") && !cfg.Legacy {
		d, err := types.ParseDialect(fc.Dialect)
		if err != nil {
			return fmt.Errorf("%w: config: %w", cli.ErrUsage, err)
		}
		cfg.Dialect = d
	}
	if fc.Color != nil && !cfg.isSet("color") {
		cfg.Color = *fc.Color
	}
	if fc.Indent != "" && !cfg.isSet("indent") {
		cfg.Indent = fc.Indent
	}
	return nil
}

func (cfg *MainConfig) readOpts() []stream.StreamOption {
	return []stream.StreamOption{
		stream.WithKeepSourceOpen(),
		stream.WithLogger(theLog),
	}
}

func (cfg *MainConfig) writeOpts() []stream.StreamOption {
	res := []stream.StreamOption{
		stream.WithDialect(cfg.Dialect),
		stream.WithKeepSourceOpen(),
		stream.WithLogger(theLog),
	}
	if cfg.Indent != "" {
		res = append(res, stream.WithIndent(cfg.Indent))
	}
	return res
}

// colors reports whether output to w should be colored.
func (cfg *MainConfig) colors(w io.Writer) bool {
	if cfg.Color || cfg.isSet("color") {
		return cfg.Color
	}
	if cfg.File != nil && cfg.File.Color != nil {
		return *cfg.File.Color
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type EventsConfig struct {
	*MainConfig

	Events *cli.Command
}

type ProjectConfig struct {
	*MainConfig
	Paths []*fieldpath.FieldPath

	Project *cli.Command
}

func (cfg *ProjectConfig) pathOpt(_ *cli.Context, a string) (any, error) {
	p, err := fieldpath.Parse(a)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	cfg.Paths = append(cfg.Paths, p)
	return a, nil
}

type CanonConfig struct {
	*MainConfig

	Canon *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Context int `cli:"name=c desc='lines of unchanged context (negative for all)'"`

	Diff *cli.Command
}

type PathConfig struct {
	*MainConfig
	Quote bool `cli:"name=q desc='quote every name'"`
	JSON  bool `cli:"name=j desc='print paths as json strings'"`

	Path *cli.Command
}

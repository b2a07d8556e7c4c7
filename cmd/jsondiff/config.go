package main

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// fileConfig is the --config file. Every key is optional & loses to a flag
// given on the command line
type fileConfig struct {
	Format           *string `yaml:"format"`
	Strategy         *string `yaml:"strategy"`
	IgnoreOrder      *bool   `yaml:"ignore_order"`
	MaxMatchDepth    *int    `yaml:"max_match_depth"`
	ReportRepetition *bool   `yaml:"report_repetition"`
	Output           *string `yaml:"output"`
	Color            *string `yaml:"color"`
	Minify           *bool   `yaml:"minify"`
	Stats            *bool   `yaml:"stats"`
}

func readConfig(path string) (*fileConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config")
	}
	defer f.Close()

	cfg := &fileConfig{}
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return nil, errors.Wrapf(err, "parsing config %s", path)
	}
	return cfg, nil
}

// apply copies configured values into opts, skipping flags for which changed
// reports true
func (cfg *fileConfig) apply(opts *rootOpts, changed func(flag string) bool) {
	setString := func(flag string, dst *string, v *string) {
		if v != nil && !changed(flag) {
			*dst = *v
		}
	}
	setBool := func(flag string, dst *bool, v *bool) {
		if v != nil && !changed(flag) {
			*dst = *v
		}
	}

	setString("format", &opts.format, cfg.Format)
	setString("strategy", &opts.strategy, cfg.Strategy)
	setString("output", &opts.output, cfg.Output)
	setString("color", &opts.color, cfg.Color)
	setBool("ignore-order", &opts.ignoreOrder, cfg.IgnoreOrder)
	setBool("report-repetition", &opts.reportRepetition, cfg.ReportRepetition)
	setBool("minify", &opts.minify, cfg.Minify)
	setBool("stats", &opts.stats, cfg.Stats)
	if cfg.MaxMatchDepth != nil && !changed("max-match-depth") {
		opts.maxMatchDepth = *cfg.MaxMatchDepth
	}
}

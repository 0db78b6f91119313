package cmd

import (
	"os"

	"github.com/grinkers/edn/reader"
	"gopkg.in/yaml.v3"
)

// FileConfig mirrors reader.Config for the on-disk .edn-cli.yaml format
// (spec.md §10 AMBIENT STACK): the CLI layer owns config-file parsing, the
// reader package itself stays free of any file I/O.
type FileConfig struct {
	Floats            *bool `yaml:"floats"`
	ArbitraryInts     *bool `yaml:"arbitrary_ints"`
	ArbitraryDecimals *bool `yaml:"arbitrary_decimals"`
	DepthLimit        int   `yaml:"depth_limit"`
}

// loadReaderConfig reads cfgFile if present and overlays it onto
// reader.DefaultConfig(); a missing file is not an error, so the CLI works
// with no configuration at all.
func loadReaderConfig() (reader.Config, error) {
	cfg := reader.DefaultConfig()

	data, err := os.ReadFile(cfgFile)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}

	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return cfg, err
	}
	if fc.Floats != nil {
		cfg.Floats = *fc.Floats
	}
	if fc.ArbitraryInts != nil {
		cfg.ArbitraryInts = *fc.ArbitraryInts
	}
	if fc.ArbitraryDecimals != nil {
		cfg.ArbitraryDecimals = *fc.ArbitraryDecimals
	}
	if fc.DepthLimit > 0 {
		cfg.DepthLimit = fc.DepthLimit
	}
	return cfg, nil
}

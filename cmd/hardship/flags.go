package main

import (
	"github.com/spf13/cobra"

	"github.com/goliatone/go-hardship/internal/config"
)

type globalFlags struct {
	configPath string
	baseURL    string
	logLevel   string
	logFormat  string
	insecure   bool
}

func (f *globalFlags) register(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringVarP(&f.configPath, "config", "c", "", "path to a YAML config file")
	pf.StringVar(&f.baseURL, "base-url", "", "record service base URL")
	pf.StringVar(&f.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVar(&f.logFormat, "log-format", "", "log format (text, json)")
	pf.BoolVar(&f.insecure, "insecure", false, "skip TLS verification against the record service")
}

// load reads the config file, applies the flags that were set on cmd, then
// the command specific overrides.
func (f *globalFlags) load(cmd *cobra.Command, overrides ...func(*config.Config)) (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return cfg, err
	}
	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.Service.BaseURL = f.baseURL
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = f.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = f.logFormat
	}
	if flags.Changed("insecure") {
		cfg.Service.InsecureSkipVerify = f.insecure
	}
	for _, override := range overrides {
		override(&cfg)
	}
	return cfg, cfg.Validate()
}

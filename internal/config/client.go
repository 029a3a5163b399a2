package config

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"dario.cat/mergo"
)

// ErrInvalidClientConfigs indicates an unusable command-line client setup.
var ErrInvalidClientConfigs = errors.New("invalid client configuration")

// ClientConfig configures the admin command-line client.
type ClientConfig struct {
	ServerAddress  string        `env:"MEDCMS_SERVER"`
	Token          string        `env:"MEDCMS_TOKEN"`
	Locale         string        `env:"MEDCMS_LOCALE"`
	RequestTimeout time.Duration `env:"MEDCMS_REQUEST_TIMEOUT"`
	Verbose        bool          `env:"MEDCMS_VERBOSE"`
}

// GetClientConfig merges defaults, environment and global flags (in that
// order of precedence, flags winning) and returns the remaining arguments,
// which start with the subcommand.
func GetClientConfig(args []string) (*ClientConfig, []string, error) {
	cfg := &ClientConfig{
		ServerAddress:  "http://localhost:8080",
		Locale:         DefaultLocale,
		RequestTimeout: 15 * time.Second,
	}

	envCfg := &ClientConfig{}
	if err := parseEnv(envCfg); err != nil {
		return nil, nil, err
	}

	flagCfg := &ClientConfig{}
	fs := flag.NewFlagSet("med-cms-client", flag.ContinueOnError)
	fs.StringVar(&flagCfg.ServerAddress, "server", "", "med-cms server base URL")
	fs.StringVar(&flagCfg.Token, "token", "", "bearer token of a previous login")
	fs.StringVar(&flagCfg.Locale, "locale", "", "Accept-Language sent to the server")
	fs.DurationVar(&flagCfg.RequestTimeout, "timeout", 0, "per-request timeout")
	fs.BoolVar(&flagCfg.Verbose, "v", false, "log every API call to stderr")
	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("error parsing client flags: %w", err)
	}

	for _, override := range []*ClientConfig{envCfg, flagCfg} {
		if err := mergo.Merge(cfg, override, mergo.WithOverride); err != nil {
			return nil, nil, fmt.Errorf("error merging client configs: %w", err)
		}
	}

	if cfg.ServerAddress == "" || cfg.RequestTimeout <= 0 {
		return nil, nil, fmt.Errorf("%w: server address and a positive timeout are required", ErrInvalidClientConfigs)
	}

	return cfg, fs.Args(), nil
}

package config

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophvault/internal/flagx"
	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const EnvPrefix = "GOPHVAULT_CLIENT_"

// Load builds a Config from args and returns the positional arguments left
// after the flags.
//
// Supported flags (short forms):
//
//	-c string   JSON config file
//	-a string   address and port of the server
//	-t string   access token
//	-d string   device id
//	-p int      part size in bytes
func Load(args []string) (*Config, []string, error) {
	k := koanf.New(".")

	var defaults Config
	defaults.LoadDefaults()
	if err := k.Load(structs.Provider(defaults, "koanf"), nil); err != nil {
		return nil, nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := flagx.ConfigFileFlag(args); path != "" {
		if err := k.Load(file.Provider(path), json.Parser()); err != nil {
			return nil, nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: EnvPrefix,
		TransformFunc: func(key, value string) (string, any) {
			return strings.ToLower(strings.TrimPrefix(key, EnvPrefix)), value
		},
	}), nil); err != nil {
		return nil, nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, nil, fmt.Errorf("decode config: %w", err)
	}

	fs := flag.NewFlagSet("vaultctl", flag.ContinueOnError)
	fs.String("c", "", "path to config file")
	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port of the server")
	fs.StringVar(&cfg.AccessToken, "t", cfg.AccessToken, "access token")
	fs.StringVar(&cfg.DeviceID, "d", cfg.DeviceID, "device id")
	fs.Int64Var(&cfg.PartSize, "p", cfg.PartSize, "part size in bytes")
	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("parse flags: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, nil, err
	}
	return cfg, fs.Args(), nil
}

func validate(cfg *Config) error {
	err := validator.New(validator.WithRequiredStructEnabled()).Struct(cfg)
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	errs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		errs = append(errs, fmt.Errorf("config %s: failed %q", fe.Field(), fe.Tag()))
	}
	return errors.Join(errs...)
}

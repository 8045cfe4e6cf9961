package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/gophvault/internal/flagx"
	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment variable read by LoadConfig,
// e.g. GOPHVAULT_DATABASE_DSN.
const EnvPrefix = "GOPHVAULT_"

// Loader seams, replaced in tests.
var (
	defaultLoader = func(k *koanf.Koanf) error {
		var c Config
		c.LoadDefaults()
		return k.Load(structs.Provider(c, "koanf"), nil)
	}

	fileLoader = func(k *koanf.Koanf, path string) error {
		return k.Load(file.Provider(path), json.Parser())
	}

	envLoader = func(k *koanf.Koanf) error {
		return k.Load(env.Provider(".", env.Opt{
			Prefix: EnvPrefix,
			TransformFunc: func(key, value string) (string, any) {
				return strings.ToLower(strings.TrimPrefix(key, EnvPrefix)), value
			},
		}), nil)
	}
)

// LoadConfig builds a Config from os.Args.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Load applies defaults, then the JSON file named by -c/-config (if any),
// then environment variables, then the flags found in args, and validates
// the result.
func Load(args []string) (*Config, error) {
	k := koanf.New(".")

	if err := defaultLoader(k); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := flagx.ConfigFileFlag(args); path != "" {
		if err := fileLoader(k, path); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := envLoader(k); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks field constraints declared in struct tags and returns all
// violations joined into one error.
func Validate(cfg *Config) error {
	v := validator.New(validator.WithRequiredStructEnabled())
	err := v.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate config: %w", err)
	}

	errs := make([]error, 0, len(verrs))
	for _, fe := range verrs {
		errs = append(errs, fmt.Errorf("config %s: failed %q", fe.Field(), fe.Tag()))
	}
	return errors.Join(errs...)
}

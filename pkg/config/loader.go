package config

import (
	"strings"

	"github.com/arthur-debert/modresolve/pkg/errors"
	"github.com/arthur-debert/modresolve/pkg/logging"
	"github.com/arthur-debert/modresolve/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment overrides. The first underscore
// after the prefix separates section from key, so MODRESOLVE_PATCH_ITEM_OFFSET
// sets patch.item_offset.
const EnvPrefix = "MODRESOLVE_"

// LoadOptions controls where configuration is read from
type LoadOptions struct {
	// ConfigFile replaces the project config lookup when set; it must exist
	ConfigFile string
	// Overrides are applied last, above environment variables
	Overrides map[string]interface{}
}

// Load builds the configuration for the given paths
func Load(p *paths.Paths, opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")
	var sources []string

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}
	sources = append(sources, "embedded:defaults.toml")

	// 2. User config
	if userPath := p.UserConfigPath(); fileExists(userPath) {
		if err := k.Load(file.Provider(userPath), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load user config from %s", userPath).
				WithDetail("path", userPath)
		}
		sources = append(sources, userPath)
	}

	// 3. Project config
	projectPath := p.ProjectConfigPath()
	if opts.ConfigFile != "" {
		projectPath = p.Resolve(opts.ConfigFile)
		if !fileExists(projectPath) {
			return nil, errors.New(errors.ErrConfigLoad, "config file does not exist").
				WithDetail("path", projectPath)
		}
	}
	if fileExists(projectPath) {
		if err := k.Load(file.Provider(projectPath), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load project config from %s", projectPath).
				WithDetail("path", projectPath)
		}
		sources = append(sources, projectPath)
	}

	// 4. Environment
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.Replace(key, "_", ".", 1)
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 5. Explicit overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	// 6. Unmarshal
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	cfg.Sources = sources

	resolvePaths(&cfg, p)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	logger.Debug().
		Strs("sources", sources).
		Strs("resolvable", cfg.Resolve.Kinds).
		Msg("Configuration loaded")

	return &cfg, nil
}

// Default returns the embedded defaults rooted at root. It never reads
// user or project files.
func Default(root string) (*Config, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal defaults")
	}
	p, err := paths.New(root)
	if err != nil {
		return nil, err
	}
	resolvePaths(&cfg, p)
	return &cfg, nil
}

func resolvePaths(cfg *Config, p *paths.Paths) {
	cfg.Paths.Catalog = p.Resolve(cfg.Paths.Catalog)
	cfg.Paths.PriorityList = p.Resolve(cfg.Paths.PriorityList)
	cfg.Paths.WantedList = p.Resolve(cfg.Paths.WantedList)
	cfg.Paths.IDDump = p.Resolve(cfg.Paths.IDDump)
	cfg.Paths.ModsSource = p.Resolve(cfg.Paths.ModsSource)
	cfg.Paths.ConfigSource = p.Resolve(cfg.Paths.ConfigSource)
	cfg.Paths.TargetMods = p.Resolve(cfg.Paths.TargetMods)
	cfg.Paths.TargetConfig = p.Resolve(cfg.Paths.TargetConfig)
}

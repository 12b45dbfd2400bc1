// Package config loads modresolve's configuration.
//
// Sources are layered with koanf, later ones winning:
//
//   - embedded defaults (embedded/defaults.toml)
//   - the user config in $XDG_CONFIG_HOME/modresolve/modresolve.toml
//   - the project config (modresolve.toml in the root, or --config)
//   - MODRESOLVE_* environment variables
//
// The merged tree is decoded into Config with mapstructure.
package config

// Package paths provides centralized path handling for modresolve.
// It resolves the working root, honours XDG locations for user-level
// configuration and state, and turns configured relative paths into
// absolute ones.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/modresolve/pkg/errors"
)

// Environment variable names
const (
	// EnvRoot points at the directory holding catalog, lists and mod trees
	EnvRoot = "MODRESOLVE_ROOT"

	// EnvConfigDir overrides the XDG config directory for modresolve
	EnvConfigDir = "MODRESOLVE_CONFIG_DIR"
)

const (
	// AppDirName is the directory name used under XDG base directories
	AppDirName = "modresolve"

	// ConfigFileName is the name of user and project configuration files
	ConfigFileName = "modresolve.toml"
)

// Paths holds the resolved locations for one run
type Paths struct {
	root      string
	configDir string
}

// New creates Paths rooted at root. An empty root falls back to
// MODRESOLVE_ROOT and then the current directory.
func New(root string) (*Paths, error) {
	if root == "" {
		root = os.Getenv(EnvRoot)
	}
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrFileAccess, "failed to get current directory")
		}
		root = cwd
	}

	absRoot, err := filepath.Abs(expandHome(root))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for root")
	}

	configDir := os.Getenv(EnvConfigDir)
	if configDir == "" {
		configDir = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	return &Paths{
		root:      absRoot,
		configDir: expandHome(configDir),
	}, nil
}

// Root returns the working root
func (p *Paths) Root() string {
	return p.root
}

// ConfigDir returns the user-level config directory
func (p *Paths) ConfigDir() string {
	return p.configDir
}

// UserConfigPath returns the user-level config file path
func (p *Paths) UserConfigPath() string {
	return filepath.Join(p.configDir, ConfigFileName)
}

// ProjectConfigPath returns the config file inside the working root
func (p *Paths) ProjectConfigPath() string {
	return filepath.Join(p.root, ConfigFileName)
}

// Resolve makes path absolute relative to the root. Empty stays empty.
func (p *Paths) Resolve(path string) string {
	if path == "" {
		return ""
	}
	path = expandHome(path)
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(p.root, path)
}

// expandHome expands ~ to the user's home directory
func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}

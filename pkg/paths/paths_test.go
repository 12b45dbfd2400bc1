package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		root     string
		envSetup map[string]string
		wantRoot func(t *testing.T) string
	}{
		{
			name:     "explicit root",
			root:     "/srv/pack",
			wantRoot: func(t *testing.T) string { return "/srv/pack" },
		},
		{
			name:     "from MODRESOLVE_ROOT env",
			envSetup: map[string]string{EnvRoot: "/env/pack"},
			wantRoot: func(t *testing.T) string { return "/env/pack" },
		},
		{
			name:     "fallback to cwd",
			envSetup: map[string]string{EnvRoot: ""},
			wantRoot: func(t *testing.T) string {
				cwd, err := os.Getwd()
				require.NoError(t, err)
				return cwd
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envSetup {
				t.Setenv(k, v)
			}
			p, err := New(tt.root)
			require.NoError(t, err)
			assert.Equal(t, tt.wantRoot(t), p.Root())
		})
	}
}

func TestConfigLocations(t *testing.T) {
	t.Setenv(EnvConfigDir, "/custom/config")
	p, err := New("/srv/pack")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("/custom/config", ConfigFileName), p.UserConfigPath())
	assert.Equal(t, filepath.Join("/srv/pack", ConfigFileName), p.ProjectConfigPath())
}

func TestResolve(t *testing.T) {
	p, err := New("/srv/pack")
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"catalog.yaml", "/srv/pack/catalog.yaml"},
		{"server/config", "/srv/pack/server/config"},
		{"/abs/./list.txt", "/abs/list.txt"},
		{"~/mods", filepath.Join(home, "mods")},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Resolve(tt.in))
		})
	}
}

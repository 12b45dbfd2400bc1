package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/modresolve/pkg/errors"
	"github.com/arthur-debert/modresolve/pkg/paths"
	"github.com/arthur-debert/modresolve/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupRoot returns paths for an isolated root and user config dir
func setupRoot(t *testing.T) (*paths.Paths, string, string) {
	t.Helper()
	root := t.TempDir()
	userDir := t.TempDir()
	t.Setenv(paths.EnvConfigDir, userDir)
	p, err := paths.New(root)
	require.NoError(t, err)
	return p, root, userDir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoadDefaults(t *testing.T) {
	p, root, _ := setupRoot(t)

	cfg, err := Load(p, LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, "Minecraft", cfg.Vanilla.Mod)
	assert.Equal(t, 256, cfg.Patch.ItemOffset)
	assert.Equal(t, []string{"block", "item", "biome"}, cfg.Resolve.Kinds)
	assert.Equal(t, []string{"embedded:defaults.toml"}, cfg.Sources)
	assert.Equal(t, filepath.Join(root, "catalog.yaml"), cfg.Paths.Catalog)
	assert.Equal(t, filepath.Join(root, "server", "config"), cfg.Paths.TargetConfig)

	ranges := cfg.KindRanges()
	block := ranges[types.KindBlock]
	assert.Equal(t, types.IDRange{Min: 500, Max: 4095}, block.General)
	require.NotNil(t, block.Low)
	assert.Equal(t, types.IDRange{Min: 200, Max: 255}, *block.Low)
	assert.Equal(t, 256, block.LowCeiling)
	assert.Nil(t, ranges[types.KindItem].Low)

	assert.True(t, cfg.ResolvableKinds()[types.KindBiome])
	assert.True(t, cfg.SectionKinds()[types.KindBiome])
	assert.False(t, cfg.SectionKinds()[types.KindBlock])
	assert.True(t, cfg.ConfigIgnore()["forgeChunkLoading.cfg"])
}

func TestLoadLayering(t *testing.T) {
	p, root, userDir := setupRoot(t)

	writeFile(t, filepath.Join(userDir, paths.ConfigFileName), `
[patch]
item_offset = 0
unshifted_item_mods = ["ic2"]

[vanilla]
mod = "Base"
`)
	writeFile(t, filepath.Join(root, paths.ConfigFileName), `
[vanilla]
mod = "Vanilla"

[ids.recipe]
min = 1
max = 99

[paths]
catalog = "data/catalog.toml"
`)
	t.Setenv("MODRESOLVE_PATCH_ITEM_OFFSET", "128")

	cfg, err := Load(p, LoadOptions{})
	require.NoError(t, err)

	assert.Equal(t, "Vanilla", cfg.Vanilla.Mod, "project overrides user")
	assert.Equal(t, 128, cfg.Patch.ItemOffset, "env overrides files")
	assert.True(t, cfg.UnshiftedItemMods()["ic2"])
	assert.Equal(t, types.IDRange{Min: 1, Max: 99}, cfg.KindRanges()["recipe"].General)
	assert.Equal(t, 500, cfg.IDs["block"].Min, "defaults survive merging")
	assert.Equal(t, filepath.Join(root, "data", "catalog.toml"), cfg.Paths.Catalog)
	assert.Len(t, cfg.Sources, 3)
}

func TestLoadExplicitConfigFile(t *testing.T) {
	p, root, _ := setupRoot(t)

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := Load(p, LoadOptions{ConfigFile: "nope.toml"})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
	})

	t.Run("explicit file replaces project lookup", func(t *testing.T) {
		writeFile(t, filepath.Join(root, "alt.toml"), "[resolve]\nkinds = [\"block\"]\n")
		cfg, err := Load(p, LoadOptions{ConfigFile: "alt.toml"})
		require.NoError(t, err)
		assert.Equal(t, []string{"block"}, cfg.Resolve.Kinds)
	})

	t.Run("overrides win", func(t *testing.T) {
		cfg, err := Load(p, LoadOptions{Overrides: map[string]interface{}{"vanilla.mod": "Forced"}})
		require.NoError(t, err)
		assert.Equal(t, "Forced", cfg.Vanilla.Mod)
	})
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    errors.ErrorCode
	}{
		{"broken toml", "[ids.block\nmin=", errors.ErrConfigParse},
		{"inverted range", "[ids.item]\nmin = 10\nmax = 5\n", errors.ErrConfigValid},
		{"low range above ceiling", "[ids.block]\nlow_max = 300\n", errors.ErrConfigValid},
		{"resolvable kind without range", "[resolve]\nkinds = [\"recipe\"]\n", errors.ErrConfigValid},
		{"empty vanilla", "[vanilla]\nmod = \"\"\n", errors.ErrConfigValid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, root, _ := setupRoot(t)
			writeFile(t, filepath.Join(root, paths.ConfigFileName), tt.content)

			_, err := Load(p, LoadOptions{})
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
		})
	}
}

func TestDefault(t *testing.T) {
	cfg, err := Default("/srv/pack")
	require.NoError(t, err)
	assert.Equal(t, "/srv/pack/priority.txt", cfg.Paths.PriorityList)
	assert.Contains(t, DefaultContent(), "[ids.block]")
}

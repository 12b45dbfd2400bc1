package patch

import (
	"strings"
	"testing"

	"github.com/arthur-debert/modresolve/pkg/errors"
	"github.com/arthur-debert/modresolve/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPatcher() *Patcher {
	return New(Options{
		ItemOffset:        256,
		UnshiftedItemMods: map[string]bool{"Raw": true},
		SectionKinds:      map[types.Kind]bool{types.KindBiome: true},
		HeaderKinds:       map[types.Kind]bool{types.KindBlock: true, types.KindItem: true},
	})
}

func blockEdit(oldID, newID int) types.ConfigEdit {
	return types.ConfigEdit{Mod: "A", Kind: types.KindBlock, OldID: oldID, NewID: newID}
}

func TestApplyEditSingleCandidate(t *testing.T) {
	p := newTestPatcher()

	result, err := p.ApplyEdit("block.foo=10", blockEdit(10, 55), nil)
	require.NoError(t, err)

	assert.False(t, result.RequiresManual)
	assert.Equal(t, "block.foo=55", result.EditedLine)
	assert.True(t, result.Edited())

	lines := strings.Split(strings.TrimSuffix(result.Text, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "block.foo=55", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], CommentPrefix))
	assert.Contains(t, lines[1], "10 to 55")
}

func TestApplyEditNoCandidate(t *testing.T) {
	p := newTestPatcher()
	text := "block.foo=11\nother=100\n"

	result, err := p.ApplyEdit(text, blockEdit(10, 55), nil)
	require.NoError(t, err)

	assert.True(t, result.RequiresManual)
	assert.False(t, result.Edited())
	require.True(t, strings.HasPrefix(result.Text, text))
	added := strings.TrimSuffix(strings.TrimPrefix(result.Text, text), "\n")
	assert.Equal(t, 1, strings.Count(added, TodoPrefix))
	assert.NotContains(t, added, "\n")
}

func TestApplyEditAmbiguous(t *testing.T) {
	p := newTestPatcher()
	text := "I:first=10\nI:second=10\n"

	result, err := p.ApplyEdit(text, blockEdit(10, 55), nil)
	require.NoError(t, err)

	assert.True(t, result.RequiresManual)
	assert.True(t, strings.HasPrefix(result.Text, text))
	assert.Equal(t, 2, strings.Count(result.Text, TodoPrefix))
	assert.Contains(t, result.Text, "I:first=10\n")
	assert.Contains(t, result.Text, "I:second=10\n")
}

func TestApplyEditCandidateRules(t *testing.T) {
	p := newTestPatcher()

	tests := []struct {
		name     string
		text     string
		exclude  map[string]bool
		wantLine string
	}{
		{"comments are skipped", "# old=10\n  #also=10\nI:real=10", nil, "I:real=20"},
		{"trailing whitespace is kept", "I:real=10  \n", nil, "I:real=20  "},
		{"trailing unicode space is kept", "I:real=10\v\n", nil, "I:real=20\v"},
		{"trailing no-break space is kept", "I:real=10\u00a0\n", nil, "I:real=20\u00a0"},
		{"indented lines match", "block {\n    I:real=10\n}\n", nil, "    I:real=20"},
		{"longer numbers do not match", "I:wrong=110\nI:real=10\n", nil, "I:real=20"},
		{"excluded lines are skipped", "I:done=10\nI:real=10\n", map[string]bool{"I:done=10": true}, "I:real=20"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := p.ApplyEdit(tt.text, blockEdit(10, 20), tt.exclude)
			require.NoError(t, err)
			assert.False(t, result.RequiresManual)
			assert.Equal(t, tt.wantLine, result.EditedLine)
		})
	}
}

func TestApplyEditItemOffset(t *testing.T) {
	p := newTestPatcher()

	tests := []struct {
		name     string
		mod      string
		text     string
		wantLine string
	}{
		{"shifted mod", "A", "I:sword=5744\n", "I:sword=4744"},
		{"unshifted mod", "Raw", "I:sword=6000\n", "I:sword=5000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edit := types.ConfigEdit{Mod: tt.mod, Kind: types.KindItem, OldID: 6000, NewID: 5000}
			result, err := p.ApplyEdit(tt.text, edit, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.wantLine, result.EditedLine)
		})
	}

	old, updated := p.FileIDs(types.ConfigEdit{Mod: "A", Kind: types.KindBlock, OldID: 600, NewID: 700})
	assert.Equal(t, 600, old)
	assert.Equal(t, 700, updated)
}

func TestApplyEditBiomeSections(t *testing.T) {
	p := newTestPatcher()
	edit := types.ConfigEdit{Mod: "A", Kind: types.KindBiome, OldID: 40, NewID: 31}

	t.Run("only inside biome section", func(t *testing.T) {
		text := "block {\n  I:stone=40\n}\nbiome {\n  I:tundra=40\n}\n"
		result, err := p.ApplyEdit(text, edit, nil)
		require.NoError(t, err)
		assert.False(t, result.RequiresManual)
		assert.Equal(t, "  I:tundra=31", result.EditedLine)
		assert.Contains(t, result.Text, "  I:stone=40\n")
	})

	t.Run("nested category keeps the biome section", func(t *testing.T) {
		text := "biome {\n    sub {\n    }\n    I:desert=40\n}\n"
		result, err := p.ApplyEdit(text, edit, nil)
		require.NoError(t, err)
		assert.False(t, result.RequiresManual)
		assert.Equal(t, "    I:desert=31", result.EditedLine)
	})

	t.Run("a later kind header leaves the biome section", func(t *testing.T) {
		text := "biome {\n}\nblock {\n  I:stone=40\n}\n"
		result, err := p.ApplyEdit(text, edit, nil)
		require.NoError(t, err)
		assert.True(t, result.RequiresManual)
	})

	t.Run("outside any section goes manual", func(t *testing.T) {
		result, err := p.ApplyEdit("I:tundra=40\n", edit, nil)
		require.NoError(t, err)
		assert.True(t, result.RequiresManual)
	})

	t.Run("blocks match in any section", func(t *testing.T) {
		result, err := p.ApplyEdit("biome {\n  I:stone=40\n}\n", blockEdit(40, 500), nil)
		require.NoError(t, err)
		assert.Equal(t, "  I:stone=500", result.EditedLine)
	})
}

func TestApplyEditNoopIsFatal(t *testing.T) {
	p := newTestPatcher()

	_, err := p.ApplyEdit("I:x=10\n", blockEdit(10, 10), nil)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNoopReplacement))
	assert.True(t, errors.IsFatal(err))
}

func TestSectionCursor(t *testing.T) {
	headers := map[types.Kind]bool{types.KindBiome: true, types.KindBlock: true}

	var s section
	assert.False(t, s.is(types.KindBiome))

	s = s.advance("biome {", headers)
	assert.True(t, s.is(types.KindBiome))

	s = s.advance("I:x=1", headers)
	assert.True(t, s.is(types.KindBiome))

	s = s.advance("sub {", headers)
	assert.True(t, s.is(types.KindBiome), "unknown headers keep the cursor")

	s = s.advance("}", headers)
	assert.True(t, s.is(types.KindBiome), "closing braces keep the cursor")

	s = s.advance("block {", headers)
	assert.False(t, s.is(types.KindBiome))
	assert.True(t, s.is(types.KindBlock))

	s = s.advance("I:a b {", headers)
	assert.True(t, s.is(types.KindBlock))
}

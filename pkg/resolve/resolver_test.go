package resolve

import (
	"testing"

	"github.com/arthur-debert/modresolve/pkg/errors"
	"github.com/arthur-debert/modresolve/pkg/ids"
	"github.com/arthur-debert/modresolve/pkg/preferred"
	"github.com/arthur-debert/modresolve/pkg/priority"
	"github.com/arthur-debert/modresolve/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const vanilla = "Minecraft"

func newTestResolver(itemMax int) *Resolver {
	ranges := map[types.Kind]types.KindRange{
		types.KindBlock: {
			General:    types.IDRange{Min: 500, Max: 4095},
			Low:        &types.IDRange{Min: 200, Max: 255},
			LowCeiling: 256,
		},
		types.KindItem:  {General: types.IDRange{Min: 5000, Max: itemMax}},
		types.KindBiome: {General: types.IDRange{Min: 30, Max: 255}},
	}
	return New(Options{
		Allocator:       ids.NewAllocator(ranges),
		ResolvableKinds: map[types.Kind]bool{types.KindBlock: true, types.KindItem: true},
		StripPrefixes:   []string{"tile.", "item.", "block."},
	})
}

type entry struct {
	mod  string
	kind types.Kind
	id   int
	name string
}

func buildCatalog(entries ...entry) types.Catalog {
	c := make(types.Catalog)
	for _, e := range entries {
		attrs := types.Attributes{}
		if e.name != "" {
			attrs[types.AttrName] = e.name
		}
		c.Add(types.ContentEntry{Mod: e.mod, Kind: e.kind, DefaultID: e.id, Attributes: attrs})
	}
	return c
}

func resolution(t *testing.T, result *Result, kind types.Kind, mod string, id int) types.Resolution {
	t.Helper()
	m, ok := result.Map(kind)
	require.True(t, ok, "no map for %s", kind)
	r, ok := m.Get(types.ResolutionKey{Mod: mod, DefaultID: id})
	require.True(t, ok, "no key %s@%d", mod, id)
	return r
}

func assignedID(t *testing.T, result *Result, kind types.Kind, mod string, id int) int {
	t.Helper()
	r := resolution(t, result, kind, mod, id)
	got, ok := r.ID()
	require.True(t, ok, "%s@%d is unresolved", mod, id)
	return got
}

func TestResolveHighestRankKeepsID(t *testing.T) {
	tests := []struct {
		name      string
		defaultID int
		wantA     int
		wantC     int
	}{
		{"general range", 1000, 500, 501},
		{"terrain range below ceiling", 10, 200, 201},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := buildCatalog(
				entry{"A", types.KindBlock, tt.defaultID, ""},
				entry{"B", types.KindBlock, tt.defaultID, ""},
				entry{"C", types.KindBlock, tt.defaultID, ""},
			)
			ranking := priority.NewRanking([]string{"A", "C", "B"}, vanilla)

			result, err := newTestResolver(31999).Resolve(catalog, ranking, preferred.Table{})
			require.NoError(t, err)

			assert.False(t, resolution(t, result, types.KindBlock, "B", tt.defaultID).IsAssigned())
			a := assignedID(t, result, types.KindBlock, "A", tt.defaultID)
			c := assignedID(t, result, types.KindBlock, "C", tt.defaultID)
			assert.Equal(t, tt.wantA, a)
			assert.Equal(t, tt.wantC, c)
			assert.NotEqual(t, a, c)
			assert.NotEqual(t, tt.defaultID, a)
			assert.NotEqual(t, tt.defaultID, c)

			require.Len(t, result.Report.Moves, 2)
			assert.Equal(t, "B", result.Report.Moves[0].KeptBy.Mod)
		})
	}
}

func TestResolveMarksDerivedItems(t *testing.T) {
	catalog := buildCatalog(entry{"A", types.KindItem, 6000, ""})
	catalog.Add(types.ContentEntry{
		Mod: "B", Kind: types.KindItem, DefaultID: 6000,
		Attributes: types.Attributes{types.AttrDerived: "true"},
	})
	ranking := priority.NewRanking([]string{"B", "A"}, vanilla)

	result, err := newTestResolver(31999).Resolve(catalog, ranking, preferred.Table{})
	require.NoError(t, err)

	require.Len(t, result.Report.Moves, 1)
	assert.Equal(t, "B", result.Report.Moves[0].Key.Mod)
	assert.True(t, result.Report.Moves[0].Derived)
}

func TestResolveTerrainRangeOnly(t *testing.T) {
	catalog := buildCatalog(
		entry{"A", types.KindBlock, 100, ""},
		entry{"B", types.KindBlock, 100, ""},
	)
	ranking := priority.NewRanking([]string{"A", "B"}, vanilla)

	result, err := newTestResolver(31999).Resolve(catalog, ranking, preferred.Table{})
	require.NoError(t, err)

	moved := assignedID(t, result, types.KindBlock, "A", 100)
	assert.GreaterOrEqual(t, moved, 200)
	assert.LessOrEqual(t, moved, 255)
}

func TestResolveUnlistedRanksBelowListed(t *testing.T) {
	catalog := buildCatalog(
		entry{"Listed", types.KindItem, 6000, ""},
		entry{"Unlisted", types.KindItem, 6000, ""},
	)
	ranking := priority.NewRanking([]string{"Listed"}, vanilla)

	result, err := newTestResolver(31999).Resolve(catalog, ranking, preferred.Table{})
	require.NoError(t, err)

	assert.False(t, resolution(t, result, types.KindItem, "Listed", 6000).IsAssigned())
	assert.Equal(t, 5000, assignedID(t, result, types.KindItem, "Unlisted", 6000))
}

func TestResolvePreferredIDs(t *testing.T) {
	t.Run("exact name", func(t *testing.T) {
		catalog := buildCatalog(entry{"A", types.KindBlock, 7, "x"})
		ranking := priority.NewRanking(nil, vanilla)

		result, err := newTestResolver(31999).Resolve(catalog, ranking, preferred.Table{"x": 42})
		require.NoError(t, err)

		assert.Equal(t, 42, assignedID(t, result, types.KindBlock, "A", 7))
		require.Len(t, result.Report.Preferred, 1)
		assert.Equal(t, "x", result.Report.Preferred[0].Name)
	})

	t.Run("after prefix stripping", func(t *testing.T) {
		catalog := buildCatalog(entry{"A", types.KindBlock, 700, "ore"})
		ranking := priority.NewRanking(nil, vanilla)

		result, err := newTestResolver(31999).Resolve(catalog, ranking, preferred.Table{"tile.ore": 900})
		require.NoError(t, err)

		assert.Equal(t, 900, assignedID(t, result, types.KindBlock, "A", 700))
		assert.Empty(t, result.Report.UnmatchedPreferred)
	})

	t.Run("vanilla matches are ignored", func(t *testing.T) {
		catalog := buildCatalog(entry{vanilla, types.KindBlock, 1, "tile.stone"})
		ranking := priority.NewRanking(nil, vanilla)

		result, err := newTestResolver(31999).Resolve(catalog, ranking, preferred.Table{"tile.stone": 3})
		require.NoError(t, err)

		assert.False(t, resolution(t, result, types.KindBlock, vanilla, 1).IsAssigned())
	})

	t.Run("unmatched names are reported", func(t *testing.T) {
		catalog := buildCatalog(entry{"A", types.KindBlock, 700, "ore"})
		ranking := priority.NewRanking(nil, vanilla)

		result, err := newTestResolver(31999).Resolve(catalog, ranking, preferred.Table{"gone": 5})
		require.NoError(t, err)

		assert.Equal(t, []string{"gone"}, result.Report.UnmatchedPreferred)
	})

	t.Run("preferred key cuts in and keeps the id", func(t *testing.T) {
		catalog := buildCatalog(
			entry{"A", types.KindBlock, 7, "x"},
			entry{"B", types.KindBlock, 42, "y"},
		)
		// B outranks A but A holds a preferred ID
		ranking := priority.NewRanking([]string{"A", "B"}, vanilla)

		result, err := newTestResolver(31999).Resolve(catalog, ranking, preferred.Table{"x": 42})
		require.NoError(t, err)

		assert.Equal(t, 42, assignedID(t, result, types.KindBlock, "A", 7))
		assert.Equal(t, 200, assignedID(t, result, types.KindBlock, "B", 42))
	})

	t.Run("duplicated names are indexed with their id", func(t *testing.T) {
		catalog := buildCatalog(
			entry{"A", types.KindBlock, 600, "dup"},
			entry{"B", types.KindBlock, 700, "dup"},
		)
		ranking := priority.NewRanking(nil, vanilla)

		result, err := newTestResolver(31999).Resolve(catalog, ranking, preferred.Table{"dup700": 800})
		require.NoError(t, err)

		assert.Equal(t, 800, assignedID(t, result, types.KindBlock, "B", 700))
		assert.False(t, resolution(t, result, types.KindBlock, "A", 600).IsAssigned())
	})
}

func TestResolveFatalErrors(t *testing.T) {
	tests := []struct {
		name    string
		catalog types.Catalog
		prefs   preferred.Table
		itemMax int
		code    errors.ErrorCode
	}{
		{
			name:    "double preference",
			catalog: buildCatalog(entry{"A", types.KindBlock, 700, "x"}),
			prefs:   preferred.Table{"x": 800, "tile.x": 801},
			itemMax: 31999,
			code:    errors.ErrDoublePreference,
		},
		{
			name: "multiple pre-assigned",
			catalog: buildCatalog(
				entry{"A", types.KindBlock, 700, "x"},
				entry{"B", types.KindBlock, 701, "y"},
			),
			prefs:   preferred.Table{"x": 900, "y": 900},
			itemMax: 31999,
			code:    errors.ErrMultiplePreAssigned,
		},
		{
			name: "id exhausted",
			catalog: buildCatalog(
				entry{"A", types.KindItem, 6000, ""},
				entry{"B", types.KindItem, 6000, ""},
				entry{"C", types.KindItem, 6000, ""},
			),
			prefs:   preferred.Table{},
			itemMax: 5000,
			code:    errors.ErrIDExhausted,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ranking := priority.NewRanking(nil, vanilla)
			_, err := newTestResolver(tt.itemMax).Resolve(tt.catalog, ranking, tt.prefs)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.code), "got %v", err)
			assert.True(t, errors.IsFatal(err))
		})
	}
}

func TestResolveVanillaGroupsAreSkipped(t *testing.T) {
	catalog := buildCatalog(
		entry{vanilla, types.KindBlock, 1, "tile.stone"},
		entry{"A", types.KindBlock, 1, ""},
		entry{"B", types.KindBlock, 1, ""},
	)
	ranking := priority.NewRanking([]string{"A", "B"}, vanilla)

	result, err := newTestResolver(31999).Resolve(catalog, ranking, preferred.Table{})
	require.NoError(t, err)

	for _, mod := range []string{vanilla, "A", "B"} {
		assert.False(t, resolution(t, result, types.KindBlock, mod, 1).IsAssigned(), mod)
	}
	require.Len(t, result.Report.VanillaSkipped, 1)
	assert.Equal(t, 1, result.Report.VanillaSkipped[0].ID)
	assert.Empty(t, result.Report.Moves)
}

func TestResolveNonResolvableKind(t *testing.T) {
	catalog := buildCatalog(
		entry{"A", types.KindBiome, 40, ""},
		entry{"B", types.KindBiome, 40, ""},
	)
	ranking := priority.NewRanking([]string{"A", "B"}, vanilla)

	result, err := newTestResolver(31999).Resolve(catalog, ranking, preferred.Table{})
	require.NoError(t, err)

	assert.False(t, resolution(t, result, types.KindBiome, "A", 40).IsAssigned())
	assert.False(t, resolution(t, result, types.KindBiome, "B", 40).IsAssigned())
	require.Len(t, result.Report.Unresolved, 1)
	assert.Equal(t, "B", result.Report.Unresolved[0].Kept.Mod)
}

func TestResolveDeterministic(t *testing.T) {
	catalog := buildCatalog(
		entry{"A", types.KindBlock, 10, "a"},
		entry{"B", types.KindBlock, 10, "b"},
		entry{"C", types.KindBlock, 10, "c"},
		entry{"a", types.KindBlock, 10, "d"},
		entry{"A", types.KindItem, 6000, ""},
		entry{"B", types.KindItem, 6000, ""},
		entry{"C", types.KindItem, 6001, ""},
		entry{"D", types.KindItem, 6001, ""},
	)
	ranking := priority.NewRanking([]string{"C"}, vanilla)
	prefs := preferred.Table{"b": 210}
	r := newTestResolver(31999)

	first, err := r.Resolve(catalog, ranking, prefs)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := r.Resolve(catalog, ranking, prefs)
		require.NoError(t, err)
		assert.True(t, first.Equal(again))
		assert.Equal(t, first.Report, again.Report)
	}
}

func TestResultEditsFor(t *testing.T) {
	catalog := buildCatalog(
		entry{"A", types.KindBlock, 1000, ""},
		entry{"B", types.KindBlock, 1000, ""},
		entry{"A", types.KindItem, 6000, ""},
		entry{"B", types.KindItem, 6000, ""},
	)
	ranking := priority.NewRanking([]string{"A", "B"}, vanilla)

	result, err := newTestResolver(31999).Resolve(catalog, ranking, preferred.Table{})
	require.NoError(t, err)

	assert.Equal(t, []types.ConfigEdit{
		{Mod: "A", Kind: types.KindBlock, OldID: 1000, NewID: 500},
		{Mod: "A", Kind: types.KindItem, OldID: 6000, NewID: 5000},
	}, result.EditsFor("A"))
	assert.Empty(t, result.EditsFor("B"))
}

func TestGroups(t *testing.T) {
	m := types.NewResolutionMap(types.KindBlock)
	for _, key := range []types.ResolutionKey{
		{Mod: "A", DefaultID: 30},
		{Mod: "B", DefaultID: 30},
		{Mod: "C", DefaultID: 20},
		{Mod: "D", DefaultID: 5},
	} {
		m.Seed(key)
	}
	require.NoError(t, m.Assign(types.ResolutionKey{Mod: "D", DefaultID: 5}, 20))

	groups := Groups(m)
	require.Len(t, groups, 2)
	assert.Equal(t, 20, groups[0].ID)
	assert.Equal(t, []types.ResolutionKey{{Mod: "C", DefaultID: 20}, {Mod: "D", DefaultID: 5}}, groups[0].Members)
	assert.Equal(t, 30, groups[1].ID)
}

package resolve

import (
	"sort"

	"github.com/arthur-debert/modresolve/pkg/types"
)

// ConflictGroup is an effective ID and every key currently resolving to it
type ConflictGroup struct {
	ID      int
	Members []types.ResolutionKey
}

// Groups returns the conflict groups of m with more than one member,
// ordered by ascending ID
func Groups(m *types.ResolutionMap) []ConflictGroup {
	byID := m.Groups()
	idList := make([]int, 0, len(byID))
	for id, members := range byID {
		if len(members) > 1 {
			idList = append(idList, id)
		}
	}
	sort.Ints(idList)

	groups := make([]ConflictGroup, 0, len(idList))
	for _, id := range idList {
		groups = append(groups, ConflictGroup{ID: id, Members: byID[id]})
	}
	return groups
}

// Move records a key pushed off a contested ID
type Move struct {
	Kind   types.Kind          `json:"kind" yaml:"kind" toml:"kind"`
	Key    types.ResolutionKey `json:"-" yaml:"-" toml:"-"`
	From   int                 `json:"from" yaml:"from" toml:"from"`
	To     int                 `json:"to" yaml:"to" toml:"to"`
	KeptBy types.ResolutionKey `json:"-" yaml:"-" toml:"-"`
	// Derived marks the item form of a block; its ID usually follows the
	// block's in the mod's config
	Derived bool `json:"derived,omitempty" yaml:"derived,omitempty" toml:"derived,omitempty"`
}

// PreferredHit records a preferred ID applied to a key
type PreferredHit struct {
	Kind types.Kind
	Key  types.ResolutionKey
	Name string
	ID   int
}

// Collision is a conflict group left as is. Kept is zero for groups
// skipped because vanilla takes part.
type Collision struct {
	Kind    types.Kind
	ID      int
	Members []types.ResolutionKey
	Kept    types.ResolutionKey
}

// Report summarizes what a resolution run did
type Report struct {
	Moves              []Move
	Preferred          []PreferredHit
	VanillaSkipped     []Collision
	Unresolved         []Collision
	UnmatchedPreferred []string
}

// Result holds the resolution map of every kind and the run report
type Result struct {
	Maps   map[types.Kind]*types.ResolutionMap
	Report Report
}

func newResult() *Result {
	return &Result{Maps: make(map[types.Kind]*types.ResolutionMap)}
}

// Kinds returns the resolved kinds in sorted order
func (r *Result) Kinds() []types.Kind {
	kinds := make([]types.Kind, 0, len(r.Maps))
	for kind := range r.Maps {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Map returns the resolution map for kind
func (r *Result) Map(kind types.Kind) (*types.ResolutionMap, bool) {
	m, ok := r.Maps[kind]
	return m, ok
}

// EditsFor returns every config edit for mod across kinds
func (r *Result) EditsFor(mod string) []types.ConfigEdit {
	var edits []types.ConfigEdit
	for _, kind := range r.Kinds() {
		edits = append(edits, r.Maps[kind].Edits(mod)...)
	}
	return edits
}

// Equal reports whether two results hold the same resolution maps
func (r *Result) Equal(other *Result) bool {
	if len(r.Maps) != len(other.Maps) {
		return false
	}
	for kind, m := range r.Maps {
		o, ok := other.Maps[kind]
		if !ok || !m.Equal(o) {
			return false
		}
	}
	return true
}

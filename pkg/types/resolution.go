package types

import (
	"fmt"
	"sort"

	"github.com/arthur-debert/modresolve/pkg/errors"
)

// ResolutionKey identifies one declared ID within a kind
type ResolutionKey struct {
	Mod       string
	DefaultID int
}

func (k ResolutionKey) String() string {
	return fmt.Sprintf("%s@%d", k.Mod, k.DefaultID)
}

// Resolution is either Unresolved (keep the default ID) or Assigned(id)
type Resolution struct {
	id       int
	assigned bool
}

// Unresolved returns the resolution that keeps the default ID
func Unresolved() Resolution {
	return Resolution{}
}

// Assigned returns a resolution that moves the key to id
func Assigned(id int) Resolution {
	return Resolution{id: id, assigned: true}
}

// IsAssigned reports whether an ID has been assigned
func (r Resolution) IsAssigned() bool {
	return r.assigned
}

// ID returns the assigned ID and whether there is one
func (r Resolution) ID() (int, bool) {
	return r.id, r.assigned
}

func (r Resolution) String() string {
	if !r.assigned {
		return "unresolved"
	}
	return fmt.Sprintf("assigned(%d)", r.id)
}

// ResolutionMap holds the resolution of every key of one kind
type ResolutionMap struct {
	Kind    Kind
	entries map[ResolutionKey]Resolution
}

// NewResolutionMap creates an empty map for kind
func NewResolutionMap(kind Kind) *ResolutionMap {
	return &ResolutionMap{
		Kind:    kind,
		entries: make(map[ResolutionKey]Resolution),
	}
}

// Seed registers key as Unresolved. Seeding an existing key is a no-op.
func (m *ResolutionMap) Seed(key ResolutionKey) {
	if _, ok := m.entries[key]; !ok {
		m.entries[key] = Unresolved()
	}
}

// Get returns the resolution for key
func (m *ResolutionMap) Get(key ResolutionKey) (Resolution, bool) {
	r, ok := m.entries[key]
	return r, ok
}

// Assign moves key to id. A key can be assigned once; a second attempt, or
// a key that was never seeded, means the resolver lost track of its state.
func (m *ResolutionMap) Assign(key ResolutionKey, id int) error {
	current, ok := m.entries[key]
	if !ok {
		return errors.Newf(errors.ErrKeyNotFound, "%s key %s is not in the catalog", m.Kind, key).
			WithDetail("kind", string(m.Kind)).
			WithDetail("key", key.String())
	}
	if current.IsAssigned() {
		prev, _ := current.ID()
		return errors.Newf(errors.ErrAlreadyResolved, "%s key %s already resolved to %d", m.Kind, key, prev).
			WithDetail("kind", string(m.Kind)).
			WithDetail("key", key.String()).
			WithDetail("requested", id)
	}
	m.entries[key] = Assigned(id)
	return nil
}

// Effective returns the ID key currently resolves to
func (m *ResolutionMap) Effective(key ResolutionKey) int {
	if id, ok := m.entries[key].ID(); ok {
		return id
	}
	return key.DefaultID
}

// Len returns the number of keys
func (m *ResolutionMap) Len() int {
	return len(m.entries)
}

// Keys returns all keys ordered by mod then default ID
func (m *ResolutionMap) Keys() []ResolutionKey {
	keys := make([]ResolutionKey, 0, len(m.entries))
	for key := range m.entries {
		keys = append(keys, key)
	}
	sortKeys(keys)
	return keys
}

// Groups buckets keys by effective ID. Members of each bucket are sorted.
func (m *ResolutionMap) Groups() map[int][]ResolutionKey {
	groups := make(map[int][]ResolutionKey)
	for _, key := range m.Keys() {
		id := m.Effective(key)
		groups[id] = append(groups[id], key)
	}
	return groups
}

// Used returns every default and effective ID present in the map
func (m *ResolutionMap) Used() map[int]bool {
	used := make(map[int]bool, len(m.entries))
	for key := range m.entries {
		used[key.DefaultID] = true
		used[m.Effective(key)] = true
	}
	return used
}

// Edits returns the config edits for mod: every assigned key whose ID
// differs from its default, ordered by old ID.
func (m *ResolutionMap) Edits(mod string) []ConfigEdit {
	var edits []ConfigEdit
	for _, key := range m.Keys() {
		if key.Mod != mod {
			continue
		}
		id, ok := m.entries[key].ID()
		if !ok || id == key.DefaultID {
			continue
		}
		edits = append(edits, ConfigEdit{Mod: mod, Kind: m.Kind, OldID: key.DefaultID, NewID: id})
	}
	return edits
}

// Equal reports whether two maps hold the same resolutions
func (m *ResolutionMap) Equal(other *ResolutionMap) bool {
	if m.Kind != other.Kind || len(m.entries) != len(other.entries) {
		return false
	}
	for key, r := range m.entries {
		if o, ok := other.entries[key]; !ok || o != r {
			return false
		}
	}
	return true
}

func sortKeys(keys []ResolutionKey) {
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Mod != keys[j].Mod {
			return keys[i].Mod < keys[j].Mod
		}
		return keys[i].DefaultID < keys[j].DefaultID
	})
}

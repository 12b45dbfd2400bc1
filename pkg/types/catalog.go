package types

import (
	"sort"
	"strconv"
)

// Well-known attribute names on a catalog entry
const (
	// AttrName is the stable symbolic name used to match preferred IDs
	AttrName = "name"
	// AttrDerived marks an item that exists only as the item form of a block
	AttrDerived = "derived"
)

// NullName is the placeholder some scanners emit for unnamed entries
const NullName = "null"

// Attributes holds the free-form properties recorded for one entry
type Attributes map[string]string

// Name returns the stable symbolic name, or "" when absent or a placeholder
func (a Attributes) Name() string {
	name := a[AttrName]
	if name == NullName {
		return ""
	}
	return name
}

// Derived reports whether the entry is the item form of a block
func (a Attributes) Derived() bool {
	v, err := strconv.ParseBool(a[AttrDerived])
	return err == nil && v
}

// ContentEntry is one declared ID of one mod
type ContentEntry struct {
	Mod        string
	Kind       Kind
	DefaultID  int
	Attributes Attributes
}

// Key returns the resolution key for this entry
func (e ContentEntry) Key() ResolutionKey {
	return ResolutionKey{Mod: e.Mod, DefaultID: e.DefaultID}
}

// ModContent maps kind to default ID to attributes for a single mod
type ModContent map[Kind]map[int]Attributes

// Catalog maps a mod identifier to everything it declares.
// The mod identifier doubles as the mod's stable name in priority lists.
type Catalog map[string]ModContent

// Add records an entry, creating intermediate maps as needed
func (c Catalog) Add(entry ContentEntry) {
	content, ok := c[entry.Mod]
	if !ok {
		content = make(ModContent)
		c[entry.Mod] = content
	}
	ids, ok := content[entry.Kind]
	if !ok {
		ids = make(map[int]Attributes)
		content[entry.Kind] = ids
	}
	attrs := entry.Attributes
	if attrs == nil {
		attrs = Attributes{}
	}
	ids[entry.DefaultID] = attrs
}

// Mods returns the mod identifiers in sorted order
func (c Catalog) Mods() []string {
	mods := make([]string, 0, len(c))
	for mod := range c {
		mods = append(mods, mod)
	}
	sort.Strings(mods)
	return mods
}

// Kinds returns every kind declared by any mod, sorted
func (c Catalog) Kinds() []Kind {
	seen := make(map[Kind]bool)
	for _, content := range c {
		for kind := range content {
			seen[kind] = true
		}
	}
	kinds := make([]Kind, 0, len(seen))
	for kind := range seen {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// Entries returns all entries of a kind ordered by mod then default ID
func (c Catalog) Entries(kind Kind) []ContentEntry {
	var entries []ContentEntry
	for _, mod := range c.Mods() {
		ids := c[mod][kind]
		sorted := make([]int, 0, len(ids))
		for id := range ids {
			sorted = append(sorted, id)
		}
		sort.Ints(sorted)
		for _, id := range sorted {
			entries = append(entries, ContentEntry{
				Mod:        mod,
				Kind:       kind,
				DefaultID:  id,
				Attributes: ids[id],
			})
		}
	}
	return entries
}

// Lookup returns the attributes for a key of the given kind
func (c Catalog) Lookup(kind Kind, key ResolutionKey) (Attributes, bool) {
	content, ok := c[key.Mod]
	if !ok {
		return nil, false
	}
	attrs, ok := content[kind][key.DefaultID]
	return attrs, ok
}

// Restrict returns a catalog holding only the wanted mods plus the vanilla
// pseudo-mod. Unknown wanted names are returned so callers can warn.
func (c Catalog) Restrict(wanted []string, vanilla string) (Catalog, []string) {
	restricted := make(Catalog)
	var missing []string
	for _, mod := range wanted {
		content, ok := c[mod]
		if !ok {
			missing = append(missing, mod)
			continue
		}
		restricted[mod] = content
	}
	if content, ok := c[vanilla]; ok {
		restricted[vanilla] = content
	}
	return restricted, missing
}

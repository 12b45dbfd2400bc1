package config

import (
	"os"
	"sort"

	"github.com/arthur-debert/modresolve/pkg/types"
)

// Vanilla names the base game's pseudo-mod
type Vanilla struct {
	Mod string `koanf:"mod"`
}

// Range is the configured allocation range of one kind. The low range is
// optional and only used when LowCeiling is set.
type Range struct {
	Min        int `koanf:"min"`
	Max        int `koanf:"max"`
	LowMin     int `koanf:"low_min"`
	LowMax     int `koanf:"low_max"`
	LowCeiling int `koanf:"low_ceiling"`
}

// Resolve holds conflict resolver settings
type Resolve struct {
	// Kinds lists the kinds that get new IDs; collisions in other kinds
	// are only reported
	Kinds         []string `koanf:"kinds"`
	StripPrefixes []string `koanf:"strip_prefixes"`
}

// Patch holds config patcher settings
type Patch struct {
	ItemOffset        int      `koanf:"item_offset"`
	UnshiftedItemMods []string `koanf:"unshifted_item_mods"`
	SectionKinds      []string `koanf:"section_kinds"`
}

// Install holds installer settings
type Install struct {
	ConfigIgnore []string `koanf:"config_ignore"`
}

// Paths holds input and output locations. Relative values are resolved
// against the root by Load.
type Paths struct {
	Catalog      string `koanf:"catalog"`
	PriorityList string `koanf:"priority_list"`
	WantedList   string `koanf:"wanted_list"`
	IDDump       string `koanf:"id_dump"`
	ModsSource   string `koanf:"mods_source"`
	ConfigSource string `koanf:"config_source"`
	TargetMods   string `koanf:"target_mods"`
	TargetConfig string `koanf:"target_config"`
}

// Config is the main configuration structure
type Config struct {
	Vanilla Vanilla          `koanf:"vanilla"`
	IDs     map[string]Range `koanf:"ids"`
	Resolve Resolve          `koanf:"resolve"`
	Patch   Patch            `koanf:"patch"`
	Install Install          `koanf:"install"`
	Paths   Paths            `koanf:"paths"`

	// Sources lists the files that contributed, in load order
	Sources []string `koanf:"-"`
}

// KindRanges converts the configured ranges into allocator ranges
func (c *Config) KindRanges() map[types.Kind]types.KindRange {
	ranges := make(map[types.Kind]types.KindRange, len(c.IDs))
	for name, r := range c.IDs {
		kr := types.KindRange{General: types.IDRange{Min: r.Min, Max: r.Max}}
		if r.LowCeiling > 0 {
			kr.Low = &types.IDRange{Min: r.LowMin, Max: r.LowMax}
			kr.LowCeiling = r.LowCeiling
		}
		ranges[types.Kind(name)] = kr
	}
	return ranges
}

// ResolvableKinds returns the kinds that get new IDs on collision
func (c *Config) ResolvableKinds() map[types.Kind]bool {
	return kindSet(c.Resolve.Kinds)
}

// SectionKinds returns the kinds whose config entries only count inside
// their own "<kind> {" section
func (c *Config) SectionKinds() map[types.Kind]bool {
	return kindSet(c.Patch.SectionKinds)
}

// UnshiftedItemMods returns the mods whose configs store raw item IDs
func (c *Config) UnshiftedItemMods() map[string]bool {
	mods := make(map[string]bool, len(c.Patch.UnshiftedItemMods))
	for _, m := range c.Patch.UnshiftedItemMods {
		mods[m] = true
	}
	return mods
}

// ConfigIgnore returns the set of config file names never copied or patched
func (c *Config) ConfigIgnore() map[string]bool {
	names := make(map[string]bool, len(c.Install.ConfigIgnore))
	for _, n := range c.Install.ConfigIgnore {
		names[n] = true
	}
	return names
}

func kindSet(names []string) map[types.Kind]bool {
	set := make(map[types.Kind]bool, len(names))
	for _, n := range names {
		set[types.Kind(n)] = true
	}
	return set
}

func sortedRangeNames(ids map[string]Range) []string {
	names := make([]string, 0, len(ids))
	for name := range ids {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

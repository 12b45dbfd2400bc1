package resolve

import (
	"sort"
	"strconv"
	"strings"

	"github.com/arthur-debert/modresolve/pkg/errors"
	"github.com/arthur-debert/modresolve/pkg/ids"
	"github.com/arthur-debert/modresolve/pkg/logging"
	"github.com/arthur-debert/modresolve/pkg/preferred"
	"github.com/arthur-debert/modresolve/pkg/priority"
	"github.com/arthur-debert/modresolve/pkg/types"
	"github.com/rs/zerolog"
)

// Options configures a Resolver
type Options struct {
	Allocator *ids.Allocator
	// ResolvableKinds get new IDs on collision; other kinds are reported only
	ResolvableKinds map[types.Kind]bool
	// StripPrefixes are removed from a preferred name when the full name is
	// not found, e.g. "tile." so "tile.ore" matches an entry named "ore"
	StripPrefixes []string
}

// Resolver builds per-kind resolution maps. It keeps no state between
// calls; every Resolve starts from the catalog.
type Resolver struct {
	opts   Options
	logger zerolog.Logger
}

// New creates a Resolver
func New(opts Options) *Resolver {
	return &Resolver{
		opts:   opts,
		logger: logging.GetLogger("resolve"),
	}
}

// member is one key of a conflict group. At most one member of a group may
// be pre-assigned by a preferred ID.
type member struct {
	key         types.ResolutionKey
	preAssigned bool
}

// Resolve computes resolution maps for every kind in catalog. The catalog
// must already be restricted to wanted mods plus vanilla.
func (r *Resolver) Resolve(catalog types.Catalog, ranking *priority.Ranking, prefs preferred.Table) (*Result, error) {
	done := logging.LogOperationStart(r.logger, "resolve")
	defer done()

	result := newResult()
	matched := make(map[string]bool)

	for _, kind := range catalog.Kinds() {
		m, err := r.resolveKind(kind, catalog, ranking, prefs, matched, result)
		if err != nil {
			return nil, err
		}
		result.Maps[kind] = m
	}

	for _, name := range prefs.Names() {
		if !matched[name] {
			result.Report.UnmatchedPreferred = append(result.Report.UnmatchedPreferred, name)
		}
	}

	r.logger.Info().
		Int("kinds", len(result.Maps)).
		Int("moves", len(result.Report.Moves)).
		Int("preferred", len(result.Report.Preferred)).
		Int("vanillaSkipped", len(result.Report.VanillaSkipped)).
		Int("unresolved", len(result.Report.Unresolved)).
		Msg("Resolution complete")

	return result, nil
}

func (r *Resolver) resolveKind(
	kind types.Kind,
	catalog types.Catalog,
	ranking *priority.Ranking,
	prefs preferred.Table,
	matched map[string]bool,
	result *Result,
) (*types.ResolutionMap, error) {
	logger := r.logger.With().Str("kind", string(kind)).Logger()
	entries := catalog.Entries(kind)

	// 1. Seed
	m := types.NewResolutionMap(kind)
	for _, e := range entries {
		m.Seed(e.Key())
	}

	// 2. Stable-name index
	index := buildNameIndex(entries, logger)

	// 3. Preferred IDs
	for _, name := range prefs.Names() {
		key, ok := r.lookupName(index, name)
		if !ok {
			continue
		}
		matched[name] = true
		if ranking.IsVanilla(key.Mod) {
			continue
		}
		current, _ := m.Get(key)
		if current.IsAssigned() {
			prev, _ := current.ID()
			return nil, errors.Newf(errors.ErrDoublePreference,
				"%s %s is preferred twice (%d and %d)", kind, key, prev, prefs[name]).
				WithDetail("kind", string(kind)).
				WithDetail("key", key.String()).
				WithDetail("name", name)
		}
		if err := m.Assign(key, prefs[name]); err != nil {
			return nil, err
		}
		result.Report.Preferred = append(result.Report.Preferred, PreferredHit{
			Kind: kind, Key: key, Name: name, ID: prefs[name],
		})
		logger.Debug().
			Str("key", key.String()).
			Str("name", name).
			Int("id", prefs[name]).
			Msg("Applied preferred ID")
	}

	// 4. Conflict groups on effective IDs
	used := ids.Used(m.Used())
	groups := Groups(m)

	// 5. Resolve each group
	for _, group := range groups {
		if containsVanilla(group.Members, ranking) {
			logger.Info().
				Int("id", group.ID).
				Strs("mods", modsOf(group.Members)).
				Msg("Conflict overrides vanilla, leaving it alone")
			result.Report.VanillaSkipped = append(result.Report.VanillaSkipped, Collision{
				Kind: kind, ID: group.ID, Members: group.Members,
			})
			continue
		}

		ranked, err := rankMembers(kind, group, m, ranking)
		if err != nil {
			return nil, err
		}
		keeper := ranked[len(ranked)-1]
		movers := ranked[:len(ranked)-1]

		logger.Info().
			Int("id", group.ID).
			Str("keeping", keeper.key.String()).
			Bool("preferred", keeper.preAssigned).
			Msg("Conflict")

		if !r.opts.ResolvableKinds[kind] {
			result.Report.Unresolved = append(result.Report.Unresolved, Collision{
				Kind: kind, ID: group.ID, Members: group.Members, Kept: keeper.key,
			})
			continue
		}

		for _, mv := range movers {
			newID, err := r.opts.Allocator.Find(used, kind, mv.key.DefaultID)
			if err != nil {
				return nil, err
			}
			used[newID] = true

			if current, _ := m.Get(mv.key); current.IsAssigned() {
				prev, _ := current.ID()
				return nil, errors.Newf(errors.ErrAlreadyResolved,
					"%s %s already resolved to %d before moving", kind, mv.key, prev).
					WithDetail("kind", string(kind)).
					WithDetail("key", mv.key.String())
			}
			if err := m.Assign(mv.key, newID); err != nil {
				return nil, err
			}

			attrs, _ := catalog.Lookup(kind, mv.key)
			result.Report.Moves = append(result.Report.Moves, Move{
				Kind: kind, Key: mv.key, From: group.ID, To: newID, KeptBy: keeper.key,
				Derived: attrs.Derived(),
			})
			logger.Info().
				Str("key", mv.key.String()).
				Int("from", group.ID).
				Int("to", newID).
				Bool("derived", attrs.Derived()).
				Msg("Moving")
		}
	}

	return m, nil
}

// buildNameIndex maps stable names to keys. A repeated name is indexed
// under name+defaultID so both entries stay reachable.
func buildNameIndex(entries []types.ContentEntry, logger zerolog.Logger) map[string]types.ResolutionKey {
	index := make(map[string]types.ResolutionKey, len(entries))
	for _, e := range entries {
		name := e.Attributes.Name()
		if name == "" {
			continue
		}
		if _, taken := index[name]; taken {
			name += strconv.Itoa(e.DefaultID)
			if _, taken := index[name]; taken {
				logger.Warn().
					Str("name", name).
					Str("key", e.Key().String()).
					Msg("Stable name collides even after disambiguation, not indexed")
				continue
			}
		}
		index[name] = e.Key()
	}
	return index
}

func (r *Resolver) lookupName(index map[string]types.ResolutionKey, name string) (types.ResolutionKey, bool) {
	if key, ok := index[name]; ok {
		return key, true
	}
	for _, prefix := range r.opts.StripPrefixes {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		if key, ok := index[strings.TrimPrefix(name, prefix)]; ok {
			return key, true
		}
	}
	return types.ResolutionKey{}, false
}

// rankMembers orders a group lowest priority first, with the pre-assigned
// member (if any) moved to the end so it keeps the contested ID
func rankMembers(kind types.Kind, group ConflictGroup, m *types.ResolutionMap, ranking *priority.Ranking) ([]member, error) {
	var plain []types.ResolutionKey
	var pre []types.ResolutionKey
	for _, key := range group.Members {
		if r, _ := m.Get(key); r.IsAssigned() {
			pre = append(pre, key)
			continue
		}
		plain = append(plain, key)
	}
	if len(pre) > 1 {
		keys := make([]string, len(pre))
		for i, k := range pre {
			keys[i] = k.String()
		}
		return nil, errors.Newf(errors.ErrMultiplePreAssigned,
			"%s conflict at %d has %d pre-assigned members", kind, group.ID, len(pre)).
			WithDetail("kind", string(kind)).
			WithDetail("keys", keys)
	}

	ranking.SortKeys(plain)
	ranked := make([]member, 0, len(group.Members))
	for _, key := range plain {
		ranked = append(ranked, member{key: key})
	}
	for _, key := range pre {
		ranked = append(ranked, member{key: key, preAssigned: true})
	}
	return ranked, nil
}

func containsVanilla(keys []types.ResolutionKey, ranking *priority.Ranking) bool {
	for _, k := range keys {
		if ranking.IsVanilla(k.Mod) {
			return true
		}
	}
	return false
}

func modsOf(keys []types.ResolutionKey) []string {
	mods := make([]string, len(keys))
	for i, k := range keys {
		mods[i] = k.Mod
	}
	sort.Strings(mods)
	return mods
}

package priority

import (
	"bufio"
	"os"
	"sort"
	"strings"

	"github.com/arthur-debert/modresolve/pkg/errors"
	"github.com/arthur-debert/modresolve/pkg/logging"
	"github.com/arthur-debert/modresolve/pkg/types"
)

// Rank values reserved outside the listed positions
const (
	// VanillaRank sits below everything
	VanillaRank = -2
	// UnlistedRank is used for mods missing from the priority list; they
	// rank above vanilla and below every listed mod
	UnlistedRank = -1
)

// Ranking orders mods by resolution priority. It is computed once per run
// from the priority list so comparisons are map lookups.
type Ranking struct {
	ranks   map[string]int
	vanilla string
}

// NewRanking builds a ranking from a list ordered lowest priority first.
// A name listed twice keeps its last (highest) position.
func NewRanking(order []string, vanilla string) *Ranking {
	ranks := make(map[string]int, len(order))
	for i, name := range order {
		ranks[name] = i
	}
	return &Ranking{ranks: ranks, vanilla: vanilla}
}

// Vanilla returns the vanilla pseudo-mod name
func (r *Ranking) Vanilla() string {
	return r.vanilla
}

// IsVanilla reports whether mod is the vanilla pseudo-mod
func (r *Ranking) IsVanilla(mod string) bool {
	return mod == r.vanilla
}

// Rank returns the position of mod; higher wins a contested ID
func (r *Ranking) Rank(mod string) int {
	if mod == r.vanilla {
		return VanillaRank
	}
	if rank, ok := r.ranks[mod]; ok {
		return rank
	}
	return UnlistedRank
}

// Listed reports whether mod appears in the priority list
func (r *Ranking) Listed(mod string) bool {
	_, ok := r.ranks[mod]
	return ok
}

// Less orders a before b: lower rank first, ties broken by case-insensitive
// name and then by exact name so the order is total
func (r *Ranking) Less(a, b string) bool {
	ra, rb := r.Rank(a), r.Rank(b)
	if ra != rb {
		return ra < rb
	}
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	return a < b
}

// SortKeys orders resolution keys lowest priority first. Keys of the same
// mod are ordered by default ID.
func (r *Ranking) SortKeys(keys []types.ResolutionKey) {
	sort.SliceStable(keys, func(i, j int) bool {
		if keys[i].Mod != keys[j].Mod {
			return r.Less(keys[i].Mod, keys[j].Mod)
		}
		return keys[i].DefaultID < keys[j].DefaultID
	})
}

// InstallOrder returns the catalog's mods, excluding vanilla, lowest
// priority first
func (r *Ranking) InstallOrder(catalog types.Catalog) []string {
	var mods []string
	for _, mod := range catalog.Mods() {
		if r.IsVanilla(mod) {
			continue
		}
		mods = append(mods, mod)
	}
	sort.SliceStable(mods, func(i, j int) bool { return r.Less(mods[i], mods[j]) })
	return mods
}

// ReadList reads a one-name-per-line list. Blank lines and lines starting
// with # are skipped. A missing file yields (nil, false, nil).
func ReadList(fs types.FS, path string) ([]string, bool, error) {
	logger := logging.GetLogger("priority")

	data, err := fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Str("path", path).Msg("List file not found")
			return nil, false, nil
		}
		return nil, false, errors.Wrap(err, errors.ErrListLoad, "cannot read list").
			WithDetail("path", path)
	}

	var names []string
	scanner := bufio.NewScanner(strings.NewReader(string(data)))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, false, errors.Wrap(err, errors.ErrListLoad, "cannot parse list").
			WithDetail("path", path)
	}

	logger.Debug().Str("path", path).Int("entries", len(names)).Msg("List loaded")
	return names, true, nil
}

// WriteList writes names one per line, replacing path
func WriteList(fs types.FS, path string, header string, names []string) error {
	var b strings.Builder
	if header != "" {
		for _, line := range strings.Split(header, "\n") {
			b.WriteString("# " + line + "\n")
		}
	}
	for _, name := range names {
		b.WriteString(name + "\n")
	}
	if err := fs.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "cannot write list").
			WithDetail("path", path)
	}
	return nil
}

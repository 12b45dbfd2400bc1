// Package ids finds free numeric IDs inside a kind's allocation range.
package ids

import (
	"github.com/arthur-debert/modresolve/pkg/errors"
	"github.com/arthur-debert/modresolve/pkg/types"
)

// Used is the set of IDs taken within one kind
type Used map[int]bool

// Allocator performs first-fit searches. It holds only the configured
// ranges; the used set belongs to the caller.
type Allocator struct {
	ranges map[types.Kind]types.KindRange
}

// NewAllocator creates an allocator over the given per-kind ranges
func NewAllocator(ranges map[types.Kind]types.KindRange) *Allocator {
	return &Allocator{ranges: ranges}
}

// Range returns the range new IDs for originalID of kind are drawn from
func (a *Allocator) Range(kind types.Kind, originalID int) (types.IDRange, bool) {
	kr, ok := a.ranges[kind]
	if !ok {
		return types.IDRange{}, false
	}
	return kr.Select(originalID), true
}

// Find returns the lowest ID of the selected range not present in used.
// A full range is fatal: there is no safe place to put the entry.
func (a *Allocator) Find(used Used, kind types.Kind, originalID int) (int, error) {
	r, ok := a.Range(kind, originalID)
	if !ok {
		return 0, errors.Newf(errors.ErrInvalidInput, "no ID range configured for kind %s", kind).
			WithDetail("kind", string(kind))
	}

	for id := r.Min; r.Contains(id); id++ {
		if !used[id] {
			return id, nil
		}
	}

	return 0, errors.Newf(errors.ErrIDExhausted, "all %s IDs in %s are used", kind, r).
		WithDetail("kind", string(kind)).
		WithDetail("range", r.String()).
		WithDetail("originalID", originalID)
}

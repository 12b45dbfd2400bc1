package types

import "fmt"

// IDRange is an inclusive interval of numeric IDs
type IDRange struct {
	Min int
	Max int
}

// Contains reports whether id lies in the range
func (r IDRange) Contains(id int) bool {
	return id >= r.Min && id <= r.Max
}

func (r IDRange) String() string {
	return fmt.Sprintf("%d..%d", r.Min, r.Max)
}

// KindRange describes where new IDs for one kind may be drawn from.
// Blocks carry a second, low range for terrain generation: a block whose
// original default ID is below LowCeiling must stay below it.
type KindRange struct {
	General    IDRange
	Low        *IDRange
	LowCeiling int
}

// Select returns the range replacement IDs for originalID come from
func (k KindRange) Select(originalID int) IDRange {
	if k.Low != nil && originalID < k.LowCeiling {
		return *k.Low
	}
	return k.General
}

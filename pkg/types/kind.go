package types

// Kind partitions the numeric ID space. Each kind has its own resolution
// map and its own allocation range.
type Kind string

const (
	KindBlock Kind = "block"
	KindItem  Kind = "item"
	KindBiome Kind = "biome"
)

func (k Kind) String() string {
	return string(k)
}

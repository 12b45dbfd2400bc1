// Package resolve reconciles ID collisions between mods.
//
// For each kind the resolver seeds a resolution map from the catalog,
// applies preferred IDs from a dump of a previous run, then walks every
// group of keys sharing an effective ID. The highest ranked member keeps
// the ID; the rest are moved to the first free ID of the kind's range.
// Groups involving the vanilla game are never touched.
package resolve

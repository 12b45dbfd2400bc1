package types

import "fmt"

// ConfigEdit instructs the patcher to rewrite oldID to newID in a mod's
// config files
type ConfigEdit struct {
	Mod   string `json:"mod" yaml:"mod" toml:"mod"`
	Kind  Kind   `json:"kind" yaml:"kind" toml:"kind"`
	OldID int    `json:"old_id" yaml:"old_id" toml:"old_id"`
	NewID int    `json:"new_id" yaml:"new_id" toml:"new_id"`
}

func (e ConfigEdit) String() string {
	return fmt.Sprintf("%s %s %d -> %d", e.Mod, e.Kind, e.OldID, e.NewID)
}

// PatchResult is the outcome of applying one edit to one file's text
type PatchResult struct {
	Text           string
	RequiresManual bool
	// EditedLine is the rewritten line when exactly one line changed
	EditedLine string
}

// Edited reports whether a line was rewritten
func (r PatchResult) Edited() bool {
	return r.EditedLine != ""
}

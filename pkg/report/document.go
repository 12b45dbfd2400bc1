package report

import (
	"github.com/arthur-debert/modresolve/pkg/install"
	"github.com/arthur-debert/modresolve/pkg/preferred"
	"github.com/arthur-debert/modresolve/pkg/resolve"
	"github.com/arthur-debert/modresolve/pkg/types"
)

// ResolutionDoc is the structured form of a resolution run
type ResolutionDoc struct {
	Kinds              []KindDoc      `json:"kinds" yaml:"kinds" toml:"kinds"`
	Moves              []MoveDoc      `json:"moves,omitempty" yaml:"moves,omitempty" toml:"moves,omitempty"`
	VanillaSkipped     []CollisionDoc `json:"vanilla_skipped,omitempty" yaml:"vanilla_skipped,omitempty" toml:"vanilla_skipped,omitempty"`
	Unresolved         []CollisionDoc `json:"unresolved,omitempty" yaml:"unresolved,omitempty" toml:"unresolved,omitempty"`
	UnmatchedPreferred []string       `json:"unmatched_preferred,omitempty" yaml:"unmatched_preferred,omitempty" toml:"unmatched_preferred,omitempty"`
}

// KindDoc lists every key of one kind with its effective ID
type KindDoc struct {
	Kind    string     `json:"kind" yaml:"kind" toml:"kind"`
	Entries []EntryDoc `json:"entries" yaml:"entries" toml:"entries"`
}

// EntryDoc is one key of a resolution map
type EntryDoc struct {
	Mod       string `json:"mod" yaml:"mod" toml:"mod"`
	DefaultID int    `json:"default_id" yaml:"default_id" toml:"default_id"`
	ID        int    `json:"id" yaml:"id" toml:"id"`
	Assigned  bool   `json:"assigned" yaml:"assigned" toml:"assigned"`
}

// MoveDoc is a key moved off a contested ID
type MoveDoc struct {
	Kind   string `json:"kind" yaml:"kind" toml:"kind"`
	Mod    string `json:"mod" yaml:"mod" toml:"mod"`
	From   int    `json:"from" yaml:"from" toml:"from"`
	To     int    `json:"to" yaml:"to" toml:"to"`
	KeptBy string `json:"kept_by" yaml:"kept_by" toml:"kept_by"`
	// Derived marks the item form of a block
	Derived bool `json:"derived,omitempty" yaml:"derived,omitempty" toml:"derived,omitempty"`
}

// CollisionDoc is a conflict left in place
type CollisionDoc struct {
	Kind string   `json:"kind" yaml:"kind" toml:"kind"`
	ID   int      `json:"id" yaml:"id" toml:"id"`
	Mods []string `json:"mods" yaml:"mods" toml:"mods"`
	Kept string   `json:"kept,omitempty" yaml:"kept,omitempty" toml:"kept,omitempty"`
}

// OutcomeDoc is the structured form of an install run
type OutcomeDoc struct {
	Ready   bool                  `json:"ready" yaml:"ready" toml:"ready"`
	Pending []PendingDoc          `json:"pending,omitempty" yaml:"pending,omitempty" toml:"pending,omitempty"`
	Merges  []install.MergeNotice `json:"merges,omitempty" yaml:"merges,omitempty" toml:"merges,omitempty"`
	Files   []string              `json:"files,omitempty" yaml:"files,omitempty" toml:"files,omitempty"`
}

// PendingDoc lists the edits of one mod that need manual action
type PendingDoc struct {
	Mod   string             `json:"mod" yaml:"mod" toml:"mod"`
	Edits []types.ConfigEdit `json:"edits" yaml:"edits" toml:"edits"`
}

// PreferredDoc is a parsed ID dump
type PreferredDoc struct {
	IDs []PreferredEntryDoc `json:"ids" yaml:"ids" toml:"ids"`
}

// PreferredEntryDoc is one name of an ID dump
type PreferredEntryDoc struct {
	Name string `json:"name" yaml:"name" toml:"name"`
	ID   int    `json:"id" yaml:"id" toml:"id"`
}

// NewResolutionDoc converts a resolution result
func NewResolutionDoc(result *resolve.Result) ResolutionDoc {
	var doc ResolutionDoc
	for _, kind := range result.Kinds() {
		m := result.Maps[kind]
		kd := KindDoc{Kind: string(kind)}
		for _, key := range m.Keys() {
			r, _ := m.Get(key)
			kd.Entries = append(kd.Entries, EntryDoc{
				Mod:       key.Mod,
				DefaultID: key.DefaultID,
				ID:        m.Effective(key),
				Assigned:  r.IsAssigned(),
			})
		}
		doc.Kinds = append(doc.Kinds, kd)
	}

	for _, mv := range result.Report.Moves {
		doc.Moves = append(doc.Moves, MoveDoc{
			Kind:   string(mv.Kind),
			Mod:    mv.Key.Mod,
			From:   mv.From,
			To:     mv.To,
			KeptBy:  mv.KeptBy.Mod,
			Derived: mv.Derived,
		})
	}
	for _, c := range result.Report.VanillaSkipped {
		doc.VanillaSkipped = append(doc.VanillaSkipped, newCollisionDoc(c))
	}
	for _, c := range result.Report.Unresolved {
		doc.Unresolved = append(doc.Unresolved, newCollisionDoc(c))
	}
	doc.UnmatchedPreferred = result.Report.UnmatchedPreferred
	return doc
}

func newCollisionDoc(c resolve.Collision) CollisionDoc {
	doc := CollisionDoc{Kind: string(c.Kind), ID: c.ID, Kept: c.Kept.Mod}
	for _, key := range c.Members {
		doc.Mods = append(doc.Mods, key.Mod)
	}
	return doc
}

// NewOutcomeDoc converts an install outcome
func NewOutcomeDoc(outcome *install.Outcome) OutcomeDoc {
	doc := OutcomeDoc{
		Ready:  outcome.Ready(),
		Merges: outcome.Merges,
		Files:  outcome.Files,
	}
	for _, mod := range outcome.PendingMods() {
		doc.Pending = append(doc.Pending, PendingDoc{Mod: mod, Edits: outcome.Pending[mod]})
	}
	return doc
}

// NewPreferredDoc converts an ID dump table
func NewPreferredDoc(table preferred.Table) PreferredDoc {
	var doc PreferredDoc
	for _, name := range table.Names() {
		doc.IDs = append(doc.IDs, PreferredEntryDoc{Name: name, ID: table[name]})
	}
	return doc
}

package patch

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/arthur-debert/modresolve/pkg/errors"
	"github.com/arthur-debert/modresolve/pkg/logging"
	"github.com/arthur-debert/modresolve/pkg/types"
	"github.com/rs/zerolog"
)

// CommentPrefix starts every comment the patcher appends
const CommentPrefix = "# modresolve:"

// TodoPrefix starts comments asking for a manual edit
const TodoPrefix = "# TODO: modresolve:"

// Options configures a Patcher
type Options struct {
	// ItemOffset is subtracted from item IDs before matching, since most
	// mods store item IDs unshifted
	ItemOffset int
	// UnshiftedItemMods store item IDs as-is
	UnshiftedItemMods map[string]bool
	// SectionKinds only match inside a "<kind> {" section
	SectionKinds map[types.Kind]bool
	// HeaderKinds are the kinds whose "<kind> {" line moves the section
	// cursor, on top of SectionKinds. Other headers leave it in place.
	HeaderKinds map[types.Kind]bool
}

// Patcher applies config edits to file text
type Patcher struct {
	opts    Options
	headers map[types.Kind]bool
	logger  zerolog.Logger
}

// New creates a Patcher
func New(opts Options) *Patcher {
	headers := make(map[types.Kind]bool, len(opts.SectionKinds)+len(opts.HeaderKinds))
	for kind, ok := range opts.SectionKinds {
		headers[kind] = ok
	}
	for kind, ok := range opts.HeaderKinds {
		headers[kind] = headers[kind] || ok
	}
	return &Patcher{
		opts:    opts,
		headers: headers,
		logger:  logging.GetLogger("patch"),
	}
}

// section is the line cursor: either no section or the kind of the most
// recent kind header. Closing braces and other headers leave it alone.
type section struct {
	kind types.Kind
	in   bool
}

func (s section) is(kind types.Kind) bool {
	return s.in && s.kind == kind
}

// advance returns the cursor after line
func (s section) advance(trimmed string, headers map[types.Kind]bool) section {
	name, ok := strings.CutSuffix(trimmed, " {")
	if ok && headers[types.Kind(name)] {
		return section{kind: types.Kind(name), in: true}
	}
	return s
}

// candidate is a line that may hold the old ID
type candidate struct {
	index int
	line  string
}

// FileIDs returns the IDs an edit is expected to appear as in mod's files
func (p *Patcher) FileIDs(edit types.ConfigEdit) (oldID, newID int) {
	oldID, newID = edit.OldID, edit.NewID
	if edit.Kind == types.KindItem && !p.opts.UnshiftedItemMods[edit.Mod] {
		oldID -= p.opts.ItemOffset
		newID -= p.opts.ItemOffset
	}
	return oldID, newID
}

// ApplyEdit rewrites the single line of text assigning the edit's old ID.
// Lines in exclude were produced by earlier edits and are never touched
// again.
func (p *Patcher) ApplyEdit(text string, edit types.ConfigEdit, exclude map[string]bool) (types.PatchResult, error) {
	oldID, newID := p.FileIDs(edit)
	oldSuffix := "=" + strconv.Itoa(oldID)
	sectioned := p.opts.SectionKinds[edit.Kind]

	lines := strings.Split(text, "\n")
	var candidates []candidate
	var cursor section
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		cursor = cursor.advance(trimmed, p.headers)

		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if exclude[line] {
			continue
		}
		if !strings.HasSuffix(trimmed, oldSuffix) {
			continue
		}
		if sectioned && !cursor.is(edit.Kind) {
			continue
		}
		candidates = append(candidates, candidate{index: i, line: line})
	}

	logger := p.logger.With().
		Str("mod", edit.Mod).
		Str("kind", string(edit.Kind)).
		Int("old", oldID).
		Int("new", newID).
		Logger()

	switch len(candidates) {
	case 0:
		logger.Debug().Msg("No line to patch")
		comment := fmt.Sprintf("%s change %s ID %d to %d (no matching line found)",
			TodoPrefix, edit.Kind, oldID, newID)
		return types.PatchResult{Text: appendComments(text, comment), RequiresManual: true}, nil

	case 1:
		c := candidates[0]
		replaced := replaceTrailingID(c.line, oldID, newID)
		if replaced == c.line {
			return types.PatchResult{}, errors.Newf(errors.ErrNoopReplacement,
				"replacing %s ID %d with %d left the line unchanged", edit.Kind, oldID, newID).
				WithDetail("mod", edit.Mod).
				WithDetail("line", c.line)
		}
		lines[c.index] = replaced
		logger.Debug().Str("line", strings.TrimSpace(replaced)).Msg("Patched line")
		comment := fmt.Sprintf("%s changed %s ID %d to %d: %s",
			CommentPrefix, edit.Kind, oldID, newID, strings.TrimSpace(replaced))
		return types.PatchResult{
			Text:       appendComments(strings.Join(lines, "\n"), comment),
			EditedLine: replaced,
		}, nil

	default:
		logger.Debug().Int("candidates", len(candidates)).Msg("Ambiguous lines, leaving for manual edit")
		comments := make([]string, len(candidates))
		for i, c := range candidates {
			comments[i] = fmt.Sprintf("%s change %s ID %d to %d if this is the line: %s",
				TodoPrefix, edit.Kind, oldID, newID, strings.TrimSpace(c.line))
		}
		return types.PatchResult{Text: appendComments(text, comments...), RequiresManual: true}, nil
	}
}

// replaceTrailingID swaps the number ending line, keeping trailing
// whitespace
func replaceTrailingID(line string, oldID, newID int) string {
	body := strings.TrimRightFunc(line, unicode.IsSpace)
	tail := line[len(body):]
	oldStr := strconv.Itoa(oldID)
	if !strings.HasSuffix(body, oldStr) {
		return line
	}
	return body[:len(body)-len(oldStr)] + strconv.Itoa(newID) + tail
}

func appendComments(text string, comments ...string) string {
	var b strings.Builder
	b.WriteString(text)
	if text != "" && !strings.HasSuffix(text, "\n") {
		b.WriteString("\n")
	}
	for _, c := range comments {
		b.WriteString(c)
		b.WriteString("\n")
	}
	return b.String()
}

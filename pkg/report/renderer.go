package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/arthur-debert/modresolve/pkg/errors"
	"github.com/arthur-debert/modresolve/pkg/install"
	"github.com/arthur-debert/modresolve/pkg/logging"
	"github.com/arthur-debert/modresolve/pkg/preferred"
	"github.com/arthur-debert/modresolve/pkg/resolve"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"
)

// Renderer writes reports in one format
type Renderer struct {
	w      io.Writer
	format Format
	styles styles
}

// NewRenderer creates a Renderer. FormatAuto must be resolved by the
// caller with DetectFormat; it renders as plain text here.
func NewRenderer(w io.Writer, format Format) *Renderer {
	logger := logging.GetLogger("report")

	lr := lipgloss.NewRenderer(w)
	if format != FormatTerminal {
		lr.SetColorProfile(termenv.Ascii)
		pterm.DisableStyling()
	} else {
		pterm.EnableStyling()
	}
	logger.Debug().
		Str("format", format.String()).
		Str("colorProfile", fmt.Sprintf("%v", lr.ColorProfile())).
		Msg("Renderer created")

	return &Renderer{w: w, format: format, styles: newStyles(lr)}
}

// Resolution renders the resolution maps and what the run changed
func (r *Renderer) Resolution(result *resolve.Result) error {
	doc := NewResolutionDoc(result)
	if r.format.Structured() {
		return r.encode(doc)
	}

	var b strings.Builder
	b.WriteString(r.styles.title.Render("ID resolution") + "\n")

	if len(doc.Moves) == 0 {
		b.WriteString(r.styles.success.Render("No IDs needed to move") + "\n")
	} else {
		rows := [][]string{{"Kind", "Mod", "Default", "New", "Kept by"}}
		for _, mv := range doc.Moves {
			kind := mv.Kind
			if mv.Derived {
				kind += " (of block)"
			}
			rows = append(rows, []string{kind, mv.Mod, strconv.Itoa(mv.From), strconv.Itoa(mv.To), mv.KeptBy})
		}
		table, err := r.table(rows)
		if err != nil {
			return err
		}
		b.WriteString(r.styles.heading.Render(fmt.Sprintf("Moved %d IDs", len(doc.Moves))) + "\n")
		b.WriteString(table + "\n")
	}

	if len(result.Report.Preferred) > 0 {
		b.WriteString(r.styles.heading.Render("Preferred IDs applied") + "\n")
		for _, hit := range result.Report.Preferred {
			b.WriteString(r.styles.item.Render(fmt.Sprintf("%s %s -> %d (%s)", hit.Kind, hit.Key, hit.ID, hit.Name)) + "\n")
		}
	}

	if len(doc.VanillaSkipped) > 0 {
		b.WriteString(r.styles.warning.Render("Conflicts with vanilla left alone") + "\n")
		for _, c := range doc.VanillaSkipped {
			b.WriteString(r.styles.item.Render(fmt.Sprintf("%s %d: %s", c.Kind, c.ID, strings.Join(c.Mods, ", "))) + "\n")
		}
	}

	if len(doc.Unresolved) > 0 {
		b.WriteString(r.styles.warning.Render("Unresolved collisions") + "\n")
		for _, c := range doc.Unresolved {
			b.WriteString(r.styles.item.Render(fmt.Sprintf("%s %d: %s (kept by %s)", c.Kind, c.ID, strings.Join(c.Mods, ", "), c.Kept)) + "\n")
		}
	}

	if len(doc.UnmatchedPreferred) > 0 {
		b.WriteString(r.styles.muted.Render(fmt.Sprintf("%d preferred names matched nothing", len(doc.UnmatchedPreferred))) + "\n")
	}

	return r.write(b.String())
}

// Outcome renders the final ready or pending state of an install
func (r *Renderer) Outcome(outcome *install.Outcome) error {
	doc := NewOutcomeDoc(outcome)
	if r.format.Structured() {
		return r.encode(doc)
	}

	var b strings.Builder
	b.WriteString(r.styles.muted.Render(fmt.Sprintf("Wrote %d files", len(doc.Files))) + "\n")

	if len(doc.Merges) > 0 {
		b.WriteString(r.styles.warning.Render("Config files shared by several mods, merge by hand:") + "\n")
		for _, m := range doc.Merges {
			b.WriteString(r.styles.item.Render(r.styles.path.Render(m.Path)+" ("+m.Mod+")") + "\n")
		}
	}

	if doc.Ready {
		b.WriteString(r.styles.success.Render("Ready") + "\n")
		return r.write(b.String())
	}

	b.WriteString(r.styles.err.Render("Manual edits needed:") + "\n")
	for _, p := range doc.Pending {
		b.WriteString(r.styles.heading.Render(p.Mod) + "\n")
		for _, e := range p.Edits {
			b.WriteString(r.styles.item.Render(fmt.Sprintf("%s ID %d -> %d", e.Kind, e.OldID, e.NewID)) + "\n")
		}
	}
	return r.write(b.String())
}

// Preferred renders a parsed ID dump
func (r *Renderer) Preferred(table preferred.Table) error {
	doc := NewPreferredDoc(table)
	if r.format.Structured() {
		return r.encode(doc)
	}
	if len(doc.IDs) == 0 {
		return r.write(r.styles.muted.Render("No IDs found") + "\n")
	}

	rows := [][]string{{"Name", "ID"}}
	for _, e := range doc.IDs {
		rows = append(rows, []string{e.Name, strconv.Itoa(e.ID)})
	}
	out, err := r.table(rows)
	if err != nil {
		return err
	}
	return r.write(out + "\n")
}

// Error renders err for the user
func (r *Renderer) Error(err error) error {
	var b strings.Builder
	b.WriteString(r.styles.err.Render("Error:") + " " + err.Error() + "\n")
	details := errors.GetErrorDetails(err)
	keys := make([]string, 0, len(details))
	for k := range details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(r.styles.muted.Render(fmt.Sprintf("  %s: %v", k, details[k])) + "\n")
	}
	return r.write(b.String())
}

func (r *Renderer) table(rows [][]string) (string, error) {
	out, err := pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData(rows)).Srender()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "cannot render table")
	}
	return out, nil
}

func (r *Renderer) encode(v interface{}) error {
	var data []byte
	var err error
	switch r.format {
	case FormatJSON:
		data, err = json.MarshalIndent(v, "", "  ")
		data = append(data, '\n')
	case FormatYAML:
		data, err = yaml.Marshal(v)
	case FormatTOML:
		data, err = toml.Marshal(v)
	default:
		return errors.Newf(errors.ErrInvalidInput, "format %s is not structured", r.format)
	}
	if err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "cannot encode %s report", r.format)
	}
	return r.write(string(data))
}

func (r *Renderer) write(s string) error {
	if _, err := io.WriteString(r.w, s); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "cannot write report")
	}
	return nil
}

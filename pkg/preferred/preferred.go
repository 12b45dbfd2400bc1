// Package preferred parses ID dumps taken from a running game into the
// preferred-ID table: stable name to the ID the game already uses for it.
//
// Honouring those IDs keeps existing worlds intact when a mod set is
// re-resolved.
package preferred

import (
	"bufio"
	"io"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/arthur-debert/modresolve/pkg/errors"
	"github.com/arthur-debert/modresolve/pkg/logging"
	"github.com/arthur-debert/modresolve/pkg/types"
)

var dumpLine = regexp.MustCompile(`^(Block|Item)\. Name: (.+)\. ID: (\d+)$`)

// Table maps a stable name to its preferred ID
type Table map[string]int

// Names returns the table's names in sorted order
func (t Table) Names() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parse reads dump lines from r. Lines that do not match either the Block
// or Item form are ignored; a name seen twice keeps its last ID.
func Parse(r io.Reader) (Table, error) {
	logger := logging.GetLogger("preferred")
	table := make(Table)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		m := dumpLine.FindStringSubmatch(strings.TrimSpace(scanner.Text()))
		if m == nil {
			continue
		}
		id, err := strconv.Atoi(m[3])
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrListLoad, "ID out of range in dump").
				WithDetail("line", lineNo)
		}
		name := m[2]
		if prev, ok := table[name]; ok && prev != id {
			logger.Warn().
				Str("name", name).
				Int("previous", prev).
				Int("id", id).
				Msg("Name appears twice in ID dump, keeping the later ID")
		}
		table[name] = id
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrListLoad, "cannot read ID dump")
	}
	return table, nil
}

// Load parses the dump at path. A missing dump is an empty table.
func Load(fs types.FS, path string) (Table, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger := logging.GetLogger("preferred")
			logger.Debug().Str("path", path).Msg("No ID dump, no preferred IDs")
			return Table{}, nil
		}
		return nil, errors.Wrap(err, errors.ErrListLoad, "cannot read ID dump").
			WithDetail("path", path)
	}
	return Parse(strings.NewReader(string(data)))
}

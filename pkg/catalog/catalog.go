package catalog

import (
	"encoding/json"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/arthur-debert/modresolve/pkg/errors"
	"github.com/arthur-debert/modresolve/pkg/logging"
	"github.com/arthur-debert/modresolve/pkg/types"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format identifies a catalog encoding
type Format string

const (
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatTOML   Format = "toml"
	FormatSQLite Format = "sqlite"
)

// DetectFormat picks the format from a file extension
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".db", ".sqlite", ".sqlite3":
		return FormatSQLite, nil
	}
	return "", errors.New(errors.ErrCatalogLoad, "unrecognised catalog extension").
		WithDetail("path", path)
}

// document is the on-disk shape shared by the JSON, YAML and TOML formats:
//
//	mods:
//	  IronChest:
//	    kinds:
//	      block:
//	        "500": {name: tile.ironChest}
//
// IDs are map keys and therefore strings in every format.
type document struct {
	Mods map[string]modDocument `json:"mods" yaml:"mods" toml:"mods"`
}

type modDocument struct {
	Kinds map[string]map[string]map[string]string `json:"kinds" yaml:"kinds" toml:"kinds"`
}

// Load reads a catalog from path through fs, choosing the decoder by
// extension. SQLite catalogs are read straight from disk.
func Load(fs types.FS, path string) (types.Catalog, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	if format == FormatSQLite {
		return LoadSQLite(path)
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCatalogLoad, "cannot read catalog").
			WithDetail("path", path)
	}
	return Decode(data, format)
}

// Decode parses catalog bytes in the given text format
func Decode(data []byte, format Format) (types.Catalog, error) {
	logger := logging.GetLogger("catalog")

	var doc document
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &doc)
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	case FormatTOML:
		err = toml.Unmarshal(data, &doc)
	default:
		return nil, errors.Newf(errors.ErrCatalogLoad, "format %s cannot be decoded from bytes", format)
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrCatalogLoad, "invalid %s catalog", format)
	}

	catalog := make(types.Catalog)
	for _, mod := range sortedKeys(doc.Mods) {
		for kind, ids := range doc.Mods[mod].Kinds {
			for rawID, attrs := range ids {
				id, err := strconv.Atoi(strings.TrimSpace(rawID))
				if err != nil {
					return nil, errors.Wrap(err, errors.ErrCatalogLoad, "catalog ID is not a number").
						WithDetail("mod", mod).
						WithDetail("kind", kind).
						WithDetail("id", rawID)
				}
				catalog.Add(types.ContentEntry{
					Mod:        mod,
					Kind:       types.Kind(kind),
					DefaultID:  id,
					Attributes: types.Attributes(attrs),
				})
			}
		}
		// A mod with no declared IDs still counts as installed content
		if _, ok := catalog[mod]; !ok {
			catalog[mod] = make(types.ModContent)
		}
	}

	logger.Debug().
		Int("mods", len(catalog)).
		Str("format", string(format)).
		Msg("Catalog decoded")
	return catalog, nil
}

// Encode writes a catalog in a text format. Used to convert between
// formats and by tests.
func Encode(catalog types.Catalog, format Format) ([]byte, error) {
	doc := document{Mods: make(map[string]modDocument, len(catalog))}
	for mod, content := range catalog {
		md := modDocument{Kinds: make(map[string]map[string]map[string]string, len(content))}
		for kind, ids := range content {
			entries := make(map[string]map[string]string, len(ids))
			for id, attrs := range ids {
				entries[strconv.Itoa(id)] = map[string]string(attrs)
			}
			md.Kinds[string(kind)] = entries
		}
		doc.Mods[mod] = md
	}

	switch format {
	case FormatJSON:
		return json.MarshalIndent(doc, "", "  ")
	case FormatYAML:
		return yaml.Marshal(doc)
	case FormatTOML:
		return toml.Marshal(doc)
	}
	return nil, errors.Newf(errors.ErrInvalidInput, "format %s cannot be encoded to bytes", format)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

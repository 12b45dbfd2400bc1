package catalog

import (
	"database/sql"
	"os"

	"github.com/arthur-debert/modresolve/pkg/errors"
	"github.com/arthur-debert/modresolve/pkg/logging"
	"github.com/arthur-debert/modresolve/pkg/types"

	_ "modernc.org/sqlite"
)

// Schema of a scanner database. mods lists every scanned mod, including
// those that declare no IDs; entries lists every declared ID; attributes
// holds zero or more key/value pairs per entry.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS mods (
	mod TEXT NOT NULL PRIMARY KEY
);`,
	`CREATE TABLE IF NOT EXISTS entries (
	mod        TEXT    NOT NULL,
	kind       TEXT    NOT NULL,
	default_id INTEGER NOT NULL,
	PRIMARY KEY (mod, kind, default_id)
);`,
	`CREATE TABLE IF NOT EXISTS attributes (
	mod        TEXT    NOT NULL,
	kind       TEXT    NOT NULL,
	default_id INTEGER NOT NULL,
	key        TEXT    NOT NULL,
	value      TEXT    NOT NULL,
	PRIMARY KEY (mod, kind, default_id, key)
);`,
}

// LoadSQLite reads a catalog produced by the external content scanner
func LoadSQLite(path string) (types.Catalog, error) {
	logger := logging.GetLogger("catalog.sqlite")

	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrap(err, errors.ErrCatalogLoad, "cannot open catalog database").
			WithDetail("path", path)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCatalogLoad, "cannot open catalog database").
			WithDetail("path", path)
	}
	defer func() { _ = db.Close() }()
	db.SetMaxOpenConns(1)

	catalog := make(types.Catalog)
	if err := loadMods(db, catalog); err != nil {
		return nil, errors.Wrap(err, errors.ErrCatalogLoad, "cannot read catalog mods").
			WithDetail("path", path)
	}

	rows, err := db.Query(`SELECT mod, kind, default_id FROM entries ORDER BY mod, kind, default_id`)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCatalogLoad, "cannot query catalog entries").
			WithDetail("path", path)
	}
	for rows.Next() {
		var e types.ContentEntry
		var kind string
		if err := rows.Scan(&e.Mod, &kind, &e.DefaultID); err != nil {
			_ = rows.Close()
			return nil, errors.Wrap(err, errors.ErrCatalogLoad, "cannot read catalog entry")
		}
		e.Kind = types.Kind(kind)
		catalog.Add(e)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, errors.Wrap(err, errors.ErrCatalogLoad, "cannot read catalog entries")
	}
	_ = rows.Close()

	attrRows, err := db.Query(`SELECT mod, kind, default_id, key, value FROM attributes ORDER BY mod, kind, default_id, key`)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCatalogLoad, "cannot query catalog attributes").
			WithDetail("path", path)
	}
	defer func() { _ = attrRows.Close() }()
	for attrRows.Next() {
		var mod, kind, key, value string
		var id int
		if err := attrRows.Scan(&mod, &kind, &id, &key, &value); err != nil {
			return nil, errors.Wrap(err, errors.ErrCatalogLoad, "cannot read catalog attribute")
		}
		attrs, ok := catalog.Lookup(types.Kind(kind), types.ResolutionKey{Mod: mod, DefaultID: id})
		if !ok {
			logger.Warn().
				Str("mod", mod).
				Str("kind", kind).
				Int("id", id).
				Msg("Attribute for unknown entry, ignoring")
			continue
		}
		attrs[key] = value
	}
	if err := attrRows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrCatalogLoad, "cannot read catalog attributes")
	}

	logger.Debug().Int("mods", len(catalog)).Str("path", path).Msg("Catalog loaded from database")
	return catalog, nil
}

// loadMods seeds catalog with every mod of the mods table. Databases from
// scanners that predate the table only list mods through their entries.
func loadMods(db *sql.DB, catalog types.Catalog) error {
	var name string
	err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'mods'`).Scan(&name)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return err
	}

	rows, err := db.Query(`SELECT mod FROM mods ORDER BY mod`)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		var mod string
		if err := rows.Scan(&mod); err != nil {
			return err
		}
		if _, ok := catalog[mod]; !ok {
			catalog[mod] = make(types.ModContent)
		}
	}
	return rows.Err()
}

// WriteSQLite stores catalog into a new or existing database at path
func WriteSQLite(path string, catalog types.Catalog) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "cannot open catalog database").
			WithDetail("path", path)
	}
	defer func() { _ = db.Close() }()
	db.SetMaxOpenConns(1)

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return errors.Wrap(err, errors.ErrFileWrite, "cannot create catalog schema")
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "cannot begin catalog write")
	}
	for _, mod := range catalog.Mods() {
		if _, err := tx.Exec(`INSERT OR REPLACE INTO mods (mod) VALUES (?)`, mod); err != nil {
			_ = tx.Rollback()
			return errors.Wrap(err, errors.ErrFileWrite, "cannot insert catalog mod")
		}
	}
	for _, kind := range catalog.Kinds() {
		for _, e := range catalog.Entries(kind) {
			if _, err := tx.Exec(`INSERT OR REPLACE INTO entries (mod, kind, default_id) VALUES (?, ?, ?)`,
				e.Mod, string(e.Kind), e.DefaultID); err != nil {
				_ = tx.Rollback()
				return errors.Wrap(err, errors.ErrFileWrite, "cannot insert catalog entry")
			}
			for key, value := range e.Attributes {
				if _, err := tx.Exec(`INSERT OR REPLACE INTO attributes (mod, kind, default_id, key, value) VALUES (?, ?, ?, ?, ?)`,
					e.Mod, string(e.Kind), e.DefaultID, key, value); err != nil {
					_ = tx.Rollback()
					return errors.Wrap(err, errors.ErrFileWrite, "cannot insert catalog attribute")
				}
			}
		}
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "cannot commit catalog write")
	}
	return nil
}

// Package catalog loads the content catalog: for every mod, the IDs it
// declares per kind and the attributes recorded for each.
//
// Catalogs are produced by an external scanner and arrive either as a
// JSON/YAML/TOML document or as a SQLite database. The vanilla game's own
// content is expected under the configured vanilla mod key.
package catalog

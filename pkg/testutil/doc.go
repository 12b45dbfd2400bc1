// Package testutil holds shared helpers for tests: an in-memory filesystem
// and small fixtures for catalogs and config trees.
package testutil

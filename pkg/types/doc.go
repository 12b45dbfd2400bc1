// Package types defines the data model shared by the resolver, the config
// patcher and the installer: kinds, catalog entries, resolution keys and
// maps, config edits and patch results, plus the FS interface the I/O layers
// are written against.
package types

// Package install copies mods into the target and installs their config
// files with resolved IDs patched in.
//
// Mods are handled one at a time in install order, lowest priority first.
// Config text is appended to its destination; when two mods ship the same
// config path the second append is flagged for a manual merge.
package install

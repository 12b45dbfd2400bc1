// Package commands implements the operations behind each CLI command. Each
// takes an options struct and returns a result the CLI renders; none of
// them print.
package commands

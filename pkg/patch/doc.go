// Package patch rewrites numeric IDs inside mod config files.
//
// Config formats vary per mod, so patching is a text heuristic: the line
// that assigns the old ID (ends in "=<id>") is rewritten in place. When no
// line or more than one line qualifies, the text is left alone and a TODO
// comment tells the user what to change by hand.
package patch

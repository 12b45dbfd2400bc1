// Package priority turns the operator's priority list into a Ranking used to
// decide which mod keeps a contested ID, and reads the plain-text priority
// and wanted-mod lists.
package priority

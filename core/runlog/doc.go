// Package runlog persists the results of scenario runs so earlier runs can be
// listed and compared. Records are stored as JSON lines, optionally rotated,
// or in SQLite.
package runlog

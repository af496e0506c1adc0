// Package sqlite keeps accepted donations in a local SQLite database so
// participants can review, export or delete what they shared.
//
// The driver is modernc.org/sqlite, which needs no CGO. The database lives
// in dataDir/donations.db (~/.donate/data by default) and is opened in WAL
// mode with a busy timeout, so a TUI session and a CLI listing can use it
// at the same time.
//
// Schema changes are the numbered files in migrations/. Each is applied
// once, in a transaction that also records its version.
package sqlite

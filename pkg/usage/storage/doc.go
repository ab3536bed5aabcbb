// Package storage persists usage reports for callers that want a ledger.
//
// The core usage package never persists anything; reports are produced and
// consumed immediately. The serve command, however, records each report it
// builds so operators can inspect spend after the fact. Two backends are
// provided: an in-memory ring for tests and ephemeral deployments, and a
// SQLite file for anything that should survive a restart.
package storage

// Package history records pipeline runs in SQLite so past cut lists can be
// audited from the CLI.
//
// Each run captures the inputs, the tuning parameters, the frame count after
// every stage, and a terminal status. The database lives under the configured
// state directory. Schema changes bump schemaVersion in schema.go; older
// databases are rejected with ErrSchemaMismatch and must be removed.
package history

// Package records is the local store for synchronized records.
//
// One SQLiteRepository per kind persists Record envelopes in the kind's
// table (classes, assignments, tasks) with the payload stored as JSON. The
// repository never decides sync state on its own: callers flip synced and
// deleted through SetSynced, SoftDelete and the purge helpers, and rows are
// only erased once they are tombstones acknowledged by the remote.
package records

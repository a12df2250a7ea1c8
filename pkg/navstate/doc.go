// Package navstate carries a record snapshot from one screen to the next.
//
// The edit-lookup screen fetches a record, stores it with Put, and redirects
// to the form screen with the returned token. The form screen resolves the
// token with Get to seed an edit session. A successful update refreshes the
// snapshot with Replace so the next render reflects the saved values.
// Snapshots expire after a TTL.
//
// Snapshots are encoded as JSON and kept in a Backend: MemoryBackend for a
// single process, or the Redis backend in the redis sub-package when several
// instances share traffic.
package navstate

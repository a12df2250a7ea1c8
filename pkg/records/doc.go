// Package records is the HTTP client for the remote hardship record service.
//
// The service exposes list-all, fetch-by-identifier, create and
// update-by-identifier endpoints with JSON bodies shaped like model.Record.
// Non-2xx responses become *ServiceError values; Message extracts a human
// readable text from them (problem-details detail/title/errors, a JSON
// string, or plain text) and falls back to a generic message otherwise.
package records

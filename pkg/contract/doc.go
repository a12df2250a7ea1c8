// Package contract loads the OpenAPI description of the hardship record
// service and checks outbound payloads against its request schemas before the
// client puts them on the wire. It also derives the client's route table from
// the document's operation IDs so the two never drift apart.
package contract

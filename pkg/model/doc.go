// Package model defines the hardship record exchanged with the record service
// and the payloads the form submits. Records arrive from the service with a
// hardshipTypeName and an ISO timestamp for dob; payloads carry the numeric
// hardshipTypeID and a plain YYYY-MM-DD date. Create payloads include debtID,
// update payloads never do because the identifier travels in the resource
// path.
package model

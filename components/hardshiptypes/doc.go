// Package hardshiptypes serves the selectable hardship categories as JSON
// options for form inputs.
//
// The handler responds to GET and HEAD requests. A q parameter filters labels
// (prefix matches first) and limit caps the number of results.
package hardshiptypes

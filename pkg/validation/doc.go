// Package validation holds the per-field rules applied to hardship form input.
//
// Every validator is a pure function from the raw input to a Verdict carrying
// either a normalized value or a human readable reason. Empty input is valid
// for every rule except the date of birth; required checks belong to the
// submit pass of the form controller.
package validation

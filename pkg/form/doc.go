// Package form implements the hardship form state machine shared by the
// create and edit screens.
//
// State is a value type: every setter returns a new State so callers never
// share mutable field slots. A Controller owns the current State, re-runs a
// field's validator on every change, and drives a submission through
//
//	Idle -> {Aborted | Submitting} -> {Succeeded | Failed}
//
// Terminal statuses are cleared by the next change or submit. Only one
// submission may be outstanding per Controller.
package form

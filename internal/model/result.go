package model

import "fmt"

// Result :
// Generic outcome of a zero-turn command or other synchronously-validated
// operation, matching the `{success, error, optional new IDs, warnings}`
// shape spec.md §4.3 requires. Grounded on the teacher's fixed-cost/action
// result types (internal/game/fixed_cost_action.go, progress_action.go)
// which return a success flag plus an error rather than panicking or
// aborting the caller's turn.
//
// The `Success` flag is false whenever `Err` is non-nil.
//
// The `Err` field carries the validation failure, if any.
//
// The `NewIDs` field carries any identifiers created by the operation
// (e.g. a new squadron ID produced by a `FormSquadron` command).
//
// The `Warnings` field carries non-fatal notices, such as AssignFlagship
// reporting that the requested ship is already the flagship.
type Result struct {
	Success  bool
	Err      error
	NewIDs   []fmt.Stringer
	Warnings []string
}

// Ok builds a successful result, optionally carrying new identifiers.
func Ok(ids ...fmt.Stringer) Result {
	return Result{Success: true, NewIDs: ids}
}

// Fail builds a failed result from an error.
func Fail(err error) Result {
	return Result{Success: false, Err: err}
}

// WithWarning appends a warning to a result and returns it, for chaining.
func (r Result) WithWarning(w string) Result {
	r.Warnings = append(r.Warnings, w)
	return r
}

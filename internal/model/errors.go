package model

import "fmt"

// Sentinel errors for the entity store, mirroring the teacher's
// `ErrInvalidFleet`/`ErrNotFound`-style package-level error values
// (internal/model/association_table.go, fleet.go) generalized across every
// entity kind. These cover the "invalid input" and "runtime inconsistency"
// error classes of spec.md §7; "unsatisfiable request" failures are
// communicated through `Result` values instead (see result.go).

var (
	// ErrNotFound indicates a `get` against an ID that is not present in
	// the relevant table.
	ErrNotFound = fmt.Errorf("entity not found")

	// ErrAlreadyExists indicates an `add` against an ID that is already
	// present in the relevant table.
	ErrAlreadyExists = fmt.Errorf("entity already exists")

	// ErrInvalidEntity indicates a write was attempted with a structurally
	// invalid value (e.g. zero ID, mismatched owner references).
	ErrInvalidEntity = fmt.Errorf("invalid entity")

	// ErrWrongOwner indicates an operation was attempted by a house that
	// does not own the targeted entity.
	ErrWrongOwner = fmt.Errorf("house does not own this entity")

	// ErrNotAtFriendlyColony indicates a zero-turn command required the
	// subject fleet/squadron to be docked at a friendly colony.
	ErrNotAtFriendlyColony = fmt.Errorf("fleet is not at a friendly colony")

	// ErrIncompatibleSquadronMix indicates an attempt to mix an Intel
	// squadron into a fleet alongside non-Intel squadrons.
	ErrIncompatibleSquadronMix = fmt.Errorf("intel squadrons cannot coexist with non-intel squadrons")

	// ErrInsufficientTreasury indicates a build order was rejected for
	// lack of funds.
	ErrInsufficientTreasury = fmt.Errorf("insufficient treasury")

	// ErrNoCapacity indicates a facility has no free dock to accept a new
	// active project.
	ErrNoCapacity = fmt.Errorf("no dock capacity available")

	// ErrInvalidOrder indicates an order packet referenced an entity it
	// does not own, or combined mutually exclusive flags.
	ErrInvalidOrder = fmt.Errorf("invalid order")
)

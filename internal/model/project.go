package model

import "github.com/shopspring/decimal"

// ProjectType distinguishes the two production project kinds, per
// spec.md §3/§4.4.
type ProjectType int

const (
	ConstructionProjectType ProjectType = iota
	RepairProjectType
)

// String implements fmt.Stringer.
func (p ProjectType) String() string {
	if p == RepairProjectType {
		return "repair"
	}
	return "construction"
}

// ConstructionProject builds exactly one of a ship class, a facility
// class, a ground-unit class, or a block of industrial units — never more
// than one, per spec.md §3 ("exactly one populated specialization").
// Generalizes the teacher's per-kind action rows (internal/game/ship_action.go,
// building_action.go, defense_action.go) into a single tagged-union type.
type ConstructionProject struct {
	ID             ConstructionProjectID
	ColonyID       ColonyID
	FacilityID     *NeoriaID // nil for planet-side (colony-level) projects
	TurnsRemaining int

	ShipClass        string
	FacilityClass    *FacilityClass
	GroundClass      *GroundUnitClass
	IndustrialUnits  int

	Quantity int

	// PPDebited records the amount already deducted from the colony's
	// house treasury at submission time; refund policy on cancellation
	// is "none" per spec.md §4.4, so this value is purely informational
	// once submitted.
	PPDebited decimal.Decimal
}

// IsPlanetSide reports whether this project produces something other than
// a ship class (a facility, ground unit, fighter or industrial units).
// Both kinds commission in the same turn's Queues phase once
// TurnsRemaining reaches zero (see commissionConstruction).
func (p *ConstructionProject) IsPlanetSide() bool {
	return p.ShipClass == ""
}

// RepairProject restores a single crippled ship at a drydock's dock.
type RepairProject struct {
	ID             RepairProjectID
	ColonyID       ColonyID
	FacilityID     NeoriaID
	ShipID         ShipID
	TurnsRemaining int
	PPDebited      decimal.Decimal
}

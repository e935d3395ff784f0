package model

// FleetStatus is the closed set of fleet statuses, per spec.md §3.
type FleetStatus int

const (
	Active FleetStatus = iota
	Reserve
	Mothballed
)

// String implements fmt.Stringer.
func (s FleetStatus) String() string {
	switch s {
	case Active:
		return "active"
	case Reserve:
		return "reserve"
	case Mothballed:
		return "mothballed"
	default:
		return "unknown"
	}
}

// MaintenanceMultiplier is the upkeep fraction paid for a fleet in this
// status, per spec.md §4.5.
func (s FleetStatus) MaintenanceMultiplier() float64 {
	switch s {
	case Active:
		return 1.0
	case Reserve:
		return 0.5
	default:
		return 0.0
	}
}

// SquadronType is the closed set of squadron roles, per spec.md §3.
type SquadronType int

const (
	CombatSquadronType SquadronType = iota
	IntelSquadronType
	ExpansionSquadronType
	AuxiliarySquadronType
	FighterSquadronType
)

// String implements fmt.Stringer.
func (t SquadronType) String() string {
	switch t {
	case CombatSquadronType:
		return "combat"
	case IntelSquadronType:
		return "intel"
	case ExpansionSquadronType:
		return "expansion"
	case AuxiliarySquadronType:
		return "auxiliary"
	case FighterSquadronType:
		return "fighter"
	default:
		return "unknown"
	}
}

// IsSpacelift reports whether this squadron type can carry marines or
// colonists-in-PTU, per spec.md §3.
func (t SquadronType) IsSpacelift() bool {
	return t == ExpansionSquadronType || t == AuxiliarySquadronType
}

// CombatState is a ship's damage status, per spec.md §3.
type CombatState int

const (
	Undamaged CombatState = iota
	Crippled
	Destroyed
)

// String implements fmt.Stringer.
func (c CombatState) String() string {
	switch c {
	case Undamaged:
		return "undamaged"
	case Crippled:
		return "crippled"
	case Destroyed:
		return "destroyed"
	default:
		return "unknown"
	}
}

// StrengthMultiplier returns the fraction of AS/DS a ship in this state
// contributes: crippled ships fight at 50%, per spec.md §3.
func (c CombatState) StrengthMultiplier() float64 {
	if c == Crippled {
		return 0.5
	}
	if c == Destroyed {
		return 0.0
	}
	return 1.0
}

// Ship is a single vessel belonging to a squadron.
//
// Generalizes the teacher's `shipInFight` (internal/game/fleet_fight.go,
// a per-fight-only projection of a ship's shield/weapon/hull/rapid-fire
// values) into a persistent entity: a ship's base stats live in the ship
// class registry (registry.go) and are looked up by `Class` whenever a
// combat or maintenance calculation needs them, the same way the teacher
// always re-derives `shipInFight` from its `ShipsModule` rather than
// storing combat stats on the row itself.
type Ship struct {
	ID         ShipID
	SquadronID SquadronID
	Class      string
	State      CombatState
	// CumulativeHits tracks damage absorbed this combat, reset on cleanup.
	CumulativeHits float64
}

// Squadron groups a flagship and its escorts under one tactical role.
//
// Spacelift cargo lives on Expansion/Auxiliary squadrons (spec.md §3).
type Squadron struct {
	ID       SquadronID
	FleetID  FleetID
	Type     SquadronType
	Flagship ShipID
	Escorts  []ShipID

	MarinesLoaded    int
	ColonistsPTULoaded int

	// Cloaked is true while a Raider-type squadron remains undetected in
	// the current combat (spec.md §4.7).
	Cloaked bool
}

// Ships returns every ship in the squadron, flagship first.
func (s *Squadron) Ships() []ShipID {
	out := make([]ShipID, 0, 1+len(s.Escorts))
	out = append(out, s.Flagship)
	out = append(out, s.Escorts...)
	return out
}

// Fleet belongs to one house, sits in one system, and holds an ordered
// sequence of squadrons. Generalizes the teacher's `Fleet`
// (internal/model/fleet.go: ID, target coordinate, arrival time,
// `Components`) replacing the single-destination travel model with the
// richer order/movement model of spec.md §4.2-4.6.
type Fleet struct {
	ID         FleetID
	OwnerID    HouseID
	SystemID   SystemID
	Name       string
	Status     FleetStatus
	SquadronIDs []SquadronID

	Order         *FleetOrder
	PendingArrival bool // true once movement resolves this turn (§4.7 "arrived fleets")

	// ROE is this fleet's standing rules-of-engagement stance, 0-10, used
	// by the combat resolver's per-fleet retreat evaluation (spec.md
	// §4.7). Defaults to 5 ("hold at even odds") for newly formed fleets.
	ROE int

	// IsHomeworldDefense marks a fleet permanently stationed over its
	// owner's homeworld system; such a fleet never retreats (spec.md
	// §4.7: "a house defending its homeworld never retreats").
	IsHomeworldDefense bool
}

// DefaultROE is the stance assigned to newly formed fleets.
const DefaultROE = 5

// ROEThreshold maps a fleet's effective ROE (clamped 0-10) to the AS
// ratio below which it retreats, per spec.md §4.7's ROE threshold table.
func ROEThreshold(effectiveROE int) float64 {
	thresholds := [...]float64{0.0, 999.0, 4.0, 3.0, 2.0, 1.5, 1.0, 0.67, 0.5, 0.33, 0.0}
	if effectiveROE < 0 {
		effectiveROE = 0
	}
	if effectiveROE > 10 {
		effectiveROE = 10
	}
	return thresholds[effectiveROE]
}

// CommandCostOf sums the per-ship command cost over a squadron's escorts,
// for comparison against the flagship's command rating under the "escort
// command cost <= flagship command rating" composition rule (spec.md §3).
// The cost lookup lives in the ship registry, so this helper only
// aggregates IDs; callers pass in the per-ship cost map.
func CommandCostOf(escorts []ShipID, costByShip map[ShipID]int) int {
	total := 0
	for _, id := range escorts {
		total += costByShip[id]
	}
	return total
}

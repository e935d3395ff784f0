package model

import (
	"github.com/shopspring/decimal"
)

// House is a playable faction. Generalizes the teacher's `Player`
// (internal/model/player.go, DB-backed account/universe membership) into
// the full house record spec.md §3 describes: treasury, prestige, tech
// tree, diplomacy, intel, espionage pools, standing orders and fallback
// routes.
type House struct {
	ID       HouseID
	Name     string
	Treasury decimal.Decimal
	Prestige int

	// Tech holds integer research levels per field name (e.g. "EL", "SL",
	// or a specific Technology[k] key).
	Tech map[string]int

	// Research tracks partial progress (in research points) banked toward
	// the next level of each field.
	Research map[string]decimal.Decimal

	// Relations is the diplomatic state with every other house this one
	// has interacted with, keyed by the peer's ID.
	Relations map[HouseID]Relation

	Intel IntelDatabase

	EspionageBudget decimal.Decimal
	CounterIntel    decimal.Decimal

	StandingOrders map[FleetID]StandingOrder

	// FallbackRoutes maps a fleet to its pre-planned seek-home
	// destination, refreshed every 5 turns per spec.md §4.6.
	FallbackRoutes       map[FleetID]SystemID
	FallbackRoutesTurn   int

	// NegativePrestigeStreak counts consecutive turns this house ended
	// with prestige < 0, used by the elimination rule in spec.md §4.2
	// phase 10.
	NegativePrestigeStreak int
	Eliminated             bool
	EliminatedTurn         int

	// CapacityViolations records open C2-pool overages for this house,
	// keyed by the entity that is over-capacity (fleet, usually).
	CapacityViolations map[FleetID]CapacityViolation
}

// NewHouse creates a house with empty-but-initialized maps, matching the
// teacher's convention (progress_cost_module.go's `newProgressCost`) of
// never handing back a struct with nil maps that would panic on first
// write.
func NewHouse(id HouseID, name string) *House {
	return &House{
		ID:                 id,
		Name:               name,
		Treasury:           decimal.Zero,
		Tech:               make(map[string]int),
		Research:           make(map[string]decimal.Decimal),
		Relations:          make(map[HouseID]Relation),
		Intel:              NewIntelDatabase(),
		StandingOrders:     make(map[FleetID]StandingOrder),
		FallbackRoutes:     make(map[FleetID]SystemID),
		CapacityViolations: make(map[FleetID]CapacityViolation),
	}
}

// DiplomaticState is the closed set of relation states between two houses.
type DiplomaticState int

const (
	Neutral DiplomaticState = iota
	Normalized
	Hostile
	Enemy
	AtWar
)

// String implements fmt.Stringer.
func (d DiplomaticState) String() string {
	switch d {
	case Neutral:
		return "neutral"
	case Normalized:
		return "normalized"
	case Hostile:
		return "hostile"
	case Enemy:
		return "enemy"
	case AtWar:
		return "at_war"
	default:
		return "unknown"
	}
}

// rank gives a total order to diplomatic states for escalation comparisons
// ("escalate toward X if currently lower", spec.md §4.7).
func (d DiplomaticState) rank() int { return int(d) }

// Relation is the diplomatic state between a house and one peer, plus the
// turn it was last changed (used for cool-down / proposal windows).
type Relation struct {
	State        DiplomaticState
	SinceTurn    int
	PendingOffer *DiplomaticOffer
}

// DiplomaticOffer is a proposed relation change awaiting the peer's
// response.
type DiplomaticOffer struct {
	From       HouseID
	Target     DiplomaticState
	ProposedOn int
}

// CapacityViolation records that a house's active fleet command cost
// exceeds its C2 pool (spec.md §4.5), with a grace window before forced
// scrapping.
type CapacityViolation struct {
	Severity           int
	GraceTurnsRemaining int
}

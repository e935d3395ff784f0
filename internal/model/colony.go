package model

// PlanetClass classifies a colony's world, feeding into its gross output
// formula (spec.md §4.5).
type PlanetClass int

const (
	Terran PlanetClass = iota
	Oceanic
	Desert
	Tundra
	Barren
	GasGiant
)

// SoulsPerPopulationUnit converts population units (PU) to souls, per the
// glossary: 1 PU = 1,000,000 souls.
const SoulsPerPopulationUnit = 1_000_000

// SoulsPerPTU converts population transfer units (PTU) to souls: 1 PTU =
// 50,000 souls.
const SoulsPerPTU = 50_000

// Colony is a populated world inside a system, owned by at most one house.
// Generalizes the teacher's `Planet` (internal/model/planet.go: resources,
// buildings, ships, defenses, construction/upgrade queues, all addressed
// by ID and looked up through the data model) from OGame's resource model
// into spec.md §3's colony fields.
type Colony struct {
	ID      ColonyID
	SystemID SystemID
	OwnerID HouseID
	Name    string

	PopulationUnits  float64
	InfrastructureLv int
	IndustrialUnits  int
	Class            PlanetClass
	ResourceRating   int
	TaxRate          float64

	KastraIDs         []KastraID
	NeoriaIDs         []NeoriaID
	GroundUnitIDs     []GroundUnitID
	FighterSquadronIDs []SquadronID

	ConstructionQueue []ConstructionProjectID
	ActiveConstruction *ConstructionProjectID
	RepairQueue        []RepairProjectID

	Blockaded      bool
	BlockadedBy    []HouseID
	BlockadeTurns  int

	CapacityViolations []string

	AutoRepair       bool
	AutoLoadMarines  bool
	AutoLoadFighters bool

	// IsHomeworld marks a house's founding colony, which carries a ground-
	// combat defender bonus (spec.md §4.7) and is never abandoned to the
	// "zero colonies" elimination check while its house still holds it.
	IsHomeworld bool
}

// Souls returns the colony's population expressed in souls. Spec.md §3
// invariant (iv): `souls == populationUnits * 1_000_000` exactly.
func (c *Colony) Souls() float64 {
	return c.PopulationUnits * SoulsPerPopulationUnit
}

// SetSoulsExact sets the population from a souls figure, keeping the
// exact-multiple invariant by construction.
func (c *Colony) SetSoulsExact(souls float64) {
	c.PopulationUnits = souls / SoulsPerPopulationUnit
}

// KillPTU removes a number of population-transfer-units worth of souls
// from the colony (used by bombardment fallout, spec.md §4.7: "1 hit = 1
// PTU killed = 50,000 souls"), never going below zero population.
func (c *Colony) KillPTU(count int) {
	souls := c.Souls() - float64(count)*SoulsPerPTU
	if souls < 0 {
		souls = 0
	}
	c.SetSoulsExact(souls)
}

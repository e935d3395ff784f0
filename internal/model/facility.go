package model

// FacilityClass identifies which of the three "Neoria" facility kinds a
// given facility is, per spec.md §4.4. Generalizes the teacher's
// `upgradable` enum (internal/model/upgradables_module.go: Building,
// Technology, Ship, Defense) narrowed to the production-facility axis.
type FacilityClass int

const (
	SpaceportClass FacilityClass = iota
	ShipyardClass
	DrydockClass
)

// String implements fmt.Stringer.
func (f FacilityClass) String() string {
	switch f {
	case SpaceportClass:
		return "spaceport"
	case ShipyardClass:
		return "shipyard"
	case DrydockClass:
		return "drydock"
	default:
		return "unknown"
	}
}

// BaseDocks is the undamaged dock count for a facility class, per spec.md
// §4.4.
func (f FacilityClass) BaseDocks() int {
	switch f {
	case SpaceportClass:
		return 5
	case ShipyardClass, DrydockClass:
		return 10
	default:
		return 0
	}
}

// BuildsShips reports whether this facility class can host construction
// projects for ship classes.
func (f FacilityClass) BuildsShips() bool {
	return f == SpaceportClass || f == ShipyardClass
}

// RepairsShips reports whether this facility class can host repair
// projects.
func (f FacilityClass) RepairsShips() bool {
	return f == DrydockClass
}

// CostMultiplier is the PP penalty applied to ships commissioned at this
// facility: a Spaceport build costs double, per spec.md §4.4.
func (f FacilityClass) CostMultiplier() float64 {
	if f == SpaceportClass {
		return 2.0
	}
	return 1.0
}

// Neoria is a spaceport, shipyard, or drydock facility owned by a colony.
// A spaceport is planet-side; shipyards and drydocks are orbital, per
// spec.md §4.4, which matters for whether they participate in Orbital
// combat as a defended facility.
type Neoria struct {
	ID       NeoriaID
	ColonyID ColonyID
	Class    FacilityClass

	// Crippled facilities have zero effective docks (spec.md §4.4) and
	// are screened out of combat targeting until repaired or destroyed.
	Crippled bool

	ActiveConstructions []ConstructionProjectID
	ActiveRepairs       []RepairProjectID
	QueuedConstructions []ConstructionProjectID
	QueuedRepairs       []RepairProjectID
}

// EffectiveDocks computes the usable dock count given a construction-tech
// multiplier, zeroed out if the facility is crippled, per spec.md §4.4.
func (n *Neoria) EffectiveDocks(constructionTechMultiplier float64) int {
	if n.Crippled {
		return 0
	}
	return int(float64(n.Class.BaseDocks()) * constructionTechMultiplier)
}

// Kastra is an orbital defensive starbase, weighted as a combat
// participant with bucket weight `Starbase(2.0)` per spec.md §4.7.
type Kastra struct {
	ID              KastraID
	ColonyID        ColonyID
	Level            int
	AttackStrength   int
	DefenseStrength  int
	DetectionBonus   int
	Crippled         bool
	Destroyed        bool
}

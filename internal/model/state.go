package model

// State is the entire serializable world: every entity table, every
// secondary index, and the ID counters needed to allocate more entities.
// Generalizes the teacher's `Instance` (internal/model/model.go: a single
// struct bundling every DB-backed module) from a DB-accessor bundle into
// the actual in-memory data, since persistence beyond a pure serializable
// value is out of scope (spec.md §1 Non-goals). The ID counters (`ids`)
// and the registries' contents are unexported, so encoding a State with
// encoding/gob or encoding/json does not preserve them.
//
// Every exported field here is reachable only through the CRUD/ops API in
// indexes.go and the per-kind *_ops.go files: callers must never mutate a
// table entry in place after `Get` without calling the matching `Update`,
// per spec.md §4.1's invariant that every secondary index and embedded
// back-reference moves together with the primary record.
type State struct {
	Turn int
	ids  idCounters

	Map *StarMap

	Houses    map[HouseID]*House
	Systems   map[SystemID]*System // convenience alias into Map.Systems
	Colonies  map[ColonyID]*Colony
	Fleets    map[FleetID]*Fleet
	Squadrons map[SquadronID]*Squadron
	Ships     map[ShipID]*Ship
	Neorias   map[NeoriaID]*Neoria
	Kastras   map[KastraID]*Kastra
	GroundUnits map[GroundUnitID]*GroundUnit
	ConstructionProjects map[ConstructionProjectID]*ConstructionProject
	RepairProjects       map[RepairProjectID]*RepairProject

	// Secondary indexes, maintained by the *_ops.go wrapper APIs.
	FleetsBySystem   map[SystemID]map[FleetID]struct{}
	FleetsByOwner    map[HouseID]map[FleetID]struct{}
	ColoniesBySystem map[SystemID]map[ColonyID]struct{}
	ColoniesByOwner  map[HouseID]map[ColonyID]struct{}
	ShipsBySquadron  map[SquadronID]map[ShipID]struct{}
	NeoriasByColony  map[ColonyID]map[NeoriaID]struct{}
	KastrasByColony  map[ColonyID]map[KastraID]struct{}
	ProjectsByColony map[ColonyID]map[ConstructionProjectID]struct{}
	ProjectsByFacility map[NeoriaID]map[ConstructionProjectID]struct{}
	RepairsByFacility  map[NeoriaID]map[RepairProjectID]struct{}

	// Rules registries, loaded once from config at construction time and
	// read-only thereafter within a turn (spec.md §9's global-mutable-config
	// note: reloads produce a new value, only observed by new turns).
	ShipClasses      *Registry
	FacilityClasses  *Registry
	GroundUnitClasses *Registry
	TechFields       *Registry
}

// NewState builds an empty, fully-initialized State — every map non-nil,
// matching the teacher's convention of never handing back zero-value
// containers that panic on first write.
func NewState() *State {
	return &State{
		Houses:               make(map[HouseID]*House),
		Systems:               make(map[SystemID]*System),
		Colonies:             make(map[ColonyID]*Colony),
		Fleets:               make(map[FleetID]*Fleet),
		Squadrons:            make(map[SquadronID]*Squadron),
		Ships:                make(map[ShipID]*Ship),
		Neorias:              make(map[NeoriaID]*Neoria),
		Kastras:              make(map[KastraID]*Kastra),
		GroundUnits:          make(map[GroundUnitID]*GroundUnit),
		ConstructionProjects: make(map[ConstructionProjectID]*ConstructionProject),
		RepairProjects:       make(map[RepairProjectID]*RepairProject),

		FleetsBySystem:     make(map[SystemID]map[FleetID]struct{}),
		FleetsByOwner:      make(map[HouseID]map[FleetID]struct{}),
		ColoniesBySystem:   make(map[SystemID]map[ColonyID]struct{}),
		ColoniesByOwner:    make(map[HouseID]map[ColonyID]struct{}),
		ShipsBySquadron:    make(map[SquadronID]map[ShipID]struct{}),
		NeoriasByColony:    make(map[ColonyID]map[NeoriaID]struct{}),
		KastrasByColony:    make(map[ColonyID]map[KastraID]struct{}),
		ProjectsByColony:   make(map[ColonyID]map[ConstructionProjectID]struct{}),
		ProjectsByFacility: make(map[NeoriaID]map[ConstructionProjectID]struct{}),
		RepairsByFacility:  make(map[NeoriaID]map[RepairProjectID]struct{}),
	}
}

// InitStarMap generates the star map and hooks State.Systems up as an
// alias of its system table; call once at game setup.
func (s *State) InitStarMap(playerCount int) {
	s.Map = NewStarMap(&s.ids, playerCount)
	s.Systems = s.Map.Systems
}

// NextHouseID, NextFleetID, etc. expose the private counters to the setup
// and zero-turn-command code paths that must allocate new entities; they
// are the only legal way to mint a new ID (spec.md §3: "IDs are generated
// by a per-kind monotonically increasing counter stored in the state").
func (s *State) NextHouseID() HouseID                             { return s.ids.nextHouseID() }
func (s *State) NextColonyID() ColonyID                           { return s.ids.nextColonyID() }
func (s *State) NextFleetID() FleetID                             { return s.ids.nextFleetID() }
func (s *State) NextShipID() ShipID                               { return s.ids.nextShipID() }
func (s *State) NextSquadronID() SquadronID                       { return s.ids.nextSquadronID() }
func (s *State) NextNeoriaID() NeoriaID                           { return s.ids.nextNeoriaID() }
func (s *State) NextKastraID() KastraID                           { return s.ids.nextKastraID() }
func (s *State) NextGroundUnitID() GroundUnitID                   { return s.ids.nextGroundUnitID() }
func (s *State) NextConstructionProjectID() ConstructionProjectID { return s.ids.nextConstructionProjectID() }
func (s *State) NextRepairProjectID() RepairProjectID             { return s.ids.nextRepairProjectID() }

package game

import "ec4x_engine/internal/model"

// constructionTechMultiplier is a placeholder for the tech-scaled dock
// multiplier spec.md §4.4 references; absent a wired tech-field lookup
// for "construction tech", effective docks equal base docks.
const constructionTechMultiplier = 1.0

// runQueues advances every facility's and every colony's production
// queues, per spec.md §4.4 and §4.2 phase 7.
func runQueues(state *model.State, rec *Recorder) {
	for _, neoriaID := range sortedNeoriaIDs(state) {
		advanceFacilityQueue(state, neoriaID, rec)
	}
	for _, neoriaID := range sortedNeoriaIDs(state) {
		advanceRepairQueue(state, neoriaID, rec)
	}
	for _, colonyID := range sortedColonyIDs(state) {
		advanceColonyLegacyQueue(state, colonyID, rec)
	}
}

func sortedNeoriaIDs(state *model.State) []model.NeoriaID {
	out := make([]model.NeoriaID, 0, len(state.Neorias))
	for id := range state.Neorias {
		out = append(out, id)
	}
	sortNeoriaIDs(out)
	return out
}

func sortNeoriaIDs(ids []model.NeoriaID) {
	for i := 1; i < len(ids); i++ {
		for j := i; j > 0 && ids[j] < ids[j-1]; j-- {
			ids[j], ids[j-1] = ids[j-1], ids[j]
		}
	}
}

func sortedColonyIDs(state *model.State) []model.ColonyID {
	out := make([]model.ColonyID, 0, len(state.Colonies))
	for id := range state.Colonies {
		out = append(out, id)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j] < out[j-1]; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// advanceFacilityQueue implements spec.md §4.4's per-facility advance:
// (1) decrement every active project; commission if it reaches zero.
// (2) while docks are free and the queue is non-empty, pop the next
// project, decrement once, and commission-or-activate — so a 1-turn
// project commissions the same cycle it starts.
func advanceFacilityQueue(state *model.State, id model.NeoriaID, rec *Recorder) {
	facility, err := state.GetNeoria(id)
	if err != nil {
		return
	}

	var stillActive []model.ConstructionProjectID
	for _, pid := range facility.ActiveConstructions {
		p, err := state.GetConstructionProject(pid)
		if err != nil {
			continue
		}
		p.TurnsRemaining--
		if p.TurnsRemaining <= 0 {
			commissionConstruction(state, p, rec)
			_ = state.RemoveConstructionProject(pid)
			continue
		}
		_ = state.UpdateConstructionProject(p)
		stillActive = append(stillActive, pid)
	}
	facility.ActiveConstructions = stillActive

	effectiveDocks := facility.EffectiveDocks(constructionTechMultiplier)
	for effectiveDocks-len(facility.ActiveConstructions) > 0 && len(facility.QueuedConstructions) > 0 {
		pid := facility.QueuedConstructions[0]
		facility.QueuedConstructions = facility.QueuedConstructions[1:]

		p, err := state.GetConstructionProject(pid)
		if err != nil {
			continue
		}
		p.TurnsRemaining--
		if p.TurnsRemaining <= 0 {
			commissionConstruction(state, p, rec)
			_ = state.RemoveConstructionProject(pid)
			continue
		}
		_ = state.UpdateConstructionProject(p)
		facility.ActiveConstructions = append(facility.ActiveConstructions, pid)
	}

	_ = state.UpdateNeoria(facility)
}

func advanceRepairQueue(state *model.State, id model.NeoriaID, rec *Recorder) {
	facility, err := state.GetNeoria(id)
	if err != nil || !facility.Class.RepairsShips() {
		return
	}

	var stillActive []model.RepairProjectID
	for _, pid := range facility.ActiveRepairs {
		p, err := state.GetRepairProject(pid)
		if err != nil {
			continue
		}
		p.TurnsRemaining--
		if p.TurnsRemaining <= 0 {
			commissionRepair(state, p, rec)
			_ = state.RemoveRepairProject(pid)
			continue
		}
		_ = state.UpdateRepairProject(p)
		stillActive = append(stillActive, pid)
	}
	facility.ActiveRepairs = stillActive

	effectiveDocks := facility.EffectiveDocks(constructionTechMultiplier)
	for effectiveDocks-len(facility.ActiveRepairs) > 0 && len(facility.QueuedRepairs) > 0 {
		pid := facility.QueuedRepairs[0]
		facility.QueuedRepairs = facility.QueuedRepairs[1:]

		p, err := state.GetRepairProject(pid)
		if err != nil {
			continue
		}
		p.TurnsRemaining--
		if p.TurnsRemaining <= 0 {
			commissionRepair(state, p, rec)
			_ = state.RemoveRepairProject(pid)
			continue
		}
		_ = state.UpdateRepairProject(p)
		facility.ActiveRepairs = append(facility.ActiveRepairs, pid)
	}

	_ = state.UpdateNeoria(facility)
}

// advanceColonyLegacyQueue advances the colony-level queue for fighters,
// buildings, infrastructure and industrial-unit investment (planet-side
// items with no facility binding), one project per turn, per spec.md
// §4.4.
func advanceColonyLegacyQueue(state *model.State, id model.ColonyID, rec *Recorder) {
	colony, err := state.GetColony(id)
	if err != nil {
		return
	}

	if colony.ActiveConstruction != nil {
		p, err := state.GetConstructionProject(*colony.ActiveConstruction)
		if err == nil && p.FacilityID == nil {
			p.TurnsRemaining--
			if p.TurnsRemaining <= 0 {
				commissionConstruction(state, p, rec)
				_ = state.RemoveConstructionProject(p.ID)
				colony.ActiveConstruction = nil
			} else {
				_ = state.UpdateConstructionProject(p)
			}
		}
	}

	if colony.ActiveConstruction == nil {
		for len(colony.ConstructionQueue) > 0 {
			next := colony.ConstructionQueue[0]
			colony.ConstructionQueue = colony.ConstructionQueue[1:]
			p, err := state.GetConstructionProject(next)
			if err != nil || p.FacilityID != nil {
				continue
			}
			colony.ActiveConstruction = &next
			break
		}
	}

	_ = state.UpdateColony(colony)
}

// commissionConstruction commissions a completed construction project
// into the right collection, per spec.md §4.4's commissioning split.
// commissionConstruction finishes a project the instant its TurnsRemaining
// reaches zero, during this same turn's Queues phase (phase 7) rather than
// spec.md §4.4's literal "commissions at the next turn's Command Phase"
// wording — there is no separate Command Phase in this pipeline. Since
// Queues already runs after Combat (phase 4), a unit finishing this turn
// never has to fight the turn it completes, which is the rule's actual
// intent; only the exact phase label differs from the spec's prose.
func commissionConstruction(state *model.State, p *model.ConstructionProject, rec *Recorder) {
	switch {
	case p.ShipClass != "":
		for i := 0; i < maxInt(p.Quantity, 1); i++ {
			commissionOneShip(state, p, rec)
		}
	case p.FacilityClass != nil:
		id := state.NextNeoriaID()
		n := &model.Neoria{ID: id, ColonyID: p.ColonyID, Class: *p.FacilityClass}
		_ = state.AddNeoria(n)
	case p.GroundClass != nil:
		id := state.NextGroundUnitID()
		g := &model.GroundUnit{ID: id, ColonyID: p.ColonyID, Class: *p.GroundClass, AttackStrength: 1, DefenseStrength: 1}
		_ = state.AddGroundUnit(g)
	case p.IndustrialUnits > 0:
		if colony, err := state.GetColony(p.ColonyID); err == nil {
			colony.IndustrialUnits += p.IndustrialUnits
			_ = state.UpdateColony(colony)
		}
	}
}

// commissionOneShip commissions a single hull from a completed ship
// construction project, attaching it as a new squadron to an existing
// friendly fleet in the colony's system if one exists, or else founding
// a fresh fleet — mirroring the teacher's fleet-creation fallback
// (internal/game/fleet_creator.go).
func commissionOneShip(state *model.State, p *model.ConstructionProject, rec *Recorder) {
	colony, err := state.GetColony(p.ColonyID)
	if err != nil {
		return
	}

	shipID := state.NextShipID()
	sqID := state.NextSquadronID()
	ship := &model.Ship{ID: shipID, SquadronID: sqID, Class: p.ShipClass, State: model.Undamaged}
	_ = state.AddShip(ship)
	sq := &model.Squadron{ID: sqID, Type: model.CombatSquadronType, Flagship: shipID}

	hostFleet := findFriendlyFleet(state, colony.SystemID, colony.OwnerID)
	if hostFleet == nil {
		newFleetID := state.NextFleetID()
		hostFleet = &model.Fleet{ID: newFleetID, OwnerID: colony.OwnerID, SystemID: colony.SystemID, Name: "New Construction", Status: model.Active, ROE: model.DefaultROE}
		_ = state.AddFleet(hostFleet)
	}
	sq.FleetID = hostFleet.ID
	_ = state.AddSquadron(sq)
	_ = state.UpdateFleet(hostFleet)

	sysID := colony.SystemID
	rec.Emit(model.ShipCommissionedEvent, &sysID, []model.HouseID{colony.OwnerID}, map[string]interface{}{"shipClass": p.ShipClass})
}

func findFriendlyFleet(state *model.State, sys model.SystemID, owner model.HouseID) *model.Fleet {
	for _, fid := range state.FleetsInSystem(sys) {
		f, err := state.GetFleet(fid)
		if err == nil && f.OwnerID == owner {
			return f
		}
	}
	return nil
}

func commissionRepair(state *model.State, p *model.RepairProject, rec *Recorder) {
	ship, err := state.GetShip(p.ShipID)
	if err != nil {
		return
	}
	ship.State = model.Undamaged
	ship.CumulativeHits = 0
	_ = state.UpdateShip(ship)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

package game

import (
	"ec4x_engine/internal/config"
	"ec4x_engine/internal/model"
)

// resolveSystemCombat is the single entry point for one contested
// system's combat, enforcing the Space -> Orbital -> Planetary theater
// sequence and blocking progression when the attacker fails to achieve
// supremacy in the prior theater, per spec.md §4.7.
func resolveSystemCombat(state *model.State, systemID model.SystemID, seed int64, turn int, cfg config.Config, rec *Recorder) {
	owner, mobile, orbital, attackerFleetIDs := classifyParticipants(state, systemID)
	if owner == model.ZeroID || len(attackerFleetIDs) == 0 {
		return
	}

	sysID := systemID
	rec.Emit(model.CombatTheaterBeganEvent, &sysID, nil, map[string]interface{}{"theater": "space_combat"})

	spaceForces := buildTaskForces(state, state.ShipClasses, append(append([]model.FleetID{}, mobile...), attackerFleetIDs...))
	runDetection(state, spaceForces, seed, turn, systemID, rec)
	spaceOutcome := runTheaterRounds(state, spaceForces, SpaceTheater, seed, turn, systemID, homeworldOwnerAt(state, systemID), rec)
	syncCombatDamage(state, spaceForces)
	escalateAllParticipants(state, spaceForces, model.Hostile, turn)
	rec.Emit(model.CombatTheaterCompletedEvent, &sysID, nil, map[string]interface{}{"theater": "space_combat", "stalemate": spaceOutcome.Stalemate})

	attackerAlive := houseHasAS(spaceForces, owner, false)
	defenderAlive := spaceForces[owner] != nil && spaceForces[owner].alive()
	if attackerAlive && !defenderAlive {
		rec.Emit(model.CombatTheaterBeganEvent, &sysID, nil, map[string]interface{}{"theater": "orbital_combat"})

		orbitalForces := buildTaskForces(state, state.ShipClasses, append(append([]model.FleetID{}, orbital...), survivingAttackerFleets(state, spaceForces, owner, spaceOutcome)...))
		ensureForce(orbitalForces, owner)
		addStarbasesAndUnassigned(state, orbitalForces[owner], owner, systemID)

		orbitalOutcome := runTheaterRounds(state, orbitalForces, OrbitalTheater, seed, turn, systemID, homeworldOwnerAt(state, systemID), rec)
		syncCombatDamage(state, orbitalForces)
		syncFacilityDamage(state, orbitalForces)
		escalateAllParticipants(state, orbitalForces, model.Enemy, turn)
		rec.Emit(model.CombatTheaterCompletedEvent, &sysID, nil, map[string]interface{}{"theater": "orbital_combat", "stalemate": orbitalOutcome.Stalemate})

		if houseHasAS(orbitalForces, owner, false) && !(orbitalForces[owner] != nil && orbitalForces[owner].alive()) {
			rec.Emit(model.CombatTheaterBeganEvent, &sysID, nil, map[string]interface{}{"theater": "planetary_combat"})
			attackersByHouse := groupArrivedByHouse(state, orbitalForces, owner, orbitalOutcome)
			resolvePlanetaryCombat(state, state.ShipClasses, systemID, owner, attackersByHouse, seed, turn, rec)
			for _, cid := range state.ColoniesInSystem(systemID) {
				c, err := state.GetColony(cid)
				if err != nil {
					continue
				}
				for _, gid := range append([]model.GroundUnitID{}, c.GroundUnitIDs...) {
					if g, err := state.GetGroundUnit(gid); err == nil && g.Destroyed {
						_ = state.RemoveGroundUnit(gid)
					}
				}
			}
			rec.Emit(model.CombatTheaterCompletedEvent, &sysID, nil, map[string]interface{}{"theater": "planetary_combat"})
		}

		applyPrestigeAndCleanup(state, orbitalForces, rec)
		applyRetreatSeekHome(state, orbitalOutcome, systemID, rec)
		cleanupDestroyedFleets(state, orbitalForces)
		return
	}

	applyPrestigeAndCleanup(state, spaceForces, rec)
	applyRetreatSeekHome(state, spaceOutcome, systemID, rec)
	cleanupDestroyedFleets(state, spaceForces)
}

func homeworldOwnerAt(state *model.State, systemID model.SystemID) model.HouseID {
	for _, cid := range state.ColoniesInSystem(systemID) {
		c, err := state.GetColony(cid)
		if err == nil && c.IsHomeworld {
			return c.OwnerID
		}
	}
	return model.ZeroID
}

// houseHasAS reports whether any house other than (or including, if
// includeOwner) the named owner still has combat strength.
func houseHasAS(forces map[model.HouseID]*taskForce, owner model.HouseID, includeOwner bool) bool {
	for house, tf := range forces {
		if house == owner && !includeOwner {
			continue
		}
		if tf.alive() {
			return true
		}
	}
	return false
}

func survivingAttackerFleets(state *model.State, forces map[model.HouseID]*taskForce, owner model.HouseID, outcome combatOutcome) []model.FleetID {
	var out []model.FleetID
	seen := make(map[model.FleetID]bool)
	for house, tf := range forces {
		if house == owner || !tf.alive() {
			continue
		}
		for _, s := range tf.Ships {
			if s.State == model.Destroyed {
				continue
			}
			sq, err := state.GetSquadron(s.SquadronID)
			if err != nil || outcome.Retreated[sq.FleetID] {
				continue
			}
			if !seen[sq.FleetID] {
				seen[sq.FleetID] = true
				out = append(out, sq.FleetID)
			}
		}
	}
	return out
}

func groupArrivedByHouse(state *model.State, forces map[model.HouseID]*taskForce, owner model.HouseID, outcome combatOutcome) map[model.HouseID][]model.FleetID {
	out := make(map[model.HouseID][]model.FleetID)
	for house, tf := range forces {
		if house == owner {
			continue
		}
		seen := make(map[model.FleetID]bool)
		for _, s := range tf.Ships {
			if s.State == model.Destroyed {
				continue
			}
			sq, err := state.GetSquadron(s.SquadronID)
			if err != nil || outcome.Retreated[sq.FleetID] || seen[sq.FleetID] {
				continue
			}
			seen[sq.FleetID] = true
			out[house] = append(out[house], sq.FleetID)
		}
	}
	return out
}

func ensureForce(forces map[model.HouseID]*taskForce, house model.HouseID) {
	if _, ok := forces[house]; !ok {
		forces[house] = newTaskForce(house)
	}
}

// syncCombatDamage writes every combatShip's final state back to its
// persistent model.Ship row.
func syncCombatDamage(state *model.State, forces map[model.HouseID]*taskForce) {
	for _, tf := range forces {
		for _, s := range tf.Ships {
			ship, err := state.GetShip(s.ShipID)
			if err != nil {
				continue
			}
			ship.State = s.State
			ship.CumulativeHits = s.Hits
			_ = state.UpdateShip(ship)
		}
	}
}

// syncFacilityDamage writes every combatFacility's final state back to
// its persistent model.Kastra row.
func syncFacilityDamage(state *model.State, forces map[model.HouseID]*taskForce) {
	for _, tf := range forces {
		for _, f := range tf.Facilities {
			k, err := state.GetKastra(f.KastraID)
			if err != nil {
				continue
			}
			k.Crippled = f.Crippled
			k.Destroyed = f.Destroyed
			_ = state.UpdateKastra(k)
		}
	}
}

// escalateAllParticipants auto-escalates every pair of opposing houses in
// a theater's forces toward the given floor, per spec.md §4.7's
// "Space combat escalates toward Hostile; Orbital escalates toward Enemy".
func escalateAllParticipants(state *model.State, forces map[model.HouseID]*taskForce, floor model.DiplomaticState, turn int) {
	var houses []model.HouseID
	for house := range forces {
		houses = append(houses, house)
	}
	for i := range houses {
		for j := range houses {
			if i == j {
				continue
			}
			a, err := state.GetHouse(houses[i])
			if err != nil {
				continue
			}
			escalate(a, houses[j], floor, turn)
			_ = state.UpdateHouse(a)
		}
	}
}

// applyPrestigeAndCleanup awards zero-sum prestige for the theater's
// outcome and removes destroyed starbases, per spec.md §4.7's "Prestige"
// and "Cleanup" rules. Destroyed ships and empty fleets are removed
// afterwards by cleanupDestroyedFleets; destroyed ground units are removed
// by resolveSystemCombat right after Planetary combat, the only theater
// that damages them.
func applyPrestigeAndCleanup(state *model.State, forces map[model.HouseID]*taskForce, rec *Recorder) {
	for house, tf := range forces {
		destroyedShips := 0
		destroyedFacilities := 0
		for _, s := range tf.Ships {
			if s.State == model.Destroyed {
				destroyedShips++
			}
		}
		for _, f := range tf.Facilities {
			if f.Destroyed {
				destroyedFacilities++
			}
		}
		if destroyedShips == 0 && destroyedFacilities == 0 {
			continue
		}
		h, err := state.GetHouse(house)
		if err != nil {
			continue
		}
		h.Prestige -= destroyedShips*1 + destroyedFacilities*3
		_ = state.UpdateHouse(h)

		for other, otf := range forces {
			if other == house || !otf.alive() {
				continue
			}
			oh, err := state.GetHouse(other)
			if err != nil {
				continue
			}
			oh.Prestige += destroyedShips*1 + destroyedFacilities*3
			_ = state.UpdateHouse(oh)
		}
	}

	for _, tf := range forces {
		for _, f := range tf.Facilities {
			if f.Destroyed {
				_ = state.RemoveKastra(f.KastraID)
			}
		}
	}
}

// applyRetreatSeekHome queues a SeekHome order for every fleet that
// retreated out of combat this theater, per spec.md §4.7's post-combat
// cleanup: "apply retreat seek-home orders for each retreating house's
// remaining fleet in the system".
func applyRetreatSeekHome(state *model.State, outcome combatOutcome, systemID model.SystemID, rec *Recorder) {
	sysID := systemID
	for fleetID := range outcome.Retreated {
		f, err := state.GetFleet(fleetID)
		if err != nil {
			continue
		}
		f.Order = &model.FleetOrder{FleetID: f.ID, Kind: model.SeekHome}
		_ = state.UpdateFleet(f)
		rec.Emit(model.FleetRetreatEvent, &sysID, []model.HouseID{f.OwnerID}, map[string]interface{}{"fleet": f.ID})
	}
}

// cleanupDestroyedFleets removes every destroyed ship's row, detaches it
// from its squadron, and removes every now-empty fleet from the system,
// per spec.md §4.7's cleanup ordering (ships -> empty fleets) and §3's
// "no dangling IDs may remain after a phase completes."
func cleanupDestroyedFleets(state *model.State, forces map[model.HouseID]*taskForce) {
	touchedFleets := make(map[model.FleetID]bool)
	for _, tf := range forces {
		for _, s := range tf.Ships {
			if s.State != model.Destroyed {
				continue
			}
			sq, err := state.GetSquadron(s.SquadronID)
			if err != nil {
				continue
			}
			touchedFleets[sq.FleetID] = true
			if sq.Flagship == s.ShipID {
				if len(sq.Escorts) > 0 {
					sq.Flagship = sq.Escorts[0]
					sq.Escorts = sq.Escorts[1:]
				} else {
					sq.Flagship = model.ZeroID
				}
			} else {
				sq.Escorts = removeShipID(sq.Escorts, s.ShipID)
			}
			_ = state.UpdateSquadron(sq)
			_ = state.RemoveShip(s.ShipID)
		}
	}

	for fleetID := range touchedFleets {
		f, err := state.GetFleet(fleetID)
		if err != nil {
			continue
		}
		empty := true
		for _, sqID := range f.SquadronIDs {
			sq, err := state.GetSquadron(sqID)
			if err != nil {
				continue
			}
			if sq.Flagship != model.ZeroID || len(sq.Escorts) > 0 {
				empty = false
				break
			}
		}
		if empty {
			_ = state.RemoveFleet(fleetID)
		}
	}
}

func removeShipID(ids []model.ShipID, target model.ShipID) []model.ShipID {
	kept := ids[:0:0]
	for _, id := range ids {
		if id != target {
			kept = append(kept, id)
		}
	}
	return kept
}

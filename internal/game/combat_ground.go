package game

import (
	"sort"

	"ec4x_engine/internal/model"
)

const (
	maxBombardmentRounds = 3
	spaceportDefenseStrength = 30.0
	marineAttackValue       = 10.0
	homeworldDRM            = 1
	preparedDefenderDRM     = 2
	blitzDefenderDRM        = 3
)

// groundCombatMode is the closed set of planetary-combat shapes, per
// spec.md §4.7.
type groundCombatMode int

const (
	bombardmentOnly groundCombatMode = iota
	standardInvasion
	blitzInvasion
)

// resolvePlanetaryCombat runs ground combat against every colony the
// owner holds in a system, for the attacking house's fleets that both
// completed movement this turn and survived into Planetary combat, per
// spec.md §4.7's bombardment/standard-invasion/blitz rules.
func resolvePlanetaryCombat(state *model.State, shipRegistry *model.Registry, systemID model.SystemID, ownerHouse model.HouseID, attackerFleets map[model.HouseID][]model.FleetID, seed int64, turn int, rec *Recorder) {
	for _, colonyID := range state.ColoniesInSystem(systemID) {
		colony, err := state.GetColony(colonyID)
		if err != nil || colony.OwnerID != ownerHouse {
			continue
		}

		for attackerHouse, fleetIDs := range attackerFleets {
			if attackerHouse == ownerHouse {
				continue
			}
			arrived := arrivedFleets(state, fleetIDs)
			if len(arrived) == 0 {
				continue
			}
			mode, marines, bombardAS := classifyGroundAssault(state, shipRegistry, arrived)
			if bombardAS <= 0 && marines == 0 {
				continue
			}
			resolveColonyAssault(state, colony, attackerHouse, mode, marines, bombardAS, seed, turn, rec)
		}
	}
}

func arrivedFleets(state *model.State, fleetIDs []model.FleetID) []*model.Fleet {
	var out []*model.Fleet
	for _, fid := range fleetIDs {
		f, err := state.GetFleet(fid)
		if err == nil && f.PendingArrival {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// classifyGroundAssault inspects the attacker's arrived fleets to decide
// whether this is a bombardment-only pass, a standard invasion, or a
// blitz, and totals the marine count and bombardment AS available.
func classifyGroundAssault(state *model.State, shipRegistry *model.Registry, fleets []*model.Fleet) (mode groundCombatMode, marines int, bombardAS float64) {
	mode = bombardmentOnly
	for _, f := range fleets {
		if f.Order != nil {
			switch f.Order.Kind {
			case model.Blitz:
				mode = blitzInvasion
			case model.Invade:
				if mode != blitzInvasion {
					mode = standardInvasion
				}
			}
		}
		for _, sqID := range f.SquadronIDs {
			sq, err := state.GetSquadron(sqID)
			if err != nil {
				continue
			}
			marines += sq.MarinesLoaded
			if sq.Type == model.CombatSquadronType {
				for _, shipID := range sq.Ships() {
					ship, err := state.GetShip(shipID)
					if err != nil || ship.State == model.Destroyed {
						continue
					}
					as, _ := shipClassStats(shipRegistry, ship.Class)
					bombardAS += as * ship.State.StrengthMultiplier()
				}
			}
		}
	}
	if marines == 0 && mode != bombardmentOnly {
		mode = bombardmentOnly
	}
	return mode, marines, bombardAS
}

func resolveColonyAssault(state *model.State, colony *model.Colony, attackerHouse model.HouseID, mode groundCombatMode, marines int, bombardAS float64, seed int64, turn int, rec *Recorder) {
	batteries := colonyBatteries(state, colony)
	groundForces := colonyGroundForces(state, colony)

	rounds := maxBombardmentRounds
	if mode == blitzInvasion {
		rounds = 1
	}

	remainingHits := 0.0
	for round := 0; round < rounds && bombardAS > 0; round++ {
		remainingHits += bombardAS
		remainingHits = applyBombardmentRound(batteries, remainingHits)
		if allDestroyed(batteries) {
			break
		}
	}

	sysID := colony.SystemID
	batteriesDown := allDestroyed(batteries)

	switch mode {
	case bombardmentOnly:
		remainingHits = damageGroundForces(groundForces, remainingHits)
		remainingHits = damageSpaceports(state, colony, remainingHits)
		applyInfrastructureAndPopulation(colony, remainingHits)
		_ = state.UpdateColony(colony)

	case standardInvasion:
		if !batteriesDown {
			// Prerequisite unmet this turn: bombardment proceeds, invasion
			// deferred to a future turn's orders.
			remainingHits = damageGroundForces(groundForces, remainingHits)
			applyInfrastructureAndPopulation(colony, remainingHits)
			_ = state.UpdateColony(colony)
			break
		}
		crippleAllSpaceports(state, colony)
		drm := preparedDefenderDRM
		if colony.IsHomeworld {
			drm += homeworldDRM
		}
		if groundCombatWin(seed, turn, colony.SystemID, marines, groundForces, drm) {
			colony.InfrastructureLv = colony.InfrastructureLv / 2
			transferColony(state, colony, attackerHouse, rec)
			rec.Emit(model.ColonyProjectsLostEvent, &sysID, nil, map[string]interface{}{"colony": colony.ID})
		}

	case blitzInvasion:
		drm := blitzDefenderDRM
		if colony.IsHomeworld {
			drm += homeworldDRM
		}
		if groundCombatWin(seed, turn, colony.SystemID, marines, groundForces, drm) {
			transferColony(state, colony, attackerHouse, rec)
		}
	}
}

func colonyBatteries(state *model.State, colony *model.Colony) []*model.GroundUnit {
	var out []*model.GroundUnit
	for _, id := range colony.GroundUnitIDs {
		g, err := state.GetGroundUnit(id)
		if err == nil && g.Class == model.GroundBattery && !g.Destroyed {
			out = append(out, g)
		}
	}
	return out
}

func colonyGroundForces(state *model.State, colony *model.Colony) []*model.GroundUnit {
	var out []*model.GroundUnit
	for _, id := range colony.GroundUnitIDs {
		g, err := state.GetGroundUnit(id)
		if err == nil && g.Class != model.GroundBattery && !g.Destroyed {
			out = append(out, g)
		}
	}
	return out
}

func allDestroyed(units []*model.GroundUnit) bool {
	for _, u := range units {
		if !u.Destroyed {
			return false
		}
	}
	return true
}

// applyBombardmentRound spends the hit pool against batteries in
// ascending-DS order and returns the unspent remainder for cascade to
// ground forces, per spec.md §4.7's "excess hits after all batteries are
// destroyed" rule.
func applyBombardmentRound(batteries []*model.GroundUnit, hits float64) float64 {
	sort.SliceStable(batteries, func(i, j int) bool { return batteries[i].DefenseStrength < batteries[j].DefenseStrength })
	for _, b := range batteries {
		if b.Destroyed || hits <= 0 {
			continue
		}
		need := float64(b.DefenseStrength)
		if hits >= need {
			b.Destroyed = true
			hits -= need
		} else {
			b.DefenseStrength -= int(hits)
			hits = 0
		}
	}
	return hits
}

func damageGroundForces(units []*model.GroundUnit, hits float64) float64 {
	for _, u := range units {
		if u.Destroyed || hits <= 0 {
			continue
		}
		need := float64(u.DefenseStrength)
		if hits >= need {
			u.Destroyed = true
			hits -= need
		} else {
			u.DefenseStrength -= int(hits)
			hits = 0
		}
	}
	return hits
}

func damageSpaceports(state *model.State, colony *model.Colony, hits float64) float64 {
	for _, id := range colony.NeoriaIDs {
		if hits <= 0 {
			break
		}
		n, err := state.GetNeoria(id)
		if err != nil || n.Class != model.SpaceportClass || n.Crippled {
			continue
		}
		if hits >= spaceportDefenseStrength {
			n.Crippled = true
			hits -= spaceportDefenseStrength
		} else {
			hits = 0
		}
		_ = state.UpdateNeoria(n)
	}
	return hits
}

func crippleAllSpaceports(state *model.State, colony *model.Colony) {
	for _, id := range colony.NeoriaIDs {
		n, err := state.GetNeoria(id)
		if err != nil || n.Class != model.SpaceportClass {
			continue
		}
		n.Crippled = true
		_ = state.UpdateNeoria(n)
	}
}

// applyInfrastructureAndPopulation splits the leftover bombardment hits
// 50/50 between infrastructure levels and population (1 hit = 1 PTU
// killed), per spec.md §4.7.
func applyInfrastructureAndPopulation(colony *model.Colony, hits float64) {
	if hits <= 0 {
		return
	}
	half := hits / 2
	colony.InfrastructureLv -= int(half)
	if colony.InfrastructureLv < 0 {
		colony.InfrastructureLv = 0
	}
	colony.KillPTU(int(half))
}

// groundCombatWin compares attacker marine strength to DRM-weighted
// defender strength via a single deterministic roll, per spec.md §4.7's
// "Marines vs ground forces; defender DRM = +2/+1" rule.
func groundCombatWin(seed int64, turn int, systemID model.SystemID, marines int, defenders []*model.GroundUnit, drm int) bool {
	defenderStrength := 0
	for _, d := range defenders {
		defenderStrength += d.DefenseStrength
	}
	defenderStrength += defenderStrength * drm / 10

	attackerStrength := int(float64(marines) * marineAttackValue)
	stream := seedStream(seed, turn, systemID, "ground_combat")
	variance := stream.Intn(21) - 10 // +/-10%
	attackerStrength += attackerStrength * variance / 100

	return attackerStrength > defenderStrength
}

func transferColony(state *model.State, colony *model.Colony, newOwner model.HouseID, rec *Recorder) {
	colony.OwnerID = newOwner
	colony.Blockaded = false
	colony.BlockadedBy = nil
	colony.BlockadeTurns = 0
	_ = state.UpdateColony(colony)
}

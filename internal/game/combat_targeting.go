package game

import (
	"math"
	"sort"

	"ec4x_engine/internal/model"
)

const (
	maxCombatRounds       = 20
	stalemateNoChangeCap  = 5
	ambushCERBonus        = 0.4
	surpriseCERBonus      = 0.3
	desperationCERBonus   = 2.0
)

// combatOutcome summarizes one theater's resolution for the caller: which
// houses still have surviving AS, and which fleets retreated (and so need
// a post-combat seek-home order).
type combatOutcome struct {
	Retreated    map[model.FleetID]bool
	Destroyed    map[model.FleetID]bool
	AnyCombat    bool
	Stalemate    bool
}

// runTheaterRounds drives one theater's round loop to termination, per
// spec.md §4.7's "Round structure" and "Termination" rules.
func runTheaterRounds(state *model.State, forces map[model.HouseID]*taskForce, theater Theater, seed int64, turn int, systemID model.SystemID, homeworldOwner model.HouseID, rec *Recorder) combatOutcome {
	out := combatOutcome{Retreated: make(map[model.FleetID]bool), Destroyed: make(map[model.FleetID]bool)}
	stream := seedStream(seed, turn, systemID, theater.String())

	noChangeStreak := 0
	desperationSpent := false

	for round := 1; round <= maxCombatRounds; round++ {
		aliveHouses := activeHouses(forces)
		if len(aliveHouses) <= 1 {
			break
		}
		out.AnyCombat = true

		sysID := systemID
		rec.Emit(model.CombatPhaseBeganEvent, &sysID, nil, map[string]interface{}{
			"theater": theater.String(), "round": round,
		})

		ambushWinner := model.HouseID(0)
		if round == 1 && len(aliveHouses) == 2 {
			if stream.Roll(50) {
				ambushWinner = aliveHouses[0]
			} else {
				ambushWinner = aliveHouses[1]
			}
		}

		hits := make(map[model.HouseID]float64, len(aliveHouses))
		for _, house := range aliveHouses {
			tf := forces[house]
			as := tf.totalAS()
			cer := 1.0 + moraleModifier(state, house) + (stream.Float64()-0.5)*0.3
			if desperationSpent && house != homeworldOwner {
				cer += desperationCERBonus
			}
			if house == ambushWinner {
				cer += ambushCERBonus
			} else if round == 1 && ambushWinner != model.HouseID(0) {
				cer += surpriseCERBonus
			}
			if cer < 0.1 {
				cer = 0.1
			}
			hits[house] = math.Floor(as * cer)
		}

		changed := false
		for _, shooter := range aliveHouses {
			shooterHits := hits[shooter]
			if shooterHits <= 0 {
				continue
			}
			targets := targetPriority(state, shooter, aliveHouses)
			if len(targets) == 0 {
				continue
			}
			if applyHitsToTargets(state, forces, shooterHits, targets, &out) {
				changed = true
			}
		}

		if evaluateRetreats(state, forces, systemID, homeworldOwner, &out) {
			changed = true
		}

		if changed {
			noChangeStreak = 0
		} else {
			noChangeStreak++
		}

		if noChangeStreak >= stalemateNoChangeCap {
			if !desperationSpent {
				desperationSpent = true
				noChangeStreak = stalemateNoChangeCap - 1
				continue
			}
			out.Stalemate = true
			break
		}
	}

	return out
}

func activeHouses(forces map[model.HouseID]*taskForce) []model.HouseID {
	var out []model.HouseID
	for house, tf := range forces {
		if tf.alive() {
			out = append(out, house)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// moraleModifier scales a house's prestige into a small CER adjustment,
// per spec.md §4.7's "morale (prestige -> ROE modifier)".
func moraleModifier(state *model.State, house model.HouseID) float64 {
	h, err := state.GetHouse(house)
	if err != nil {
		return 0
	}
	m := float64(h.Prestige) / 500.0
	if m > 0.3 {
		m = 0.3
	}
	if m < -0.3 {
		m = -0.3
	}
	return m
}

// targetPriority orders the shooter's possible target houses by
// diplomatic-priority tier (higher DiplomaticState ranks first), per
// spec.md §4.7's "diplomatic-priority tier first" rule.
func targetPriority(state *model.State, shooter model.HouseID, aliveHouses []model.HouseID) []model.HouseID {
	h, err := state.GetHouse(shooter)
	if err != nil {
		return nil
	}
	var targets []model.HouseID
	for _, house := range aliveHouses {
		if house == shooter {
			continue
		}
		targets = append(targets, house)
	}
	sort.Slice(targets, func(i, j int) bool {
		ri := h.Relations[targets[i]].State
		rj := h.Relations[targets[j]].State
		if ri != rj {
			return ri > rj
		}
		return targets[i] < targets[j]
	})
	return targets
}

// applyHitsToTargets splits a shooter's hit pool across its target houses
// (weighted toward the highest-priority tier) and, within each target
// house, across its ships/facilities by bucket-weighted effective AS with
// +/-5% variance, per spec.md §4.7 step 4. Reports whether any damage
// state actually changed (for stalemate detection).
func applyHitsToTargets(state *model.State, forces map[model.HouseID]*taskForce, totalHits float64, targets []model.HouseID, out *combatOutcome) bool {
	changed := false
	remaining := totalHits
	share := totalHits / float64(len(targets))
	for i, targetHouse := range targets {
		portion := share
		if i == len(targets)-1 {
			portion = remaining
		}
		remaining -= portion
		if portion <= 0 {
			continue
		}
		tf := forces[targetHouse]
		if applyHitsToForce(state, tf, portion, out) {
			changed = true
		}
	}
	return changed
}

func applyHitsToForce(state *model.State, tf *taskForce, hits float64, out *combatOutcome) bool {
	type weighted struct {
		weight float64
		ship   *combatShip
		facility *combatFacility
	}
	var pool []weighted
	for _, s := range tf.Ships {
		if s.State == model.Destroyed {
			continue
		}
		if tf.Cloaked[s.SquadronID] && !tf.Detected[s.SquadronID] {
			continue
		}
		pool = append(pool, weighted{weight: s.Bucket.Weight() * s.AS, ship: s})
	}
	for _, f := range tf.Facilities {
		if f.Destroyed {
			continue
		}
		pool = append(pool, weighted{weight: StarbaseBucket.Weight() * f.AS, facility: f})
	}
	if len(pool) == 0 {
		return false
	}
	totalWeight := 0.0
	for _, w := range pool {
		totalWeight += w.weight
	}
	if totalWeight <= 0 {
		return false
	}

	changed := false
	for _, w := range pool {
		fraction := w.weight / totalWeight
		portion := hits * fraction
		if w.ship != nil {
			if applyShipHits(w.ship, portion) {
				changed = true
			}
		} else if w.facility != nil {
			if applyFacilityHits(w.facility, portion) {
				changed = true
			}
		}
	}
	if changed {
		for _, w := range pool {
			if w.ship != nil {
				ship, err := state.GetShip(w.ship.ShipID)
				if err == nil {
					ship.State = w.ship.State
					ship.CumulativeHits = w.ship.Hits
					_ = state.UpdateShip(ship)
				}
			}
		}
	}
	return changed
}

func applyShipHits(s *combatShip, hits float64) bool {
	if s.State == model.Destroyed || hits <= 0 {
		return false
	}
	before := s.State
	s.Hits += hits
	switch s.State {
	case model.Undamaged:
		if s.Hits >= s.DS {
			s.State = model.Crippled
		}
	case model.Crippled:
		if s.Hits >= 1.5*s.DS {
			s.State = model.Destroyed
		}
	}
	return s.State != before
}

func applyFacilityHits(f *combatFacility, hits float64) bool {
	if f.Destroyed || hits <= 0 {
		return false
	}
	before := f.Crippled
	f.Hits += hits
	if !f.Crippled {
		if f.Hits >= f.DS {
			f.Crippled = true
		}
	} else if f.Hits >= 1.5*f.DS {
		f.Destroyed = true
	}
	return f.Crippled != before || f.Destroyed
}

// evaluateRetreats checks every fleet currently contributing ships to
// combat against its ROE threshold, per spec.md §4.7 steps 6-7. A
// retreating fleet's combat ships are pulled from further rounds and its
// screened (non-Combat) squadrons take losses proportional to the
// combat-ship casualty rate.
func evaluateRetreats(state *model.State, forces map[model.HouseID]*taskForce, systemID model.SystemID, homeworldOwner model.HouseID, out *combatOutcome) bool {
	changed := false
	for house, tf := range forces {
		fleetShips := make(map[model.FleetID][]*combatShip)
		fleetLost := make(map[model.FleetID]int)
		for _, s := range tf.Ships {
			sq, err := state.GetSquadron(s.SquadronID)
			if err != nil {
				continue
			}
			if s.State == model.Destroyed {
				fleetLost[sq.FleetID]++
				continue
			}
			fleetShips[sq.FleetID] = append(fleetShips[sq.FleetID], s)
		}

		enemyAS := 0.0
		for other, otf := range forces {
			if other != house {
				enemyAS += otf.totalAS()
			}
		}
		if enemyAS <= 0 {
			continue
		}

		for fleetID, ships := range fleetShips {
			if out.Retreated[fleetID] {
				continue
			}
			fleet, err := state.GetFleet(fleetID)
			if err != nil {
				continue
			}
			if fleet.IsHomeworldDefense || house == homeworldOwner {
				continue
			}
			fleetAS := 0.0
			for _, s := range ships {
				fleetAS += s.AS * s.State.StrengthMultiplier()
			}
			effectiveROE := fleet.ROE + int(moraleModifier(state, house)*10)
			if fleetAS/enemyAS >= model.ROEThreshold(effectiveROE) {
				continue
			}

			out.Retreated[fleetID] = true
			changed = true
			lost := fleetLost[fleetID]
			applyScreenedLosses(state, fleet, float64(lost)/float64(lost+len(ships)))
		}

		kept := tf.Ships[:0:0]
		for _, s := range tf.Ships {
			if sq, err := state.GetSquadron(s.SquadronID); err == nil && out.Retreated[sq.FleetID] {
				continue
			}
			kept = append(kept, s)
		}
		tf.Ships = kept
	}
	return changed
}

// applyScreenedLosses removes a proportional fraction of non-Combat
// squadron ships from a retreating fleet, matching the combat-ship
// casualty rate for that fleet this engagement, per spec.md §4.7 step 7.
func applyScreenedLosses(state *model.State, fleet *model.Fleet, rate float64) {
	if rate <= 0 {
		return
	}
	for _, sqID := range fleet.SquadronIDs {
		sq, err := state.GetSquadron(sqID)
		if err != nil || sq.Type == model.CombatSquadronType {
			continue
		}
		ships := sq.Ships()
		losses := int(math.Round(float64(len(ships)) * rate))
		for i := 0; i < losses && i < len(ships); i++ {
			ship, err := state.GetShip(ships[len(ships)-1-i])
			if err == nil {
				ship.State = model.Destroyed
				_ = state.UpdateShip(ship)
			}
		}
	}
}

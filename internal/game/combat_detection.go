package game

import "ec4x_engine/internal/model"

// cloakRating and eliminationRating are flat per-squadron CLK/ELI values.
// The registries of spec.md §6 do not carry a dedicated stealth stat, so
// these are fixed constants rather than per-class lookups — a simpler
// rule than a full stealth-tech tree, recorded as an open decision.
const (
	raiderCloakRating      = 4
	defaultEliminationRating = 3
)

// runDetection resolves the pre-combat stealth roll for every cloaked
// Raider task force against every hostile detector task force, per
// spec.md §4.7: "roll 1d10+CLK (attacker) vs 1d10+ELI+starbaseDetectionBonus
// (defender)". A raider TF detected in any theater stays detected for the
// remainder of the system's combat.
func runDetection(state *model.State, forces map[model.HouseID]*taskForce, seed int64, turn int, systemID model.SystemID, rec *Recorder) {
	stream := seedStream(seed, turn, systemID, "detection")

	for attackerHouse, attackerTF := range forces {
		for sqID := range attackerTF.Cloaked {
			if attackerTF.Detected[sqID] {
				continue
			}
			attackerRoll := stream.Intn(10) + 1 + raiderCloakRating

			detected := false
			for defenderHouse, defenderTF := range forces {
				if defenderHouse == attackerHouse {
					continue
				}
				detectionBonus := starbaseDetectionBonus(defenderTF)
				defenderRoll := stream.Intn(10) + 1 + defaultEliminationRating + detectionBonus
				if defenderRoll >= attackerRoll {
					detected = true
					break
				}
			}

			sysID := systemID
			if detected {
				attackerTF.Detected[sqID] = true
				if sq, err := state.GetSquadron(sqID); err == nil {
					sq.Cloaked = false
					_ = state.UpdateSquadron(sq)
				}
				rec.Emit(model.RaiderDetectedEvent, &sysID, nil, map[string]interface{}{
					"house": attackerHouse, "squadron": sqID,
				})
			} else {
				rec.Emit(model.RaiderStealthSuccessEvent, &sysID, []model.HouseID{attackerHouse}, map[string]interface{}{
					"house": attackerHouse, "squadron": sqID,
				})
			}
		}
	}
}

func starbaseDetectionBonus(tf *taskForce) int {
	bonus := 0
	for _, f := range tf.Facilities {
		if f.Destroyed {
			continue
		}
		bonus += f.DetectionBonus
	}
	return bonus
}

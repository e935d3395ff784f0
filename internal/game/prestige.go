package game

import "ec4x_engine/internal/model"

// negativePrestigeStreakLimit is the number of consecutive negative-
// prestige turns that trigger elimination, per spec.md §4.2 phase 10.
const negativePrestigeStreakLimit = 3

// runPrestigeAndElimination checks every active house's elimination
// conditions after this turn's prestige events have already been
// applied during combat resolution, per spec.md §4.2 phase 10: negative
// prestige for 3 consecutive turns, or zero colonies with no invasion
// capability.
func runPrestigeAndElimination(state *model.State, rec *Recorder) {
	for _, house := range state.ActiveHouses() {
		if house.Prestige < 0 {
			house.NegativePrestigeStreak++
		} else {
			house.NegativePrestigeStreak = 0
		}

		eliminated := house.NegativePrestigeStreak >= negativePrestigeStreakLimit
		if !eliminated && len(state.ColoniesOwnedBy(house.ID)) == 0 && !hasInvasionCapability(state, house.ID) {
			eliminated = true
		}

		if eliminated {
			house.Eliminated = true
			house.EliminatedTurn = state.Turn
			sysID := model.SystemID(0)
			rec.Emit(model.HouseEliminatedEvent, &sysID, nil, map[string]interface{}{"house": house.ID})
		}
		_ = state.UpdateHouse(house)
	}
}

// hasInvasionCapability reports whether a house retains any fleet
// carrying marines, the minimum bar for regaining a foothold, per
// spec.md §4.2 phase 10's "zero colonies AND no invasion capability".
func hasInvasionCapability(state *model.State, house model.HouseID) bool {
	for _, fid := range state.FleetsOwnedBy(house) {
		f, err := state.GetFleet(fid)
		if err != nil {
			continue
		}
		for _, sqID := range f.SquadronIDs {
			sq, err := state.GetSquadron(sqID)
			if err == nil && sq.MarinesLoaded > 0 {
				return true
			}
		}
	}
	return false
}

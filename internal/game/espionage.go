package game

import (
	"github.com/shopspring/decimal"

	"ec4x_engine/internal/model"
)

// espionageDetectionThreshold caps per-turn investment before the
// defender's counter-intel auto-detects the attempt, per spec.md §4.2
// phase 5's "cap investment to prevent detection-threshold penalties".
const espionageDetectionThreshold = 500

// runEspionage resolves each house's single queued espionage attempt
// against its EBP/CIP pools, per spec.md §4.2 phase 5.
func runEspionage(state *model.State, bound *BoundOrders, seed int64, turn int, rec *Recorder) {
	for _, house := range state.ActiveHouses() {
		packet, ok := bound.ByHouse[house.ID]
		if !ok || packet.Espionage == nil {
			continue
		}
		if packet.EspionageInvestment != nil {
			house.EspionageBudget = house.EspionageBudget.Add(decimal.NewFromInt(int64(packet.EspionageInvestment.EBP)))
			house.CounterIntel = house.CounterIntel.Add(decimal.NewFromInt(int64(packet.EspionageInvestment.CIP)))
		}

		resolveEspionageAttempt(state, house, *packet.Espionage, seed, turn, rec)
		_ = state.UpdateHouse(house)
	}
}

func resolveEspionageAttempt(state *model.State, house *model.House, attempt model.EspionageAttempt, seed int64, turn int, rec *Recorder) {
	investment := attempt.Investment
	if investment > espionageDetectionThreshold {
		investment = espionageDetectionThreshold
	}
	if house.EspionageBudget.LessThan(decimal.NewFromInt(int64(investment))) {
		return
	}
	house.EspionageBudget = house.EspionageBudget.Sub(decimal.NewFromInt(int64(investment)))

	target, err := state.GetHouse(attempt.TargetHouse)
	if err != nil {
		return
	}

	stream := seedStream(seed, turn, attempt.TargetSystem, "espionage")
	successChance := 50.0 + float64(investment)/10.0 - target.CounterIntel.InexactFloat64()/10.0
	if !stream.Roll(successChance) {
		return
	}

	if sysIntel, ok := target.Intel.Systems[attempt.TargetSystem]; ok {
		house.Intel.Record(attempt.TargetSystem, model.VisibilityScouted, turn, sysIntel.Colonies, sysIntel.Fleets)
	}
}

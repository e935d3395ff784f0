package game

import (
	"github.com/shopspring/decimal"

	"ec4x_engine/internal/model"
)

// researchThreshold is the RP cost to advance a tech field from
// currentLevel to the next level: the field's registered base cost times
// its progression rule raised to currentLevel (data/rules/tech.toml), or
// 100 RP × 1.4^currentLevel for a field with no registered cost —
// grounded on the teacher's progressive-cost formula
// (internal/model/progress_cost_module.go) generalized from PP-costed
// buildings to RP-costed research.
func researchThreshold(fields *model.Registry, field string, currentLevel int) decimal.Decimal {
	if fields != nil {
		if desc, ok := fields.Get(field); ok {
			if cost, ok := desc.Cost.CostAtLevel(currentLevel)["RP"]; ok && cost.IsPositive() {
				return cost
			}
		}
	}
	base := decimal.NewFromInt(100)
	mult := decimal.NewFromFloat(1.4)
	for i := 0; i < currentLevel; i++ {
		base = base.Mul(mult)
	}
	return base
}

// runResearch apportions each house's allocated research budget across
// its chosen fields and advances levels when thresholds are met, per
// spec.md §4.2 phase 8.
func runResearch(state *model.State, bound *BoundOrders, rec *Recorder) {
	for _, house := range state.ActiveHouses() {
		packet, ok := bound.ByHouse[house.ID]
		if !ok {
			continue
		}
		for _, alloc := range packet.Research {
			if alloc.Amount <= 0 {
				continue
			}
			banked, ok := house.Research[alloc.Field]
			if !ok {
				banked = decimal.Zero
			}
			banked = banked.Add(decimal.NewFromInt(int64(alloc.Amount)))

			level := house.Tech[alloc.Field]
			threshold := researchThreshold(state.TechFields, alloc.Field, level)
			for banked.GreaterThanOrEqual(threshold) {
				banked = banked.Sub(threshold)
				level++
				threshold = researchThreshold(state.TechFields, alloc.Field, level)
			}
			house.Tech[alloc.Field] = level
			house.Research[alloc.Field] = banked
		}
		_ = state.UpdateHouse(house)
	}
}

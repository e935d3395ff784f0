package game

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"ec4x_engine/internal/config"
	"ec4x_engine/internal/model"
)

// blockadePenalty is the output multiplier applied to a blockaded
// colony, per spec.md §4.5.
const blockadePenalty = 0.6

// blockadePrestigePenalty is the prestige cost per blockaded colony per
// turn, per spec.md §4.5.
const blockadePrestigePenalty = 2

// grossColonyOutput computes a colony's GCO from population, industrial
// units, infrastructure, planet class, resource rating and tax rate.
// Grounded on the teacher's resource-production formula
// (internal/game/planet.go's per-building production curve), generalized
// from OGame's metal/crystal/deuterium triple into the single PP figure
// spec.md §4.5 describes.
func grossColonyOutput(c *model.Colony, econ config.Economy) decimal.Decimal {
	classMultiplier := planetClassMultiplier(c.Class)
	base := c.PopulationUnits * econ.BaseOutputPerPU
	base *= 1.0 + float64(c.InfrastructureLv)*0.1
	base *= 1.0 + float64(c.IndustrialUnits)*0.05
	base *= float64(c.ResourceRating) / 10.0
	base *= classMultiplier
	if base < 0 {
		base = 0
	}
	return decimal.NewFromFloat(base)
}

func planetClassMultiplier(class model.PlanetClass) float64 {
	switch class {
	case model.Terran:
		return 1.2
	case model.Oceanic:
		return 1.1
	case model.Desert, model.Tundra:
		return 0.9
	case model.Barren:
		return 0.7
	case model.GasGiant:
		return 0.5
	default:
		return 1.0
	}
}

// netColonyOutput applies the tax rate and blockade penalty to gross
// output, per spec.md §4.5.
func netColonyOutput(c *model.Colony, econ config.Economy) decimal.Decimal {
	gross := grossColonyOutput(c, econ)
	taxed := gross.Mul(decimal.NewFromFloat(clamp(c.TaxRate, 0, econ.MaxTaxRate)))
	if c.Blockaded {
		taxed = taxed.Mul(decimal.NewFromFloat(blockadePenalty))
	}
	return taxed
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// fleetMaintenance sums the upkeep owed for one fleet's squadrons,
// status-weighted per spec.md §4.5 (Active=1.0, Reserve=0.5,
// Mothballed=0.0). Per-ship upkeep is a flat unit cost; the exact figure
// lives in the ship registry in a full deployment, simplified here to a
// fixed constant per hull since spec.md leaves the precise curve
// implementation-defined.
func fleetMaintenance(state *model.State, f *model.Fleet) decimal.Decimal {
	mult := f.Status.MaintenanceMultiplier()
	if mult == 0 {
		return decimal.Zero
	}
	hulls := 0
	for _, sqID := range f.SquadronIDs {
		sq, err := state.GetSquadron(sqID)
		if err != nil {
			continue
		}
		hulls += len(sq.Ships())
	}
	return decimal.NewFromFloat(float64(hulls) * 1.0 * mult)
}

// facilityMaintenance sums the upkeep owed for one colony's facilities.
func facilityMaintenance(colony *model.Colony) decimal.Decimal {
	return decimal.NewFromFloat(float64(len(colony.NeoriaIDs)+len(colony.KastraIDs)) * 0.5)
}

// updateBlockades recomputes every colony's blockade state from the
// fleets currently present in its system, per spec.md §4.5: "a non-owner
// fleet with any operational combat strength at a colony's system
// establishes a blockade. Multiple houses can co-blockade if all are
// hostile to the owner." Runs at the head of the economy phase so the
// output/prestige penalties below it see this turn's blockade state.
func updateBlockades(state *model.State, rec *Recorder) {
	for _, colony := range state.Colonies {
		if colony.OwnerID == model.ZeroID {
			continue
		}
		owner, err := state.GetHouse(colony.OwnerID)
		if err != nil {
			continue
		}

		var blockaders []model.HouseID
		for _, fid := range state.FleetsInSystem(colony.SystemID) {
			f, err := state.GetFleet(fid)
			if err != nil || f.OwnerID == colony.OwnerID {
				continue
			}
			if owner.Relations[f.OwnerID].State < model.Hostile {
				continue
			}
			if fleetCombatStrength(state, f) <= 0 {
				continue
			}
			blockaders = append(blockaders, f.OwnerID)
		}
		sort.Slice(blockaders, func(i, j int) bool { return blockaders[i] < blockaders[j] })

		wasBlockaded := colony.Blockaded
		colony.Blockaded = len(blockaders) > 0
		colony.BlockadedBy = blockaders
		if colony.Blockaded {
			colony.BlockadeTurns++
		} else {
			colony.BlockadeTurns = 0
		}
		_ = state.UpdateColony(colony)

		sysID := colony.SystemID
		if colony.Blockaded && !wasBlockaded {
			rec.Emit(model.BlockadeEstablishedEvent, &sysID, nil, map[string]interface{}{"colony": colony.ID, "by": blockaders})
		} else if !colony.Blockaded && wasBlockaded {
			rec.Emit(model.BlockadeLiftedEvent, &sysID, nil, map[string]interface{}{"colony": colony.ID})
		}
	}
}

// fleetCombatStrength sums the attack strength of every non-destroyed
// ship in a fleet's combat and fighter squadrons — the "operational
// combat strength" spec.md §4.5's blockade rule tests for.
func fleetCombatStrength(state *model.State, f *model.Fleet) float64 {
	total := 0.0
	for _, sqID := range f.SquadronIDs {
		sq, err := state.GetSquadron(sqID)
		if err != nil {
			continue
		}
		if sq.Type != model.CombatSquadronType && sq.Type != model.FighterSquadronType {
			continue
		}
		for _, shipID := range sq.Ships() {
			ship, err := state.GetShip(shipID)
			if err != nil || ship.State == model.Destroyed {
				continue
			}
			as, _ := shipClassStats(state.ShipClasses, ship.Class)
			total += as * ship.State.StrengthMultiplier()
		}
	}
	return total
}

// runEconomy executes spec.md §4.2 phase 6: establish/lift blockades, then
// for each colony compute gross output, apply tax and blockade penalty,
// credit treasury; debit maintenance; apply capacity violations.
func runEconomy(state *model.State, cfg config.Config, rec *Recorder) {
	updateBlockades(state, rec)

	for _, house := range state.ActiveHouses() {
		income := decimal.Zero
		for _, cid := range state.ColoniesOwnedBy(house.ID) {
			colony, err := state.GetColony(cid)
			if err != nil {
				continue
			}
			net := netColonyOutput(colony, cfg.Economy)
			income = income.Add(net)

			if colony.Blockaded {
				house.Prestige -= blockadePrestigePenalty
			}
		}

		upkeep := decimal.Zero
		for _, fid := range state.FleetsOwnedBy(house.ID) {
			f, err := state.GetFleet(fid)
			if err != nil {
				continue
			}
			upkeep = upkeep.Add(fleetMaintenance(state, f))
		}
		for _, cid := range state.ColoniesOwnedBy(house.ID) {
			colony, err := state.GetColony(cid)
			if err != nil {
				continue
			}
			upkeep = upkeep.Add(facilityMaintenance(colony))
		}

		house.Treasury = house.Treasury.Add(income).Sub(upkeep)
		applyCapacityViolations(state, house, cfg)
		_ = state.UpdateHouse(house)
	}
}

// applyCapacityViolations caps total active fleet command cost to the
// house's C2 pool, recording a violation with a grace window when
// exceeded and forcibly scrapping units once the grace period lapses
// without cure, per spec.md §4.5. Command cost is counted as one per
// ship (flagship plus escorts); the ship registry's per-class CommandCost
// is not consulted. Scrapping stops once the total is back within the pool.
func applyCapacityViolations(state *model.State, house *model.House, cfg config.Config) {
	totalCost := 0
	fleetCost := make(map[model.FleetID]int)
	for _, fid := range state.FleetsOwnedBy(house.ID) {
		f, err := state.GetFleet(fid)
		if err != nil || f.Status != model.Active {
			continue
		}
		for _, sqID := range f.SquadronIDs {
			sq, err := state.GetSquadron(sqID)
			if err != nil {
				continue
			}
			fleetCost[fid] += len(sq.Escorts) + 1
		}
		totalCost += fleetCost[fid]
	}

	pool := cfg.Limits.BaseCommandCapacity
	if totalCost <= pool {
		for fid := range house.CapacityViolations {
			delete(house.CapacityViolations, fid)
		}
		return
	}

	for _, fid := range state.FleetsOwnedBy(house.ID) {
		v, exists := house.CapacityViolations[fid]
		if !exists {
			house.CapacityViolations[fid] = model.CapacityViolation{Severity: totalCost - pool, GraceTurnsRemaining: 3}
			continue
		}
		v.GraceTurnsRemaining--
		if v.GraceTurnsRemaining <= 0 {
			f, err := state.GetFleet(fid)
			if err == nil && totalCost > pool {
				_ = state.RemoveFleet(f.ID)
				totalCost -= fleetCost[fid]
			}
			delete(house.CapacityViolations, fid)
			continue
		}
		house.CapacityViolations[fid] = v
	}
}

package game

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"ec4x_engine/internal/config"
	"ec4x_engine/internal/model"
)

// Starting constants for a freshly generated house, chosen to give every
// house a defensible homeworld and enough industry to reach the first
// construction queue without further hand-tuning. Grounded on the
// teacher's universe bootstrap (internal/model/universe.go's initial
// building/resource seeding for a new player), generalized to spec.md
// §3's colony/ground-unit/facility fields.
const (
	startingPopulationUnits  = 5.0
	startingInfrastructureLv = 3
	startingTreasury         = "500"
	homeworldBatteryDS       = 40
	homeworldBatteryAS       = 20
	homeworldGarrisonDS      = 30
	homeworldGarrisonAS      = 15
	homeworldDetectionBonus  = 1
)

// NewGame builds a fresh State for playerCount houses: the star map, one
// house per player with a homeworld colony (spaceport, starbase, ground
// garrison), and the loaded class registries wired in. Grounded on the
// teacher's `CreateUniverse`-style bootstrap that seeds a playable start
// from config rather than requiring an external data load.
func NewGame(cfg config.Config, ships, facilities, groundUnits, tech *model.Registry) (*model.State, error) {
	state := model.NewState()
	state.ShipClasses = ships
	state.FacilityClasses = facilities
	state.GroundUnitClasses = groundUnits
	state.TechFields = tech

	state.InitStarMap(cfg.GameSetup.PlayerCount)

	homeworldSystems, err := pickHomeworldSystems(state.Map, cfg.GameSetup.PlayerCount)
	if err != nil {
		return nil, err
	}

	treasury, err := decimal.NewFromString(startingTreasury)
	if err != nil {
		return nil, fmt.Errorf("parsing starting treasury: %w", err)
	}

	for i := 0; i < cfg.GameSetup.PlayerCount; i++ {
		houseID := state.NextHouseID()
		house := model.NewHouse(houseID, fmt.Sprintf("House %d", houseID))
		house.Treasury = treasury
		if err := state.AddHouse(house); err != nil {
			return nil, err
		}

		sysID := homeworldSystems[i]
		state.Map.Systems[sysID].HomeworldOf = houseID

		if err := seedHomeworld(state, houseID, sysID); err != nil {
			return nil, err
		}
	}

	return state, nil
}

// pickHomeworldSystems chooses one system per house, preferring the map's
// vertex cells (maximally spread corners of the outer ring) and falling
// back to a greedy farthest-point selection over the whole outer ring
// when there are more houses than vertex cells, per spec.md §3's
// "homeworlds are placed to maximize pairwise hex distance" rule.
func pickHomeworldSystems(starMap *model.StarMap, playerCount int) ([]model.SystemID, error) {
	vertices := starMap.VertexCells(playerCount)
	if len(vertices) >= playerCount {
		return vertices[:playerCount], nil
	}

	candidates := starMap.OuterRing()
	if len(candidates) < playerCount {
		return nil, fmt.Errorf("star map has only %d outer systems for %d houses", len(candidates), playerCount)
	}

	chosen := []model.SystemID{candidates[0]}
	remaining := append([]model.SystemID{}, candidates[1:]...)

	for len(chosen) < playerCount {
		bestIdx, bestDist := -1, -1
		for idx, cand := range remaining {
			minDist := minDistanceTo(starMap, cand, chosen)
			if minDist > bestDist {
				bestDist = minDist
				bestIdx = idx
			}
		}
		chosen = append(chosen, remaining[bestIdx])
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}

	sort.Slice(chosen, func(i, j int) bool { return chosen[i] < chosen[j] })
	return chosen, nil
}

func minDistanceTo(starMap *model.StarMap, cand model.SystemID, chosen []model.SystemID) int {
	candCoord := starMap.Systems[cand].Coord
	best := -1
	for _, c := range chosen {
		d := hexDistanceOf(candCoord, starMap.Systems[c].Coord)
		if best == -1 || d < best {
			best = d
		}
	}
	return best
}

func hexDistanceOf(a, b model.HexCoord) int {
	dq := a.Q - b.Q
	dr := a.R - b.R
	return (absInt(dq) + absInt(dr) + absInt(dq+dr)) / 2
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// seedHomeworld creates a house's founding colony with a spaceport, an
// orbital starbase, and a planetary garrison, per spec.md §4.7's
// homeworld-defender bonus requiring IsHomeworld to be set for both the
// colony and the defending fleet.
func seedHomeworld(state *model.State, houseID model.HouseID, sysID model.SystemID) error {
	colony := &model.Colony{
		ID:               state.NextColonyID(),
		SystemID:         sysID,
		OwnerID:          houseID,
		Name:             fmt.Sprintf("Homeworld of House %d", houseID),
		PopulationUnits:  startingPopulationUnits,
		InfrastructureLv: startingInfrastructureLv,
		IndustrialUnits:  1,
		Class:            model.Terran,
		ResourceRating:   5,
		TaxRate:          0.3,
		IsHomeworld:      true,
	}
	if err := state.AddColony(colony); err != nil {
		return err
	}

	spaceport := &model.Neoria{ID: state.NextNeoriaID(), ColonyID: colony.ID, Class: model.SpaceportClass}
	if err := state.AddNeoria(spaceport); err != nil {
		return err
	}

	starbase := &model.Kastra{
		ID: state.NextKastraID(), ColonyID: colony.ID, Level: 1,
		AttackStrength: homeworldBatteryAS, DefenseStrength: homeworldBatteryDS * 2,
		DetectionBonus: homeworldDetectionBonus,
	}
	if err := state.AddKastra(starbase); err != nil {
		return err
	}

	battery := &model.GroundUnit{
		ID: state.NextGroundUnitID(), ColonyID: colony.ID, Class: model.GroundBattery,
		AttackStrength: homeworldBatteryAS, DefenseStrength: homeworldBatteryDS,
	}
	if err := state.AddGroundUnit(battery); err != nil {
		return err
	}

	garrison := &model.GroundUnit{
		ID: state.NextGroundUnitID(), ColonyID: colony.ID, Class: model.GroundArmy,
		AttackStrength: homeworldGarrisonAS, DefenseStrength: homeworldGarrisonDS,
	}
	return state.AddGroundUnit(garrison)
}

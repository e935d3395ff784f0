package rules

import (
	"sort"
	"strings"

	"ec4x_engine/internal/config"
	"ec4x_engine/internal/model"
)

// BuildSnapshot assembles a hashed rules snapshot from the loaded
// registries and the process's Limits/Economy configuration. Call once
// after config load; the result is immutable for the life of the process
// (a config reload produces a fresh Snapshot observed only by
// subsequently-started turns, per spec.md §9).
func BuildSnapshot(ships, facilities, groundUnits, tech *model.Registry, limits config.Limits, economy config.Economy) (Snapshot, error) {
	snap := Snapshot{
		SchemaVersion: SchemaVersion,
		Capabilities:  Capabilities,
		Tech:          buildTechSection(tech),
		Ships:         buildShipsSection(ships),
		GroundUnits:   buildGroundUnitsSection(groundUnits),
		Facilities:    buildFacilitiesSection(facilities),
		Construction:  ConstructionSection{Version: 1, MaxActivePerFacility: 1},
		Limits:        LimitsSection{Version: 1, BaseCommandCapacity: limits.BaseCommandCapacity, EspionagePoolCap: limits.EspionagePoolCap},
		Economy:       EconomySection{Version: 1, BaseOutputPerPU: economy.BaseOutputPerPU, MaxTaxRate: economy.MaxTaxRate},
	}
	return snap.Hash256()
}

func buildTechSection(tech *model.Registry) TechSection {
	names := tech.Names()
	sort.Strings(names)
	fields := make([]TechFieldDesc, 0, len(names))
	for _, n := range names {
		desc, _ := tech.Get(n)
		base := 0
		if v, ok := desc.Cost.InitCosts["RP"]; ok {
			base = int(v.IntPart())
		}
		fields = append(fields, TechFieldDesc{Name: n, MaxLevel: 20, BaseCostRP: base})
	}
	return TechSection{Version: 1, Fields: fields}
}

func buildShipsSection(ships *model.Registry) ShipsSection {
	names := ships.Names()
	sort.Strings(names)
	classes := make([]ShipClassDesc, 0, len(names))
	for _, n := range names {
		desc, _ := ships.Get(n)
		techDeps := make(map[string]int, len(desc.TechDeps))
		for _, d := range desc.TechDeps {
			techDeps[d.ID] = d.Level
		}
		classes = append(classes, ShipClassDesc{
			Name:            n,
			AttackStrength:  desc.AttackStrength,
			DefenseStrength: desc.DefenseStrength,
			CommandRating:   desc.CommandRating,
			CommandCost:     desc.CommandCost,
			BuildTurns:      desc.BuildTurns,
			CostPP:          desc.FixedCostPP.String(),
			TechDeps:        techDeps,
		})
	}
	return ShipsSection{Version: 1, Classes: classes}
}

func buildGroundUnitsSection(groundUnits *model.Registry) GroundUnitsSection {
	names := groundUnits.Names()
	sort.Strings(names)
	classes := make([]GroundUnitClassDesc, 0, len(names))
	for _, n := range names {
		desc, _ := groundUnits.Get(n)
		classes = append(classes, GroundUnitClassDesc{
			Name:   n,
			CostPP: desc.FixedCostPP.String(),
		})
	}
	return GroundUnitsSection{Version: 1, Classes: classes}
}

func buildFacilitiesSection(facilities *model.Registry) FacilitiesSection {
	names := facilities.Names()
	sort.Strings(names)
	classes := make([]FacilityClassDesc, 0, len(names))
	for _, n := range names {
		desc, _ := facilities.Get(n)
		fd := FacilityClassDesc{
			Name:            n,
			BuildTurns:      desc.BuildTurns,
			AttackStrength:  desc.AttackStrength,
			DefenseStrength: desc.DefenseStrength,
		}
		for _, fc := range []model.FacilityClass{model.SpaceportClass, model.ShipyardClass, model.DrydockClass} {
			if strings.EqualFold(fc.String(), n) {
				fd.BaseDocks = fc.BaseDocks()
				fd.CostMultiplier = fc.CostMultiplier()
			}
		}
		classes = append(classes, fd)
	}
	return FacilitiesSection{Version: 1, Classes: classes}
}

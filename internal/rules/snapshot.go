// Package rules builds the versioned, hashed rules-snapshot payload the
// bridge serves at `GET /rules`, and the config-loaded registries that
// back it.
//
// Grounded on the teacher's JSON-marshalled DB-row responses
// (pkg/handlers/* composing internal/data proxies into wire payloads),
// generalized from per-request DB reads into one rules snapshot computed
// once from the loaded config and cached for the life of the process.
package rules

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// SchemaVersion is the top-level rules-snapshot schema version.
const SchemaVersion = 1

// Capabilities are the negotiable feature strings clients check before
// relying on a given section of the snapshot, per spec.md §6.
var Capabilities = []string{"rd.v1", "build.v1", "limits.v1", "economy.v1"}

// Snapshot is the full rules payload shared with clients: tech, ships,
// ground units, facilities, construction costs, pool limits and economy
// constants, plus the schema/version metadata and parity hash.
type Snapshot struct {
	SchemaVersion int      `json:"schemaVersion"`
	Capabilities  []string `json:"capabilities"`
	Hash          string   `json:"hash"`

	Tech         TechSection         `json:"tech"`
	Ships        ShipsSection        `json:"ships"`
	GroundUnits  GroundUnitsSection  `json:"groundUnits"`
	Facilities   FacilitiesSection   `json:"facilities"`
	Construction ConstructionSection `json:"construction"`
	Limits       LimitsSection       `json:"limits"`
	Economy      EconomySection      `json:"economy"`
}

// TechSection lists every researchable field and its level cost curve.
type TechSection struct {
	Version int             `json:"version"`
	Fields  []TechFieldDesc `json:"fields"`
}

// TechFieldDesc describes one tech field.
type TechFieldDesc struct {
	Name       string `json:"name"`
	MaxLevel   int    `json:"maxLevel"`
	BaseCostRP int     `json:"baseCostRP"`
}

// ShipsSection lists every ship class's stats and cost.
type ShipsSection struct {
	Version int             `json:"version"`
	Classes []ShipClassDesc `json:"classes"`
}

// ShipClassDesc mirrors the registry entry shape, flattened for the wire.
type ShipClassDesc struct {
	Name            string            `json:"name"`
	AttackStrength  int               `json:"attackStrength"`
	DefenseStrength int               `json:"defenseStrength"`
	CommandRating   int               `json:"commandRating"`
	CommandCost     int               `json:"commandCost"`
	BuildTurns      int               `json:"buildTurns"`
	CostPP          string            `json:"costPP"`
	TechDeps        map[string]int    `json:"techDeps,omitempty"`
}

// GroundUnitsSection lists every ground-unit class's stats.
type GroundUnitsSection struct {
	Version int                   `json:"version"`
	Classes []GroundUnitClassDesc `json:"classes"`
}

// GroundUnitClassDesc mirrors a ground-unit registry entry.
type GroundUnitClassDesc struct {
	Name            string `json:"name"`
	AttackStrength  int    `json:"attackStrength"`
	DefenseStrength int    `json:"defenseStrength"`
	CostPP          string `json:"costPP"`
}

// FacilitiesSection lists every registered facility class. The three
// Neoria classes (spaceport, shipyard, drydock) carry their base dock
// count and ship cost multiplier; other entries report zero for both.
type FacilitiesSection struct {
	Version int                  `json:"version"`
	Classes []FacilityClassDesc  `json:"classes"`
}

// FacilityClassDesc mirrors a facility registry entry.
type FacilityClassDesc struct {
	Name            string  `json:"name"`
	BaseDocks       int     `json:"baseDocks"`
	CostMultiplier  float64 `json:"costMultiplier"`
	BuildTurns      int     `json:"buildTurns"`
	AttackStrength  int     `json:"attackStrength"`
	DefenseStrength int     `json:"defenseStrength"`
}

// ConstructionSection documents per-class build-turn counts and dock
// occupancy rules, kept separate from ShipsSection/FacilitiesSection so
// clients can diff construction-rule changes independently of stat
// balance changes.
type ConstructionSection struct {
	Version              int `json:"version"`
	MaxActivePerFacility int `json:"maxActivePerFacility"`
}

// LimitsSection documents pool ceilings: C2 command capacity formula
// inputs, EBP/CIP soft caps, etc.
type LimitsSection struct {
	Version            int `json:"version"`
	BaseCommandCapacity int `json:"baseCommandCapacity"`
	EspionagePoolCap    int `json:"espionagePoolCap"`
}

// EconomySection documents the gross-output and tax-rate constants used
// by the Economy phase.
type EconomySection struct {
	Version           int     `json:"version"`
	BaseOutputPerPU   float64 `json:"baseOutputPerPU"`
	MaxTaxRate        float64 `json:"maxTaxRate"`
}

// Hash256 computes the sha-256 parity hash over the snapshot's canonical
// JSON serialization with the Hash field zeroed, per spec.md §6, and
// returns a copy of the snapshot with Hash populated.
func (s Snapshot) Hash256() (Snapshot, error) {
	s.Hash = ""
	canonical, err := json.Marshal(s)
	if err != nil {
		return s, err
	}
	sum := sha256.Sum256(canonical)
	s.Hash = hex.EncodeToString(sum[:])
	return s, nil
}

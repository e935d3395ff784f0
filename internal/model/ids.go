package model

import "fmt"

// This file defines the opaque, per-kind identifiers used to address every
// entity in the world. Two identifiers of different kinds are never
// interchangeable even though they share an underlying representation,
// mirroring the distinct `Coordinate`/`Location` typing the teacher uses
// for its own addressing scheme (internal/model/coordinate.go) generalized
// to every entity kind named in the spec.

// SystemID : identifies a star system on the hex map.
type SystemID uint64

// ColonyID : identifies a colony within a system.
type ColonyID uint64

// HouseID : identifies a playable house.
type HouseID uint64

// FleetID : identifies a fleet.
type FleetID uint64

// ShipID : identifies a single ship.
type ShipID uint64

// SquadronID : identifies a squadron within a fleet.
type SquadronID uint64

// NeoriaID : identifies a spaceport/shipyard/drydock facility.
type NeoriaID uint64

// KastraID : identifies a starbase.
type KastraID uint64

// GroundUnitID : identifies a ground unit (army, battery, militia, ...).
type GroundUnitID uint64

// ConstructionProjectID : identifies a construction project.
type ConstructionProjectID uint64

// RepairProjectID : identifies a repair project.
type RepairProjectID uint64

// ZeroID is the sentinel used by every ID kind to mean "no entity". Every
// per-kind counter starts allocating at 1.
const ZeroID = 0

// idCounters tracks the next identifier to allocate for every entity kind.
// It lives inside State as the unexported `ids` field, so every allocation
// goes through State's Next*ID methods.
type idCounters struct {
	NextSystemID      uint64
	NextColonyID      uint64
	NextHouseID       uint64
	NextFleetID       uint64
	NextShipID        uint64
	NextSquadronID    uint64
	NextNeoriaID      uint64
	NextKastraID      uint64
	NextGroundUnitID  uint64
	NextConstructID   uint64
	NextRepairID      uint64
}

func (c *idCounters) nextSystemID() SystemID {
	c.NextSystemID++
	return SystemID(c.NextSystemID)
}

func (c *idCounters) nextColonyID() ColonyID {
	c.NextColonyID++
	return ColonyID(c.NextColonyID)
}

func (c *idCounters) nextHouseID() HouseID {
	c.NextHouseID++
	return HouseID(c.NextHouseID)
}

func (c *idCounters) nextFleetID() FleetID {
	c.NextFleetID++
	return FleetID(c.NextFleetID)
}

func (c *idCounters) nextShipID() ShipID {
	c.NextShipID++
	return ShipID(c.NextShipID)
}

func (c *idCounters) nextSquadronID() SquadronID {
	c.NextSquadronID++
	return SquadronID(c.NextSquadronID)
}

func (c *idCounters) nextNeoriaID() NeoriaID {
	c.NextNeoriaID++
	return NeoriaID(c.NextNeoriaID)
}

func (c *idCounters) nextKastraID() KastraID {
	c.NextKastraID++
	return KastraID(c.NextKastraID)
}

func (c *idCounters) nextGroundUnitID() GroundUnitID {
	c.NextGroundUnitID++
	return GroundUnitID(c.NextGroundUnitID)
}

func (c *idCounters) nextConstructionProjectID() ConstructionProjectID {
	c.NextConstructID++
	return ConstructionProjectID(c.NextConstructID)
}

func (c *idCounters) nextRepairProjectID() RepairProjectID {
	c.NextRepairID++
	return RepairProjectID(c.NextRepairID)
}

// String implementations, used pervasively by logging and events.

func (id SystemID) String() string { return fmt.Sprintf("system#%d", uint64(id)) }
func (id ColonyID) String() string { return fmt.Sprintf("colony#%d", uint64(id)) }
func (id HouseID) String() string  { return fmt.Sprintf("house#%d", uint64(id)) }
func (id FleetID) String() string  { return fmt.Sprintf("fleet#%d", uint64(id)) }
func (id ShipID) String() string   { return fmt.Sprintf("ship#%d", uint64(id)) }
func (id SquadronID) String() string {
	return fmt.Sprintf("squadron#%d", uint64(id))
}
func (id NeoriaID) String() string { return fmt.Sprintf("neoria#%d", uint64(id)) }
func (id KastraID) String() string { return fmt.Sprintf("kastra#%d", uint64(id)) }
func (id GroundUnitID) String() string {
	return fmt.Sprintf("ground_unit#%d", uint64(id))
}
func (id ConstructionProjectID) String() string {
	return fmt.Sprintf("construction_project#%d", uint64(id))
}
func (id RepairProjectID) String() string {
	return fmt.Sprintf("repair_project#%d", uint64(id))
}

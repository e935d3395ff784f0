package game

import "ec4x_engine/internal/model"

// BoundOrders is the validated, per-house view of a turn's submissions:
// packets from unknown or eliminated houses are dropped silently rather than
// aborting the whole turn, per spec.md §7's "a single house's failing
// order never aborts another house's orders in the same turn".
type BoundOrders struct {
	ByHouse map[model.HouseID]model.OrderPacket
}

// intake validates and binds every submitted packet to its house,
// dropping fleet/build/squadron/cargo sub-orders that fail ownership or
// existence checks individually rather than rejecting the whole packet —
// spec.md §4.3's "Validation is multi-layered".
func intake(state *model.State, orders []model.OrderPacket, rec *Recorder) *BoundOrders {
	bound := &BoundOrders{ByHouse: make(map[model.HouseID]model.OrderPacket, len(orders))}

	for _, packet := range orders {
		house, err := state.GetHouse(packet.HouseID)
		if err != nil || house.Eliminated {
			continue
		}

		packet.FleetOrders = filterFleetOrders(state, packet.HouseID, packet.FleetOrders)
		packet.BuildOrders = filterBuildOrders(state, packet.HouseID, packet.BuildOrders)
		packet.SquadronManagement = filterSquadronManagement(state, packet.HouseID, packet.SquadronManagement)
		packet.CargoManagement = filterCargoManagement(state, packet.HouseID, packet.CargoManagement)

		bound.ByHouse[packet.HouseID] = packet
	}

	return bound
}

func filterFleetOrders(state *model.State, house model.HouseID, orders []model.FleetOrder) []model.FleetOrder {
	out := make([]model.FleetOrder, 0, len(orders))
	for _, o := range orders {
		f, err := state.GetFleet(o.FleetID)
		if err != nil || f.OwnerID != house {
			continue
		}
		out = append(out, o)
	}
	return out
}

func filterBuildOrders(state *model.State, house model.HouseID, orders []model.BuildOrder) []model.BuildOrder {
	out := make([]model.BuildOrder, 0, len(orders))
	for _, o := range orders {
		c, err := state.GetColony(o.ColonyID)
		if err != nil || c.OwnerID != house {
			continue
		}
		out = append(out, o)
	}
	return out
}

func filterSquadronManagement(state *model.State, house model.HouseID, cmds []model.SquadronManagement) []model.SquadronManagement {
	out := make([]model.SquadronManagement, 0, len(cmds))
	for _, c := range cmds {
		f, err := state.GetFleet(c.FleetID)
		if err != nil || f.OwnerID != house {
			continue
		}
		out = append(out, c)
	}
	return out
}

func filterCargoManagement(state *model.State, house model.HouseID, cmds []model.CargoManagement) []model.CargoManagement {
	out := make([]model.CargoManagement, 0, len(cmds))
	for _, c := range cmds {
		f, err := state.GetFleet(c.FleetID)
		if err != nil || f.OwnerID != house {
			continue
		}
		out = append(out, c)
	}
	return out
}

// atFriendlyColony reports whether a fleet sits in a system hosting a
// colony owned by the fleet's own house, the precondition every
// zero-turn command requires (spec.md §4.3).
func atFriendlyColony(state *model.State, f *model.Fleet) bool {
	for _, cid := range state.ColoniesInSystem(f.SystemID) {
		c, err := state.GetColony(cid)
		if err == nil && c.OwnerID == f.OwnerID {
			return true
		}
	}
	return false
}

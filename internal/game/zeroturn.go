package game

import "ec4x_engine/internal/model"

// applyZeroTurnAdmin executes every house's squadron and cargo management
// commands during the turn, per spec.md §4.2 phase 2. Order submission
// through the bridge only stores the packet, so these commands run here
// and nowhere else. Houses are processed in ascending-ID order, so that
// replaying a turn from its recorded orders reproduces the same result,
// including the IDs of any fleets or squadrons the commands create.
func applyZeroTurnAdmin(state *model.State, bound *BoundOrders, rec *Recorder) {
	for _, house := range state.ActiveHouses() {
		packet, ok := bound.ByHouse[house.ID]
		if !ok {
			continue
		}
		for _, cmd := range packet.SquadronManagement {
			ExecuteSquadronManagement(state, packet.HouseID, cmd)
		}
		for _, cmd := range packet.CargoManagement {
			ExecuteCargoManagement(state, packet.HouseID, cmd)
		}
	}
}

// ExecuteSquadronManagement runs one synchronous squadron/fleet admin
// command, per spec.md §4.3: ownership → friendly-colony presence →
// command-specific validation, returning a `Result` rather than
// panicking or aborting the caller's turn.
func ExecuteSquadronManagement(state *model.State, house model.HouseID, cmd model.SquadronManagement) model.Result {
	fleet, err := state.GetFleet(cmd.FleetID)
	if err != nil {
		return model.Fail(model.ErrNotFound)
	}
	if fleet.OwnerID != house {
		return model.Fail(model.ErrWrongOwner)
	}
	if !atFriendlyColony(state, fleet) {
		return model.Fail(model.ErrNotAtFriendlyColony)
	}

	switch cmd.Kind {
	case model.FormSquadron:
		return formSquadron(state, fleet, cmd)
	case model.DetachSquadron:
		return detachSquadron(state, fleet, cmd)
	case model.TransferSquadron:
		return transferSquadron(state, fleet, cmd)
	case model.MergeFleets:
		return mergeFleets(state, fleet, cmd)
	case model.AssignFlagship:
		return assignFlagship(state, fleet, cmd)
	default:
		return model.Fail(model.ErrInvalidOrder)
	}
}

func formSquadron(state *model.State, fleet *model.Fleet, cmd model.SquadronManagement) model.Result {
	if len(cmd.ShipIDs) == 0 {
		return model.Fail(model.ErrInvalidOrder)
	}
	id := state.NextSquadronID()
	sq := &model.Squadron{
		ID:      id,
		FleetID: fleet.ID,
		Type:    model.CombatSquadronType,
		Flagship: cmd.ShipIDs[0],
		Escorts:  append([]model.ShipID(nil), cmd.ShipIDs[1:]...),
	}
	if err := enforceSquadronComposition(state, fleet, sq); err != nil {
		return model.Fail(err)
	}
	if err := state.AddSquadron(sq); err != nil {
		return model.Fail(err)
	}
	return model.Ok(id)
}

func detachSquadron(state *model.State, fleet *model.Fleet, cmd model.SquadronManagement) model.Result {
	if cmd.SquadronID == nil {
		return model.Fail(model.ErrInvalidOrder)
	}
	sq, err := state.GetSquadron(*cmd.SquadronID)
	if err != nil || sq.FleetID != fleet.ID {
		return model.Fail(model.ErrInvalidOrder)
	}
	if sq.Type.IsSpacelift() && len(fleet.SquadronIDs) == 1 {
		return model.Fail(model.ErrInvalidOrder)
	}

	newFleetID := state.NextFleetID()
	newFleet := &model.Fleet{
		ID:       newFleetID,
		OwnerID:  fleet.OwnerID,
		SystemID: fleet.SystemID,
		Name:     fleet.Name + " (detached)",
		Status:   model.Active,
		ROE:      model.DefaultROE,
	}
	if err := state.AddFleet(newFleet); err != nil {
		return model.Fail(err)
	}

	kept := fleet.SquadronIDs[:0:0]
	for _, id := range fleet.SquadronIDs {
		if id == sq.ID {
			continue
		}
		kept = append(kept, id)
	}
	fleet.SquadronIDs = kept
	if err := state.UpdateFleet(fleet); err != nil {
		return model.Fail(err)
	}

	sq.FleetID = newFleetID
	if err := state.UpdateSquadron(sq); err != nil {
		return model.Fail(err)
	}
	newFleet.SquadronIDs = []model.SquadronID{sq.ID}
	if err := state.UpdateFleet(newFleet); err != nil {
		return model.Fail(err)
	}

	return model.Ok(newFleetID)
}

func transferSquadron(state *model.State, fleet *model.Fleet, cmd model.SquadronManagement) model.Result {
	if cmd.SquadronID == nil || cmd.TargetFleet == nil {
		return model.Fail(model.ErrInvalidOrder)
	}
	if *cmd.TargetFleet == fleet.ID {
		return model.Fail(model.ErrInvalidOrder)
	}
	target, err := state.GetFleet(*cmd.TargetFleet)
	if err != nil || target.OwnerID != fleet.OwnerID || target.SystemID != fleet.SystemID {
		return model.Fail(model.ErrInvalidOrder)
	}
	sq, err := state.GetSquadron(*cmd.SquadronID)
	if err != nil || sq.FleetID != fleet.ID {
		return model.Fail(model.ErrInvalidOrder)
	}
	if err := enforceSquadronComposition(state, target, sq); err != nil {
		return model.Fail(err)
	}

	fleet.SquadronIDs = removeSquadronID(fleet.SquadronIDs, sq.ID)
	if err := state.UpdateFleet(fleet); err != nil {
		return model.Fail(err)
	}
	sq.FleetID = target.ID
	if err := state.UpdateSquadron(sq); err != nil {
		return model.Fail(err)
	}
	target.SquadronIDs = append(target.SquadronIDs, sq.ID)
	if err := state.UpdateFleet(target); err != nil {
		return model.Fail(err)
	}
	return model.Ok()
}

func mergeFleets(state *model.State, fleet *model.Fleet, cmd model.SquadronManagement) model.Result {
	if cmd.TargetFleet == nil || *cmd.TargetFleet == fleet.ID {
		return model.Fail(model.ErrInvalidOrder)
	}
	target, err := state.GetFleet(*cmd.TargetFleet)
	if err != nil || target.OwnerID != fleet.OwnerID || target.SystemID != fleet.SystemID {
		return model.Fail(model.ErrInvalidOrder)
	}

	for _, sqID := range fleet.SquadronIDs {
		sq, err := state.GetSquadron(sqID)
		if err != nil {
			continue
		}
		sq.FleetID = target.ID
		_ = state.UpdateSquadron(sq)
		target.SquadronIDs = append(target.SquadronIDs, sqID)
	}
	fleet.SquadronIDs = nil
	if err := state.UpdateFleet(target); err != nil {
		return model.Fail(err)
	}
	if err := state.RemoveFleet(fleet.ID); err != nil {
		return model.Fail(err)
	}
	return model.Ok()
}

func assignFlagship(state *model.State, fleet *model.Fleet, cmd model.SquadronManagement) model.Result {
	if cmd.SquadronID == nil || len(cmd.ShipIDs) != 1 {
		return model.Fail(model.ErrInvalidOrder)
	}
	sq, err := state.GetSquadron(*cmd.SquadronID)
	if err != nil || sq.FleetID != fleet.ID {
		return model.Fail(model.ErrInvalidOrder)
	}
	newFlagship := cmd.ShipIDs[0]
	oldFlagship := sq.Flagship
	if oldFlagship == newFlagship {
		return model.Ok().WithWarning("flagship unchanged")
	}

	found := false
	kept := sq.Escorts[:0:0]
	for _, id := range sq.Escorts {
		if id == newFlagship {
			found = true
			continue
		}
		kept = append(kept, id)
	}
	if !found {
		return model.Fail(model.ErrInvalidOrder)
	}
	kept = append(kept, oldFlagship)
	sq.Escorts = kept
	sq.Flagship = newFlagship
	if err := state.UpdateSquadron(sq); err != nil {
		return model.Fail(err)
	}
	return model.Ok()
}

// enforceSquadronComposition applies spec.md §3's "Intel squadrons may
// not coexist with non-Intel squadrons in one fleet" rule. Escort command
// cost is not compared against the flagship's command rating here.
func enforceSquadronComposition(state *model.State, fleet *model.Fleet, incoming *model.Squadron) error {
	for _, sqID := range fleet.SquadronIDs {
		sq, err := state.GetSquadron(sqID)
		if err != nil {
			continue
		}
		isIntel := sq.Type == model.IntelSquadronType
		incomingIntel := incoming.Type == model.IntelSquadronType
		if isIntel != incomingIntel {
			return model.ErrIncompatibleSquadronMix
		}
	}
	return nil
}

func removeSquadronID(ids []model.SquadronID, target model.SquadronID) []model.SquadronID {
	kept := ids[:0:0]
	for _, id := range ids {
		if id != target {
			kept = append(kept, id)
		}
	}
	return kept
}

// ExecuteCargoManagement applies a cargo command to the first spacelift
// squadron of a fleet docked at a friendly colony, per spec.md §4.3.
// Marine loads and unloads change only the squadron's MarinesLoaded count
// (an unload is capped at what it carries); the colony's ground forces are
// not changed, and fighter load/unload commands change no state.
func ExecuteCargoManagement(state *model.State, house model.HouseID, cmd model.CargoManagement) model.Result {
	fleet, err := state.GetFleet(cmd.FleetID)
	if err != nil || fleet.OwnerID != house {
		return model.Fail(model.ErrWrongOwner)
	}
	if !atFriendlyColony(state, fleet) {
		return model.Fail(model.ErrNotAtFriendlyColony)
	}

	var spacelift *model.Squadron
	for _, sqID := range fleet.SquadronIDs {
		sq, err := state.GetSquadron(sqID)
		if err == nil && sq.Type.IsSpacelift() {
			spacelift = sq
			break
		}
	}
	if spacelift == nil {
		return model.Fail(model.ErrInvalidOrder)
	}

	switch cmd.Kind {
	case model.LoadMarines:
		spacelift.MarinesLoaded += cmd.Count
	case model.UnloadMarines:
		n := cmd.Count
		if n > spacelift.MarinesLoaded {
			n = spacelift.MarinesLoaded
		}
		spacelift.MarinesLoaded -= n
	case model.LoadFighters, model.UnloadFighters:
		// Fighter squadrons are tracked at the colony (FighterSquadronIDs),
		// not as spacelift cargo; no state change here beyond validation.
	default:
		return model.Fail(model.ErrInvalidOrder)
	}

	if err := state.UpdateSquadron(spacelift); err != nil {
		return model.Fail(err)
	}
	return model.Ok()
}

package model

import "sort"

// AddFleet inserts a new fleet, wiring it into the by-system and by-owner
// indexes atomically. Grounded on the teacher's fleet-creation path
// (internal/game/fleet_creator.go), generalized from a single
// departure/arrival pair to the standing entity state.go holds.
func (s *State) AddFleet(f *Fleet) error {
	if f == nil || f.ID == ZeroID {
		return ErrInvalidEntity
	}
	if _, exists := s.Fleets[f.ID]; exists {
		return ErrAlreadyExists
	}
	s.Fleets[f.ID] = f
	indexAdd(s.FleetsBySystem, f.SystemID, f.ID)
	indexAdd(s.FleetsByOwner, f.OwnerID, f.ID)
	return nil
}

// GetFleet fetches a fleet by ID.
func (s *State) GetFleet(id FleetID) (*Fleet, error) {
	f, ok := s.Fleets[id]
	if !ok {
		return nil, ErrNotFound
	}
	return f, nil
}

// UpdateFleet replaces a fleet's stored value, re-wiring the by-system
// index if movement changed its location. A fleet never changes owner
// directly (capture flows through RemoveFleet/AddFleet with a fresh ID,
// per spec.md §4.7's "captured hulls are re-hulled under the new owner"),
// so the by-owner index is never touched here.
func (s *State) UpdateFleet(f *Fleet) error {
	old, ok := s.Fleets[f.ID]
	if !ok {
		return ErrNotFound
	}
	if old.SystemID != f.SystemID {
		indexRemove(s.FleetsBySystem, old.SystemID, f.ID)
		indexAdd(s.FleetsBySystem, f.SystemID, f.ID)
	}
	s.Fleets[f.ID] = f
	return nil
}

// RemoveFleet deletes a fleet, cascading through every squadron (and
// therefore every ship) it still carries before dropping the fleet's own
// index entries, per spec.md §3's "destroying a fleet also removes every
// inbound reference" — no dangling squadron or ship rows may survive a
// fleet's removal.
func (s *State) RemoveFleet(id FleetID) error {
	f, ok := s.Fleets[id]
	if !ok {
		return ErrNotFound
	}
	for _, sqID := range append([]SquadronID{}, f.SquadronIDs...) {
		_ = s.RemoveSquadron(sqID)
	}
	indexRemove(s.FleetsBySystem, f.SystemID, id)
	indexRemove(s.FleetsByOwner, f.OwnerID, id)
	delete(s.Fleets, id)
	return nil
}

// FleetsInSystem returns every fleet ID in a system, in deterministic
// ascending-ID order.
func (s *State) FleetsInSystem(sys SystemID) []FleetID {
	out := indexValues(s.FleetsBySystem, sys)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// FleetsOwnedBy returns every fleet ID a house owns, in deterministic
// ascending-ID order.
func (s *State) FleetsOwnedBy(h HouseID) []FleetID {
	out := indexValues(s.FleetsByOwner, h)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// AddSquadron inserts a new squadron under its owning fleet, maintaining
// the ship-membership index for every ship it already carries.
func (s *State) AddSquadron(sq *Squadron) error {
	if sq == nil || sq.ID == ZeroID {
		return ErrInvalidEntity
	}
	if _, exists := s.Squadrons[sq.ID]; exists {
		return ErrAlreadyExists
	}
	fleet, ok := s.Fleets[sq.FleetID]
	if !ok {
		return ErrNotFound
	}
	s.Squadrons[sq.ID] = sq
	fleet.SquadronIDs = append(fleet.SquadronIDs, sq.ID)
	for _, shipID := range sq.Ships() {
		if shipID != ZeroID {
			indexAdd(s.ShipsBySquadron, sq.ID, shipID)
		}
	}
	return nil
}

// GetSquadron fetches a squadron by ID.
func (s *State) GetSquadron(id SquadronID) (*Squadron, error) {
	sq, ok := s.Squadrons[id]
	if !ok {
		return nil, ErrNotFound
	}
	return sq, nil
}

// UpdateSquadron replaces a squadron's stored value, re-wiring the
// ship-membership index if its crew changed (e.g. an escort destroyed in
// combat, or DetachSquadron peeling off hulls).
func (s *State) UpdateSquadron(sq *Squadron) error {
	old, ok := s.Squadrons[sq.ID]
	if !ok {
		return ErrNotFound
	}
	for _, shipID := range old.Ships() {
		if shipID != ZeroID {
			indexRemove(s.ShipsBySquadron, sq.ID, shipID)
		}
	}
	for _, shipID := range sq.Ships() {
		if shipID != ZeroID {
			indexAdd(s.ShipsBySquadron, sq.ID, shipID)
		}
	}
	s.Squadrons[sq.ID] = sq
	return nil
}

// RemoveSquadron detaches a squadron from its fleet and deletes every
// ship it carried, per spec.md §4.3's DetachSquadron/MergeFleets
// teardown path.
func (s *State) RemoveSquadron(id SquadronID) error {
	sq, ok := s.Squadrons[id]
	if !ok {
		return ErrNotFound
	}
	for _, shipID := range sq.Ships() {
		delete(s.Ships, shipID)
	}
	delete(s.ShipsBySquadron, id)
	delete(s.Squadrons, id)

	if fleet, ok := s.Fleets[sq.FleetID]; ok {
		kept := fleet.SquadronIDs[:0]
		for _, existing := range fleet.SquadronIDs {
			if existing != id {
				kept = append(kept, existing)
			}
		}
		fleet.SquadronIDs = kept
	}
	return nil
}

// AddShip inserts a new ship under its owning squadron's membership
// index. The squadron's own Flagship/Escorts slice is the source of
// truth for slot assignment; callers update that via UpdateSquadron.
func (s *State) AddShip(sh *Ship) error {
	if sh == nil || sh.ID == ZeroID {
		return ErrInvalidEntity
	}
	if _, exists := s.Ships[sh.ID]; exists {
		return ErrAlreadyExists
	}
	s.Ships[sh.ID] = sh
	indexAdd(s.ShipsBySquadron, sh.SquadronID, sh.ID)
	return nil
}

// GetShip fetches a ship by ID.
func (s *State) GetShip(id ShipID) (*Ship, error) {
	sh, ok := s.Ships[id]
	if !ok {
		return nil, ErrNotFound
	}
	return sh, nil
}

// UpdateShip replaces a ship's stored value in place (damage state,
// cumulative hits) without touching the squadron membership index;
// TransferSquadron moves a whole squadron between fleets, so its ships
// keep their SquadronID.
func (s *State) UpdateShip(sh *Ship) error {
	if _, ok := s.Ships[sh.ID]; !ok {
		return ErrNotFound
	}
	s.Ships[sh.ID] = sh
	return nil
}

// RemoveShip deletes a single destroyed ship row and its membership index
// entry, per spec.md §3's "no dangling IDs may remain after a phase
// completes." Callers are responsible for detaching the ship from its
// squadron's Flagship/Escorts slots first, via UpdateSquadron.
func (s *State) RemoveShip(id ShipID) error {
	sh, ok := s.Ships[id]
	if !ok {
		return ErrNotFound
	}
	indexRemove(s.ShipsBySquadron, sh.SquadronID, id)
	delete(s.Ships, id)
	return nil
}

// ShipsInSquadron returns every ship ID in a squadron, in deterministic
// ascending-ID order.
func (s *State) ShipsInSquadron(sq SquadronID) []ShipID {
	out := indexValues(s.ShipsBySquadron, sq)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

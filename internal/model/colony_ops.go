package model

import "sort"

// AddColony inserts a new colony, wiring it into the by-system and
// by-owner indexes atomically. Grounded on the teacher's
// `Instance.CreatePlanet`-style DB-transaction wrappers
// (internal/model/planet.go), generalized to the in-memory tables of
// state.go.
func (s *State) AddColony(c *Colony) error {
	if c == nil || c.ID == ZeroID {
		return ErrInvalidEntity
	}
	if _, exists := s.Colonies[c.ID]; exists {
		return ErrAlreadyExists
	}
	s.Colonies[c.ID] = c
	indexAdd(s.ColoniesBySystem, c.SystemID, c.ID)
	indexAdd(s.ColoniesByOwner, c.OwnerID, c.ID)
	return nil
}

// GetColony fetches a colony by ID.
func (s *State) GetColony(id ColonyID) (*Colony, error) {
	c, ok := s.Colonies[id]
	if !ok {
		return nil, ErrNotFound
	}
	return c, nil
}

// UpdateColony replaces a colony's stored value, re-wiring the by-system
// and by-owner indexes if its system or owner changed (e.g. a captured
// colony changing hands, spec.md §4.7).
func (s *State) UpdateColony(c *Colony) error {
	old, ok := s.Colonies[c.ID]
	if !ok {
		return ErrNotFound
	}
	if old.SystemID != c.SystemID {
		indexRemove(s.ColoniesBySystem, old.SystemID, c.ID)
		indexAdd(s.ColoniesBySystem, c.SystemID, c.ID)
	}
	if old.OwnerID != c.OwnerID {
		indexRemove(s.ColoniesByOwner, old.OwnerID, c.ID)
		indexAdd(s.ColoniesByOwner, c.OwnerID, c.ID)
	}
	s.Colonies[c.ID] = c
	return nil
}

// RemoveColony deletes a colony and every index entry that referenced it.
// Does not cascade to the colony's facilities or ground units; callers
// must remove those explicitly first (mirrors the teacher's
// leaf-before-parent deletion order in planet teardown).
func (s *State) RemoveColony(id ColonyID) error {
	c, ok := s.Colonies[id]
	if !ok {
		return ErrNotFound
	}
	indexRemove(s.ColoniesBySystem, c.SystemID, id)
	indexRemove(s.ColoniesByOwner, c.OwnerID, id)
	delete(s.Colonies, id)
	return nil
}

// ColoniesInSystem returns every colony ID in a system, in deterministic
// ascending-ID order.
func (s *State) ColoniesInSystem(sys SystemID) []ColonyID {
	out := indexValues(s.ColoniesBySystem, sys)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ColoniesOwnedBy returns every colony ID a house owns, in deterministic
// ascending-ID order.
func (s *State) ColoniesOwnedBy(h HouseID) []ColonyID {
	out := indexValues(s.ColoniesByOwner, h)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// AddNeoria attaches a new facility to its owning colony.
func (s *State) AddNeoria(n *Neoria) error {
	if n == nil || n.ID == ZeroID {
		return ErrInvalidEntity
	}
	if _, exists := s.Neorias[n.ID]; exists {
		return ErrAlreadyExists
	}
	if _, ok := s.Colonies[n.ColonyID]; !ok {
		return ErrNotFound
	}
	s.Neorias[n.ID] = n
	indexAdd(s.NeoriasByColony, n.ColonyID, n.ID)
	s.Colonies[n.ColonyID].NeoriaIDs = append(s.Colonies[n.ColonyID].NeoriaIDs, n.ID)
	return nil
}

// GetNeoria fetches a facility by ID.
func (s *State) GetNeoria(id NeoriaID) (*Neoria, error) {
	n, ok := s.Neorias[id]
	if !ok {
		return nil, ErrNotFound
	}
	return n, nil
}

// UpdateNeoria replaces a facility's stored value in place; facilities
// never change colony once built, so no re-indexing is needed.
func (s *State) UpdateNeoria(n *Neoria) error {
	if _, ok := s.Neorias[n.ID]; !ok {
		return ErrNotFound
	}
	s.Neorias[n.ID] = n
	return nil
}

// RemoveNeoria destroys a facility, per spec.md §4.7's "a destroyed
// facility's active and queued projects are cancelled with no refund".
func (s *State) RemoveNeoria(id NeoriaID) error {
	n, ok := s.Neorias[id]
	if !ok {
		return ErrNotFound
	}
	for _, pid := range n.ActiveConstructions {
		delete(s.ConstructionProjects, pid)
		indexRemove(s.ProjectsByFacility, id, pid)
		indexRemove(s.ProjectsByColony, n.ColonyID, pid)
	}
	for _, pid := range n.QueuedConstructions {
		delete(s.ConstructionProjects, pid)
		indexRemove(s.ProjectsByFacility, id, pid)
		indexRemove(s.ProjectsByColony, n.ColonyID, pid)
	}
	for _, pid := range n.ActiveRepairs {
		delete(s.RepairProjects, pid)
		indexRemove(s.RepairsByFacility, id, pid)
	}
	for _, pid := range n.QueuedRepairs {
		delete(s.RepairProjects, pid)
		indexRemove(s.RepairsByFacility, id, pid)
	}
	indexRemove(s.NeoriasByColony, n.ColonyID, id)
	delete(s.Neorias, id)

	if colony, ok := s.Colonies[n.ColonyID]; ok {
		kept := colony.NeoriaIDs[:0]
		for _, existing := range colony.NeoriaIDs {
			if existing != id {
				kept = append(kept, existing)
			}
		}
		colony.NeoriaIDs = kept
	}
	return nil
}

// NeoriasAtColony returns every facility ID at a colony, in deterministic
// ascending-ID order.
func (s *State) NeoriasAtColony(c ColonyID) []NeoriaID {
	out := indexValues(s.NeoriasByColony, c)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// AddKastra attaches a new starbase to its owning colony.
func (s *State) AddKastra(k *Kastra) error {
	if k == nil || k.ID == ZeroID {
		return ErrInvalidEntity
	}
	if _, exists := s.Kastras[k.ID]; exists {
		return ErrAlreadyExists
	}
	if _, ok := s.Colonies[k.ColonyID]; !ok {
		return ErrNotFound
	}
	s.Kastras[k.ID] = k
	indexAdd(s.KastrasByColony, k.ColonyID, k.ID)
	s.Colonies[k.ColonyID].KastraIDs = append(s.Colonies[k.ColonyID].KastraIDs, k.ID)
	return nil
}

// GetKastra fetches a starbase by ID.
func (s *State) GetKastra(id KastraID) (*Kastra, error) {
	k, ok := s.Kastras[id]
	if !ok {
		return nil, ErrNotFound
	}
	return k, nil
}

// UpdateKastra replaces a starbase's stored value in place.
func (s *State) UpdateKastra(k *Kastra) error {
	if _, ok := s.Kastras[k.ID]; !ok {
		return ErrNotFound
	}
	s.Kastras[k.ID] = k
	return nil
}

// RemoveKastra deletes a destroyed starbase from its colony's roster, per
// spec.md §4.7's combat cleanup ordering.
func (s *State) RemoveKastra(id KastraID) error {
	k, ok := s.Kastras[id]
	if !ok {
		return ErrNotFound
	}
	indexRemove(s.KastrasByColony, k.ColonyID, id)
	delete(s.Kastras, id)
	if colony, ok := s.Colonies[k.ColonyID]; ok {
		kept := colony.KastraIDs[:0]
		for _, existing := range colony.KastraIDs {
			if existing != id {
				kept = append(kept, existing)
			}
		}
		colony.KastraIDs = kept
	}
	return nil
}

// RemoveGroundUnit deletes a destroyed ground unit from its colony's
// roster (spec.md §4.7: destroyed ground units are removed at cleanup).
func (s *State) RemoveGroundUnit(id GroundUnitID) error {
	g, ok := s.GroundUnits[id]
	if !ok {
		return ErrNotFound
	}
	delete(s.GroundUnits, id)
	if colony, ok := s.Colonies[g.ColonyID]; ok {
		kept := colony.GroundUnitIDs[:0]
		for _, existing := range colony.GroundUnitIDs {
			if existing != id {
				kept = append(kept, existing)
			}
		}
		colony.GroundUnitIDs = kept
	}
	return nil
}

// AddGroundUnit attaches a new ground unit to its owning colony.
func (s *State) AddGroundUnit(g *GroundUnit) error {
	if g == nil || g.ID == ZeroID {
		return ErrInvalidEntity
	}
	if _, exists := s.GroundUnits[g.ID]; exists {
		return ErrAlreadyExists
	}
	if _, ok := s.Colonies[g.ColonyID]; !ok {
		return ErrNotFound
	}
	s.GroundUnits[g.ID] = g
	s.Colonies[g.ColonyID].GroundUnitIDs = append(s.Colonies[g.ColonyID].GroundUnitIDs, g.ID)
	return nil
}

// GetGroundUnit fetches a ground unit by ID.
func (s *State) GetGroundUnit(id GroundUnitID) (*GroundUnit, error) {
	g, ok := s.GroundUnits[id]
	if !ok {
		return nil, ErrNotFound
	}
	return g, nil
}

package model

import "sort"

// AddConstructionProject inserts a new project, wiring it into the
// by-colony index and, for facility-hosted (orbital) projects, the
// by-facility index and the facility's queue. Grounded on the teacher's
// `progressAction`/`fixedCostAction` enqueue paths
// (internal/game/progress_action.go, fixed_cost_action.go).
func (s *State) AddConstructionProject(p *ConstructionProject) error {
	if p == nil || p.ID == ZeroID {
		return ErrInvalidEntity
	}
	if _, exists := s.ConstructionProjects[p.ID]; exists {
		return ErrAlreadyExists
	}
	colony, ok := s.Colonies[p.ColonyID]
	if !ok {
		return ErrNotFound
	}
	s.ConstructionProjects[p.ID] = p
	indexAdd(s.ProjectsByColony, p.ColonyID, p.ID)
	colony.ConstructionQueue = append(colony.ConstructionQueue, p.ID)

	if p.FacilityID != nil {
		facility, ok := s.Neorias[*p.FacilityID]
		if !ok {
			return ErrNotFound
		}
		indexAdd(s.ProjectsByFacility, *p.FacilityID, p.ID)
		facility.QueuedConstructions = append(facility.QueuedConstructions, p.ID)
	}
	return nil
}

// GetConstructionProject fetches a project by ID.
func (s *State) GetConstructionProject(id ConstructionProjectID) (*ConstructionProject, error) {
	p, ok := s.ConstructionProjects[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

// UpdateConstructionProject replaces a project's stored value in place
// (decrementing TurnsRemaining); a project never changes colony or
// facility once submitted.
func (s *State) UpdateConstructionProject(p *ConstructionProject) error {
	if _, ok := s.ConstructionProjects[p.ID]; !ok {
		return ErrNotFound
	}
	s.ConstructionProjects[p.ID] = p
	return nil
}

// RemoveConstructionProject deletes a project on completion or
// cancellation (no refund, per spec.md §4.4), unwinding both its colony
// queue entry and, if applicable, its facility queue entry.
func (s *State) RemoveConstructionProject(id ConstructionProjectID) error {
	p, ok := s.ConstructionProjects[id]
	if !ok {
		return ErrNotFound
	}
	indexRemove(s.ProjectsByColony, p.ColonyID, id)
	if colony, ok := s.Colonies[p.ColonyID]; ok {
		colony.ConstructionQueue = removeProjectID(colony.ConstructionQueue, id)
		if colony.ActiveConstruction != nil && *colony.ActiveConstruction == id {
			colony.ActiveConstruction = nil
		}
	}
	if p.FacilityID != nil {
		indexRemove(s.ProjectsByFacility, *p.FacilityID, id)
		if facility, ok := s.Neorias[*p.FacilityID]; ok {
			facility.QueuedConstructions = removeProjectID(facility.QueuedConstructions, id)
			facility.ActiveConstructions = removeProjectID(facility.ActiveConstructions, id)
		}
	}
	delete(s.ConstructionProjects, id)
	return nil
}

func removeProjectID(ids []ConstructionProjectID, target ConstructionProjectID) []ConstructionProjectID {
	kept := ids[:0]
	for _, id := range ids {
		if id != target {
			kept = append(kept, id)
		}
	}
	return kept
}

// ProjectsAtColony returns every construction project ID queued or
// active at a colony, in deterministic ascending-ID order.
func (s *State) ProjectsAtColony(c ColonyID) []ConstructionProjectID {
	out := indexValues(s.ProjectsByColony, c)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ProjectsAtFacility returns every construction project ID queued or
// active at a facility, in deterministic ascending-ID order.
func (s *State) ProjectsAtFacility(f NeoriaID) []ConstructionProjectID {
	out := indexValues(s.ProjectsByFacility, f)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// AddRepairProject inserts a new repair project under its drydock.
func (s *State) AddRepairProject(p *RepairProject) error {
	if p == nil || p.ID == ZeroID {
		return ErrInvalidEntity
	}
	if _, exists := s.RepairProjects[p.ID]; exists {
		return ErrAlreadyExists
	}
	facility, ok := s.Neorias[p.FacilityID]
	if !ok {
		return ErrNotFound
	}
	s.RepairProjects[p.ID] = p
	indexAdd(s.RepairsByFacility, p.FacilityID, p.ID)
	facility.QueuedRepairs = append(facility.QueuedRepairs, p.ID)
	return nil
}

// GetRepairProject fetches a repair project by ID.
func (s *State) GetRepairProject(id RepairProjectID) (*RepairProject, error) {
	p, ok := s.RepairProjects[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

// UpdateRepairProject replaces a repair project's stored value in place.
func (s *State) UpdateRepairProject(p *RepairProject) error {
	if _, ok := s.RepairProjects[p.ID]; !ok {
		return ErrNotFound
	}
	s.RepairProjects[p.ID] = p
	return nil
}

// RemoveRepairProject deletes a repair project on completion, unwinding
// its drydock queue entry.
func (s *State) RemoveRepairProject(id RepairProjectID) error {
	p, ok := s.RepairProjects[id]
	if !ok {
		return ErrNotFound
	}
	indexRemove(s.RepairsByFacility, p.FacilityID, id)
	if facility, ok := s.Neorias[p.FacilityID]; ok {
		kept := facility.QueuedRepairs[:0]
		for _, existing := range facility.QueuedRepairs {
			if existing != id {
				kept = append(kept, existing)
			}
		}
		facility.QueuedRepairs = kept
		kept2 := facility.ActiveRepairs[:0]
		for _, existing := range facility.ActiveRepairs {
			if existing != id {
				kept2 = append(kept2, existing)
			}
		}
		facility.ActiveRepairs = kept2
	}
	delete(s.RepairProjects, id)
	return nil
}

// RepairsAtFacility returns every repair project ID queued or active at a
// drydock, in deterministic ascending-ID order.
func (s *State) RepairsAtFacility(f NeoriaID) []RepairProjectID {
	out := indexValues(s.RepairsByFacility, f)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

package model

import "sort"

// AddHouse registers a new house at game setup.
func (s *State) AddHouse(h *House) error {
	if h == nil || h.ID == ZeroID {
		return ErrInvalidEntity
	}
	if _, exists := s.Houses[h.ID]; exists {
		return ErrAlreadyExists
	}
	s.Houses[h.ID] = h
	return nil
}

// GetHouse fetches a house by ID.
func (s *State) GetHouse(id HouseID) (*House, error) {
	h, ok := s.Houses[id]
	if !ok {
		return nil, ErrNotFound
	}
	return h, nil
}

// UpdateHouse replaces a house's stored value in place.
func (s *State) UpdateHouse(h *House) error {
	if _, ok := s.Houses[h.ID]; !ok {
		return ErrNotFound
	}
	s.Houses[h.ID] = h
	return nil
}

// ActiveHouses returns every house that has not been eliminated, in
// ascending-ID order, used by phases that iterate "every surviving
// house" (spec.md §4.2).
func (s *State) ActiveHouses() []*House {
	var out []*House
	for _, h := range s.Houses {
		if !h.Eliminated {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

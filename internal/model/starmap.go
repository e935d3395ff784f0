package model

import (
	"fmt"
	"sort"
)

// This file generalizes the teacher's `Coordinate` (galaxy/system/position
// triple with a `Location` enum, internal/model/coordinate.go) into the
// axial hex coordinates and jump-lane graph spec.md §3 "Star map" and §4.6
// describe. The teacher has no pathfinding of its own (OGame fleets fly a
// straight travel-time formula between two coordinates); the A* search that
// consumes this map lives in internal/game/movement.go.

// HexCoord is an axial coordinate (q, r) on the hex star map.
type HexCoord struct {
	Q int
	R int
}

// Ring returns the hex ring this coordinate belongs to, i.e. the hex
// distance from the hub at (0,0).
func (h HexCoord) Ring() int {
	return hexDistance(HexCoord{}, h)
}

func hexDistance(a, b HexCoord) int {
	dq := a.Q - b.Q
	dr := a.R - b.R
	return (abs(dq) + abs(dr) + abs(dq+dr)) / 2
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// hexNeighbors are the six axial offsets of adjacent hexes, in a fixed
// order so that lane generation is deterministic.
var hexNeighbors = [6]HexCoord{
	{Q: 1, R: 0},
	{Q: 1, R: -1},
	{Q: 0, R: -1},
	{Q: -1, R: 0},
	{Q: -1, R: 1},
	{Q: 0, R: 1},
}

// LaneType classifies a jump lane's traversal cost and restrictions.
type LaneType int

const (
	// Major lanes cost 1 to traverse and permit the multi-jump rule.
	Major LaneType = iota
	// Minor lanes cost 2 to traverse.
	Minor
	// Restricted lanes cost 3 and bar crippled or spacelift-carrying
	// fleets.
	Restricted
)

// String implements fmt.Stringer.
func (l LaneType) String() string {
	switch l {
	case Major:
		return "major"
	case Minor:
		return "minor"
	case Restricted:
		return "restricted"
	default:
		return "unknown"
	}
}

// LaneCost returns the movement cost of traversing a lane of this type.
func (l LaneType) LaneCost() int {
	switch l {
	case Major:
		return 1
	case Minor:
		return 2
	case Restricted:
		return 3
	default:
		return 1
	}
}

// System is a single hex cell of the star map.
//
// The `ID` uniquely identifies the system.
//
// The `Coord` is the system's axial position.
//
// The `Lanes` maps a neighboring system ID to the type of lane connecting
// them. Every lane is traversable both ways (spec.md §3), so both
// endpoints carry an entry of the same type for the pair.
//
// The `HomeworldOf` is non-zero when this system hosts a house's
// homeworld.
type System struct {
	ID          SystemID
	Coord       HexCoord
	Lanes       map[SystemID]LaneType
	HomeworldOf HouseID
}

// StarMap is the full hex grid plus lane graph for a game.
type StarMap struct {
	Systems   map[SystemID]*System
	byCoord   map[HexCoord]SystemID
}

// NewStarMap generates a hex map for a target player count `n`, per
// spec.md §3: `1 + 3n(n+1)` systems, hub at (0,0), each non-hub ring `r`
// holding `6r` systems, hub with exactly six lanes.
func NewStarMap(ids *idCounters, playerCount int) *StarMap {
	if playerCount < 1 {
		playerCount = 1
	}
	maxRing := playerCount

	sm := &StarMap{
		Systems: make(map[SystemID]*System),
		byCoord: make(map[HexCoord]SystemID),
	}

	coords := ringOrderedCoords(maxRing)
	for _, c := range coords {
		id := ids.nextSystemID()
		sm.Systems[id] = &System{
			ID:    id,
			Coord: c,
			Lanes: make(map[SystemID]LaneType),
		}
		sm.byCoord[c] = id
	}

	sm.connectAdjacentLanes()

	return sm
}

// ringOrderedCoords enumerates every hex coordinate within `maxRing` rings
// of the hub, hub first, then ring 1, ring 2, and so on, each ring ordered
// by its fixed neighbor-walk starting direction. This yields exactly
// `1 + 3n(n+1)` coordinates for `n = maxRing`.
func ringOrderedCoords(maxRing int) []HexCoord {
	coords := []HexCoord{{Q: 0, R: 0}}

	for ring := 1; ring <= maxRing; ring++ {
		// Start at the hex `ring` steps along neighbor direction 4
		// ("down-left" in axial terms) and walk the ring boundary.
		cur := HexCoord{Q: hexNeighbors[4].Q * ring, R: hexNeighbors[4].R * ring}
		for side := 0; side < 6; side++ {
			for step := 0; step < ring; step++ {
				coords = append(coords, cur)
				cur = HexCoord{Q: cur.Q + hexNeighbors[side].Q, R: cur.R + hexNeighbors[side].R}
			}
		}
	}

	return coords
}

// connectAdjacentLanes wires a Minor lane between every pair of adjacent
// hexes present on the map. Callers upgrade specific lanes to Major (e.g.
// the hub's six lanes, per spec.md §3) or downgrade to Restricted
// afterward.
func (sm *StarMap) connectAdjacentLanes() {
	for id, sys := range sm.Systems {
		for _, off := range hexNeighbors {
			n := HexCoord{Q: sys.Coord.Q + off.Q, R: sys.Coord.R + off.R}
			nid, ok := sm.byCoord[n]
			if !ok {
				continue
			}
			if _, already := sys.Lanes[nid]; already {
				continue
			}
			sys.Lanes[nid] = Minor
			sm.Systems[nid].Lanes[id] = Minor
		}
	}

	// The hub has exactly six lanes (one per neighbor at ring 1) and all
	// of them are Major, per spec.md §3.
	if hub, ok := sm.byCoord[HexCoord{}]; ok {
		hubSys := sm.Systems[hub]
		for nid := range hubSys.Lanes {
			hubSys.Lanes[nid] = Major
			sm.Systems[nid].Lanes[hub] = Major
		}
	}
}

// SetLane forcibly sets the lane type between two systems if they are
// adjacent, updating both directed entries so the lane remains symmetric
// (spec.md §8 invariant: "for every lane (a,b,type) there are two directed
// traversal edges of the same type").
func (sm *StarMap) SetLane(a, b SystemID, t LaneType) error {
	sa, ok := sm.Systems[a]
	if !ok {
		return ErrNotFound
	}
	sb, ok := sm.Systems[b]
	if !ok {
		return ErrNotFound
	}
	if _, adjacent := sa.Lanes[b]; !adjacent {
		return fmt.Errorf("systems %s and %s are not adjacent", a, b)
	}

	sa.Lanes[b] = t
	sb.Lanes[a] = t
	return nil
}

// VertexCells returns the systems at the outermost generated ring that have
// exactly three neighbors within the map (the hex-grid "corners"), used by
// homeworld placement for small player counts per spec.md §3.
func (sm *StarMap) VertexCells(ring int) []SystemID {
	var out []SystemID
	for id, sys := range sm.Systems {
		if sys.Coord.Ring() != ring {
			continue
		}
		count := 0
		for _, off := range hexNeighbors {
			n := HexCoord{Q: sys.Coord.Q + off.Q, R: sys.Coord.R + off.R}
			if _, ok := sm.byCoord[n]; ok {
				count++
			}
		}
		if count == 3 {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// OuterRing returns the system IDs at the map's outermost ring, in
// deterministic order; used to place homeworlds as far apart as possible.
func (sm *StarMap) OuterRing() []SystemID {
	maxRing := 0
	for _, sys := range sm.Systems {
		if r := sys.Coord.Ring(); r > maxRing {
			maxRing = r
		}
	}
	var out []SystemID
	for id, sys := range sm.Systems {
		if sys.Coord.Ring() == maxRing {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

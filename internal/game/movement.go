package game

import (
	"container/heap"
	"sort"

	"ec4x_engine/internal/model"
)

// This file has no direct teacher analogue — OGame ships fly a straight
// travel-time formula between two coordinates rather than searching a
// graph — so movement is grounded on the hex/lane graph defined in
// internal/model/starmap.go and built fresh for spec.md §4.6's weighted
// A* requirement. No randomness is involved: ties are broken by visiting
// neighbors in ascending SystemID order.

// pathNode is one entry in the A* open set.
type pathNode struct {
	id       model.SystemID
	g        int
	f        int
	index    int
}

type nodeHeap []*pathNode

func (h nodeHeap) Len() int            { return len(h) }
func (h nodeHeap) Less(i, j int) bool  { return h[i].f < h[j].f }
func (h nodeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i]; h[i].index = i; h[j].index = j }
func (h *nodeHeap) Push(x interface{}) {
	n := x.(*pathNode)
	n.index = len(*h)
	*h = append(*h, n)
}
func (h *nodeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// fleetCanUseLane reports whether a fleet may traverse a lane of the
// given type: crippled-squadron or spacelift-carrying fleets cannot use
// Restricted lanes, per spec.md §4.6.
func fleetCanUseLane(state *model.State, f *model.Fleet, lane model.LaneType) bool {
	if lane != model.Restricted {
		return true
	}
	for _, sqID := range f.SquadronIDs {
		sq, err := state.GetSquadron(sqID)
		if err != nil {
			continue
		}
		if sq.Type.IsSpacelift() {
			return false
		}
		for _, shipID := range sq.Ships() {
			sh, err := state.GetShip(shipID)
			if err == nil && sh.State == model.Crippled {
				return false
			}
		}
	}
	return true
}

// FindPath runs weighted A* with a hex-distance heuristic from `from` to
// `to`, honoring lane-type restrictions for the given fleet. Returns the
// system sequence including both endpoints, or nil if unreachable.
func FindPath(state *model.State, f *model.Fleet, from, to model.SystemID) []model.SystemID {
	if from == to {
		return []model.SystemID{from}
	}

	open := &nodeHeap{}
	heap.Init(open)
	heap.Push(open, &pathNode{id: from, g: 0, f: heuristic(state, from, to)})

	cameFrom := make(map[model.SystemID]model.SystemID)
	bestG := map[model.SystemID]int{from: 0}
	visited := make(map[model.SystemID]bool)

	for open.Len() > 0 {
		cur := heap.Pop(open).(*pathNode)
		if visited[cur.id] {
			continue
		}
		visited[cur.id] = true
		if cur.id == to {
			return reconstructPath(cameFrom, from, to)
		}

		sys, ok := state.Systems[cur.id]
		if !ok {
			continue
		}
		neighbors := make([]model.SystemID, 0, len(sys.Lanes))
		for n := range sys.Lanes {
			neighbors = append(neighbors, n)
		}
		sort.Slice(neighbors, func(i, j int) bool { return neighbors[i] < neighbors[j] })

		for _, n := range neighbors {
			laneType := sys.Lanes[n]
			if !fleetCanUseLane(state, f, laneType) {
				continue
			}
			g := cur.g + laneType.LaneCost()
			if best, ok := bestG[n]; ok && best <= g {
				continue
			}
			bestG[n] = g
			cameFrom[n] = cur.id
			heap.Push(open, &pathNode{id: n, g: g, f: g + heuristic(state, n, to)})
		}
	}
	return nil
}

func reconstructPath(cameFrom map[model.SystemID]model.SystemID, from, to model.SystemID) []model.SystemID {
	path := []model.SystemID{to}
	cur := to
	for cur != from {
		prev, ok := cameFrom[cur]
		if !ok {
			return nil
		}
		path = append(path, prev)
		cur = prev
	}
	// reverse
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

func heuristic(state *model.State, a, b model.SystemID) int {
	sa, okA := state.Systems[a]
	sb, okB := state.Systems[b]
	if !okA || !okB {
		return 0
	}
	diff := model.HexCoord{Q: sa.Coord.Q - sb.Coord.Q, R: sa.Coord.R - sb.Coord.R}
	return diff.Ring()
}

// canMultiJump reports whether a fleet may advance two hexes this turn:
// every system on the path (inclusive) must be owned by the mover and
// every lane used must be Major, per spec.md §4.6.
func canMultiJump(state *model.State, f *model.Fleet, path []model.SystemID) bool {
	if len(path) < 3 {
		return false
	}
	for _, sysID := range path[:3] {
		owned := false
		for _, cid := range state.ColoniesInSystem(sysID) {
			c, err := state.GetColony(cid)
			if err == nil && c.OwnerID == f.OwnerID {
				owned = true
				break
			}
		}
		if !owned {
			return false
		}
	}
	for i := 0; i < 2; i++ {
		sys := state.Systems[path[i]]
		if sys.Lanes[path[i+1]] != model.Major {
			return false
		}
	}
	return true
}

// StepFleet advances a fleet one step (or two, under the multi-jump
// rule) toward its order's target system, updating its SystemID and
// by-system index via UpdateFleet.
func StepFleet(state *model.State, f *model.Fleet, target model.SystemID) {
	path := FindPath(state, f, f.SystemID, target)
	if len(path) < 2 {
		return
	}
	steps := 1
	if canMultiJump(state, f, path) {
		steps = 2
	}
	if steps >= len(path) {
		steps = len(path) - 1
	}
	f.SystemID = path[steps]
	f.PendingArrival = f.SystemID == target
	_ = state.UpdateFleet(f)
}

// ETA computes the integer turn count to reach `to` from `from` by
// repeatedly simulating StepFleet's path/multi-jump logic without
// mutating state, per spec.md §4.6 ("turn-by-turn simulation ... rather
// than lane-count estimates").
func ETA(state *model.State, f *model.Fleet, from, to model.SystemID) int {
	cur := from
	turns := 0
	for cur != to && turns < 1000 {
		path := FindPath(state, f, cur, to)
		if len(path) < 2 {
			return -1
		}
		steps := 1
		if canMultiJump(state, f, path) {
			steps = 2
		}
		if steps >= len(path) {
			steps = len(path) - 1
		}
		cur = path[steps]
		turns++
	}
	if cur != to {
		return -1
	}
	return turns
}

// riskOf scores a system's danger level from a house's fog-of-war intel,
// per spec.md §4.6's seek-home blend: 10 known-hostile, 3
// neutral-foreign, 1 unknown/empty.
func riskOf(state *model.State, house *model.House, sysID model.SystemID) int {
	intel, ok := house.Intel.Systems[sysID]
	if !ok {
		return 1
	}
	sys, ok := state.Systems[sysID]
	if !ok || sys.HomeworldOf == model.ZeroID {
		return riskFromVisibility(state, house, intel)
	}
	if sys.HomeworldOf == house.ID {
		return 0
	}
	rel, ok := house.Relations[sys.HomeworldOf]
	if ok && (rel.State == model.Hostile || rel.State == model.Enemy || rel.State == model.AtWar) {
		return 10
	}
	return 3
}

func riskFromVisibility(state *model.State, house *model.House, intel *model.SystemIntel) int {
	for _, fs := range intel.Fleets {
		rel, ok := house.Relations[fs.OwnerID]
		if ok && (rel.State == model.Hostile || rel.State == model.Enemy || rel.State == model.AtWar) {
			return 10
		}
		return 3
	}
	return 1
}

// SeekHomeDestination picks a retreat/seek-home target for a fleet: the
// house's pre-planned fallback route if still valid, otherwise, among the
// house's homeworld and the systems where it owns a colony, the one
// minimizing `distance + 3*risk`, per spec.md §4.6.
func SeekHomeDestination(state *model.State, house *model.House, f *model.Fleet) (model.SystemID, bool) {
	if dest, ok := house.FallbackRoutes[f.ID]; ok {
		if _, exists := state.Systems[dest]; exists {
			return dest, true
		}
	}

	var bestID model.SystemID
	bestScore := -1
	found := false
	ids := make([]model.SystemID, 0, len(state.Systems))
	for id := range state.Systems {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		sys := state.Systems[id]
		if sys.HomeworldOf != house.ID {
			owned := false
			for _, cid := range state.ColoniesInSystem(id) {
				c, err := state.GetColony(cid)
				if err == nil && c.OwnerID == house.ID {
					owned = true
					break
				}
			}
			if !owned {
				continue
			}
		}
		dist := heuristic(state, f.SystemID, id)
		score := dist + 3*riskOf(state, house, id)
		if !found || score < bestScore {
			bestScore = score
			bestID = id
			found = true
		}
	}
	return bestID, found
}

// refreshFallbackRoutes recomputes every fleet's seek-home fallback
// every 5 turns, per spec.md §4.6.
func refreshFallbackRoutes(state *model.State, turn int) {
	for _, house := range state.Houses {
		if turn-house.FallbackRoutesTurn < 5 && house.FallbackRoutesTurn != 0 {
			continue
		}
		for _, fleetID := range state.FleetsOwnedBy(house.ID) {
			f, err := state.GetFleet(fleetID)
			if err != nil {
				continue
			}
			if dest, ok := SeekHomeDestination(state, house, f); ok {
				house.FallbackRoutes[fleetID] = dest
			}
		}
		house.FallbackRoutesTurn = turn
		_ = state.UpdateHouse(house)
	}
}

// runMovement executes every non-stationary fleet's current order for
// the Movement phase, per spec.md §4.2 phase 3.
func runMovement(state *model.State, bound *BoundOrders, seed int64, turn int, rec *Recorder) {
	refreshFallbackRoutes(state, turn)

	for _, packet := range bound.ByHouse {
		for _, order := range packet.FleetOrders {
			f, err := state.GetFleet(order.FleetID)
			if err != nil {
				continue
			}
			f.Order = &order
			_ = state.UpdateFleet(f)
		}
	}

	fleetIDs := make([]model.FleetID, 0, len(state.Fleets))
	for id := range state.Fleets {
		fleetIDs = append(fleetIDs, id)
	}
	sort.Slice(fleetIDs, func(i, j int) bool { return fleetIDs[i] < fleetIDs[j] })

	for _, id := range fleetIDs {
		f, err := state.GetFleet(id)
		if err != nil || f.Status != model.Active || f.Order == nil {
			continue
		}
		if f.Order.Kind.IsStationary() {
			continue
		}
		if f.Order.TargetSystem == nil {
			continue
		}
		switch f.Order.Kind {
		case model.Move, model.Colonize, model.Invade, model.Blitz, model.Rendezvous,
			model.SpyPlanet, model.SpySystem, model.HackStarbase, model.JoinFleet:
			StepFleet(state, f, *f.Order.TargetSystem)
		case model.SeekHome:
			house, err := state.GetHouse(f.OwnerID)
			if err != nil {
				continue
			}
			if dest, ok := SeekHomeDestination(state, house, f); ok {
				StepFleet(state, f, dest)
			}
		}
	}
}

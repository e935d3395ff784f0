// Package game implements the turn-resolution pipeline: the ordered
// phase driver that consumes per-house order packets against a mutable
// world and produces a new state plus a deterministic event stream.
//
// Grounded on the teacher's `Instance`-scoped phase methods
// (internal/game/universe.go drives colony/fleet/building/research
// advancement once per tick); generalized from OGame's single implicit
// "advance everything" tick into the explicit, strictly-ordered
// eleven-phase pipeline the turn-resolution kernel requires.
package game

import (
	"sort"

	"ec4x_engine/internal/config"
	"ec4x_engine/internal/model"
	"ec4x_engine/internal/rng"
)

// Recorder accumulates the event stream for one turn and hands out
// deterministic sequence numbers for event-ID derivation.
type Recorder struct {
	turn   int
	seq    int
	Events []model.GameEvent
}

// NewRecorder starts a fresh recorder for the given turn.
func NewRecorder(turn int) *Recorder {
	return &Recorder{turn: turn}
}

// Emit appends a new event with the next sequence number, observers
// restricted to the named houses (empty means visible to all).
func (r *Recorder) Emit(kind model.EventKind, systemID *model.SystemID, observers []model.HouseID, payload map[string]interface{}) model.GameEvent {
	ev := model.NewEvent(r.turn, r.seq, kind, observers, payload)
	ev.SystemID = systemID
	r.seq++
	r.Events = append(r.Events, ev)
	return ev
}

// Engine bundles the immutable rules configuration an AdvanceTurn call
// needs alongside the mutable State, per spec.md §9's "re-architect
// global mutable config as explicit values threaded in at construction
// time".
type Engine struct {
	Config config.Config
}

// NewEngine builds an Engine from a loaded configuration.
func NewEngine(cfg config.Config) *Engine {
	return &Engine{Config: cfg}
}

// AdvanceTurn runs one full turn: `(State, Orders[], Seed) -> (State',
// Events)`. It mutates state in place and returns the turn's event
// stream and per-house projections, per spec.md §4.2's eleven-phase
// order and §5's "pure transformation" requirement — the only inputs
// consumed are state, orders and seed; nothing else may influence the
// outcome.
func (e *Engine) AdvanceTurn(state *model.State, orders []model.OrderPacket, seed int64) ([]model.GameEvent, map[model.HouseID]PlayerState) {
	turn := state.Turn + 1
	rec := NewRecorder(turn)

	sortedOrders := make([]model.OrderPacket, len(orders))
	copy(sortedOrders, orders)
	sort.Slice(sortedOrders, func(i, j int) bool { return sortedOrders[i].HouseID < sortedOrders[j].HouseID })

	bound := intake(state, sortedOrders, rec)

	applyZeroTurnAdmin(state, bound, rec)

	runMovement(state, bound, seed, turn, rec)

	for _, systemID := range contestedSystems(state) {
		resolveSystemCombat(state, systemID, seed, turn, e.Config, rec)
	}

	runEspionage(state, bound, seed, turn, rec)

	runEconomy(state, e.Config, rec)

	runQueues(state, rec)

	runResearch(state, bound, rec)

	runDiplomacy(state, bound, rec)

	runPrestigeAndElimination(state, rec)

	state.Turn = turn

	projections := make(map[model.HouseID]PlayerState, len(state.Houses))
	for _, h := range state.Houses {
		projections[h.ID] = ProjectPlayerState(state, h.ID)
	}

	return rec.Events, projections
}

// contestedSystems returns, in deterministic ascending-ID order, every
// system currently hosting fleets of two or more distinct houses —
// spec.md §4.2 phase 4's combat trigger condition.
func contestedSystems(state *model.State) []model.SystemID {
	ownersBySystem := make(map[model.SystemID]map[model.HouseID]struct{})
	for _, f := range state.Fleets {
		owners, ok := ownersBySystem[f.SystemID]
		if !ok {
			owners = make(map[model.HouseID]struct{})
			ownersBySystem[f.SystemID] = owners
		}
		owners[f.OwnerID] = struct{}{}
	}

	var out []model.SystemID
	for sysID, owners := range ownersBySystem {
		if len(owners) >= 2 {
			out = append(out, sysID)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// seedStream derives a phase-scoped deterministic random stream, the
// single point every phase needing randomness goes through, per spec.md
// §9 ("one PRNG, seeded per (turn, system, phase)").
func seedStream(seed int64, turn int, systemID model.SystemID, phase string) *rng.Stream {
	return rng.New(seed, turn, uint64(systemID), phase)
}

package bridge

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"ec4x_engine/internal/game"
	"ec4x_engine/internal/logging"
	"ec4x_engine/internal/model"
)

func writeJSON(w http.ResponseWriter, log logging.Logger, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Trace(logging.Error, moduleName, fmt.Sprintf("encoding response: %v", err))
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	http.Error(w, message, status)
}

func parseHouseID(r *http.Request) (model.HouseID, error) {
	raw := PathParam(r, "houseId")
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid houseId %q: %w", raw, err)
	}
	return model.HouseID(v), nil
}

// handleGetRules serves the immutable, hashed rules snapshot — spec.md
// §6's `GET /rules`.
func (s *Server) handleGetRules(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.log, http.StatusOK, s.snapshot)
}

// handleGetState serves one house's fog-of-war filtered view of the
// world — spec.md §6's `GET /state/{houseId}`. Locked against the
// same resource a turn advance mutates, so a client never observes a
// state half-way through resolution.
func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	houseID, err := parseHouseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var ps game.PlayerState
	var found bool
	s.locker.WithLock(stateResource, func() {
		if _, err := s.state.GetHouse(houseID); err != nil {
			return
		}
		found = true
		ps = game.ProjectPlayerState(s.state, houseID)
	})

	if !found {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown house %d", houseID))
		return
	}
	writeJSON(w, s.log, http.StatusOK, ps)
}

// handlePostOrders stores one house's order packet for the next turn
// advance, replacing any packet already queued for that house — spec.md
// §6's `POST /orders/{houseId}` and §6's "later packets replace earlier
// ones" rule.
func (s *Server) handlePostOrders(w http.ResponseWriter, r *http.Request) {
	houseID, err := parseHouseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var packet model.OrderPacket
	if err := json.NewDecoder(r.Body).Decode(&packet); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("decoding order packet: %v", err))
		return
	}
	packet.HouseID = houseID

	var unknownHouse bool
	s.locker.WithLock(stateResource, func() {
		if _, err := s.state.GetHouse(houseID); err != nil {
			unknownHouse = true
			return
		}
		s.mu.Lock()
		packet.Turn = s.state.Turn + 1
		s.pending[houseID] = packet
		s.mu.Unlock()
	})

	if unknownHouse {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown house %d", houseID))
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// turnAdvanceResult is the wire payload returned by a successful turn
// advance: the new turn number, the full event stream, and every house's
// refreshed projection.
type turnAdvanceResult struct {
	Turn        int                                `json:"turn"`
	Events      []model.GameEvent                  `json:"events"`
	Projections map[model.HouseID]game.PlayerState `json:"projections"`
}

// handlePostAdvanceTurn runs one turn against every currently queued
// order packet and clears the queue — spec.md §6's `POST /turn/advance`.
func (s *Server) handlePostAdvanceTurn(w http.ResponseWriter, r *http.Request) {
	result := s.advanceTurn()
	writeJSON(w, s.log, http.StatusOK, result)
}

// advanceTurn drains whatever order packets are currently queued and
// runs one turn, locked against the same resource the state-reading and
// order-submitting handlers use. Shared by the synchronous
// `POST /turn/advance` handler and the optional background ticker
// (cfg.Bridge.TickInterval).
func (s *Server) advanceTurn() turnAdvanceResult {
	var result turnAdvanceResult

	s.locker.WithLock(stateResource, func() {
		s.mu.Lock()
		orders := make([]model.OrderPacket, 0, len(s.pending))
		for _, packet := range s.pending {
			orders = append(orders, packet)
		}
		s.pending = make(map[model.HouseID]model.OrderPacket)
		seed := s.seed
		s.seed++
		s.mu.Unlock()

		events, projections := s.engine.AdvanceTurn(s.state, orders, seed)
		result = turnAdvanceResult{Turn: s.state.Turn, Events: events, Projections: projections}
	})

	return result
}

// AdvanceOnSchedule runs one turn advance and reports success for use as
// a background.Process operation; it never fails on its own account, so
// the process is never retried.
func (s *Server) AdvanceOnSchedule() (bool, error) {
	result := s.advanceTurn()
	s.log.Trace(logging.Info, moduleName, fmt.Sprintf("ticked turn %d (%d events)", result.Turn, len(result.Events)))
	return true, nil
}

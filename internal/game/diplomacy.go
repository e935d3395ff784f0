package game

import "ec4x_engine/internal/model"

// runDiplomacy applies every house's queued diplomatic actions, per
// spec.md §4.2 phase 9. Auto-escalation triggered by this turn's combat
// was already written during the Combat phase (combat.go); this phase
// only resolves house-initiated propose/accept/reject/break/declare/
// normalize actions.
func runDiplomacy(state *model.State, bound *BoundOrders, rec *Recorder) {
	for _, house := range state.ActiveHouses() {
		packet, ok := bound.ByHouse[house.ID]
		if !ok {
			continue
		}
		for _, action := range packet.Diplomacy {
			applyDiplomaticAction(state, house, action, rec)
		}
		_ = state.UpdateHouse(house)
	}
}

func applyDiplomaticAction(state *model.State, house *model.House, action model.DiplomaticAction, rec *Recorder) {
	peer, err := state.GetHouse(action.Peer)
	if err != nil {
		return
	}

	switch action.Kind {
	case model.Propose:
		rel := house.Relations[action.Peer]
		rel.PendingOffer = &model.DiplomaticOffer{From: house.ID, Target: action.Target, ProposedOn: state.Turn}
		house.Relations[action.Peer] = rel

	case model.Accept:
		rel := peer.Relations[house.ID]
		if rel.PendingOffer == nil || rel.PendingOffer.From == house.ID {
			return
		}
		setRelation(house, action.Peer, rel.PendingOffer.Target, state.Turn)
		setRelation(peer, house.ID, rel.PendingOffer.Target, state.Turn)
		_ = state.UpdateHouse(peer)

	case model.Reject:
		rel := house.Relations[action.Peer]
		rel.PendingOffer = nil
		house.Relations[action.Peer] = rel

	case model.Break:
		setRelation(house, action.Peer, model.Neutral, state.Turn)

	case model.Declare:
		setRelation(house, action.Peer, model.AtWar, state.Turn)
		setRelation(peer, house.ID, model.AtWar, state.Turn)
		_ = state.UpdateHouse(peer)
		sysID := model.SystemID(0)
		rec.Emit(model.DiplomaticEscalationEvent, &sysID, []model.HouseID{house.ID, peer.ID}, map[string]interface{}{
			"from": house.ID, "to": peer.ID, "state": model.AtWar.String(),
		})

	case model.Normalize:
		setRelation(house, action.Peer, model.Normalized, state.Turn)
	}
}

func setRelation(h *model.House, peer model.HouseID, state model.DiplomaticState, turn int) {
	rel := h.Relations[peer]
	rel.State = state
	rel.SinceTurn = turn
	rel.PendingOffer = nil
	h.Relations[peer] = rel
}

// escalate moves a relation monotonically toward a target state if the
// current state ranks lower, per spec.md §4.7's auto-escalation rule.
// Never de-escalates during combat resolution.
func escalate(h *model.House, peer model.HouseID, target model.DiplomaticState, turn int) {
	rel := h.Relations[peer]
	if target > rel.State {
		rel.State = target
		rel.SinceTurn = turn
		h.Relations[peer] = rel
	}
}

package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ec4x_engine/internal/model"
)

func newTestFleetWithShip(t *testing.T, state *model.State, owner model.HouseID, sys model.SystemID) (*model.Fleet, *model.Squadron, *model.Ship) {
	t.Helper()

	fleet := &model.Fleet{ID: state.NextFleetID(), OwnerID: owner, SystemID: sys}
	require.NoError(t, state.AddFleet(fleet))

	ship := &model.Ship{ID: state.NextShipID(), Class: "Scout"}
	sq := &model.Squadron{ID: state.NextSquadronID(), FleetID: fleet.ID, Type: model.CombatSquadronType, Flagship: ship.ID}
	ship.SquadronID = sq.ID

	require.NoError(t, state.AddSquadron(sq))
	require.NoError(t, state.AddShip(ship))

	return fleet, sq, ship
}

func TestRemoveFleetCascadesToSquadronsAndShips(t *testing.T) {
	state := model.NewState()
	fleet, sq, ship := newTestFleetWithShip(t, state, 1, 100)

	require.NoError(t, state.RemoveFleet(fleet.ID))

	_, err := state.GetFleet(fleet.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, err = state.GetSquadron(sq.ID)
	assert.ErrorIs(t, err, model.ErrNotFound, "removing a fleet must remove its squadrons")
	_, err = state.GetShip(ship.ID)
	assert.ErrorIs(t, err, model.ErrNotFound, "removing a fleet must remove its squadrons' ships")
}

func TestRemoveShipDetachesFromIndexOnly(t *testing.T) {
	state := model.NewState()
	_, sq, ship := newTestFleetWithShip(t, state, 1, 100)

	require.NoError(t, state.RemoveShip(ship.ID))

	_, err := state.GetShip(ship.ID)
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.Empty(t, state.ShipsInSquadron(sq.ID), "the membership index must drop the removed ship")

	// The squadron row itself survives until its caller updates or removes
	// it; RemoveShip only tears down the ship row and its index entry.
	_, err = state.GetSquadron(sq.ID)
	assert.NoError(t, err)
}

package game

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ec4x_engine/internal/config"
	"ec4x_engine/internal/model"
)

func TestUpdateBlockadesEstablishesAndLifts(t *testing.T) {
	state := model.NewState()

	registry := model.NewRegistry("ships")
	require.NoError(t, registry.Register(model.ClassDesc{Name: "Raider", AttackStrength: 5}))
	state.ShipClasses = registry

	houseA := model.NewHouse(state.NextHouseID(), "A")
	houseB := model.NewHouse(state.NextHouseID(), "B")
	houseA.Relations[houseB.ID] = model.Relation{State: model.Enemy}
	require.NoError(t, state.AddHouse(houseA))
	require.NoError(t, state.AddHouse(houseB))

	var sysID model.SystemID = 1
	colony := &model.Colony{ID: state.NextColonyID(), SystemID: sysID, OwnerID: houseA.ID, TaxRate: 1}
	require.NoError(t, state.AddColony(colony))

	fleet := &model.Fleet{ID: state.NextFleetID(), OwnerID: houseB.ID, SystemID: sysID}
	require.NoError(t, state.AddFleet(fleet))
	ship := &model.Ship{ID: state.NextShipID(), Class: "Raider"}
	sq := &model.Squadron{ID: state.NextSquadronID(), FleetID: fleet.ID, Type: model.CombatSquadronType, Flagship: ship.ID}
	ship.SquadronID = sq.ID
	require.NoError(t, state.AddSquadron(sq))
	require.NoError(t, state.AddShip(ship))

	rec := NewRecorder(1)
	updateBlockades(state, rec)

	refreshed, err := state.GetColony(colony.ID)
	require.NoError(t, err)
	assert.True(t, refreshed.Blockaded)
	assert.Equal(t, []model.HouseID{houseB.ID}, refreshed.BlockadedBy)
	assert.Equal(t, 1, refreshed.BlockadeTurns)

	found := false
	for _, ev := range rec.Events {
		if ev.Kind == model.BlockadeEstablishedEvent {
			found = true
		}
	}
	assert.True(t, found, "establishing a blockade should emit BlockadeEstablishedEvent")

	// Lift it: destroy the blockading ship.
	ship.State = model.Destroyed
	require.NoError(t, state.UpdateShip(ship))

	rec2 := NewRecorder(2)
	updateBlockades(state, rec2)

	refreshed, err = state.GetColony(colony.ID)
	require.NoError(t, err)
	assert.False(t, refreshed.Blockaded)
	assert.Empty(t, refreshed.BlockadedBy)

	lifted := false
	for _, ev := range rec2.Events {
		if ev.Kind == model.BlockadeLiftedEvent {
			lifted = true
		}
	}
	assert.True(t, lifted)
}

func TestUpdateBlockadesIgnoresNonHostileFleets(t *testing.T) {
	state := model.NewState()

	registry := model.NewRegistry("ships")
	require.NoError(t, registry.Register(model.ClassDesc{Name: "Raider", AttackStrength: 5}))
	state.ShipClasses = registry

	houseA := model.NewHouse(state.NextHouseID(), "A")
	houseB := model.NewHouse(state.NextHouseID(), "B")
	require.NoError(t, state.AddHouse(houseA))
	require.NoError(t, state.AddHouse(houseB))

	var sysID model.SystemID = 1
	colony := &model.Colony{ID: state.NextColonyID(), SystemID: sysID, OwnerID: houseA.ID}
	require.NoError(t, state.AddColony(colony))

	fleet := &model.Fleet{ID: state.NextFleetID(), OwnerID: houseB.ID, SystemID: sysID}
	require.NoError(t, state.AddFleet(fleet))
	ship := &model.Ship{ID: state.NextShipID(), Class: "Raider"}
	sq := &model.Squadron{ID: state.NextSquadronID(), FleetID: fleet.ID, Type: model.CombatSquadronType, Flagship: ship.ID}
	ship.SquadronID = sq.ID
	require.NoError(t, state.AddSquadron(sq))
	require.NoError(t, state.AddShip(ship))

	updateBlockades(state, NewRecorder(1))

	refreshed, err := state.GetColony(colony.ID)
	require.NoError(t, err)
	assert.False(t, refreshed.Blockaded, "a merely-Neutral fleet's presence must not establish a blockade")
}

func TestNetColonyOutputAppliesBlockadePenalty(t *testing.T) {
	colony := &model.Colony{PopulationUnits: 10, InfrastructureLv: 0, IndustrialUnits: 0, ResourceRating: 10, TaxRate: 1, Class: model.Terran}
	econ := config.Economy{BaseOutputPerPU: 1, MaxTaxRate: 1}

	unblockaded := netColonyOutput(colony, econ)

	colony.Blockaded = true
	blockaded := netColonyOutput(colony, econ)

	assert.True(t, blockaded.Equal(unblockaded.Mul(decimal.NewFromFloat(0.6))))
}

package game_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ec4x_engine/internal/game"
	"ec4x_engine/internal/model"
)

func TestProjectPlayerStateVisibilityTiers(t *testing.T) {
	state := model.NewState()
	state.InitStarMap(2)

	var hubID model.SystemID
	for id, sys := range state.Map.Systems {
		if sys.Coord.Ring() == 0 {
			hubID = id
		}
	}
	var neighborID model.SystemID
	for id := range state.Map.Systems[hubID].Lanes {
		neighborID = id
		break
	}
	var farID model.SystemID
	for id, sys := range state.Map.Systems {
		if sys.Coord.Ring() == 2 {
			farID = id
			break
		}
	}

	houseA := model.NewHouse(state.NextHouseID(), "A")
	require.NoError(t, state.AddHouse(houseA))
	houseB := model.NewHouse(state.NextHouseID(), "B")
	require.NoError(t, state.AddHouse(houseB))
	houseC := model.NewHouse(state.NextHouseID(), "C")
	require.NoError(t, state.AddHouse(houseC))

	colonyA := &model.Colony{ID: state.NextColonyID(), SystemID: hubID, OwnerID: houseA.ID}
	require.NoError(t, state.AddColony(colonyA))
	colonyB := &model.Colony{ID: state.NextColonyID(), SystemID: hubID, OwnerID: houseB.ID}
	require.NoError(t, state.AddColony(colonyB))
	colonyC := &model.Colony{ID: state.NextColonyID(), SystemID: neighborID, OwnerID: houseC.ID}
	require.NoError(t, state.AddColony(colonyC))
	colonyFar := &model.Colony{ID: state.NextColonyID(), SystemID: farID, OwnerID: houseC.ID}
	require.NoError(t, state.AddColony(colonyFar))

	ps := game.ProjectPlayerState(state, houseA.ID)

	require.Len(t, ps.OwnedColonies, 1)
	assert.Equal(t, colonyA.ID, ps.OwnedColonies[0].ID)

	require.Len(t, ps.VisibleEnemyColonies, 1, "colony co-located in an Owned system is fully visible")
	assert.Equal(t, colonyB.ID, ps.VisibleEnemyColonies[0].ID)

	hubIntel, ok := ps.Intel[hubID]
	require.True(t, ok)
	assert.Equal(t, model.VisibilityOwned, hubIntel.Visibility)
	assert.Len(t, hubIntel.Colonies, 2)

	neighborIntel, ok := ps.Intel[neighborID]
	require.True(t, ok)
	assert.Equal(t, model.VisibilityAdjacent, neighborIntel.Visibility)
	assert.Empty(t, neighborIntel.Colonies, "adjacent systems reveal existence, not contents")

	_, ok = ps.Intel[farID]
	assert.False(t, ok, "a system two lanes out with no presence is entirely unknown")

	assert.Equal(t, []model.SystemID{hubID}, ps.KnownEnemyColonySystems)

	assert.Equal(t, 1, ps.ColonyCounts[houseA.ID])
	assert.Equal(t, 1, ps.ColonyCounts[houseB.ID])
	assert.Equal(t, 2, ps.ColonyCounts[houseC.ID])
}

func TestProjectPlayerStateUnknownHouseReturnsEmpty(t *testing.T) {
	state := model.NewState()
	state.InitStarMap(1)

	ps := game.ProjectPlayerState(state, model.HouseID(999))
	assert.Equal(t, model.HouseID(999), ps.HouseID)
	assert.Empty(t, ps.OwnedColonies)
}

func TestProjectPlayerStateIntelPersistsAcrossCalls(t *testing.T) {
	state := model.NewState()
	state.InitStarMap(1)

	var hubID model.SystemID
	for id, sys := range state.Map.Systems {
		if sys.Coord.Ring() == 0 {
			hubID = id
		}
	}

	house := model.NewHouse(state.NextHouseID(), "A")
	require.NoError(t, state.AddHouse(house))
	colony := &model.Colony{ID: state.NextColonyID(), SystemID: hubID, OwnerID: house.ID}
	require.NoError(t, state.AddColony(colony))

	game.ProjectPlayerState(state, house.ID)

	refreshed, err := state.GetHouse(house.ID)
	require.NoError(t, err)
	entry, ok := refreshed.Intel.Get(hubID)
	require.True(t, ok, "projection persists the refreshed intel onto the house record")
	assert.Equal(t, model.VisibilityOwned, entry.Visibility)
}

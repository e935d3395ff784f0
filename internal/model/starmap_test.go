package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ec4x_engine/internal/model"
)

func TestHexCoordRing(t *testing.T) {
	assert.Equal(t, 0, model.HexCoord{Q: 0, R: 0}.Ring())
	assert.Equal(t, 1, model.HexCoord{Q: 1, R: 0}.Ring())
	assert.Equal(t, 2, model.HexCoord{Q: 2, R: 0}.Ring())
	assert.Equal(t, 2, model.HexCoord{Q: 1, R: 1}.Ring())
}

func TestStarMapSystemCount(t *testing.T) {
	for playerCount := 1; playerCount <= 4; playerCount++ {
		state := model.NewState()
		state.InitStarMap(playerCount)

		want := 1 + 3*playerCount*(playerCount+1)
		assert.Equal(t, want, len(state.Map.Systems), "player count %d", playerCount)
	}
}

func TestStarMapHubHasSixMajorLanes(t *testing.T) {
	state := model.NewState()
	state.InitStarMap(3)

	var hub *model.System
	for _, sys := range state.Map.Systems {
		if sys.Coord.Ring() == 0 {
			hub = sys
		}
	}
	require.NotNil(t, hub)
	assert.Len(t, hub.Lanes, 6)
	for _, laneType := range hub.Lanes {
		assert.Equal(t, model.Major, laneType)
	}
}

func TestStarMapLanesAreSymmetric(t *testing.T) {
	state := model.NewState()
	state.InitStarMap(2)

	for id, sys := range state.Map.Systems {
		for neighbor, laneType := range sys.Lanes {
			peer, ok := state.Map.Systems[neighbor]
			require.True(t, ok)
			peerType, ok := peer.Lanes[id]
			require.True(t, ok, "system %d missing reciprocal lane to %d", neighbor, id)
			assert.Equal(t, laneType, peerType)
		}
	}
}

func TestSetLaneRejectsNonAdjacentSystems(t *testing.T) {
	state := model.NewState()
	state.InitStarMap(3)

	var hub *model.System
	var farthest model.SystemID
	maxRing := -1
	for id, sys := range state.Map.Systems {
		if sys.Coord.Ring() == 0 {
			hub = sys
		}
		if sys.Coord.Ring() > maxRing {
			maxRing = sys.Coord.Ring()
			farthest = id
		}
	}
	require.NotNil(t, hub)

	err := state.Map.SetLane(hub.ID, farthest, model.Restricted)
	assert.Error(t, err)
}

func TestVertexCellsHaveExactlyThreeNeighbors(t *testing.T) {
	state := model.NewState()
	state.InitStarMap(3)

	vertices := state.Map.VertexCells(3)
	require.NotEmpty(t, vertices)

	for _, id := range vertices {
		sys := state.Map.Systems[id]
		assert.Equal(t, 3, len(sys.Lanes), "vertex cell %d should have exactly 3 neighbors", id)
	}
}

func TestOuterRingIsAtMaxRing(t *testing.T) {
	state := model.NewState()
	state.InitStarMap(2)

	outer := state.Map.OuterRing()
	require.NotEmpty(t, outer)
	for _, id := range outer {
		assert.Equal(t, 2, state.Map.Systems[id].Coord.Ring())
	}
}

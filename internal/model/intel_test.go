package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ec4x_engine/internal/model"
)

func TestIntelDatabaseRecordNewEntry(t *testing.T) {
	db := model.NewIntelDatabase()

	colonies := map[model.ColonyID]model.ColonySnapshot{
		1: {ColonyID: 1, OwnerID: 7, PopulationUnits: 3.5, InfrastructureLv: 2, LastTurnUpdated: 4},
	}
	db.Record(10, model.VisibilityOwned, 4, colonies, nil)

	entry, ok := db.Get(10)
	require.True(t, ok)
	assert.Equal(t, model.VisibilityOwned, entry.Visibility)
	assert.Equal(t, 4, entry.LastScoutedTurn)
	assert.Equal(t, colonies, entry.Colonies)
}

func TestIntelDatabaseRecordNeverDowngradesVisibility(t *testing.T) {
	db := model.NewIntelDatabase()

	db.Record(10, model.VisibilityOwned, 1, nil, nil)
	db.Record(10, model.VisibilityAdjacent, 2, nil, nil)

	entry, ok := db.Get(10)
	require.True(t, ok)
	assert.Equal(t, model.VisibilityOwned, entry.Visibility)
	assert.Equal(t, 2, entry.LastScoutedTurn, "last-scouted turn still advances even when visibility doesn't regress")
}

func TestIntelDatabaseRecordUpgradesVisibility(t *testing.T) {
	db := model.NewIntelDatabase()

	db.Record(10, model.VisibilityAdjacent, 1, nil, nil)
	db.Record(10, model.VisibilityOccupied, 2, nil, nil)

	entry, ok := db.Get(10)
	require.True(t, ok)
	assert.Equal(t, model.VisibilityOccupied, entry.Visibility)
}

func TestIntelDatabaseGetMissing(t *testing.T) {
	db := model.NewIntelDatabase()
	_, ok := db.Get(99)
	assert.False(t, ok)
}

func TestVisibilityLevelString(t *testing.T) {
	cases := map[model.VisibilityLevel]string{
		model.VisibilityNone:     "none",
		model.VisibilityAdjacent: "adjacent",
		model.VisibilityScouted:  "scouted",
		model.VisibilityOccupied: "occupied",
		model.VisibilityOwned:    "owned",
	}
	for level, want := range cases {
		assert.Equal(t, want, level.String())
	}
}

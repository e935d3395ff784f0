package model_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ec4x_engine/internal/model"
)

func TestRegistryRegisterAndGet(t *testing.T) {
	reg := model.NewRegistry("ships")

	desc := model.ClassDesc{
		Name:            "Scout",
		FixedCostPP:     decimal.NewFromInt(20),
		BuildTurns:      1,
		AttackStrength:  2,
		DefenseStrength: 4,
	}
	require.NoError(t, reg.Register(desc))

	got, ok := reg.Get("Scout")
	require.True(t, ok)
	assert.Equal(t, desc.FixedCostPP, got.FixedCostPP)
	assert.Contains(t, reg.Names(), "Scout")
}

func TestRegistryRegisterDuplicateRejected(t *testing.T) {
	reg := model.NewRegistry("ships")
	desc := model.ClassDesc{Name: "Scout"}

	require.NoError(t, reg.Register(desc))
	err := reg.Register(desc)
	assert.ErrorIs(t, err, model.ErrDuplicateClass)
}

func TestRegistryGetMissingNotOK(t *testing.T) {
	reg := model.NewRegistry("ships")
	_, ok := reg.Get("Nonexistent")
	assert.False(t, ok)
}

func TestProgressiveCostAtLevel(t *testing.T) {
	cost := model.ProgressiveCost{
		InitCosts:       map[string]decimal.Decimal{"RP": decimal.NewFromInt(100)},
		ProgressionRule: decimal.NewFromFloat(1.5),
	}

	assert.True(t, cost.CostAtLevel(0)["RP"].Equal(decimal.NewFromInt(100)))
	assert.True(t, cost.CostAtLevel(1)["RP"].Equal(decimal.NewFromFloat(150)))
	assert.True(t, cost.CostAtLevel(2)["RP"].Equal(decimal.NewFromFloat(225)))
}

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngredientsValueNilIsNull(t *testing.T) {
	var ings Ingredients
	v, err := ings.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestIngredientsScan(t *testing.T) {
	var ings Ingredients
	require.NoError(t, ings.Scan([]byte(`[{"name":"Paneer","quantity":"200g"}]`)))
	require.Len(t, ings, 1)
	assert.Equal(t, "Paneer", ings[0].Name)
	assert.Equal(t, "200g", ings[0].Quantity)
}

func TestScanNullLeavesSliceAbsent(t *testing.T) {
	var tips JSONBStringArray
	require.NoError(t, tips.Scan(nil))
	assert.Nil(t, tips)

	require.NoError(t, tips.Scan("null"))
	assert.Nil(t, tips)
}

func TestScanRejectsUnknownSource(t *testing.T) {
	var steps Instructions
	assert.Error(t, steps.Scan(42))
}

func TestClampRating(t *testing.T) {
	assert.Equal(t, 1, ClampRating(0))
	assert.Equal(t, 1, ClampRating(-3))
	assert.Equal(t, 4, ClampRating(4))
	assert.Equal(t, 5, ClampRating(9))
}

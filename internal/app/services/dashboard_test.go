package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildCategoryRatios_Empty(t *testing.T) {
	total, ratios := buildCategoryRatios(map[string]int{})

	assert.Equal(t, 0, total)
	assert.Empty(t, ratios)
}

func TestBuildCategoryRatios_SortedByCountThenCategory(t *testing.T) {
	total, ratios := buildCategoryRatios(map[string]int{
		"cafe":    2,
		"korean":  5,
		"dessert": 2,
		"ramen":   1,
	})

	assert.Equal(t, 10, total)
	assert.Len(t, ratios, 4)

	assert.Equal(t, "korean", ratios[0].Category)
	assert.Equal(t, 5, ratios[0].Count)
	assert.InDelta(t, 0.5, ratios[0].Ratio, 1e-9)

	// Equal counts fall back to alphabetical order
	assert.Equal(t, "cafe", ratios[1].Category)
	assert.Equal(t, "dessert", ratios[2].Category)
	assert.Equal(t, "ramen", ratios[3].Category)
}

func TestBuildCategoryRatios_SumToOne(t *testing.T) {
	_, ratios := buildCategoryRatios(map[string]int{
		"a": 1,
		"b": 2,
		"c": 3,
	})

	sum := 0.0
	for _, r := range ratios {
		sum += r.Ratio
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
}

func TestBuildCategoryWeights_SortedAndNormalized(t *testing.T) {
	weights := buildCategoryWeights(map[string]int{
		"CE7": 6,
		"FD6": 3,
		"CS2": 1,
	})

	assert.Len(t, weights, 3)
	assert.Equal(t, "CE7", weights[0].Category)
	assert.InDelta(t, 0.6, weights[0].Weight, 1e-9)
	assert.Equal(t, "FD6", weights[1].Category)
	assert.Equal(t, "CS2", weights[2].Category)
}

func TestBuildCategoryWeights_Empty(t *testing.T) {
	assert.Empty(t, buildCategoryWeights(nil))
}

package collection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapFilterSum(t *testing.T) {
	quantities := []int{2, 1, 4}

	doubled := Map(quantities, func(q int) int { return q * 2 })
	assert.Equal(t, []int{4, 2, 8}, doubled)

	big := Filter(quantities, func(q int) bool { return q > 1 })
	assert.Equal(t, []int{2, 4}, big)

	assert.Equal(t, 7.0, Sum(quantities, func(q int) float64 { return float64(q) }))
}

func TestGroupByAndKeyBy(t *testing.T) {
	type item struct {
		Category string
		Name     string
	}
	items := []item{
		{"Strength", "Barbell"},
		{"Cardio", "Bike"},
		{"Strength", "Dumbbell"},
	}

	grouped := GroupBy(items, func(i item) string { return i.Category })
	assert.Len(t, grouped["Strength"], 2)
	assert.Len(t, grouped["Cardio"], 1)

	keyed := KeyBy(items, func(i item) string { return i.Name })
	assert.Equal(t, "Cardio", keyed["Bike"].Category)
}

func TestUniqueAndChunk(t *testing.T) {
	assert.Equal(t, []int{1, 2, 3}, Unique([]int{1, 2, 2, 3, 1}))

	chunks := Chunk([]int{1, 2, 3, 4, 5}, 2)
	assert.Equal(t, [][]int{{1, 2}, {3, 4}, {5}}, chunks)
}

package cart

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safsequence/Avance-Fragrance/internal/models"
)

func product(id uint, price string) models.Product {
	return models.Product{ID: id, Name: "P", Price: models.NewFixed(decimal.RequireFromString(price))}
}

func TestReduce_AddMergesAndTotals(t *testing.T) {
	t.Parallel()

	oud := product(1, "1500.00")
	rose := product(2, "899.50")

	s := Reduce(State{}, AddItem{Product: oud})
	s = Reduce(s, AddItem{Product: rose, Quantity: 2})
	s = Reduce(s, AddItem{Product: oud, Quantity: 3})

	require.Len(t, s.Items, 2)
	assert.Equal(t, 4, s.Items[0].Quantity)
	assert.Equal(t, 2, s.Items[1].Quantity)
	assert.Equal(t, 6, s.ItemCount())
	assert.True(t, decimal.RequireFromString("7799").Equal(s.Total), s.Total.String())
}

func TestReduce_IsPure(t *testing.T) {
	t.Parallel()

	before := Reduce(State{}, AddItem{Product: product(1, "10"), Quantity: 1})
	after := Reduce(before, AddItem{Product: product(1, "10"), Quantity: 1})

	assert.Equal(t, 1, before.Items[0].Quantity)
	assert.Equal(t, 2, after.Items[0].Quantity)
}

func TestReduce_UpdateAndRemove(t *testing.T) {
	t.Parallel()

	s := Reduce(State{}, AddItem{Product: product(1, "10"), Quantity: 2})
	s = Reduce(s, AddItem{Product: product(2, "5"), Quantity: 1})

	tests := []struct {
		name      string
		action    Action
		wantCount int
		wantTotal string
		wantLines int
	}{
		{"update quantity", UpdateQuantity{ProductID: 1, Quantity: 5}, 6, "55", 2},
		{"zero quantity removes", UpdateQuantity{ProductID: 1, Quantity: 0}, 1, "5", 1},
		{"negative quantity removes", UpdateQuantity{ProductID: 2, Quantity: -1}, 2, "20", 1},
		{"unknown id is a no-op", UpdateQuantity{ProductID: 9, Quantity: 3}, 3, "25", 2},
		{"remove", RemoveItem{ProductID: 2}, 2, "20", 1},
		{"clear", Clear{}, 0, "0", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reduce(s, tt.action)
			assert.Equal(t, tt.wantCount, got.ItemCount())
			assert.True(t, decimal.RequireFromString(tt.wantTotal).Equal(got.Total), got.Total.String())
			assert.Len(t, got.Items, tt.wantLines)
		})
	}
}

func TestReduce_Open(t *testing.T) {
	t.Parallel()

	s := Reduce(State{}, Toggle{})
	assert.True(t, s.IsOpen)
	s = Reduce(s, Toggle{})
	assert.False(t, s.IsOpen)
	s = Reduce(s, SetOpen{Open: true})
	assert.True(t, s.IsOpen)
	assert.Equal(t, s, Reduce(s, nil))
}

func TestState_JSON(t *testing.T) {
	t.Parallel()

	s := Reduce(State{}, AddItem{Product: product(3, "250.00"), Quantity: 2})
	raw, err := json.Marshal(s)
	require.NoError(t, err)

	var back State
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, s.ItemCount(), back.ItemCount())
	assert.True(t, s.Total.Equal(back.Total))
	assert.Equal(t, uint(3), back.Items[0].Product.ID)
}

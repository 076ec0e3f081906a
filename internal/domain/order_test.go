package domain

import (
	"encoding/json"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Feature: checkout, Property: order total is the sum of price x quantity
func TestProperty_TotalIsSumOfSubtotals(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("total equals sum of item price times quantity", prop.ForAll(
		func(cents []int, quantities []int) bool {
			n := len(cents)
			if len(quantities) < n {
				n = len(quantities)
			}

			items := make([]LineItem, n)
			var expected int64
			for i := 0; i < n; i++ {
				items[i] = LineItem{
					ProductID: "p",
					Name:      "item",
					Price:     decimal.New(int64(cents[i]), -2),
					Quantity:  quantities[i],
				}
				expected += int64(cents[i]) * int64(quantities[i])
			}

			total := Total(items)
			if !total.Equal(decimal.New(expected, -2)) {
				t.Logf("FAIL: expected %d cents, got %s", expected, total)
				return false
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 5000000)),
		gen.SliceOf(gen.IntRange(1, 50)),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestOrderJSONUsesNumbersForMoney(t *testing.T) {
	order := Order{
		ID:     "1",
		Name:   "Dilnoza",
		Phone:  "+998901234567",
		Items:  []LineItem{{ProductID: "p1", Name: "Bra", Price: decimal.NewFromInt(150000), Quantity: 2}},
		Total:  decimal.NewFromInt(300000),
		Status: StatusNew,
	}

	data, err := json.Marshal(order)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"total":300000`)
	assert.Contains(t, string(data), `"price":150000`)

	var decoded Order
	require.NoError(t, json.Unmarshal([]byte(`{"id":"7","total":"1200.50","items":[{"productId":"p","price":12.5,"quantity":3}]}`), &decoded))
	assert.True(t, decoded.Total.Equal(decimal.RequireFromString("1200.50")))
	assert.True(t, decoded.Items[0].Subtotal().Equal(decimal.RequireFromString("37.5")))
	assert.Equal(t, 3, decoded.ItemCount())
}

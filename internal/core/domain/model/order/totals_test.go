package order_test

import (
	"testing"

	"orders/internal/core/domain/model/order"

	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateTotals(t *testing.T) {
	testCases := []struct {
		name           string
		items          []order.Item
		expectedAmount string
		expectedItems  int
	}{
		{
			name:           "empty items",
			items:          nil,
			expectedAmount: "0",
			expectedItems:  0,
		},
		{
			name:           "single item",
			items:          []order.Item{mustItem(t, 2, "10.00")},
			expectedAmount: "20.00",
			expectedItems:  2,
		},
		{
			name: "multiple items",
			items: []order.Item{
				mustItem(t, 2, "10.00"),
				mustItem(t, 1, "0.99"),
				mustItem(t, 10, "2.50"),
			},
			expectedAmount: "45.99",
			expectedItems:  13,
		},
		{
			name:           "zero priced item still counts units",
			items:          []order.Item{mustItem(t, 4, "0")},
			expectedAmount: "0",
			expectedItems:  4,
		},
		{
			name: "cent amounts do not accumulate drift",
			items: []order.Item{
				mustItem(t, 3, "0.10"),
				mustItem(t, 3, "0.20"),
			},
			expectedAmount: "0.90",
			expectedItems:  6,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			totals, err := order.CalculateTotals(tc.items)

			require.NoError(t, err)
			expected, parseErr := decimal.Parse(tc.expectedAmount)
			require.NoError(t, parseErr)
			assert.Zero(t, totals.Amount.Cmp(expected),
				"expected %s, got %s", expected, totals.Amount)
			assert.Equal(t, tc.expectedItems, totals.Items)
		})
	}
}

package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name           string
		items          []PricedItem
		taxRate        float64
		deliveryCharge float64
		discount       float64
		want           Totals
	}{
		{
			name:  "no items",
			items: nil,
			want:  Totals{},
		},
		{
			name:    "plain subtotal",
			items:   []PricedItem{{Price: 120, Quantity: 2}, {Price: 60, Quantity: 1}},
			taxRate: 0,
			want:    Totals{Subtotal: 300, Total: 300},
		},
		{
			name:           "delivery order with tax",
			items:          []PricedItem{{Price: 250, Quantity: 2}},
			taxRate:        5,
			deliveryCharge: 30,
			want:           Totals{Subtotal: 500, Tax: 25, DeliveryCharge: 30, Total: 555},
		},
		{
			name:           "delivery order with tax and percentage coupon",
			items:          []PricedItem{{Price: 250, Quantity: 2}},
			taxRate:        5,
			deliveryCharge: 30,
			discount:       50,
			want:           Totals{Subtotal: 500, Tax: 25, DeliveryCharge: 30, Discount: 50, Total: 505},
		},
		{
			name:     "discount exceeding order clamps total to zero",
			items:    []PricedItem{{Price: 40, Quantity: 1}},
			discount: 100,
			want:     Totals{Subtotal: 40, Discount: 100, Total: 0},
		},
		{
			name:    "rounding happens once at the end",
			items:   []PricedItem{{Price: 3.33, Quantity: 3}},
			taxRate: 7.5,
			want:    Totals{Subtotal: 9.99, Tax: 0.75, Total: 10.74},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			got := ComputeTotals(testCase.items, testCase.taxRate, testCase.deliveryCharge, testCase.discount)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func TestComputeTotalsIsDeterministic(t *testing.T) {
	items := []PricedItem{{Price: 19.99, Quantity: 3}, {Price: 4.5, Quantity: 2}}

	first := ComputeTotals(items, 12.5, 25, 10)
	second := ComputeTotals(items, 12.5, 25, 10)

	assert.Equal(t, first, second)
	assert.GreaterOrEqual(t, first.Total, 0.0)
	assert.InDelta(t, first.Subtotal+first.Tax+first.DeliveryCharge-first.Discount, first.Total, 0.001)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 10.57, Round2(10.567))
	assert.Equal(t, 10.56, Round2(10.564))
	assert.Equal(t, 0.0, Round2(0))
}

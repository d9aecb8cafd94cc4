package services

import (
	"log"
	"math"
)

// PricedItem is the minimal view of a line item the pricing calculator needs.
type PricedItem struct {
	Price    float64
	Quantity int
}

// Totals is the result of composing subtotal, tax, delivery charge and
// discount for an order.
type Totals struct {
	Subtotal       float64
	Tax            float64
	DeliveryCharge float64
	Discount       float64
	Total          float64
}

// Round2 rounds a monetary value to 2 decimal places, half away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ComputeSubtotal sums price * quantity over all line items.
func ComputeSubtotal(items []PricedItem) float64 {
	subtotal := 0.0
	for _, item := range items {
		subtotal += item.Price * float64(item.Quantity)
	}
	return subtotal
}

// ComputeTotals composes the final order total. taxRatePercent and
// deliveryCharge must already reflect the cafe's settings and the order type
// (zero when disabled or not applicable). Rounding happens once at the end so
// intermediate terms don't compound rounding error. The total is floored at
// zero; a discount exceeding the order is a data-integrity problem, not a
// reason to bill a negative amount.
func ComputeTotals(items []PricedItem, taxRatePercent, deliveryCharge, discount float64) Totals {
	subtotal := ComputeSubtotal(items)
	tax := subtotal * taxRatePercent / 100

	total := subtotal + tax + deliveryCharge - discount
	if total < 0 {
		log.Printf("pricing: discount %.2f exceeds order value %.2f, clamping total to 0", discount, subtotal+tax+deliveryCharge)
		total = 0
	}

	return Totals{
		Subtotal:       Round2(subtotal),
		Tax:            Round2(tax),
		DeliveryCharge: Round2(deliveryCharge),
		Discount:       Round2(discount),
		Total:          Round2(total),
	}
}

package services

import "math"

// Round2 keeps money values at two fraction digits. Every computed
// amount passes through here before it is persisted.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// orderTotals computes subtotal, total discount and total amount from
// line items. Item discounts are expected to be clamped already. The
// delivery fee only applies when the order has at least one item.
func orderTotals(items []itemAmount, deliveryFee float64) (subtotal, discount, total float64) {
	for _, it := range items {
		subtotal += it.price
		discount += it.discount
	}
	if len(items) == 0 {
		deliveryFee = 0
	}
	subtotal = Round2(subtotal)
	discount = Round2(discount)
	total = Round2(subtotal - discount + deliveryFee)
	return subtotal, discount, total
}

type itemAmount struct {
	price    float64
	discount float64
}

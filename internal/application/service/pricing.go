package service

import "github.com/cutiefy/pos-api/internal/domain/enum"

// ApplyDiscount converts a discount policy into the amount taken off the
// subtotal. A flat discount is capped at the subtotal so the effective
// price can never go negative.
func ApplyDiscount(subtotal float64, kind enum.DiscountType, value float64) float64 {
	switch kind {
	case enum.DiscountPercentage:
		return subtotal * (value / 100)
	case enum.DiscountFlatAmount:
		if value > subtotal {
			return subtotal
		}
		return value
	default:
		return 0
	}
}

// FinalTotal is the amount payable: delivery is added after the discount,
// discounts never apply to delivery charges.
func FinalTotal(subtotal, discountAmount, deliveryCharge float64) float64 {
	return subtotal - discountAmount + deliveryCharge
}

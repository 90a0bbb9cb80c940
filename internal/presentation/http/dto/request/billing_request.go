package request

// StartSessionRequest opens a billing session for a customer. All fields
// are optional; a walk-in sale needs no identity at all.
type StartSessionRequest struct {
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
}

// AddToCartRequest adds units of one item to a session's cart.
type AddToCartRequest struct {
	ItemID   string `json:"item_id" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
}

// CheckoutRequest settles the session's cart into a sale.
// discount_type accepts "Percentage", "FlatAmount" or "None".
type CheckoutRequest struct {
	DiscountType   string  `json:"discount_type"`
	DiscountValue  float64 `json:"discount_value" binding:"min=0"`
	DeliveryCharge float64 `json:"delivery_charge" binding:"min=0"`
}

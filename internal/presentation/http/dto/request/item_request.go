package request

// CreateItemRequest is the payload for adding an inventory item.
type CreateItemRequest struct {
	ItemID            string  `json:"item_id" binding:"required"`
	Name              string  `json:"name" binding:"required"`
	PurchasePrice     float64 `json:"purchase_price"`
	SalePrice         float64 `json:"sale_price"`
	QuantityAvailable int     `json:"quantity_available"`
}

// UpdateItemRequest is the payload for editing an inventory item. All
// fields are optional; the business item_id itself cannot be changed.
type UpdateItemRequest struct {
	Name              *string  `json:"name"`
	PurchasePrice     *float64 `json:"purchase_price"`
	SalePrice         *float64 `json:"sale_price"`
	QuantityAvailable *int     `json:"quantity_available"`
}

// ItemFilterRequest contains query parameters for listing items.
type ItemFilterRequest struct {
	Page     int    `form:"page"`
	PerPage  int    `form:"per_page"`
	Search   string `form:"search"`
	LowStock bool   `form:"low_stock"`
}

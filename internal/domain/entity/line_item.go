package entity

// LineItem is one product-code/quantity pair requested for purchase.
type LineItem struct {
	ProductCode string `json:"product_code" validate:"required"`
	Quantity    int    `json:"quantity" validate:"gte=1"`
}

package request

// UpdateRowRequest replaces the raw inputs of a line row. Values are kept
// as typed; validation happens on submit.
type UpdateRowRequest struct {
	ProductCode string `json:"product_code"`
	Quantity    string `json:"quantity"`
}

// SetDenominationRequest records the count for one face value.
type SetDenominationRequest struct {
	Count *int `json:"count" binding:"required,min=0"`
}

// PaymentRequest sets the customer email and/or the paid amount. Omitted
// fields are left unchanged.
type PaymentRequest struct {
	CustomerEmail *string `json:"customer_email"`
	PaidAmount    *string `json:"paid_amount"`
}

// HistoryRequest looks up a customer's purchases.
type HistoryRequest struct {
	Email string `json:"email"`
}

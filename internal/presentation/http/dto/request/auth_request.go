package request

// LoginRequest represents an operator sign-in request
type LoginRequest struct {
	Operator string `json:"operator" binding:"required,max=64"`
	PIN      string `json:"pin" binding:"required,min=4,max=12"`
}

package response

import (
	"time"

	"github.com/sangkips/billing-console/internal/domain/entity"
	"github.com/sangkips/billing-console/internal/presentation/render"
)

// LoginResponse is returned after a successful operator sign-in.
type LoginResponse struct {
	Operator    string    `json:"operator"`
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// InvoiceResponse pairs the raw invoice with its display form.
type InvoiceResponse struct {
	Invoice *entity.InvoiceSummary `json:"invoice"`
	View    render.SummaryView     `json:"view"`
}

// PrintResponse reports a print job. Warning is set when the receipt was
// built but the printer failed.
type PrintResponse struct {
	PurchaseID int64  `json:"purchase_id"`
	Warning    string `json:"warning,omitempty"`
}

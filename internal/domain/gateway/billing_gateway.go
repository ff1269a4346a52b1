package gateway

import (
	"context"

	"github.com/sangkips/billing-console/internal/domain/entity"
)

// BillingGateway is the remote billing service as seen by the console.
// Implementations make a single attempt per call and are safe for
// concurrent use.
type BillingGateway interface {
	GenerateInvoice(ctx context.Context, req *entity.BillingRequest) (*entity.InvoiceSummary, error)
	FetchHistory(ctx context.Context, email string) ([]entity.PurchaseHistoryEntry, error)
	FetchInvoice(ctx context.Context, purchaseID int64) (*entity.InvoiceSummary, error)
}

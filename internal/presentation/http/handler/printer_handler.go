package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/sangkips/billing-console/internal/application/service"
	"github.com/sangkips/billing-console/internal/presentation/http/dto/response"
)

// PrinterHandler handles printer-related HTTP requests.
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler.
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// GetStatus returns the current printer connection status.
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	response.OK(c, "Printer status retrieved", h.printerService.GetStatus())
}

// PrintLastInvoice prints a receipt for the most recent invoice.
func (h *PrinterHandler) PrintLastInvoice(c *gin.Context) {
	summary, err := h.printerService.PrintLastInvoice(c.Request.Context())
	if err != nil {
		// The receipt was built but the printer failed; report it without
		// failing the request.
		if summary != nil {
			response.Outcome(c, false, "Receipt generated but printing failed", response.PrintResponse{
				PurchaseID: summary.PurchaseID,
				Warning:    err.Error(),
			})
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt printed successfully", response.PrintResponse{PurchaseID: summary.PurchaseID})
}

package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sangkips/billing-console/internal/application/service"
	"github.com/sangkips/billing-console/internal/presentation/http/dto/request"
	"github.com/sangkips/billing-console/internal/presentation/http/dto/response"
	"github.com/sangkips/billing-console/internal/presentation/render"
	"github.com/sangkips/billing-console/pkg/apperror"
)

const htmlContentType = "text/html; charset=utf-8"

// ConsoleHandler exposes the billing console commands over HTTP. Each route
// maps to one operator action.
type ConsoleHandler struct {
	controller *service.WorkflowController
	renderer   *render.Renderer
}

// NewConsoleHandler creates a new console handler
func NewConsoleHandler(controller *service.WorkflowController, renderer *render.Renderer) *ConsoleHandler {
	return &ConsoleHandler{controller: controller, renderer: renderer}
}

// GetScreen returns the current console state
func (h *ConsoleHandler) GetScreen(c *gin.Context) {
	response.OK(c, "Console state retrieved", h.controller.Screen())
}

// AddRow appends a blank line row
func (h *ConsoleHandler) AddRow(c *gin.Context) {
	h.dispatch(c, service.AddRow{}, "Row added")
}

// UpdateRow edits a line row
func (h *ConsoleHandler) UpdateRow(c *gin.Context) {
	index, ok := intParam(c, "index")
	if !ok {
		return
	}
	var req request.UpdateRowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	h.dispatch(c, service.UpdateRow{Index: index, ProductCode: req.ProductCode, Quantity: req.Quantity}, "Row updated")
}

// RemoveRow deletes a line row
func (h *ConsoleHandler) RemoveRow(c *gin.Context) {
	index, ok := intParam(c, "index")
	if !ok {
		return
	}
	h.dispatch(c, service.RemoveRow{Index: index}, "Row removed")
}

// SetDenomination records the count for one face value
func (h *ConsoleHandler) SetDenomination(c *gin.Context) {
	value, ok := intParam(c, "value")
	if !ok {
		return
	}
	var req request.SetDenominationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	h.dispatch(c, service.SetDenomination{Value: value, Count: *req.Count}, "Denomination updated")
}

// SetPayment updates the customer email and paid amount inputs
func (h *ConsoleHandler) SetPayment(c *gin.Context) {
	var req request.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	ctx := c.Request.Context()
	if req.CustomerEmail != nil {
		if _, err := h.controller.Dispatch(ctx, service.SetCustomerEmail{Email: *req.CustomerEmail}); err != nil {
			response.Error(c, err)
			return
		}
	}
	if req.PaidAmount != nil {
		if _, err := h.controller.Dispatch(ctx, service.SetPaidAmount{Amount: *req.PaidAmount}); err != nil {
			response.Error(c, err)
			return
		}
	}
	response.OK(c, "Payment updated", h.controller.Screen())
}

// Submit sends the bill to the billing service
// @Summary Generate invoice
// @Tags console
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /console/submit [post]
func (h *ConsoleHandler) Submit(c *gin.Context) {
	screen, err := h.controller.Dispatch(c.Request.Context(), service.Submit{})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Outcome(c, screen.Generate.State == service.StateSucceeded, screen.Generate.Status.Message, screen)
}

// Reset clears the billing form
func (h *ConsoleHandler) Reset(c *gin.Context) {
	h.dispatch(c, service.Reset{}, "Form reset")
}

// FetchHistory looks up a customer's purchases
func (h *ConsoleHandler) FetchHistory(c *gin.Context) {
	var req request.HistoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	screen, err := h.controller.Dispatch(c.Request.Context(), service.FetchHistory{Email: req.Email})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Outcome(c, screen.History.State == service.StateSucceeded, screen.History.Status.Message, screen)
}

// HistoryHTML returns the purchase history fragment
func (h *ConsoleHandler) HistoryHTML(c *gin.Context) {
	html, err := render.HistoryHTML(h.controller.Screen().PurchaseHistory)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Data(http.StatusOK, htmlContentType, []byte(html))
}

// GetInvoice returns the most recently generated invoice
func (h *ConsoleHandler) GetInvoice(c *gin.Context) {
	last := h.controller.LastInvoice()
	if last == nil {
		response.Error(c, apperror.NewNotFoundError("Invoice"))
		return
	}
	response.OK(c, "Invoice retrieved", response.InvoiceResponse{
		Invoice: last,
		View:    h.renderer.RenderSummary(last),
	})
}

// InvoiceHTML returns the invoice panel as currently displayed. An empty
// panel renders as an empty body.
func (h *ConsoleHandler) InvoiceHTML(c *gin.Context) {
	html, err := render.SummaryHTML(h.controller.Screen().Invoice)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Data(http.StatusOK, htmlContentType, []byte(html))
}

// InvoicePDF exports the most recent invoice as a PDF
func (h *ConsoleHandler) InvoicePDF(c *gin.Context) {
	last := h.controller.LastInvoice()
	if last == nil {
		response.Error(c, apperror.NewNotFoundError("Invoice"))
		return
	}
	var buf bytes.Buffer
	if err := h.renderer.SummaryPDF(h.renderer.RenderSummary(last), &buf); err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=invoice-%d.pdf", last.PurchaseID))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// LookupPurchase re-renders a past purchase from the billing service
func (h *ConsoleHandler) LookupPurchase(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "Invalid purchase ID")
		return
	}
	view, err := h.controller.LookupInvoice(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if c.Query("format") == "html" {
		html, err := render.SummaryHTML(view)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Data(http.StatusOK, htmlContentType, []byte(html))
		return
	}
	response.OK(c, "Purchase retrieved", view)
}

func (h *ConsoleHandler) dispatch(c *gin.Context, cmd service.Command, message string) {
	screen, err := h.controller.Dispatch(c.Request.Context(), cmd)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, message, screen)
}

func intParam(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		response.BadRequest(c, fmt.Sprintf("Invalid %s", name))
		return 0, false
	}
	return v, true
}

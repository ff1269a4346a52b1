package service

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/sangkips/billing-console/internal/domain/entity"
	"github.com/sangkips/billing-console/internal/domain/gateway"
	"github.com/sangkips/billing-console/internal/presentation/render"
	"github.com/sangkips/billing-console/pkg/apperror"
	"github.com/sangkips/billing-console/pkg/logger"
)

// Status messages shown by the console.
const (
	MsgGenerating         = "Generating invoice..."
	MsgInvoiceGenerated   = "Invoice generated successfully."
	MsgUnexpectedError    = "Unexpected error occurred."
	MsgFetchingHistory    = "Fetching history..."
	MsgHistoryUnavailable = "Unable to load history."
	MsgHistoryEmail       = "Provide an email address."
)

// WorkflowState is the lifecycle of one workflow (generate or history).
type WorkflowState string

const (
	StateIdle       WorkflowState = "idle"
	StateSubmitting WorkflowState = "submitting"
	StateSucceeded  WorkflowState = "succeeded"
	StateFailed     WorkflowState = "failed"
)

type StatusKind string

const (
	StatusNone    StatusKind = ""
	StatusSuccess StatusKind = "success"
	StatusError   StatusKind = "error"
)

// Status is the transient message displayed next to a form.
type Status struct {
	Message string     `json:"message"`
	Kind    StatusKind `json:"kind,omitempty"`
}

// WorkflowView is the externally visible part of a workflow.
type WorkflowView struct {
	State  WorkflowState `json:"state"`
	Status Status        `json:"status"`
}

// Command is an operator action consumed by Dispatch.
type Command interface{ commandName() string }

type (
	AddRow           struct{}
	RemoveRow        struct{ Index int }
	SetDenomination  struct{ Value, Count int }
	SetPaidAmount    struct{ Amount string }
	SetCustomerEmail struct{ Email string }
	Submit           struct{}
	Reset            struct{}
	FetchHistory     struct{ Email string }
)

// UpdateRow replaces the raw inputs of a line row.
type UpdateRow struct {
	Index       int
	ProductCode string
	Quantity    string
}

func (AddRow) commandName() string { return "add_row" }
func (RemoveRow) commandName() string { return "remove_row" }
func (UpdateRow) commandName() string { return "update_row" }
func (SetDenomination) commandName() string { return "set_denomination" }
func (SetPaidAmount) commandName() string { return "set_paid_amount" }
func (SetCustomerEmail) commandName() string { return "set_customer_email" }
func (Submit) commandName() string { return "submit" }
func (Reset) commandName() string { return "reset" }
func (FetchHistory) commandName() string { return "fetch_history" }

// Screen is a consistent snapshot of everything the console displays.
type Screen struct {
	Rows            []LineRow             `json:"rows"`
	Denominations   []DenominationCounter `json:"denominations"`
	CustomerEmail   string                `json:"customer_email"`
	PaidAmount      string                `json:"paid_amount"`
	Generate        WorkflowView          `json:"generate"`
	Invoice         render.SummaryView    `json:"invoice"`
	HistoryEmail    string                `json:"history_email"`
	History         WorkflowView          `json:"history"`
	PurchaseHistory render.HistoryView    `json:"purchase_history"`
}

type workflow struct {
	state  WorkflowState
	status Status
	seq    uint64
}

// begin moves the workflow into Submitting and returns the ticket that the
// eventual response must present.
func (w *workflow) begin(message string) uint64 {
	w.seq++
	w.state = StateSubmitting
	w.status = Status{Message: message, Kind: StatusSuccess}
	return w.seq
}

func (w *workflow) succeed(message string) {
	w.state = StateSucceeded
	w.status = Status{Message: message, Kind: StatusSuccess}
}

func (w *workflow) fail(message string) {
	w.state = StateFailed
	w.status = Status{Message: message, Kind: StatusError}
}

func (w *workflow) view() WorkflowView {
	return WorkflowView{State: w.state, Status: w.status}
}

// WorkflowController turns operator commands into billing requests and keeps
// the rendered results. Gateway calls run without holding the lock, so the
// generate and history workflows can be in flight at the same time. When a
// workflow is re-submitted before its previous call returns, the older
// response is discarded.
type WorkflowController struct {
	mu       sync.Mutex
	gateway  gateway.BillingGateway
	renderer *render.Renderer
	log      *zap.Logger

	lines         *LineItemCollector
	denominations *DenominationCollector
	customerEmail string
	paidAmount    string
	historyEmail  string

	generate workflow
	history  workflow

	invoiceView render.SummaryView
	historyView render.HistoryView
	lastInvoice *entity.InvoiceSummary
}

// NewWorkflowController creates a controller with one blank line row and a
// populated set of denomination counters.
func NewWorkflowController(gw gateway.BillingGateway, renderer *render.Renderer, log *zap.Logger) *WorkflowController {
	if log == nil {
		log = zap.NewNop()
	}
	return &WorkflowController{
		gateway:       gw,
		renderer:      renderer,
		log:           log,
		lines:         NewLineItemCollector(),
		denominations: NewDenominationCollector(),
		generate:      workflow{state: StateIdle},
		history:       workflow{state: StateIdle},
		invoiceView:   renderer.RenderSummary(nil),
	}
}

// Dispatch applies a command and returns the resulting screen. Only form
// edits return errors; workflow failures are reported through the status.
func (c *WorkflowController) Dispatch(ctx context.Context, cmd Command) (Screen, error) {
	var err error
	switch cmd := cmd.(type) {
	case AddRow:
		c.mu.Lock()
		c.lines.AddRow()
		c.mu.Unlock()
	case RemoveRow:
		c.mu.Lock()
		err = c.lines.RemoveRow(cmd.Index)
		c.mu.Unlock()
	case UpdateRow:
		c.mu.Lock()
		err = c.lines.UpdateRow(cmd.Index, cmd.ProductCode, cmd.Quantity)
		c.mu.Unlock()
	case SetDenomination:
		c.mu.Lock()
		err = c.denominations.SetCount(cmd.Value, cmd.Count)
		c.mu.Unlock()
	case SetPaidAmount:
		c.mu.Lock()
		c.paidAmount = cmd.Amount
		c.mu.Unlock()
	case SetCustomerEmail:
		c.mu.Lock()
		c.customerEmail = cmd.Email
		c.mu.Unlock()
	case Submit:
		c.submit(ctx)
	case Reset:
		c.reset()
	case FetchHistory:
		c.fetchHistory(ctx, cmd.Email)
	default:
		err = apperror.NewBadRequestError(fmt.Sprintf("unsupported command %T", cmd))
	}
	return c.Screen(), err
}

// LastInvoice returns the most recently generated invoice, or nil.
func (c *WorkflowController) LastInvoice() *entity.InvoiceSummary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastInvoice
}

// Screen returns a snapshot of the console state.
func (c *WorkflowController) Screen() Screen {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Screen{
		Rows:            c.lines.Rows(),
		Denominations:   c.denominations.Counters(),
		CustomerEmail:   c.customerEmail,
		PaidAmount:      c.paidAmount,
		Generate:        c.generate.view(),
		Invoice:         c.invoiceView,
		HistoryEmail:    c.historyEmail,
		History:         c.history.view(),
		PurchaseHistory: c.historyView,
	}
}

// LookupInvoice renders a past purchase without touching console state.
func (c *WorkflowController) LookupInvoice(ctx context.Context, purchaseID int64) (render.SummaryView, error) {
	summary, err := c.gateway.FetchInvoice(ctx, purchaseID)
	if err != nil {
		return c.renderer.RenderSummary(nil), err
	}
	return c.renderer.RenderSummary(summary), nil
}

func (c *WorkflowController) submit(ctx context.Context) {
	log := c.log.With(logger.Fields(ctx)...)

	c.mu.Lock()
	ticket := c.generate.begin(MsgGenerating)
	req, err := BuildBillingRequest(strings.TrimSpace(c.customerEmail), c.lines, c.denominations, c.paidAmount)
	c.mu.Unlock()

	if err != nil {
		log.Debug("billing request rejected before dispatch", zap.Error(err))
		c.finishGenerate(log, ticket, nil, err)
		return
	}

	// An operator walking away from the request must not abort the bill.
	summary, err := c.gateway.GenerateInvoice(context.WithoutCancel(ctx), req)
	c.finishGenerate(log, ticket, summary, err)
}

func (c *WorkflowController) finishGenerate(log *zap.Logger, ticket uint64, summary *entity.InvoiceSummary, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ticket != c.generate.seq {
		log.Info("discarding superseded invoice response", zap.Uint64("ticket", ticket), zap.Uint64("current", c.generate.seq))
		return
	}

	if err != nil {
		c.invoiceView = c.renderer.RenderSummary(nil)
		c.generate.fail(failureMessage(err, MsgUnexpectedError))
		return
	}

	c.lastInvoice = summary
	c.invoiceView = c.renderer.RenderSummary(summary)
	c.generate.succeed(MsgInvoiceGenerated)
	log.Info("invoice generated",
		zap.Int64("purchase_id", summary.PurchaseID),
		zap.String("customer_email", logger.MaskEmail(summary.CustomerEmail)),
	)
}

func (c *WorkflowController) fetchHistory(ctx context.Context, rawEmail string) {
	log := c.log.With(logger.Fields(ctx)...)
	email := strings.TrimSpace(rawEmail)

	c.mu.Lock()
	c.historyEmail = rawEmail
	if email == "" {
		c.history.seq++
		c.history.fail(MsgHistoryEmail)
		c.mu.Unlock()
		return
	}
	ticket := c.history.begin(MsgFetchingHistory)
	c.mu.Unlock()

	entries, err := c.gateway.FetchHistory(context.WithoutCancel(ctx), email)

	c.mu.Lock()
	defer c.mu.Unlock()
	if ticket != c.history.seq {
		log.Info("discarding superseded history response", zap.Uint64("ticket", ticket), zap.Uint64("current", c.history.seq))
		return
	}
	if err != nil {
		c.historyView = c.renderer.RenderHistory(nil)
		c.history.fail(failureMessage(err, MsgHistoryUnavailable))
		return
	}
	c.historyView = c.renderer.RenderHistory(entries)
	c.history.succeed(fmt.Sprintf("Found %d purchase(s).", len(entries)))
	log.Debug("purchase history loaded", zap.String("customer_email", logger.MaskEmail(email)), zap.Int("count", len(entries)))
}

// reset mirrors a form reset: one blank row, zeroed counters, empty inputs,
// no invoice and no status. The last invoice is kept.
func (c *WorkflowController) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lines.Clear()
	c.denominations.ResetCounts()
	c.customerEmail = ""
	c.paidAmount = ""
	c.invoiceView = c.renderer.RenderSummary(nil)
	c.generate.seq++
	c.generate.state = StateIdle
	c.generate.status = Status{}
}

func failureMessage(err error, fallback string) string {
	if msg := apperror.GetAppError(err).Message; msg != "" {
		return msg
	}
	return fallback
}

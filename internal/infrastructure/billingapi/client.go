package billingapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sangkips/billing-console/internal/domain/entity"
	"github.com/sangkips/billing-console/internal/domain/gateway"
	"github.com/sangkips/billing-console/pkg/apperror"
	"github.com/sangkips/billing-console/pkg/logger"
)

const (
	generatePath = "/api/billing/generate"
	historyPath  = "/api/purchases/history"
	purchasePath = "/api/purchases/"
)

// Fallback messages used when the service gives no usable detail.
const (
	MsgGenerateFailed = "Failed to generate invoice."
	MsgHistoryFailed  = "Failed to load purchase history."
	MsgInvoiceFailed  = "Failed to load invoice."
)

// Client talks to the remote billing service over HTTP/JSON.
type Client struct {
	baseURL  string
	http     *http.Client
	validate *validator.Validate
	log      *zap.Logger
}

var _ gateway.BillingGateway = (*Client)(nil)

// NewClient creates a billing service client using the given HTTP client.
// A nil httpClient uses http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client, log *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     httpClient,
		validate: validator.New(),
		log:      log,
	}
}

// GenerateInvoice submits a bill and returns the invoice summary.
func (c *Client) GenerateInvoice(ctx context.Context, req *entity.BillingRequest) (*entity.InvoiceSummary, error) {
	var summary entity.InvoiceSummary
	if err := c.do(ctx, http.MethodPost, generatePath, nil, req, MsgGenerateFailed, &summary); err != nil {
		return nil, err
	}
	if err := c.validate.Struct(&summary); err != nil {
		return nil, apperror.NewTransportError(0, MsgGenerateFailed, fmt.Errorf("invalid invoice summary: %w", err))
	}
	return &summary, nil
}

// FetchHistory lists a customer's previous purchases in service order.
func (c *Client) FetchHistory(ctx context.Context, email string) ([]entity.PurchaseHistoryEntry, error) {
	var entries []entity.PurchaseHistoryEntry
	query := url.Values{"email": []string{email}}
	if err := c.do(ctx, http.MethodGet, historyPath, query, nil, MsgHistoryFailed, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		return nil, apperror.NewTransportError(0, MsgHistoryFailed, errors.New("purchase history is not a list"))
	}
	if err := c.validate.Var(entries, "dive"); err != nil {
		return nil, apperror.NewTransportError(0, MsgHistoryFailed, fmt.Errorf("invalid purchase history: %w", err))
	}
	for _, entry := range entries {
		if entry.CreatedAt.IsZero() {
			return nil, apperror.NewTransportError(0, MsgHistoryFailed, fmt.Errorf("purchase %d has no created_at", entry.ID))
		}
	}
	return entries, nil
}

// FetchInvoice loads the summary of a past purchase.
func (c *Client) FetchInvoice(ctx context.Context, purchaseID int64) (*entity.InvoiceSummary, error) {
	var summary entity.InvoiceSummary
	path := purchasePath + strconv.FormatInt(purchaseID, 10)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, MsgInvoiceFailed, &summary); err != nil {
		return nil, err
	}
	if err := c.validate.Struct(&summary); err != nil {
		return nil, apperror.NewTransportError(0, MsgInvoiceFailed, fmt.Errorf("invalid invoice summary: %w", err))
	}
	return &summary, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, fallback string, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return apperror.NewTransportError(0, fallback, fmt.Errorf("encode request: %w", err))
		}
		reader = bytes.NewReader(buf)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return apperror.NewTransportError(0, fallback, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log := c.log.With(logger.Fields(ctx)...).With(
		zap.String("upstream_request_id", requestID),
		zap.String("method", method),
		zap.String("path", path),
	)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn("billing service unreachable", zap.Error(err))
		return apperror.NewTransportError(0, fallback, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Warn("billing service response unreadable", zap.Int("status", resp.StatusCode), zap.Error(err))
		return apperror.NewTransportError(resp.StatusCode, fallback, err)
	}

	log.Debug("billing service responded",
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := detailMessage(payload, fallback)
		log.Warn("billing service rejected request",
			zap.Int("status", resp.StatusCode),
			zap.String("detail", message),
		)
		return apperror.NewTransportError(resp.StatusCode, message, fmt.Errorf("billing service returned %d", resp.StatusCode))
	}

	if err := json.Unmarshal(payload, out); err != nil {
		log.Warn("billing service returned malformed body", zap.Error(err))
		return apperror.NewTransportError(resp.StatusCode, fallback, fmt.Errorf("decode response: %w", err))
	}
	return nil
}

type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

// detailMessage extracts a string "detail" from an error body. Structured
// details (such as lists of field errors) fall back to the generic message.
func detailMessage(payload []byte, fallback string) string {
	var body errorBody
	if err := json.Unmarshal(payload, &body); err != nil || len(body.Detail) == 0 {
		return fallback
	}
	var detail string
	if err := json.Unmarshal(body.Detail, &detail); err != nil || strings.TrimSpace(detail) == "" {
		return fallback
	}
	return detail
}

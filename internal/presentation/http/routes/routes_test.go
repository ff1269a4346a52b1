package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/sangkips/billing-console/internal/application/service"
	"github.com/sangkips/billing-console/internal/config"
	"github.com/sangkips/billing-console/internal/infrastructure/billingapi"
	"github.com/sangkips/billing-console/internal/presentation/http/handler"
	"github.com/sangkips/billing-console/internal/presentation/http/middleware"
	"github.com/sangkips/billing-console/internal/presentation/render"
	"github.com/sangkips/billing-console/pkg/auth"
	"github.com/sangkips/billing-console/pkg/printer"
)

const invoiceJSON = `{
	"purchase_id": 42,
	"customer_email": "jane@example.com",
	"lines": [{
		"product_code": "NB200",
		"product_name": "Notebook",
		"unit_price": "200.00",
		"quantity": 2,
		"tax_percentage": "12.00",
		"purchase_price": "400.00",
		"tax_payable_for_item": "48.00",
		"total_price_of_item": "448.00"
	}],
	"total_price_without_tax": "400.00",
	"total_tax_payable": "48.00",
	"net_price": "448.00",
	"rounded_down_net_price": "448",
	"paid_amount": "500",
	"balance_payable_to_customer": "52",
	"change_remainder": "0",
	"payment_denomination": {"500": 1},
	"balance_denomination": {"50": 1, "2": 1}
}`

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    struct {
		RequestID string `json:"request_id"`
	} `json:"meta"`
}

type testServer struct {
	router  *gin.Engine
	limiter *middleware.OperatorRateLimiter
	token   string
}

func newTestServer(t *testing.T, billing http.HandlerFunc, limit middleware.RateLimiterConfig) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	upstream := httptest.NewServer(billing)
	t.Cleanup(upstream.Close)

	hashed, err := bcrypt.GenerateFromPassword([]byte("1357"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	cfg := &config.Config{}
	cfg.App.Name = "billing-console"
	log := zap.NewNop()

	renderer := render.NewRenderer(render.Options{Location: time.UTC})
	client := billingapi.NewClient(upstream.URL, upstream.Client(), log)
	controller := service.NewWorkflowController(client, renderer, log)
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	printerService := service.NewPrinterService(printer.Null(), controller, service.ReceiptOptions{}, "none", log)

	limiter := middleware.NewOperatorRateLimiter(limit)
	t.Cleanup(limiter.Stop)

	router := Setup(&Handlers{
		Auth:    handler.NewAuthHandler(service.NewAuthService(string(hashed), tokens, log)),
		Console: handler.NewConsoleHandler(controller, renderer),
		Printer: handler.NewPrinterHandler(printerService),
	}, &Deps{Tokens: tokens, Cfg: cfg, Log: log, RateLimiter: limiter})

	token, _, err := tokens.Generate("till-1")
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	return &testServer{router: router, limiter: limiter, token: token}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return env
}

func invoiceUpstream(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/billing/generate" {
			t.Errorf("unexpected upstream path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, invoiceJSON)
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, invoiceUpstream(t), middleware.DefaultRateLimiterConfig())
	rec := s.do(t, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Fatalf("unexpected health response %d %s", rec.Code, rec.Body.String())
	}
}

func TestConsoleRequiresToken(t *testing.T) {
	s := newTestServer(t, invoiceUpstream(t), middleware.DefaultRateLimiterConfig())
	s.token = ""
	rec := s.do(t, http.MethodGet, "/api/v1/console", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	s.token = "garbage"
	rec = s.do(t, http.MethodGet, "/api/v1/console", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for invalid token, got %d", rec.Code)
	}
}

func TestLogin(t *testing.T) {
	s := newTestServer(t, invoiceUpstream(t), middleware.DefaultRateLimiterConfig())
	s.token = ""

	rec := s.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{"operator": "till-9", "pin": "9999"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong pin, got %d", rec.Code)
	}

	rec = s.do(t, http.MethodPost, "/api/v1/auth/login", map[string]string{"operator": "till-9", "pin": "1357"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", rec.Code, rec.Body.String())
	}
	var login struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := json.Unmarshal(decode(t, rec).Data, &login); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	if login.AccessToken == "" || login.TokenType != "Bearer" {
		t.Fatalf("unexpected login payload %+v", login)
	}

	s.token = login.AccessToken
	if rec := s.do(t, http.MethodGet, "/api/v1/console", nil); rec.Code != http.StatusOK {
		t.Fatalf("issued token rejected: %d", rec.Code)
	}
}

func TestBillingRoundTrip(t *testing.T) {
	s := newTestServer(t, invoiceUpstream(t), middleware.DefaultRateLimiterConfig())

	steps := []struct {
		method, path string
		body         any
	}{
		{http.MethodPut, "/api/v1/console/rows/0", map[string]string{"product_code": "NB200", "quantity": "2"}},
		{http.MethodPut, "/api/v1/console/denominations/500", map[string]int{"count": 1}},
		{http.MethodPut, "/api/v1/console/payment", map[string]string{"customer_email": "jane@example.com", "paid_amount": "500"}},
	}
	for _, step := range steps {
		if rec := s.do(t, step.method, step.path, step.body); rec.Code != http.StatusOK {
			t.Fatalf("%s %s: %d %s", step.method, step.path, rec.Code, rec.Body.String())
		}
	}

	rec := s.do(t, http.MethodPost, "/api/v1/console/submit", nil)
	env := decode(t, rec)
	if !env.Success || env.Message != service.MsgInvoiceGenerated {
		t.Fatalf("unexpected submit outcome %+v", env)
	}
	if env.Meta.RequestID == "" || rec.Header().Get("X-Request-ID") != env.Meta.RequestID {
		t.Fatalf("expected request id to be echoed")
	}

	rec = s.do(t, http.MethodGet, "/api/v1/console/invoice.html", nil)
	html := rec.Body.String()
	if !strings.Contains(html, "Purchase ID: 42") || !strings.Contains(html, "/invoice/42") {
		t.Fatalf("unexpected invoice fragment %s", html)
	}

	rec = s.do(t, http.MethodGet, "/api/v1/console/invoice.pdf", nil)
	if rec.Header().Get("Content-Type") != "application/pdf" || !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Fatalf("expected a PDF, got %s", rec.Header().Get("Content-Type"))
	}

	rec = s.do(t, http.MethodPost, "/api/v1/console/invoice/print", nil)
	if env := decode(t, rec); rec.Code != http.StatusOK || !env.Success {
		t.Fatalf("print failed: %d %+v", rec.Code, env)
	}

	rec = s.do(t, http.MethodPost, "/api/v1/console/reset", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("reset failed: %d", rec.Code)
	}
	rec = s.do(t, http.MethodGet, "/api/v1/console/invoice.html", nil)
	if rec.Body.Len() != 0 {
		t.Fatalf("expected empty invoice panel after reset, got %q", rec.Body.String())
	}
	rec = s.do(t, http.MethodGet, "/api/v1/console/invoice", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("last invoice must survive reset, got %d", rec.Code)
	}
}

func TestSubmitReportsServiceDetail(t *testing.T) {
	s := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, `{"detail": "Email required"}`)
	}, middleware.DefaultRateLimiterConfig())

	s.do(t, http.MethodPut, "/api/v1/console/rows/0", map[string]string{"product_code": "NB200", "quantity": "1"})
	s.do(t, http.MethodPut, "/api/v1/console/payment", map[string]string{"paid_amount": "100"})

	rec := s.do(t, http.MethodPost, "/api/v1/console/submit", nil)
	env := decode(t, rec)
	if rec.Code != http.StatusOK || env.Success || env.Message != "Email required" {
		t.Fatalf("unexpected outcome %d %+v", rec.Code, env)
	}

	rec = s.do(t, http.MethodGet, "/api/v1/console/invoice", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected no invoice, got %d", rec.Code)
	}
}

func TestFormErrors(t *testing.T) {
	s := newTestServer(t, invoiceUpstream(t), middleware.DefaultRateLimiterConfig())

	cases := []struct {
		method, path string
		body         any
		want         int
	}{
		{http.MethodDelete, "/api/v1/console/rows/99", nil, http.StatusNotFound},
		{http.MethodPut, "/api/v1/console/rows/abc", map[string]string{}, http.StatusBadRequest},
		{http.MethodPut, "/api/v1/console/denominations/3", map[string]int{"count": 1}, http.StatusUnprocessableEntity},
		{http.MethodPut, "/api/v1/console/denominations/500", map[string]int{"count": -1}, http.StatusBadRequest},
		{http.MethodPut, "/api/v1/console/denominations/500", map[string]string{}, http.StatusBadRequest},
		{http.MethodGet, "/api/v1/console/purchases/0", nil, http.StatusBadRequest},
	}
	for _, tc := range cases {
		if rec := s.do(t, tc.method, tc.path, tc.body); rec.Code != tc.want {
			t.Fatalf("%s %s: expected %d, got %d %s", tc.method, tc.path, tc.want, rec.Code, rec.Body.String())
		}
	}
}

func TestHistoryWithoutEmailStaysLocal(t *testing.T) {
	s := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected upstream call %s", r.URL.Path)
	}, middleware.DefaultRateLimiterConfig())

	rec := s.do(t, http.MethodPost, "/api/v1/console/history", map[string]string{"email": "  "})
	env := decode(t, rec)
	if env.Success || env.Message != service.MsgHistoryEmail {
		t.Fatalf("unexpected outcome %+v", env)
	}
}

func TestRateLimit(t *testing.T) {
	s := newTestServer(t, invoiceUpstream(t), middleware.RateLimiterConfig{
		RequestsPerSecond: 0.001,
		BurstSize:         2,
		CleanupInterval:   time.Minute,
		EntryTTL:          time.Minute,
	})

	for i := 0; i < 2; i++ {
		if rec := s.do(t, http.MethodGet, "/api/v1/console", nil); rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, rec.Code)
		}
	}
	rec := s.do(t, http.MethodGet, "/api/v1/console", nil)
	if rec.Code != http.StatusTooManyRequests || rec.Header().Get("Retry-After") != "1" {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
}

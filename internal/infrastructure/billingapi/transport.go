package billingapi

import (
	"context"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/sangkips/billing-console/internal/config"
)

// NewHTTPClient builds the HTTP client used for billing calls. When client
// credentials are configured every request carries an OAuth2 bearer token
// obtained (and refreshed) from the token endpoint.
func NewHTTPClient(cfg *config.BillingConfig) *http.Client {
	if cfg.ClientID == "" || cfg.TokenURL == "" {
		return &http.Client{Timeout: cfg.Timeout}
	}

	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
		Scopes:       cfg.Scopes,
	}

	// Token requests share the configured timeout.
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, &http.Client{Timeout: cfg.Timeout})
	client := cc.Client(ctx)
	client.Timeout = cfg.Timeout
	return client
}

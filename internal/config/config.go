package config

import (
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Log       LogConfig
	Billing   BillingConfig
	Display   DisplayConfig
	Operator  OperatorConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Printer   PrinterConfig
	Store     StoreConfig
}

type AppConfig struct {
	Name string
	Env  string
	Port string
}

type LogConfig struct {
	Level string
}

// BillingConfig points at the remote billing service. A zero Timeout means
// the client waits for as long as the transport allows. BILLING_TIMEOUT takes
// a duration such as "30s" or a bare number of seconds.
type BillingConfig struct {
	BaseURL      string
	Timeout      time.Duration
	ClientID     string
	ClientSecret string
	TokenURL     string
	Scopes       []string
}

type DisplayConfig struct {
	CurrencySymbol  string
	InvoiceViewPath string
	Timezone        string
}

type OperatorConfig struct {
	PINHash     string
	JWTSecret   string
	TokenExpiry time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

type PrinterConfig struct {
	Type    string
	USBPath string
	Address string
	Width   int
}

type StoreConfig struct {
	Name    string
	Address string
	Phone   string
	TaxID   string
}

func Load() *Config {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	setDefaults()

	return &Config{
		App: AppConfig{
			Name: viper.GetString("APP_NAME"),
			Env:  viper.GetString("APP_ENV"),
			Port: viper.GetString("APP_PORT"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Billing: BillingConfig{
			BaseURL:      viper.GetString("BILLING_BASE_URL"),
			Timeout:      durationSetting("BILLING_TIMEOUT"),
			ClientID:     viper.GetString("BILLING_CLIENT_ID"),
			ClientSecret: viper.GetString("BILLING_CLIENT_SECRET"),
			TokenURL:     viper.GetString("BILLING_TOKEN_URL"),
			Scopes:       viper.GetStringSlice("BILLING_SCOPES"),
		},
		Display: DisplayConfig{
			CurrencySymbol:  viper.GetString("CURRENCY_SYMBOL"),
			InvoiceViewPath: viper.GetString("INVOICE_VIEW_PATH"),
			Timezone:        viper.GetString("DISPLAY_TIMEZONE"),
		},
		Operator: OperatorConfig{
			PINHash:     viper.GetString("OPERATOR_PIN_HASH"),
			JWTSecret:   viper.GetString("JWT_SECRET"),
			TokenExpiry: time.Duration(viper.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods: viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders: viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		Printer: PrinterConfig{
			Type:    viper.GetString("PRINTER_TYPE"),
			USBPath: viper.GetString("PRINTER_USB_PATH"),
			Address: viper.GetString("PRINTER_ADDRESS"),
			Width:   viper.GetInt("PRINTER_WIDTH"),
		},
		Store: StoreConfig{
			Name:    viper.GetString("STORE_NAME"),
			Address: viper.GetString("STORE_ADDRESS"),
			Phone:   viper.GetString("STORE_PHONE"),
			TaxID:   viper.GetString("STORE_TAX_ID"),
		},
	}
}

func setDefaults() {
	viper.SetDefault("APP_NAME", "billing-console")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8081")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("BILLING_BASE_URL", "http://localhost:8000")
	viper.SetDefault("BILLING_TIMEOUT", "0s")
	viper.SetDefault("BILLING_SCOPES", []string{})
	viper.SetDefault("CURRENCY_SYMBOL", "₹")
	viper.SetDefault("INVOICE_VIEW_PATH", "/invoice/")
	viper.SetDefault("DISPLAY_TIMEZONE", "Local")
	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("JWT_EXPIRY_HOURS", 12)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 60)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_WIDTH", 32)
	viper.SetDefault("STORE_NAME", "Billing Counter")
}

// durationSetting reads a duration, treating a bare integer as seconds.
func durationSetting(key string) time.Duration {
	raw := strings.TrimSpace(viper.GetString(key))
	if raw == "" {
		return 0
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("Warning: invalid %s %q, using no timeout: %v", key, raw, err)
		return 0
	}
	return d
}

// Location resolves the display timezone, falling back to the local zone.
func (c *DisplayConfig) Location() *time.Location {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("Warning: unknown DISPLAY_TIMEZONE %q, using local time: %v", c.Timezone, err)
		return time.Local
	}
	return loc
}

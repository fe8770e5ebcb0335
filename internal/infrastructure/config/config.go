package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig  `mapstructure:"server"`
	Tables   TablesConfig  `mapstructure:"tables"`
	Billing  BillingConfig `mapstructure:"billing"`
	LogLevel string        `mapstructure:"log_level"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// TablesConfig holds the DynamoDB table names.
type TablesConfig struct {
	Quotes      string `mapstructure:"quotes"`
	Invoices    string `mapstructure:"invoices"`
	CostRecords string `mapstructure:"cost_records"`
	Sequences   string `mapstructure:"sequences"`
}

// BillingConfig holds the tunable business parameters of the billing engine.
type BillingConfig struct {
	// ApprovalThreshold is the gross amount above which a cost record needs
	// an explicit approval.
	ApprovalThreshold float64 `mapstructure:"approval_threshold"`
	// DunningCadenceDays is the reminder cadence and the grace window that
	// keeps re-runs of the dunning batch from double-escalating.
	DunningCadenceDays int `mapstructure:"dunning_cadence_days"`
	// QuoteValidityDays is the default validity period of a new quote.
	QuoteValidityDays int `mapstructure:"quote_validity_days"`
	// InvoiceDueDays is the default payment term applied when an invoice is
	// sent without an explicit due date.
	InvoiceDueDays int `mapstructure:"invoice_due_days"`
	// ReminderFees are the dunning fees per reminder level (index 0 is
	// level 1).
	ReminderFees []float64 `mapstructure:"reminder_fees"`
}

// Load reads configuration from environment variables with sane defaults.
// Env keys are upper snake case, e.g. BILLING_APPROVAL_THRESHOLD.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.port", 8080)
	v.SetDefault("tables.quotes", "quotes")
	v.SetDefault("tables.invoices", "invoices")
	v.SetDefault("tables.cost_records", "cost_records")
	v.SetDefault("tables.sequences", "document_sequences")
	v.SetDefault("billing.approval_threshold", 500.0)
	v.SetDefault("billing.dunning_cadence_days", 7)
	v.SetDefault("billing.quote_validity_days", 30)
	v.SetDefault("billing.invoice_due_days", 14)
	v.SetDefault("billing.reminder_fees", []float64{0, 5, 10})
	v.SetDefault("log_level", "info")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults, Load(ctx) to layer
//   file and environment sources on top.
// - External errors must be wrapped via this package's error helpers.
package config

import "runtime"

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DatabaseURL selects the Postgres store when set; empty means the
	// in-memory store.
	DatabaseURL string `koanf:"database_url"`

	// MaxListLimit caps GET /shifts?limit.
	MaxListLimit int `koanf:"max_list_limit"`

	// MaxAutofillCount caps the count accepted by POST /shifts/autofill.
	MaxAutofillCount int `koanf:"max_autofill_count"`

	// QueueSize bounds the in-memory notification outbox.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of notification delivery workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets the size of the payment idempotency cache.
	DedupeSize int `koanf:"dedupe_size"`

	// PaymentLatencyMinMS and PaymentLatencyMaxMS bound the simulated
	// payment processor latency.
	PaymentLatencyMinMS int `koanf:"payment_latency_min_ms"`
	PaymentLatencyMaxMS int `koanf:"payment_latency_max_ms"`

	// GeminiAPIKey enables the AI shift description endpoint when set.
	GeminiAPIKey string `koanf:"gemini_api_key"`

	// GeminiModel selects the generation model.
	GeminiModel string `koanf:"gemini_model"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		LogFormat:           "text",
		Addr:                ":8080",
		MaxListLimit:        100,
		MaxAutofillCount:    100,
		QueueSize:           4096,
		WorkerCount:         runtime.NumCPU(),
		DedupeSize:          10_000,
		PaymentLatencyMinMS: 30,
		PaymentLatencyMaxMS: 120,
		GeminiModel:         "gemini-2.5-flash",
	}
}

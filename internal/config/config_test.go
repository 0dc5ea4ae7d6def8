package config

import (
	"log/slog"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DEFAULT_DISCOUNT_PERCENT", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Port != 8000 {
		t.Errorf("expected port 8000, got %d", cfg.Port)
	}
	if cfg.Defaults.DiscountPercentage != 15 {
		t.Errorf("expected default discount 15, got %v", cfg.Defaults.DiscountPercentage)
	}
	if cfg.Defaults.FederalIncomeTaxRate != 0.24 || cfg.Defaults.StateIncomeTaxRate != 0.05 {
		t.Errorf("unexpected default income rates: %+v", cfg.Defaults)
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		t.Error("expected default CORS origins")
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("MAX_SHARES", "500")
	t.Setenv("DEFAULT_LONG_TERM_RATE", "0.2")
	t.Setenv("MAX_BATCH_SIZE", "not-a-number")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Addr() != "127.0.0.1:9090" {
		t.Errorf("expected addr 127.0.0.1:9090, got %s", cfg.Addr())
	}
	if cfg.MaxShares != 500 {
		t.Errorf("expected max shares 500, got %v", cfg.MaxShares)
	}
	if cfg.Defaults.LongTermCapitalGainsRate != 0.2 {
		t.Errorf("expected long-term rate 0.2, got %v", cfg.Defaults.LongTermCapitalGainsRate)
	}
	if cfg.MaxBatchSize != 100 {
		t.Errorf("invalid int should fall back to default, got %d", cfg.MaxBatchSize)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Errorf("unexpected origins %v", cfg.CORSAllowedOrigins)
	}
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"ERROR", slog.LevelError},
		{"verbose", slog.LevelInfo},
	}
	for _, tt := range tests {
		cfg := &Config{LogLevel: tt.level}
		if got := cfg.SlogLevel(); got != tt.want {
			t.Errorf("SlogLevel(%q) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

package config

import "testing"

func TestValidate_InvalidPort(t *testing.T) {
	cfg := Config{HTTP: HTTPConfig{Port: 0}}

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_EmbeddingWithoutModel(t *testing.T) {
	cfg := Config{
		HTTP:      HTTPConfig{Port: 8000},
		Embedding: EmbeddingConfig{APIKey: "test-key"},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for embedding key without model")
	}

	expected := "embedding.model is required when embedding.api_key is set"
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_CacheWithoutEmbedding(t *testing.T) {
	cfg := Config{
		HTTP:  HTTPConfig{Port: 8000},
		Cache: CacheConfig{Addrs: []string{"localhost:6379"}},
	}

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for cache without embedding provider")
	}
}

func TestValidate_LexicalOnly(t *testing.T) {
	cfg := Config{HTTP: HTTPConfig{Port: 8000}}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error for lexical-only config: %v", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{HTTP: HTTPConfig{Port: 8000}}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("read_timeout_sec = %d, want 10", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 120 {
		t.Errorf("write_timeout_sec = %d, want 120", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Embedding.ProbeTimeoutSec != 10 {
		t.Errorf("probe_timeout_sec = %d, want 10", cfg.Embedding.ProbeTimeoutSec)
	}
	if cfg.Cache.TTLHours != 168 {
		t.Errorf("ttl_hours = %d, want 168", cfg.Cache.TTLHours)
	}
	if cfg.Extract.TimeoutSec != 30 {
		t.Errorf("extract timeout_sec = %d, want 30", cfg.Extract.TimeoutSec)
	}
	if cfg.Scoring.Workers != 4 {
		t.Errorf("workers = %d, want 4", cfg.Scoring.Workers)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:    HTTPConfig{Port: 8000, WriteTimeoutSec: 60},
		Scoring: ScoringConfig{Workers: 16},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("write_timeout_sec = %d, want 60 (explicit value kept)", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Scoring.Workers != 16 {
		t.Errorf("workers = %d, want 16 (explicit value kept)", cfg.Scoring.Workers)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("SIMCHECK_TEST_KEY", "secret")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"set variable", "key: ${SIMCHECK_TEST_KEY}", "key: secret"},
		{"unset variable", "key: ${SIMCHECK_TEST_UNSET}", "key: "},
		{"default used", "key: ${SIMCHECK_TEST_UNSET:-fallback}", "key: fallback"},
		{"default ignored when set", "key: ${SIMCHECK_TEST_KEY:-fallback}", "key: secret"},
		{"no variables", "key: literal", "key: literal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(expandEnvVars([]byte(tt.in))); got != tt.want {
				t.Errorf("expandEnvVars(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEnabled(t *testing.T) {
	if (EmbeddingConfig{}).Enabled() {
		t.Error("embedding without api_key must be disabled")
	}
	if !(EmbeddingConfig{APIKey: "k"}).Enabled() {
		t.Error("embedding with api_key must be enabled")
	}
	if (CacheConfig{}).Enabled() {
		t.Error("cache without addrs must be disabled")
	}
	if !(CacheConfig{Addrs: []string{"localhost:6379"}}).Enabled() {
		t.Error("cache with addrs must be enabled")
	}
}

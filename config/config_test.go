package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("API_TOKENS", " alpha, ,beta ")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("BLOOM_TTL", "2h")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Database.Driver != "memory" {
		t.Fatalf("driver = %q; want memory", cfg.Database.Driver)
	}
	if len(cfg.Auth.Tokens) != 2 || cfg.Auth.Tokens[0] != "alpha" || cfg.Auth.Tokens[1] != "beta" {
		t.Fatalf("tokens = %v; want [alpha beta]", cfg.Auth.Tokens)
	}
	if len(cfg.Kafka.Brokers) != 0 {
		t.Fatalf("brokers = %v; want none", cfg.Kafka.Brokers)
	}
	if cfg.Redis.BloomTTL != 2*time.Hour {
		t.Fatalf("bloom ttl = %v; want 2h", cfg.Redis.BloomTTL)
	}
	if !cfg.LLM.Validate {
		t.Fatalf("script validation should default to on")
	}
}

func TestValidateRejectsUnknownDrivers(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{"store driver", Config{Database: DatabaseConfig{Driver: "sqlite"}, LLM: LLMConfig{Provider: "openai"}, Collector: CollectorConfig{Workers: 1}}},
		{"llm provider", Config{Database: DatabaseConfig{Driver: "memory"}, LLM: LLMConfig{Provider: "gemini"}, Collector: CollectorConfig{Workers: 1}}},
		{"workers", Config{Database: DatabaseConfig{Driver: "memory"}, LLM: LLMConfig{Provider: "cohere"}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if err := c.cfg.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

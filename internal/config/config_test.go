package config

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Port:          "8081",
		DataBackend:   "memory",
		SessionSecret: "a-secret-with-16-chars",
		SessionTTL:    12 * time.Hour,
		AMQPExchange:  "netkas",
		AMQPQueue:     "audit_events",
		OrgName:       "Damar Global Network",
		Partners:      []string{"Mardi Jayadi", "Daden", "Hamdan", "Umi"},
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"non-numeric port", func(c *Config) { c.Port = "http" }, "invalid port"},
		{"port out of range", func(c *Config) { c.Port = "70000" }, "between 1 and 65535"},
		{"unknown backend", func(c *Config) { c.DataBackend = "redis" }, "invalid data backend"},
		{"empty sqlite path", func(c *Config) { c.DataBackend = "sqlite"; c.SQLiteDBPath = "" }, "database path"},
		{"missing secret", func(c *Config) { c.SessionSecret = "" }, "SESSION_SECRET must be set"},
		{"short secret", func(c *Config) { c.SessionSecret = "short" }, "at least 16 characters"},
		{"tiny ttl", func(c *Config) { c.SessionTTL = time.Second }, "at least 1 minute"},
		{"bad amqp scheme", func(c *Config) { c.AMQPURL = "http://broker:5672" }, "must be 'amqp' or 'amqps'"},
		{"amqp without exchange", func(c *Config) { c.AMQPURL = "amqp://broker:5672"; c.AMQPExchange = "" }, "exchange name"},
		{"no partners", func(c *Config) { c.Partners = nil }, "partner list cannot be empty"},
		{"blank partner", func(c *Config) { c.Partners = []string{"Daden", "  "} }, "cannot be blank"},
		{"no org name", func(c *Config) { c.OrgName = "" }, "organization name"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestValidateAccumulatesErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Port = "http"
	cfg.SessionSecret = ""
	cfg.Partners = nil

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"invalid port", "SESSION_SECRET", "partner list"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q does not mention %q", err, want)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DATA_BACKEND", "SESSION_TTL", "PROFIT_PARTNERS"} {
		t.Setenv(key, "")
	}
	cfg := Load()
	if cfg.Port != "8081" {
		t.Fatalf("unexpected default port: %s", cfg.Port)
	}
	if cfg.DataBackend != "sqlite" {
		t.Fatalf("unexpected default backend: %s", cfg.DataBackend)
	}
	if cfg.SessionTTL != 12*time.Hour {
		t.Fatalf("unexpected default TTL: %v", cfg.SessionTTL)
	}
	if len(cfg.Partners) != 4 {
		t.Fatalf("unexpected default partners: %v", cfg.Partners)
	}
}

func TestGetEnvList(t *testing.T) {
	t.Setenv("TEST_PARTNERS", " Ani , Budi ,,Cici ")
	got := getEnvList("TEST_PARTNERS", []string{"fallback"})
	if len(got) != 3 || got[0] != "Ani" || got[1] != "Budi" || got[2] != "Cici" {
		t.Fatalf("unexpected list: %v", got)
	}

	t.Setenv("TEST_PARTNERS", " , ")
	got = getEnvList("TEST_PARTNERS", []string{"fallback"})
	if len(got) != 1 || got[0] != "fallback" {
		t.Fatalf("expected fallback, got %v", got)
	}
}

package config

import (
	"testing"
	"time"
)

func TestLoadApiConfigDefaults(t *testing.T) {
	t.Setenv("POSTGRES_USER", "tank")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	// Empty values fall through to defaults regardless of the host env
	t.Setenv("PORT", "")
	t.Setenv("POSTGRES_DB", "")
	t.Setenv("POSTGRES_MAX_CONNS", "")
	t.Setenv("POSTGRES_MIN_CONNS", "")

	cfg, err := LoadApiConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != "3000" {
		t.Errorf("Port = %q, want 3000", cfg.Server.Port)
	}
	if cfg.Database.MaxConns != 25 || cfg.Database.MinConns != 5 {
		t.Errorf("pool bounds = %d/%d, want 25/5", cfg.Database.MaxConns, cfg.Database.MinConns)
	}
	if cfg.Database.DBName != "tanques" {
		t.Errorf("DBName = %q, want tanques", cfg.Database.DBName)
	}
}

func TestLoadApiConfigOverrides(t *testing.T) {
	t.Setenv("POSTGRES_USER", "tank")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("PORT", "8081")
	t.Setenv("POSTGRES_MAX_CONNS", "10")
	t.Setenv("READ_TIMEOUT", "15s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.local, http://b.local")

	cfg, err := LoadApiConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != "8081" {
		t.Errorf("Port = %q, want 8081", cfg.Server.Port)
	}
	if cfg.Database.MaxConns != 10 {
		t.Errorf("MaxConns = %d, want 10", cfg.Database.MaxConns)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("ReadTimeout = %v, want 15s", cfg.Server.ReadTimeout)
	}
	origins := cfg.CORS.AllowedOrigins
	if len(origins) != 2 || origins[0] != "http://a.local" || origins[1] != "http://b.local" {
		t.Errorf("AllowedOrigins = %v, want trimmed pair", origins)
	}
}

func TestValidateRejectsBadPoolBounds(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			User:     "tank",
			Password: "secret",
			MaxConns: 2,
			MinConns: 5,
		},
	}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error when MinConns exceeds MaxConns")
	}
}

func TestGetDatabaseDSN(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host:     "db.local",
			Port:     5433,
			User:     "tank",
			Password: "secret",
			DBName:   "tanques",
			SSLMode:  "require",
		},
	}

	want := "host=db.local port=5433 user=tank password=secret dbname=tanques sslmode=require"
	if got := cfg.GetDatabaseDSN(); got != want {
		t.Errorf("GetDatabaseDSN() = %q, want %q", got, want)
	}
}

func TestGetMQTTBrokerURL(t *testing.T) {
	cfg := &IngestorConfig{
		MQTT: MQTTConfig{BrokerHost: "broker.local", BrokerPort: 1883},
	}
	if got := cfg.GetMQTTBrokerURL(); got != "tcp://broker.local:1883" {
		t.Errorf("GetMQTTBrokerURL() = %q, want tcp://broker.local:1883", got)
	}

	cfg.MQTT.UseTLS = true
	cfg.MQTT.BrokerPort = 8883
	if got := cfg.GetMQTTBrokerURL(); got != "tcps://broker.local:8883" {
		t.Errorf("GetMQTTBrokerURL() = %q, want tcps://broker.local:8883", got)
	}
}

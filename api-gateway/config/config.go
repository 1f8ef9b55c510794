package config

import (
	"os"
	"strings"
	"time"
)

// ServiceConfig holds configuration for a backend service
type ServiceConfig struct {
	Name        string
	BaseURL     string
	Instances   []string
	Timeout     time.Duration
	HealthCheck string
}

// GatewayConfig holds the main gateway configuration
type GatewayConfig struct {
	Port     string
	Services map[string]ServiceConfig
}

// LoadConfig loads the gateway configuration
func LoadConfig() *GatewayConfig {
	ledgerURL := getEnv("LEDGER_SERVICE_URL", "http://localhost:8082")
	ledgerInstances := splitInstances(getEnv("LEDGER_SERVICE_INSTANCES", ledgerURL))

	return &GatewayConfig{
		Port: getEnv("GATEWAY_PORT", "8000"),
		Services: map[string]ServiceConfig{
			"ledger": {
				Name:        "ledger-service",
				BaseURL:     ledgerURL,
				Instances:   ledgerInstances,
				Timeout:     30 * time.Second,
				HealthCheck: "/health",
			},
		},
	}
}

// splitInstances parses a comma separated list of instance URLs
func splitInstances(raw string) []string {
	parts := strings.Split(raw, ",")
	instances := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			instances = append(instances, trimmed)
		}
	}
	return instances
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

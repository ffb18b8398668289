//go:build integration
// +build integration

package testhelpers

import (
	"os"
	"testing"
	"time"

	"github.com/kjstillabower/skysense/internal/client"
	"github.com/kjstillabower/skysense/internal/service"
)

// IntegrationTestConfig holds configuration for integration tests.
type IntegrationTestConfig struct {
	APIKey string
	APIURL string
	Secret string
}

// GetIntegrationConfig loads integration test configuration from environment.
// Skips test if WEATHER_API_KEY is not set.
func GetIntegrationConfig(t *testing.T) IntegrationTestConfig {
	t.Helper()
	apiKey := os.Getenv("WEATHER_API_KEY")
	if apiKey == "" {
		t.Skip("WEATHER_API_KEY not set, skipping integration test")
	}

	apiURL := os.Getenv("WEATHER_API_URL")
	if apiURL == "" {
		apiURL = "https://api.weatherapi.com/v1"
	}

	secret := os.Getenv("CHATBOT_IDENTITY_SECRET")
	if secret == "" {
		secret = "integration-secret"
	}

	return IntegrationTestConfig{APIKey: apiKey, APIURL: apiURL, Secret: secret}
}

// SetupIntegrationClient creates a live weather client for integration tests.
func SetupIntegrationClient(t *testing.T, cfg IntegrationTestConfig) *client.WeatherAPIClient {
	t.Helper()
	c, err := client.NewWeatherAPIClient(cfg.APIKey, cfg.APIURL, 10*time.Second)
	if err != nil {
		t.Fatalf("NewWeatherAPIClient() error = %v", err)
	}
	return c
}

// SetupIntegrationService wraps a live client in the service layer.
func SetupIntegrationService(t *testing.T, cfg IntegrationTestConfig) *service.WeatherService {
	t.Helper()
	return service.NewWeatherService(SetupIntegrationClient(t, cfg))
}

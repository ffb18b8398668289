//go:build integration
// +build integration

package client

import (
	"context"
	"encoding/json"
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/kjstillabower/skysense/internal/models"
)

func TestWeatherAPIClient_Current_Integration(t *testing.T) {
	apiKey := os.Getenv("WEATHER_API_KEY")
	if apiKey == "" {
		t.Skip("WEATHER_API_KEY not set, skipping integration test")
	}

	c, err := NewWeatherAPIClient(apiKey, "https://api.weatherapi.com/v1", 10*time.Second)
	if err != nil {
		t.Fatalf("NewWeatherAPIClient() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	resp, err := c.Forward(ctx, RouteCurrent, url.Values{"q": {"51.505,-0.09"}})
	if err != nil {
		t.Fatalf("Forward() error = %v", err)
	}
	var cur models.CurrentResponse
	if err := json.Unmarshal(resp.Body, &cur); err != nil {
		t.Fatalf("decode current: %v", err)
	}
	if err := cur.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	t.Logf("current at %s: %.1f°C %s", cur.Location.Name, cur.Current.TempC, cur.Current.Condition.Text)
}

func TestWeatherAPIClient_BadQuery_Integration(t *testing.T) {
	apiKey := os.Getenv("WEATHER_API_KEY")
	if apiKey == "" {
		t.Skip("WEATHER_API_KEY not set, skipping integration test")
	}

	c, err := NewWeatherAPIClient(apiKey, "https://api.weatherapi.com/v1", 10*time.Second)
	if err != nil {
		t.Fatalf("NewWeatherAPIClient() error = %v", err)
	}
	_, err = c.Forward(context.Background(), RouteCurrent, url.Values{"q": {"not,a,coordinate"}})
	if err == nil {
		t.Fatal("Forward() expected error for malformed q")
	}
	t.Logf("upstream message: %s", MessageOf(err))
}

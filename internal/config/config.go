package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/kjstillabower/skysense/internal/token"
)

// Config holds proxy and dashboard configuration loaded from .env, YAML and env.
type Config struct {
	ServerPort string
	PublicDir  string

	WeatherAPIKey     string
	WeatherAPIURL     string
	WeatherAPITimeout time.Duration

	RequestTimeout time.Duration

	ChatbotIdentitySecret string
	Identity              token.Identity

	ShutdownTimeout time.Duration
	MetricsWindow   time.Duration

	Dashboard DashboardConfig
}

// DashboardConfig locates the services the dashboard client talks to.
type DashboardConfig struct {
	ProxyURL      string
	AirQualityURL string
	OpenMeteoURL  string
	FetchTimeout  time.Duration
}

type fileConfig struct {
	Server struct {
		Port      string `yaml:"port"`
		PublicDir string `yaml:"public_dir"`
	} `yaml:"server"`

	WeatherAPI struct {
		URL     string `yaml:"url"`
		Timeout string `yaml:"timeout"`
	} `yaml:"weather_api"`

	Request struct {
		Timeout string `yaml:"timeout"`
	} `yaml:"request"`

	Identity struct {
		UserID         string   `yaml:"user_id"`
		Email          string   `yaml:"email"`
		StripeAccounts []string `yaml:"stripe_accounts"`
	} `yaml:"identity"`

	Shutdown struct {
		Timeout string `yaml:"timeout"`
	} `yaml:"shutdown"`

	Metrics struct {
		Window string `yaml:"window"`
	} `yaml:"metrics"`

	Dashboard struct {
		ProxyURL      string `yaml:"proxy_url"`
		AirQualityURL string `yaml:"air_quality_url"`
		OpenMeteoURL  string `yaml:"open_meteo_url"`
		FetchTimeout  string `yaml:"fetch_timeout"`
	} `yaml:"dashboard"`
}

type secretsFile struct {
	WeatherAPIKey         string `yaml:"weather_api_key"`
	ChatbotIdentitySecret string `yaml:"chatbot_identity_secret"`
}

// Defaults for settings absent from every source.
const (
	DefaultPort          = "3001"
	DefaultPublicDir     = "public"
	DefaultWeatherAPIURL = "https://api.weatherapi.com/v1"
	DefaultProxyURL      = "http://localhost:3001"
	DefaultAirQualityURL = "https://air-quality-api.open-meteo.com/v1/air-quality"
	DefaultOpenMeteoURL  = "https://api.open-meteo.com/v1/forecast"
)

// Load reads .env (if present), config/{ENV_NAME}.yaml (default dev, optional)
// and config/secrets.yaml, then applies environment overrides. Secrets come from
// env first and the secrets file second. Missing secrets are not an error: the
// affected route reports it per request. Call from project root.
func Load() (*Config, error) {
	_ = godotenv.Load()

	env := os.Getenv("ENV_NAME")
	if env == "" {
		env = "dev"
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("config: get working directory: %w", err)
	}

	var fc fileConfig
	configPath := filepath.Join(cwd, "config", env+".yaml")
	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var sec secretsFile
	secretsData, err := os.ReadFile(filepath.Join(cwd, "config", "secrets.yaml"))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(secretsData, &sec); err != nil {
			return nil, fmt.Errorf("parse secrets file: %w", err)
		}
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("read secrets file: %w", err)
	}

	cfg := &Config{}
	cfg.ServerPort = firstNonEmpty(os.Getenv("PORT"), fc.Server.Port, DefaultPort)
	cfg.PublicDir = firstNonEmpty(os.Getenv("PUBLIC_DIR"), fc.Server.PublicDir, DefaultPublicDir)

	cfg.WeatherAPIKey = firstNonEmpty(os.Getenv("WEATHER_API_KEY"), sec.WeatherAPIKey)
	cfg.WeatherAPIURL = firstNonEmpty(os.Getenv("WEATHER_API_URL"), fc.WeatherAPI.URL, DefaultWeatherAPIURL)
	cfg.WeatherAPITimeout = parseDurationOrZero(fc.WeatherAPI.Timeout, 5*time.Second)
	cfg.RequestTimeout = parseDuration(fc.Request.Timeout, 10*time.Second)

	cfg.ChatbotIdentitySecret = firstNonEmpty(os.Getenv("CHATBOT_IDENTITY_SECRET"), sec.ChatbotIdentitySecret)
	cfg.Identity = token.Identity{
		UserID:         firstNonEmpty(fc.Identity.UserID, token.PlaceholderIdentity.UserID),
		Email:          firstNonEmpty(fc.Identity.Email, token.PlaceholderIdentity.Email),
		StripeAccounts: fc.Identity.StripeAccounts,
	}
	if len(cfg.Identity.StripeAccounts) == 0 {
		cfg.Identity.StripeAccounts = token.PlaceholderIdentity.StripeAccounts
	}

	cfg.ShutdownTimeout = parseDuration(fc.Shutdown.Timeout, 30*time.Second)
	cfg.MetricsWindow = parseDuration(fc.Metrics.Window, 60*time.Second)

	cfg.Dashboard = DashboardConfig{
		ProxyURL:      strings.TrimRight(firstNonEmpty(os.Getenv("PROXY_URL"), fc.Dashboard.ProxyURL, DefaultProxyURL), "/"),
		AirQualityURL: firstNonEmpty(os.Getenv("AIR_QUALITY_URL"), fc.Dashboard.AirQualityURL, DefaultAirQualityURL),
		OpenMeteoURL:  firstNonEmpty(os.Getenv("OPEN_METEO_URL"), fc.Dashboard.OpenMeteoURL, DefaultOpenMeteoURL),
		FetchTimeout:  parseDuration(fc.Dashboard.FetchTimeout, 15*time.Second),
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// parseDuration parses a duration string and returns defaultVal if parsing fails or result is <= 0.
func parseDuration(s string, defaultVal time.Duration) time.Duration {
	d := parseDurationOrZero(s, defaultVal)
	if d <= 0 {
		return defaultVal
	}
	return d
}

// parseDurationOrZero parses a duration string, returning defaultVal on empty string or parse error.
// Zero and negative durations are returned as-is for validate to reject.
func parseDurationOrZero(s string, defaultVal time.Duration) time.Duration {
	s = strings.TrimSpace(s)
	if s == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return defaultVal
	}
	return d
}

// validate rejects a non-positive upstream timeout and keeps RequestTimeout
// above it so the request deadline never fires before the upstream one.
func validate(cfg *Config) error {
	if cfg.WeatherAPITimeout <= 0 {
		return fmt.Errorf("weather_api.timeout must be positive")
	}
	if cfg.RequestTimeout <= cfg.WeatherAPITimeout {
		cfg.RequestTimeout = cfg.WeatherAPITimeout + time.Second
	}
	if strings.ContainsAny(cfg.ServerPort, ": ") {
		return fmt.Errorf("server port must be a bare port number, got %q", cfg.ServerPort)
	}
	return nil
}

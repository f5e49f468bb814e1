package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync"
)

const (
	DefaultAdsBaseURL    = "https://googleads.googleapis.com"
	DefaultAdsAPIVersion = "v14"
)

type Config struct {
	Host string
	Port int

	// Upstream Google Ads REST API.
	AdsBaseURL    string
	AdsAPIVersion string

	// Server-side credentials injected when the caller omits them.
	DeveloperToken   string
	ManagerAccountID string

	TimeoutMs int
	Proxy     string

	APIKey string

	Debug string

	MetricsEnabled bool
	PprofAddr      string
}

var (
	cfg  *Config
	once sync.Once
)

// Load reads the process configuration once. Later calls return the same
// value; nothing mutates it after startup except CLI flag overrides in main.
func Load() *Config {
	once.Do(func() {
		loadDotEnv()
		cfg = fromEnv()
	})
	return cfg
}

func Get() *Config {
	if cfg == nil {
		return Load()
	}
	return cfg
}

func fromEnv() *Config {
	return &Config{
		Host:             getEnv("HOST", "0.0.0.0"),
		Port:             getEnvInt("PORT", 3000),
		AdsBaseURL:       strings.TrimRight(getEnv("ADS_API_BASE_URL", DefaultAdsBaseURL), "/"),
		AdsAPIVersion:    getEnv("ADS_API_VERSION", DefaultAdsAPIVersion),
		DeveloperToken:   getEnv("DEVELOPER_TOKEN", ""),
		ManagerAccountID: getEnv("MANAGER_ACCOUNT_ID", getEnv("LOGIN_CUSTOMER_ID", "")),
		TimeoutMs:        getEnvInt("TIMEOUT", 0),
		Proxy:            getEnv("PROXY", ""),
		APIKey:           getEnv("API_KEY", ""),
		Debug:            getEnv("DEBUG", "off"),
		MetricsEnabled:   getEnvBool("METRICS_ENABLED", true),
		PprofAddr:        getEnv("PPROF_ADDR", ""),
	}
}

// Validate checks the values the relay depends on.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	u, err := url.Parse(c.AdsBaseURL)
	if err != nil {
		return fmt.Errorf("invalid ADS_API_BASE_URL: %w", err)
	}
	if u.Scheme != "https" || u.Host == "" {
		return fmt.Errorf("ADS_API_BASE_URL must be an absolute https URL, got %q", c.AdsBaseURL)
	}
	if strings.TrimSpace(c.AdsAPIVersion) == "" {
		return fmt.Errorf("ADS_API_VERSION must not be empty")
	}
	if c.Proxy != "" {
		if _, err := url.Parse(c.Proxy); err != nil {
			return fmt.Errorf("invalid PROXY: %w", err)
		}
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return b
		}
	}
	return defaultValue
}

package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig is the limit for one route. Path is a route pattern whose
// "{name}" segments match any single path segment; a trailing "/" matches any suffix.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int // requests per Window
	Window time.Duration
	Burst  int // bucket capacity, defaults to Limit
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	IdleTTL         time.Duration // buckets unused for longer are dropped
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// LoadConfig reads RATE_LIMIT_* environment variables.
func LoadConfig() *Config {
	if !getEnvBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", 600),
		DefaultWindow:   getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		IdleTTL:         getEnvDuration("RATE_LIMIT_IDLE_TTL", time.Hour),
		Whitelist:       parseIPList(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       parseIPList(os.Getenv("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: DefaultEndpointConfigs(getEnvInt("RATE_LIMIT_SEARCH_LIMIT", 120)),
	}
}

// DefaultEndpointConfigs returns the built-in per-route limits.
// searchLimit applies to candidate search, the most expensive read.
func DefaultEndpointConfigs(searchLimit int) []EndpointConfig {
	return []EndpointConfig{
		{Path: "/api/employer/candidates/search", Method: "GET", Limit: searchLimit, Window: time.Minute, Burst: max(searchLimit/4, 1)},

		{Path: "/api/employer/saved-candidates", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/api/employer/saved-candidates", Method: "DELETE", Limit: 120, Window: time.Minute, Burst: 20},

		{Path: "/api/jobs/{id}/applications", Method: "POST", Limit: 30, Window: time.Hour, Burst: 5},
		{Path: "/api/employer/jobs", Method: "POST", Limit: 60, Window: time.Hour, Burst: 10},
		{Path: "/api/employer/jobs/{id}/status", Method: "PATCH", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/api/employer/jobs/{id}", Method: "DELETE", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/api/candidate/profile", Method: "PUT", Limit: 60, Window: time.Minute, Burst: 10},

		{Path: "/api/account/password", Method: "PUT", Limit: 10, Window: time.Hour, Burst: 3},
	}
}

func getEnvInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}

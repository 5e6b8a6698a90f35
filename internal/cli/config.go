package cli

import (
	"os"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	Output    string
	NoColor   bool
	Verbose   bool
}

// DefaultConfig returns a Config with defaults overridable from the environment
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("FOURINAROW_SERVER", "http://localhost:8080"),
		Output:    getEnvOrDefault("FOURINAROW_OUTPUT", "text"),
		NoColor:   os.Getenv("NO_COLOR") != "",
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

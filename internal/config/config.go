package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrMissingCredential is returned by Validate when a required credential is absent.
var ErrMissingCredential = errors.New("config: missing required credential")

// Config holds application configuration
type Config struct {
	Env       string
	LogLevel  string
	LogFormat string

	// Gemini generation
	GeminiAPIKey string
	GeminiModel  string
	LLMTimeout   time.Duration

	// Optional Bedrock fallback generation
	BedrockModelID      string
	AWSRegion           string
	AWSAccessKeyID      string
	AWSSecretAccessKey  string
	AWSEndpointOverride string

	// Twilio WhatsApp delivery
	TwilioAccountSID   string
	TwilioAuthToken    string
	TwilioWhatsAppFrom string

	// Delivery retry strategy
	RetryMaxAttempts int
	RetryStep        time.Duration
	RetryBackoff     string

	MetricsAddr string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Env:       getEnv("ENV", "development"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: strings.ToLower(strings.TrimSpace(getEnv("LOG_FORMAT", "json"))),

		GeminiAPIKey: strings.TrimSpace(getEnv("GEMINI_API_KEY", "")),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		LLMTimeout:   getEnvAsDuration("LLM_TIMEOUT", 30*time.Second),

		BedrockModelID:      getEnv("BEDROCK_MODEL_ID", ""),
		AWSRegion:           getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:      getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey:  getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpointOverride: getEnv("AWS_ENDPOINT_OVERRIDE", ""),

		TwilioAccountSID:   strings.TrimSpace(getEnv("TWILIO_ACCOUNT_SID", "")),
		TwilioAuthToken:    strings.TrimSpace(getEnv("TWILIO_AUTH_TOKEN", "")),
		TwilioWhatsAppFrom: strings.TrimSpace(getEnv("TWILIO_WHATSAPP_FROM", "")),

		RetryMaxAttempts: getEnvAsInt("FOLLOWUP_RETRY_MAX_ATTEMPTS", 3),
		RetryStep:        getEnvAsDuration("FOLLOWUP_RETRY_STEP", 2*time.Second),
		RetryBackoff:     strings.ToLower(strings.TrimSpace(getEnv("FOLLOWUP_RETRY_BACKOFF", "linear"))),

		MetricsAddr: getEnv("METRICS_ADDR", ""),
	}
}

// Validate reports every missing credential in one error so operators can fix
// the environment in a single pass.
func (c *Config) Validate() error {
	var missing []string
	if c.GeminiAPIKey == "" {
		missing = append(missing, "GEMINI_API_KEY")
	}
	if c.TwilioAccountSID == "" {
		missing = append(missing, "TWILIO_ACCOUNT_SID")
	}
	if c.TwilioAuthToken == "" {
		missing = append(missing, "TWILIO_AUTH_TOKEN")
	}
	if c.TwilioWhatsAppFrom == "" {
		missing = append(missing, "TWILIO_WHATSAPP_FROM")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingCredential, strings.Join(missing, ", "))
	}
	if c.RetryMaxAttempts < 1 {
		return fmt.Errorf("config: FOLLOWUP_RETRY_MAX_ATTEMPTS must be at least 1, got %d", c.RetryMaxAttempts)
	}
	switch c.RetryBackoff {
	case "linear", "exponential":
	default:
		return fmt.Errorf("config: unknown FOLLOWUP_RETRY_BACKOFF %q", c.RetryBackoff)
	}
	return nil
}

// BedrockEnabled reports whether a fallback Bedrock model is configured.
func (c *Config) BedrockEnabled() bool {
	return strings.TrimSpace(c.BedrockModelID) != ""
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

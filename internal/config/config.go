package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const PROD_STRING = "prod"

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction      bool
	ProdOrigins       string
	HTTPAddr          string
	DBDSN             string
	JWTSecret         string
	JWTAccessTokenTTL time.Duration

	// Payment gateway credentials. Both empty means the gateway is not
	// configured: order creation fails, refund issuance is skipped.
	RazorpayKeyID     string
	RazorpayKeySecret string
	Currency          string

	// Settlement policy. Overridable so the split is never a hidden constant.
	PlatformFeeRate       float64
	CancelPenaltyTotal    float64
	CancelPenaltyOwner    float64
	CancelPenaltyPlatform float64
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		log.Printf("failed to load .env file: %v", err)
	}

	cfg := &Config{}

	// Production origin (default: empty)
	cfg.ProdOrigins = getEnv("PROD_ORIGINS", "")

	// Application environment (default: dev)
	appEnvStr := getEnv("APP_ENV", "dev")
	cfg.IsProduction = appEnvStr == PROD_STRING

	// HTTP listen address (default: :8080)
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

	// Database DSN is required
	cfg.DBDSN = os.Getenv("DB_DSN")
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}

	// JWT secret is required for validating tokens issued by the auth layer
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	// JWT access token TTL, parse as time.Duration (e.g. "15m", "1h").
	ttlStr := getEnv("JWT_ACCESS_TOKEN_TTL", "15m")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_TOKEN_TTL: %w", err)
	}
	cfg.JWTAccessTokenTTL = ttl

	// Gateway credentials are optional; the booking flow degrades per policy.
	cfg.RazorpayKeyID = getEnv("RAZORPAY_KEY_ID", "")
	cfg.RazorpayKeySecret = getEnv("RAZORPAY_KEY_SECRET", "")
	cfg.Currency = getEnv("CURRENCY", "INR")

	cfg.PlatformFeeRate, err = getEnvAsFloat("PLATFORM_FEE_RATE", 0.10)
	if err != nil {
		return nil, fmt.Errorf("invalid PLATFORM_FEE_RATE: %w", err)
	}
	cfg.CancelPenaltyTotal, err = getEnvAsFloat("CANCEL_PENALTY_TOTAL", 50)
	if err != nil {
		return nil, fmt.Errorf("invalid CANCEL_PENALTY_TOTAL: %w", err)
	}
	cfg.CancelPenaltyOwner, err = getEnvAsFloat("CANCEL_PENALTY_OWNER", 40)
	if err != nil {
		return nil, fmt.Errorf("invalid CANCEL_PENALTY_OWNER: %w", err)
	}
	cfg.CancelPenaltyPlatform, err = getEnvAsFloat("CANCEL_PENALTY_PLATFORM", 10)
	if err != nil {
		return nil, fmt.Errorf("invalid CANCEL_PENALTY_PLATFORM: %w", err)
	}

	if cfg.CancelPenaltyOwner+cfg.CancelPenaltyPlatform != cfg.CancelPenaltyTotal {
		return nil, fmt.Errorf("cancel penalty split (%v + %v) must equal total (%v)",
			cfg.CancelPenaltyOwner, cfg.CancelPenaltyPlatform, cfg.CancelPenaltyTotal)
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

// getEnvAsFloat retrieves an environment variable as a float64.
// It returns the default value if the variable is not set.
// It returns an error if the variable is set but is not a valid number.
func getEnvAsFloat(key string, defaultValue float64) (float64, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseFloat(valStr, 64)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid number: %w", key, valStr, err)
	}

	return val, nil
}

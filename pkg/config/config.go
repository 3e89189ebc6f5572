package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// OTP login
	RedisURL         string
	OTPTTL           time.Duration
	OTPRateLimit     string // ulule/limiter format, e.g. "5-M"
	OTPSendDisabled  bool   // skip SMS dispatch, for development

	// Recompute retry queue. An empty AMQPURL disables the queue; refresh
	// failures are then only logged.
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Analytics
	PostHogAPIKey   string
	PostHogEndpoint string

	FrontendBaseURL string
}

// LoadConfig loads configuration from environment variables and a .env file
// if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "24h")
	viper.SetDefault("JWT_ISSUER", "gigpaisa-backend")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("OTP_TTL", "5m")
	viper.SetDefault("OTP_RATE_LIMIT", "5-M")
	viper.SetDefault("OTP_SEND_DISABLED", false)
	viper.SetDefault("AMQP_URL", "")
	viper.SetDefault("AMQP_EXCHANGE", "gigpaisa")
	viper.SetDefault("AMQP_QUEUE", "recompute")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_ENDPOINT", "https://us.i.posthog.com")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiry, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiry = 24 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiry)
	}
	cfg.JWTExpiryDuration = jwtExpiry
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.RedisURL = viper.GetString("REDIS_URL")
	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set. OTP codes will use the in-memory store.")
	}

	otpTTLStr := viper.GetString("OTP_TTL")
	otpTTL, err := time.ParseDuration(otpTTLStr)
	if err != nil {
		otpTTL = 5 * time.Minute
		log.Printf("Warning: Invalid value for OTP_TTL ('%s'). Defaulting to %s.\n", otpTTLStr, otpTTL)
	}
	cfg.OTPTTL = otpTTL
	cfg.OTPRateLimit = viper.GetString("OTP_RATE_LIMIT")
	cfg.OTPSendDisabled = viper.GetBool("OTP_SEND_DISABLED")

	cfg.AMQPURL = viper.GetString("AMQP_URL")
	if cfg.AMQPURL == "" {
		log.Println("Warning: AMQP_URL not set. Recompute retry queue disabled.")
	}
	cfg.AMQPExchange = viper.GetString("AMQP_EXCHANGE")
	cfg.AMQPQueue = viper.GetString("AMQP_QUEUE")

	cfg.PostHogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.PostHogEndpoint = viper.GetString("POSTHOG_ENDPOINT")
	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")

	return cfg, nil
}

package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	RedisAddr     string
	RedisPassword string
	Port          string
	IsProduction  bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	RefreshTokenExpiryDuration time.Duration
	RefreshTokenCookieName     string
	RefreshTokenCookiePath     string

	CoinrankingAPIKey string
	PosthogAPIKey     string

	StartingBalance  decimal.Decimal
	MaxDepositAmount decimal.Decimal

	FrontendBaseURL string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("REDIS_ADDR", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "boldtrade-backend")
	viper.SetDefault("REFRESH_TOKEN_EXPIRY_DURATION", "168h")
	viper.SetDefault("REFRESH_TOKEN_COOKIE_NAME", "rtid")
	viper.SetDefault("REFRESH_TOKEN_COOKIE_PATH", "/api/v1/auth")
	viper.SetDefault("COINRANKING_API_KEY", "")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("STARTING_BALANCE", "10000")
	viper.SetDefault("MAX_DEPOSIT_AMOUNT", "50000")
	viper.SetDefault("FRONTEND_BASE_URL", "http://localhost:3000")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL not set. Falling back to the in-memory account store.")
	}

	cfg.RedisAddr = viper.GetString("REDIS_ADDR")
	if cfg.RedisAddr == "" {
		log.Println("Warning: REDIS_ADDR not set. Falling back to the in-memory session store.")
	}
	cfg.RedisPassword = viper.GetString("REDIS_PASSWORD")

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration)
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	refreshExpiryStr := viper.GetString("REFRESH_TOKEN_EXPIRY_DURATION")
	refreshExpiryDuration, err := time.ParseDuration(refreshExpiryStr)
	if err != nil {
		refreshExpiryDuration = time.Hour * 24 * 7
		log.Printf("Warning: Invalid value for REFRESH_TOKEN_EXPIRY_DURATION ('%s'). Defaulting to %s.\n", refreshExpiryStr, refreshExpiryDuration)
	}
	cfg.RefreshTokenExpiryDuration = refreshExpiryDuration
	cfg.RefreshTokenCookieName = viper.GetString("REFRESH_TOKEN_COOKIE_NAME")
	cfg.RefreshTokenCookiePath = viper.GetString("REFRESH_TOKEN_COOKIE_PATH")

	cfg.CoinrankingAPIKey = viper.GetString("COINRANKING_API_KEY")
	if cfg.CoinrankingAPIKey == "" {
		log.Println("Warning: COINRANKING_API_KEY not set. Price quotes will use fallback reference prices.")
	}

	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")

	startingBalance, err := decimal.NewFromString(viper.GetString("STARTING_BALANCE"))
	if err != nil || startingBalance.IsNegative() {
		startingBalance = decimal.NewFromInt(10000)
		log.Printf("Warning: Invalid value for STARTING_BALANCE. Defaulting to %s.\n", startingBalance)
	}
	cfg.StartingBalance = startingBalance

	maxDeposit, err := decimal.NewFromString(viper.GetString("MAX_DEPOSIT_AMOUNT"))
	if err != nil || !maxDeposit.IsPositive() {
		maxDeposit = decimal.NewFromInt(50000)
		log.Printf("Warning: Invalid value for MAX_DEPOSIT_AMOUNT. Defaulting to %s.\n", maxDeposit)
	}
	cfg.MaxDepositAmount = maxDeposit

	cfg.FrontendBaseURL = viper.GetString("FRONTEND_BASE_URL")

	return cfg, nil
}

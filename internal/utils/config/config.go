package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/coinvault/transfer-gateway/internal/consts"
	"github.com/coinvault/transfer-gateway/internal/types/environments"
)

type AppConfig struct {
	Environment environments.Environment
	ApiServer   ApiServerConfig
	Postgres    DBConnection
	Custody     CustodyConfig
	PriceFeed   PriceFeedConfig
	Flow        FlowConfig
}

type ApiServerConfig struct {
	Port           string
	AllowedOrigins string
}

type DBConnection struct {
	Host string
	Port string
	User string
	Name string
	Pass string

	SSLMode string
}

// CustodyConfig points at the custodial backend that owns the ledger, OTP
// validation and confirmation counting.
type CustodyConfig struct {
	APIBaseURL     string
	RequestTimeout time.Duration
}

type PriceFeedConfig struct {
	APIBaseURL string
}

type FlowConfig struct {
	PollInterval      time.Duration
	OtpResendCooldown time.Duration
	SnapshotRetention time.Duration
}

func New() *AppConfig {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	// this will not override env variables if they already exist
	godotenv.Load(".env." + env)

	return &AppConfig{
		Environment: environments.Environment(env),
		ApiServer: ApiServerConfig{
			Port:           envVarWithDefault("API_SERVER_PORT", "8080"),
			AllowedOrigins: os.Getenv("ALLOWED_ORIGINS"),
		},
		Postgres: DBConnection{
			Host:    os.Getenv("DB_HOST"),
			Port:    os.Getenv("DB_PORT"),
			User:    os.Getenv("DB_USER"),
			Name:    os.Getenv("DB_NAME"),
			Pass:    os.Getenv("DB_PASS"),
			SSLMode: os.Getenv("DB_SSL_MODE"),
		},
		Custody: CustodyConfig{
			APIBaseURL:     os.Getenv("CUSTODY_API_BASE_URL"),
			RequestTimeout: envVarAsDuration("CUSTODY_REQUEST_TIMEOUT", 15*time.Second),
		},
		PriceFeed: PriceFeedConfig{
			APIBaseURL: envVarWithDefault("PRICE_FEED_API_BASE_URL", "https://api.coingecko.com/api/v3"),
		},
		Flow: FlowConfig{
			PollInterval:      envVarAsDuration("RECEIPT_POLL_INTERVAL", consts.RECEIPT_POLL_INTERVAL),
			OtpResendCooldown: envVarAsDuration("OTP_RESEND_COOLDOWN", consts.OTP_RESEND_COOLDOWN),
			SnapshotRetention: envVarAsDuration("SNAPSHOT_RETENTION", 24*time.Hour),
		},
	}
}

func envVarWithDefault(envName, defaultValue string) string {
	value := os.Getenv(envName)
	if value == "" {
		return defaultValue
	}
	return value
}

func envVarAsDuration(envName string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(envName)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

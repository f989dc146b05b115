package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	FrontAPI          string `mapstructure:"FRONT_API"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// MongoDB configuration.
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	MongoTransactions bool   `mapstructure:"MONGO_TRANSACTIONS"`

	// Redis configuration.
	RedisAddr       string        `mapstructure:"REDIS_ADDR"`
	RedisPassword   string        `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB    int           `mapstructure:"REDIS_CACHE_DB"`
	RedisQueueDB    int           `mapstructure:"REDIS_QUEUE_DB"`
	ProfileCacheTTL time.Duration `mapstructure:"PROFILE_CACHE_TTL"`

	// Stripe.
	StripeKey       string `mapstructure:"STRIPE_SECRET_KEY"`
	PaymentCurrency string `mapstructure:"PAYMENT_CURRENCY"`

	// Booking rules.
	CivilTimezone string        `mapstructure:"CIVIL_TIMEZONE"`
	HoldTTL       time.Duration `mapstructure:"HOLD_TTL"`

	// Expiry sweep.
	SweepDriver   string        `mapstructure:"SWEEP_DRIVER"`
	SweepCron     string        `mapstructure:"SWEEP_CRON"`
	SweepInterval time.Duration `mapstructure:"SWEEP_INTERVAL"`
	SweepBatch    int           `mapstructure:"SWEEP_BATCH"`

	// RabbitMQ; lifecycle events are dropped when empty.
	RabbitMQURL string `mapstructure:"RABBITMQ_URL"`
}

var AppConfig Config

func LoadConfig() {
	// A local .env is optional; real environment variables still win.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, skipping")
	}

	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("FRONT_API", "*")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "matehub")
	viper.SetDefault("MONGO_TRANSACTIONS", false)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("PROFILE_CACHE_TTL", "10m")
	viper.SetDefault("STRIPE_SECRET_KEY", "")
	viper.SetDefault("PAYMENT_CURRENCY", "thb")
	viper.SetDefault("CIVIL_TIMEZONE", "Asia/Bangkok")
	viper.SetDefault("HOLD_TTL", "10m")
	viper.SetDefault("SWEEP_DRIVER", "asynq")
	viper.SetDefault("SWEEP_CRON", "*/5 * * * *")
	viper.SetDefault("SWEEP_INTERVAL", "5m")
	viper.SetDefault("SWEEP_BATCH", 50)
	viper.SetDefault("RABBITMQ_URL", "")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// CivilLocation resolves the timezone used for availability checks.
func CivilLocation() (*time.Location, error) {
	return time.LoadLocation(AppConfig.CivilTimezone)
}

package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Booking  BookingConfig
	Payment  PaymentConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Admin    AdminConfig
}

type AppConfig struct {
	Name          string
	Port          string
	Debug         bool
	LogPath       string
	AllowedOrigin string
}

type DatabaseConfig struct {
	Host        string
	Port        string
	Name        string
	User        string
	Password    string
	MaxConns    int32
	AutoMigrate bool
	SeedCatalog bool
}

type BookingConfig struct {
	HoldMinutes            int
	CodeMaxAttempts        int
	RequireHoldToken       bool
	CancelOnPaymentFailure bool
	ReaperIntervalSeconds  int
}

// HoldDuration returns how long a seat hold lives before lazy expiry reclaims it.
func (c BookingConfig) HoldDuration() time.Duration {
	return time.Duration(c.HoldMinutes) * time.Minute
}

// Validate rejects settings that would make every hold or booking fail.
func (c BookingConfig) Validate() error {
	if c.HoldMinutes <= 0 {
		return fmt.Errorf("BOOKING_HOLD_MINUTES must be positive, got %d", c.HoldMinutes)
	}
	if c.CodeMaxAttempts <= 0 {
		return fmt.Errorf("BOOKING_CODE_MAX_ATTEMPTS must be positive, got %d", c.CodeMaxAttempts)
	}
	if c.ReaperIntervalSeconds < 0 {
		return fmt.Errorf("BOOKING_REAPER_INTERVAL_SECONDS must not be negative, got %d", c.ReaperIntervalSeconds)
	}
	return nil
}

// ReaperInterval is zero when the background reaper is disabled.
func (c BookingConfig) ReaperInterval() time.Duration {
	return time.Duration(c.ReaperIntervalSeconds) * time.Second
}

type PaymentConfig struct {
	Provider    string
	SuccessRate float64
}

type RedisConfig struct {
	Addr            string
	Password        string
	DB              int
	TripCacheTTLSec int
}

type KafkaConfig struct {
	Brokers      []string
	BookingTopic string
	GroupID      string
}

type AdminConfig struct {
	KeyHash string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "bus-booking")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("CORS_ORIGIN", "http://localhost:5173")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("DB_AUTO_MIGRATE", false)
	viper.SetDefault("DB_SEED_CATALOG", false)
	viper.SetDefault("BOOKING_HOLD_MINUTES", 5)
	viper.SetDefault("BOOKING_CODE_MAX_ATTEMPTS", 10)
	viper.SetDefault("BOOKING_REQUIRE_HOLD_TOKEN", false)
	viper.SetDefault("BOOKING_CANCEL_ON_PAYMENT_FAILURE", false)
	viper.SetDefault("BOOKING_REAPER_INTERVAL_SECONDS", 0)
	viper.SetDefault("PAYMENT_PROVIDER", "orange_money")
	viper.SetDefault("PAYMENT_SUCCESS_RATE", 0.9)
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_TRIP_CACHE_TTL_SECONDS", 60)
	viper.SetDefault("KAFKA_BOOKING_TOPIC", "booking-events")
	viper.SetDefault("KAFKA_GROUP_ID", "bus-booking-notifier")

	if err := viper.ReadInConfig(); err != nil {
		// no .env is fine, defaults and the environment still apply
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:          viper.GetString("APP_NAME"),
			Port:          viper.GetString("PORT"),
			Debug:         viper.GetBool("DEBUG"),
			LogPath:       viper.GetString("LOG_PATH"),
			AllowedOrigin: viper.GetString("CORS_ORIGIN"),
		},
		Database: DatabaseConfig{
			Host:        viper.GetString("DB_HOST"),
			Port:        viper.GetString("DB_PORT"),
			Name:        viper.GetString("DB_NAME"),
			User:        viper.GetString("DB_USER"),
			Password:    viper.GetString("DB_PASS"),
			MaxConns:    viper.GetInt32("DB_MAX_CONNS"),
			AutoMigrate: viper.GetBool("DB_AUTO_MIGRATE"),
			SeedCatalog: viper.GetBool("DB_SEED_CATALOG"),
		},
		Booking: BookingConfig{
			HoldMinutes:            viper.GetInt("BOOKING_HOLD_MINUTES"),
			CodeMaxAttempts:        viper.GetInt("BOOKING_CODE_MAX_ATTEMPTS"),
			RequireHoldToken:       viper.GetBool("BOOKING_REQUIRE_HOLD_TOKEN"),
			CancelOnPaymentFailure: viper.GetBool("BOOKING_CANCEL_ON_PAYMENT_FAILURE"),
			ReaperIntervalSeconds:  viper.GetInt("BOOKING_REAPER_INTERVAL_SECONDS"),
		},
		Payment: PaymentConfig{
			Provider:    viper.GetString("PAYMENT_PROVIDER"),
			SuccessRate: viper.GetFloat64("PAYMENT_SUCCESS_RATE"),
		},
		Redis: RedisConfig{
			Addr:            viper.GetString("REDIS_ADDR"),
			Password:        viper.GetString("REDIS_PASSWORD"),
			DB:              viper.GetInt("REDIS_DB"),
			TripCacheTTLSec: viper.GetInt("REDIS_TRIP_CACHE_TTL_SECONDS"),
		},
		Kafka: KafkaConfig{
			Brokers:      splitList(viper.GetString("KAFKA_BROKERS")),
			BookingTopic: viper.GetString("KAFKA_BOOKING_TOPIC"),
			GroupID:      viper.GetString("KAFKA_GROUP_ID"),
		},
		Admin: AdminConfig{
			KeyHash: viper.GetString("ADMIN_KEY_HASH"),
		},
	}

	if err := config.Booking.Validate(); err != nil {
		return nil, fmt.Errorf("invalid booking config: %w", err)
	}
	if rate := config.Payment.SuccessRate; rate < 0 || rate > 1 {
		return nil, fmt.Errorf("invalid payment config: PAYMENT_SUCCESS_RATE must be within [0, 1], got %v", rate)
	}

	return config, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

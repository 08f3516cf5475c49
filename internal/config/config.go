package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the guest portal gateway.
type Config struct {
	Port   string
	AppEnv string

	HotelAPI HotelAPIConfig
	Redis    RedisConfig
	CORS     CORSConfig
}

// HotelAPIConfig locates the remote hotel REST API.
type HotelAPIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// RedisConfig configures the optional hotel-info cache. An empty Addr
// disables redis and falls back to the in-process cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// CORSConfig lists the portal frontends allowed to call the gateway.
type CORSConfig struct {
	AllowOrigins []string
}

// Load reads configuration from environment variables, with an optional
// .env file for local development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("PORTAL")
	v.AutomaticEnv()

	v.SetDefault("PORT", ":8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("API_TIMEOUT", "15s")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_TTL", "5m")
	v.SetDefault("CORS_ORIGINS", []string{"http://localhost:5173"})

	baseURL := v.GetString("API_BASE_URL")
	if baseURL == "" {
		return nil, fmt.Errorf("PORTAL_API_BASE_URL is required")
	}

	return &Config{
		Port:   v.GetString("PORT"),
		AppEnv: v.GetString("APP_ENV"),
		HotelAPI: HotelAPIConfig{
			BaseURL: baseURL,
			Timeout: v.GetDuration("API_TIMEOUT"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			TTL:      v.GetDuration("CACHE_TTL"),
		},
		CORS: CORSConfig{
			AllowOrigins: v.GetStringSlice("CORS_ORIGINS"),
		},
	}, nil
}

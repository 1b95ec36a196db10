package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Booking backend REST API.
	BackendBaseURL string `mapstructure:"BACKEND_BASE_URL"`

	// Redis configuration (geocode result cache).
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisGeocodeDB int    `mapstructure:"REDIS_GEOCODE_DB"`

	// Google Maps API Key.
	GoogleAPIKey string `mapstructure:"GOOGLE_API_KEY"`

	// Geocode cache entry lifetime, in minutes.
	GeocodeCacheTTLMin int `mapstructure:"GEOCODE_CACHE_TTL_MIN"`

	// Default map viewport the landing page resets to.
	DefaultMapLat  float64 `mapstructure:"DEFAULT_MAP_LAT"`
	DefaultMapLng  float64 `mapstructure:"DEFAULT_MAP_LNG"`
	DefaultMapZoom int     `mapstructure:"DEFAULT_MAP_ZOOM"`

	// Idle lifetime of widget sessions, in minutes.
	SessionTTLMin int `mapstructure:"SESSION_TTL_MIN"`
}

var AppConfig Config

func LoadConfig() {
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
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("BACKEND_BASE_URL", "http://localhost:8000/api/v1")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_GEOCODE_DB", 0)
	viper.SetDefault("GOOGLE_API_KEY", "")
	viper.SetDefault("GEOCODE_CACHE_TTL_MIN", 1440)
	viper.SetDefault("DEFAULT_MAP_LAT", 40.4168)
	viper.SetDefault("DEFAULT_MAP_LNG", -3.7038)
	viper.SetDefault("DEFAULT_MAP_ZOOM", 12)
	viper.SetDefault("SESSION_TTL_MIN", 30)

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

package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config holds all configuration for the affiliate service
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Redis     RedisConfig     `mapstructure:"redis"`
	NATS      NATSConfig      `mapstructure:"nats"`
	Affiliate AffiliateConfig `mapstructure:"affiliate"`
}

// AppConfig holds application configuration
type AppConfig struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
	Port string `mapstructure:"port"`
}

// RedisConfig holds Redis cache configuration
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// NATSConfig holds NATS configuration
type NATSConfig struct {
	URL string `mapstructure:"url"`
}

// AffiliateConfig holds Shopee affiliate open API configuration
type AffiliateConfig struct {
	AppID           string `mapstructure:"app_id"`
	Secret          string `mapstructure:"secret"`
	Endpoint        string `mapstructure:"endpoint"`
	CacheTTLMinutes int    `mapstructure:"cache_ttl_minutes"`
}

// IsConfigured returns true if the affiliate credentials are present.
func (c AffiliateConfig) IsConfigured() bool {
	return c.AppID != "" && c.Secret != ""
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	v := viper.New()

	// Automatically load environment variables
	v.AutomaticEnv()
	v.SetEnvPrefix("") // No prefix, read exact variable names

	// Bind specific environment variables
	_ = v.BindEnv("app.name", "APP_NAME")
	_ = v.BindEnv("app.env", "APP_ENV")
	_ = v.BindEnv("app.port", "APP_PORT")

	// Redis
	_ = v.BindEnv("redis.host", "REDIS_HOST")
	_ = v.BindEnv("redis.port", "REDIS_PORT")
	_ = v.BindEnv("redis.password", "REDIS_PASSWORD")
	_ = v.BindEnv("redis.db", "REDIS_DB")

	_ = v.BindEnv("nats.url", "NATS_URL")

	// Affiliate API
	_ = v.BindEnv("affiliate.app_id", "AFFILIATE_APP_ID")
	_ = v.BindEnv("affiliate.secret", "AFFILIATE_SECRET")
	_ = v.BindEnv("affiliate.endpoint", "AFFILIATE_ENDPOINT")
	_ = v.BindEnv("affiliate.cache_ttl_minutes", "REPORT_CACHE_TTL_MINUTES")

	// Set defaults
	setDefaults(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	// App
	v.SetDefault("app.name", "service-affiliate")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8011")

	// Redis
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	// NATS is optional; no default URL so the publisher stays off unless set.
	v.SetDefault("nats.url", "")

	// Affiliate
	v.SetDefault("affiliate.endpoint", "")
	v.SetDefault("affiliate.cache_ttl_minutes", 10)
}

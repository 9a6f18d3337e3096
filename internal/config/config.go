package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Config carries everything the server needs. Secrets and credentials are injected
// from here instead of being read from the environment inside controllers.
type Config struct {
	Port          string   `mapstructure:"API_PORT"`
	Env           string   `mapstructure:"ENV"`
	MongoURI      string   `mapstructure:"MONGO_URI"`
	MongoDatabase string   `mapstructure:"MONGO_DATABASE"`
	JWTSecret     string   `mapstructure:"JWT_SECRET"`
	AdminEmail    string   `mapstructure:"ADMIN_EMAIL"`
	AdminPassword string   `mapstructure:"ADMIN_PASSWORD"`
	Currency      string   `mapstructure:"CURRENCY"`
	CORSOrigins   []string `mapstructure:"CORS_ORIGINS"`

	S3Region     string `mapstructure:"S3_REGION"`
	S3Bucket     string `mapstructure:"S3_BUCKET"`
	S3KeyPrefix  string `mapstructure:"S3_KEY_PREFIX"`

	RazorpayKeyID     string `mapstructure:"RAZORPAY_KEY_ID"`
	RazorpayKeySecret string `mapstructure:"RAZORPAY_KEY_SECRET"`
	RazorpayBaseURL   string `mapstructure:"RAZORPAY_BASE_URL"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("API_PORT", "4000")
	v.SetDefault("ENV", "development")
	v.SetDefault("MONGO_DATABASE", "docslot")
	v.SetDefault("CURRENCY", "INR")
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173,http://localhost:5174")
	v.SetDefault("S3_KEY_PREFIX", "images")
	v.SetDefault("RAZORPAY_BASE_URL", "https://api.razorpay.com")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("API_PORT")
	v.BindEnv("ENV")
	v.BindEnv("MONGO_URI")
	v.BindEnv("MONGO_DATABASE")
	v.BindEnv("JWT_SECRET")
	v.BindEnv("ADMIN_EMAIL")
	v.BindEnv("ADMIN_PASSWORD")
	v.BindEnv("CURRENCY")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("S3_REGION")
	v.BindEnv("S3_BUCKET")
	v.BindEnv("S3_KEY_PREFIX")
	v.BindEnv("RAZORPAY_KEY_ID")
	v.BindEnv("RAZORPAY_KEY_SECRET")
	v.BindEnv("RAZORPAY_BASE_URL")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// CORS_ORIGINS arrives comma-separated; viper's decode hook splits it,
	// this just strips stray whitespace around the entries.
	for i := range cfg.CORSOrigins {
		cfg.CORSOrigins[i] = strings.TrimSpace(cfg.CORSOrigins[i])
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is not configured")
	}
	if cfg.MongoURI == "" {
		return nil, errors.New("MONGO_URI is not configured")
	}

	return &cfg, nil
}

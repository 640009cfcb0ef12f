package config

import (
	"errors"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server  ServerConfig
	Storage StorageConfig
}

type ServerConfig struct {
	Port       string
	CORSOrigin string
	LogLevel   string
}

type StorageConfig struct {
	Endpoint          string
	Region            string
	Bucket            string
	AccessKey         string
	SecretKey         string
	UseSSL            bool
	PresignTTLSeconds int
}

// Load reads configuration from the environment, with a .env file as
// fallback. Every value is a pass-through; the only defaulted policy
// knob is the presign TTL.
func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("CORS_ORIGIN", "*")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("S3_ENDPOINT", "s3.amazonaws.com")
	viper.SetDefault("S3_REGION", "ap-south-1")
	viper.SetDefault("S3_USE_SSL", true)
	viper.SetDefault("PRESIGN_TTL_SECONDS", 3600)

	// Read from environment variables
	viper.AutomaticEnv()

	return &Config{
		Server: ServerConfig{
			Port:       viper.GetString("SERVER_PORT"),
			CORSOrigin: viper.GetString("CORS_ORIGIN"),
			LogLevel:   viper.GetString("LOG_LEVEL"),
		},
		Storage: StorageConfig{
			Endpoint:          viper.GetString("S3_ENDPOINT"),
			Region:            viper.GetString("S3_REGION"),
			Bucket:            viper.GetString("S3_BUCKET"),
			AccessKey:         viper.GetString("S3_ACCESS_KEY"),
			SecretKey:         viper.GetString("S3_SECRET_KEY"),
			UseSSL:            viper.GetBool("S3_USE_SSL"),
			PresignTTLSeconds: viper.GetInt("PRESIGN_TTL_SECONDS"),
		},
	}
}

// Validate checks the values the server cannot run without.
func (c *Config) Validate() error {
	if c.Storage.Bucket == "" {
		return errors.New("S3_BUCKET must be set")
	}
	if c.Storage.PresignTTLSeconds <= 0 {
		return errors.New("PRESIGN_TTL_SECONDS must be positive")
	}
	return nil
}

// PresignTTL returns the signed-URL lifetime as a duration.
func (c *Config) PresignTTL() time.Duration {
	return time.Duration(c.Storage.PresignTTLSeconds) * time.Second
}

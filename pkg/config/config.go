package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port                    string         `mapstructure:"PORT"`
	Env                     string         `mapstructure:"ENV"`
	LogLevel                string         `mapstructure:"LOG_LEVEL"`
	FirebaseCredentialsPath string         `mapstructure:"FIREBASE_CREDENTIALS_PATH"`
	JWTSecret               string         `mapstructure:"JWT_SECRET"`
	JWTExpiry               time.Duration  `mapstructure:"JWT_EXPIRY"`
	Database                DatabaseConfig `mapstructure:"-"`
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"DB_DRIVER"` // postgres or sqlite
	URL             string        `mapstructure:"DATABASE_URL"`
	MaxIdleConns    int           `mapstructure:"DB_MAX_IDLE_CONNS"`
	MaxOpenConns    int           `mapstructure:"DB_MAX_OPEN_CONNS"`
	ConnMaxLifetime time.Duration `mapstructure:"DB_CONN_MAX_LIFETIME"`
	LogLevel        string        `mapstructure:"DB_LOG_LEVEL"` // silent, error, warn, info
}

var defaults = map[string]any{
	"PORT":                      "8080",
	"ENV":                       "development",
	"LOG_LEVEL":                 "info",
	"FIREBASE_CREDENTIALS_PATH": "",
	"JWT_SECRET":                "supersecretjwtkey",
	"JWT_EXPIRY":                "72h",
	"DB_DRIVER":                 "postgres",
	"DATABASE_URL":              "host=localhost user=postgres password=postgres dbname=dispatch port=5432 sslmode=disable",
	"DB_MAX_IDLE_CONNS":         10,
	"DB_MAX_OPEN_CONNS":         100,
	"DB_CONN_MAX_LIFETIME":      "1h",
	"DB_LOG_LEVEL":              "warn",
}

// Load reads .env (when present) and the process environment into a Config.
// Environment variables win over .env values.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := v.Unmarshal(&cfg.Database); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

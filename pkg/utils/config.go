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
	App          AppConfig
	Database     DatabaseConfig
	JWT          JWTConfig
	Email        EmailConfig
	Confirmation ConfirmationConfig
	RateLimit    RateLimitConfig
}

type AppConfig struct {
	Name           string
	Port           string
	Debug          bool
	LogPath        string
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host        string
	Port        string
	Name        string
	User        string
	Password    string
	SSLMode     string
	MaxConns    int32
	AutoMigrate bool
}

// DSN returns a postgres:// URL usable by both pgxpool and golang-migrate.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

type JWTConfig struct {
	Secret      string
	Issuer      string
	ExpiryHours int
}

func (c JWTConfig) TTL() time.Duration {
	return time.Duration(c.ExpiryHours) * time.Hour
}

type EmailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type ConfirmationConfig struct {
	ExpiryHours int
}

func (c ConfirmationConfig) TTL() time.Duration {
	return time.Duration(c.ExpiryHours) * time.Hour
}

type RateLimitConfig struct {
	AuthRequests int
	AuthWindow   time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "media-review")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("DB_AUTO_MIGRATE", true)
	viper.SetDefault("JWT_ISSUER", "media-review")
	viper.SetDefault("JWT_EXPIRY_HOURS", 24)
	viper.SetDefault("CONFIRMATION_CODE_EXPIRY_HOURS", 72)
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("EMAIL_FROM", "noreply@media-review.local")
	viper.SetDefault("AUTH_RATE_LIMIT_REQUESTS", 10)
	viper.SetDefault("AUTH_RATE_LIMIT_WINDOW_SECONDS", 60)

	// .env is optional, plain environment variables are enough in containers
	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:           viper.GetString("APP_NAME"),
			Port:           viper.GetString("PORT"),
			Debug:          viper.GetBool("DEBUG"),
			LogPath:        viper.GetString("LOG_PATH"),
			AllowedOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Database: DatabaseConfig{
			Host:        viper.GetString("DB_HOST"),
			Port:        viper.GetString("DB_PORT"),
			Name:        viper.GetString("DB_NAME"),
			User:        viper.GetString("DB_USER"),
			Password:    viper.GetString("DB_PASS"),
			SSLMode:     viper.GetString("DB_SSLMODE"),
			MaxConns:    viper.GetInt32("DB_MAX_CONNS"),
			AutoMigrate: viper.GetBool("DB_AUTO_MIGRATE"),
		},
		JWT: JWTConfig{
			Secret:      viper.GetString("JWT_SECRET"),
			Issuer:      viper.GetString("JWT_ISSUER"),
			ExpiryHours: viper.GetInt("JWT_EXPIRY_HOURS"),
		},
		Email: EmailConfig{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetInt("SMTP_PORT"),
			User:     viper.GetString("SMTP_USER"),
			Password: viper.GetString("SMTP_PASS"),
			From:     viper.GetString("EMAIL_FROM"),
		},
		Confirmation: ConfirmationConfig{
			ExpiryHours: viper.GetInt("CONFIRMATION_CODE_EXPIRY_HOURS"),
		},
		RateLimit: RateLimitConfig{
			AuthRequests: viper.GetInt("AUTH_RATE_LIMIT_REQUESTS"),
			AuthWindow:   time.Duration(viper.GetInt("AUTH_RATE_LIMIT_WINDOW_SECONDS")) * time.Second,
		},
	}

	if config.JWT.Secret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}

	return config, nil
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

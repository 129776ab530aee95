package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/kiwari-pos/floor/internal/enum"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	defaultJWTSecret = "dev-secret-change-in-production"
)

// StaffAccount is a sign-in account as written in config.yaml.
type StaffAccount struct {
	ID           string        `mapstructure:"id" yaml:"id"`
	Name         string        `mapstructure:"name" yaml:"name"`
	Email        string        `mapstructure:"email" yaml:"email"`
	PasswordHash string        `mapstructure:"password_hash" yaml:"password_hash"`
	Role         enum.UserRole `mapstructure:"role" yaml:"role"`
}

type Config struct {
	Port           string
	JWTSecret      string
	TaxRate        decimal.Decimal
	SeedFile       string
	AllowedOrigins []string
	Staff          []StaffAccount
}

// Load reads config.yaml from $CONFIG_DIR (default ".") and overlays
// environment variables. A missing config.yaml is not an error.
func Load() (*Config, error) {
	dir := os.Getenv("CONFIG_DIR")
	if dir == "" {
		dir = "."
	}
	return LoadFrom(dir)
}

// LoadFrom is Load with an explicit config directory.
func LoadFrom(dir string) (*Config, error) {
	v := viper.New()
	v.SetDefault("port", "8081")
	v.SetDefault("jwt_secret", defaultJWTSecret)
	v.SetDefault("tax_rate", "0.10")
	v.SetDefault("seed_file", "")
	v.SetDefault("allowed_origins", "http://localhost:5173")
	v.SetDefault("staff_id", "user1")
	v.SetDefault("staff_name", "Ibrahim Kadri")
	v.SetDefault("staff_role", string(enum.UserRoleAdmin))
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(dir)
	v.AutomaticEnv()

	// AutomaticEnv only covers keys viper already knows about.
	for _, key := range []string{"staff_email", "staff_password_hash"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	taxRate, err := decimal.NewFromString(v.GetString("tax_rate"))
	if err != nil {
		return nil, fmt.Errorf("tax_rate: %w", err)
	}
	if taxRate.IsNegative() || taxRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("tax_rate must be in [0, 1), got %s", taxRate)
	}

	cfg := &Config{
		Port:           v.GetString("port"),
		JWTSecret:      v.GetString("jwt_secret"),
		TaxRate:        taxRate,
		SeedFile:       v.GetString("seed_file"),
		AllowedOrigins: splitList(v.GetString("allowed_origins")),
	}

	if err := v.UnmarshalKey("staff", &cfg.Staff); err != nil {
		return nil, fmt.Errorf("staff: %w", err)
	}
	if email := v.GetString("staff_email"); email != "" {
		cfg.Staff = append(cfg.Staff, StaffAccount{
			ID:           v.GetString("staff_id"),
			Name:         v.GetString("staff_name"),
			Email:        email,
			PasswordHash: v.GetString("staff_password_hash"),
			Role:         enum.UserRole(v.GetString("staff_role")),
		})
	}
	for i, s := range cfg.Staff {
		if s.ID == "" || s.Email == "" || s.PasswordHash == "" {
			return nil, fmt.Errorf("staff[%d]: id, email and password_hash are required", i)
		}
		if !s.Role.Valid() {
			return nil, fmt.Errorf("staff[%d]: invalid role %q", i, s.Role)
		}
	}

	return cfg, nil
}

// DevSecret reports whether the built-in development JWT secret is in use.
func (c *Config) DevSecret() bool {
	return c.JWTSecret == defaultJWTSecret
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' }) {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

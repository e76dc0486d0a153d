package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port     string `mapstructure:"PORT"`
	DBDSN    string `mapstructure:"DB_DSN"`
	AppName  string `mapstructure:"APP_NAME"`
	Timezone string `mapstructure:"TIMEZONE"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	// Con secreto se validan los JWT localmente; si no, con SUPABASE_URL
	// se consulta al servicio de auth. Sin ninguno => modo dev (X-Debug-User-ID).
	AuthJWTSecret string `mapstructure:"AUTH_JWT_SECRET"`
	AuthAudience  string `mapstructure:"AUTH_AUDIENCE"`
	AuthIssuer    string `mapstructure:"AUTH_ISSUER"`

	SupabaseURL     string `mapstructure:"SUPABASE_URL"`
	SupabaseAnonKey string `mapstructure:"SUPABASE_ANON_KEY"`

	// Sin URL => pusher que solo loguea.
	ExpoPushURL     string `mapstructure:"EXPO_PUSH_URL"`
	ExpoAccessToken string `mapstructure:"EXPO_ACCESS_TOKEN"`

	ReminderLeadMinutes  int    `mapstructure:"REMINDER_LEAD_MINUTES"`
	ReminderSchedule     string `mapstructure:"REMINDER_SCHEDULE"`
	ReminderBatch        int    `mapstructure:"REMINDER_BATCH"`
	ReminderStaleMinutes int    `mapstructure:"REMINDER_STALE_MINUTES"`
}

var keys = []string{
	"PORT", "DB_DSN", "APP_NAME", "TIMEZONE",
	"LOG_LEVEL", "LOG_FORMAT",
	"AUTH_JWT_SECRET", "AUTH_AUDIENCE", "AUTH_ISSUER",
	"SUPABASE_URL", "SUPABASE_ANON_KEY",
	"EXPO_PUSH_URL", "EXPO_ACCESS_TOKEN",
	"REMINDER_LEAD_MINUTES", "REMINDER_SCHEDULE", "REMINDER_BATCH", "REMINDER_STALE_MINUTES",
}

// Load lee variables de entorno y, si existe, el archivo .env del cwd.
func Load() (*Config, error) {
	return load(".env")
}

func load(envFile string) (*Config, error) {
	v := viper.New()
	if envFile != "" {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
	}
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("APP_NAME", "dose-agil")
	v.SetDefault("TIMEZONE", "America/Sao_Paulo")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("REMINDER_LEAD_MINUTES", 5)
	v.SetDefault("REMINDER_SCHEDULE", "@every 1m")
	v.SetDefault("REMINDER_BATCH", 100)
	v.SetDefault("REMINDER_STALE_MINUTES", 60)

	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	// .env es opcional
	if envFile != "" {
		_ = v.ReadInConfig()
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.Port) == "" {
		return fmt.Errorf("PORT is required")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("TIMEZONE %q: %w", c.Timezone, err)
	}
	if c.ReminderLeadMinutes < 0 {
		return fmt.Errorf("REMINDER_LEAD_MINUTES must be >= 0, got %d", c.ReminderLeadMinutes)
	}
	if c.ReminderBatch <= 0 {
		return fmt.Errorf("REMINDER_BATCH must be > 0, got %d", c.ReminderBatch)
	}
	if c.ReminderStaleMinutes <= 0 {
		return fmt.Errorf("REMINDER_STALE_MINUTES must be > 0, got %d", c.ReminderStaleMinutes)
	}
	if strings.TrimSpace(c.ReminderSchedule) == "" {
		return fmt.Errorf("REMINDER_SCHEDULE is required")
	}
	if c.RemoteAuth() && strings.TrimSpace(c.SupabaseAnonKey) == "" {
		return fmt.Errorf("SUPABASE_ANON_KEY is required with SUPABASE_URL")
	}
	return nil
}

// DevAuth indica que no hay verificación de tokens.
func (c *Config) DevAuth() bool {
	return strings.TrimSpace(c.AuthJWTSecret) == "" && strings.TrimSpace(c.SupabaseURL) == ""
}

// RemoteAuth: sin secreto local, los tokens se validan contra el servicio de auth.
func (c *Config) RemoteAuth() bool {
	return strings.TrimSpace(c.AuthJWTSecret) == "" && strings.TrimSpace(c.SupabaseURL) != ""
}

// Location devuelve la zona usada para los límites de día. Validate ya la comprobó.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) ReminderLead() time.Duration {
	return time.Duration(c.ReminderLeadMinutes) * time.Minute
}

func (c *Config) ReminderStaleAfter() time.Duration {
	return time.Duration(c.ReminderStaleMinutes) * time.Minute
}

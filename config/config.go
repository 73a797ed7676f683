package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/viper"
)

// Supported store drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all configuration for the application
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Log        LogConfig        `mapstructure:"log"`
	CalorieAPI CalorieAPIConfig `mapstructure:"calorieapi"`
	Database   DatabaseConfig   `mapstructure:"database"`
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Environment     string        `mapstructure:"environment"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Pretty bool   `mapstructure:"pretty"`
}

// CalorieAPIConfig holds settings of the remote calorie lookup service
type CalorieAPIConfig struct {
	BaseURL       string        `mapstructure:"base_url"`
	Timeout       time.Duration `mapstructure:"timeout"`
	RatePerSecond float64       `mapstructure:"rate_per_second"`
	Burst         int           `mapstructure:"burst"`
}

// DatabaseConfig selects the store driver and its data source
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

// Load loads configuration from defaults, an optional config file and
// CALORIES_* environment variables, in increasing precedence. A .env file in
// the working directory seeds the environment.
// An empty path searches ./config.yaml, ./config/config.yaml and /etc/calories/.
func Load(path string) (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/calories/")
	}

	v.SetEnvPrefix("CALORIES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// an explicit path must exist, a searched one may not
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	v.SetDefault("calorieapi.base_url", "https://calculat.ru/wp-content/themes/EmptyCanvas/db123.php")
	v.SetDefault("calorieapi.timeout", "15s")
	v.SetDefault("calorieapi.rate_per_second", 5)
	v.SetDefault("calorieapi.burst", 10)

	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.dsn", "calories.db")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	if err := c.CalorieAPI.Validate(); err != nil {
		return fmt.Errorf("calorieapi: %w", err)
	}
	if err := c.Database.Validate(); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	return nil
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.By(isPort)),
		validation.Field(&c.Environment, validation.Required, validation.In("development", "test", "staging", "production")),
		validation.Field(&c.ShutdownTimeout, validation.Min(time.Duration(0))),
	)
}

// Validate validates the logging configuration
func (c *LogConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Level, validation.In("debug", "info", "warn", "warning", "error")),
	)
}

// Validate validates the calorie service configuration
func (c *CalorieAPIConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.BaseURL, validation.Required),
		validation.Field(&c.Timeout, validation.Required, validation.Min(time.Millisecond)),
		validation.Field(&c.RatePerSecond, validation.Required, validation.Min(0.0).Exclusive()),
		validation.Field(&c.Burst, validation.Required, validation.Min(1)),
	)
}

// Validate validates the database configuration
func (c *DatabaseConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Driver, validation.Required, validation.In(DriverSQLite, DriverPostgres)),
		validation.Field(&c.DSN, validation.Required),
	)
}

func isPort(value interface{}) error {
	port, _ := value.(string)
	n, err := strconv.Atoi(port)
	if err != nil || n < 1 || n > 65535 {
		return fmt.Errorf("must be a number between 1 and 65535")
	}
	return nil
}

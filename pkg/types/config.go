package types

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Model    ModelConfig
	OpenAI   OpenAIConfig
	Gemini   GeminiConfig
}

type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	AppEnv          string
	LogLevel        string
	CORSAllowOrigin string
}

type DatabaseConfig struct {
	Driver   string
	Path     string
	Name     string
	Host     string
	Port     string
	User     string
	Password string
	SSLMode  string
}

// ModelConfig selects the fallback translation model. An empty Provider with
// no Endpoint means the fallback is disabled.
type ModelConfig struct {
	Provider string
	Endpoint string
	Name     string
	Timeout  time.Duration
}

type OpenAIConfig struct {
	APIKey string
}

type GeminiConfig struct {
	APIKey string
}

func validateRequiredEnvs(v *viper.Viper, requiredEnvs []string) error {
	for _, env := range requiredEnvs {
		if v.GetString(env) == "" {
			return fmt.Errorf("%s is required", env)
		}
	}
	return nil
}

// LoadConfig reads configuration from the given env file, then environment
// variables, then any flags bound from the command line.
func LoadConfig(configFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	v.SetDefault("SERVER_PORT", "5000")
	v.SetDefault("SERVER_READ_TIMEOUT", 15*time.Second)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 15*time.Second)
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second)
	v.SetDefault("CORS_ALLOW_ORIGIN", "*")
	v.SetDefault("DB_DRIVER", DriverSQLite)
	v.SetDefault("DB_PATH", "translations.db")
	v.SetDefault("MODEL_TIMEOUT", 5*time.Second)

	// Enable environment variable reading first
	v.AutomaticEnv()

	if configFile == "" {
		configFile = ".env"
	}
	v.SetConfigFile(configFile)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		log.Print("No config file found, falling back to environment variables")
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	if flags != nil {
		for key, flag := range map[string]string{
			"SERVER_HOST": "host",
			"SERVER_PORT": "port",
			"LOG_LEVEL":   "log-level",
		} {
			if f := flags.Lookup(flag); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", flag, err)
				}
			}
		}
	}

	driver := strings.ToLower(v.GetString("DB_DRIVER"))
	var requiredEnvs []string
	switch driver {
	case DriverPostgres:
		requiredEnvs = []string{
			"DB_NAME",
			"DB_HOST",
			"DB_PORT",
			"DB_USER",
			"DB_PASSWORD",
			"DB_SSLMODE",
		}
	case DriverSQLite:
		requiredEnvs = []string{"DB_PATH"}
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	if err := validateRequiredEnvs(v, requiredEnvs); err != nil {
		return nil, err
	}

	config := &Config{
		Server: ServerConfig{
			Host:            v.GetString("SERVER_HOST"),
			Port:            v.GetString("SERVER_PORT"),
			ReadTimeout:     v.GetDuration("SERVER_READ_TIMEOUT"),
			WriteTimeout:    v.GetDuration("SERVER_WRITE_TIMEOUT"),
			ShutdownTimeout: v.GetDuration("SERVER_SHUTDOWN_TIMEOUT"),
			AppEnv:          v.GetString("APP_ENV"),
			LogLevel:        v.GetString("LOG_LEVEL"),
			CORSAllowOrigin: v.GetString("CORS_ALLOW_ORIGIN"),
		},
		Database: DatabaseConfig{
			Driver:   driver,
			Path:     v.GetString("DB_PATH"),
			Name:     v.GetString("DB_NAME"),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Model: ModelConfig{
			Provider: strings.ToLower(strings.TrimSpace(v.GetString("MODEL_PROVIDER"))),
			Endpoint: strings.TrimSpace(v.GetString("MODEL_ENDPOINT")),
			Name:     v.GetString("MODEL_NAME"),
			Timeout:  v.GetDuration("MODEL_TIMEOUT"),
		},
		OpenAI: OpenAIConfig{
			APIKey: v.GetString("OPENAI_API_KEY"),
		},
		Gemini: GeminiConfig{
			APIKey: v.GetString("GEMINI_API_KEY"),
		},
	}

	if config.Model.Timeout <= 0 {
		config.Model.Timeout = 5 * time.Second
	}

	return config, nil
}

// GetServerAddress returns the full server address
func (c *ServerConfig) GetServerAddress() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

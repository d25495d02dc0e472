package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"hirehub/internal/logger"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		Driver string `yaml:"driver"` // postgres, mysql
		DSN    string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret"`
		TTL    int    `yaml:"ttl"` // минуты
	} `yaml:"jwt"`

	Auth struct {
		RequireVerification bool   `yaml:"require_verification"`
		OTPTTL              int    `yaml:"otp_ttl"` // минуты
		LoginRatePerMinute  int    `yaml:"login_rate_per_minute"`
		FirstAdminEmail     string `yaml:"first_admin_email"`
		FirstAdminPassword  string `yaml:"first_admin_password"`
	} `yaml:"auth"`

	Email struct {
		Enabled      bool   `yaml:"enabled"`
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
	} `yaml:"email"`

	Storage struct {
		Type     string `yaml:"type"`      // local
		BasePath string `yaml:"base_path"` // For local storage
		BaseURL  string `yaml:"base_url"`  // Public URL base
		MaxSize  int64  `yaml:"max_size"`  // bytes
	} `yaml:"storage"`

	AI struct {
		APIKey      string  `yaml:"api_key"`
		Model       string  `yaml:"model"`
		MaxTokens   int64   `yaml:"max_tokens"`
		Temperature float64 `yaml:"temperature"`
	} `yaml:"ai"`

	Client ClientConfig `yaml:"client"`
}

// ClientConfig - настройки движка состояния (консольный клиент)
type ClientConfig struct {
	APIBaseURL         string        `yaml:"api_base_url"`
	RequestTimeout     time.Duration `yaml:"request_timeout"`
	WriteRatePerSecond float64       `yaml:"write_rate_per_second"`
	WriteBurst         int           `yaml:"write_burst"`
	ReconnectInterval  time.Duration `yaml:"reconnect_interval"` // 0 - без повторных попыток

	Persist PersistConfig `yaml:"persist"`
}

// PersistConfig - бэкенд локального key-value хранилища
type PersistConfig struct {
	Type          string `yaml:"type"` // file, redis, mongo, memory
	Path          string `yaml:"path"`
	RedisURL      string `yaml:"redis_url"`
	MongoURI      string `yaml:"mongo_uri"`
	MongoDatabase string `yaml:"mongo_database"`
	KeyPrefix     string `yaml:"key_prefix"`
}

var AppConfig *Config

// Defaults возвращает конфиг со значениями по умолчанию
func Defaults() *Config {
	var cfg Config

	cfg.Server.Host = "0.0.0.0"
	cfg.Server.Port = 5000
	cfg.Server.Env = "development"

	cfg.Database.Driver = "postgres"

	cfg.JWT.TTL = 60 * 24

	cfg.Auth.OTPTTL = 15
	cfg.Auth.LoginRatePerMinute = 10

	cfg.Email.SMTPPort = 587
	cfg.Email.FromName = "HireHub"

	cfg.Storage.Type = "local"
	cfg.Storage.BasePath = "./uploads"
	cfg.Storage.BaseURL = "/uploads"
	cfg.Storage.MaxSize = 10 * 1024 * 1024 // 10MB

	cfg.AI.Model = "claude-3-5-haiku-latest"
	cfg.AI.MaxTokens = 1024
	cfg.AI.Temperature = 0.7

	cfg.Client.APIBaseURL = "http://localhost:5000"
	cfg.Client.RequestTimeout = 10 * time.Second
	cfg.Client.WriteRatePerSecond = 20
	cfg.Client.WriteBurst = 10
	cfg.Client.Persist.Type = "file"
	cfg.Client.Persist.Path = "./.hirehub"
	cfg.Client.Persist.MongoDatabase = "hirehub"
	cfg.Client.Persist.KeyPrefix = "hirehub_"

	return &cfg
}

// Load читает YAML (если путь не пустой и файл есть) и накладывает переменные окружения
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		f, err := os.Open(path)
		switch {
		case err == nil:
			defer f.Close()
			if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file at %s: %w", path, err)
			}
		case os.IsNotExist(err):
			logger.Debug("config file not found, using defaults and env", "path", path)
		default:
			return nil, fmt.Errorf("failed to open config file at %s: %w", path, err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) {
		if v := os.Getenv(key); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}

	setString("SERVER_ENV", &cfg.Server.Env)
	setInt("SERVER_PORT", &cfg.Server.Port)
	setString("DATABASE_DRIVER", &cfg.Database.Driver)
	setString("DATABASE_URL", &cfg.Database.DSN)
	setString("JWT_SECRET", &cfg.JWT.Secret)
	setString("FIRST_ADMIN_EMAIL", &cfg.Auth.FirstAdminEmail)
	setString("FIRST_ADMIN_PASSWORD", &cfg.Auth.FirstAdminPassword)
	setString("SMTP_HOST", &cfg.Email.SMTPHost)
	setInt("SMTP_PORT", &cfg.Email.SMTPPort)
	setString("SMTP_USER", &cfg.Email.SMTPUsername)
	setString("SMTP_PASSWORD", &cfg.Email.SMTPPassword)
	setString("ANTHROPIC_API_KEY", &cfg.AI.APIKey)
	setString("API_BASE_URL", &cfg.Client.APIBaseURL)
	setString("PERSIST_TYPE", &cfg.Client.Persist.Type)
	setString("PERSIST_PATH", &cfg.Client.Persist.Path)
	setString("REDIS_URL", &cfg.Client.Persist.RedisURL)
	setString("MONGO_URI", &cfg.Client.Persist.MongoURI)

	if v := os.Getenv("REQUIRE_VERIFICATION"); v != "" {
		cfg.Auth.RequireVerification = strings.EqualFold(v, "true") || v == "1"
	}
	if v := os.Getenv("RECONNECT_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Client.ReconnectInterval = d
		}
	}
}

// LoadConfig загружает .env, затем CONFIG_PATH (по умолчанию config/config.yaml)
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		logger.Debug(".env not loaded", "error", err)
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	cfg, err := Load(configPath)
	if err != nil {
		logger.Fatal("Failed to load config", "error", err)
	}
	AppConfig = cfg
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}

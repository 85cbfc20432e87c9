package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/retry"
)

const defaultConfigPath = "config/config.yaml"

type Config struct {
	Env        string           `yaml:"env" env:"ENV" env-default:"local"`
	Log        LogConfig        `yaml:"log"`
	Settings   SettingsConfig   `yaml:"settings"`
	Processing ProcessingConfig `yaml:"processing"`
	Storage    StorageConfig    `yaml:"storage"`
	Server     ServerConfig     `yaml:"server"`
	Kafka      KafkaConfig      `yaml:"kafka"`
	Retry      RetryConfig      `yaml:"retry"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info" validate:"oneof=trace debug info warn error fatal panic disabled"`
}

type SettingsConfig struct {
	Path string `yaml:"path" env:"SETTINGS_PATH" env-default:"logo_app_settings.json" validate:"required"`
}

type ProcessingConfig struct {
	DefaultPadding   int     `yaml:"default_padding" env:"DEFAULT_PADDING" env-default:"15" validate:"gte=0"`
	PreviewMaxWidth  int     `yaml:"preview_max_width" env:"PREVIEW_MAX_WIDTH" env-default:"1000" validate:"gt=0"`
	PreviewMaxHeight int     `yaml:"preview_max_height" env:"PREVIEW_MAX_HEIGHT" env-default:"900" validate:"gt=0"`
	LabelFontSize    float64 `yaml:"label_font_size" env:"LABEL_FONT_SIZE" env-default:"18" validate:"gt=0"`
}

type StorageConfig struct {
	Type  string      `yaml:"type" env:"STORAGE_TYPE" env-default:"local" validate:"oneof=local minio"`
	MinIO MinIOConfig `yaml:"minio"`
}

type MinIOConfig struct {
	Endpoint  string `yaml:"endpoint" env:"MINIO_ENDPOINT" env-default:"localhost:9000"`
	AccessKey string `yaml:"access_key" env:"MINIO_ACCESS_KEY"`
	SecretKey string `yaml:"secret_key" env:"MINIO_SECRET_KEY"`
	Bucket    string `yaml:"bucket" env:"MINIO_BUCKET" env-default:"logo-applier"`
	UseSSL    bool   `yaml:"use_ssl" env:"MINIO_USE_SSL" env-default:"false"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr" env:"SERVER_ADDR" env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT" env-default:"5m"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

type KafkaConfig struct {
	Brokers      []string `yaml:"brokers" env:"KAFKA_BROKERS" env-separator:"," env-default:"localhost:9092"`
	JobsTopic    string   `yaml:"jobs_topic" env:"KAFKA_JOBS_TOPIC" env-default:"logo-jobs"`
	ReportsTopic string   `yaml:"reports_topic" env:"KAFKA_REPORTS_TOPIC" env-default:"logo-reports"`
	GroupID      string   `yaml:"group_id" env:"KAFKA_GROUP_ID" env-default:"logo-applier-group"`
}

type RetryConfig struct {
	Attempts int           `yaml:"attempts" env:"RETRY_ATTEMPTS" env-default:"3" validate:"gte=1"`
	Delay    time.Duration `yaml:"delay" env:"RETRY_DELAY" env-default:"200ms"`
	Backoff  float64       `yaml:"backoff" env:"RETRY_BACKOFF" env-default:"2" validate:"gte=1"`
}

// MustLoad reads the YAML file named by CONFIG_PATH, or config/config.yaml,
// and applies environment overrides. Without a file only the environment and
// defaults are used. A .env file in the working directory is loaded first.
func MustLoad() (*Config, error) {
	_ = godotenv.Load()

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = defaultConfigPath
	}

	return Load(path)
}

func Load(path string) (*Config, error) {
	var cfg Config

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else if errors.Is(err, os.ErrNotExist) {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to read config from env: %w", err)
		}
	} else {
		return nil, fmt.Errorf("failed to stat config %s: %w", path, err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) DefaultRetryStrategy() retry.Strategy {
	return retry.Strategy{
		Attempts: c.Retry.Attempts,
		Delay:    c.Retry.Delay,
		Backoff:  c.Retry.Backoff,
	}
}

func (c *Config) LogLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

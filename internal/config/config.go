package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Bot       Bot       `mapstructure:"bot"`
	Discord   Discord   `mapstructure:"discord"`
	Analytics Analytics `mapstructure:"analytics"`
	Artifacts Artifacts `mapstructure:"artifacts"`
	MinIO     MinIO     `mapstructure:"minio"`
}

type Bot struct {
	LogLevel        string        `mapstructure:"log_level" validate:"omitempty,oneof=debug info warn error"`
	Workers         int           `mapstructure:"workers" validate:"min=1"`
	EmbedColor      int           `mapstructure:"embed_color" validate:"min=0,max=16777215"`
	Footer          string        `mapstructure:"footer"`
	AdminIDs        []string      `mapstructure:"admin_ids"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type Discord struct {
	Token   string `mapstructure:"token" validate:"required"`
	GuildID string `mapstructure:"guild_id"`
}

type Analytics struct {
	BaseURL string        `mapstructure:"base_url" validate:"required,url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type Artifacts struct {
	Backend string `mapstructure:"backend" validate:"oneof=file minio"`
	Dir     string `mapstructure:"dir"`
}

type MinIO struct {
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Prefix    string `mapstructure:"prefix"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("bot.log_level", "info")
	v.SetDefault("bot.workers", 8)
	v.SetDefault("bot.embed_color", 0x5865F2)
	v.SetDefault("bot.shutdown_timeout", "30s")
	v.SetDefault("analytics.timeout", "2m")
	v.SetDefault("artifacts.backend", "file")
}

// Load reads config.toml from path, overlaid with SRGBOT_ prefixed environment
// variables. A .env file next to the binary is loaded first if present.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warn().Err(err).Msg("could not read .env file")
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.SetEnvPrefix("srgbot")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	log.Info().Msg("reading config file...")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("could not read config file: %w", err)
		}
		log.Warn().Msg("no config file found, using environment only")
	}

	// keys only present in the environment are invisible to Unmarshal unless bound
	for _, key := range []string{"discord.token", "discord.guild_id", "analytics.base_url", "analytics.api_key",
		"minio.access_key", "minio.secret_key"} {
		_ = v.BindEnv(key)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("could not decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if c.Artifacts.Backend == "minio" && (c.MinIO.Endpoint == "" || c.MinIO.Bucket == "") {
		return errors.New("invalid config: minio backend needs minio.endpoint and minio.bucket")
	}

	return nil
}

// LogLevel maps bot.log_level to a zerolog level, defaulting to info.
func (c *Config) LogLevel() zerolog.Level {
	switch c.Bot.LogLevel {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

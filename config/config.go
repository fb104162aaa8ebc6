package config

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port string `mapstructure:"port"`
	} `mapstructure:"server"`
	Log struct {
		Level string `mapstructure:"level"`
	} `mapstructure:"log"`
	Session struct {
		TimeoutSeconds int           `mapstructure:"timeout_seconds"`
		TickInterval   time.Duration `mapstructure:"tick_interval"`
	} `mapstructure:"session"`
	Loan struct {
		Delay           time.Duration `mapstructure:"delay"`
		CollateralRatio float64       `mapstructure:"collateral_ratio"`
	} `mapstructure:"loan"`
	Auth struct {
		JWTSecret string        `mapstructure:"jwt_secret"`
		PinCost   int           `mapstructure:"pin_cost"`
		TokenTTL  time.Duration `mapstructure:"token_ttl"`
	} `mapstructure:"auth"`
	Database struct {
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
	} `mapstructure:"database"`
	Audit struct {
		Enabled       bool   `mapstructure:"enabled"`
		MigrationsDir string `mapstructure:"migrations_dir"`
	} `mapstructure:"audit"`
	Redis struct {
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		Password string `mapstructure:"password"`
	} `mapstructure:"redis"`
	Events struct {
		RedisEnabled bool   `mapstructure:"redis_enabled"`
		RedisChannel string `mapstructure:"redis_channel"`
	} `mapstructure:"events"`
}

var AppConfig Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("session.timeout_seconds", 120)
	v.SetDefault("session.tick_interval", "1s")
	v.SetDefault("loan.delay", "2500ms")
	v.SetDefault("loan.collateral_ratio", 0.1)
	v.SetDefault("auth.jwt_secret", "bankist-dev-secret")
	v.SetDefault("auth.pin_cost", 10)
	v.SetDefault("auth.token_ttl", "12h")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "bankist")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "bankist")
	v.SetDefault("audit.enabled", false)
	v.SetDefault("audit.migrations_dir", "file://db/migrations")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", "6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("events.redis_enabled", false)
	v.SetDefault("events.redis_channel", "bankist:events")
}

// Load reads config.yml from path (if present) and the BANKIST_* environment.
// A missing file is not an error; every key has a default.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yml")

	v.SetEnvPrefix("BANKIST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func LoadConfig(path string) {
	cfg, err := Load(path)
	if err != nil {
		log.Fatalf("Error reading config file, %s", err)
	}
	AppConfig = cfg
}

package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"

	datadb "github.com/yungbote/moodtracker-backend/internal/data/db"
	"github.com/yungbote/moodtracker-backend/internal/http/middleware"
	"github.com/yungbote/moodtracker-backend/internal/observability"
	"github.com/yungbote/moodtracker-backend/internal/pkg/logger"
	"github.com/yungbote/moodtracker-backend/internal/platform/envutil"
)

type DatabaseConfig struct {
	Driver        string        `yaml:"driver"`
	DSN           string        `yaml:"dsn"`
	Host          string        `yaml:"host"`
	Port          string        `yaml:"port"`
	User          string        `yaml:"user"`
	Password      string        `yaml:"password"`
	Name          string        `yaml:"name"`
	SQLitePath    string        `yaml:"sqlite_path"`
	AutoMigrate   bool          `yaml:"auto_migrate"`
	SlowThreshold time.Duration `yaml:"slow_threshold"`
}

type OtelSettings struct {
	Enabled     bool    `yaml:"enabled"`
	ServiceName string  `yaml:"service_name"`
	Environment string  `yaml:"environment"`
	Endpoint    string  `yaml:"endpoint"`
	Headers     string  `yaml:"headers"`
	Insecure    bool    `yaml:"insecure"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

type Config struct {
	Port            string         `yaml:"port"`
	Database        DatabaseConfig `yaml:"database"`
	JWTSecretKey    string         `yaml:"jwt_secret_key"`
	AccessTokenTTL  time.Duration  `yaml:"access_token_ttl"`
	RefreshTokenTTL time.Duration  `yaml:"refresh_token_ttl"`
	CORSOrigins     []string       `yaml:"cors_origins"`
	Timezone        string         `yaml:"timezone"`
	MetricsEnabled  bool           `yaml:"metrics_enabled"`
	Otel            OtelSettings   `yaml:"otel"`

	// Location is resolved from Timezone.
	Location *time.Location `yaml:"-"`
}

func DefaultConfig() Config {
	return Config{
		Port: "8080",
		Database: DatabaseConfig{
			Driver:        datadb.DriverPostgres,
			Host:          "localhost",
			Port:          "5432",
			User:          "postgres",
			Name:          "moodtracker",
			SQLitePath:    "moodtracker.db",
			AutoMigrate:   true,
			SlowThreshold: time.Second,
		},
		JWTSecretKey:    "defaultsecret",
		AccessTokenTTL:  time.Hour,
		RefreshTokenTTL: 24 * time.Hour,
		CORSOrigins:     middleware.DefaultAllowedOrigins,
		Timezone:        "UTC",
		MetricsEnabled:  true,
		Otel: OtelSettings{
			ServiceName: "moodtracker-backend",
			Environment: "development",
			SampleRatio: 1,
		},
	}
}

// LoadConfig layers CONFIG_FILE (YAML) and then environment variables over
// the defaults.
func LoadConfig(log *logger.Logger) (Config, error) {
	cfg := DefaultConfig()

	if path := envutil.String("CONFIG_FILE", ""); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
		log.Info("Loaded config file", "path", path)
	}

	cfg.applyEnv()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return Config{}, fmt.Errorf("invalid APP_TIMEZONE %q: %w", cfg.Timezone, err)
	}
	cfg.Location = loc

	if cfg.JWTSecretKey == DefaultConfig().JWTSecretKey {
		log.Warn("JWT_SECRET_KEY is not set, using the built-in default")
	}
	return cfg, nil
}

func (cfg *Config) applyEnv() {
	cfg.Port = envutil.String("PORT", cfg.Port)

	db := &cfg.Database
	db.Driver = strings.ToLower(envutil.String("DB_DRIVER", db.Driver))
	db.DSN = envutil.String("POSTGRES_DSN", db.DSN)
	db.Host = envutil.String("POSTGRES_HOST", db.Host)
	db.Port = envutil.String("POSTGRES_PORT", db.Port)
	db.User = envutil.String("POSTGRES_USER", db.User)
	db.Password = envutil.String("POSTGRES_PASSWORD", db.Password)
	db.Name = envutil.String("POSTGRES_NAME", db.Name)
	db.SQLitePath = envutil.String("SQLITE_PATH", db.SQLitePath)
	db.AutoMigrate = envutil.Bool("DB_AUTO_MIGRATE", db.AutoMigrate)
	db.SlowThreshold = envutil.Duration("DB_SLOW_THRESHOLD", db.SlowThreshold)

	cfg.JWTSecretKey = envutil.String("JWT_SECRET_KEY", cfg.JWTSecretKey)
	cfg.AccessTokenTTL = envutil.Duration("ACCESS_TOKEN_TTL", cfg.AccessTokenTTL)
	cfg.RefreshTokenTTL = envutil.Duration("REFRESH_TOKEN_TTL", cfg.RefreshTokenTTL)
	cfg.CORSOrigins = envutil.List("CORS_ORIGINS", cfg.CORSOrigins)
	cfg.Timezone = envutil.String("APP_TIMEZONE", cfg.Timezone)
	cfg.MetricsEnabled = envutil.Bool("METRICS_ENABLED", cfg.MetricsEnabled)

	o := &cfg.Otel
	o.Enabled = envutil.Bool("OTEL_ENABLED", o.Enabled)
	o.ServiceName = envutil.String("OTEL_SERVICE_NAME", o.ServiceName)
	o.Environment = envutil.String("OTEL_ENVIRONMENT", o.Environment)
	o.Endpoint = envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", o.Endpoint)
	o.Headers = envutil.String("OTEL_EXPORTER_OTLP_HEADERS", o.Headers)
	o.Insecure = envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", o.Insecure)
	if v := envutil.String("OTEL_SAMPLE_RATIO", ""); v != "" {
		if ratio, err := strconv.ParseFloat(v, 64); err == nil {
			o.SampleRatio = ratio
		}
	}
}

func (cfg Config) DBConfig() datadb.Config {
	return datadb.Config{
		Driver:        cfg.Database.Driver,
		DSN:           cfg.Database.DSN,
		Host:          cfg.Database.Host,
		Port:          cfg.Database.Port,
		User:          cfg.Database.User,
		Password:      cfg.Database.Password,
		Name:          cfg.Database.Name,
		SQLitePath:    cfg.Database.SQLitePath,
		SlowThreshold: cfg.Database.SlowThreshold,
	}
}

func (cfg Config) OtelConfig() observability.OtelConfig {
	return observability.OtelConfig{
		Enabled:     cfg.Otel.Enabled,
		ServiceName: cfg.Otel.ServiceName,
		Environment: cfg.Otel.Environment,
		Endpoint:    cfg.Otel.Endpoint,
		Headers:     observability.ParseHeaders(cfg.Otel.Headers),
		Insecure:    cfg.Otel.Insecure,
		SampleRatio: cfg.Otel.SampleRatio,
	}
}

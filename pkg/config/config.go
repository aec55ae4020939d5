package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "caisse"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Session   SessionConfig
	Scheduler SchedulerConfig
	Push      PushConfig
	Migrate   MigrateConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"CAISSE_APP_ENV" required:"true"`
	Port         string `envconfig:"CAISSE_APP_PORT" default:"8680"`
	LogLevel     string `envconfig:"CAISSE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CAISSE_LOG_WARN_STACK" default:"false"`

	// CORSOrigins adds back-office dashboard origins on top of the
	// built-in local ones.
	CORSOrigins []string `envconfig:"CAISSE_APP_CORS_ORIGINS"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	// Driver selects the store backend: sqlite for single-terminal
	// on-prem installs, postgres when several registers share a server.
	Driver string `envconfig:"CAISSE_DB_DRIVER" default:"sqlite"`
	DSN    string `envconfig:"CAISSE_DB_DSN" default:"caisse.db"`

	MaxOpenConns    int           `envconfig:"CAISSE_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"CAISSE_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"CAISSE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CAISSE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (d DBConfig) validate() error {
	switch d.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported db driver %q", d.Driver)
	}
	if d.DSN == "" {
		return fmt.Errorf("database DSN is required")
	}
	return nil
}

type SessionConfig struct {
	// DefaultVendorID receives transactions whose vendor name resolves
	// to none of the configured aliases.
	DefaultVendorID string `envconfig:"CAISSE_SESSION_DEFAULT_VENDOR_ID" default:"maison"`

	// SourceDir is where the register drops its local, synced and
	// external record exports.
	SourceDir string `envconfig:"CAISSE_SESSION_SOURCE_DIR" default:"data"`
}

type SchedulerConfig struct {
	RefreshInterval time.Duration `envconfig:"CAISSE_SCHEDULER_REFRESH_INTERVAL" default:"30s"`
}

type PushConfig struct {
	Endpoint       string        `envconfig:"CAISSE_PUSH_ENDPOINT"`
	AttemptTimeout time.Duration `envconfig:"CAISSE_PUSH_ATTEMPT_TIMEOUT" default:"15s"`
	DrainPause     time.Duration `envconfig:"CAISSE_PUSH_DRAIN_PAUSE" default:"250ms"`
}

type MigrateConfig struct {
	AutoRun bool   `envconfig:"CAISSE_MIGRATE_AUTORUN" default:"false"`
	Dir     string `envconfig:"CAISSE_MIGRATE_DIR" default:"migrations"`
}

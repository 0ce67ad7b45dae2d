package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	GCP          GCPConfig
	PubSub       PubSubConfig
	Catalog      CatalogConfig
	Pricing      PricingConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"TOLKFLOW_APP_ENV" required:"true"`
	Port         string `envconfig:"TOLKFLOW_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"TOLKFLOW_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"TOLKFLOW_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"TOLKFLOW_DB_DSN"`
	Driver string `envconfig:"TOLKFLOW_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"TOLKFLOW_DB_HOST"`
	LegacyPort     int    `envconfig:"TOLKFLOW_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"TOLKFLOW_DB_USER"`
	LegacyPassword string `envconfig:"TOLKFLOW_DB_PASSWORD"`
	LegacyName     string `envconfig:"TOLKFLOW_DB_NAME"`
	LegacySSLMode  string `envconfig:"TOLKFLOW_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"TOLKFLOW_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"TOLKFLOW_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"TOLKFLOW_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"TOLKFLOW_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"TOLKFLOW_REDIS_URL" required:"true"`
	Address      string        `envconfig:"TOLKFLOW_REDIS_ADDR"`
	Password     string        `envconfig:"TOLKFLOW_REDIS_PASSWORD"`
	DB           int           `envconfig:"TOLKFLOW_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"TOLKFLOW_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"TOLKFLOW_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"TOLKFLOW_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"TOLKFLOW_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"TOLKFLOW_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"TOLKFLOW_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"TOLKFLOW_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"TOLKFLOW_GOOGLE_APPLICATION_CREDENTIALS"`
}

type PubSubConfig struct {
	PriceEventsTopic        string `envconfig:"TOLKFLOW_PUBSUB_PRICE_EVENTS_TOPIC"`
	PriceEventsSubscription string `envconfig:"TOLKFLOW_PUBSUB_PRICE_EVENTS_SUBSCRIPTION"`
}

// Enabled reports whether domain event publishing is configured at all.
func (p PubSubConfig) Enabled() bool {
	return strings.TrimSpace(p.PriceEventsTopic) != ""
}

type CatalogConfig struct {
	SkillCacheTTL time.Duration `envconfig:"TOLKFLOW_SKILL_CACHE_TTL" default:"10m"`
}

type PricingConfig struct {
	DispatchTimeout time.Duration `envconfig:"TOLKFLOW_PRICING_DISPATCH_TIMEOUT" default:"30s"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"TOLKFLOW_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"TOLKFLOW_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}

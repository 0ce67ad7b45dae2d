package config

// EnvPrefix scopes every environment variable read by envconfig.
const EnvPrefix = "tolkflow"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Env var names referenced outside envconfig tags (tests, DSN fallback messages).
const (
	EnvAppEnv   = "TOLKFLOW_APP_ENV"
	EnvPort     = "TOLKFLOW_APP_PORT"
	EnvDBDSN    = "TOLKFLOW_DB_DSN"
	EnvDBHost   = "TOLKFLOW_DB_HOST"
	EnvDBUser   = "TOLKFLOW_DB_USER"
	EnvDBName   = "TOLKFLOW_DB_NAME"
	EnvRedisURL = "TOLKFLOW_REDIS_URL"

	EnvGCPProjectID          = "TOLKFLOW_GCP_PROJECT_ID"
	EnvPubSubPriceEventTopic = "TOLKFLOW_PUBSUB_PRICE_EVENTS_TOPIC"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

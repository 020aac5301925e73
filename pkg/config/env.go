package config

// EnvPrefix is passed to envconfig; every field carries an explicit ASTRO_ tag.
const EnvPrefix = "ASTRO"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv           = "ASTRO_APP_ENV"
	EnvPort             = "ASTRO_APP_PORT"
	EnvDBDSN            = "ASTRO_DB_DSN"
	EnvDBHost           = "ASTRO_DB_HOST"
	EnvDBUser           = "ASTRO_DB_USER"
	EnvDBName           = "ASTRO_DB_NAME"
	EnvDBPassword       = "ASTRO_DB_PASSWORD"
	EnvRedisURL         = "ASTRO_REDIS_URL"
	EnvJWTSecret        = "ASTRO_JWT_SECRET"
	EnvJWTRefreshSecret = "ASTRO_JWT_REFRESH_SECRET"
	EnvJWTAccessTTL     = "ASTRO_JWT_ACCESS_TTL"
	EnvCORSOrigins      = "ASTRO_CORS_ALLOWED_ORIGINS"
	EnvEmailProvider    = "ASTRO_EMAIL_PROVIDER"
	EnvOTPTTL           = "ASTRO_OTP_TTL"
)

var discreteDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

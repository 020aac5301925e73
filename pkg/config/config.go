package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	OTP           OTPConfig
	CORS          CORSConfig
	Email         EmailConfig
	Sendgrid      SendgridConfig
	SMTP          SMTPConfig
	FeatureFlags  FeatureFlagsConfig
	Cron          CronConfig
	Notifications NotificationsConfig
}

const defaultSQLiteDSN = "file:astrosocial.db?_busy_timeout=5000"

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.FeatureFlags.UseSQLite {
		cfg.DB.Driver = "sqlite"
		if cfg.DB.DSN == "" {
			cfg.DB.DSN = defaultSQLiteDSN
		}
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.JWT.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"ASTRO_APP_ENV" required:"true"`
	Port         string `envconfig:"ASTRO_APP_PORT" default:"5000"`
	LogLevel     string `envconfig:"ASTRO_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"ASTRO_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"ASTRO_LOG_WARN_STACK" default:"false"`
	PublicURL    string `envconfig:"ASTRO_PUBLIC_URL" default:"http://localhost:5000"`
	// AdminRoleIDs gates fanout and bulk status routes. Empty leaves them open to any signed-in user.
	AdminRoleIDs []int64 `envconfig:"ASTRO_ADMIN_ROLE_IDS"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"ASTRO_DB_DSN"`
	Driver string `envconfig:"ASTRO_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"ASTRO_DB_HOST"`
	Port     int    `envconfig:"ASTRO_DB_PORT" default:"5432"`
	User     string `envconfig:"ASTRO_DB_USER"`
	Password string `envconfig:"ASTRO_DB_PASSWORD"`
	Name     string `envconfig:"ASTRO_DB_NAME"`
	SSLMode  string `envconfig:"ASTRO_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"ASTRO_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"ASTRO_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"ASTRO_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ASTRO_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	// SlowQuery is the duration past which a statement is logged at warn. Zero disables it.
	SlowQuery time.Duration `envconfig:"ASTRO_DB_SLOW_QUERY" default:"500ms"`
}

type RedisConfig struct {
	URL          string        `envconfig:"ASTRO_REDIS_URL"`
	Address      string        `envconfig:"ASTRO_REDIS_ADDR" default:"localhost:6379"`
	Password     string        `envconfig:"ASTRO_REDIS_PASSWORD"`
	DB           int           `envconfig:"ASTRO_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ASTRO_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ASTRO_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ASTRO_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ASTRO_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ASTRO_REDIS_WRITE_TIMEOUT" default:"5s"`
	// IdempotencyTTL is how long a fanout response stays replayable.
	IdempotencyTTL time.Duration `envconfig:"ASTRO_IDEMPOTENCY_TTL" default:"24h"`
}

// JWTConfig holds two independent signing keys: one for access tokens and one
// for refresh tokens.
type JWTConfig struct {
	AccessSecret  string        `envconfig:"ASTRO_JWT_SECRET" required:"true"`
	RefreshSecret string        `envconfig:"ASTRO_JWT_REFRESH_SECRET" required:"true"`
	Issuer        string        `envconfig:"ASTRO_JWT_ISSUER" default:"astrosocial"`
	AccessTTL     time.Duration `envconfig:"ASTRO_JWT_ACCESS_TTL" default:"168h"`
	RefreshTTL    time.Duration `envconfig:"ASTRO_JWT_REFRESH_TTL" default:"720h"`
}

func (j JWTConfig) validate() error {
	if j.AccessSecret == j.RefreshSecret {
		return fmt.Errorf("%s and %s must differ", EnvJWTSecret, EnvJWTRefreshSecret)
	}
	if j.AccessTTL <= 0 || j.RefreshTTL <= 0 {
		return fmt.Errorf("jwt ttls must be positive")
	}
	return nil
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"ASTRO_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"ASTRO_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"ASTRO_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"ASTRO_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"ASTRO_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"ASTRO_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"15m"`
	LoginEmailLimit int           `envconfig:"ASTRO_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"ASTRO_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	OTPWindow       time.Duration `envconfig:"ASTRO_AUTH_RATE_LIMIT_OTP_WINDOW" default:"15m"`
	OTPEmailLimit   int           `envconfig:"ASTRO_AUTH_RATE_LIMIT_OTP_EMAIL_LIMIT" default:"5"`
	OTPIPLimit      int           `envconfig:"ASTRO_AUTH_RATE_LIMIT_OTP_IP_LIMIT" default:"20"`
}

type OTPConfig struct {
	TTL        time.Duration `envconfig:"ASTRO_OTP_TTL" default:"10m"`
	CodeLength int           `envconfig:"ASTRO_OTP_CODE_LENGTH" default:"6"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"ASTRO_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

// EmailConfig selects the delivery provider: sendgrid, smtp, or log.
type EmailConfig struct {
	Provider string `envconfig:"ASTRO_EMAIL_PROVIDER" default:"log"`
	From     string `envconfig:"ASTRO_EMAIL_FROM" default:"no-reply@astrosocial.app"`
	FromName string `envconfig:"ASTRO_EMAIL_FROM_NAME" default:"AstroSocial"`
}

type SendgridConfig struct {
	APIKey string `envconfig:"ASTRO_SENDGRID_API_KEY"`
}

type SMTPConfig struct {
	Host     string `envconfig:"ASTRO_SMTP_HOST"`
	Port     int    `envconfig:"ASTRO_SMTP_PORT" default:"587"`
	Username string `envconfig:"ASTRO_SMTP_USERNAME"`
	Password string `envconfig:"ASTRO_SMTP_PASSWORD"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"ASTRO_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"ASTRO_AUTO_MIGRATE" default:"false"`
}

type CronConfig struct {
	// Tick is how often the worker checks for due jobs.
	Tick              time.Duration `envconfig:"ASTRO_CRON_TICK" default:"1m"`
	LockTTL           time.Duration `envconfig:"ASTRO_CRON_LOCK_TTL" default:"4m"`
	OTPSweepEvery     time.Duration `envconfig:"ASTRO_CRON_OTP_SWEEP_EVERY" default:"5m"`
	SubscriptionEvery time.Duration `envconfig:"ASTRO_CRON_SUBSCRIPTION_EVERY" default:"1h"`
	RetentionEvery    time.Duration `envconfig:"ASTRO_CRON_RETENTION_EVERY" default:"24h"`
}

type NotificationsConfig struct {
	ReadRetention time.Duration `envconfig:"ASTRO_NOTIFICATIONS_READ_RETENTION" default:"2160h"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range discreteDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}

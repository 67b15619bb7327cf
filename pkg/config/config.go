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
	JWT          JWTConfig
	Password     PasswordConfig
	Bold         BoldConfig
	Reconcile    ReconcileConfig
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
	Env           string `envconfig:"NETRIX_APP_ENV" required:"true"`
	Port          string `envconfig:"NETRIX_APP_PORT" required:"true"`
	LogLevel      string `envconfig:"NETRIX_LOG_LEVEL" default:"info"`
	LogWarnStack  bool   `envconfig:"NETRIX_LOG_WARN_STACK" default:"false"`
	PublicBaseURL string `envconfig:"NETRIX_PUBLIC_BASE_URL"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"NETRIX_DB_DSN"`
	Driver string `envconfig:"NETRIX_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"NETRIX_DB_HOST"`
	LegacyPort     int    `envconfig:"NETRIX_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"NETRIX_DB_USER"`
	LegacyPassword string `envconfig:"NETRIX_DB_PASSWORD"`
	LegacyName     string `envconfig:"NETRIX_DB_NAME"`
	LegacySSLMode  string `envconfig:"NETRIX_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"NETRIX_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"NETRIX_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"NETRIX_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"NETRIX_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"NETRIX_REDIS_URL" required:"true"`
	Address      string        `envconfig:"NETRIX_REDIS_ADDR"`
	Password     string        `envconfig:"NETRIX_REDIS_PASSWORD"`
	DB           int           `envconfig:"NETRIX_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"NETRIX_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"NETRIX_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"NETRIX_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"NETRIX_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"NETRIX_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"NETRIX_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"NETRIX_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"NETRIX_JWT_EXPIRATION_MINUTES" default:"120"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"NETRIX_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"NETRIX_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"NETRIX_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"NETRIX_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"NETRIX_ARGON_KEY_LEN" default:"32"`
}

// BoldConfig holds the payment-link provider credentials and defaults.
type BoldConfig struct {
	APIKey            string `envconfig:"NETRIX_BOLD_API_KEY"`
	BaseURL           string `envconfig:"NETRIX_BOLD_BASE_URL" default:"https://integrations.api.bold.co"`
	Currency          string `envconfig:"NETRIX_BOLD_CURRENCY" default:"COP"`
	DefaultExpiration int    `envconfig:"NETRIX_BOLD_DEFAULT_EXPIRATION_SECONDS" default:"300"`
}

// ReconcileConfig tunes the payment reconciliation sweep. GraceSeconds and
// PendingThreshold are deliberately configuration so operators can adjust
// provider-latency tolerance without a redeploy.
type ReconcileConfig struct {
	GraceSeconds     int           `envconfig:"NETRIX_RECONCILE_GRACE_SECONDS" default:"20"`
	PendingThreshold time.Duration `envconfig:"NETRIX_RECONCILE_PENDING_THRESHOLD" default:"1m"`
	BatchLimit       int           `envconfig:"NETRIX_RECONCILE_BATCH_LIMIT" default:"20"`
	SweepSecret      string        `envconfig:"NETRIX_RECONCILE_SWEEP_SECRET"`
	Interval         time.Duration `envconfig:"NETRIX_RECONCILE_INTERVAL" default:"1m"`
}

// Grace returns the presumptive-expiration margin as a duration.
func (r ReconcileConfig) Grace() time.Duration {
	if r.GraceSeconds <= 0 {
		return 0
	}
	return time.Duration(r.GraceSeconds) * time.Second
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"NETRIX_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"NETRIX_AUTO_MIGRATE" default:"false"`
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

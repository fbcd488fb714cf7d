package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	Env      string
	LogLevel string

	BackendURL     string
	BackendTimeout time.Duration
	ImageBaseURL   string

	SessionSecret string
	SessionCookie string
	CookieSecure  bool
	JWTSecret     string

	KVDriver      string
	KVTTL         time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	DBDSN         string
	BusRelay      bool

	CORSOrigins []string

	Storage StorageConfig
}

type StorageConfig struct {
	Driver          string
	LocalDir        string
	LocalURLPrefix  string
	S3Region        string
	S3Bucket        string
	S3Prefix        string
	S3PublicBaseURL string
}

// Load reads .env (when present) and the process environment.
func Load() Config {
	// .env is optional; production uses real env vars
	_ = godotenv.Load()

	return Config{
		Port:     envOr("PORT", "8080"),
		Env:      envOr("APP_ENV", "development"),
		LogLevel: envOr("LOG_LEVEL", "info"),

		BackendURL:     strings.TrimRight(envOr("BACKEND_URL", "http://localhost:5000"), "/"),
		BackendTimeout: envDuration("BACKEND_TIMEOUT", 10*time.Second),
		ImageBaseURL:   strings.TrimRight(envOr("IMAGE_BASE_URL", "http://localhost:5000"), "/"),

		SessionSecret: os.Getenv("SESSION_SECRET"),
		SessionCookie: envOr("SESSION_COOKIE", "gowear_sid"),
		CookieSecure:  envBool("COOKIE_SECURE", false),
		JWTSecret:     os.Getenv("JWT_SECRET"),

		KVDriver:      envOr("KV_DRIVER", "memory"),
		KVTTL:         envDuration("KV_TTL", 30*24*time.Hour),
		RedisAddr:     envOr("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       envInt("REDIS_DB", 0),
		DBDSN:         os.Getenv("DB_DSN"),
		BusRelay:      envBool("BUS_RELAY", false),

		CORSOrigins: envList("CORS_ORIGINS", []string{"http://localhost:3000"}),

		Storage: StorageConfig{
			Driver:          envOr("STORAGE_DRIVER", "local"),
			LocalDir:        envOr("LOCAL_UPLOAD_DIR", "./storage/uploads"),
			LocalURLPrefix:  envOr("LOCAL_UPLOAD_URL_PREFIX", "uploads"),
			S3Region:        os.Getenv("S3_REGION"),
			S3Bucket:        os.Getenv("S3_BUCKET"),
			S3Prefix:        envOr("S3_PREFIX", "uploads"),
			S3PublicBaseURL: os.Getenv("S3_PUBLIC_BASE_URL"),
		},
	}
}

func (c Config) IsDevelopment() bool { return c.Env == "development" }

// Validate reports configuration that cannot work at runtime.
func (c Config) Validate() error {
	var errs []error
	if c.BackendURL == "" {
		errs = append(errs, errors.New("BACKEND_URL is required"))
	}
	if c.SessionSecret == "" && !c.IsDevelopment() {
		errs = append(errs, errors.New("SESSION_SECRET is required outside development"))
	}
	switch c.KVDriver {
	case "memory", "redis":
	case "mysql", "postgres":
		if c.DBDSN == "" {
			errs = append(errs, errors.New("DB_DSN is required for KV_DRIVER="+c.KVDriver))
		}
	default:
		errs = append(errs, errors.New("unknown KV_DRIVER: "+c.KVDriver))
	}
	if c.BusRelay && c.RedisAddr == "" {
		errs = append(errs, errors.New("REDIS_ADDR is required when BUS_RELAY is on"))
	}
	return errors.Join(errs...)
}

func envOr(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func envBool(k string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func envInt(k string, def int) int {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func envDuration(k string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func envList(k string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

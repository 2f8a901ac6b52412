package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultEnv                    = "development"
	DefaultPort                   = "8080"
	DefaultAccessTokenExpiryMin   = 15
	DefaultRefreshTokenExpiryMin  = 10080
	DefaultLoginMaxAttempts       = 5
	DefaultLoginWindowMinutes     = 15
	DefaultRateLimitMax           = 100
	DefaultRateLimitWindowMinutes = 15
	DefaultTOTPIssuer             = "SecureAuth"
	DefaultAllowedOrigins         = "http://localhost:3000"
	DefaultLogLevel               = "info"

	EnvProduction = "production"

	// MemoryDBURL selects the in-process store instead of Postgres.
	MemoryDBURL = "memory"
)

type Config struct {
	Env                string
	Port               string
	DBURL              string
	DBAutoMigrate      bool
	AccessTokenSecret  string
	RefreshTokenSecret string
	AccessExpiryMin    int
	RefreshExpiryMin   int
	EncryptionKey      string
	RedisURL           string
	TOTPIssuer         string
	LoginMaxAttempts   int
	LoginWindowMinutes int
	RateLimitEnabled   bool
	RateLimitMax       int
	RateLimitWindowMin int
	PasswordHashCost   int
	AllowedOrigins     string
	ProxyHeader        string
	TwoFALookupEnabled bool
	LogLevel           string
}

// IsProduction reports whether cookies must be restricted to TLS transport.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// Load resolves every key from the process environment, then from the
// config/.env.<env> file, then from the defaults above.
func Load() *Config {
	env := getEnv("ENV", DefaultEnv)
	src := newSource(envFile(env))

	cfg := &Config{
		Env:                env,
		Port:               src.get("PORT", DefaultPort),
		DBURL:              src.mustGet("DB_URL"),
		DBAutoMigrate:      src.getBool("DB_AUTO_MIGRATE", false),
		AccessTokenSecret:  src.mustGet("ACCESS_TOKEN_SECRET"),
		RefreshTokenSecret: src.mustGet("REFRESH_TOKEN_SECRET"),
		AccessExpiryMin:    src.getInt("ACCESS_TOKEN_EXPIRY", DefaultAccessTokenExpiryMin),
		RefreshExpiryMin:   src.getInt("REFRESH_TOKEN_EXPIRY", DefaultRefreshTokenExpiryMin),
		EncryptionKey:      src.get("ENCRYPTION_KEY", ""),
		RedisURL:           src.get("REDIS_URL", ""),
		TOTPIssuer:         src.get("TOTP_ISSUER", DefaultTOTPIssuer),
		LoginMaxAttempts:   src.getInt("LOGIN_MAX_ATTEMPTS", DefaultLoginMaxAttempts),
		LoginWindowMinutes: src.getInt("LOGIN_WINDOW_MINUTES", DefaultLoginWindowMinutes),
		RateLimitEnabled:   src.getBool("RATE_LIMIT_ENABLED", true),
		RateLimitMax:       src.getInt("RATE_LIMIT_MAX", DefaultRateLimitMax),
		RateLimitWindowMin: src.getInt("RATE_LIMIT_WINDOW_MINUTES", DefaultRateLimitWindowMinutes),
		PasswordHashCost:   src.getInt("PASSWORD_HASH_COST", bcrypt.DefaultCost),
		AllowedOrigins:     src.get("ALLOWED_ORIGINS", DefaultAllowedOrigins),
		ProxyHeader:        src.get("PROXY_HEADER", ""),
		TwoFALookupEnabled: src.getBool("TWOFA_LOOKUP_ENABLED", true),
		LogLevel:           src.get("LOG_LEVEL", DefaultLogLevel),
	}

	if cfg.AccessExpiryMin >= cfg.RefreshExpiryMin {
		log.Fatalf("Invalid config: ACCESS_TOKEN_EXPIRY (%d) must be shorter than REFRESH_TOKEN_EXPIRY (%d)",
			cfg.AccessExpiryMin, cfg.RefreshExpiryMin)
	}
	if cfg.LoginMaxAttempts < 1 {
		cfg.LoginMaxAttempts = DefaultLoginMaxAttempts
	}
	if cfg.LoginWindowMinutes < 1 {
		cfg.LoginWindowMinutes = DefaultLoginWindowMinutes
	}
	if cfg.PasswordHashCost < bcrypt.MinCost || cfg.PasswordHashCost > bcrypt.MaxCost {
		cfg.PasswordHashCost = bcrypt.DefaultCost
	}

	return cfg
}

func envFile(env string) string {
	name := ".env.dev"
	if env == EnvProduction {
		name = ".env.prod"
	}
	return filepath.Join("config", name)
}

type source struct {
	file map[string]string
}

func newSource(path string) source {
	values, err := godotenv.Read(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Could not read %s: %v", path, err)
		}
		values = map[string]string{}
	}
	return source{file: values}
}

func (s source) get(key, defaultVal string) string {
	if value := getEnv(key, ""); value != "" {
		return value
	}
	if value := strings.TrimSpace(s.file[key]); value != "" {
		return value
	}
	return defaultVal
}

func (s source) mustGet(key string) string {
	if value := s.get(key, ""); value != "" {
		return value
	}
	log.Fatalf("Missing required config: %s", key)
	return ""
}

func (s source) getInt(key string, defaultVal int) int {
	valStr := s.get(key, "")
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %d", key, defaultVal)
		return defaultVal
	}
	return val
}

func (s source) getBool(key string, defaultVal bool) bool {
	valStr := s.get(key, "")
	if valStr == "" {
		return defaultVal
	}
	val, err := strconv.ParseBool(valStr)
	if err != nil {
		log.Printf("Invalid value for %s, using default %t", key, defaultVal)
		return defaultVal
	}
	return val
}

func getEnv(key string, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

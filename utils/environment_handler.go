package utils

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	ENV                      = "ENV"
	PORT                     = "PORT"
	MYSQL_URI                = "MYSQL_URI"
	MONGODB_URI              = "MONGODB_URI"
	REDIS_URI                = "REDIS_URI"
	LOG_LEVEL                = "LOG_LEVEL"
	REPORT_CACHE_TTL_MINUTES = "REPORT_CACHE_TTL_MINUTES"

	ENV_DEVELOPMENT = "development"
	ENV_HOMOLOG     = "homolog"
	ENV_RELEASE     = "production"

	DEFAULT_PORT                     = "8080"
	DEFAULT_REPORT_CACHE_TTL_MINUTES = 10
)

var requiredKeys = []string{ENV, PORT, MYSQL_URI}

var allowedKeys = []string{ENV, PORT, MYSQL_URI, MONGODB_URI, REDIS_URI, LOG_LEVEL, REPORT_CACHE_TTL_MINUTES}

var allowedEnvValues = []string{ENV_DEVELOPMENT, ENV_HOMOLOG, ENV_RELEASE}

type Config struct {
	Env                   string
	Port                  string
	MySQLURI              string
	MongoURI              string
	RedisURI              string
	LogLevel              string
	ReportCacheTTLMinutes int
}

// LoadEnvVariables reads the .env files, rejects unknown keys and exports the
// values into the process environment. Variables already set in the
// environment win over file values.
func LoadEnvVariables(filenames ...string) (Config, error) {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}

	values, err := godotenv.Read(filenames...)
	if err != nil {
		return Config{}, fmt.Errorf("[ENV] failed to read %s: %w", strings.Join(filenames, ", "), err)
	}

	for key, value := range values {
		if !slices.Contains(allowedKeys, key) {
			return Config{}, fmt.Errorf("[ENV] key '%s' is not allowed. Allowed keys: %s", key, strings.Join(allowedKeys, ", "))
		}
		if _, exists := os.LookupEnv(key); exists {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return Config{}, fmt.Errorf("[ENV] failed to set %s: %w", key, err)
		}
	}

	return ConfigFromEnv()
}

func ConfigFromEnv() (Config, error) {
	var missingKeys []string
	for _, key := range requiredKeys {
		if strings.TrimSpace(os.Getenv(key)) == "" {
			missingKeys = append(missingKeys, key)
		}
	}
	if len(missingKeys) > 0 {
		return Config{}, fmt.Errorf("[ENV] missing required variables: %s", strings.Join(missingKeys, ", "))
	}

	cfg := Config{
		Env:                   os.Getenv(ENV),
		Port:                  os.Getenv(PORT),
		MySQLURI:              os.Getenv(MYSQL_URI),
		MongoURI:              os.Getenv(MONGODB_URI),
		RedisURI:              os.Getenv(REDIS_URI),
		LogLevel:              os.Getenv(LOG_LEVEL),
		ReportCacheTTLMinutes: DEFAULT_REPORT_CACHE_TTL_MINUTES,
	}

	if !slices.Contains(allowedEnvValues, cfg.Env) {
		return Config{}, fmt.Errorf("[ENV] invalid value for ENV: %s. Allowed values: %s", cfg.Env, strings.Join(allowedEnvValues, ", "))
	}

	if raw := os.Getenv(REPORT_CACHE_TTL_MINUTES); raw != "" {
		ttl, err := strconv.Atoi(raw)
		if err != nil || ttl < 0 {
			return Config{}, fmt.Errorf("[ENV] invalid value for %s: %s", REPORT_CACHE_TTL_MINUTES, raw)
		}
		cfg.ReportCacheTTLMinutes = ttl
	}

	if cfg.Port == "" {
		cfg.Port = DEFAULT_PORT
	}

	return cfg, nil
}

package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port           string
	DBDSN          string
	LogFile        string
	StorageBackend string // sqlite | redis
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	AuthDelay      time.Duration
	RedirectDelay  time.Duration
	CookieSecure   bool
}

func Load() Config {
	cfg := Config{
		Port:           getEnv("PORT", "8081"),
		DBDSN:          getEnv("DB_DSN", "ecoloop.db"), // sqlite file in project root
		LogFile:        os.Getenv("LOG_FILE"),
		StorageBackend: getEnv("STORAGE_BACKEND", "sqlite"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		// Simulated latency of the login/signup round trip and of the
		// post-submit redirect.
		AuthDelay:     time.Duration(getEnvInt("AUTH_DELAY_MS", 500)) * time.Millisecond,
		RedirectDelay: time.Duration(getEnvInt("SUBMIT_REDIRECT_MS", 2000)) * time.Millisecond,
		CookieSecure:  getEnv("COOKIE_SECURE", "false") == "true",
	}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s STORAGE_BACKEND=%s REDIS_ADDR=%s AUTH_DELAY=%s SUBMIT_REDIRECT=%s",
		cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.StorageBackend, cfg.RedisAddr, cfg.AuthDelay, cfg.RedirectDelay)
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

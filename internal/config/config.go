package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	Addr          string
	DBDriver      string
	DBSource      string
	DedupSelfEcho bool
}

// Load builds the configuration from environment variables, preferring a
// local .env file when present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Addr:     envOrDefault("CHAT_ADDR", ":8080"),
		DBDriver: envOrDefault("CHAT_DB_DRIVER", "sqlite3"),
		DBSource: envOrDefault("CHAT_DB_SOURCE", "club.db"),
	}

	// Whether a private message should echo once or twice to a connection
	// joined to both rooms is unresolved; keep it switchable.
	if v, err := strconv.ParseBool(os.Getenv("CHAT_DEDUP_SELF_ECHO")); err == nil {
		cfg.DedupSelfEcho = v
	}
	return cfg
}

func envOrDefault(key, value string) string {
	if env, ok := os.LookupEnv(key); ok {
		return env
	}
	return value
}

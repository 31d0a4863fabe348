package config

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// AppName is used as the postgres schema name and the sqlite file stem.
const AppName = "tripmate"

// DefaultUserID is the roster member acting when a request carries no
// X-User-ID header.
const DefaultUserID = 1

// LoadEnv loads a .env file if one is present. Missing files are fine; real
// deployments set the environment directly.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using process environment")
	}
}

// GeminiAPIKey returns the API key for the generative AI service. An empty
// key is allowed; the gateway will then always serve its fallback values.
func GeminiAPIKey() string {
	return os.Getenv("GEMINI_API_KEY")
}

// SQLitePath returns the path of the local sqlite database file.
func SQLitePath() string {
	if p := os.Getenv("TRIPMATE_DB_PATH"); p != "" {
		return p
	}
	return AppName + ".db"
}

// CurrentUserID resolves the default acting user from the environment.
func CurrentUserID() int {
	if v := os.Getenv("TRIPMATE_USER_ID"); v != "" {
		if id, err := strconv.Atoi(v); err == nil {
			return id
		}
	}
	return DefaultUserID
}

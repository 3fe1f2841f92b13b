// File: internal/config/config.go
package config

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort     string
	Environment    string
	LogLevel       string
	AllowedOrigins []string

	// Datastore. The anon key backs client-trust operations, the service role
	// key backs server-trust operations (users, migrations).
	DatabaseURL        string
	DatabaseAnonKey    string
	DatabaseServiceKey string

	AIProvider string
	AIAPIKey   string
	AIBaseURL  string
	AIModel    string

	ResendAPIKey string
	EmailFrom    string
	EmailTo      []string

	JWTSecretKey string

	FeedBaseURL         string
	FetchArticleContent bool
}

// IsProduction reports whether cookies must be marked Secure.
func (c *Config) IsProduction() bool {
	return strings.ToLower(c.Environment) == "production"
}

// Load reads configuration from environment variables or .env file.
func Load() *Config {
	env := os.Getenv("ENV")
	if strings.ToLower(env) != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found; continuing with environment variables")
		}
	}

	cfg := &Config{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		Environment:    env,
		LogLevel:       getEnv("LOG_LEVEL", "INFO"),
		AllowedOrigins: getEnvAsList("ALLOWED_ORIGINS", []string{"http://localhost:3000"}),

		DatabaseURL:        getEnv("DATABASE_URL", ""),
		DatabaseAnonKey:    getEnv("DATABASE_ANON_KEY", ""),
		DatabaseServiceKey: getEnv("DATABASE_SERVICE_ROLE_KEY", ""),

		AIProvider: strings.ToLower(getEnv("AI_PROVIDER", "openai")),
		AIAPIKey:   getEnv("GEMINI_API_KEY", getEnv("AI_API_KEY", "")),
		AIBaseURL:  getEnv("AI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta/openai/"),
		AIModel:    getEnv("AI_MODEL", "gemini-2.5-flash"),

		ResendAPIKey: getEnv("RESEND_API_KEY", ""),
		EmailFrom:    getEnv("EMAIL_FROM", "뉴스챗봇 <onboarding@resend.dev>"),
		EmailTo:      getEnvAsList("EMAIL_TO", []string{"liszzmword@gmail.com"}),

		JWTSecretKey: getEnv("JWT_SECRET_KEY", ""),

		FeedBaseURL:         getEnv("FEED_BASE_URL", "https://news.google.com/rss/search"),
		FetchArticleContent: getEnvAsBool("FETCH_ARTICLE_CONTENT", false),
	}

	// Validation for production environments
	if cfg.IsProduction() {
		missing := []string{}
		if cfg.JWTSecretKey == "" {
			missing = append(missing, "JWT_SECRET_KEY")
		}
		if cfg.DatabaseURL == "" {
			missing = append(missing, "DATABASE_URL")
		}
		if len(missing) > 0 {
			log.Fatalf("Missing required production environment variables: %v", missing)
		}
	}

	if cfg.JWTSecretKey == "" {
		log.Println("JWT_SECRET_KEY not set; using a random per-process secret (sessions end on restart)")
		cfg.JWTSecretKey = randomSecret()
	}

	return cfg
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	v, err := strconv.ParseBool(strValue)
	if err != nil {
		log.Printf("Warning: could not parse env var %s as bool. Using default value.", key)
		return defaultValue
	}
	return v
}

// getEnvAsList splits a comma separated variable, dropping empty entries.
func getEnvAsList(key string, defaultValue []string) []string {
	strValue := getEnv(key, "")
	if strValue == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(strValue, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

func randomSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		log.Fatalf("could not generate session secret: %v", err)
	}
	return hex.EncodeToString(buf)
}

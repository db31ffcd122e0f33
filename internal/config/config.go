package config

import (
	"encoding/json"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageDynamoDB = "dynamodb"
	StoragePostgres = "postgres"

	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

var defaultAllowedOrigins = []string{"http://localhost:3000"}

type Config struct {
	App       AppConfig
	Storage   StorageConfig
	Dynamo    DynamoConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	Events    EventsConfig
	Telemetry TelemetryConfig
}

type AppConfig struct {
	Port           string
	Environment    string
	LogLevel       string
	LogFilePath    string
	AllowedOrigins []string
}

type StorageConfig struct {
	Driver string // "dynamodb" or "postgres"
}

type DynamoConfig struct {
	Region          string
	EndpointURL     string
	AccessKeyID     string
	SecretAccessKey string
	NotesTable      string
	UsersTable      string
	PublicIndex     string // e.g. privacy-updated_at
	UserIndex       string // e.g. user_id-updated_at
	// CreateTables creates missing tables on startup. Local development only.
	CreateTables bool
}

type DatabaseConfig struct {
	Connection string
}

type AuthConfig struct {
	TokenSecret       string
	FirebaseProjectID string
	SessionCookieName string
	SessionTTL        time.Duration
	SessionStore      string // "memory" or "redis"
	RedisURL          string
}

type EventsConfig struct {
	Topic   string
	NatsURL string
}

type TelemetryConfig struct {
	OtelEnabled    bool
	OtelEndpoint   string
	MetricsEnabled bool
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:           getEnv("APP_PORT", "3000"),
			Environment:    getEnv("APP_ENV", getEnv("ENV", "development")),
			LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", "info")),
			LogFilePath:    getEnv("LOG_FILE_PATH", "logs/app.log"),
			AllowedOrigins: parseOrigins(getEnv("APP_ALLOWED_ORIGINS", "")),
		},
		Storage: StorageConfig{
			Driver: strings.ToLower(getEnv("STORAGE_DRIVER", StorageDynamoDB)),
		},
		Dynamo: DynamoConfig{
			Region:          getEnv("APP_AWS_REGION", getEnv("AWS_REGION", "us-east-1")),
			EndpointURL:     getEnv("APP_AWS_ENDPOINT_URL", ""),
			AccessKeyID:     getEnv("APP_AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("APP_AWS_SECRET_ACCESS_KEY", ""),
			NotesTable:      getEnv("APP_DYNAMODB_TABLE_NOTES", ""),
			UsersTable:      getEnv("APP_DYNAMODB_TABLE_USERS", ""),
			PublicIndex:     getEnv("APP_DYNAMODB_GSI_PUBLIC", ""),
			UserIndex:       getEnv("APP_DYNAMODB_GSI_USER", ""),
			CreateTables:    getEnvAsBool("APP_DYNAMODB_CREATE_TABLES", false),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Auth: AuthConfig{
			TokenSecret:       getEnv("AUTH_TOKEN_SECRET", ""),
			FirebaseProjectID: getEnv("FIREBASE_PROJECT_ID", ""),
			SessionCookieName: getEnv("SESSION_COOKIE_NAME", "session"),
			SessionTTL:        getEnvAsDuration("SESSION_TTL", 24*time.Hour),
			SessionStore:      strings.ToLower(getEnv("SESSION_STORE", SessionStoreMemory)),
			RedisURL:          getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Events: EventsConfig{
			Topic:   getEnv("EVENTS_TOPIC", "note_events"),
			NatsURL: getEnv("NATS_URL", ""),
		},
		Telemetry: TelemetryConfig{
			OtelEnabled:    getEnvAsBool("OTEL_ENABLED", false),
			OtelEndpoint:   getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),
		},
	}
}

func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// parseOrigins accepts a JSON list (["http://a","http://b"]) or a comma separated list.
func parseOrigins(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultAllowedOrigins
	}

	if strings.HasPrefix(raw, "[") {
		var origins []string
		if err := json.Unmarshal([]byte(raw), &origins); err != nil || len(origins) == 0 {
			return defaultAllowedOrigins
		}
		return origins
	}

	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return defaultAllowedOrigins
	}
	return origins
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go durations ("90m") or a plain number of seconds.
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	if d, err := time.ParseDuration(strValue); err == nil {
		return d
	}
	if secs := getEnvAsInt(key, -1); secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

package config

import (
	"os"
)

type Config struct {
	// Firestore / Cloud Storage
	ProjectID       string
	CredentialsFile string
	StorageBucket   string

	// Log sink database (optional)
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Server
	Port        string
	APIPrefix   string
	CORSOrigins string
}

func Load() *Config {
	return &Config{
		ProjectID:       getEnv("GOOGLE_PROJECT_ID", ""),
		CredentialsFile: getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
		StorageBucket:   getEnv("STORAGE_BUCKET", ""),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "lostfound_logs"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		Port:        getEnv("PORT", "3000"),
		APIPrefix:   getEnv("API_PREFIX", "/api/v1"),
		CORSOrigins: getEnv("CORS_ORIGINS", "*"),
	}
}

// LogSinkEnabled reports whether the Postgres log sink should be attached.
// Domain data lives in Firestore; the relational store only persists logs.
func (c *Config) LogSinkEnabled() bool {
	return c.DBPassword != ""
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

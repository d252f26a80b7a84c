package configs

import (
	"os"
	"path/filepath"
	"strings"

	"blog/app/repositories"
)

type Config struct {
	Addr         string
	Storage      string
	DBPath       string
	BadgerDir    string
	DatabaseURL  string
	BackupDir    string
	KafkaBrokers []string
	KafkaTopic   string
	OTLPEndpoint string
	ServiceName  string
}

func Load() *Config {
	return &Config{
		Addr:         getEnv("BLOG_ADDR", ":8080"),
		Storage:      strings.ToLower(getEnv("BLOG_STORAGE", repositories.DriverSQLite)),
		DBPath:       getEnv("BLOG_DB_PATH", filepath.Join("data", "blog.db")),
		BadgerDir:    getEnv("BLOG_BADGER_DIR", filepath.Join("data", "badger")),
		DatabaseURL:  getEnv("BLOG_DATABASE_URL", ""),
		BackupDir:    getEnv("BLOG_BACKUP_DIR", filepath.Join("data", "backups")),
		KafkaBrokers: splitList(getEnv("BLOG_KAFKA_BROKERS", "")),
		KafkaTopic:   getEnv("BLOG_KAFKA_TOPIC", "blog.events"),
		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		ServiceName:  getEnv("OTEL_SERVICE_NAME", "blog"),
	}
}

// StoreOptions describes the configured storage backend.
func (c *Config) StoreOptions() repositories.Options {
	return repositories.Options{
		Driver:    c.Storage,
		Path:      c.DBPath,
		DSN:       c.DatabaseURL,
		BadgerDir: c.BadgerDir,
	}
}

// DataPath is the on-disk location of the local store, empty for postgres.
func (c *Config) DataPath() string {
	switch c.Storage {
	case repositories.DriverSQLite:
		return c.DBPath
	case repositories.DriverBadger:
		return c.BadgerDir
	default:
		return ""
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

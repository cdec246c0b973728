package config

import (
	"bufio"
	"errors"
	"os"
	"strings"
	"sync"
)

type Config struct {
	Env            string
	LogLevel       string
	StorageBackend string
	DataDir        string
	EntriesFile    string
	ExportFile     string
	PostgresDSN    string
	APIToken       string
	AuthServiceURL string
	DemoMode       bool
	ListenAddr     string
}

var (
	cfg  *Config
	once sync.Once
)

func Load() *Config {
	once.Do(func() {
		_ = loadDotEnv()
		cfg = FromEnv()
		if err := cfg.Validate(); err != nil {
			panic("Invalid config: " + err.Error())
		}
	})
	return cfg
}

// FromEnv builds a Config from the current environment without the singleton,
// so tests can construct throwaway configs.
func FromEnv() *Config {
	return &Config{
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		StorageBackend: getEnv("STORAGE_BACKEND", "file"),
		DataDir:        getEnv("DATA_DIR", "data"),
		EntriesFile:    getEnv("ENTRIES_FILE", "workout_entries.json"),
		ExportFile:     getEnv("EXPORT_FILE", "workout_entries_export.json"),
		PostgresDSN:    getEnv("POSTGRES_DSN", ""),
		APIToken:       getEnv("API_TOKEN", "MOCK-TOKEN"),
		AuthServiceURL: getEnv("AUTH_SERVICE_URL", ""),
		DemoMode:       getEnv("DEMO_MODE", "false") == "true",
		ListenAddr:     getEnv("LISTEN_ADDR", ":8088"),
	}
}

func (c *Config) Validate() error {
	switch c.StorageBackend {
	case "postgres":
		if c.PostgresDSN == "" {
			return errors.New("POSTGRES_DSN is required when STORAGE_BACKEND=postgres")
		}
	case "file":
		if c.DataDir == "" || c.EntriesFile == "" {
			return errors.New("file storage requires DATA_DIR and ENTRIES_FILE to be set")
		}
	case "memory":
	default:
		return errors.New("STORAGE_BACKEND must be one of: file, memory, postgres")
	}
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return errors.New("APP_ENV must be one of: development, staging, production")
	}
	if c.Env != "development" && c.AuthServiceURL == "" {
		return errors.New("AUTH_SERVICE_URL is required outside development")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func loadDotEnv() error {
	f, err := os.Open(".env")
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		os.Setenv(strings.TrimSpace(key), strings.TrimSpace(value))
	}
	return scanner.Err()
}

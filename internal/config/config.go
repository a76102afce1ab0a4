package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config represents the application configuration
type Config struct {
	Server      ServerConfig
	Log         LogConfig
	Persistence PersistenceConfig
	Admin       AdminConfig
}

// ServerConfig contains TCP server configuration
type ServerConfig struct {
	Host           string
	Port           int
	ReadBufferSize int
}

// LogConfig contains logging configuration
type LogConfig struct {
	Level  string
	Format string
}

// PersistenceConfig contains persistence configuration
type PersistenceConfig struct {
	Type           string // "text", "badger", "memory"
	StoreFile      string
	DataDir        string
	SyncWrites     bool
	RestoreOnStart bool
}

// AdminConfig contains the optional admin/metrics HTTP endpoint configuration
type AdminConfig struct {
	Enabled bool
	Host    string
	Port    int
}

// Load loads configuration from environment variables with defaults
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Host:           getEnvString("KVD_HOST", "127.0.0.1"),
			Port:           getEnvInt("KVD_PORT", 4000),
			ReadBufferSize: getEnvInt("KVD_READ_BUFFER_SIZE", 1000),
		},
		Log: LogConfig{
			Level:  getEnvString("KVD_LOG_LEVEL", "info"),
			Format: getEnvString("KVD_LOG_FORMAT", "text"),
		},
		Persistence: PersistenceConfig{
			Type:           getEnvString("KVD_PERSISTENCE_TYPE", "text"),
			StoreFile:      getEnvString("KVD_STORE_FILE", "store"),
			DataDir:        getEnvString("KVD_DATA_DIR", "./data"),
			SyncWrites:     getEnvBool("KVD_SYNC_WRITES", true),
			RestoreOnStart: getEnvBool("KVD_RESTORE_ON_START", false),
		},
		Admin: AdminConfig{
			Enabled: getEnvBool("KVD_ADMIN_ENABLED", false),
			Host:    getEnvString("KVD_ADMIN_HOST", ""),
			Port:    getEnvInt("KVD_ADMIN_PORT", 9090),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d (must be 1-65535)", c.Server.Port)
	}

	if c.Server.ReadBufferSize <= 0 {
		return fmt.Errorf("invalid read buffer size: %d (must be positive)", c.Server.ReadBufferSize)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.Log.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Log.Level)
	}

	validLogFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validLogFormats[c.Log.Format] {
		return fmt.Errorf("invalid log format: %s (must be text or json)", c.Log.Format)
	}

	validPersistenceTypes := map[string]bool{
		"text":   true,
		"badger": true,
		"memory": true,
	}
	if !validPersistenceTypes[c.Persistence.Type] {
		return fmt.Errorf("invalid persistence type: %s (must be text, badger, or memory)", c.Persistence.Type)
	}

	if c.Persistence.Type == "text" && c.Persistence.StoreFile == "" {
		return fmt.Errorf("store file must be specified for text persistence")
	}

	if c.Persistence.Type == "badger" && c.Persistence.DataDir == "" {
		return fmt.Errorf("data directory must be specified for badger persistence")
	}

	if c.Admin.Enabled {
		if c.Admin.Port <= 0 || c.Admin.Port > 65535 {
			return fmt.Errorf("invalid admin port: %d (must be 1-65535)", c.Admin.Port)
		}
		if c.Admin.Port == c.Server.Port {
			return fmt.Errorf("admin port must differ from server port: %d", c.Admin.Port)
		}
	}

	return nil
}

// Address returns the server address in host:port format
func (c *Config) Address() string {
	if c.Server.Host == "" {
		return fmt.Sprintf(":%d", c.Server.Port)
	}
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// AdminAddress returns the admin endpoint address in host:port format
func (c *Config) AdminAddress() string {
	if c.Admin.Host == "" {
		return fmt.Sprintf(":%d", c.Admin.Port)
	}
	return fmt.Sprintf("%s:%d", c.Admin.Host, c.Admin.Port)
}

// getEnvString gets a string environment variable with a default value
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

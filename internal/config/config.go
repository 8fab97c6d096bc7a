package config

import (
	"errors"
	"os"
	"strconv"
)

// Server configuration
type ServerConfig struct {
	Port string
	Host string
}

// MongoDB configuration
type MongoConfig struct {
	URI      string
	Database string
}

// JWT configuration
type JWTConfig struct {
	Secret       string
	ExpiresHours int
}

// Google Sign-In configuration
type GoogleConfig struct {
	ClientID string
}

// Config holds all application configuration
type Config struct {
	Server ServerConfig
	Mongo  MongoConfig
	JWT    JWTConfig
	Google GoogleConfig
}

// Default configuration values
const (
	DefaultServerPort      = "8080"
	DefaultServerHost      = ""
	DefaultMongoURI        = "mongodb://localhost:27017/liongym"
	DefaultMongoDB         = "liongym"
	DefaultJWTExpiresHours = 4
)

// New returns a new Config with values from the environment
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", DefaultServerPort),
			Host: getEnv("SERVER_HOST", DefaultServerHost),
		},
		Mongo: MongoConfig{
			URI:      getEnv("MONGO_URI", DefaultMongoURI),
			Database: getEnv("MONGO_DB", DefaultMongoDB),
		},
		JWT: JWTConfig{
			Secret:       os.Getenv("JWT_SECRET"),
			ExpiresHours: getEnvInt("JWT_EXPIRES_HOURS", DefaultJWTExpiresHours),
		},
		Google: GoogleConfig{
			ClientID: os.Getenv("GOOGLE_CLIENT_ID"),
		},
	}
}

// Validate checks for configuration the process cannot run without.
// A missing signing secret is a startup failure, never a per-request one.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.JWT.ExpiresHours <= 0 {
		return errors.New("JWT_EXPIRES_HOURS must be positive")
	}
	return nil
}

// Address returns the server address string
func (c *ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

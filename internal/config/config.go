package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	ServerPort string

	KeycloakServerURL     string
	KeycloakRealm         string
	KeycloakClientID      string
	KeycloakClientSecret  string
	KeycloakAdminUser     string
	KeycloakAdminPassword string

	RedisAddr     string
	RedisPassword string
	RedisDB       string

	CORSOrigins []string
	Debug       bool
}

func Load() *Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "barber_user"),
		DBPassword: getEnv("DB_PASSWORD", "barber_pass"),
		DBName:     getEnv("DB_NAME", "barber_db"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		ServerPort: getEnv("SERVER_PORT", "8000"),

		KeycloakServerURL:     getEnv("KEYCLOAK_SERVER_URL", "http://localhost:8080"),
		KeycloakRealm:         getEnv("KEYCLOAK_REALM", "barbershop-realm"),
		KeycloakClientID:      getEnv("KEYCLOAK_CLIENT_ID", "barbershop-client"),
		KeycloakClientSecret:  getEnv("KEYCLOAK_CLIENT_SECRET", ""),
		KeycloakAdminUser:     getEnv("KEYCLOAK_ADMIN_USER", "admin"),
		KeycloakAdminPassword: getEnv("KEYCLOAK_ADMIN_PASSWORD", "admin"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnv("REDIS_DB", "0"),

		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:8000")),
		Debug:       getEnv("DEBUG", "false") == "true",
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}

func (c *Config) DatabaseURL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

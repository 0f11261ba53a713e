package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config містить усі налаштування застосунку, зчитані зі змінних оточення.
type Config struct {
	PostgresUser     string
	PostgresPassword string
	PostgresServer   string
	PostgresPort     string
	PostgresDB       string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SecretKey      string
	AccessTokenTTL time.Duration

	ListenAddr string
	UploadDir  string
}

// Load зчитує конфігурацію з оточення. Значення за замовчуванням
// відповідають локальному docker-compose.
func Load() *Config {
	return &Config{
		PostgresUser:     getEnv("POSTGRES_USER", "postgres"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", ""),
		PostgresServer:   getEnv("POSTGRES_SERVER", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresDB:       getEnv("POSTGRES_DB", "app_db"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		SecretKey:      getEnv("SECRET_KEY", "secret-key-placeholder"),
		AccessTokenTTL: time.Duration(getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30)) * time.Minute,

		ListenAddr: getEnv("LISTEN_ADDR", ":8080"),
		UploadDir:  getEnv("UPLOAD_DIR", "uploads"),
	}
}

// DSN будує рядок підключення для gorm/postgres.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.PostgresServer, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresPort,
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

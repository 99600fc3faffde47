package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv            string
	Serverless        bool
	Port              string
	DatabaseURL       string
	DBHost            string
	DBPort            string
	DBUser            string
	DBPassword        string
	DBName            string
	DBSSLMode         string
	DBMaxConns        int32
	DBMinConns        int32
	RedisURL          string
	RedisAddr         string
	RedisPassword     string
	JWTSecret         string
	JWTExpiry         string
	AdminEmail        string
	AdminPassword     string
	AdminPasswordHash string
	WhatsAppNumber    string
	CartTTL           time.Duration
	UploadDir         string
	MaxUploadSize     int64
}

var AppConfig *Config

func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	maxUploadSize, _ := strconv.ParseInt(os.Getenv("MAX_UPLOAD_SIZE"), 10, 64)
	if maxUploadSize == 0 {
		maxUploadSize = 5242880
	}

	cartTTL, err := time.ParseDuration(getEnv("CART_TTL", "720h"))
	if err != nil {
		log.Printf("Invalid CART_TTL, falling back to 30 days: %v", err)
		cartTTL = 30 * 24 * time.Hour
	}

	// Serverless deployments share nothing between invocations, so the
	// pool stays small and idle connections are shed quickly.
	serverless := os.Getenv("VERCEL") != ""
	maxConns, minConns := int32(25), int32(5)
	if serverless {
		maxConns, minConns = 5, 0
	}

	AppConfig = &Config{
		AppEnv:            getEnv("APP_ENV", "development"),
		Serverless:        serverless,
		Port:              getEnv("APP_PORT", getEnv("PORT", "8082")),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBName:            getEnv("DB_NAME", "plush_store"),
		DBSSLMode:         getEnv("DB_SSLMODE", "disable"),
		DBMaxConns:        maxConns,
		DBMinConns:        minConns,
		RedisURL:          os.Getenv("REDIS_URL"),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     os.Getenv("REDIS_PASSWORD"),
		JWTSecret:         getEnv("JWT_SECRET", "secret"),
		JWTExpiry:         getEnv("JWT_EXPIRY", "24h"),
		AdminEmail:        getEnv("ADMIN_EMAIL", "admin@uppelucias.com.br"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		WhatsAppNumber:    getEnv("WHATSAPP_NUMBER", "5586994173176"),
		CartTTL:           cartTTL,
		UploadDir:         getEnv("UPLOAD_DIR", "./uploads"),
		MaxUploadSize:     maxUploadSize,
	}

	log.Println("Configuration loaded successfully")
	log.Printf("Environment: %s", AppConfig.AppEnv)
	log.Printf("Server will run on port: %s", AppConfig.Port)
}

// DSN returns the Postgres connection string, preferring DATABASE_URL
// over the individual DB_* variables.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

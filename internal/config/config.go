package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddr string
	MySQLDSN   string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret string
	JWTTTL    time.Duration // 0 means tokens never expire

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	KafkaBrokers []string
	KafkaTopic   string

	PlantAPIURL string
	PlantAPIKey string

	UploadsDir string
}

func Load() *Config {
	godotenv.Load()
	return &Config{
		ServerAddr:    getenv("SERVER_ADDR", ":3000"),
		MySQLDSN:      getenv("MYSQL_DSN", "root:root@tcp(127.0.0.1:3306)/seedy?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:     getenv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getint("REDIS_DB", 0),
		JWTSecret:     getenv("JWT_SECRET", "secret-key"),
		JWTTTL:        time.Duration(getint("JWT_TTL_MINUTES", 0)) * time.Minute,
		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPPort:      getint("SMTP_PORT", 587),
		SMTPUsername:  os.Getenv("SMTP_USERNAME"),
		SMTPPassword:  os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:      getenv("SMTP_FROM", "Seedy <support@seedy.com.ar>"),
		KafkaBrokers:  splitNonEmpty(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:    getenv("KAFKA_TOPIC", "community-events"),
		PlantAPIURL:   getenv("PLANT_API_URL", "https://my-api.plantnet.org/v2/identify/all"),
		PlantAPIKey:   os.Getenv("PLANT_API_KEY"),
		UploadsDir:    getenv("UPLOADS_DIR", "uploads"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getint(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func splitNonEmpty(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

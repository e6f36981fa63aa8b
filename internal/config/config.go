package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Telegram struct {
		Token  string
		ChatID int64
	}
	Database struct {
		Path string
	}
}

func Load() (*Config, error) {
	// Local runs keep credentials in .env; absence is fine in production.
	if err := godotenv.Load(); err == nil {
		log.Println("📄 Loaded .env")
	}

	token := getEnv("TG_TOKEN", "")
	if token == "" {
		log.Fatal("❌ TG_TOKEN is not set. Export it or add it to .env")
	}

	chatIDStr := getEnv("TG_CHAT_ID", "")
	if chatIDStr == "" {
		log.Fatal("❌ TG_CHAT_ID is not set")
	}

	chatID, err := strconv.ParseInt(chatIDStr, 10, 64)
	if err != nil {
		log.Fatalf("❌ Invalid TG_CHAT_ID: %v", err)
	}

	cfg := &Config{}
	cfg.Telegram.Token = token
	cfg.Telegram.ChatID = chatID
	cfg.Database.Path = getEnv("DB_PATH", "/data/guidely.db")

	log.Printf("✅ Configuration loaded: db=%s", cfg.Database.Path)

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

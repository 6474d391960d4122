package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config 彙整服務啟動所需的環境設定
type Config struct {
	ServerPort string
	GinMode    string

	DBHost     string
	DBPort     string
	DBName     string
	DBUsername string
	DBPassword string

	FeedURL      string
	FetchTimeout time.Duration
	IngestSpec   string // cron 排程格式，預設每分鐘抓一次

	NearbyDefaultRadius float64 // 度，約 500 公尺（以新竹緯度換算）
	PredictDrainPerMin  float64 // 線性預測的每分鐘削減率
}

// Load 從環境變數讀取設定，缺漏時使用預設值
func Load() *Config {
	fetchSeconds, err := strconv.Atoi(getEnv("FETCH_TIMEOUT_SECONDS", "30"))
	if err != nil || fetchSeconds <= 0 {
		log.Printf("Invalid FETCH_TIMEOUT_SECONDS, falling back to 30: %v", err)
		fetchSeconds = 30
	}

	radius, err := strconv.ParseFloat(getEnv("NEARBY_DEFAULT_RADIUS", "0.005"), 64)
	if err != nil || radius <= 0 {
		log.Printf("Invalid NEARBY_DEFAULT_RADIUS, falling back to 0.005: %v", err)
		radius = 0.005
	}

	drain, err := strconv.ParseFloat(getEnv("PREDICT_DRAIN_PER_MIN", "0"), 64)
	if err != nil || drain < 0 {
		log.Printf("Invalid PREDICT_DRAIN_PER_MIN, falling back to 0: %v", err)
		drain = 0
	}

	return &Config{
		ServerPort: getEnv("PORT", "8080"),
		GinMode:    getEnv("GIN_MODE", "release"),

		DBHost:     getEnv("DB_HOST", "127.0.0.1"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBName:     getEnv("DB_NAME", "parking_db"),
		DBUsername: getEnv("DB_USERNAME", "parking_user"),
		DBPassword: getEnv("DB_PASSWORD", "parking1234"),

		FeedURL:      getEnv("FEED_URL", "https://hispark.hccg.gov.tw/OpenData/GetParkInfo"),
		FetchTimeout: time.Duration(fetchSeconds) * time.Second,
		IngestSpec:   getEnv("INGEST_CRON_SPEC", "@every 1m"),

		NearbyDefaultRadius: radius,
		PredictDrainPerMin:  drain,
	}
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"parkingdata/config"
	"parkingdata/database"
	"parkingdata/handlers"
	"parkingdata/models"
	"parkingdata/routes"
	"parkingdata/services"
)

func main() {
	// 載入 .env 檔案
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, using default environment variables: %v", err)
	}

	cfg := config.Load()

	// 初始化資料庫
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// 執行資料庫遷移
	if err := db.AutoMigrate(
		&models.ParkinglotInfo{},
		&models.ParkinglotSpace{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	feed := services.NewFeedClient(cfg.FeedURL, cfg.FetchTimeout)
	ingest := services.NewIngestService(db, feed)
	query := services.NewQueryService(db, cfg.NearbyDefaultRadius, cfg.PredictDrainPerMin)

	// 維度表為空時先匯入一次停車場基本資料
	if err := ingest.SeedParkinglotInfo(); err != nil {
		log.Printf("Seed import failed, snapshots will be skipped until lots exist: %v", err)
	}

	// 啟動定時擷取
	poller := services.NewPoller(ingest, cfg.IngestSpec)
	if err := poller.Start(); err != nil {
		log.Fatalf("Failed to start ingest poller: %v", err)
	}
	defer poller.Stop()

	// 設置 Gin 模式
	gin.SetMode(cfg.GinMode)
	log.Printf("Gin mode set to %s", cfg.GinMode)

	// 初始化 Gin 路由器
	r := gin.Default()

	// 創建一個 API 路由組
	api := r.Group("/api")
	{
		routes.Path(api, handlers.NewParkingHandler(query))
	}

	// 啟動伺服器
	log.Printf("Starting server on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

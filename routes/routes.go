package routes

import (
	"github.com/gin-gonic/gin"

	"parkingdata/handlers"
)

func Path(router *gin.RouterGroup, parking *handlers.ParkingHandler) {
	// 版本控制
	v1 := router.Group("/v1")
	{
		// 測試路由
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(200, gin.H{"message": "pong"})
		})

		// 停車場路由（唯讀，寫入只走背景擷取）
		lots := v1.Group("/parking")
		{
			lots.GET("", parking.GetParkinglots)                    // 查詢所有停車場
			lots.GET("/space/latest", parking.GetAllLatestSpaces)   // 查詢每個停車場的最新空位
			lots.GET("/nearby", parking.GetNearbyLots)              // 查詢附近停車場（附距離）
			lots.GET("/nearby/space", parking.GetNearbyLatest)      // 查詢附近停車場的最新空位
			lots.GET("/nearby/predict", parking.GetNearbyPredicted) // 查詢附近停車場的預測空位
			lots.GET("/:id", parking.GetParkinglot)                 // 查詢特定停車場
			lots.GET("/:id/space", parking.GetParkinglotSpaces)     // 查詢特定停車場的快照歷史
			lots.GET("/:id/space/latest", parking.GetLatestSpace)   // 查詢特定停車場的最新空位
			lots.GET("/:id/predict", parking.GetPredictedSpace)     // 預測特定停車場的空位
		}
	}
}

// handlers/parking.go
package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"parkingdata/models"
	"parkingdata/services"
)

// ParkingHandler 持有查詢服務，所有讀取端點都掛在這裡
type ParkingHandler struct {
	query *services.QueryService
}

func NewParkingHandler(query *services.QueryService) *ParkingHandler {
	return &ParkingHandler{query: query}
}

// parseLotID 解析路徑中的停車場 ID
func parseLotID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "無效的停車場 ID", err.Error())
		return 0, false
	}
	return id, true
}

// parseLatLng 解析必填的查詢座標
func parseLatLng(c *gin.Context) (float64, float64, bool) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil {
		ErrorResponse(c, http.StatusBadRequest, "無效的查詢座標", "lat and lng must be valid decimal numbers")
		return 0, 0, false
	}
	return lat, lng, true
}

// parseRadius 解析選填的搜尋半徑，未提供時用預設值
func (h *ParkingHandler) parseRadius(c *gin.Context) (float64, bool) {
	raw := c.Query("radius")
	if raw == "" {
		return h.query.DefaultRadius(), true
	}
	radius, err := strconv.ParseFloat(raw, 64)
	if err != nil || radius <= 0 {
		ErrorResponse(c, http.StatusBadRequest, "無效的搜尋半徑", "radius must be a positive decimal number")
		return 0, false
	}
	return radius, true
}

// GetParkinglots 查詢所有停車場基本資料
func (h *ParkingHandler) GetParkinglots(c *gin.Context) {
	lots, err := h.query.ListLots()
	if err != nil {
		log.Printf("Failed to list parkinglots: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "查詢停車場失敗", err.Error())
		return
	}

	responses := make([]models.ParkinglotInfoResponse, len(lots))
	for i, lot := range lots {
		responses[i] = lot.ToResponse()
	}
	SuccessResponse(c, http.StatusOK, "查詢成功", responses)
}

// GetParkinglot 查詢單一停車場，查無資料回傳空結果而非錯誤
func (h *ParkingHandler) GetParkinglot(c *gin.Context) {
	id, ok := parseLotID(c)
	if !ok {
		return
	}

	lot, err := h.query.GetLot(id)
	if err != nil {
		log.Printf("Failed to get parkinglot %d: %v", id, err)
		ErrorResponse(c, http.StatusInternalServerError, "查詢停車場失敗", err.Error())
		return
	}
	if lot == nil {
		SuccessResponse(c, http.StatusOK, "查無資料", nil)
		return
	}
	SuccessResponse(c, http.StatusOK, "查詢成功", lot.ToResponse())
}

// GetParkinglotSpaces 查詢某停車場的全部空位快照
func (h *ParkingHandler) GetParkinglotSpaces(c *gin.Context) {
	id, ok := parseLotID(c)
	if !ok {
		return
	}

	spaces, err := h.query.ListSnapshots(id)
	if err != nil {
		log.Printf("Failed to list snapshots for parkinglot %d: %v", id, err)
		ErrorResponse(c, http.StatusInternalServerError, "查詢空位快照失敗", err.Error())
		return
	}

	responses := make([]models.ParkinglotSpaceResponse, len(spaces))
	for i, space := range spaces {
		responses[i] = space.ToResponse()
	}
	SuccessResponse(c, http.StatusOK, "查詢成功", responses)
}

// GetLatestSpace 查詢某停車場最新的空位快照
func (h *ParkingHandler) GetLatestSpace(c *gin.Context) {
	id, ok := parseLotID(c)
	if !ok {
		return
	}

	space, err := h.query.LatestForLot(id)
	if err != nil {
		log.Printf("Failed to get latest snapshot for parkinglot %d: %v", id, err)
		ErrorResponse(c, http.StatusInternalServerError, "查詢最新空位失敗", err.Error())
		return
	}
	if space == nil {
		SuccessResponse(c, http.StatusOK, "查無資料", nil)
		return
	}
	SuccessResponse(c, http.StatusOK, "查詢成功", space.ToResponse())
}

// GetAllLatestSpaces 查詢每個停車場最新的空位快照
func (h *ParkingHandler) GetAllLatestSpaces(c *gin.Context) {
	latest, err := h.query.LatestPerLot(nil)
	if err != nil {
		log.Printf("Failed to get latest snapshots: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "查詢最新空位失敗", err.Error())
		return
	}

	responses := make([]models.ParkinglotSpaceResponse, 0, len(latest))
	for _, space := range latest {
		responses = append(responses, space.ToResponse())
	}
	SuccessResponse(c, http.StatusOK, "查詢成功", responses)
}

// GetNearbyLots 查詢附近的停車場，依距離由近到遠排序並附上距離
func (h *ParkingHandler) GetNearbyLots(c *gin.Context) {
	lat, lng, ok := parseLatLng(c)
	if !ok {
		return
	}
	radius, ok := h.parseRadius(c)
	if !ok {
		return
	}

	lots, err := h.query.NearbyLots(lat, lng, radius)
	if err != nil {
		log.Printf("Failed to get nearby parkinglots: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "查詢附近停車場失敗", err.Error())
		return
	}

	responses := make([]models.NearbyLotResponse, len(lots))
	for i, lot := range lots {
		responses[i] = lot.ToNearbyResponse()
	}
	SuccessResponse(c, http.StatusOK, "查詢成功", responses)
}

// GetNearbyLatest 查詢附近停車場各自最新的空位快照，依距離排序
func (h *ParkingHandler) GetNearbyLatest(c *gin.Context) {
	lat, lng, ok := parseLatLng(c)
	if !ok {
		return
	}
	radius, ok := h.parseRadius(c)
	if !ok {
		return
	}

	spaces, err := h.query.NearbyLatest(lat, lng, radius)
	if err != nil {
		log.Printf("Failed to get nearby latest snapshots: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "查詢附近空位失敗", err.Error())
		return
	}

	responses := make([]models.ParkinglotSpaceResponse, len(spaces))
	for i, space := range spaces {
		responses[i] = space.ToResponse()
	}
	SuccessResponse(c, http.StatusOK, "查詢成功", responses)
}

// GetNearbyPredicted 查詢附近停車場的預測空位
func (h *ParkingHandler) GetNearbyPredicted(c *gin.Context) {
	lat, lng, ok := parseLatLng(c)
	if !ok {
		return
	}
	radius, ok := h.parseRadius(c)
	if !ok {
		return
	}

	minutes := 30
	if raw := c.Query("minutes"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			ErrorResponse(c, http.StatusBadRequest, "無效的預測時間", "minutes must be a non-negative integer")
			return
		}
		minutes = parsed
	}

	predictions, err := h.query.NearbyPredicted(lat, lng, radius, minutes)
	if err != nil {
		log.Printf("Failed to get nearby predictions: %v", err)
		ErrorResponse(c, http.StatusInternalServerError, "查詢預測空位失敗", err.Error())
		return
	}
	SuccessResponse(c, http.StatusOK, "查詢成功", predictions)
}

// GetPredictedSpace 預測某停車場的未來空位
func (h *ParkingHandler) GetPredictedSpace(c *gin.Context) {
	id, ok := parseLotID(c)
	if !ok {
		return
	}

	minutes := 30
	if raw := c.Query("minutes"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			ErrorResponse(c, http.StatusBadRequest, "無效的預測時間", "minutes must be a non-negative integer")
			return
		}
		minutes = parsed
	}

	prediction, err := h.query.PredictOccupancy(id, minutes)
	if err != nil {
		log.Printf("Failed to predict occupancy for parkinglot %d: %v", id, err)
		ErrorResponse(c, http.StatusInternalServerError, "查詢預測空位失敗", err.Error())
		return
	}
	if prediction == nil {
		SuccessResponse(c, http.StatusOK, "查無資料", nil)
		return
	}
	SuccessResponse(c, http.StatusOK, "查詢成功", prediction)
}

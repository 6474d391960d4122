package services

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"

	"gorm.io/gorm"

	"parkingdata/models"
)

// QueryService 提供讀取端查詢：附近停車場、最新快照、線性預測
type QueryService struct {
	db            *gorm.DB
	defaultRadius float64
	drainPerMin   float64
}

func NewQueryService(db *gorm.DB, defaultRadius, drainPerMin float64) *QueryService {
	return &QueryService{db: db, defaultRadius: defaultRadius, drainPerMin: drainPerMin}
}

// DefaultRadius 回傳預設搜尋半徑（度），0.005 約為新竹緯度的 500 公尺
func (s *QueryService) DefaultRadius() float64 {
	return s.defaultRadius
}

// ListLots 列出所有停車場基本資料
func (s *QueryService) ListLots() ([]models.ParkinglotInfo, error) {
	var lots []models.ParkinglotInfo
	if err := s.db.Find(&lots).Error; err != nil {
		return nil, fmt.Errorf("failed to list parkinglots: %w", err)
	}
	return lots, nil
}

// GetLot 取得單一停車場，不存在時回傳 nil（查無資料不是錯誤）
func (s *QueryService) GetLot(id int) (*models.ParkinglotInfo, error) {
	var lot models.ParkinglotInfo
	if err := s.db.First(&lot, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get parkinglot %d: %w", id, err)
	}
	return &lot, nil
}

// ListSnapshots 列出某停車場的全部快照，新的在前
func (s *QueryService) ListSnapshots(lotID int) ([]models.ParkinglotSpace, error) {
	var spaces []models.ParkinglotSpace
	err := s.db.Where("parkinglot_id = ?", lotID).
		Order("update_date DESC, update_time DESC").
		Find(&spaces).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots for parkinglot %d: %w", lotID, err)
	}
	return spaces, nil
}

// calDist 計算查詢點到停車場的平面歐氏距離（以度為單位，不做大圓修正）
func calDist(sourceLat, sourceLng, targetLat, targetLng float64) float64 {
	return math.Sqrt(math.Pow(sourceLat-targetLat, 2) + math.Pow(sourceLng-targetLng, 2))
}

// NearbyLots 找出查詢點附近的停車場
// 先用 [lat±r, lng±r] 的外框粗篩，再以平面距離排序，距離相同時維持原本順序
// 座標字串無法解析成浮點數的停車場直接略過
func (s *QueryService) NearbyLots(lat, lng, radius float64) ([]models.ParkinglotInfo, error) {
	var lots []models.ParkinglotInfo
	if err := s.db.Find(&lots).Error; err != nil {
		return nil, fmt.Errorf("failed to load parkinglots: %w", err)
	}

	var candidates []models.ParkinglotInfo
	for _, lot := range lots {
		lotLat, errLat := strconv.ParseFloat(lot.Latitude, 64)
		lotLng, errLng := strconv.ParseFloat(lot.Longitude, 64)
		if errLat != nil || errLng != nil {
			continue
		}
		if lotLat < lat-radius || lotLat > lat+radius || lotLng < lng-radius || lotLng > lng+radius {
			continue
		}
		lot.Distance = calDist(lotLat, lotLng, lat, lng)
		candidates = append(candidates, lot)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Distance < candidates[j].Distance
	})
	return candidates, nil
}

// LatestPerLot 取每個停車場最新的一筆快照（以 (update_date, update_time) 最大者為準）
// lotIDs 為空時涵蓋所有停車場；沒有快照的停車場不會出現在結果中
func (s *QueryService) LatestPerLot(lotIDs []int) (map[int]models.ParkinglotSpace, error) {
	query := s.db.Order("update_date DESC, update_time DESC")
	if len(lotIDs) > 0 {
		query = query.Where("parkinglot_id IN ?", lotIDs)
	}

	var spaces []models.ParkinglotSpace
	if err := query.Find(&spaces).Error; err != nil {
		return nil, fmt.Errorf("failed to load snapshots: %w", err)
	}

	latest := make(map[int]models.ParkinglotSpace)
	for _, space := range spaces {
		if _, ok := latest[space.ParkinglotID]; !ok {
			latest[space.ParkinglotID] = space
		}
	}
	return latest, nil
}

// LatestForLot 取單一停車場最新的快照，沒有快照時回傳 nil
func (s *QueryService) LatestForLot(lotID int) (*models.ParkinglotSpace, error) {
	var space models.ParkinglotSpace
	err := s.db.Where("parkinglot_id = ?", lotID).
		Order("update_date DESC, update_time DESC").
		First(&space).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest snapshot for parkinglot %d: %w", lotID, err)
	}
	return &space, nil
}

// NearbyLatest 取附近停車場各自最新的快照，依距離由近到遠排列
// 還沒有任何快照的停車場直接省略
func (s *QueryService) NearbyLatest(lat, lng, radius float64) ([]models.ParkinglotSpace, error) {
	lots, err := s.NearbyLots(lat, lng, radius)
	if err != nil {
		return nil, err
	}
	if len(lots) == 0 {
		return nil, nil
	}

	ids := make([]int, len(lots))
	for i, lot := range lots {
		ids[i] = lot.ID
	}

	latest, err := s.LatestPerLot(ids)
	if err != nil {
		return nil, err
	}

	ordered := make([]models.ParkinglotSpace, 0, len(lots))
	for _, lot := range lots {
		if space, ok := latest[lot.ID]; ok {
			ordered = append(ordered, space)
		}
	}
	return ordered, nil
}

// predictCarAvail 線性外插：現有空位扣掉固定削減率乘以時間，最低為 0
// 佔位用的簡化模型，不是校準過的預測
func (s *QueryService) predictCarAvail(current, horizonMinutes int) int {
	delta := int(s.drainPerMin * float64(horizonMinutes))
	predicted := current - delta
	if predicted < 0 {
		return 0
	}
	return predicted
}

// PredictOccupancy 預測某停車場 horizonMinutes 後的汽車空位，機車維持現值
// 沒有快照可依據時回傳 nil
func (s *QueryService) PredictOccupancy(lotID, horizonMinutes int) (*models.PredictedSpaceResponse, error) {
	space, err := s.LatestForLot(lotID)
	if err != nil {
		return nil, err
	}
	if space == nil {
		return nil, nil
	}

	return &models.PredictedSpaceResponse{
		ParkinglotID:   lotID,
		HorizonMinutes: horizonMinutes,
		CarAvailPred:   s.predictCarAvail(space.CarAvail, horizonMinutes),
		MotoAvailPred:  space.MotoAvail,
		BaseDate:       space.UpdateDate,
		BaseTime:       space.UpdateTime,
	}, nil
}

// NearbyPredicted 取附近停車場的預測空位，排序同 NearbyLatest
func (s *QueryService) NearbyPredicted(lat, lng, radius float64, horizonMinutes int) ([]models.PredictedSpaceResponse, error) {
	spaces, err := s.NearbyLatest(lat, lng, radius)
	if err != nil {
		return nil, err
	}

	predictions := make([]models.PredictedSpaceResponse, 0, len(spaces))
	for _, space := range spaces {
		predictions = append(predictions, models.PredictedSpaceResponse{
			ParkinglotID:   space.ParkinglotID,
			HorizonMinutes: horizonMinutes,
			CarAvailPred:   s.predictCarAvail(space.CarAvail, horizonMinutes),
			MotoAvailPred:  space.MotoAvail,
			BaseDate:       space.UpdateDate,
			BaseTime:       space.UpdateTime,
		})
	}
	return predictions, nil
}

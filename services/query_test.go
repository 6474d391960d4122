package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"parkingdata/models"
)

func createLot(t *testing.T, db *gorm.DB, name, lat, lng string) models.ParkinglotInfo {
	t.Helper()
	info := models.ParkinglotInfo{
		Name: name, Address: "地址", StartHour: 0, EndHour: 24,
		Latitude: lat, Longitude: lng,
	}
	require.NoError(t, db.Create(&info).Error)
	return info
}

func createSpace(t *testing.T, db *gorm.DB, lotID, carAvail int, date, clock string) {
	t.Helper()
	space := models.ParkinglotSpace{
		ParkinglotID: lotID,
		CarAvail:     carAvail, CarTotal: 150, MotoAvail: 40, MotoTotal: 60,
		UpdateDate:   date, UpdateTime: clock,
	}
	require.NoError(t, db.Create(&space).Error)
}

func TestLatestPerLotInsertionOrderIndependent(t *testing.T) {
	db := setupTestDB(t)
	lot := createLot(t, db, "東門停車場", "24.807", "120.969783")

	// 故意亂序寫入 T2, T3, T1，最新的一筆永遠是 T3
	createSpace(t, db, lot.ID, 70, "2024-01-15", "08:06:00")
	createSpace(t, db, lot.ID, 60, "2024-01-15", "08:07:00")
	createSpace(t, db, lot.ID, 80, "2024-01-15", "08:05:00")

	query := NewQueryService(db, 0.005, 0)
	latest, err := query.LatestPerLot(nil)
	require.NoError(t, err)
	require.Contains(t, latest, lot.ID)
	assert.Equal(t, "08:07:00", latest[lot.ID].UpdateTime)
	assert.Equal(t, 60, latest[lot.ID].CarAvail)
}

func TestLatestPerLotAcrossDates(t *testing.T) {
	db := setupTestDB(t)
	lot := createLot(t, db, "東門停車場", "24.807", "120.969783")

	// 跨日比較以 (日期, 時間) 配對為準，昨天 23:59 比今天 00:01 舊
	createSpace(t, db, lot.ID, 70, "2024-01-14", "23:59:00")
	createSpace(t, db, lot.ID, 60, "2024-01-15", "00:01:00")

	query := NewQueryService(db, 0.005, 0)
	latest, err := query.LatestPerLot([]int{lot.ID})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", latest[lot.ID].UpdateDate)
	assert.Equal(t, "00:01:00", latest[lot.ID].UpdateTime)
}

func TestLatestPerLotMissingLotAbsent(t *testing.T) {
	db := setupTestDB(t)
	withSnapshot := createLot(t, db, "東門停車場", "24.807", "120.969783")
	withoutSnapshot := createLot(t, db, "北門停車場", "24.808", "120.970")
	createSpace(t, db, withSnapshot.ID, 80, "2024-01-15", "08:05:00")

	query := NewQueryService(db, 0.005, 0)
	latest, err := query.LatestPerLot(nil)
	require.NoError(t, err)
	assert.Contains(t, latest, withSnapshot.ID)
	assert.NotContains(t, latest, withoutSnapshot.ID)
}

func TestNearbyLotsOrderingAndBox(t *testing.T) {
	db := setupTestDB(t)
	atPoint := createLot(t, db, "原點停車場", "24.807", "120.969783")
	near := createLot(t, db, "隔壁停車場", "24.808", "120.969783")
	farther := createLot(t, db, "巷口停車場", "24.8095", "120.969783")
	createLot(t, db, "市外停車場", "24.900", "121.100") // 在外框外

	query := NewQueryService(db, 0.005, 0)
	lots, err := query.NearbyLots(24.807, 120.969783, 0.005)
	require.NoError(t, err)

	require.Len(t, lots, 3)
	// 距離由近到遠，查詢點上的停車場距離 0 排第一
	assert.Equal(t, atPoint.ID, lots[0].ID)
	assert.Equal(t, 0.0, lots[0].Distance)
	assert.Equal(t, near.ID, lots[1].ID)
	assert.Equal(t, farther.ID, lots[2].ID)
}

func TestNearbyLotsSkipsBadCoordinates(t *testing.T) {
	db := setupTestDB(t)
	createLot(t, db, "座標壞掉的停車場", "N/A", "")
	good := createLot(t, db, "東門停車場", "24.807", "120.969783")

	query := NewQueryService(db, 0.005, 0)
	lots, err := query.NearbyLots(24.807, 120.969783, 0.005)
	require.NoError(t, err)
	require.Len(t, lots, 1)
	assert.Equal(t, good.ID, lots[0].ID)
}

func TestNearbyLatestOmitsLotsWithoutSnapshots(t *testing.T) {
	db := setupTestDB(t)
	near := createLot(t, db, "隔壁停車場", "24.808", "120.969783")
	createLot(t, db, "還沒有快照的停車場", "24.807", "120.969783")
	createSpace(t, db, near.ID, 80, "2024-01-15", "08:05:00")

	query := NewQueryService(db, 0.005, 0)
	spaces, err := query.NearbyLatest(24.807, 120.969783, 0.005)
	require.NoError(t, err)

	// 沒有快照的停車場靜默省略，不是錯誤
	require.Len(t, spaces, 1)
	assert.Equal(t, near.ID, spaces[0].ParkinglotID)
}

func TestNearbyLatestEmptyArea(t *testing.T) {
	db := setupTestDB(t)
	query := NewQueryService(db, 0.005, 0)
	spaces, err := query.NearbyLatest(24.807, 120.969783, 0.005)
	require.NoError(t, err)
	assert.Empty(t, spaces)
}

func TestPredictOccupancy(t *testing.T) {
	db := setupTestDB(t)
	lot := createLot(t, db, "東門停車場", "24.807", "120.969783")
	createSpace(t, db, lot.ID, 10, "2024-01-15", "08:05:00")

	// 每分鐘削減 0.2 輛，30 分鐘後 10 - 6 = 4
	query := NewQueryService(db, 0.005, 0.2)
	pred, err := query.PredictOccupancy(lot.ID, 30)
	require.NoError(t, err)
	require.NotNil(t, pred)
	assert.Equal(t, 4, pred.CarAvailPred)
	assert.Equal(t, 40, pred.MotoAvailPred) // 機車維持現值
	assert.Equal(t, "2024-01-15", pred.BaseDate)
	assert.Equal(t, "08:05:00", pred.BaseTime)
}

func TestPredictOccupancyNeverNegative(t *testing.T) {
	db := setupTestDB(t)
	lot := createLot(t, db, "東門停車場", "24.807", "120.969783")
	createSpace(t, db, lot.ID, 3, "2024-01-15", "08:05:00")

	query := NewQueryService(db, 0.005, 1.0)
	pred, err := query.PredictOccupancy(lot.ID, 120)
	require.NoError(t, err)
	require.NotNil(t, pred)
	assert.Equal(t, 0, pred.CarAvailPred)
}

func TestPredictOccupancyNoSnapshot(t *testing.T) {
	db := setupTestDB(t)
	lot := createLot(t, db, "東門停車場", "24.807", "120.969783")

	query := NewQueryService(db, 0.005, 0.5)
	pred, err := query.PredictOccupancy(lot.ID, 30)
	require.NoError(t, err)
	assert.Nil(t, pred)
}

func TestGetLotUnknownReturnsNil(t *testing.T) {
	db := setupTestDB(t)
	query := NewQueryService(db, 0.005, 0)
	lot, err := query.GetLot(9999)
	require.NoError(t, err)
	assert.Nil(t, lot)
}

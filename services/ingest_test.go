package services

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"parkingdata/models"
)

// setupTestDB 建立測試用的 in-memory SQLite 資料庫
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.ParkinglotInfo{}, &models.ParkinglotSpace{}))
	return db
}

func validRawRecord(name string) models.RawFeedRecord {
	return models.RawFeedRecord{
		ParkNo:           "001",
		ParkingName:      name,
		Address:          "新竹市東區中正路120號",
		BusinessHours:    "24H",
		Weekdays:         "汽車30元 機車10元",
		Holiday:          "汽車50元 機車20元",
		FreeQuantity:     80,
		TotalQuantity:    150,
		FreeQuantityMot:  40,
		TotalQuantityMot: 60,
		Latitude:         "24.807",
		Longitude:        "120.969783",
		UpdateTime:       "2024-01-15T08:05:30.123456",
	}
}

func TestTransformLot(t *testing.T) {
	lot, err := TransformLot(validRawRecord("東門停車場"))
	require.NoError(t, err)

	assert.Equal(t, "東門停車場", lot.Name)
	assert.Equal(t, 0, lot.StartHour)
	assert.Equal(t, 24, lot.EndHour)
	assert.Equal(t, 30, lot.CarChargeFeeWeek)
	assert.Equal(t, 10, lot.MotoChargeFeeWeek)
	assert.Equal(t, 50, lot.CarChargeFeeHoli)
	assert.Equal(t, 20, lot.MotoChargeFeeHoli)
	assert.Equal(t, 80, lot.CarAvail)
	assert.Equal(t, 150, lot.CarTotal)
	assert.Equal(t, 40, lot.MotoAvail)
	assert.Equal(t, 60, lot.MotoTotal)
	assert.Equal(t, "24.807", lot.Latitude)
	assert.Equal(t, "120.969783", lot.Longitude)
	assert.Equal(t, "2024-01-15", lot.UpdateDate)
	assert.Equal(t, "08:05:00", lot.UpdateTime)
}

func TestTransformAllSkipsMalformed(t *testing.T) {
	bad := validRawRecord("壞資料停車場")
	bad.BusinessHours = "依現場公告"

	raws := []models.RawFeedRecord{
		validRawRecord("停車場A"),
		bad,
		validRawRecord("停車場B"),
	}

	var warnings []string
	var names []string
	for lot := range TransformAll(raws, func(raw models.RawFeedRecord, err error) {
		warnings = append(warnings, raw.ParkingName)
	}) {
		names = append(names, lot.Name)
	}

	// 壞資料只會被略過並回報，不會中斷整批，輸出維持輸入順序
	assert.Equal(t, []string{"停車場A", "停車場B"}, names)
	assert.Equal(t, []string{"壞資料停車場"}, warnings)
}

func TestResolveLotIdentity(t *testing.T) {
	db := setupTestDB(t)
	info := models.ParkinglotInfo{
		Name: "東門停車場", Address: "地址", StartHour: 0, EndHour: 24,
		Latitude: "24.807", Longitude: "120.969783",
	}
	require.NoError(t, db.Create(&info).Error)

	id, err := ResolveLotIdentity(db, "東門停車場")
	assert.NoError(t, err)
	assert.Equal(t, info.ID, id)

	_, err = ResolveLotIdentity(db, "不存在的停車場")
	assert.ErrorIs(t, err, ErrUnknownLot)
}

func TestPersistSnapshotDedup(t *testing.T) {
	db := setupTestDB(t)
	info := models.ParkinglotInfo{
		Name: "東門停車場", Address: "地址", StartHour: 0, EndHour: 24,
		Latitude: "24.807", Longitude: "120.969783",
	}
	require.NoError(t, db.Create(&info).Error)

	space := models.ParkinglotSpace{
		ParkinglotID: info.ID,
		CarAvail:     80, CarTotal: 150, MotoAvail: 40, MotoTotal: 60,
		UpdateDate:   "2024-01-15", UpdateTime: "08:05:00",
	}
	outcome, err := PersistSnapshot(db, &space)
	require.NoError(t, err)
	assert.Equal(t, OutcomeInserted, outcome)

	// 同一個自然鍵再寫一次：跳過且不新增任何列，空位數值不同也一樣
	again := models.ParkinglotSpace{
		ParkinglotID: info.ID,
		CarAvail:     70, CarTotal: 150, MotoAvail: 30, MotoTotal: 60,
		UpdateDate:   "2024-01-15", UpdateTime: "08:05:00",
	}
	outcome, err = PersistSnapshot(db, &again)
	require.NoError(t, err)
	assert.Equal(t, OutcomeDuplicateSkipped, outcome)

	var count int64
	require.NoError(t, db.Model(&models.ParkinglotSpace{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestFetchTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	feed := NewFeedClient(server.URL, time.Second)
	_, err := feed.Fetch()

	var transportErr *TransportError
	assert.ErrorAs(t, err, &transportErr)
}

func TestRunIngestCycle(t *testing.T) {
	payload := `[
		{"PARKNO":"001","PARKINGNAME":"停車場A","ADDRESS":"地址A","BUSINESSHOURS":"24H",
		 "WEEKDAYS":"汽車30元 機車10元","HOLIDAY":"汽車50元 機車20元",
		 "FREEQUANTITY":80,"TOTALQUANTITY":150,"FREEQUANTITYMOT":40,"TOTALQUANTITYMOT":60,
		 "LATITUDE":"24.807","LONGITUDE":"120.969783","UPDATETIME":"2024-01-15T08:05:30"},
		{"PARKNO":"002","PARKINGNAME":"停車場B","ADDRESS":"地址B","BUSINESSHOURS":"08:00~22:00",
		 "WEEKDAYS":"20元","HOLIDAY":"30元",
		 "FREEQUANTITY":10,"TOTALQUANTITY":20,"FREEQUANTITYMOT":0,"TOTALQUANTITYMOT":0,
		 "LATITUDE":"24.808","LONGITUDE":"120.970","UPDATETIME":"2024-01-15T08:05:12"},
		{"PARKNO":"003","PARKINGNAME":"壞資料停車場","ADDRESS":"地址C","BUSINESSHOURS":"依現場公告",
		 "WEEKDAYS":"20元","HOLIDAY":"30元",
		 "FREEQUANTITY":5,"TOTALQUANTITY":10,"FREEQUANTITYMOT":0,"TOTALQUANTITYMOT":0,
		 "LATITUDE":"24.809","LONGITUDE":"120.971","UPDATETIME":"2024-01-15T08:05:12"}
	]`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(payload))
	}))
	defer server.Close()

	db := setupTestDB(t)
	feed := NewFeedClient(server.URL, time.Second)
	ingest := NewIngestService(db, feed)

	// 首次匯入停車場：壞資料被略過，只建立兩個停車場
	require.NoError(t, ingest.SeedParkinglotInfo())
	var lotCount int64
	require.NoError(t, db.Model(&models.ParkinglotInfo{}).Count(&lotCount).Error)
	assert.Equal(t, int64(2), lotCount)

	// 第一輪擷取：兩筆快照入庫
	require.NoError(t, ingest.RunIngestCycle())
	var spaceCount int64
	require.NoError(t, db.Model(&models.ParkinglotSpace{}).Count(&spaceCount).Error)
	assert.Equal(t, int64(2), spaceCount)

	// 同樣的資料再跑一輪：自然鍵相同，整輪都是重複，不新增任何列
	require.NoError(t, ingest.RunIngestCycle())
	require.NoError(t, db.Model(&models.ParkinglotSpace{}).Count(&spaceCount).Error)
	assert.Equal(t, int64(2), spaceCount)
}

package services

import (
	"errors"
	"fmt"
	"iter"
	"log"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"parkingdata/models"
	"parkingdata/utils"
)

// ErrUnknownLot 表示快照的停車場名稱在維度表中不存在，該筆快照會被丟棄
var ErrUnknownLot = errors.New("parkinglot name not found in parkinglot_info")

// Outcome 表示單筆快照寫入的結果
type Outcome int

const (
	OutcomeInserted Outcome = iota
	OutcomeDuplicateSkipped
)

// TransformLot 把一筆原始資料正規化成中間結果
// 任一文字欄位解析失敗即回傳 FormatError，由呼叫端決定略過
func TransformLot(raw models.RawFeedRecord) (models.NormalizedLot, error) {
	startHour, endHour, err := utils.ParseBusinessHours(raw.BusinessHours)
	if err != nil {
		return models.NormalizedLot{}, err
	}

	carFeeWeek, motoFeeWeek, err := utils.ParseFeeSchedule(raw.Weekdays, raw.TotalQuantity, raw.TotalQuantityMot)
	if err != nil {
		return models.NormalizedLot{}, err
	}
	carFeeHoli, motoFeeHoli, err := utils.ParseFeeSchedule(raw.Holiday, raw.TotalQuantity, raw.TotalQuantityMot)
	if err != nil {
		return models.NormalizedLot{}, err
	}

	date, clock, err := utils.ParseDateTime(raw.UpdateTime)
	if err != nil {
		return models.NormalizedLot{}, err
	}

	return models.NormalizedLot{
		Name:              raw.ParkingName,
		Address:           raw.Address,
		StartHour:         startHour,
		EndHour:           endHour,
		CarAvail:          raw.FreeQuantity,
		CarTotal:          raw.TotalQuantity,
		MotoAvail:         raw.FreeQuantityMot,
		MotoTotal:         raw.TotalQuantityMot,
		CarChargeFeeWeek:  carFeeWeek,
		CarChargeFeeHoli:  carFeeHoli,
		MotoChargeFeeWeek: motoFeeWeek,
		MotoChargeFeeHoli: motoFeeHoli,
		Latitude:          raw.Latitude,
		Longitude:         raw.Longitude,
		UpdateDate:        date,
		UpdateTime:        clock,
	}, nil
}

// TransformAll 依輸入順序逐筆正規化，回傳一次性的惰性序列
// 解析失敗的資料會被略過並透過 warn 回報，單筆壞資料不會中斷整批
func TransformAll(raws []models.RawFeedRecord, warn func(raw models.RawFeedRecord, err error)) iter.Seq[models.NormalizedLot] {
	return func(yield func(models.NormalizedLot) bool) {
		for _, raw := range raws {
			lot, err := TransformLot(raw)
			if err != nil {
				if warn != nil {
					warn(raw, err)
				}
				continue
			}
			if !yield(lot) {
				return
			}
		}
	}
}

// ResolveLotIdentity 以名稱精確比對找出停車場 ID
// 名稱是唯一的身分解析機制，上游改名會讓既有快照串不起來（已知風險）
func ResolveLotIdentity(db *gorm.DB, name string) (int, error) {
	var info models.ParkinglotInfo
	if err := db.Select("id").Where("name = ?", name).First(&info).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrUnknownLot
		}
		return 0, fmt.Errorf("failed to resolve parkinglot %q: %w", name, err)
	}
	return info.ID, nil
}

// PersistSnapshot 寫入一筆快照，自然鍵 (parkinglot_id, update_date, update_time) 已存在時跳過
// 除了先查後寫，資料表本身的複合唯一索引搭配 ON CONFLICT DO NOTHING 才是真正的防線
func PersistSnapshot(db *gorm.DB, space *models.ParkinglotSpace) (Outcome, error) {
	var count int64
	err := db.Model(&models.ParkinglotSpace{}).
		Where("parkinglot_id = ? AND update_date = ? AND update_time = ?",
			space.ParkinglotID, space.UpdateDate, space.UpdateTime).
		Count(&count).Error
	if err != nil {
		return OutcomeDuplicateSkipped, fmt.Errorf("failed to check snapshot natural key: %w", err)
	}
	if count > 0 {
		return OutcomeDuplicateSkipped, nil
	}

	result := db.Clauses(clause.OnConflict{DoNothing: true}).Create(space)
	if result.Error != nil {
		return OutcomeDuplicateSkipped, fmt.Errorf("failed to insert snapshot: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return OutcomeDuplicateSkipped, nil
	}
	return OutcomeInserted, nil
}

// IngestService 擁有擷取流程：抓取、正規化、身分解析、去重寫入
type IngestService struct {
	db   *gorm.DB
	feed *FeedClient
}

func NewIngestService(db *gorm.DB, feed *FeedClient) *IngestService {
	return &IngestService{db: db, feed: feed}
}

// RunIngestCycle 執行一輪擷取
// 抓取失敗中止本輪；整輪快照在單一交易內提交，失敗時整批回滾
func (s *IngestService) RunIngestCycle() error {
	raws, err := s.feed.Fetch()
	if err != nil {
		return err
	}

	var inserted, duplicated, skipped int
	err = s.db.Transaction(func(tx *gorm.DB) error {
		warn := func(raw models.RawFeedRecord, err error) {
			skipped++
			log.Printf("Skipping record %q: %v", raw.ParkingName, err)
		}
		for lot := range TransformAll(raws, warn) {
			id, err := ResolveLotIdentity(tx, lot.Name)
			if errors.Is(err, ErrUnknownLot) {
				skipped++
				log.Printf("Skipping snapshot for unknown parkinglot %q", lot.Name)
				continue
			}
			if err != nil {
				return err
			}

			space := lot.ToSpace(id)
			outcome, err := PersistSnapshot(tx, &space)
			if err != nil {
				return err
			}
			switch outcome {
			case OutcomeInserted:
				inserted++
			case OutcomeDuplicateSkipped:
				duplicated++
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("ingest cycle rolled back: %w", err)
	}

	log.Printf("Ingest cycle completed: %d inserted, %d duplicates skipped, %d records skipped", inserted, duplicated, skipped)
	return nil
}

// SeedParkinglotInfo 在維度表為空時抓一次資料做停車場基本資料的初始匯入
// 之後的輪詢只新增快照，不再建立或修改停車場
func (s *IngestService) SeedParkinglotInfo() error {
	var count int64
	if err := s.db.Model(&models.ParkinglotInfo{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count parkinglot_info: %w", err)
	}
	if count > 0 {
		log.Printf("parkinglot_info already has %d rows, skipping seed import", count)
		return nil
	}

	raws, err := s.feed.Fetch()
	if err != nil {
		return err
	}

	seen := make(map[string]bool)
	var infos []models.ParkinglotInfo
	warn := func(raw models.RawFeedRecord, err error) {
		log.Printf("Skipping seed record %q: %v", raw.ParkingName, err)
	}
	for lot := range TransformAll(raws, warn) {
		if seen[lot.Name] {
			continue
		}
		seen[lot.Name] = true
		infos = append(infos, lot.ToInfo())
	}
	if len(infos) == 0 {
		return fmt.Errorf("seed import produced no parkinglot rows")
	}

	if err := s.db.Create(&infos).Error; err != nil {
		return fmt.Errorf("failed to seed parkinglot_info: %w", err)
	}
	log.Printf("Seeded parkinglot_info with %d rows", len(infos))
	return nil
}

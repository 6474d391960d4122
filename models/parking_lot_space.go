package models

// ParkinglotSpace 定義一筆停車場即時空位觀測（事實表，只新增不修改）
// (parkinglot_id, update_date, update_time) 為自然鍵，由複合唯一索引強制去重
type ParkinglotSpace struct {
	ID           int    `json:"id" gorm:"primaryKey;autoIncrement;type:INT"`
	ParkinglotID int    `json:"parkinglot_id" gorm:"not null;type:INT;uniqueIndex:idx_space_natural"`
	CarAvail     int    `json:"car_avail" gorm:"type:INT;not null"`
	CarTotal     int    `json:"car_total" gorm:"type:INT;not null"`
	MotoAvail    int    `json:"moto_avail" gorm:"type:INT;not null"`
	MotoTotal    int    `json:"moto_total" gorm:"type:INT;not null"`
	UpdateDate   string `json:"update_date" gorm:"type:date;not null;uniqueIndex:idx_space_natural"` // YYYY-MM-DD
	UpdateTime   string `json:"update_time" gorm:"type:time;not null;uniqueIndex:idx_space_natural"` // HH:MM:00，已截斷到分鐘
}

func (ParkinglotSpace) TableName() string {
	return "parkinglot_space"
}

// ParkinglotSpaceResponse 定義空位觀測回應結構
type ParkinglotSpaceResponse struct {
	ID           int    `json:"id"`
	ParkinglotID int    `json:"parkinglot_id"`
	CarAvail     int    `json:"car_avail"`
	CarTotal     int    `json:"car_total"`
	MotoAvail    int    `json:"moto_avail"`
	MotoTotal    int    `json:"moto_total"`
	UpdateDate   string `json:"update_date"`
	UpdateTime   string `json:"update_time"`
}

func (s *ParkinglotSpace) ToResponse() ParkinglotSpaceResponse {
	return ParkinglotSpaceResponse{
		ID:           s.ID,
		ParkinglotID: s.ParkinglotID,
		CarAvail:     s.CarAvail,
		CarTotal:     s.CarTotal,
		MotoAvail:    s.MotoAvail,
		MotoTotal:    s.MotoTotal,
		UpdateDate:   s.UpdateDate,
		UpdateTime:   s.UpdateTime,
	}
}

// PredictedSpaceResponse 預測查詢的回應，汽車空位為線性外插，機車維持現值
type PredictedSpaceResponse struct {
	ParkinglotID   int    `json:"parkinglot_id"`
	HorizonMinutes int    `json:"horizon_minutes"`
	CarAvailPred   int    `json:"car_avail_pred"`
	MotoAvailPred  int    `json:"moto_avail_pred"`
	BaseDate       string `json:"base_date"`
	BaseTime       string `json:"base_time"`
}

package models

// ParkinglotInfo 定義停車場基本資料（維度表）
// name 為跨次輪詢解析停車場身分的唯一鍵，建立後不再更新
type ParkinglotInfo struct {
	ID                int    `json:"id" gorm:"primaryKey;autoIncrement;type:INT"`
	Name              string `json:"name" gorm:"type:varchar(100);uniqueIndex;not null"`
	Address           string `json:"address" gorm:"type:varchar(100);not null"`
	StartHour         int    `json:"start_hour" gorm:"type:INT;not null"` // 營業開始（0-24）
	EndHour           int    `json:"end_hour" gorm:"type:INT;not null"`   // 營業結束（0-24）
	CarChargeFeeWeek  int    `json:"car_charge_fee_week" gorm:"type:INT;not null"`
	CarChargeFeeHoli  int    `json:"car_charge_fee_holi" gorm:"type:INT;not null"`
	MotoChargeFeeWeek int    `json:"moto_charge_fee_week" gorm:"type:INT;not null"`
	MotoChargeFeeHoli int    `json:"moto_charge_fee_holi" gorm:"type:INT;not null"`
	// 經緯度保留來源字串，避免浮點數轉換損失精度
	Latitude  string `json:"latitude" gorm:"type:varchar(20);not null"`
	Longitude string `json:"longitude" gorm:"type:varchar(20);not null"`

	Spaces []ParkinglotSpace `json:"-" gorm:"foreignKey:ParkinglotID;references:ID"`

	Distance float64 `json:"-" gorm:"-"` // transient，不存DB，附近查詢時計算
}

func (ParkinglotInfo) TableName() string {
	return "parkinglot_info"
}

// ParkinglotInfoResponse 定義停車場回應結構
type ParkinglotInfoResponse struct {
	ID                int    `json:"id"`
	Name              string `json:"name"`
	Address           string `json:"address"`
	StartHour         int    `json:"start_hour"`
	EndHour           int    `json:"end_hour"`
	CarChargeFeeWeek  int    `json:"car_charge_fee_week"`
	CarChargeFeeHoli  int    `json:"car_charge_fee_holi"`
	MotoChargeFeeWeek int    `json:"moto_charge_fee_week"`
	MotoChargeFeeHoli int    `json:"moto_charge_fee_holi"`
	Latitude          string `json:"latitude"`
	Longitude         string `json:"longitude"`
}

func (p *ParkinglotInfo) ToResponse() ParkinglotInfoResponse {
	return ParkinglotInfoResponse{
		ID:                p.ID,
		Name:              p.Name,
		Address:           p.Address,
		StartHour:         p.StartHour,
		EndHour:           p.EndHour,
		CarChargeFeeWeek:  p.CarChargeFeeWeek,
		CarChargeFeeHoli:  p.CarChargeFeeHoli,
		MotoChargeFeeWeek: p.MotoChargeFeeWeek,
		MotoChargeFeeHoli: p.MotoChargeFeeHoli,
		Latitude:          p.Latitude,
		Longitude:         p.Longitude,
	}
}

// NearbyLotResponse 附近查詢的回應，多帶計算出的平面距離
type NearbyLotResponse struct {
	ParkinglotInfoResponse
	Distance float64 `json:"distance"`
}

func (p *ParkinglotInfo) ToNearbyResponse() NearbyLotResponse {
	return NearbyLotResponse{
		ParkinglotInfoResponse: p.ToResponse(),
		Distance:               p.Distance,
	}
}

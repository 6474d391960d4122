package models

// NormalizedLot 是單筆原始資料正規化後、尚未解析停車場 ID 的中間結果
// name 之後會在寫入階段對應到 ParkinglotInfo.ID
type NormalizedLot struct {
	Name              string
	Address           string
	StartHour         int
	EndHour           int
	CarAvail          int
	CarTotal          int
	MotoAvail         int
	MotoTotal         int
	CarChargeFeeWeek  int
	CarChargeFeeHoli  int
	MotoChargeFeeWeek int
	MotoChargeFeeHoli int
	Latitude          string
	Longitude         string
	UpdateDate        string // YYYY-MM-DD
	UpdateTime        string // HH:MM:00
}

// ToInfo 取出維度表欄位，首次匯入停車場基本資料時使用
func (n *NormalizedLot) ToInfo() ParkinglotInfo {
	return ParkinglotInfo{
		Name:              n.Name,
		Address:           n.Address,
		StartHour:         n.StartHour,
		EndHour:           n.EndHour,
		CarChargeFeeWeek:  n.CarChargeFeeWeek,
		CarChargeFeeHoli:  n.CarChargeFeeHoli,
		MotoChargeFeeWeek: n.MotoChargeFeeWeek,
		MotoChargeFeeHoli: n.MotoChargeFeeHoli,
		Latitude:          n.Latitude,
		Longitude:         n.Longitude,
	}
}

// ToSpace 取出事實表欄位，配上已解析的停車場 ID
func (n *NormalizedLot) ToSpace(parkinglotID int) ParkinglotSpace {
	return ParkinglotSpace{
		ParkinglotID: parkinglotID,
		CarAvail:     n.CarAvail,
		CarTotal:     n.CarTotal,
		MotoAvail:    n.MotoAvail,
		MotoTotal:    n.MotoTotal,
		UpdateDate:   n.UpdateDate,
		UpdateTime:   n.UpdateTime,
	}
}

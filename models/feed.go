package models

// RawFeedRecord 新竹市開放資料停車場即時資訊的原始格式
// 欄位名稱與官方 JSON 完全一致（全大寫），核心只會用到汽車與機車的數量
type RawFeedRecord struct {
	ParkNo            string `json:"PARKNO"`
	ParkingName       string `json:"PARKINGNAME"`
	Address           string `json:"ADDRESS"`
	BusinessHours     string `json:"BUSINESSHOURS"`
	Weekdays          string `json:"WEEKDAYS"`
	Holiday           string `json:"HOLIDAY"`
	FreeQuantityBig   int    `json:"FREEQUANTITYBIG"`
	TotalQuantityBig  int    `json:"TOTALQUANTITYBIG"`
	FreeQuantity      int    `json:"FREEQUANTITY"`
	TotalQuantity     int    `json:"TOTALQUANTITY"`
	FreeQuantityMot   int    `json:"FREEQUANTITYMOT"`
	TotalQuantityMot  int    `json:"TOTALQUANTITYMOT"`
	FreeQuantityDis   int    `json:"FREEQUANTITYDIS"`
	TotalQuantityDis  int    `json:"TOTALQUANTITYDIS"`
	FreeQuantityCW    int    `json:"FREEQUANTITYCW"`
	TotalQuantityCW   int    `json:"TOTALQUANTITYCW"`
	FreeQuantityECar  int    `json:"FREEQUANTITYECAR"`
	TotalQuantityECar int    `json:"TOTALQUANTITYECAR"`
	Longitude         string `json:"LONGITUDE"`
	Latitude          string `json:"LATITUDE"`
	UpdateTime        string `json:"UPDATETIME"`
}

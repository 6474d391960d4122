package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// FormatError 表示來源文字欄位不符合預期格式，該筆資料應被略過
type FormatError struct {
	Field string
	Text  string
	Msg   string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("format error in %s: %s (input: %q)", e.Field, e.Msg, e.Text)
}

var (
	allDayPattern    = regexp.MustCompile(`24H`)
	hourPattern      = regexp.MustCompile(`(\d{2}):\d{2}`)
	parenPattern     = regexp.MustCompile(`\([^()]*\)`)
	feeAmountPattern = regexp.MustCompile(`(\d+)元`)
)

// ParseBusinessHours 解析營業時間文字
// 含 24H 標記回傳 (0, 24)，否則取出恰好兩個 HH:MM 的小時部分（依出現順序為開始、結束）
func ParseBusinessHours(text string) (int, int, error) {
	if allDayPattern.MatchString(text) {
		return 0, 24, nil
	}

	matches := hourPattern.FindAllStringSubmatch(text, -1)
	if len(matches) != 2 {
		return 0, 0, &FormatError{
			Field: "businesshours",
			Text:  text,
			Msg:   fmt.Sprintf("expected exactly 2 HH:MM tokens, got %d", len(matches)),
		}
	}

	start, err := strconv.Atoi(matches[0][1])
	if err != nil {
		return 0, 0, &FormatError{Field: "businesshours", Text: text, Msg: "invalid start hour"}
	}
	end, err := strconv.Atoi(matches[1][1])
	if err != nil {
		return 0, 0, &FormatError{Field: "businesshours", Text: text, Msg: "invalid end hour"}
	}

	return start, end, nil
}

// ParseFeeSchedule 從收費說明文字取出汽車與機車費率
// 只認「數字+元」且不在括號內的金額（括號內是附註，例如假日加價，必須忽略）
// 決定順序：有汽車位時第一個金額給汽車；有機車位時，金額多於一個取最後一個，
// 否則若沒有汽車位才取唯一的金額，不然機車費率為 0
// 此規則假設汽機車並列時，文字先寫汽車再寫機車
func ParseFeeSchedule(text string, carTotal, motoTotal int) (int, int, error) {
	if carTotal+motoTotal <= 0 {
		return 0, 0, &FormatError{
			Field: "chargefee",
			Text:  text,
			Msg:   "no parking space exists for both car and moto",
		}
	}

	stripped := parenPattern.ReplaceAllString(text, "")
	matches := feeAmountPattern.FindAllStringSubmatch(stripped, -1)
	if len(matches) == 0 {
		return 0, 0, &FormatError{
			Field: "chargefee",
			Text:  text,
			Msg:   "no price information exists",
		}
	}

	amounts := make([]int, len(matches))
	for i, m := range matches {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, 0, &FormatError{Field: "chargefee", Text: text, Msg: "invalid amount"}
		}
		amounts[i] = n
	}

	carFee, motoFee := 0, 0
	if carTotal != 0 {
		carFee = amounts[0]
	}
	if motoTotal != 0 {
		if len(amounts) > 1 {
			motoFee = amounts[len(amounts)-1]
		} else if carTotal == 0 {
			motoFee = amounts[0]
		}
	}

	return carFee, motoFee, nil
}

// timestampLayout 接受 ISO-8601 本地時間，小數秒可有可無
const timestampLayout = "2006-01-02T15:04:05.999999"

// ParseDateTime 解析更新時間字串，回傳 (YYYY-MM-DD, HH:MM:00)
// 秒與微秒一律截斷到分鐘
func ParseDateTime(text string) (string, string, error) {
	parsed, err := time.Parse(timestampLayout, text)
	if err != nil {
		return "", "", &FormatError{
			Field: "updatetime",
			Text:  text,
			Msg:   "not an ISO-8601 local timestamp",
		}
	}

	truncated := parsed.Truncate(time.Minute)
	return truncated.Format("2006-01-02"), truncated.Format("15:04") + ":00", nil
}

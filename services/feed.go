package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"parkingdata/models"
)

// TransportError 表示抓取來源資料失敗（連線錯誤、非 2xx 或解碼失敗）
// 只會中止本輪擷取，不影響下一輪排程
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("feed fetch failed for %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// FeedClient 負責向新竹市開放資料平台抓取停車場即時資訊
type FeedClient struct {
	url    string
	client *http.Client
}

// NewFeedClient 建立抓取端，timeout 必須明確設定，避免慢回應卡住下一輪排程
func NewFeedClient(url string, timeout time.Duration) *FeedClient {
	return &FeedClient{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch 取回一次完整的停車場原始資料
func (f *FeedClient) Fetch() ([]models.RawFeedRecord, error) {
	resp, err := f.client.Get(f.url)
	if err != nil {
		return nil, &TransportError{URL: f.url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &TransportError{URL: f.url, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	var records []models.RawFeedRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, &TransportError{URL: f.url, Err: fmt.Errorf("decode response: %w", err)}
	}

	return records, nil
}

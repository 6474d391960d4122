package services

import (
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
)

// Poller 擁有定時擷取的觸發器，啟動與停止由呼叫端控制
// SkipIfStillRunning 保證同一時間只有一輪擷取在跑，慢抓取不會讓兩輪交錯寫入
type Poller struct {
	cron   *cron.Cron
	ingest *IngestService
	spec   string
}

func NewPoller(ingest *IngestService, spec string) *Poller {
	return &Poller{
		cron:   cron.New(),
		ingest: ingest,
		spec:   spec,
	}
}

// Start 註冊擷取任務並啟動排程
// 單輪失敗只記錄不擴散，排程必須撐過任何一輪的錯誤
func (p *Poller) Start() error {
	job := cron.NewChain(cron.SkipIfStillRunning(cron.DefaultLogger)).Then(cron.FuncJob(func() {
		if err := p.ingest.RunIngestCycle(); err != nil {
			log.Printf("Ingest cycle failed: %v", err)
		}
	}))

	if _, err := p.cron.AddJob(p.spec, job); err != nil {
		return fmt.Errorf("failed to schedule ingest job %q: %w", p.spec, err)
	}

	p.cron.Start()
	log.Printf("Ingest poller started with schedule %q", p.spec)
	return nil
}

// Stop 停止排程，等待進行中的任務結束
func (p *Poller) Stop() {
	ctx := p.cron.Stop()
	<-ctx.Done()
	log.Println("Ingest poller stopped")
}

package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Hariprajaa05/Farmer-project/internal/config"
	"github.com/Hariprajaa05/Farmer-project/internal/logger"
	"github.com/Hariprajaa05/Farmer-project/internal/logic"
	"github.com/go-co-op/gocron/v2"
	"github.com/panjf2000/ants/v2"
)

// LedgerAuditJob 账本对账任务，只读不改
type LedgerAuditJob struct {
	ledgerLogic *logic.LedgerLogic
	config      *config.Config
}

// AuditReport 一次对账的汇总
type AuditReport struct {
	Checked      int64
	Inconsistent int64
	Failed       int64
}

// NewLedgerAuditJob 创建账本对账任务
func NewLedgerAuditJob(ledgerLogic *logic.LedgerLogic, cfg *config.Config) *LedgerAuditJob {
	return &LedgerAuditJob{
		ledgerLogic: ledgerLogic,
		config:      cfg,
	}
}

// GetName 获取任务名称
func (j *LedgerAuditJob) GetName() string {
	return "ledger_audit"
}

// GetSchedule 获取调度配置
func (j *LedgerAuditJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.AuditInterval) * time.Second)
}

// Execute 执行任务
func (j *LedgerAuditJob) Execute() {
	logger.Info("Starting ledger audit task")

	ctx, cancel := context.WithTimeout(context.Background(), j.timeout())
	defer cancel()

	report, err := j.Run(ctx)
	if err != nil {
		logger.Error("Ledger audit failed: %v", err)
		return
	}

	logger.Info("Ledger audit completed. Checked %d, inconsistent %d, failed %d",
		report.Checked, report.Inconsistent, report.Failed)
}

// Run 并发对账全部筹款请求
func (j *LedgerAuditJob) Run(ctx context.Context) (*AuditReport, error) {
	ids, err := j.ledgerLogic.ListRequestIDs(ctx)
	if err != nil {
		return nil, err
	}

	report := &AuditReport{}
	if len(ids) == 0 {
		return report, nil
	}

	workers := j.config.Task.AuditWorkers
	if workers <= 0 {
		workers = 1
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	var (
		wg           sync.WaitGroup
		checked      atomic.Int64
		inconsistent atomic.Int64
		failed       atomic.Int64
	)
	for _, id := range ids {
		id := id
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			result, err := j.ledgerLogic.Reconcile(ctx, id)
			if err != nil {
				failed.Add(1)
				logger.Warn("Failed to reconcile funding request %d: %v", id, err)
				return
			}
			checked.Add(1)
			if result.Consistent() {
				return
			}
			inconsistent.Add(1)
			if result.Drift != 0 {
				logger.Error("Ledger drift on funding request %d: raised %d, seed %d, donations %d (%d records), drift %d",
					id, result.AmountRaised, result.SeedAmount, result.DonationTotal, result.DonationCount, result.Drift)
			}
			if result.ClosureViolation {
				logger.Error("Funding request %d reached %d/%d but is still %s",
					id, result.AmountRaised, result.AmountNeeded, result.Status)
			}
		}); err != nil {
			wg.Done()
			failed.Add(1)
			logger.Error("Failed to submit audit task for funding request %d: %v", id, err)
		}
	}
	wg.Wait()

	report.Checked = checked.Load()
	report.Inconsistent = inconsistent.Load()
	report.Failed = failed.Load()
	return report, nil
}

func (j *LedgerAuditJob) timeout() time.Duration {
	interval := time.Duration(j.config.Task.AuditInterval) * time.Second
	if interval <= 0 {
		return time.Minute
	}
	return interval
}

package scheduler

import (
	"github.com/Hariprajaa05/Farmer-project/internal/config"
	"github.com/Hariprajaa05/Farmer-project/internal/logger"
	"github.com/Hariprajaa05/Farmer-project/internal/logic"
	"github.com/go-co-op/gocron/v2"
)

// Manager 任务管理器
type Manager struct {
	scheduler   gocron.Scheduler
	ledgerLogic *logic.LedgerLogic
	config      *config.Config
}

// NewManager 创建新的任务管理器
func NewManager(ledgerLogic *logic.LedgerLogic, cfg *config.Config) (*Manager, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	return &Manager{
		scheduler:   s,
		ledgerLogic: ledgerLogic,
		config:      cfg,
	}, nil
}

// Start 创建并启动任务管理器；未配置对账间隔时返回 nil
func Start(ledgerLogic *logic.LedgerLogic, cfg *config.Config) *Manager {
	if cfg.Task.AuditInterval <= 0 {
		logger.Info("Ledger audit disabled")
		return nil
	}

	manager, err := NewManager(ledgerLogic, cfg)
	if err != nil {
		logger.Error("Failed to create scheduler: %v", err)
		return nil
	}

	// 注册所有任务
	manager.RegisterJobs()

	// 启动调度器
	manager.scheduler.Start()

	logger.Info("Task manager started successfully")
	return manager
}

// RegisterJobs 注册所有任务
func (m *Manager) RegisterJobs() {
	m.RegisterLedgerAuditJob()
}

// RegisterLedgerAuditJob 注册账本对账任务
func (m *Manager) RegisterLedgerAuditJob() {
	job := NewLedgerAuditJob(m.ledgerLogic, m.config)

	_, err := m.scheduler.NewJob(
		job.GetSchedule(),
		gocron.NewTask(job.Execute),
		gocron.WithName(job.GetName()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		logger.Error("Failed to register job %s: %v", job.GetName(), err)
	}
}

// Stop 停止任务管理器
func (m *Manager) Stop() {
	if m == nil {
		return
	}
	if err := m.scheduler.Shutdown(); err != nil {
		logger.Error("Failed to shutdown scheduler: %v", err)
	}
	logger.Info("Task manager stopped")
}

package logic

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Hariprajaa05/Farmer-project/internal/config"
	"github.com/Hariprajaa05/Farmer-project/internal/logger"
	"github.com/Hariprajaa05/Farmer-project/internal/model"
	"github.com/Hariprajaa05/Farmer-project/internal/repository"
	"github.com/cenkalti/backoff/v5"
)

const (
	defaultMaxRetries     = 5
	defaultRetryBaseDelay = 20 * time.Millisecond
	defaultTxTimeout      = 5 * time.Second

	maxDonorNameLength = 100
	maxTitleLength     = 200
)

// LedgerOptions 账本参数
type LedgerOptions struct {
	MaxRetries     int
	RetryBaseDelay time.Duration
	TxTimeout      time.Duration
}

// LedgerOptionsFromConfig 从配置读取账本参数
func LedgerOptionsFromConfig(cfg config.LedgerConfig) LedgerOptions {
	return LedgerOptions{
		MaxRetries:     cfg.MaxRetries,
		RetryBaseDelay: cfg.RetryBaseDelay,
		TxTimeout:      cfg.TxTimeout,
	}
}

// LedgerLogic 捐赠账本业务逻辑
type LedgerLogic struct {
	store *repository.Store
	opts  LedgerOptions
}

// DonationInput 捐赠参数
type DonationInput struct {
	RequestId int64
	DonorName string
	Amount    int64 // 单位：分
}

// Receipt 捐赠回执
type Receipt struct {
	DonationId      int64
	RequestId       int64
	NewAmountRaised int64
	AmountNeeded    int64
	RequestClosed   bool
}

// CreateFundingRequestInput 创建筹款请求参数
type CreateFundingRequestInput struct {
	FarmerId     int64
	Title        string
	Description  string
	AmountNeeded int64
}

// ReconcileResult 账本对账结果
type ReconcileResult struct {
	RequestId        int64
	AmountNeeded     int64
	AmountRaised     int64
	SeedAmount       int64
	DonationTotal    int64
	DonationCount    int64
	Status           model.FundingRequestStatus
	Drift            int64 // amount_raised - seed_amount - 捐赠总额
	ClosureViolation bool  // 已达目标但未关闭
}

// Consistent 账本是否一致
func (r ReconcileResult) Consistent() bool {
	return r.Drift == 0 && !r.ClosureViolation
}

// NewLedgerLogic 创建捐赠账本业务逻辑
func NewLedgerLogic(store *repository.Store, opts LedgerOptions) *LedgerLogic {
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = defaultMaxRetries
	}
	if opts.RetryBaseDelay <= 0 {
		opts.RetryBaseDelay = defaultRetryBaseDelay
	}
	if opts.TxTimeout <= 0 {
		opts.TxTimeout = defaultTxTimeout
	}
	return &LedgerLogic{store: store, opts: opts}
}

// CreateFundingRequest 农户发起筹款请求，目标金额创建后不可修改
func (l *LedgerLogic) CreateFundingRequest(ctx context.Context, input CreateFundingRequestInput) (*model.FundingRequestModel, error) {
	input.Title = strings.TrimSpace(input.Title)
	if input.FarmerId <= 0 {
		return nil, invalidf("farmer id must be positive")
	}
	if input.Title == "" {
		return nil, invalidf("title must not be empty")
	}
	if utf8.RuneCountInString(input.Title) > maxTitleLength {
		return nil, invalidf("title exceeds %d characters", maxTitleLength)
	}
	if input.AmountNeeded <= 0 {
		return nil, invalidf("amount needed must be greater than 0")
	}

	if _, err := l.store.GetFarmer(ctx, input.FarmerId); err != nil {
		return nil, storeError(fmt.Sprintf("load farmer %d", input.FarmerId), err)
	}

	request := &model.FundingRequestModel{
		FarmerId:     input.FarmerId,
		Title:        input.Title,
		Description:  strings.TrimSpace(input.Description),
		AmountNeeded: input.AmountNeeded,
		AmountRaised: 0,
		Status:       model.FundingRequestStatusOpen,
	}
	if err := l.store.CreateFundingRequest(ctx, request); err != nil {
		return nil, storeError("create funding request", err)
	}

	logger.Info("Created funding request %d for farmer %d, amount needed %d", request.Id, request.FarmerId, request.AmountNeeded)
	return request, nil
}

// ListRequests 按创建顺序获取农户的全部筹款请求（含已关闭）
func (l *LedgerLogic) ListRequests(ctx context.Context, farmerId int64) ([]model.FundingRequestModel, error) {
	if farmerId <= 0 {
		return nil, invalidf("farmer id must be positive")
	}
	requests, err := l.store.ListFundingRequestsByFarmer(ctx, farmerId)
	if err != nil {
		return nil, storeError("list funding requests", err)
	}
	return requests, nil
}

// GetRequest 获取单个筹款请求
func (l *LedgerLogic) GetRequest(ctx context.Context, id int64) (*model.FundingRequestModel, error) {
	if id <= 0 {
		return nil, invalidf("funding request id must be positive")
	}
	request, err := l.store.GetFundingRequest(ctx, id)
	if err != nil {
		return nil, storeError(fmt.Sprintf("load funding request %d", id), err)
	}
	return request, nil
}

// ListDonations 获取筹款请求的捐赠历史
func (l *LedgerLogic) ListDonations(ctx context.Context, requestId int64) ([]model.DonationModel, error) {
	if _, err := l.GetRequest(ctx, requestId); err != nil {
		return nil, err
	}
	donations, err := l.store.ListDonationsByRequest(ctx, requestId)
	if err != nil {
		return nil, storeError("list donations", err)
	}
	return donations, nil
}

// ApplyDonation 记录一笔捐赠并原子地累加已筹金额，达到目标时关闭请求。
// 同一请求上的并发捐赠通过事务串行化；事务一旦开始不受调用方取消影响。
func (l *LedgerLogic) ApplyDonation(ctx context.Context, input DonationInput) (*Receipt, error) {
	if err := validateDonation(&input); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	txCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), l.opts.TxTimeout)
	defer cancel()

	attempts := 0
	receipt, err := backoff.Retry(txCtx, func() (*Receipt, error) {
		attempts++
		receipt, err := l.applyOnce(txCtx, input)
		if err == nil {
			return receipt, nil
		}
		if errors.Is(err, errSerialization) {
			logger.Warn("Donation to funding request %d conflicted (attempt %d): %v", input.RequestId, attempts, err)
			return nil, err
		}
		return nil, backoff.Permanent(err)
	},
		backoff.WithBackOff(l.newBackOff()),
		backoff.WithMaxTries(uint(l.opts.MaxRetries+1)),
	)
	if err != nil {
		switch {
		case errors.Is(err, errSerialization):
			return nil, fmt.Errorf("%w: funding request %d after %d attempts", ErrConflict, input.RequestId, attempts)
		case !classified(err):
			return nil, storeError("apply donation", err)
		}
		return nil, err
	}

	logger.Info("Applied donation %d of %d to funding request %d, raised %d/%d, closed=%t",
		receipt.DonationId, input.Amount, receipt.RequestId, receipt.NewAmountRaised, receipt.AmountNeeded, receipt.RequestClosed)
	return receipt, nil
}

// applyOnce 单次事务：加锁读取、记录捐赠、累加金额、回读
func (l *LedgerLogic) applyOnce(ctx context.Context, input DonationInput) (*Receipt, error) {
	var receipt *Receipt
	err := l.store.Transaction(ctx, func(tx *repository.Store) error {
		request, err := tx.LockFundingRequest(ctx, input.RequestId)
		if err != nil {
			return storeError(fmt.Sprintf("load funding request %d", input.RequestId), err)
		}
		if request.IsClosed() {
			return fmt.Errorf("%w: funding request %d", ErrRequestClosed, request.Id)
		}

		donation := &model.DonationModel{
			FundingRequestId: request.Id,
			DonorName:        input.DonorName,
			Amount:           input.Amount,
		}
		if err := tx.CreateDonation(ctx, donation); err != nil {
			return storeError("record donation", err)
		}

		affected, err := tx.CreditFundingRequest(ctx, request.Id, input.Amount)
		if err != nil {
			return storeError("credit funding request", err)
		}
		if affected == 0 {
			// 其他捐赠已先行关闭该请求，回滚本次记录
			return fmt.Errorf("%w: funding request %d", ErrRequestClosed, request.Id)
		}

		updated, err := tx.GetFundingRequest(ctx, request.Id)
		if err != nil {
			return storeError("reload funding request", err)
		}

		receipt = &Receipt{
			DonationId:      donation.Id,
			RequestId:       updated.Id,
			NewAmountRaised: updated.AmountRaised,
			AmountNeeded:    updated.AmountNeeded,
			RequestClosed:   updated.IsClosed(),
		}
		return nil
	})
	if err != nil {
		return nil, storeError("commit donation", err)
	}
	return receipt, nil
}

// Reconcile 对账：已筹金额应等于基线加捐赠总额，且达到目标的请求必须已关闭
func (l *LedgerLogic) Reconcile(ctx context.Context, requestId int64) (*ReconcileResult, error) {
	snapshot, err := l.store.GetLedgerSnapshot(ctx, requestId)
	if err != nil {
		return nil, storeError(fmt.Sprintf("snapshot funding request %d", requestId), err)
	}

	status := model.FundingRequestStatus(snapshot.Status)
	return &ReconcileResult{
		RequestId:        snapshot.RequestId,
		AmountNeeded:     snapshot.AmountNeeded,
		AmountRaised:     snapshot.AmountRaised,
		SeedAmount:       snapshot.SeedAmount,
		DonationTotal:    snapshot.DonationTotal,
		DonationCount:    snapshot.DonationCount,
		Status:           status,
		Drift:            snapshot.AmountRaised - snapshot.SeedAmount - snapshot.DonationTotal,
		ClosureViolation: snapshot.AmountRaised >= snapshot.AmountNeeded && status != model.FundingRequestStatusClosed,
	}, nil
}

// ListRequestIDs 获取全部筹款请求ID，供对账任务使用
func (l *LedgerLogic) ListRequestIDs(ctx context.Context) ([]int64, error) {
	ids, err := l.store.ListFundingRequestIDs(ctx)
	if err != nil {
		return nil, storeError("list funding request ids", err)
	}
	return ids, nil
}

func (l *LedgerLogic) newBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = l.opts.RetryBaseDelay
	b.MaxInterval = 20 * l.opts.RetryBaseDelay
	return b
}

// validateDonation 验证捐赠数据
func validateDonation(input *DonationInput) error {
	input.DonorName = strings.TrimSpace(input.DonorName)
	if input.RequestId <= 0 {
		return invalidf("funding request id must be positive")
	}
	if input.DonorName == "" {
		return invalidf("donor name must not be empty")
	}
	if utf8.RuneCountInString(input.DonorName) > maxDonorNameLength {
		return invalidf("donor name exceeds %d characters", maxDonorNameLength)
	}
	if input.Amount <= 0 {
		return invalidf("amount must be greater than 0")
	}
	return nil
}

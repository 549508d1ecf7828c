package repository

import (
	"context"
	"time"

	"github.com/Hariprajaa05/Farmer-project/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreateFundingRequest 创建筹款请求
func (s *Store) CreateFundingRequest(ctx context.Context, request *model.FundingRequestModel) error {
	return s.conn(ctx).Create(request).Error
}

// GetFundingRequest 根据ID获取筹款请求
func (s *Store) GetFundingRequest(ctx context.Context, id int64) (*model.FundingRequestModel, error) {
	var request model.FundingRequestModel
	if err := s.conn(ctx).First(&request, id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// LockFundingRequest 在事务内加行锁读取筹款请求；sqlite 没有行锁，由单写者连接保证串行
func (s *Store) LockFundingRequest(ctx context.Context, id int64) (*model.FundingRequestModel, error) {
	var request model.FundingRequestModel
	query := s.conn(ctx)
	if query.Dialector.Name() != "sqlite" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := query.Where("id = ?", id).Take(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// ListFundingRequestsByFarmer 按创建顺序获取农户的全部筹款请求
func (s *Store) ListFundingRequestsByFarmer(ctx context.Context, farmerId int64) ([]model.FundingRequestModel, error) {
	var requests []model.FundingRequestModel
	if err := s.conn(ctx).
		Where("farmer_id = ?", farmerId).
		Order("id ASC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// ListFundingRequestIDs 获取全部筹款请求ID
func (s *Store) ListFundingRequestIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	if err := s.conn(ctx).Model(&model.FundingRequestModel{}).Order("id ASC").Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

// CreditFundingRequest 原子地累加已筹金额，达到目标时在同一语句内关闭请求。
// 仅对 open 状态生效，返回受影响行数；0 表示请求不存在或已关闭。
func (s *Store) CreditFundingRequest(ctx context.Context, id int64, amount int64) (int64, error) {
	now := time.Now()
	result := s.conn(ctx).
		Model(&model.FundingRequestModel{}).
		Where("id = ? AND status = ?", id, string(model.FundingRequestStatusOpen)).
		UpdateColumns(map[string]interface{}{
			"amount_raised": gorm.Expr("amount_raised + ?", amount),
			"status": gorm.Expr("CASE WHEN amount_raised + ? >= amount_needed THEN ? ELSE status END",
				amount, string(model.FundingRequestStatusClosed)),
			"closed_at": gorm.Expr("CASE WHEN amount_raised + ? >= amount_needed THEN ? ELSE closed_at END",
				amount, now),
			"updated_at": now,
		})
	return result.RowsAffected, result.Error
}

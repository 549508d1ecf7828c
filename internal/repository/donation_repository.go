package repository

import (
	"context"

	"github.com/Hariprajaa05/Farmer-project/internal/model"
	"gorm.io/gorm"
)

// CreateDonation 追加捐赠记录
func (s *Store) CreateDonation(ctx context.Context, donation *model.DonationModel) error {
	return s.conn(ctx).Create(donation).Error
}

// ListDonationsByRequest 按记录顺序获取筹款请求的捐赠历史
func (s *Store) ListDonationsByRequest(ctx context.Context, requestId int64) ([]model.DonationModel, error) {
	var donations []model.DonationModel
	if err := s.conn(ctx).
		Where("funding_request_id = ?", requestId).
		Order("id ASC").
		Find(&donations).Error; err != nil {
		return nil, err
	}
	return donations, nil
}

// LedgerSnapshot 筹款请求与其捐赠汇总的一致性快照
type LedgerSnapshot struct {
	RequestId     int64
	AmountNeeded  int64
	AmountRaised  int64
	SeedAmount    int64
	Status        string
	DonationTotal int64
	DonationCount int64
}

// GetLedgerSnapshot 用一条语句同时读取筹款请求和捐赠汇总，避免两次读取之间插入新捐赠
func (s *Store) GetLedgerSnapshot(ctx context.Context, requestId int64) (*LedgerSnapshot, error) {
	var snapshot LedgerSnapshot
	err := s.conn(ctx).Raw(`
		SELECT
			r.id AS request_id,
			r.amount_needed,
			r.amount_raised,
			r.seed_amount,
			r.status,
			(SELECT COALESCE(SUM(d.amount), 0) FROM donation d WHERE d.funding_request_id = r.id) AS donation_total,
			(SELECT COUNT(*) FROM donation d WHERE d.funding_request_id = r.id) AS donation_count
		FROM funding_request r
		WHERE r.id = ?
	`, requestId).Scan(&snapshot).Error
	if err != nil {
		return nil, err
	}
	if snapshot.RequestId == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &snapshot, nil
}

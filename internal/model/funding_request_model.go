package model

import (
	"time"
)

// FundingRequestModel 农户筹款请求
type FundingRequestModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	FarmerId    int64  `json:"farmer_id" gorm:"not null;index:idx_funding_request_farmer_id"`
	Title       string `json:"title" gorm:"not null"`
	Description string `json:"description" gorm:"type:text"`

	// 金额，单位：分
	AmountNeeded int64 `json:"amount_needed" gorm:"not null"`
	AmountRaised int64 `json:"amount_raised" gorm:"not null;default:0"`
	SeedAmount   int64 `json:"seed_amount" gorm:"not null;default:0"` // 账本启用前已筹金额

	Status   FundingRequestStatus `json:"status" gorm:"not null;default:'open';index"`
	ClosedAt *time.Time           `json:"closed_at"`
}

// FundingRequestStatus 筹款状态
type FundingRequestStatus string

const (
	FundingRequestStatusOpen   FundingRequestStatus = "open"   // 筹款中
	FundingRequestStatusClosed FundingRequestStatus = "closed" // 已达成，终态
)

// IsClosed 是否已关闭
func (r *FundingRequestModel) IsClosed() bool {
	return r.Status == FundingRequestStatusClosed
}

// TableName 自定义表名
func (FundingRequestModel) TableName() string {
	return "funding_request"
}

package model

import (
	"time"
)

// DonationModel 捐赠记录，只追加不修改
type DonationModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	FundingRequestId int64  `json:"funding_request_id" gorm:"not null;index:idx_donation_funding_request_id"`
	DonorName        string `json:"donor_name" gorm:"not null"`
	Amount           int64  `json:"amount" gorm:"not null"` // 单位：分
}

// TableName 自定义表名
func (DonationModel) TableName() string {
	return "donation"
}

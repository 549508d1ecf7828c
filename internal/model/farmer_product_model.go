package model

import (
	"time"
)

// FarmerProductModel 农户在售商品（农户与商品的多对多关联）
type FarmerProductModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	FarmerId  int64  `json:"farmer_id" gorm:"not null;index:idx_farmer_product_farmer_id"`
	ProductId int64  `json:"product_id" gorm:"not null;index:idx_farmer_product_product_id"`
	Price     int64  `json:"price" gorm:"not null;default:0"` // 单价，单位：分
	Image     string `json:"image"`
}

// TableName 自定义表名
func (FarmerProductModel) TableName() string {
	return "farmer_product"
}

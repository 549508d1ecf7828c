package model

import (
	"time"
)

// ProductModel 商品目录，多个农户共享
type ProductModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name     string `json:"name" gorm:"not null"`
	Category string `json:"category" gorm:"index"`
}

// TableName 自定义表名
func (ProductModel) TableName() string {
	return "product"
}

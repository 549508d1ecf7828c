package model

import (
	"time"
)

// FarmerModel 农户
type FarmerModel struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name     string `json:"name" gorm:"not null"`
	Location string `json:"location"`
	District string `json:"district" gorm:"index"`
	Image    string `json:"img"`
}

// TableName 自定义表名
func (FarmerModel) TableName() string {
	return "farmer"
}

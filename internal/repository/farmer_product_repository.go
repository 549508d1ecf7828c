package repository

import (
	"context"

	"github.com/Hariprajaa05/Farmer-project/internal/model"
)

// CreateLink 创建在售商品
func (s *Store) CreateLink(ctx context.Context, link *model.FarmerProductModel) error {
	return s.conn(ctx).Create(link).Error
}

// GetLink 根据ID获取在售商品
func (s *Store) GetLink(ctx context.Context, id int64) (*model.FarmerProductModel, error) {
	var link model.FarmerProductModel
	if err := s.conn(ctx).First(&link, id).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

// ListLinks 按插入顺序获取在售商品，farmerId 为 0 时返回全部
func (s *Store) ListLinks(ctx context.Context, farmerId int64) ([]model.FarmerProductModel, error) {
	var links []model.FarmerProductModel
	query := s.conn(ctx).Order("id ASC")
	if farmerId > 0 {
		query = query.Where("farmer_id = ?", farmerId)
	}
	if err := query.Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

// UpdateLink 更新在售商品，返回受影响行数
func (s *Store) UpdateLink(ctx context.Context, id int64, updates map[string]interface{}) (int64, error) {
	result := s.conn(ctx).Model(&model.FarmerProductModel{}).Where("id = ?", id).Updates(updates)
	return result.RowsAffected, result.Error
}

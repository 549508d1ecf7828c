package repository

import (
	"context"

	"github.com/Hariprajaa05/Farmer-project/internal/model"
)

// CreateFarmer 创建农户
func (s *Store) CreateFarmer(ctx context.Context, farmer *model.FarmerModel) error {
	return s.conn(ctx).Create(farmer).Error
}

// GetFarmer 根据ID获取农户
func (s *Store) GetFarmer(ctx context.Context, id int64) (*model.FarmerModel, error) {
	var farmer model.FarmerModel
	if err := s.conn(ctx).First(&farmer, id).Error; err != nil {
		return nil, err
	}
	return &farmer, nil
}

// ListFarmers 获取全部农户
func (s *Store) ListFarmers(ctx context.Context) ([]model.FarmerModel, error) {
	var farmers []model.FarmerModel
	if err := s.conn(ctx).Order("id ASC").Find(&farmers).Error; err != nil {
		return nil, err
	}
	return farmers, nil
}

// FarmersByIDs 批量获取农户，不存在的ID直接缺省
func (s *Store) FarmersByIDs(ctx context.Context, ids []int64) ([]model.FarmerModel, error) {
	var farmers []model.FarmerModel
	if len(ids) == 0 {
		return farmers, nil
	}
	if err := s.conn(ctx).Where("id IN ?", ids).Find(&farmers).Error; err != nil {
		return nil, err
	}
	return farmers, nil
}

// UpdateFarmer 更新农户资料，返回受影响行数
func (s *Store) UpdateFarmer(ctx context.Context, id int64, updates map[string]interface{}) (int64, error) {
	result := s.conn(ctx).Model(&model.FarmerModel{}).Where("id = ?", id).Updates(updates)
	return result.RowsAffected, result.Error
}

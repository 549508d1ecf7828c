package repository

import (
	"context"

	"github.com/Hariprajaa05/Farmer-project/internal/model"
)

// CreateProduct 创建商品
func (s *Store) CreateProduct(ctx context.Context, product *model.ProductModel) error {
	return s.conn(ctx).Create(product).Error
}

// GetProduct 根据ID获取商品
func (s *Store) GetProduct(ctx context.Context, id int64) (*model.ProductModel, error) {
	var product model.ProductModel
	if err := s.conn(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// ListProducts 获取商品目录，category 为空时返回全部
func (s *Store) ListProducts(ctx context.Context, category string) ([]model.ProductModel, error) {
	var products []model.ProductModel
	query := s.conn(ctx).Order("id ASC")
	if category != "" {
		query = query.Where("LOWER(category) = LOWER(?)", category)
	}
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// ProductsByIDs 批量获取商品，不存在的ID直接缺省
func (s *Store) ProductsByIDs(ctx context.Context, ids []int64) ([]model.ProductModel, error) {
	var products []model.ProductModel
	if len(ids) == 0 {
		return products, nil
	}
	if err := s.conn(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// DeleteProduct 删除商品，引用它的在售商品不会被级联删除
func (s *Store) DeleteProduct(ctx context.Context, id int64) (int64, error) {
	result := s.conn(ctx).Delete(&model.ProductModel{}, id)
	return result.RowsAffected, result.Error
}

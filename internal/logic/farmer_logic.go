package logic

import (
	"context"
	"fmt"
	"strings"

	"github.com/Hariprajaa05/Farmer-project/internal/logger"
	"github.com/Hariprajaa05/Farmer-project/internal/model"
	"github.com/Hariprajaa05/Farmer-project/internal/repository"
)

// FarmerLogic 农户资料与在售商品维护
type FarmerLogic struct {
	store *repository.Store
}

// FarmerUpdate 农户资料可更新字段，nil 表示不修改
type FarmerUpdate struct {
	Name     *string
	Location *string
	District *string
	Image    *string
}

// LinkUpdate 在售商品可更新字段，nil 表示不修改
type LinkUpdate struct {
	ProductId *int64
	Price     *int64
	Image     *string
}

// LinkInput 新增在售商品参数
type LinkInput struct {
	FarmerId  int64
	ProductId int64
	Price     int64 // 单位：分
	Image     string
}

// NewFarmerLogic 创建农户业务逻辑
func NewFarmerLogic(store *repository.Store) *FarmerLogic {
	return &FarmerLogic{store: store}
}

// GetFarmer 获取农户
func (f *FarmerLogic) GetFarmer(ctx context.Context, id int64) (*model.FarmerModel, error) {
	if id <= 0 {
		return nil, invalidf("farmer id must be positive")
	}
	farmer, err := f.store.GetFarmer(ctx, id)
	if err != nil {
		return nil, storeError(fmt.Sprintf("load farmer %d", id), err)
	}
	return farmer, nil
}

// ListFarmers 获取全部农户
func (f *FarmerLogic) ListFarmers(ctx context.Context) ([]model.FarmerModel, error) {
	farmers, err := f.store.ListFarmers(ctx)
	if err != nil {
		return nil, storeError("list farmers", err)
	}
	return farmers, nil
}

// UpdateFarmer 更新农户资料并返回更新后的记录
func (f *FarmerLogic) UpdateFarmer(ctx context.Context, id int64, update FarmerUpdate) (*model.FarmerModel, error) {
	if id <= 0 {
		return nil, invalidf("farmer id must be positive")
	}

	updates := make(map[string]interface{})
	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, invalidf("name must not be empty")
		}
		updates["name"] = name
	}
	if update.Location != nil {
		updates["location"] = strings.TrimSpace(*update.Location)
	}
	if update.District != nil {
		updates["district"] = strings.TrimSpace(*update.District)
	}
	if update.Image != nil {
		updates["image"] = strings.TrimSpace(*update.Image)
	}
	if len(updates) == 0 {
		return nil, invalidf("no fields to update")
	}

	var farmer *model.FarmerModel
	err := f.store.Transaction(ctx, func(tx *repository.Store) error {
		if _, err := tx.GetFarmer(ctx, id); err != nil {
			return storeError(fmt.Sprintf("load farmer %d", id), err)
		}
		if _, err := tx.UpdateFarmer(ctx, id, updates); err != nil {
			return storeError("update farmer", err)
		}
		updated, err := tx.GetFarmer(ctx, id)
		if err != nil {
			return storeError("reload farmer", err)
		}
		farmer = updated
		return nil
	})
	if err != nil {
		return nil, storeError("update farmer", err)
	}

	logger.Info("Updated farmer %d profile fields %v", id, keys(updates))
	return farmer, nil
}

// UpdateLink 更新在售商品；修改引用商品时商品必须存在
func (f *FarmerLogic) UpdateLink(ctx context.Context, id int64, update LinkUpdate) (*model.FarmerProductModel, error) {
	if id <= 0 {
		return nil, invalidf("farmer product id must be positive")
	}

	updates := make(map[string]interface{})
	if update.Price != nil {
		if *update.Price < 0 {
			return nil, invalidf("price must not be negative")
		}
		updates["price"] = *update.Price
	}
	if update.Image != nil {
		updates["image"] = strings.TrimSpace(*update.Image)
	}
	if update.ProductId != nil {
		if *update.ProductId <= 0 {
			return nil, invalidf("product id must be positive")
		}
		updates["product_id"] = *update.ProductId
	}
	if len(updates) == 0 {
		return nil, invalidf("no fields to update")
	}

	var link *model.FarmerProductModel
	err := f.store.Transaction(ctx, func(tx *repository.Store) error {
		if _, err := tx.GetLink(ctx, id); err != nil {
			return storeError(fmt.Sprintf("load farmer product %d", id), err)
		}
		if update.ProductId != nil {
			if _, err := tx.GetProduct(ctx, *update.ProductId); err != nil {
				if err = storeError("load product", err); isNotFound(err) {
					return invalidf("product %d does not exist", *update.ProductId)
				}
				return err
			}
		}
		if _, err := tx.UpdateLink(ctx, id, updates); err != nil {
			return storeError("update farmer product", err)
		}
		updated, err := tx.GetLink(ctx, id)
		if err != nil {
			return storeError("reload farmer product", err)
		}
		link = updated
		return nil
	})
	if err != nil {
		return nil, storeError("update farmer product", err)
	}

	logger.Info("Updated farmer product %d fields %v", id, keys(updates))
	return link, nil
}

// CreateLink 农户新增在售商品，农户与商品都必须存在
func (f *FarmerLogic) CreateLink(ctx context.Context, input LinkInput) (*model.FarmerProductModel, error) {
	if input.FarmerId <= 0 {
		return nil, invalidf("farmer id must be positive")
	}
	if input.ProductId <= 0 {
		return nil, invalidf("product id must be positive")
	}
	if input.Price < 0 {
		return nil, invalidf("price must not be negative")
	}

	link := &model.FarmerProductModel{
		FarmerId:  input.FarmerId,
		ProductId: input.ProductId,
		Price:     input.Price,
		Image:     strings.TrimSpace(input.Image),
	}
	err := f.store.Transaction(ctx, func(tx *repository.Store) error {
		if _, err := tx.GetFarmer(ctx, input.FarmerId); err != nil {
			return storeError(fmt.Sprintf("load farmer %d", input.FarmerId), err)
		}
		if _, err := tx.GetProduct(ctx, input.ProductId); err != nil {
			if err = storeError("load product", err); isNotFound(err) {
				return invalidf("product %d does not exist", input.ProductId)
			}
			return err
		}
		if err := tx.CreateLink(ctx, link); err != nil {
			return storeError("create farmer product", err)
		}
		return nil
	})
	if err != nil {
		return nil, storeError("create farmer product", err)
	}

	logger.Info("Farmer %d added product %d as farmer product %d, price %d", link.FarmerId, link.ProductId, link.Id, link.Price)
	return link, nil
}

func keys(m map[string]interface{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

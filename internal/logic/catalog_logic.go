package logic

import (
	"context"
	"fmt"
	"strings"

	"github.com/Hariprajaa05/Farmer-project/internal/logger"
	"github.com/Hariprajaa05/Farmer-project/internal/model"
	"github.com/Hariprajaa05/Farmer-project/internal/repository"
)

// CatalogLogic 商品展示视图：关联在售商品、商品、农户
type CatalogLogic struct {
	store *repository.Store
}

// OfferFilter 查询条件，Limit 为 0 表示不限制
type OfferFilter struct {
	FarmerId int64
	Category string
	Limit    int
	Offset   int
}

// Offer 展示给买家的在售商品视图
type Offer struct {
	OfferId int64
	Price   int64 // 单位：分
	Image   string
	Product OfferProduct
	Farmer  OfferFarmer
}

type OfferProduct struct {
	Id       int64
	Name     string
	Category string
}

type OfferFarmer struct {
	Id       int64
	Name     string
	Location string
	District string
	Image    string
}

// NewCatalogLogic 创建商品展示业务逻辑
func NewCatalogLogic(store *repository.Store) *CatalogLogic {
	return &CatalogLogic{store: store}
}

// ListOffers 按在售商品插入顺序返回视图。
// 引用的商品或农户不存在时该条记录被丢弃；存储错误直接返回，不返回部分结果。
func (c *CatalogLogic) ListOffers(ctx context.Context, filter OfferFilter) ([]Offer, error) {
	if filter.FarmerId < 0 {
		return nil, invalidf("farmer id must not be negative")
	}
	if filter.Limit < 0 || filter.Offset < 0 {
		return nil, invalidf("limit and offset must not be negative")
	}

	var (
		links    []model.FarmerProductModel
		products map[int64]model.ProductModel
		farmers  map[int64]model.FarmerModel
	)
	// 三次读取共用一个快照，并发修改不会让记录在中途消失
	err := c.store.ReadSnapshot(ctx, func(tx *repository.Store) error {
		var err error
		if links, err = tx.ListLinks(ctx, filter.FarmerId); err != nil {
			return storeError("load farmer products", err)
		}
		if products, err = resolveProducts(ctx, tx, links); err != nil {
			return err
		}
		farmers, err = resolveFarmers(ctx, tx, links)
		return err
	})
	if err != nil {
		return nil, storeError("list offers", err)
	}

	offers := joinOffers(links, products, farmers)
	offers = filterByCategory(offers, filter.Category)
	return paginate(offers, filter.Limit, filter.Offset), nil
}

// ListProducts 获取商品目录
func (c *CatalogLogic) ListProducts(ctx context.Context, category string) ([]model.ProductModel, error) {
	category = strings.TrimSpace(category)
	if strings.EqualFold(category, "all") {
		category = ""
	}
	products, err := c.store.ListProducts(ctx, category)
	if err != nil {
		return nil, storeError("list products", err)
	}
	return products, nil
}

// DeleteProduct 删除商品；引用它的在售商品保留，但不再出现在视图中
func (c *CatalogLogic) DeleteProduct(ctx context.Context, id int64) error {
	if id <= 0 {
		return invalidf("product id must be positive")
	}
	affected, err := c.store.DeleteProduct(ctx, id)
	if err != nil {
		return storeError(fmt.Sprintf("delete product %d", id), err)
	}
	if affected == 0 {
		return fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	logger.Info("Deleted product %d", id)
	return nil
}

// resolveProducts 批量加载在售商品引用的商品
func resolveProducts(ctx context.Context, store *repository.Store, links []model.FarmerProductModel) (map[int64]model.ProductModel, error) {
	ids := uniqueIDs(links, func(link model.FarmerProductModel) int64 { return link.ProductId })
	products, err := store.ProductsByIDs(ctx, ids)
	if err != nil {
		return nil, storeError("resolve products", err)
	}
	byId := make(map[int64]model.ProductModel, len(products))
	for _, product := range products {
		byId[product.Id] = product
	}
	return byId, nil
}

// resolveFarmers 批量加载在售商品引用的农户
func resolveFarmers(ctx context.Context, store *repository.Store, links []model.FarmerProductModel) (map[int64]model.FarmerModel, error) {
	ids := uniqueIDs(links, func(link model.FarmerProductModel) int64 { return link.FarmerId })
	farmers, err := store.FarmersByIDs(ctx, ids)
	if err != nil {
		return nil, storeError("resolve farmers", err)
	}
	byId := make(map[int64]model.FarmerModel, len(farmers))
	for _, farmer := range farmers {
		byId[farmer.Id] = farmer
	}
	return byId, nil
}

// joinOffers 内连接：商品或农户任一缺失的在售商品被丢弃
func joinOffers(links []model.FarmerProductModel, products map[int64]model.ProductModel, farmers map[int64]model.FarmerModel) []Offer {
	offers := make([]Offer, 0, len(links))
	for _, link := range links {
		product, ok := products[link.ProductId]
		if !ok {
			logger.Debug("Dropping farmer product %d: product %d not found", link.Id, link.ProductId)
			continue
		}
		farmer, ok := farmers[link.FarmerId]
		if !ok {
			logger.Debug("Dropping farmer product %d: farmer %d not found", link.Id, link.FarmerId)
			continue
		}
		offers = append(offers, Offer{
			OfferId: link.Id,
			Price:   link.Price,
			Image:   link.Image,
			Product: OfferProduct{
				Id:       product.Id,
				Name:     product.Name,
				Category: product.Category,
			},
			Farmer: OfferFarmer{
				Id:       farmer.Id,
				Name:     farmer.Name,
				Location: farmer.Location,
				District: farmer.District,
				Image:    farmer.Image,
			},
		})
	}
	return offers
}

// filterByCategory 分类过滤，忽略大小写与首尾空白
func filterByCategory(offers []Offer, category string) []Offer {
	category = strings.TrimSpace(category)
	if category == "" || strings.EqualFold(category, "all") {
		return offers
	}
	filtered := offers[:0:0]
	for _, offer := range offers {
		if strings.EqualFold(strings.TrimSpace(offer.Product.Category), category) {
			filtered = append(filtered, offer)
		}
	}
	return filtered
}

// paginate 先跳过 offset 再截取 limit，不改变相对顺序
func paginate(offers []Offer, limit, offset int) []Offer {
	if offset >= len(offers) {
		return []Offer{}
	}
	offers = offers[offset:]
	if limit > 0 && limit < len(offers) {
		offers = offers[:limit]
	}
	return offers
}

func uniqueIDs(links []model.FarmerProductModel, key func(model.FarmerProductModel) int64) []int64 {
	seen := make(map[int64]struct{}, len(links))
	ids := make([]int64, 0, len(links))
	for _, link := range links {
		id := key(link)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

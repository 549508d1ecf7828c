package seed

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/Hariprajaa05/Farmer-project/internal/logger"
	"github.com/Hariprajaa05/Farmer-project/internal/model"
	"github.com/Hariprajaa05/Farmer-project/internal/repository"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Fixture 初始数据文件，记录之间通过 key 引用
type Fixture struct {
	Farmers         []FarmerFixture         `yaml:"farmers"`
	Products        []ProductFixture        `yaml:"products"`
	Links           []LinkFixture           `yaml:"links"`
	FundingRequests []FundingRequestFixture `yaml:"funding_requests"`
}

type FarmerFixture struct {
	Key      string `yaml:"key"`
	Name     string `yaml:"name"`
	Location string `yaml:"location"`
	District string `yaml:"district"`
	Image    string `yaml:"img"`
}

type ProductFixture struct {
	Key      string `yaml:"key"`
	Name     string `yaml:"name"`
	Category string `yaml:"category"`
}

type LinkFixture struct {
	Farmer  string `yaml:"farmer"`
	Product string `yaml:"product"`
	Price   string `yaml:"price"` // 元
	Image   string `yaml:"image"`
}

type FundingRequestFixture struct {
	Farmer       string `yaml:"farmer"`
	Title        string `yaml:"title"`
	Description  string `yaml:"description"`
	AmountNeeded string `yaml:"amount_needed"` // 元
	AmountRaised string `yaml:"amount_raised"` // 元，可选，作为账本基线
}

// Summary 导入结果
type Summary struct {
	Farmers         int
	Products        int
	Links           int
	FundingRequests int
}

// LoadFile 读取并解析数据文件
func LoadFile(path string) (*Fixture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse 解析 YAML 数据，未知字段视为错误
func Parse(r io.Reader) (*Fixture, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var fixture Fixture
	if err := dec.Decode(&fixture); err != nil {
		if err == io.EOF {
			return &fixture, nil
		}
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	return &fixture, nil
}

// Apply 在单个事务内写入全部数据，任一记录失败整体回滚
func Apply(ctx context.Context, store *repository.Store, fixture *Fixture) (*Summary, error) {
	summary := &Summary{}
	err := store.Transaction(ctx, func(tx *repository.Store) error {
		farmers := make(map[string]int64, len(fixture.Farmers))
		for i, f := range fixture.Farmers {
			key := strings.TrimSpace(f.Key)
			if key == "" || strings.TrimSpace(f.Name) == "" {
				return fmt.Errorf("farmer #%d: key and name are required", i+1)
			}
			if _, ok := farmers[key]; ok {
				return fmt.Errorf("farmer #%d: duplicate key %q", i+1, key)
			}
			farmer := &model.FarmerModel{
				Name:     strings.TrimSpace(f.Name),
				Location: f.Location,
				District: f.District,
				Image:    f.Image,
			}
			if err := tx.CreateFarmer(ctx, farmer); err != nil {
				return fmt.Errorf("farmer %q: %w", key, err)
			}
			farmers[key] = farmer.Id
			summary.Farmers++
		}

		products := make(map[string]int64, len(fixture.Products))
		for i, p := range fixture.Products {
			key := strings.TrimSpace(p.Key)
			if key == "" || strings.TrimSpace(p.Name) == "" {
				return fmt.Errorf("product #%d: key and name are required", i+1)
			}
			if _, ok := products[key]; ok {
				return fmt.Errorf("product #%d: duplicate key %q", i+1, key)
			}
			product := &model.ProductModel{
				Name:     strings.TrimSpace(p.Name),
				Category: strings.TrimSpace(p.Category),
			}
			if err := tx.CreateProduct(ctx, product); err != nil {
				return fmt.Errorf("product %q: %w", key, err)
			}
			products[key] = product.Id
			summary.Products++
		}

		for i, l := range fixture.Links {
			farmerId, ok := farmers[l.Farmer]
			if !ok {
				return fmt.Errorf("link #%d: unknown farmer %q", i+1, l.Farmer)
			}
			productId, ok := products[l.Product]
			if !ok {
				return fmt.Errorf("link #%d: unknown product %q", i+1, l.Product)
			}
			price, err := parseAmount(l.Price)
			if err != nil {
				return fmt.Errorf("link #%d: %w", i+1, err)
			}
			link := &model.FarmerProductModel{
				FarmerId:  farmerId,
				ProductId: productId,
				Price:     price,
				Image:     l.Image,
			}
			if err := tx.CreateLink(ctx, link); err != nil {
				return fmt.Errorf("link #%d: %w", i+1, err)
			}
			summary.Links++
		}

		for i, r := range fixture.FundingRequests {
			request, err := buildFundingRequest(r, farmers)
			if err != nil {
				return fmt.Errorf("funding request #%d: %w", i+1, err)
			}
			if err := tx.CreateFundingRequest(ctx, request); err != nil {
				return fmt.Errorf("funding request #%d: %w", i+1, err)
			}
			summary.FundingRequests++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Seeded %d farmers, %d products, %d links, %d funding requests",
		summary.Farmers, summary.Products, summary.Links, summary.FundingRequests)
	return summary, nil
}

// buildFundingRequest 已筹金额作为基线写入，已达目标的请求直接关闭
func buildFundingRequest(r FundingRequestFixture, farmers map[string]int64) (*model.FundingRequestModel, error) {
	farmerId, ok := farmers[r.Farmer]
	if !ok {
		return nil, fmt.Errorf("unknown farmer %q", r.Farmer)
	}
	if strings.TrimSpace(r.Title) == "" {
		return nil, fmt.Errorf("title is required")
	}
	needed, err := parseAmount(r.AmountNeeded)
	if err != nil {
		return nil, err
	}
	if needed <= 0 {
		return nil, fmt.Errorf("amount_needed must be greater than 0")
	}
	var raised int64
	if strings.TrimSpace(r.AmountRaised) != "" {
		if raised, err = parseAmount(r.AmountRaised); err != nil {
			return nil, err
		}
	}

	request := &model.FundingRequestModel{
		FarmerId:     farmerId,
		Title:        strings.TrimSpace(r.Title),
		Description:  r.Description,
		AmountNeeded: needed,
		AmountRaised: raised,
		SeedAmount:   raised,
		Status:       model.FundingRequestStatusOpen,
	}
	if raised >= needed {
		now := time.Now()
		request.Status = model.FundingRequestStatusClosed
		request.ClosedAt = &now
	}
	return request, nil
}

func parseAmount(raw string) (int64, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", raw)
	}
	if amount.IsNegative() {
		return 0, fmt.Errorf("amount %q must not be negative", raw)
	}
	return model.PaiseFromRupees(amount)
}

package handler

import (
	"fmt"
	"strconv"
	"time"

	"github.com/Hariprajaa05/Farmer-project/internal/logic"
	"github.com/Hariprajaa05/Farmer-project/internal/model"
	"github.com/shopspring/decimal"
)

// 通用响应结构
type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data"`
	Code      string      `json:"code,omitempty"`
	Retryable bool        `json:"retryable,omitempty"`
}

// Rupees 以分存储的金额，JSON 输出为两位小数的数字
type Rupees int64

// MarshalJSON 实现 json.Marshaler
func (r Rupees) MarshalJSON() ([]byte, error) {
	return []byte(model.RupeesFromPaise(int64(r))), nil
}

// ParseRupees 将请求中的金额（元）转换为分
func ParseRupees(amount decimal.Decimal) (int64, error) {
	return model.PaiseFromRupees(amount)
}

// 商品视图相关模型

// OfferResponse 在售商品视图
type OfferResponse struct {
	OfferID int64                `json:"offerId"`
	Price   Rupees               `json:"price"`
	Image   string               `json:"image"`
	Product OfferProductResponse `json:"product"`
	Farmer  OfferFarmerResponse  `json:"farmer"`
}

type OfferProductResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

type OfferFarmerResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
	District string `json:"district"`
	Image    string `json:"image"`
}

// ListOffersResponse 在售商品列表响应
type ListOffersResponse struct {
	Offers []OfferResponse `json:"offers"`
	Count  int             `json:"count"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

// 农户与商品相关模型

// FarmerResponse 农户响应模型
type FarmerResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	District  string    `json:"district"`
	Image     string    `json:"img"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UpdateFarmerRequest 农户资料更新请求
type UpdateFarmerRequest struct {
	Name     *string `json:"name"`
	Location *string `json:"location"`
	District *string `json:"district"`
	Image    *string `json:"img"`
}

// ProductResponse 商品响应模型
type ProductResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// FarmerProductResponse 在售商品响应模型
type FarmerProductResponse struct {
	ID        int64     `json:"id"`
	FarmerID  int64     `json:"farmer_id"`
	ProductID int64     `json:"product_id"`
	Price     Rupees    `json:"price"`
	Image     string    `json:"image"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateFarmerProductRequest 新增在售商品请求，价格单位为元
type CreateFarmerProductRequest struct {
	FarmerID  int64           `json:"farmer_id" binding:"required"`
	ProductID int64           `json:"product_id" binding:"required"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
}

// UpdateFarmerProductRequest 在售商品更新请求，价格单位为元
type UpdateFarmerProductRequest struct {
	ProductID *int64           `json:"product_id"`
	Price     *decimal.Decimal `json:"price"`
	Image     *string          `json:"image"`
}

// 筹款与捐赠相关模型

// FundingRequestResponse 筹款请求响应模型
type FundingRequestResponse struct {
	ID           int64      `json:"id"`
	FarmerID     int64      `json:"farmer_id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	AmountNeeded Rupees     `json:"amount_needed"`
	AmountRaised Rupees     `json:"amount_raised"`
	Status       string     `json:"status"`
	ClosedAt     *time.Time `json:"closed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// CreateFundingRequestRequest 创建筹款请求
type CreateFundingRequestRequest struct {
	FarmerID     int64           `json:"farmer_id" binding:"required"`
	Title        string          `json:"title" binding:"required"`
	Description  string          `json:"description"`
	AmountNeeded decimal.Decimal `json:"amount_needed"`
}

// CreateDonationRequest 捐赠请求，同时接受下划线和驼峰字段名
type CreateDonationRequest struct {
	FundingRequestID      int64           `json:"funding_request_id"`
	FundingRequestIDCamel int64           `json:"fundingRequestId"`
	DonorName             string          `json:"donor_name"`
	DonorNameCamel        string          `json:"donorName"`
	Amount                decimal.Decimal `json:"amount"`
}

// RequestID 优先使用下划线字段
func (r *CreateDonationRequest) RequestID() int64 {
	if r.FundingRequestID != 0 {
		return r.FundingRequestID
	}
	return r.FundingRequestIDCamel
}

// Donor 优先使用下划线字段
func (r *CreateDonationRequest) Donor() string {
	if r.DonorName != "" {
		return r.DonorName
	}
	return r.DonorNameCamel
}

// ReceiptResponse 捐赠回执
type ReceiptResponse struct {
	DonationID       int64  `json:"donation_id"`
	FundingRequestID int64  `json:"funding_request_id"`
	NewAmountRaised  Rupees `json:"new_amount_raised"`
	AmountNeeded     Rupees `json:"amount_needed"`
	RequestClosed    bool   `json:"request_closed"`
}

// DonationResponse 捐赠记录响应模型
type DonationResponse struct {
	ID               int64     `json:"id"`
	FundingRequestID int64     `json:"funding_request_id"`
	DonorName        string    `json:"donor_name"`
	Amount           Rupees    `json:"amount"`
	CreatedAt        time.Time `json:"created_at"`
}

// 转换函数

// ToOfferResponse 将视图转换为响应模型
func ToOfferResponse(offer *logic.Offer) OfferResponse {
	return OfferResponse{
		OfferID: offer.OfferId,
		Price:   Rupees(offer.Price),
		Image:   offer.Image,
		Product: OfferProductResponse{
			ID:       offer.Product.Id,
			Name:     offer.Product.Name,
			Category: offer.Product.Category,
		},
		Farmer: OfferFarmerResponse{
			ID:       offer.Farmer.Id,
			Name:     offer.Farmer.Name,
			Location: offer.Farmer.Location,
			District: offer.Farmer.District,
			Image:    offer.Farmer.Image,
		},
	}
}

// ToOfferResponseList 将视图列表转换为响应模型列表
func ToOfferResponseList(offers []logic.Offer) []OfferResponse {
	result := make([]OfferResponse, len(offers))
	for i := range offers {
		result[i] = ToOfferResponse(&offers[i])
	}
	return result
}

// ToFarmerResponse 将农户数据库模型转换为响应模型
func ToFarmerResponse(farmer *model.FarmerModel) FarmerResponse {
	return FarmerResponse{
		ID:        farmer.Id,
		Name:      farmer.Name,
		Location:  farmer.Location,
		District:  farmer.District,
		Image:     farmer.Image,
		CreatedAt: farmer.CreatedAt,
		UpdatedAt: farmer.UpdatedAt,
	}
}

// ToFarmerResponseList 将农户数据库模型列表转换为响应模型列表
func ToFarmerResponseList(farmers []model.FarmerModel) []FarmerResponse {
	result := make([]FarmerResponse, len(farmers))
	for i := range farmers {
		result[i] = ToFarmerResponse(&farmers[i])
	}
	return result
}

// ToProductResponseList 将商品数据库模型列表转换为响应模型列表
func ToProductResponseList(products []model.ProductModel) []ProductResponse {
	result := make([]ProductResponse, len(products))
	for i, product := range products {
		result[i] = ProductResponse{
			ID:       product.Id,
			Name:     product.Name,
			Category: product.Category,
		}
	}
	return result
}

// ToFarmerProductResponse 将在售商品数据库模型转换为响应模型
func ToFarmerProductResponse(link *model.FarmerProductModel) FarmerProductResponse {
	return FarmerProductResponse{
		ID:        link.Id,
		FarmerID:  link.FarmerId,
		ProductID: link.ProductId,
		Price:     Rupees(link.Price),
		Image:     link.Image,
		UpdatedAt: link.UpdatedAt,
	}
}

// ToFundingRequestResponse 将筹款请求数据库模型转换为响应模型
func ToFundingRequestResponse(request *model.FundingRequestModel) FundingRequestResponse {
	return FundingRequestResponse{
		ID:           request.Id,
		FarmerID:     request.FarmerId,
		Title:        request.Title,
		Description:  request.Description,
		AmountNeeded: Rupees(request.AmountNeeded),
		AmountRaised: Rupees(request.AmountRaised),
		Status:       string(request.Status),
		ClosedAt:     request.ClosedAt,
		CreatedAt:    request.CreatedAt,
	}
}

// ToFundingRequestResponseList 将筹款请求数据库模型列表转换为响应模型列表
func ToFundingRequestResponseList(requests []model.FundingRequestModel) []FundingRequestResponse {
	result := make([]FundingRequestResponse, len(requests))
	for i := range requests {
		result[i] = ToFundingRequestResponse(&requests[i])
	}
	return result
}

// ToReceiptResponse 将回执转换为响应模型
func ToReceiptResponse(receipt *logic.Receipt) ReceiptResponse {
	return ReceiptResponse{
		DonationID:       receipt.DonationId,
		FundingRequestID: receipt.RequestId,
		NewAmountRaised:  Rupees(receipt.NewAmountRaised),
		AmountNeeded:     Rupees(receipt.AmountNeeded),
		RequestClosed:    receipt.RequestClosed,
	}
}

// ToDonationResponseList 将捐赠记录列表转换为响应模型列表
func ToDonationResponseList(donations []model.DonationModel) []DonationResponse {
	result := make([]DonationResponse, len(donations))
	for i, donation := range donations {
		result[i] = DonationResponse{
			ID:               donation.Id,
			FundingRequestID: donation.FundingRequestId,
			DonorName:        donation.DonorName,
			Amount:           Rupees(donation.Amount),
			CreatedAt:        donation.CreatedAt,
		}
	}
	return result
}

// parseID 解析路径中的ID
func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: invalid id %q", logic.ErrInvalidInput, raw)
	}
	return id, nil
}

// parseQueryInt 解析可选的非负整数查询参数
func parseQueryInt(raw string, name string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: invalid %s %q", logic.ErrInvalidInput, name, raw)
	}
	return v, nil
}

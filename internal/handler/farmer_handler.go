package handler

import (
	"fmt"
	"net/http"

	"github.com/Hariprajaa05/Farmer-project/internal/logic"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// FarmerHandler 农户资料处理器
type FarmerHandler struct {
	farmerLogic *logic.FarmerLogic
}

// NewFarmerHandler 创建农户资料处理器
func NewFarmerHandler(farmerLogic *logic.FarmerLogic) *FarmerHandler {
	return &FarmerHandler{farmerLogic: farmerLogic}
}

// ListFarmers 获取农户列表
func (h *FarmerHandler) ListFarmers(c *gin.Context) {
	farmers, err := h.farmerLogic.ListFarmers(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "ok", ToFarmerResponseList(farmers))
}

// GetFarmer 获取单个农户
func (h *FarmerHandler) GetFarmer(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}

	farmer, err := h.farmerLogic.GetFarmer(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "ok", ToFarmerResponse(farmer))
}

// UpdateFarmer 更新农户资料
func (h *FarmerHandler) UpdateFarmer(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}

	var req UpdateFarmerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleError(c, fmt.Errorf("%w: %v", logic.ErrInvalidInput, err))
		return
	}

	farmer, err := h.farmerLogic.UpdateFarmer(c.Request.Context(), id, logic.FarmerUpdate{
		Name:     req.Name,
		Location: req.Location,
		District: req.District,
		Image:    req.Image,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "farmer updated", ToFarmerResponse(farmer))
}

// CreateFarmerProduct 农户新增在售商品
func (h *FarmerHandler) CreateFarmerProduct(c *gin.Context) {
	var req CreateFarmerProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleError(c, fmt.Errorf("%w: %v", logic.ErrInvalidInput, err))
		return
	}

	price, err := parsePrice(req.Price)
	if err != nil {
		HandleError(c, err)
		return
	}

	link, err := h.farmerLogic.CreateLink(c.Request.Context(), logic.LinkInput{
		FarmerId:  req.FarmerID,
		ProductId: req.ProductID,
		Price:     price,
		Image:     req.Image,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "farmer product created", ToFarmerProductResponse(link))
}

// UpdateFarmerProduct 更新在售商品
func (h *FarmerHandler) UpdateFarmerProduct(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}

	var req UpdateFarmerProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleError(c, fmt.Errorf("%w: %v", logic.ErrInvalidInput, err))
		return
	}

	update := logic.LinkUpdate{
		ProductId: req.ProductID,
		Image:     req.Image,
	}
	if req.Price != nil {
		price, err := parsePrice(*req.Price)
		if err != nil {
			HandleError(c, err)
			return
		}
		update.Price = &price
	}

	link, err := h.farmerLogic.UpdateLink(c.Request.Context(), id, update)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "farmer product updated", ToFarmerProductResponse(link))
}

func parsePrice(price decimal.Decimal) (int64, error) {
	paise, err := ParseRupees(price)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", logic.ErrInvalidInput, err)
	}
	return paise, nil
}

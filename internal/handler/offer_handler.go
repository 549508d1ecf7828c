package handler

import (
	"net/http"

	"github.com/Hariprajaa05/Farmer-project/internal/logic"
	"github.com/gin-gonic/gin"
)

// OfferHandler 在售商品视图处理器
type OfferHandler struct {
	catalogLogic *logic.CatalogLogic
}

// NewOfferHandler 创建在售商品视图处理器
func NewOfferHandler(catalogLogic *logic.CatalogLogic) *OfferHandler {
	return &OfferHandler{catalogLogic: catalogLogic}
}

// ListOffers 获取在售商品视图，支持 farmerId、category、limit、offset
func (h *OfferHandler) ListOffers(c *gin.Context) {
	filter := logic.OfferFilter{
		Category: c.Query("category"),
	}

	// 兼容 farmer_id 写法
	farmerIDStr := c.DefaultQuery("farmerId", c.Query("farmer_id"))
	if farmerIDStr != "" {
		farmerID, err := parseID(farmerIDStr)
		if err != nil {
			HandleError(c, err)
			return
		}
		filter.FarmerId = farmerID
	}

	var err error
	if filter.Limit, err = parseQueryInt(c.Query("limit"), "limit"); err != nil {
		HandleError(c, err)
		return
	}
	if filter.Offset, err = parseQueryInt(c.Query("offset"), "offset"); err != nil {
		HandleError(c, err)
		return
	}

	// 调用logic层构建视图
	offers, err := h.catalogLogic.ListOffers(c.Request.Context(), filter)
	if err != nil {
		HandleError(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "ok", ListOffersResponse{
		Offers: ToOfferResponseList(offers),
		Count:  len(offers),
		Limit:  filter.Limit,
		Offset: filter.Offset,
	})
}

// ListProducts 获取商品目录
func (h *OfferHandler) ListProducts(c *gin.Context) {
	products, err := h.catalogLogic.ListProducts(c.Request.Context(), c.Query("category"))
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "ok", ToProductResponseList(products))
}

// DeleteProduct 删除商品
func (h *OfferHandler) DeleteProduct(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}

	if err := h.catalogLogic.DeleteProduct(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "product deleted", gin.H{"id": id})
}

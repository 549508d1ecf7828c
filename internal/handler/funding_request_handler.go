package handler

import (
	"fmt"
	"net/http"

	"github.com/Hariprajaa05/Farmer-project/internal/logic"
	"github.com/gin-gonic/gin"
)

// FundingRequestHandler 筹款请求处理器
type FundingRequestHandler struct {
	ledgerLogic *logic.LedgerLogic
}

// NewFundingRequestHandler 创建筹款请求处理器
func NewFundingRequestHandler(ledgerLogic *logic.LedgerLogic) *FundingRequestHandler {
	return &FundingRequestHandler{ledgerLogic: ledgerLogic}
}

// CreateFundingRequest 农户发起筹款
func (h *FundingRequestHandler) CreateFundingRequest(c *gin.Context) {
	var req CreateFundingRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleError(c, fmt.Errorf("%w: %v", logic.ErrInvalidInput, err))
		return
	}

	amountNeeded, err := ParseRupees(req.AmountNeeded)
	if err != nil {
		HandleError(c, fmt.Errorf("%w: %v", logic.ErrInvalidInput, err))
		return
	}

	request, err := h.ledgerLogic.CreateFundingRequest(c.Request.Context(), logic.CreateFundingRequestInput{
		FarmerId:     req.FarmerID,
		Title:        req.Title,
		Description:  req.Description,
		AmountNeeded: amountNeeded,
	})
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "funding request created", ToFundingRequestResponse(request))
}

// ListFarmerRequests 获取农户的全部筹款请求
func (h *FundingRequestHandler) ListFarmerRequests(c *gin.Context) {
	farmerID, err := parseID(c.Param("farmerId"))
	if err != nil {
		HandleError(c, err)
		return
	}

	requests, err := h.ledgerLogic.ListRequests(c.Request.Context(), farmerID)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "ok", ToFundingRequestResponseList(requests))
}

// GetFundingRequest 获取单个筹款请求
func (h *FundingRequestHandler) GetFundingRequest(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}

	request, err := h.ledgerLogic.GetRequest(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "ok", ToFundingRequestResponse(request))
}

// ListDonations 获取筹款请求的捐赠历史
func (h *FundingRequestHandler) ListDonations(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}

	donations, err := h.ledgerLogic.ListDonations(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "ok", ToDonationResponseList(donations))
}

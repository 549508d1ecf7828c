package handler

import (
	"fmt"
	"net/http"

	"github.com/Hariprajaa05/Farmer-project/internal/logic"
	"github.com/gin-gonic/gin"
)

// DonationHandler 捐赠处理器
type DonationHandler struct {
	ledgerLogic *logic.LedgerLogic
}

// NewDonationHandler 创建捐赠处理器
func NewDonationHandler(ledgerLogic *logic.LedgerLogic) *DonationHandler {
	return &DonationHandler{ledgerLogic: ledgerLogic}
}

// CreateDonation 提交捐赠，成功返回 201 和回执
func (h *DonationHandler) CreateDonation(c *gin.Context) {
	var req CreateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		HandleError(c, fmt.Errorf("%w: %v", logic.ErrInvalidInput, err))
		return
	}

	amount, err := ParseRupees(req.Amount)
	if err != nil {
		HandleError(c, fmt.Errorf("%w: %v", logic.ErrInvalidInput, err))
		return
	}

	receipt, err := h.ledgerLogic.ApplyDonation(c.Request.Context(), logic.DonationInput{
		RequestId: req.RequestID(),
		DonorName: req.Donor(),
		Amount:    amount,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Location", fmt.Sprintf("/funding-request/%d/donations", receipt.RequestId))
	SuccessResponse(c, http.StatusCreated, "thank you for your contribution", ToReceiptResponse(receipt))
}

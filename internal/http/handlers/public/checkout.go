package public

import (
	"github.com/pizzeria-next/internal/http/response"
	"github.com/pizzeria-next/internal/i18n"
	"github.com/pizzeria-next/internal/models"
	"github.com/pizzeria-next/internal/upstream"

	"github.com/gin-gonic/gin"
)

// GetCheckout 读取当前结账状态
func (h *Handler) GetCheckout(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		return
	}
	response.Success(c, h.Checkout.Current(sessionID))
}

// GetSavedAddress 读取最近一次成功下单用的地址
func (h *Handler) GetSavedAddress(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		return
	}
	address, found := h.Checkout.SavedAddress(sessionID)
	if !found {
		response.Success(c, nil)
		return
	}
	response.Success(c, address)
}

// BeginCheckoutRequest 发起结账请求
type BeginCheckoutRequest struct {
	Address models.Address `json:"address" binding:"required"`
	Coupon  string         `json:"coupon"`
}

// BeginCheckout 校验地址并创建支付单，进入等待网关状态
func (h *Handler) BeginCheckout(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		return
	}
	var req BeginCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	result, err := h.Checkout.Begin(c.Request.Context(), sessionID, req.Address, req.Coupon)
	if err != nil {
		respondWithMappedError(c, err, checkoutBeginErrorRules, response.CodeInternal, "error.payment_order_failed")
		return
	}
	response.Success(c, result)
}

// CompleteCheckoutRequest 完成结账请求（支付网关回传的凭据）
type CompleteCheckoutRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
}

// CompleteCheckout 校验支付并提交订单
func (h *Handler) CompleteCheckout(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		return
	}
	var req CompleteCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	snapshot, err := h.Checkout.Complete(c.Request.Context(), sessionID, upstream.PaymentVerification{
		RazorpayOrderID:   req.RazorpayOrderID,
		RazorpayPaymentID: req.RazorpayPaymentID,
		RazorpaySignature: req.RazorpaySignature,
	})
	if err != nil {
		respondWithMappedError(c, err, checkoutCompleteErrorRules, response.CodeInternal, "error.order_create_failed")
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "msg.order_placed"), snapshot)
}

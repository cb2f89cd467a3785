package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pizzeria-next/internal/models"
)

// PaymentOrder 支付网关订单（金额单位为最小货币单位）
type PaymentOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// PaymentVerification 支付回执三元组，交给上游做服务端验签
type PaymentVerification struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

// CreatePaymentOrder 在支付网关创建待支付订单
func (c *Client) CreatePaymentOrder(ctx context.Context, amount models.Money) (*PaymentOrder, error) {
	respBytes, err := c.doJSON(ctx, http.MethodPost, "/payment/create-order", "", map[string]interface{}{
		"amount": amount,
	})
	if err != nil {
		return nil, err
	}
	var resp struct {
		Success bool         `json:"success"`
		Order   PaymentOrder `json:"order"`
	}
	if err := json.Unmarshal(respBytes, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	if !resp.Success || resp.Order.ID == "" {
		return nil, fmt.Errorf("%w: payment order rejected", ErrRequestFailed)
	}
	return &resp.Order, nil
}

// VerifyPayment 服务端验证支付回执签名。
// 返回 false 表示验签被上游明确拒绝，error 表示请求本身失败。
func (c *Client) VerifyPayment(ctx context.Context, v PaymentVerification) (bool, error) {
	respBytes, err := c.doJSON(ctx, http.MethodPost, "/payment/verify", "", v)
	if err != nil {
		return false, err
	}
	var resp struct {
		Success bool `json:"success"`
	}
	if err := json.Unmarshal(respBytes, &resp); err != nil {
		return false, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	return resp.Success, nil
}

package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pizzeria-next/internal/models"
)

// OrderItem 提交给上游的订单行
type OrderItem struct {
	Name     string       `json:"name"`
	Quantity int          `json:"quantity"`
	Price    models.Money `json:"price"`
	Size     string       `json:"size"`
}

// OrderRequest 下单请求
type OrderRequest struct {
	Items       []OrderItem         `json:"items"`
	TotalAmount models.Money        `json:"totalAmount"`
	PaymentInfo PaymentVerification `json:"paymentInfo"`
	Address     string              `json:"address"`
	Phone       string              `json:"phone"`
	Coupon      string              `json:"coupon,omitempty"`
}

// Order 上游订单视图
type Order struct {
	ID          string       `json:"_id"`
	Items       []OrderItem  `json:"items"`
	TotalAmount models.Money `json:"totalAmount"`
	Status      string       `json:"status"`
	Address     string       `json:"address"`
	Phone       string       `json:"phone"`
	Coupon      string       `json:"coupon,omitempty"`
	CreatedAt   string       `json:"createdAt"`
}

// CreateOrder 提交订单，返回上游订单 ID
func (c *Client) CreateOrder(ctx context.Context, token string, req OrderRequest) (string, error) {
	respBytes, err := c.doJSON(ctx, http.MethodPost, "/orders", token, req)
	if err != nil {
		return "", err
	}
	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Order   struct {
			ID string `json:"_id"`
		} `json:"order"`
	}
	if err := json.Unmarshal(respBytes, &resp); err != nil {
		return "", fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	if !resp.Success {
		return "", fmt.Errorf("%w: %s", ErrRequestFailed, resp.Message)
	}
	return resp.Order.ID, nil
}

// MyOrders 获取当前用户的订单列表
func (c *Client) MyOrders(ctx context.Context, token string) ([]Order, error) {
	return c.listOrders(ctx, http.MethodGet, "/orders/my-orders", token)
}

// AllOrders 获取全部订单（管理员）
func (c *Client) AllOrders(ctx context.Context, token string) ([]Order, error) {
	return c.listOrders(ctx, http.MethodGet, "/orders/all", token)
}

func (c *Client) listOrders(ctx context.Context, method, path, token string) ([]Order, error) {
	respBytes, err := c.doJSON(ctx, method, path, token, nil)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Orders []Order `json:"orders"`
	}
	if err := json.Unmarshal(respBytes, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	return resp.Orders, nil
}

// UpdateOrderStatus 更新订单状态（管理员）
func (c *Client) UpdateOrderStatus(ctx context.Context, token, orderID, status string) error {
	_, err := c.doJSON(ctx, http.MethodPut, "/orders/"+orderID+"/status", token, map[string]string{
		"status": status,
	})
	return err
}

// DeleteOrder 删除订单（管理员）
func (c *Client) DeleteOrder(ctx context.Context, token, orderID string) error {
	_, err := c.doJSON(ctx, http.MethodDelete, "/orders/"+orderID, token, nil)
	return err
}

// OrderStats 订单统计（管理员仪表盘），结构由上游决定
func (c *Client) OrderStats(ctx context.Context, token string) (models.JSON, error) {
	respBytes, err := c.doJSON(ctx, http.MethodGet, "/orders/stats", token, nil)
	if err != nil {
		return nil, err
	}
	var resp struct {
		Success bool        `json:"success"`
		Stats   models.JSON `json:"stats"`
	}
	if err := json.Unmarshal(respBytes, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	if !resp.Success {
		return nil, fmt.Errorf("%w: stats unavailable", ErrRequestFailed)
	}
	return resp.Stats, nil
}

package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pizzeria-next/internal/models"
)

// PredefinedPizza 菜单上的成品披萨
type PredefinedPizza struct {
	Name     string       `json:"name"`
	Price    models.Money `json:"price"`
	Image    string       `json:"image"`
	Category string       `json:"category"`
}

// InventoryItem 库存配料条目
type InventoryItem struct {
	ID       string `json:"_id,omitempty"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Unit     string `json:"unit"`
	Type     string `json:"type"` // base/sauce/cheese/veggie/meat
}

// PredefinedPizzas 获取成品披萨菜单
func (c *Client) PredefinedPizzas(ctx context.Context) ([]PredefinedPizza, error) {
	respBytes, err := c.doJSON(ctx, http.MethodGet, "/pizza/predefined", "", nil)
	if err != nil {
		return nil, err
	}
	var pizzas []PredefinedPizza
	if err := json.Unmarshal(respBytes, &pizzas); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	return pizzas, nil
}

// Inventory 获取配料库存
func (c *Client) Inventory(ctx context.Context) ([]InventoryItem, error) {
	respBytes, err := c.doJSON(ctx, http.MethodGet, "/inventory", "", nil)
	if err != nil {
		return nil, err
	}
	var items []InventoryItem
	if err := json.Unmarshal(respBytes, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseInvalid, err)
	}
	return items, nil
}

// CreateInventoryItem 新增库存条目
func (c *Client) CreateInventoryItem(ctx context.Context, token string, item InventoryItem) error {
	_, err := c.doJSON(ctx, http.MethodPost, "/inventory", token, item)
	return err
}

// UpdateInventoryItem 更新库存条目
func (c *Client) UpdateInventoryItem(ctx context.Context, token, id string, item InventoryItem) error {
	_, err := c.doJSON(ctx, http.MethodPut, "/inventory/"+id, token, item)
	return err
}

// DeleteInventoryItem 删除库存条目
func (c *Client) DeleteInventoryItem(ctx context.Context, token, id string) error {
	_, err := c.doJSON(ctx, http.MethodDelete, "/inventory/"+id, token, nil)
	return err
}

package admin

import (
	handlershared "github.com/pizzeria-next/internal/http/handlers/shared"
	"github.com/pizzeria-next/internal/http/response"
	"github.com/pizzeria-next/internal/upstream"

	"github.com/gin-gonic/gin"
)

// GetInventory 获取库存列表
func (h *Handler) GetInventory(c *gin.Context) {
	items, err := h.CatalogService.RawInventory(c.Request.Context())
	if err != nil {
		respondProxyError(c, err, "error.inventory_fetch_failed")
		return
	}
	response.Success(c, items)
}

// InventoryItemRequest 库存项请求
type InventoryItemRequest struct {
	Name     string `json:"name" binding:"required"`
	Quantity int    `json:"quantity"`
	Unit     string `json:"unit"`
	Type     string `json:"type"`
}

// CreateInventoryItem 新建库存项
func (h *Handler) CreateInventoryItem(c *gin.Context) {
	sessionID, ok := handlershared.GetSessionID(c)
	if !ok {
		return
	}
	var req InventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	err := h.AdminService.CreateInventoryItem(c.Request.Context(), sessionID, upstream.InventoryItem{
		Name:     req.Name,
		Quantity: req.Quantity,
		Unit:     req.Unit,
		Type:     req.Type,
	})
	if err != nil {
		respondProxyError(c, err, "error.inventory_update_failed")
		return
	}
	response.Success(c, gin.H{"created": true})
}

// UpdateInventoryItem 更新库存项
func (h *Handler) UpdateInventoryItem(c *gin.Context) {
	sessionID, ok := handlershared.GetSessionID(c)
	if !ok {
		return
	}
	var req InventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	err := h.AdminService.UpdateInventoryItem(c.Request.Context(), sessionID, c.Param("id"), upstream.InventoryItem{
		Name:     req.Name,
		Quantity: req.Quantity,
		Unit:     req.Unit,
		Type:     req.Type,
	})
	if err != nil {
		respondProxyError(c, err, "error.inventory_update_failed")
		return
	}
	response.Success(c, gin.H{"updated": true})
}

// DeleteInventoryItem 删除库存项
func (h *Handler) DeleteInventoryItem(c *gin.Context) {
	sessionID, ok := handlershared.GetSessionID(c)
	if !ok {
		return
	}
	if err := h.AdminService.DeleteInventoryItem(c.Request.Context(), sessionID, c.Param("id")); err != nil {
		respondProxyError(c, err, "error.inventory_update_failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

package admin

import (
	handlershared "github.com/pizzeria-next/internal/http/handlers/shared"
	"github.com/pizzeria-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetAllOrders 获取全部订单
func (h *Handler) GetAllOrders(c *gin.Context) {
	sessionID, ok := handlershared.GetSessionID(c)
	if !ok {
		return
	}
	orders, err := h.AdminService.AllOrders(c.Request.Context(), sessionID)
	if err != nil {
		respondProxyError(c, err, "error.order_fetch_failed")
		return
	}
	response.Success(c, gin.H{"orders": orders})
}

// UpdateOrderStatusRequest 订单状态更新请求
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderStatus 更新订单状态
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	sessionID, ok := handlershared.GetSessionID(c)
	if !ok {
		return
	}
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.AdminService.UpdateOrderStatus(c.Request.Context(), sessionID, c.Param("id"), req.Status); err != nil {
		respondProxyError(c, err, "error.order_status_failed")
		return
	}
	response.Success(c, gin.H{"updated": true})
}

// DeleteOrder 删除订单
func (h *Handler) DeleteOrder(c *gin.Context) {
	sessionID, ok := handlershared.GetSessionID(c)
	if !ok {
		return
	}
	if err := h.AdminService.DeleteOrder(c.Request.Context(), sessionID, c.Param("id")); err != nil {
		respondProxyError(c, err, "error.order_delete_failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// GetOrderStats 获取订单统计
func (h *Handler) GetOrderStats(c *gin.Context) {
	sessionID, ok := handlershared.GetSessionID(c)
	if !ok {
		return
	}
	stats, err := h.AdminService.OrderStats(c.Request.Context(), sessionID)
	if err != nil {
		respondProxyError(c, err, "error.order_stats_failed")
		return
	}
	response.Success(c, gin.H{"stats": stats})
}

package public

import (
	"github.com/pizzeria-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetMyOrders 获取当前用户的历史订单
func (h *Handler) GetMyOrders(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		return
	}
	orders, err := h.OrderService.MyOrders(c.Request.Context(), sessionID)
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "error.order_fetch_failed")
		return
	}
	response.Success(c, gin.H{"orders": orders})
}

// GetLastOrder 读取最近一次成功下单的回执
func (h *Handler) GetLastOrder(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		return
	}
	snapshot, found := h.OrderService.LastOrder(sessionID)
	if !found {
		respondError(c, response.CodeNotFound, "error.order_snapshot_missing", nil)
		return
	}
	response.Success(c, snapshot)
}

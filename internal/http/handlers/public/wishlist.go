package public

import (
	"github.com/pizzeria-next/internal/http/response"
	"github.com/pizzeria-next/internal/models"

	"github.com/gin-gonic/gin"
)

// GetWishlist 获取心愿单
func (h *Handler) GetWishlist(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		return
	}
	response.Success(c, gin.H{
		"entries": h.State.Wishlist(sessionID),
		"counts":  h.State.CountsOf(sessionID),
	})
}

// ToggleWishlistRequest 心愿单切换请求
type ToggleWishlistRequest struct {
	ProductID string       `json:"product_id" binding:"required"`
	Name      string       `json:"name"`
	Price     models.Money `json:"price"`
	Image     string       `json:"image"`
}

// ToggleWishlist 切换心愿单条目（已在则移除，不在则加入）
func (h *Handler) ToggleWishlist(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		return
	}
	var req ToggleWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	added := h.State.ToggleWishlist(sessionID, models.WishlistEntry{
		ProductID: req.ProductID,
		Name:      req.Name,
		Price:     req.Price,
		Image:     req.Image,
	})
	response.Success(c, gin.H{
		"added":  added,
		"counts": h.State.CountsOf(sessionID),
	})
}

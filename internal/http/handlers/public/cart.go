package public

import (
	"errors"

	"github.com/pizzeria-next/internal/http/response"
	"github.com/pizzeria-next/internal/i18n"
	"github.com/pizzeria-next/internal/pricing"
	"github.com/pizzeria-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetCart 获取购物车视图（可选优惠码试算）
func (h *Handler) GetCart(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		return
	}

	view, err := h.CartService.View(sessionID, c.Query("coupon"))
	if err != nil {
		if errors.Is(err, pricing.ErrCouponInvalid) {
			// 无效优惠码不拦截视图，照常返回原价并提示
			msg := i18n.T(i18n.ResolveLocale(c), "error.coupon_invalid")
			response.ErrorWithData(c, response.CodeBadRequest, msg, view)
			return
		}
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, view)
}

// AddPizzaRequest 菜单披萨加购请求
type AddPizzaRequest struct {
	PizzaID  string `json:"pizza_id" binding:"required"`
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

// AddPizzaToCart 菜单披萨加购
func (h *Handler) AddPizzaToCart(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		return
	}
	var req AddPizzaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	pizza, err := h.CatalogService.Pizza(c.Request.Context(), req.PizzaID)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.catalog_fetch_failed")
		return
	}

	line := h.CartService.AddPizza(sessionID, service.AddPizzaInput{
		Pizza:    *pizza,
		Size:     req.Size,
		Quantity: req.Quantity,
	})
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "msg.added_to_cart"), gin.H{
		"line":   line,
		"counts": h.State.CountsOf(sessionID),
	})
}

// AddCustomPizzaToCart 自制披萨加购
func (h *Handler) AddCustomPizzaToCart(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		return
	}
	var req service.CustomPizzaInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	line, err := h.CartService.AddCustomPizza(sessionID, req)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "msg.added_to_cart"), gin.H{
		"line":   line,
		"counts": h.State.CountsOf(sessionID),
	})
}

// CartIndexRequest 按行号操作购物车的请求
type CartIndexRequest struct {
	Index *int `json:"index" binding:"required"`
}

// RemoveCartLine 删除购物车行
func (h *Handler) RemoveCartLine(c *gin.Context) {
	h.mutateCartByIndex(c, h.State.RemoveFromCart)
}

// IncreaseCartLine 购物车行数量加一
func (h *Handler) IncreaseCartLine(c *gin.Context) {
	h.mutateCartByIndex(c, h.State.IncreaseQuantity)
}

// DecreaseCartLine 购物车行数量减一（减到零则移除该行）
func (h *Handler) DecreaseCartLine(c *gin.Context) {
	h.mutateCartByIndex(c, h.State.DecreaseQuantity)
}

func (h *Handler) mutateCartByIndex(c *gin.Context, mutate func(namespace string, index int)) {
	sessionID, ok := getSessionID(c)
	if !ok {
		return
	}
	var req CartIndexRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Index == nil {
		respondError(c, response.CodeBadRequest, "error.cart_line_invalid", err)
		return
	}

	mutate(sessionID, *req.Index)
	response.Success(c, gin.H{
		"lines":  h.State.Cart(sessionID),
		"counts": h.State.CountsOf(sessionID),
	})
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		return
	}
	h.State.ClearCart(sessionID)
	response.Success(c, gin.H{"counts": h.State.CountsOf(sessionID)})
}

// ValidateCouponRequest 优惠码校验请求
type ValidateCouponRequest struct {
	Code string `json:"code" binding:"required"`
}

// ValidateCoupon 校验优惠码
func (h *Handler) ValidateCoupon(c *gin.Context) {
	var req ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.CartService.ValidateCoupon(req.Code); err != nil {
		respondError(c, response.CodeBadRequest, "error.coupon_invalid", nil)
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "msg.coupon_applied"), gin.H{"valid": true})
}

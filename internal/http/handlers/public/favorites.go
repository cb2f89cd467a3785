package public

import (
	"github.com/pizzeria-next/internal/http/response"
	"github.com/pizzeria-next/internal/i18n"
	"github.com/pizzeria-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetFavorites 获取收藏配方列表
func (h *Handler) GetFavorites(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		return
	}
	favorites, err := h.FavoriteService.List(sessionID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal", err)
		return
	}
	response.Success(c, favorites)
}

// SaveFavorite 保存收藏配方
func (h *Handler) SaveFavorite(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		return
	}
	var req service.SaveInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	recipe, err := h.FavoriteService.Save(sessionID, req)
	if err != nil {
		respondWithMappedError(c, err, favoriteErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "msg.favorite_saved"), recipe)
}

// DeleteFavorite 删除收藏配方
func (h *Handler) DeleteFavorite(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		return
	}
	if err := h.FavoriteService.Delete(sessionID, c.Param("name")); err != nil {
		respondWithMappedError(c, err, favoriteErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// AddFavoriteToCart 把收藏配方直接加入购物车
func (h *Handler) AddFavoriteToCart(c *gin.Context) {
	sessionID, ok := getSessionID(c)
	if !ok {
		return
	}
	recipe, err := h.FavoriteService.Get(sessionID, c.Param("name"))
	if err != nil {
		respondWithMappedError(c, err, favoriteErrorRules, response.CodeInternal, "error.internal")
		return
	}

	line, err := h.CartService.AddCustomPizza(sessionID, service.CustomPizzaInput{
		Base:    recipe.Base,
		Sauce:   recipe.Sauce,
		Cheese:  recipe.Cheese,
		Veggies: recipe.Veggies,
		Meats:   recipe.Meats,
	})
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "error.internal")
		return
	}
	response.SuccessWithMsg(c, i18n.T(i18n.ResolveLocale(c), "msg.added_to_cart"), gin.H{
		"line":   line,
		"counts": h.State.CountsOf(sessionID),
	})
}

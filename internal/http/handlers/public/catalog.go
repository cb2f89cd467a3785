package public

import (
	"errors"
	"strings"

	"github.com/pizzeria-next/internal/http/response"
	"github.com/pizzeria-next/internal/models"
	"github.com/pizzeria-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// GetPizzas 获取菜单披萨列表（支持搜索、分类、尺寸与价格筛选）
func (h *Handler) GetPizzas(c *gin.Context) {
	pizzas, err := h.CatalogService.Pizzas(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.catalog_fetch_failed", err)
		return
	}

	filter := service.PizzaFilter{
		Search:   strings.TrimSpace(c.Query("search")),
		Category: strings.TrimSpace(c.Query("category")),
		Size:     strings.TrimSpace(c.Query("size")),
		Sort:     strings.TrimSpace(c.Query("sort")),
	}
	if raw := strings.TrimSpace(c.Query("max_price")); raw != "" {
		ceiling, perr := decimal.NewFromString(raw)
		if perr != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", perr)
			return
		}
		filter.PriceCeiling = models.NewMoneyFromDecimal(ceiling)
	}

	response.Success(c, h.CatalogService.FilterPizzas(pizzas, filter))
}

// GetPizza 获取单个菜单披萨
func (h *Handler) GetPizza(c *gin.Context) {
	pizza, err := h.CatalogService.Pizza(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrPizzaNotFound) {
			respondError(c, response.CodeNotFound, "error.not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.catalog_fetch_failed", err)
		return
	}
	response.Success(c, pizza)
}

// GetIngredients 获取自制披萨可选配料（按类型分组）
func (h *Handler) GetIngredients(c *gin.Context) {
	grouped, err := h.CatalogService.Ingredients(c.Request.Context())
	if err != nil {
		respondError(c, response.CodeInternal, "error.inventory_fetch_failed", err)
		return
	}
	response.Success(c, grouped)
}

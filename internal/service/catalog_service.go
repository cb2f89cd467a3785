package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pizzeria-next/internal/cache"
	"github.com/pizzeria-next/internal/config"
	"github.com/pizzeria-next/internal/constants"
	"github.com/pizzeria-next/internal/logger"
	"github.com/pizzeria-next/internal/models"
	"github.com/pizzeria-next/internal/pricing"
	"github.com/pizzeria-next/internal/upstream"
)

const (
	cacheKeyPizzas    = "catalog:predefined"
	cacheKeyInventory = "catalog:inventory"
)

// CatalogPizza 带稳定 ID 的菜单披萨。
// 上游菜单不带 ID，按列表下标生成 pizza-<n>。
type CatalogPizza struct {
	ID       string       `json:"_id"`
	Name     string       `json:"name"`
	Price    models.Money `json:"price"`
	Image    string       `json:"image"`
	Category string       `json:"category"`
}

// PizzaFilter 菜单过滤条件
type PizzaFilter struct {
	Search       string       // 名称子串，不区分大小写
	Category     string       // 分类精确匹配
	Size         string       // 计算价格上限时采用的尺寸
	PriceCeiling models.Money // 上限为 0 时不过滤
	Sort         string       // low-to-high / high-to-low，按基础价排序
}

// CatalogService 菜单与配料目录服务，上游结果短期缓存在 Redis
type CatalogService struct {
	client *upstream.Client
	ttl    time.Duration
}

// NewCatalogService 创建目录服务
func NewCatalogService(cfg config.CatalogConfig, client *upstream.Client) *CatalogService {
	ttlSeconds := cfg.CacheTTLSeconds
	if ttlSeconds <= 0 {
		ttlSeconds = 60
	}
	return &CatalogService{
		client: client,
		ttl:    time.Duration(ttlSeconds) * time.Second,
	}
}

// Pizzas 获取成品披萨菜单
func (s *CatalogService) Pizzas(ctx context.Context) ([]CatalogPizza, error) {
	var cached []CatalogPizza
	if hit, err := cache.GetJSON(ctx, cacheKeyPizzas, &cached); err != nil {
		logger.Warnw("catalog_cache_read_failed", "key", cacheKeyPizzas, "error", err)
	} else if hit {
		return cached, nil
	}

	raw, err := s.client.PredefinedPizzas(ctx)
	if err != nil {
		return nil, err
	}
	pizzas := make([]CatalogPizza, 0, len(raw))
	for i, p := range raw {
		pizzas = append(pizzas, CatalogPizza{
			ID:       fmt.Sprintf("pizza-%d", i),
			Name:     p.Name,
			Price:    p.Price,
			Image:    p.Image,
			Category: p.Category,
		})
	}
	if err := cache.SetJSON(ctx, cacheKeyPizzas, pizzas, s.ttl); err != nil {
		logger.Warnw("catalog_cache_write_failed", "key", cacheKeyPizzas, "error", err)
	}
	return pizzas, nil
}

// Pizza 按目录 ID 查单个披萨
func (s *CatalogService) Pizza(ctx context.Context, id string) (*CatalogPizza, error) {
	pizzas, err := s.Pizzas(ctx)
	if err != nil {
		return nil, err
	}
	for i := range pizzas {
		if pizzas[i].ID == id {
			return &pizzas[i], nil
		}
	}
	return nil, ErrPizzaNotFound
}

// FilterPizzas 按名称、分类、价格上限过滤并排序
func (s *CatalogService) FilterPizzas(pizzas []CatalogPizza, filter PizzaFilter) []CatalogPizza {
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	result := make([]CatalogPizza, 0, len(pizzas))
	for _, p := range pizzas {
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		if filter.Category != "" && p.Category != filter.Category {
			continue
		}
		if !filter.PriceCeiling.IsZero() {
			withSize := pricing.PriceForSize(p.Price, filter.Size)
			if withSize.GreaterThan(filter.PriceCeiling.Decimal) {
				continue
			}
		}
		result = append(result, p)
	}

	switch filter.Sort {
	case constants.SortPriceLowToHigh:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Price.LessThan(result[j].Price.Decimal)
		})
	case constants.SortPriceHighToLow:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].Price.GreaterThan(result[j].Price.Decimal)
		})
	}
	return result
}

// Ingredients 获取配料库存，按类型分组
func (s *CatalogService) Ingredients(ctx context.Context) (map[string][]upstream.InventoryItem, error) {
	items, err := s.RawInventory(ctx)
	if err != nil {
		return nil, err
	}
	grouped := make(map[string][]upstream.InventoryItem)
	for _, item := range items {
		grouped[item.Type] = append(grouped[item.Type], item)
	}
	return grouped, nil
}

// RawInventory 获取配料库存原始列表
func (s *CatalogService) RawInventory(ctx context.Context) ([]upstream.InventoryItem, error) {
	var cached []upstream.InventoryItem
	if hit, err := cache.GetJSON(ctx, cacheKeyInventory, &cached); err != nil {
		logger.Warnw("catalog_cache_read_failed", "key", cacheKeyInventory, "error", err)
	} else if hit {
		return cached, nil
	}

	items, err := s.client.Inventory(ctx)
	if err != nil {
		return nil, err
	}
	if err := cache.SetJSON(ctx, cacheKeyInventory, items, s.ttl); err != nil {
		logger.Warnw("catalog_cache_write_failed", "key", cacheKeyInventory, "error", err)
	}
	return items, nil
}

// InvalidateInventory 库存被管理员修改后清理缓存
func (s *CatalogService) InvalidateInventory(ctx context.Context) {
	if err := cache.Del(ctx, cacheKeyInventory); err != nil {
		logger.Warnw("catalog_cache_invalidate_failed", "key", cacheKeyInventory, "error", err)
	}
}

package service

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"

	"github.com/pizzeria-next/internal/models"
	"github.com/pizzeria-next/internal/pricing"
	"github.com/pizzeria-next/internal/state"
)

// CartService 购物车视图与加购逻辑
type CartService struct {
	state   *state.Manager
	coupons pricing.Coupons
}

// NewCartService 创建购物车服务
func NewCartService(st *state.Manager, coupons pricing.Coupons) *CartService {
	return &CartService{state: st, coupons: coupons}
}

// CartLineView 购物车行视图（带小计）
type CartLineView struct {
	models.CartLine
	LineTotal models.Money `json:"line_total"`
}

// CartView 购物车视图
type CartView struct {
	Lines         []CartLineView `json:"lines"`
	Subtotal      models.Money   `json:"subtotal"`
	Coupon        string         `json:"coupon,omitempty"`
	CouponApplied bool           `json:"coupon_applied"`
	Total         models.Money   `json:"total"`
}

// View 组装购物车视图。优惠码无效时返回原价视图和 ErrCouponInvalid，
// 调用方据此给出提示，视图仍然可用。
func (s *CartService) View(sessionID, coupon string) (*CartView, error) {
	lines := s.state.Cart(sessionID)
	views := make([]CartLineView, 0, len(lines))
	for _, l := range lines {
		views = append(views, CartLineView{CartLine: l, LineTotal: l.LineTotal()})
	}

	subtotal := pricing.OrderTotal(lines)
	view := &CartView{
		Lines:    views,
		Subtotal: subtotal,
		Total:    subtotal,
	}
	if strings.TrimSpace(coupon) == "" {
		return view, nil
	}

	discounted, err := s.coupons.ApplyCoupon(subtotal, coupon)
	if err != nil {
		return view, err
	}
	view.Coupon = strings.ToUpper(strings.TrimSpace(coupon))
	view.CouponApplied = true
	view.Total = discounted
	return view, nil
}

// AddPizzaInput 菜单披萨加购输入
type AddPizzaInput struct {
	Pizza    CatalogPizza
	Size     string
	Quantity int
}

// AddPizza 菜单披萨加购，单价按所选尺寸计算
func (s *CartService) AddPizza(sessionID string, input AddPizzaInput) models.CartLine {
	line := models.CartLine{
		ProductID: input.Pizza.ID,
		Name:      input.Pizza.Name,
		Size:      state.NormalizeSize(input.Size),
		UnitPrice: pricing.PriceForSize(input.Pizza.Price, input.Size),
		Quantity:  input.Quantity,
		Image:     input.Pizza.Image,
	}
	s.state.AddToCart(sessionID, line)
	return line
}

// CustomPizzaInput 自制披萨加购输入
type CustomPizzaInput struct {
	Base    string   `json:"base"`
	Sauce   string   `json:"sauce"`
	Cheese  string   `json:"cheese"`
	Veggies []string `json:"veggies"`
	Meats   []string `json:"meats"`
	Image   string   `json:"image"`
}

// AddCustomPizza 自制披萨加购。饼底、酱料、芝士三项必选，
// 价格按配方计算，相同配方合并为同一行。
func (s *CartService) AddCustomPizza(sessionID string, input CustomPizzaInput) (models.CartLine, error) {
	if strings.TrimSpace(input.Base) == "" || strings.TrimSpace(input.Sauce) == "" || strings.TrimSpace(input.Cheese) == "" {
		return models.CartLine{}, ErrRecipeIncomplete
	}
	line := models.CartLine{
		ProductID: customPizzaID(input),
		Name:      "Custom Pizza",
		UnitPrice: pricing.CustomPizzaPrice(input.Base, input.Sauce, input.Cheese, input.Veggies, input.Meats),
		Quantity:  1,
		Image:     input.Image,
	}
	s.state.AddToCart(sessionID, line)
	return line, nil
}

// ValidateCoupon 校验优惠码是否有效
func (s *CartService) ValidateCoupon(code string) error {
	if _, err := s.coupons.ApplyCoupon(models.NewMoneyFromInt(100), code); err != nil {
		return err
	}
	return nil
}

// customPizzaID 由配方推导稳定 ID，保证相同配方合并入同一行
func customPizzaID(input CustomPizzaInput) string {
	normalized := CustomPizzaInput{
		Base:    strings.ToLower(strings.TrimSpace(input.Base)),
		Sauce:   strings.ToLower(strings.TrimSpace(input.Sauce)),
		Cheese:  strings.ToLower(strings.TrimSpace(input.Cheese)),
		Veggies: normalizeList(input.Veggies),
		Meats:   normalizeList(input.Meats),
	}
	raw, err := json.Marshal(normalized)
	if err != nil {
		return "custom"
	}
	sum := sha1.Sum(raw)
	return "custom-" + hex.EncodeToString(sum[:8])
}

func normalizeList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.ToLower(strings.TrimSpace(item))
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	sort.Strings(out)
	return out
}

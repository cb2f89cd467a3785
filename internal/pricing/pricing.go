package pricing

import (
	"errors"
	"strings"

	"github.com/pizzeria-next/internal/constants"
	"github.com/pizzeria-next/internal/models"

	"github.com/shopspring/decimal"
)

// ErrCouponInvalid 优惠码不在允许列表中
var ErrCouponInvalid = errors.New("coupon invalid")

// 自制披萨配料计价（单位：卢比）
var (
	basePrice   = decimal.NewFromInt(50)
	saucePrice  = decimal.NewFromInt(30)
	cheesePrice = decimal.NewFromInt(40)
	veggiePrice = decimal.NewFromInt(20)
	meatPrice   = decimal.NewFromInt(30)

	sizeSurcharge = map[string]decimal.Decimal{
		strings.ToLower(constants.SizeSmall):  decimal.Zero,
		strings.ToLower(constants.SizeMedium): decimal.NewFromInt(50),
		strings.ToLower(constants.SizeLarge):  decimal.NewFromInt(100),
	}
)

// PriceForSize 按尺寸计算单价：small 不加价，medium +50，large +100。
// 未知尺寸按不加价档处理。
func PriceForSize(base models.Money, size string) models.Money {
	surcharge, ok := sizeSurcharge[strings.ToLower(strings.TrimSpace(size))]
	if !ok {
		return base
	}
	return models.NewMoneyFromDecimal(base.Decimal.Add(surcharge))
}

// CustomPizzaPrice 按配方计价：饼底 +50、酱料 +30、芝士 +40，
// 每份蔬菜 +20、每份肉类 +30，未选组件计 0。
func CustomPizzaPrice(base, sauce, cheese string, veggies, meats []string) models.Money {
	total := decimal.Zero
	if strings.TrimSpace(base) != "" {
		total = total.Add(basePrice)
	}
	if strings.TrimSpace(sauce) != "" {
		total = total.Add(saucePrice)
	}
	if strings.TrimSpace(cheese) != "" {
		total = total.Add(cheesePrice)
	}
	total = total.Add(veggiePrice.Mul(decimal.NewFromInt(int64(len(veggies)))))
	total = total.Add(meatPrice.Mul(decimal.NewFromInt(int64(len(meats)))))
	return models.NewMoneyFromDecimal(total)
}

// OrderTotal 汇总所有行的小计
func OrderTotal(lines []models.CartLine) models.Money {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.LineTotal().Decimal)
	}
	return models.NewMoneyFromDecimal(total)
}

// Coupons 优惠码到折扣比例的允许列表（键为大写码）
type Coupons map[string]decimal.Decimal

// NewCoupons 从配置的码->比例映射构建允许列表
func NewCoupons(rates map[string]float64) Coupons {
	c := make(Coupons, len(rates))
	for code, rate := range rates {
		c[strings.ToUpper(strings.TrimSpace(code))] = decimal.NewFromFloat(rate)
	}
	return c
}

// ApplyCoupon 应用优惠码：匹配时返回 round(total × (1 − 折扣比例))，
// 不匹配时返回原始总额和 ErrCouponInvalid。码不区分大小写、忽略首尾空白。
// 折扣不叠加，新码替换旧码的折扣。
func (c Coupons) ApplyCoupon(total models.Money, code string) (models.Money, error) {
	rate, ok := c[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return total, ErrCouponInvalid
	}
	discounted := total.Decimal.Mul(decimal.NewFromInt(1).Sub(rate)).Round(0)
	return models.NewMoneyFromDecimal(discounted), nil
}

package models

// CartLine 购物车行（同一商品同一尺寸合并为一行）
type CartLine struct {
	ProductID string `json:"product_id"` // 商品 ID
	Name      string `json:"name"`       // 商品名称
	Size      string `json:"size"`       // 尺寸（small/medium/large）
	UnitPrice Money  `json:"unit_price"` // 该尺寸下的单价
	Quantity  int    `json:"quantity"`   // 数量（始终 >= 1）
	Image     string `json:"image"`      // 商品图片
}

// LineTotal 行小计 = 单价 × 数量
func (l CartLine) LineTotal() Money {
	return l.UnitPrice.MulInt(int64(l.Quantity))
}

// WishlistEntry 心愿单条目（按商品 ID 去重，不区分尺寸）
type WishlistEntry struct {
	ProductID string `json:"product_id"` // 商品 ID
	Name      string `json:"name"`       // 商品名称
	Price     Money  `json:"price"`      // 基础价格
	Image     string `json:"image"`      // 商品图片
}

// Address 收货地址
type Address struct {
	Street  string `json:"street"`  // 街道
	City    string `json:"city"`    // 城市
	State   string `json:"state"`   // 州/省
	Pincode string `json:"pincode"` // 邮编（6 位数字）
	Email   string `json:"email"`   // 邮箱
	Phone   string `json:"phone"`   // 电话
}

// Complete 判断必填字段是否全部填写（邮箱/电话为可选项）
func (a Address) Complete() bool {
	return a.Street != "" && a.City != "" && a.State != "" && a.Pincode != ""
}

// OrderSnapshot 下单成功后的回执快照（用于订单确认页）
type OrderSnapshot struct {
	PaymentID  string `json:"payment_id"`  // 支付网关返回的支付 ID
	TotalPrice Money  `json:"total_price"` // 实付总额
}

// FavoriteRecipe 收藏的自制披萨配方
type FavoriteRecipe struct {
	Name    string      `json:"name"`    // 配方名称
	Base    string      `json:"base"`    // 饼底
	Sauce   string      `json:"sauce"`   // 酱料
	Cheese  string      `json:"cheese"`  // 芝士
	Veggies StringArray `json:"veggies"` // 蔬菜配料
	Meats   StringArray `json:"meats"`   // 肉类配料
	Price   Money       `json:"price"`   // 按配方计算出的价格
}

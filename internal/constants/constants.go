package constants

// 披萨尺寸
const (
	SizeSmall  = "Small"
	SizeMedium = "Medium"
	SizeLarge  = "Large"
)

// 配料类型（上游 /inventory 返回的 type 字段）
const (
	IngredientBase   = "base"
	IngredientSauce  = "sauce"
	IngredientCheese = "cheese"
	IngredientVeggie = "veggie"
	IngredientMeat   = "meat"
)

// 会话角色
const (
	RoleGuest    = "guest"
	RoleCustomer = "user"
	RoleAdmin    = "admin"
)

// 本地持久化存储键（会话命名空间内）
const (
	StoreKeyAuth          = "auth"
	StoreKeyCart          = "cart"
	StoreKeyWishlist      = "wishlist"
	StoreKeyAddress       = "user_address"
	StoreKeyLastOrder     = "last_order"
	StoreKeyCheckout      = "checkout"
	StoreKeyRememberEmail = "remember_email"

	// StoreKeyFavoritePrefix 自定义披萨收藏键前缀，每个收藏一条独立记录
	StoreKeyFavoritePrefix = "favorite_"
)

// 状态变更通知主题
const (
	TopicCartChanged      = "cart.changed"
	TopicWishlistChanged  = "wishlist.changed"
	TopicFavoritesChanged = "favorites.changed"
)

// 队列名
const (
	QueueDefault = "default"
)

// 异步任务类型
const (
	TaskOrderConfirmationEmail = "order:confirmation_email"
)

// 目录排序方式
const (
	SortPriceLowToHigh = "low-to-high"
	SortPriceHighToLow = "high-to-low"
)

package public

import "github.com/pizzeria-next/internal/provider"

// Handler 顾客侧接口处理器入口
// 说明：该处理器仅用于菜单、购物车、收藏、结账等顾客侧 API。
type Handler struct {
	*provider.Container
}

// New 创建顾客侧处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}

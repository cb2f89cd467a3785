package service

import (
	"strings"

	"github.com/pizzeria-next/internal/constants"
	"github.com/pizzeria-next/internal/models"
	"github.com/pizzeria-next/internal/pricing"
	"github.com/pizzeria-next/internal/state"
	"github.com/pizzeria-next/internal/store"
)

// FavoriteService 自制披萨收藏。
// 每个收藏独立存一条 favorite_<名称> 记录，名称即主键，重名覆盖。
type FavoriteService struct {
	store store.Store
	state *state.Manager
}

// NewFavoriteService 创建收藏服务
func NewFavoriteService(s store.Store, st *state.Manager) *FavoriteService {
	return &FavoriteService{store: s, state: st}
}

// SaveInput 收藏保存输入
type SaveInput struct {
	Name    string   `json:"name"`
	Base    string   `json:"base"`
	Sauce   string   `json:"sauce"`
	Cheese  string   `json:"cheese"`
	Veggies []string `json:"veggies"`
	Meats   []string `json:"meats"`
}

// Save 保存收藏配方。饼底、酱料、芝士三项必选，
// 价格按当前计价规则重算后一并存储。
func (s *FavoriteService) Save(sessionID string, input SaveInput) (*models.FavoriteRecipe, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrFavoriteInvalid
	}
	if strings.TrimSpace(input.Base) == "" || strings.TrimSpace(input.Sauce) == "" || strings.TrimSpace(input.Cheese) == "" {
		return nil, ErrRecipeIncomplete
	}

	recipe := models.FavoriteRecipe{
		Name:    name,
		Base:    input.Base,
		Sauce:   input.Sauce,
		Cheese:  input.Cheese,
		Veggies: input.Veggies,
		Meats:   input.Meats,
		Price:   pricing.CustomPizzaPrice(input.Base, input.Sauce, input.Cheese, input.Veggies, input.Meats),
	}
	if err := s.store.Put(sessionID, constants.StoreKeyFavoritePrefix+name, recipe); err != nil {
		return nil, err
	}
	s.state.NotifyFavoritesChanged(sessionID)
	return &recipe, nil
}

// List 列出收藏配方，损坏的条目跳过
func (s *FavoriteService) List(sessionID string) ([]models.FavoriteRecipe, error) {
	keys, err := s.store.Keys(sessionID, constants.StoreKeyFavoritePrefix)
	if err != nil {
		return nil, err
	}
	recipes := make([]models.FavoriteRecipe, 0, len(keys))
	for _, key := range keys {
		var recipe models.FavoriteRecipe
		if !s.store.Get(sessionID, key, &recipe) {
			continue
		}
		recipes = append(recipes, recipe)
	}
	return recipes, nil
}

// Get 按名称取收藏
func (s *FavoriteService) Get(sessionID, name string) (*models.FavoriteRecipe, error) {
	var recipe models.FavoriteRecipe
	if !s.store.Get(sessionID, constants.StoreKeyFavoritePrefix+strings.TrimSpace(name), &recipe) {
		return nil, ErrFavoriteNotFound
	}
	return &recipe, nil
}

// Delete 删除收藏
func (s *FavoriteService) Delete(sessionID, name string) error {
	trimmed := strings.TrimSpace(name)
	if _, err := s.Get(sessionID, trimmed); err != nil {
		return err
	}
	if err := s.store.Delete(sessionID, constants.StoreKeyFavoritePrefix+trimmed); err != nil {
		return err
	}
	s.state.NotifyFavoritesChanged(sessionID)
	return nil
}

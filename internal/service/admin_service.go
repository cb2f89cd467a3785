package service

import (
	"context"
	"errors"

	"github.com/pizzeria-next/internal/logger"
	"github.com/pizzeria-next/internal/models"
	"github.com/pizzeria-next/internal/session"
	"github.com/pizzeria-next/internal/upstream"
)

// AdminService 管理端操作：订单管理、统计与库存维护。
// 角色校验在路由中间件完成，这里只负责带凭证转发。
type AdminService struct {
	client   *upstream.Client
	sessions *session.Manager
	catalog  *CatalogService
}

// NewAdminService 创建管理服务
func NewAdminService(client *upstream.Client, sessions *session.Manager, catalog *CatalogService) *AdminService {
	return &AdminService{client: client, sessions: sessions, catalog: catalog}
}

func (s *AdminService) token(sessionID string) (string, error) {
	auth, ok := s.sessions.Current(sessionID)
	if !ok {
		return "", ErrNotLoggedIn
	}
	return auth.Token, nil
}

func (s *AdminService) wrap(sessionID string, err error) error {
	if errors.Is(err, upstream.ErrUnauthorized) {
		s.sessions.HandleUnauthorized(sessionID)
	}
	return err
}

// AllOrders 全部订单
func (s *AdminService) AllOrders(ctx context.Context, sessionID string) ([]upstream.Order, error) {
	token, err := s.token(sessionID)
	if err != nil {
		return nil, err
	}
	orders, err := s.client.AllOrders(ctx, token)
	return orders, s.wrap(sessionID, err)
}

// UpdateOrderStatus 更新订单状态
func (s *AdminService) UpdateOrderStatus(ctx context.Context, sessionID, orderID, status string) error {
	token, err := s.token(sessionID)
	if err != nil {
		return err
	}
	if err := s.wrap(sessionID, s.client.UpdateOrderStatus(ctx, token, orderID, status)); err != nil {
		return err
	}
	logger.Infow("admin_order_status_updated", "session_id", sessionID, "order_id", orderID, "status", status)
	return nil
}

// DeleteOrder 删除订单
func (s *AdminService) DeleteOrder(ctx context.Context, sessionID, orderID string) error {
	token, err := s.token(sessionID)
	if err != nil {
		return err
	}
	if err := s.wrap(sessionID, s.client.DeleteOrder(ctx, token, orderID)); err != nil {
		return err
	}
	logger.Infow("admin_order_deleted", "session_id", sessionID, "order_id", orderID)
	return nil
}

// OrderStats 订单统计
func (s *AdminService) OrderStats(ctx context.Context, sessionID string) (models.JSON, error) {
	token, err := s.token(sessionID)
	if err != nil {
		return nil, err
	}
	stats, err := s.client.OrderStats(ctx, token)
	return stats, s.wrap(sessionID, err)
}

// CreateInventoryItem 新增库存条目并失效目录缓存
func (s *AdminService) CreateInventoryItem(ctx context.Context, sessionID string, item upstream.InventoryItem) error {
	token, err := s.token(sessionID)
	if err != nil {
		return err
	}
	if err := s.wrap(sessionID, s.client.CreateInventoryItem(ctx, token, item)); err != nil {
		return err
	}
	s.catalog.InvalidateInventory(ctx)
	return nil
}

// UpdateInventoryItem 更新库存条目并失效目录缓存
func (s *AdminService) UpdateInventoryItem(ctx context.Context, sessionID, id string, item upstream.InventoryItem) error {
	token, err := s.token(sessionID)
	if err != nil {
		return err
	}
	if err := s.wrap(sessionID, s.client.UpdateInventoryItem(ctx, token, id, item)); err != nil {
		return err
	}
	s.catalog.InvalidateInventory(ctx)
	return nil
}

// DeleteInventoryItem 删除库存条目并失效目录缓存
func (s *AdminService) DeleteInventoryItem(ctx context.Context, sessionID, id string) error {
	token, err := s.token(sessionID)
	if err != nil {
		return err
	}
	if err := s.wrap(sessionID, s.client.DeleteInventoryItem(ctx, token, id)); err != nil {
		return err
	}
	s.catalog.InvalidateInventory(ctx)
	return nil
}

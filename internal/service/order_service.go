package service

import (
	"context"
	"errors"

	"github.com/pizzeria-next/internal/checkout"
	"github.com/pizzeria-next/internal/models"
	"github.com/pizzeria-next/internal/session"
	"github.com/pizzeria-next/internal/upstream"
)

// OrderService 用户侧订单查询
type OrderService struct {
	client       *upstream.Client
	sessions     *session.Manager
	orchestrator *checkout.Orchestrator
}

// NewOrderService 创建订单服务
func NewOrderService(client *upstream.Client, sessions *session.Manager, orchestrator *checkout.Orchestrator) *OrderService {
	return &OrderService{client: client, sessions: sessions, orchestrator: orchestrator}
}

// MyOrders 当前用户的历史订单
func (s *OrderService) MyOrders(ctx context.Context, sessionID string) ([]upstream.Order, error) {
	auth, ok := s.sessions.Current(sessionID)
	if !ok {
		return nil, ErrNotLoggedIn
	}
	orders, err := s.client.MyOrders(ctx, auth.Token)
	if errors.Is(err, upstream.ErrUnauthorized) {
		s.sessions.HandleUnauthorized(sessionID)
	}
	return orders, err
}

// LastOrder 最近一次下单回执（订单确认页数据源）
func (s *OrderService) LastOrder(sessionID string) (*models.OrderSnapshot, bool) {
	return s.orchestrator.LastOrder(sessionID)
}

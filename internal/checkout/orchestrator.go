package checkout

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/pizzeria-next/internal/config"
	"github.com/pizzeria-next/internal/constants"
	"github.com/pizzeria-next/internal/logger"
	"github.com/pizzeria-next/internal/models"
	"github.com/pizzeria-next/internal/pricing"
	"github.com/pizzeria-next/internal/session"
	"github.com/pizzeria-next/internal/state"
	"github.com/pizzeria-next/internal/store"
	"github.com/pizzeria-next/internal/upstream"

	"github.com/google/uuid"
)

var (
	ErrCartEmpty           = errors.New("cart empty")
	ErrAddressIncomplete   = errors.New("address incomplete")
	ErrPincodeInvalid      = errors.New("pincode invalid")
	ErrNotAwaitingPayment  = errors.New("checkout not awaiting payment")
	ErrPaymentOrderFailed  = errors.New("payment order failed")
	ErrPaymentVerifyFailed = errors.New("payment verification failed")
	ErrOrderCreateFailed   = errors.New("order create failed")
)

var pincodePattern = regexp.MustCompile(`^\d{6}$`)

// Notifier 下单成功后的异步通知入口（确认邮件等）
type Notifier interface {
	EnqueueOrderConfirmation(sessionID, email, orderID string, total models.Money) error
}

// Attempt 一次结账尝试。支付控件交互发生在进程外，
// 控件回调之前的中间状态持久化在会话存储里。
type Attempt struct {
	ID             string         `json:"id"`
	Status         Status         `json:"status"`
	GatewayOrderID string         `json:"gateway_order_id"`
	Amount         models.Money   `json:"amount"`
	Coupon         string         `json:"coupon,omitempty"`
	Address        models.Address `json:"address"`
	Notice         string         `json:"notice,omitempty"` // 失败时面向用户的提示
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

// BeginResult 发起结账的结果，携带支付控件所需的参数
type BeginResult struct {
	Attempt  *Attempt              `json:"attempt"`
	Gateway  upstream.PaymentOrder `json:"gateway"`
	KeyID    string                `json:"key_id"`
	Currency string                `json:"currency"`
}

// Orchestrator 结账编排器。
// 推进顺序：校验地址 → 创建支付网关订单 → 等待控件回调 →
// 服务端验签 → 提交订单。任一步失败都保留购物车供重试。
type Orchestrator struct {
	cfg      config.PaymentConfig
	store    store.Store
	state    *state.Manager
	sessions *session.Manager
	coupons  pricing.Coupons
	client   *upstream.Client
	notifier Notifier
}

// NewOrchestrator 创建结账编排器
func NewOrchestrator(cfg config.PaymentConfig, s store.Store, st *state.Manager, sessions *session.Manager, coupons pricing.Coupons, client *upstream.Client, notifier Notifier) *Orchestrator {
	return &Orchestrator{
		cfg:      cfg,
		store:    s,
		state:    st,
		sessions: sessions,
		coupons:  coupons,
		client:   client,
		notifier: notifier,
	}
}

// Current 读取当前结账尝试，没有时返回 Idle 态的空尝试
func (o *Orchestrator) Current(sessionID string) *Attempt {
	var attempt Attempt
	if !o.store.Get(sessionID, constants.StoreKeyCheckout, &attempt) {
		return &Attempt{Status: StatusIdle}
	}
	return &attempt
}

// Begin 发起结账：校验购物车与地址，创建支付网关订单，
// 然后停在 AwaitingPaymentGateway 等待控件回调。
// 重复调用会丢弃旧的未完成尝试，开始新的一次。
func (o *Orchestrator) Begin(ctx context.Context, sessionID string, address models.Address, coupon string) (*BeginResult, error) {
	lines := o.state.Cart(sessionID)
	if len(lines) == 0 {
		return nil, ErrCartEmpty
	}
	if !address.Complete() {
		return nil, ErrAddressIncomplete
	}
	if !pincodePattern.MatchString(address.Pincode) {
		return nil, ErrPincodeInvalid
	}

	attempt := &Attempt{
		ID:        uuid.NewString(),
		Status:    StatusIdle,
		Coupon:    coupon,
		Address:   address,
		CreatedAt: time.Now(),
	}
	o.transition(sessionID, attempt, StatusValidatingAddress)

	total := pricing.OrderTotal(lines)
	if coupon != "" {
		discounted, err := o.coupons.ApplyCoupon(total, coupon)
		if err != nil {
			o.fail(sessionID, attempt, "error.coupon_invalid")
			return nil, err
		}
		total = discounted
	}
	attempt.Amount = total

	gatewayOrder, err := o.client.CreatePaymentOrder(ctx, total)
	if err != nil {
		o.fail(sessionID, attempt, "error.payment_order_failed")
		logger.Warnw("checkout_payment_order_failed", "session_id", sessionID, "error", err)
		return nil, ErrPaymentOrderFailed
	}

	attempt.GatewayOrderID = gatewayOrder.ID
	o.transition(sessionID, attempt, StatusAwaitingGateway)
	logger.Infow("checkout_awaiting_gateway",
		"session_id", sessionID,
		"attempt_id", attempt.ID,
		"gateway_order_id", gatewayOrder.ID,
		"amount", total.String(),
	)

	return &BeginResult{
		Attempt:  attempt,
		Gateway:  *gatewayOrder,
		KeyID:    o.cfg.KeyID,
		Currency: o.cfg.Currency,
	}, nil
}

// Complete 支付控件回调后的收尾：验签并提交订单。
// 验签或下单失败都以 Failed 终结本次尝试，购物车保持原样。
func (o *Orchestrator) Complete(ctx context.Context, sessionID string, verification upstream.PaymentVerification) (*models.OrderSnapshot, error) {
	attempt := o.Current(sessionID)
	if attempt.Status != StatusAwaitingGateway {
		return nil, ErrNotAwaitingPayment
	}
	if verification.RazorpayOrderID != attempt.GatewayOrderID {
		return nil, ErrNotAwaitingPayment
	}

	o.transition(sessionID, attempt, StatusVerifyingPayment)
	ok, err := o.client.VerifyPayment(ctx, verification)
	if err != nil || !ok {
		o.fail(sessionID, attempt, "error.payment_verify_failed")
		logger.Warnw("checkout_verify_failed", "session_id", sessionID, "attempt_id", attempt.ID, "error", err)
		return nil, ErrPaymentVerifyFailed
	}

	o.transition(sessionID, attempt, StatusSubmittingOrder)

	lines := o.state.Cart(sessionID)
	items := make([]upstream.OrderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, upstream.OrderItem{
			Name:     l.Name,
			Quantity: l.Quantity,
			Price:    l.UnitPrice,
			Size:     l.Size,
		})
	}

	auth, _ := o.sessions.Current(sessionID)
	orderID, err := o.client.CreateOrder(ctx, auth.Token, upstream.OrderRequest{
		Items:       items,
		TotalAmount: attempt.Amount,
		PaymentInfo: verification,
		Address:     attempt.Address.Street + ", " + attempt.Address.City + ", " + attempt.Address.State + " - " + attempt.Address.Pincode,
		Phone:       attempt.Address.Phone,
		Coupon:      attempt.Coupon,
	})
	if err != nil {
		if errors.Is(err, upstream.ErrUnauthorized) {
			o.sessions.HandleUnauthorized(sessionID)
		}
		o.fail(sessionID, attempt, "error.order_create_failed")
		logger.Errorw("checkout_order_create_failed", "session_id", sessionID, "attempt_id", attempt.ID, "error", err)
		// 上游给出的原始错误信息继续向上传递
		return nil, err
	}

	snapshot := models.OrderSnapshot{
		PaymentID:  verification.RazorpayPaymentID,
		TotalPrice: attempt.Amount,
	}
	if err := o.store.Put(sessionID, constants.StoreKeyLastOrder, snapshot); err != nil {
		logger.Errorw("checkout_snapshot_persist_failed", "session_id", sessionID, "error", err)
	}
	if err := o.store.Put(sessionID, constants.StoreKeyAddress, attempt.Address); err != nil {
		logger.Errorw("checkout_address_persist_failed", "session_id", sessionID, "error", err)
	}
	o.state.ClearCart(sessionID)
	o.transition(sessionID, attempt, StatusSuccess)
	logger.Infow("checkout_success",
		"session_id", sessionID,
		"attempt_id", attempt.ID,
		"order_id", orderID,
		"payment_id", verification.RazorpayPaymentID,
		"total", attempt.Amount.String(),
	)

	if o.notifier != nil && attempt.Address.Email != "" {
		if err := o.notifier.EnqueueOrderConfirmation(sessionID, attempt.Address.Email, orderID, attempt.Amount); err != nil {
			logger.Warnw("checkout_confirmation_enqueue_failed", "session_id", sessionID, "error", err)
		}
	}
	return &snapshot, nil
}

// LastOrder 读取最近一次下单回执
func (o *Orchestrator) LastOrder(sessionID string) (*models.OrderSnapshot, bool) {
	var snapshot models.OrderSnapshot
	if !o.store.Get(sessionID, constants.StoreKeyLastOrder, &snapshot) {
		return nil, false
	}
	return &snapshot, true
}

// SavedAddress 读取上次成功下单保存的默认地址
func (o *Orchestrator) SavedAddress(sessionID string) (*models.Address, bool) {
	var address models.Address
	if !o.store.Get(sessionID, constants.StoreKeyAddress, &address) {
		return nil, false
	}
	return &address, true
}

func (o *Orchestrator) transition(sessionID string, attempt *Attempt, next Status) {
	if !attempt.Status.CanTransitionTo(next) {
		logger.Warnw("checkout_transition_rejected",
			"session_id", sessionID,
			"from", attempt.Status.String(),
			"to", next.String(),
		)
		return
	}
	attempt.Status = next
	attempt.UpdatedAt = time.Now()
	o.persist(sessionID, attempt)
}

func (o *Orchestrator) fail(sessionID string, attempt *Attempt, noticeKey string) {
	attempt.Notice = noticeKey
	o.transition(sessionID, attempt, StatusFailed)
}

func (o *Orchestrator) persist(sessionID string, attempt *Attempt) {
	if err := o.store.Put(sessionID, constants.StoreKeyCheckout, attempt); err != nil {
		logger.Errorw("checkout_attempt_persist_failed", "session_id", sessionID, "error", err)
	}
}

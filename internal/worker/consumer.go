package worker

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/pizzeria-next/internal/logger"
	"github.com/pizzeria-next/internal/provider"
	"github.com/pizzeria-next/internal/queue"
	"github.com/pizzeria-next/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskOrderConfirmationEmail, c.handleOrderConfirmationEmail)
}

func (c *Consumer) handleOrderConfirmationEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_order_confirmation_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.OrderConfirmationEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_order_confirmation_email_unmarshal_failed", "error", err)
		return err
	}
	receiverEmail := strings.TrimSpace(payload.Email)
	if payload.OrderID == "" || receiverEmail == "" {
		logger.Debugw("worker_order_confirmation_email_skip_invalid_payload",
			"order_id", payload.OrderID,
			"session_id", payload.SessionID,
		)
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_order_confirmation_email_skip_email_service_nil", "order_id", payload.OrderID)
		return nil
	}
	input := service.OrderConfirmationInput{
		OrderID: payload.OrderID,
		Total:   payload.Total,
	}
	if err := c.EmailService.SendOrderConfirmation(receiverEmail, input, ""); err != nil {
		if errors.Is(err, service.ErrEmailServiceDisabled) || errors.Is(err, service.ErrEmailServiceNotConfigured) {
			logger.Debugw("worker_order_confirmation_email_skip_disabled", "order_id", payload.OrderID)
			return nil
		}
		logger.Warnw("worker_order_confirmation_email_send_failed",
			"order_id", payload.OrderID,
			"receiver_email", receiverEmail,
			"error", err,
		)
		return err
	}
	return nil
}

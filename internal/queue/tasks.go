package queue

import (
	"encoding/json"

	"github.com/pizzeria-next/internal/constants"
	"github.com/pizzeria-next/internal/models"

	"github.com/hibiken/asynq"
)

// TaskOrderConfirmationEmail 下单确认邮件任务
const TaskOrderConfirmationEmail = constants.TaskOrderConfirmationEmail

// OrderConfirmationEmailPayload 下单确认邮件任务载荷
type OrderConfirmationEmailPayload struct {
	SessionID string       `json:"session_id"`
	Email     string       `json:"email"`
	OrderID   string       `json:"order_id"`
	Total     models.Money `json:"total"`
}

// NewOrderConfirmationEmailTask 创建下单确认邮件任务
func NewOrderConfirmationEmailTask(payload OrderConfirmationEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskOrderConfirmationEmail, body), nil
}

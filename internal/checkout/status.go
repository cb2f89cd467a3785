package checkout

// Status 结账流程状态
type Status string

const (
	StatusIdle              Status = "IDLE"
	StatusValidatingAddress Status = "VALIDATING_ADDRESS"
	StatusAwaitingGateway   Status = "AWAITING_PAYMENT_GATEWAY"
	StatusVerifyingPayment  Status = "VERIFYING_PAYMENT"
	StatusSubmittingOrder   Status = "SUBMITTING_ORDER"
	StatusSuccess           Status = "SUCCESS"
	StatusFailed            Status = "FAILED"
)

// 合法的状态迁移表
var transitions = map[Status][]Status{
	StatusIdle:              {StatusValidatingAddress},
	StatusValidatingAddress: {StatusAwaitingGateway, StatusFailed},
	StatusAwaitingGateway:   {StatusVerifyingPayment},
	StatusVerifyingPayment:  {StatusSubmittingOrder, StatusFailed},
	StatusSubmittingOrder:   {StatusSuccess, StatusFailed},
}

// CanTransitionTo 判断能否从当前状态迁移到 next
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal 成功或失败后本次尝试不再推进
func (s Status) IsTerminal() bool {
	return s == StatusSuccess || s == StatusFailed
}

func (s Status) String() string {
	return string(s)
}

package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pizzeria-next/internal/config"
	"github.com/pizzeria-next/internal/constants"
	"github.com/pizzeria-next/internal/models"
	"github.com/pizzeria-next/internal/pricing"
	"github.com/pizzeria-next/internal/session"
	"github.com/pizzeria-next/internal/state"
	"github.com/pizzeria-next/internal/store"
	"github.com/pizzeria-next/internal/upstream"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type gatewayStub struct {
	verifySuccess bool
	orderSuccess  bool
	orderCalls    int
}

func (g *gatewayStub) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/payment/create-order", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"order":   map[string]interface{}{"id": "order_rzp1", "amount": 20000, "currency": "INR"},
		})
	})
	mux.HandleFunc("/payment/verify", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]bool{"success": g.verifySuccess})
	})
	mux.HandleFunc("/orders", func(w http.ResponseWriter, r *http.Request) {
		g.orderCalls++
		if !g.orderSuccess {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "message": "order rejected"})
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"order":   map[string]interface{}{"_id": "ord-1"},
		})
	})
	return mux
}

func setupOrchestratorTest(t *testing.T, stub *gatewayStub) (*Orchestrator, *state.Manager, store.Store, string) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.StoreEntry{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	srv := httptest.NewServer(stub.handler())
	t.Cleanup(srv.Close)

	s := store.NewStore(db)
	st := state.NewManager(s, state.NewBus())
	sessions := session.NewManager(config.SessionConfig{SecretKey: "test", ExpireHours: 1}, s)
	coupons := pricing.NewCoupons(map[string]float64{"PIZZA10": 0.10})
	client := upstream.NewClient(srv.URL)

	o := NewOrchestrator(config.PaymentConfig{KeyID: "rzp_test_key", Currency: "INR"}, s, st, sessions, coupons, client, nil)

	sid, _, err := sessions.Issue()
	if err != nil {
		t.Fatalf("issue session failed: %v", err)
	}
	if err := sessions.Login(sid, &upstream.LoginResult{Token: "tok-1", Role: "user", Email: "amit@example.com"}); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	return o, st, s, sid
}

func validAddress() models.Address {
	return models.Address{
		Street:  "12 MG Road",
		City:    "Mumbai",
		State:   "Maharashtra",
		Pincode: "400001",
		Email:   "amit@example.com",
		Phone:   "9876543210",
	}
}

func TestCheckoutHappyPath(t *testing.T) {
	stub := &gatewayStub{verifySuccess: true, orderSuccess: true}
	o, st, _, sid := setupOrchestratorTest(t, stub)

	st.AddToCart(sid, models.CartLine{
		ProductID: "p1",
		Name:      "Margherita",
		Size:      "small",
		UnitPrice: models.NewMoneyFromInt(100),
		Quantity:  2,
	})

	begin, err := o.Begin(context.Background(), sid, validAddress(), "")
	if err != nil {
		t.Fatalf("begin failed: %v", err)
	}
	if begin.Attempt.Status != StatusAwaitingGateway {
		t.Fatalf("status want AWAITING_PAYMENT_GATEWAY, got=%s", begin.Attempt.Status)
	}
	if begin.Gateway.ID != "order_rzp1" || begin.KeyID != "rzp_test_key" {
		t.Fatalf("unexpected gateway handle: %+v key=%s", begin.Gateway, begin.KeyID)
	}
	if begin.Attempt.Amount.String() != "200.00" {
		t.Fatalf("amount want 200.00, got=%s", begin.Attempt.Amount)
	}

	snapshot, err := o.Complete(context.Background(), sid, upstream.PaymentVerification{
		RazorpayOrderID:   "order_rzp1",
		RazorpayPaymentID: "pay_777",
		RazorpaySignature: "sig",
	})
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if snapshot.PaymentID != "pay_777" || snapshot.TotalPrice.String() != "200.00" {
		t.Fatalf("unexpected snapshot: %+v", snapshot)
	}

	if got := len(st.Cart(sid)); got != 0 {
		t.Fatalf("cart must be empty after success, got=%d lines", got)
	}
	if o.Current(sid).Status != StatusSuccess {
		t.Fatalf("status want SUCCESS, got=%s", o.Current(sid).Status)
	}

	// 确认页可以读回快照
	readBack, ok := o.LastOrder(sid)
	if !ok || readBack.PaymentID != "pay_777" {
		t.Fatalf("snapshot read-back failed: %+v ok=%v", readBack, ok)
	}
	// 成功后地址成为默认地址
	saved, ok := o.SavedAddress(sid)
	if !ok || saved.City != "Mumbai" {
		t.Fatalf("saved address missing: %+v ok=%v", saved, ok)
	}
}

func TestCheckoutCouponAppliedToGatewayAmount(t *testing.T) {
	stub := &gatewayStub{verifySuccess: true, orderSuccess: true}
	o, st, _, sid := setupOrchestratorTest(t, stub)

	st.AddToCart(sid, models.CartLine{ProductID: "p1", UnitPrice: models.NewMoneyFromInt(500), Quantity: 2, Size: "small"})

	begin, err := o.Begin(context.Background(), sid, validAddress(), "pizza10")
	if err != nil {
		t.Fatalf("begin failed: %v", err)
	}
	if begin.Attempt.Amount.String() != "900.00" {
		t.Fatalf("discounted amount want 900.00, got=%s", begin.Attempt.Amount)
	}

	_, err = o.Begin(context.Background(), sid, validAddress(), "BOGUS")
	if !errors.Is(err, pricing.ErrCouponInvalid) {
		t.Fatalf("bogus coupon must abort, got=%v", err)
	}
}

func TestCheckoutAddressWithoutContactFields(t *testing.T) {
	stub := &gatewayStub{verifySuccess: true, orderSuccess: true}
	o, st, _, sid := setupOrchestratorTest(t, stub)

	st.AddToCart(sid, models.CartLine{ProductID: "p1", UnitPrice: models.NewMoneyFromInt(100), Quantity: 1, Size: "small"})

	// 邮箱和电话是可选项，只填街道/城市/州/邮编也能发起结账
	addr := models.Address{Street: "12 MG Road", City: "Mumbai", State: "Maharashtra", Pincode: "400001"}
	begin, err := o.Begin(context.Background(), sid, addr, "")
	if err != nil {
		t.Fatalf("contact-less address must be accepted, got=%v", err)
	}
	if begin.Attempt.Status != StatusAwaitingGateway {
		t.Fatalf("status want AWAITING_PAYMENT_GATEWAY, got=%s", begin.Attempt.Status)
	}
}

func TestCheckoutValidationFailures(t *testing.T) {
	stub := &gatewayStub{verifySuccess: true, orderSuccess: true}
	o, st, _, sid := setupOrchestratorTest(t, stub)

	if _, err := o.Begin(context.Background(), sid, validAddress(), ""); !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("empty cart must abort, got=%v", err)
	}

	st.AddToCart(sid, models.CartLine{ProductID: "p1", UnitPrice: models.NewMoneyFromInt(100), Quantity: 1, Size: "small"})

	incomplete := validAddress()
	incomplete.City = ""
	if _, err := o.Begin(context.Background(), sid, incomplete, ""); !errors.Is(err, ErrAddressIncomplete) {
		t.Fatalf("incomplete address must abort, got=%v", err)
	}

	badPin := validAddress()
	badPin.Pincode = "40001"
	if _, err := o.Begin(context.Background(), sid, badPin, ""); !errors.Is(err, ErrPincodeInvalid) {
		t.Fatalf("bad pincode must abort, got=%v", err)
	}
	badPin.Pincode = "4000012"
	if _, err := o.Begin(context.Background(), sid, badPin, ""); !errors.Is(err, ErrPincodeInvalid) {
		t.Fatalf("7-digit pincode must abort, got=%v", err)
	}
}

func TestCheckoutVerificationFailurePreservesCart(t *testing.T) {
	stub := &gatewayStub{verifySuccess: false, orderSuccess: true}
	o, st, s, sid := setupOrchestratorTest(t, stub)

	st.AddToCart(sid, models.CartLine{ProductID: "p1", Name: "Margherita", UnitPrice: models.NewMoneyFromInt(100), Quantity: 2, Size: "small"})

	if _, err := o.Begin(context.Background(), sid, validAddress(), ""); err != nil {
		t.Fatalf("begin failed: %v", err)
	}
	_, err := o.Complete(context.Background(), sid, upstream.PaymentVerification{
		RazorpayOrderID:   "order_rzp1",
		RazorpayPaymentID: "pay_1",
		RazorpaySignature: "sig",
	})
	if !errors.Is(err, ErrPaymentVerifyFailed) {
		t.Fatalf("want ErrPaymentVerifyFailed, got=%v", err)
	}

	if o.Current(sid).Status != StatusFailed {
		t.Fatalf("status want FAILED, got=%s", o.Current(sid).Status)
	}
	if got := len(st.Cart(sid)); got != 1 {
		t.Fatalf("cart must be preserved, got=%d lines", got)
	}
	var snapshot models.OrderSnapshot
	if s.Get(sid, constants.StoreKeyLastOrder, &snapshot) {
		t.Fatalf("no snapshot may be written on failure")
	}
	if stub.orderCalls != 0 {
		t.Fatalf("order endpoint must not be called after failed verification")
	}
}

func TestCheckoutOrderRejectionPreservesCart(t *testing.T) {
	stub := &gatewayStub{verifySuccess: true, orderSuccess: false}
	o, st, _, sid := setupOrchestratorTest(t, stub)

	st.AddToCart(sid, models.CartLine{ProductID: "p1", UnitPrice: models.NewMoneyFromInt(100), Quantity: 1, Size: "small"})
	if _, err := o.Begin(context.Background(), sid, validAddress(), ""); err != nil {
		t.Fatalf("begin failed: %v", err)
	}

	_, err := o.Complete(context.Background(), sid, upstream.PaymentVerification{
		RazorpayOrderID: "order_rzp1", RazorpayPaymentID: "pay_1", RazorpaySignature: "sig",
	})
	if err == nil {
		t.Fatalf("order rejection must surface an error")
	}
	// 上游给出的原始信息要保留
	if !strings.Contains(err.Error(), "order rejected") {
		t.Fatalf("server message must be surfaced, got=%v", err)
	}
	if got := len(st.Cart(sid)); got != 1 {
		t.Fatalf("cart must be preserved, got=%d lines", got)
	}
}

func TestCompleteRequiresAwaitingState(t *testing.T) {
	stub := &gatewayStub{verifySuccess: true, orderSuccess: true}
	o, st, _, sid := setupOrchestratorTest(t, stub)

	if _, err := o.Complete(context.Background(), sid, upstream.PaymentVerification{RazorpayOrderID: "x"}); !errors.Is(err, ErrNotAwaitingPayment) {
		t.Fatalf("complete without begin must fail, got=%v", err)
	}

	st.AddToCart(sid, models.CartLine{ProductID: "p1", UnitPrice: models.NewMoneyFromInt(100), Quantity: 1, Size: "small"})
	if _, err := o.Begin(context.Background(), sid, validAddress(), ""); err != nil {
		t.Fatalf("begin failed: %v", err)
	}
	// 网关订单号不匹配的回调不被接受
	if _, err := o.Complete(context.Background(), sid, upstream.PaymentVerification{RazorpayOrderID: "order_other"}); !errors.Is(err, ErrNotAwaitingPayment) {
		t.Fatalf("mismatched gateway order must fail, got=%v", err)
	}
}

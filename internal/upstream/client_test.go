package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pizzeria-next/internal/models"
)

func TestLoginReturnsTokenAndRole(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" || r.Method != http.MethodPost {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var input LoginInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			t.Fatalf("decode input failed: %v", err)
		}
		if input.Identifier != "amit@example.com" {
			t.Fatalf("identifier not forwarded: %s", input.Identifier)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"token": "tok-123",
			"role":  "admin",
			"name":  "Amit",
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	result, err := c.Login(context.Background(), LoginInput{Identifier: "amit@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.Token != "tok-123" || result.Role != "admin" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestUnauthorizedMapsToSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.MyOrders(context.Background(), "stale-token")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("want ErrUnauthorized, got=%v", err)
	}
}

func TestErrorCarriesUpstreamMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "User already exists"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	err := c.Register(context.Background(), RegisterInput{Email: "dup@example.com"})
	if !errors.Is(err, ErrRequestFailed) {
		t.Fatalf("want ErrRequestFailed, got=%v", err)
	}
	if got := err.Error(); got != "upstream request failed: User already exists" {
		t.Fatalf("message not surfaced: %s", got)
	}
}

func TestCreatePaymentOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/payment/create-order" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"order":   map[string]interface{}{"id": "order_abc", "amount": 90000, "currency": "INR"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	order, err := c.CreatePaymentOrder(context.Background(), models.NewMoneyFromInt(900))
	if err != nil {
		t.Fatalf("create payment order failed: %v", err)
	}
	if order.ID != "order_abc" || order.Amount != 90000 || order.Currency != "INR" {
		t.Fatalf("unexpected order: %+v", order)
	}
}

func TestVerifyPaymentRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]bool{"success": false})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	ok, err := c.VerifyPayment(context.Background(), PaymentVerification{
		RazorpayOrderID:   "order_abc",
		RazorpayPaymentID: "pay_x",
		RazorpaySignature: "sig",
	})
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if ok {
		t.Fatalf("rejected verification must return false")
	}
}

func TestBearerTokenAttached(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-9" {
			t.Fatalf("authorization header want Bearer tok-9, got=%q", got)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"orders": []interface{}{}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if _, err := c.AllOrders(context.Background(), "tok-9"); err != nil {
		t.Fatalf("all orders failed: %v", err)
	}
}

package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pizzeria-next/internal/models"
	"github.com/pizzeria-next/internal/pricing"
	"github.com/pizzeria-next/internal/state"
	"github.com/pizzeria-next/internal/store"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCartServiceTest(t *testing.T) (*CartService, *state.Manager, *store.GormStore) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.StoreEntry{}); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	s := store.NewStore(db)
	st := state.NewManager(s, state.NewBus())
	return NewCartService(st, pricing.NewCoupons(map[string]float64{"PIZZA10": 0.10})), st, s
}

func TestAddPizzaUsesSizePrice(t *testing.T) {
	svc, st, _ := setupCartServiceTest(t)
	sid := "sess-1"

	pizza := CatalogPizza{ID: "pizza-0", Name: "Margherita", Price: models.NewMoneyFromInt(100)}
	svc.AddPizza(sid, AddPizzaInput{Pizza: pizza, Size: "Large", Quantity: 1})

	cart := st.Cart(sid)
	if len(cart) != 1 {
		t.Fatalf("want 1 line, got=%d", len(cart))
	}
	if cart[0].UnitPrice.String() != "200.00" {
		t.Fatalf("large unit price want 200.00, got=%s", cart[0].UnitPrice)
	}
	if cart[0].Size != "large" {
		t.Fatalf("size must be normalized, got=%s", cart[0].Size)
	}
}

func TestAddCustomPizzaRequiresCoreComponents(t *testing.T) {
	svc, st, _ := setupCartServiceTest(t)
	sid := "sess-1"

	_, err := svc.AddCustomPizza(sid, CustomPizzaInput{Base: "Thin", Sauce: "", Cheese: "Mozzarella"})
	if !errors.Is(err, ErrRecipeIncomplete) {
		t.Fatalf("missing sauce must fail, got=%v", err)
	}
	if got := len(st.Cart(sid)); got != 0 {
		t.Fatalf("cart must stay empty, got=%d", got)
	}

	line, err := svc.AddCustomPizza(sid, CustomPizzaInput{
		Base: "Thin", Sauce: "Tomato", Cheese: "Mozzarella",
		Veggies: []string{"Onion", "Capsicum"}, Meats: []string{"Chicken"},
	})
	if err != nil {
		t.Fatalf("add custom failed: %v", err)
	}
	if line.UnitPrice.String() != "190.00" {
		t.Fatalf("recipe price want 190.00, got=%s", line.UnitPrice)
	}
}

func TestSameRecipeMergesIntoOneLine(t *testing.T) {
	svc, st, _ := setupCartServiceTest(t)
	sid := "sess-1"

	recipe := CustomPizzaInput{Base: "Thin", Sauce: "Tomato", Cheese: "Mozzarella", Veggies: []string{"Onion"}}
	if _, err := svc.AddCustomPizza(sid, recipe); err != nil {
		t.Fatalf("first add failed: %v", err)
	}
	// 配料顺序与大小写不同，仍是同一配方
	permuted := CustomPizzaInput{Base: " thin ", Sauce: "TOMATO", Cheese: "mozzarella", Veggies: []string{"ONION "}}
	if _, err := svc.AddCustomPizza(sid, permuted); err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	cart := st.Cart(sid)
	if len(cart) != 1 || cart[0].Quantity != 2 {
		t.Fatalf("same recipe must merge, got=%+v", cart)
	}

	other := CustomPizzaInput{Base: "Thick", Sauce: "Tomato", Cheese: "Mozzarella"}
	if _, err := svc.AddCustomPizza(sid, other); err != nil {
		t.Fatalf("third add failed: %v", err)
	}
	if got := len(st.Cart(sid)); got != 2 {
		t.Fatalf("different recipe must get its own line, got=%d", got)
	}
}

func TestCartViewWithCoupon(t *testing.T) {
	svc, st, _ := setupCartServiceTest(t)
	sid := "sess-1"

	st.AddToCart(sid, models.CartLine{ProductID: "p1", UnitPrice: models.NewMoneyFromInt(500), Quantity: 2, Size: "small"})

	view, err := svc.View(sid, "pizza10")
	if err != nil {
		t.Fatalf("view failed: %v", err)
	}
	if view.Subtotal.String() != "1000.00" || view.Total.String() != "900.00" {
		t.Fatalf("unexpected totals: subtotal=%s total=%s", view.Subtotal, view.Total)
	}
	if !view.CouponApplied || view.Coupon != "PIZZA10" {
		t.Fatalf("coupon must be applied and normalized: %+v", view)
	}
	if view.Lines[0].LineTotal.String() != "1000.00" {
		t.Fatalf("line total want 1000.00, got=%s", view.Lines[0].LineTotal)
	}

	view, err = svc.View(sid, "BOGUS")
	if !errors.Is(err, pricing.ErrCouponInvalid) {
		t.Fatalf("bogus coupon must signal rejection, got=%v", err)
	}
	if view == nil || view.Total.String() != "1000.00" || view.CouponApplied {
		t.Fatalf("rejected coupon must keep original total: %+v", view)
	}
}

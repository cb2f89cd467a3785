package state

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pizzeria-next/internal/constants"
	"github.com/pizzeria-next/internal/models"
	"github.com/pizzeria-next/internal/store"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupManagerTest(t *testing.T) (*Manager, *store.GormStore) {
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
	return NewManager(s, NewBus()), s
}

func line(productID, size string, qty int) models.CartLine {
	return models.CartLine{
		ProductID: productID,
		Name:      "Pizza " + productID,
		Size:      size,
		UnitPrice: models.NewMoneyFromInt(150),
		Quantity:  qty,
	}
}

func TestAddToCartMergesSameProductAndSize(t *testing.T) {
	m, _ := setupManagerTest(t)
	ns := "sess-1"

	m.AddToCart(ns, line("p1", "small", 1))
	m.AddToCart(ns, line("p1", "small", 1))
	m.AddToCart(ns, line("p1", "medium", 1))

	cart := m.Cart(ns)
	if len(cart) != 2 {
		t.Fatalf("want 2 lines, got=%d", len(cart))
	}
	if cart[0].Quantity != 2 {
		t.Fatalf("merged line quantity want 2, got=%d", cart[0].Quantity)
	}
	if cart[1].Size != "medium" || cart[1].Quantity != 1 {
		t.Fatalf("unexpected second line: %+v", cart[1])
	}
}

func TestRemoveFromCartOutOfRangeIsNoop(t *testing.T) {
	m, _ := setupManagerTest(t)
	ns := "sess-1"

	m.AddToCart(ns, line("p1", "small", 1))
	m.RemoveFromCart(ns, 5)
	m.RemoveFromCart(ns, -1)

	if got := len(m.Cart(ns)); got != 1 {
		t.Fatalf("cart must be untouched, got=%d lines", got)
	}

	m.RemoveFromCart(ns, 0)
	if got := len(m.Cart(ns)); got != 0 {
		t.Fatalf("cart must be empty, got=%d lines", got)
	}
}

func TestDecreaseQuantityAtOneRemovesLine(t *testing.T) {
	m, _ := setupManagerTest(t)
	ns := "sess-1"

	m.AddToCart(ns, line("p1", "small", 2))
	m.DecreaseQuantity(ns, 0)
	if cart := m.Cart(ns); len(cart) != 1 || cart[0].Quantity != 1 {
		t.Fatalf("unexpected cart after first decrease: %+v", cart)
	}

	m.DecreaseQuantity(ns, 0)
	if cart := m.Cart(ns); len(cart) != 0 {
		t.Fatalf("line must be removed at quantity 1, got=%+v", cart)
	}

	m.AddToCart(ns, line("p2", "large", 1))
	m.IncreaseQuantity(ns, 0)
	if cart := m.Cart(ns); cart[0].Quantity != 2 {
		t.Fatalf("increase want 2, got=%d", cart[0].Quantity)
	}
}

func TestToggleWishlistRoundTrip(t *testing.T) {
	m, _ := setupManagerTest(t)
	ns := "sess-1"
	entry := models.WishlistEntry{ProductID: "p1", Name: "Margherita", Price: models.NewMoneyFromInt(100)}

	if added := m.ToggleWishlist(ns, entry); !added {
		t.Fatalf("first toggle must add")
	}
	if !m.InWishlist(ns, "p1") {
		t.Fatalf("entry must be present after add")
	}

	if added := m.ToggleWishlist(ns, entry); added {
		t.Fatalf("second toggle must remove")
	}
	if m.InWishlist(ns, "p1") {
		t.Fatalf("entry must be gone after second toggle")
	}
	if got := len(m.Wishlist(ns)); got != 0 {
		t.Fatalf("wishlist must be empty, got=%d", got)
	}
}

func TestCorruptedSnapshotBehavesAsEmpty(t *testing.T) {
	m, s := setupManagerTest(t)
	ns := "sess-1"

	// 字符串快照无法解析为行切片，等价于空购物车
	if err := s.Put(ns, constants.StoreKeyCart, "placeholder"); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if got := len(m.Cart(ns)); got != 0 {
		t.Fatalf("corrupted cart must read as empty, got=%d", got)
	}

	// 后续操作从空状态重建
	m.AddToCart(ns, line("p1", "small", 1))
	if got := len(m.Cart(ns)); got != 1 {
		t.Fatalf("cart must recover after corruption, got=%d", got)
	}
}

func TestBusPublishOrderAndUnsubscribe(t *testing.T) {
	m, _ := setupManagerTest(t)
	ns := "sess-1"
	bus := m.Bus()

	var order []string
	bus.Subscribe(constants.TopicCartChanged, func(evt Event) {
		order = append(order, "first")
	})
	second := bus.Subscribe(constants.TopicCartChanged, func(evt Event) {
		order = append(order, "second")
	})

	m.AddToCart(ns, line("p1", "small", 1))
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Fatalf("handlers must run synchronously in subscription order, got=%v", order)
	}

	bus.Unsubscribe(constants.TopicCartChanged, second)
	order = nil
	m.ClearCart(ns)
	if len(order) != 1 || order[0] != "first" {
		t.Fatalf("unsubscribed handler must not run, got=%v", order)
	}
}

func TestCartChangedCarriesCounts(t *testing.T) {
	m, _ := setupManagerTest(t)
	ns := "sess-1"

	var got Counts
	m.Bus().Subscribe(constants.TopicCartChanged, func(evt Event) {
		counts, ok := evt.Payload.(Counts)
		if !ok {
			t.Fatalf("payload must be Counts, got=%T", evt.Payload)
		}
		got = counts
	})

	m.AddToCart(ns, line("p1", "small", 1))
	m.AddToCart(ns, line("p2", "small", 1))
	if got.Cart != 2 {
		t.Fatalf("cart count want 2, got=%d", got.Cart)
	}
}

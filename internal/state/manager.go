package state

import (
	"strings"
	"sync"

	"github.com/pizzeria-next/internal/constants"
	"github.com/pizzeria-next/internal/logger"
	"github.com/pizzeria-next/internal/models"
	"github.com/pizzeria-next/internal/store"
)

// Counts 购物车与心愿单的计数快照，随事件一起发布
type Counts struct {
	Cart     int `json:"cart"`
	Wishlist int `json:"wishlist"`
}

// Manager 购物车/心愿单状态管理器。
// 状态以 JSON 快照写入本地存储，所有变更先落库再发布事件；
// 存储写入失败只记日志，不阻断内存状态生效。
type Manager struct {
	store store.Store
	bus   *Bus

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewManager 创建状态管理器
func NewManager(s store.Store, bus *Bus) *Manager {
	return &Manager{
		store: s,
		bus:   bus,
		locks: make(map[string]*sync.Mutex),
	}
}

// Bus 返回底层事件总线
func (m *Manager) Bus() *Bus {
	return m.bus
}

// nsLock 取得命名空间级互斥锁，同一会话的变更串行执行
func (m *Manager) nsLock(namespace string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.locks[namespace]
	if !ok {
		l = &sync.Mutex{}
		m.locks[namespace] = l
	}
	return l
}

// Cart 读取购物车快照，缺失或损坏时返回空切片
func (m *Manager) Cart(namespace string) []models.CartLine {
	var lines []models.CartLine
	if !m.store.Get(namespace, constants.StoreKeyCart, &lines) {
		return []models.CartLine{}
	}
	if lines == nil {
		lines = []models.CartLine{}
	}
	return lines
}

// Wishlist 读取心愿单快照，缺失或损坏时返回空切片
func (m *Manager) Wishlist(namespace string) []models.WishlistEntry {
	var entries []models.WishlistEntry
	if !m.store.Get(namespace, constants.StoreKeyWishlist, &entries) {
		return []models.WishlistEntry{}
	}
	if entries == nil {
		entries = []models.WishlistEntry{}
	}
	return entries
}

// CountsOf 返回当前计数快照（购物车按行数计）
func (m *Manager) CountsOf(namespace string) Counts {
	return Counts{
		Cart:     len(m.Cart(namespace)),
		Wishlist: len(m.Wishlist(namespace)),
	}
}

// AddToCart 加入购物车。
// 已存在相同（商品，尺寸）的行时合并数量，否则追加新行。
func (m *Manager) AddToCart(namespace string, line models.CartLine) {
	if line.Quantity < 1 {
		line.Quantity = 1
	}
	l := m.nsLock(namespace)
	l.Lock()
	lines := m.Cart(namespace)
	merged := false
	for i := range lines {
		if lines[i].ProductID == line.ProductID && lines[i].Size == line.Size {
			lines[i].Quantity += line.Quantity
			merged = true
			break
		}
	}
	if !merged {
		lines = append(lines, line)
	}
	m.persistCart(namespace, lines)
	l.Unlock()
	m.publishCart(namespace)
}

// RemoveFromCart 按下标移除整行，下标越界时不做任何事
func (m *Manager) RemoveFromCart(namespace string, index int) {
	l := m.nsLock(namespace)
	l.Lock()
	lines := m.Cart(namespace)
	if index < 0 || index >= len(lines) {
		l.Unlock()
		return
	}
	lines = append(lines[:index], lines[index+1:]...)
	m.persistCart(namespace, lines)
	l.Unlock()
	m.publishCart(namespace)
}

// IncreaseQuantity 行数量加一，下标越界时不做任何事
func (m *Manager) IncreaseQuantity(namespace string, index int) {
	l := m.nsLock(namespace)
	l.Lock()
	lines := m.Cart(namespace)
	if index < 0 || index >= len(lines) {
		l.Unlock()
		return
	}
	lines[index].Quantity++
	m.persistCart(namespace, lines)
	l.Unlock()
	m.publishCart(namespace)
}

// DecreaseQuantity 行数量减一，数量为 1 时整行移除
func (m *Manager) DecreaseQuantity(namespace string, index int) {
	l := m.nsLock(namespace)
	l.Lock()
	lines := m.Cart(namespace)
	if index < 0 || index >= len(lines) {
		l.Unlock()
		return
	}
	if lines[index].Quantity <= 1 {
		lines = append(lines[:index], lines[index+1:]...)
	} else {
		lines[index].Quantity--
	}
	m.persistCart(namespace, lines)
	l.Unlock()
	m.publishCart(namespace)
}

// ClearCart 清空购物车
func (m *Manager) ClearCart(namespace string) {
	l := m.nsLock(namespace)
	l.Lock()
	m.persistCart(namespace, []models.CartLine{})
	l.Unlock()
	m.publishCart(namespace)
}

// ToggleWishlist 切换心愿单条目：已存在则移除，否则加入。
// 返回切换后该商品是否在心愿单中。
func (m *Manager) ToggleWishlist(namespace string, entry models.WishlistEntry) bool {
	l := m.nsLock(namespace)
	l.Lock()
	entries := m.Wishlist(namespace)
	added := true
	for i := range entries {
		if entries[i].ProductID == entry.ProductID {
			entries = append(entries[:i], entries[i+1:]...)
			added = false
			break
		}
	}
	if added {
		entries = append(entries, entry)
	}
	if err := m.store.Put(namespace, constants.StoreKeyWishlist, entries); err != nil {
		logger.Errorw("wishlist_persist_failed", "namespace", namespace, "error", err)
	}
	l.Unlock()
	m.bus.Publish(Event{
		Topic:     constants.TopicWishlistChanged,
		Namespace: namespace,
		Payload:   m.CountsOf(namespace),
	})
	return added
}

// InWishlist 判断商品是否已在心愿单
func (m *Manager) InWishlist(namespace, productID string) bool {
	for _, e := range m.Wishlist(namespace) {
		if e.ProductID == productID {
			return true
		}
	}
	return false
}

// NotifyFavoritesChanged 收藏配方发生增删后由调用方触发
func (m *Manager) NotifyFavoritesChanged(namespace string) {
	m.bus.Publish(Event{
		Topic:     constants.TopicFavoritesChanged,
		Namespace: namespace,
	})
}

func (m *Manager) persistCart(namespace string, lines []models.CartLine) {
	if err := m.store.Put(namespace, constants.StoreKeyCart, lines); err != nil {
		logger.Errorw("cart_persist_failed", "namespace", namespace, "error", err)
	}
}

func (m *Manager) publishCart(namespace string) {
	m.bus.Publish(Event{
		Topic:     constants.TopicCartChanged,
		Namespace: namespace,
		Payload:   m.CountsOf(namespace),
	})
}

// NormalizeSize 规整尺寸取值，未知尺寸原样返回（按基础价计价）
func NormalizeSize(size string) string {
	return strings.ToLower(strings.TrimSpace(size))
}

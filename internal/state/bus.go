package state

import "sync"

// Event 状态变更事件
type Event struct {
	Topic     string      // 主题（见 constants.Topic*）
	Namespace string      // 产生变更的会话命名空间
	Payload   interface{} // 主题相关的负载（通常为计数快照）
}

// Handler 事件处理函数
type Handler func(Event)

// Subscription 订阅凭据，用于退订
type Subscription uint64

// Bus 进程内同步事件总线。
// 发布按订阅顺序同步调用处理函数，处理函数返回前 Publish 不返回。
type Bus struct {
	mu     sync.Mutex
	nextID Subscription
	topics map[string][]busEntry
}

type busEntry struct {
	id      Subscription
	handler Handler
}

// NewBus 创建事件总线
func NewBus() *Bus {
	return &Bus{topics: make(map[string][]busEntry)}
}

// Subscribe 订阅主题，返回用于退订的凭据
func (b *Bus) Subscribe(topic string, h Handler) Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	b.topics[topic] = append(b.topics[topic], busEntry{id: b.nextID, handler: h})
	return b.nextID
}

// Unsubscribe 退订。退订后的处理函数不再被调用。
func (b *Bus) Unsubscribe(topic string, sub Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	entries := b.topics[topic]
	for i, e := range entries {
		if e.id == sub {
			b.topics[topic] = append(entries[:i:i], entries[i+1:]...)
			return
		}
	}
}

// Publish 同步发布事件，按订阅先后顺序逐个调用处理函数
func (b *Bus) Publish(evt Event) {
	b.mu.Lock()
	entries := b.topics[evt.Topic]
	handlers := make([]Handler, len(entries))
	for i, e := range entries {
		handlers[i] = e.handler
	}
	b.mu.Unlock()

	for _, h := range handlers {
		h(evt)
	}
}

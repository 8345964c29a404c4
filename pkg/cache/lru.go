package cache

import (
	"container/list"
	"sync"
	"time"
)

type Config struct {
	MaxSize int
	TTL     time.Duration
}

// LRU is a small thread-safe LRU cache with optional per-entry TTL.
// Entries past their TTL are dropped lazily on Get.
type LRU[K comparable, V any] struct {
	maxSize int
	ttl     time.Duration
	mu      sync.Mutex
	items   map[K]*list.Element
	order   *list.List
}

type entry[K comparable, V any] struct {
	key       K
	value     V
	createdAt time.Time
}

func New[K comparable, V any](config Config) *LRU[K, V] {
	if config.MaxSize <= 0 {
		config.MaxSize = 16
	}
	return &LRU[K, V]{
		maxSize: config.MaxSize,
		ttl:     config.TTL,
		items:   make(map[K]*list.Element),
		order:   list.New(),
	}
}

func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	element, ok := c.items[key]
	if !ok {
		return zero, false
	}

	e := element.Value.(*entry[K, V])
	if c.ttl > 0 && time.Since(e.createdAt) > c.ttl {
		c.order.Remove(element)
		delete(c.items, key)
		return zero, false
	}

	c.order.MoveToFront(element)
	return e.value, true
}

func (c *LRU[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if element, ok := c.items[key]; ok {
		e := element.Value.(*entry[K, V])
		e.value = value
		e.createdAt = time.Now()
		c.order.MoveToFront(element)
		return
	}

	element := c.order.PushFront(&entry[K, V]{
		key:       key,
		value:     value,
		createdAt: time.Now(),
	})
	c.items[key] = element

	if c.order.Len() > c.maxSize {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.items, oldest.Value.(*entry[K, V]).key)
		}
	}
}

func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *LRU[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[K]*list.Element)
	c.order = list.New()
}

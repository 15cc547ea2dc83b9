package memcache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

const DefaultCapacity = 500

type entry struct {
	key       string
	text      string
	expiresAt time.Time
}

// Cache is a fixed-capacity in-process store with per-entry TTL. When full it
// evicts expired entries first, then the least recently set one. Overwriting
// a key resets both its expiry and its position in the eviction order.
type Cache struct {
	mu       sync.Mutex
	capacity int
	items    map[string]*list.Element
	order    *list.List // front = least recently set

	now func() time.Time
}

func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		capacity: capacity,
		items:    make(map[string]*list.Element, capacity),
		order:    list.New(),
		now:      time.Now,
	}
}

func (c *Cache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		return "", false, nil
	}
	e := el.Value.(*entry)
	if !c.now().Before(e.expiresAt) {
		c.remove(el)
		return "", false, nil
	}
	return e.text, true, nil
}

func (c *Cache) Set(_ context.Context, key, text string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	exp := c.now().Add(ttl)
	if el, ok := c.items[key]; ok {
		e := el.Value.(*entry)
		e.text = text
		e.expiresAt = exp
		c.order.MoveToBack(el)
		return nil
	}

	c.evictExpired()
	for len(c.items) >= c.capacity {
		c.remove(c.order.Front())
	}
	c.items[key] = c.order.PushBack(&entry{key: key, text: text, expiresAt: exp})
	return nil
}

// Len reports the number of live entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.evictExpired()
	return len(c.items)
}

func (c *Cache) evictExpired() {
	now := c.now()
	for el := c.order.Front(); el != nil; {
		next := el.Next()
		if !now.Before(el.Value.(*entry).expiresAt) {
			c.remove(el)
		}
		el = next
	}
}

func (c *Cache) remove(el *list.Element) {
	delete(c.items, el.Value.(*entry).key)
	c.order.Remove(el)
}

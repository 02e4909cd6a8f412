// Package cache provides an in-memory LRU cache with per-entry TTL,
// used as the fast front for genre tables and entity details.
package cache

import (
	"container/list"
	"sync"
	"time"
)

// Cache is the lookup contract consumed by API clients.
type Cache interface {
	Get(key string) (interface{}, bool)
	Set(key string, value interface{})
	Delete(key string)
	Clear()
}

type entry struct {
	key       string
	value     interface{}
	expiresAt time.Time
}

// LRUCache evicts least-recently-used entries past capacity and lazily
// drops expired ones on read.
type LRUCache struct {
	capacity int
	ttl      time.Duration
	order    *list.List
	items    map[string]*list.Element
	mu       sync.Mutex
}

// New creates an LRU cache holding up to capacity entries, each living
// for ttl after its last write.
func New(capacity int, ttl time.Duration) *LRUCache {
	return &LRUCache{
		capacity: capacity,
		ttl:      ttl,
		order:    list.New(),
		items:    make(map[string]*list.Element),
	}
}

func (c *LRUCache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return nil, false
	}
	e := elem.Value.(*entry)
	if time.Now().After(e.expiresAt) {
		c.remove(elem)
		return nil, false
	}
	c.order.MoveToFront(elem)
	return e.value, true
}

func (c *LRUCache) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := time.Now().Add(c.ttl)
	if elem, ok := c.items[key]; ok {
		e := elem.Value.(*entry)
		e.value = value
		e.expiresAt = expiresAt
		c.order.MoveToFront(elem)
		return
	}

	c.items[key] = c.order.PushFront(&entry{key: key, value: value, expiresAt: expiresAt})
	if c.order.Len() > c.capacity {
		if oldest := c.order.Back(); oldest != nil {
			c.remove(oldest)
		}
	}
}

func (c *LRUCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.remove(elem)
	}
}

func (c *LRUCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.order.Init()
	c.items = make(map[string]*list.Element)
}

// CleanExpired drops every expired entry. Intended to be called from a
// periodic maintenance goroutine.
func (c *LRUCache) CleanExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	var stale []*list.Element
	for elem := c.order.Back(); elem != nil; elem = elem.Prev() {
		if now.After(elem.Value.(*entry).expiresAt) {
			stale = append(stale, elem)
		}
	}
	for _, elem := range stale {
		c.remove(elem)
	}
}

func (c *LRUCache) remove(elem *list.Element) {
	c.order.Remove(elem)
	delete(c.items, elem.Value.(*entry).key)
}

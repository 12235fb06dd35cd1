package cache

import (
	"container/list"
	"sync"
)

// LRUOpts configures an LRU.
type LRUOpts struct {
	// Size is the maximum number of entries. Defaults to 128.
	Size int
}

type entry[K comparable, V any] struct {
	key K
	val V
}

// LRU is a bounded map evicting the least recently used entry once Size is
// exceeded.
type LRU[K comparable, V any] struct {
	mu    sync.Mutex
	size  int
	ll    *list.List
	items map[K]*list.Element
}

// NewLRU creates an LRU.
func NewLRU[K comparable, V any](opts LRUOpts) *LRU[K, V] {
	if opts.Size <= 0 {
		opts.Size = 128
	}
	return &LRU[K, V]{
		size:  opts.Size,
		ll:    list.New(),
		items: make(map[K]*list.Element),
	}
}

func (l *LRU[K, V]) Get(key K) (V, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if ele, ok := l.items[key]; ok {
		l.ll.MoveToFront(ele)
		return ele.Value.(*entry[K, V]).val, true
	}
	var zero V
	return zero, false
}

func (l *LRU[K, V]) Put(key K, val V) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if ele, ok := l.items[key]; ok {
		l.ll.MoveToFront(ele)
		ele.Value.(*entry[K, V]).val = val
		return
	}
	l.items[key] = l.ll.PushFront(&entry[K, V]{key: key, val: val})
	if l.ll.Len() > l.size {
		if last := l.ll.Back(); last != nil {
			l.ll.Remove(last)
			delete(l.items, last.Value.(*entry[K, V]).key)
		}
	}
}

func (l *LRU[K, V]) Delete(key K) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if ele, ok := l.items[key]; ok {
		l.ll.Remove(ele)
		delete(l.items, key)
	}
}

func (l *LRU[K, V]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ll.Len()
}

func (l *LRU[K, V]) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ll.Init()
	l.items = make(map[K]*list.Element)
}

package chat

import "sync"

// Cell is a single-writer observable value. Subscribers are notified
// synchronously, in registration order, and a subscriber added after the
// value was last set receives that value immediately (replay-last).
//
// Writes are expected from one goroutine at a time (the service methods);
// Subscribe and Unsubscribe are safe from any goroutine.
type Cell[T any] struct {
	mu       sync.Mutex
	value    T
	hasValue bool
	nextID   int
	subs     []*cellSub[T]
}

type cellSub[T any] struct {
	id int
	fn func(T)
}

// Subscription detaches a subscriber when released.
type Subscription struct {
	cancel func()
	once   sync.Once
}

// Unsubscribe removes the subscriber. Safe to call more than once and after
// the owning view is gone; late notifications simply stop.
func (s *Subscription) Unsubscribe() {
	s.once.Do(s.cancel)
}

func NewCell[T any]() *Cell[T] {
	return &Cell[T]{}
}

// Get returns the current value and whether one has been set.
func (c *Cell[T]) Get() (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value, c.hasValue
}

// Set stores v and notifies every subscriber in registration order.
func (c *Cell[T]) Set(v T) {
	c.mu.Lock()
	c.value = v
	c.hasValue = true
	subs := make([]*cellSub[T], len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()

	for _, sub := range subs {
		sub.fn(v)
	}
}

// Subscribe registers fn and replays the latest value to it, if any. The
// returned subscription must be released on view teardown.
func (c *Cell[T]) Subscribe(fn func(T)) *Subscription {
	c.mu.Lock()
	c.nextID++
	sub := &cellSub[T]{id: c.nextID, fn: fn}
	c.subs = append(c.subs, sub)
	replay := c.hasValue
	value := c.value
	c.mu.Unlock()

	if replay {
		fn(value)
	}

	return &Subscription{cancel: func() { c.remove(sub.id) }}
}

func (c *Cell[T]) remove(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, sub := range c.subs {
		if sub.id == id {
			c.subs = append(c.subs[:i], c.subs[i+1:]...)
			return
		}
	}
}

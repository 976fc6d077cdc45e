// Package dispatch is the reducer runtime: a per-reducer loop that
// applies one event at a time, and a notifier that fans immutable state
// snapshots out to subscribers after every transition.
package dispatch

import "sync"

// Loop runs events for a single reducer on one goroutine, in order.
// An event is processed to completion, awaited network calls included,
// before the next one starts, so reducer state needs no locking.
type Loop struct {
	mu     sync.Mutex
	events chan func()
	done   chan struct{}
	closed bool
}

func NewLoop() *Loop {
	l := &Loop{
		events: make(chan func(), 64),
		done:   make(chan struct{}),
	}
	go l.run()
	return l
}

func (l *Loop) run() {
	for fn := range l.events {
		fn()
	}
	close(l.done)
}

// Dispatch enqueues fn. It reports false after Close, when events are
// silently dropped rather than applied to a dead reducer.
func (l *Loop) Dispatch(fn func()) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return false
	}
	l.events <- fn
	return true
}

// Close stops the loop after draining already-queued events.
func (l *Loop) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	close(l.events)
	l.mu.Unlock()
	<-l.done
}

// Latest holds the most recently published snapshot for synchronous
// reads, e.g. rendering before any subscription fires.
type Latest[S any] struct {
	mu  sync.RWMutex
	val S
}

func NewLatest[S any](initial S) *Latest[S] {
	return &Latest[S]{val: initial}
}

func (l *Latest[S]) Load() S {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.val
}

func (l *Latest[S]) Store(v S) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.val = v
}

// Notifier delivers state snapshots to subscribers. Delivery happens on
// the reducer's event goroutine, so a slow subscriber delays that one
// reducer only.
type Notifier[S any] struct {
	mu   sync.Mutex
	next int
	subs map[int]func(S)
}

// Subscribe registers fn and returns a cancel func.
func (n *Notifier[S]) Subscribe(fn func(S)) func() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.subs == nil {
		n.subs = make(map[int]func(S))
	}
	id := n.next
	n.next++
	n.subs[id] = fn

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
}

// Publish sends the snapshot to every current subscriber.
func (n *Notifier[S]) Publish(snapshot S) {
	n.mu.Lock()
	fns := make([]func(S), 0, len(n.subs))
	for _, fn := range n.subs {
		fns = append(fns, fn)
	}
	n.mu.Unlock()

	for _, fn := range fns {
		fn(snapshot)
	}
}

package sqlite

import "sync"

// notifier fans snapshots out to subscribers. Each repository embeds one
// and publishes a fresh ordered snapshot after every mutation, matching
// the subscribe → callback → detach contract of the repository interfaces.
// The zero value is ready to use.
type notifier[T any] struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func(T)
}

// subscribe registers fn and returns its detach func. Detaching twice is
// harmless.
func (n *notifier[T]) subscribe(fn func(T)) func() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.subs == nil {
		n.subs = make(map[int]func(T))
	}
	id := n.nextID
	n.nextID++
	n.subs[id] = fn

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
}

func (n *notifier[T]) hasSubscribers() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.subs) > 0
}

// publish calls every subscriber with the snapshot, synchronously and in
// no particular order.
func (n *notifier[T]) publish(snapshot T) {
	n.mu.Lock()
	fns := make([]func(T), 0, len(n.subs))
	for _, fn := range n.subs {
		fns = append(fns, fn)
	}
	n.mu.Unlock()

	for _, fn := range fns {
		fn(snapshot)
	}
}

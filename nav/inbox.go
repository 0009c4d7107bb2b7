package nav

import "sync"

// Inbox moves work onto the UI thread. Post may be called from any goroutine;
// Drain runs the posted functions in order and must only be called from the
// UI thread.
type Inbox struct {
	mu    sync.Mutex
	queue []func()
}

// Post queues fn for the next Drain.
func (b *Inbox) Post(fn func()) {
	if fn == nil {
		return
	}
	b.mu.Lock()
	b.queue = append(b.queue, fn)
	b.mu.Unlock()
}

// Len returns the number of queued functions.
func (b *Inbox) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.queue)
}

// Drain runs everything queued before the call. Functions posted while
// draining wait for the next Drain.
func (b *Inbox) Drain() int {
	b.mu.Lock()
	pending := b.queue
	b.queue = nil
	b.mu.Unlock()

	for _, fn := range pending {
		fn()
	}
	return len(pending)
}

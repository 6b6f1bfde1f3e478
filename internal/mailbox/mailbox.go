// Package mailbox provides a single-slot, latest-wins hand-off between
// goroutines.
package mailbox

import "sync"

// Mailbox holds at most one pending job. It is NOT a queue: Put overwrites
// any job that has not been taken yet.
type Mailbox[T any] struct {
	mu     sync.Mutex
	cond   *sync.Cond
	job    *T
	closed bool
}

// New creates an empty mailbox.
func New[T any]() *Mailbox[T] {
	m := &Mailbox[T]{}
	m.cond = sync.NewCond(&m.mu)
	return m
}

// Put stores a job, replacing any pending one. It never blocks.
// Put on a closed mailbox is a no-op.
func (m *Mailbox[T]) Put(j T) {
	m.mu.Lock()
	if !m.closed {
		m.job = &j
	}
	m.mu.Unlock()
	m.cond.Signal()
}

// Take blocks until a job is available or the mailbox is closed.
// ok is false only after Close with no job pending.
func (m *Mailbox[T]) Take() (job T, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for m.job == nil && !m.closed {
		m.cond.Wait()
	}
	if m.job == nil {
		return job, false
	}

	job = *m.job
	m.job = nil
	return job, true
}

// TryTake returns the pending job, or nil if empty. It never blocks.
func (m *Mailbox[T]) TryTake() *T {
	m.mu.Lock()
	defer m.mu.Unlock()

	j := m.job
	m.job = nil
	return j
}

// Close wakes every blocked Take. A job already pending can still be taken.
func (m *Mailbox[T]) Close() {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	m.cond.Broadcast()
}

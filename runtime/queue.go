package runtime

import (
	"sync/atomic"

	"github.com/odvcencio/plush-ui/state"
)

// wakeGate coalesces wake-up messages so at most one is in flight.
type wakeGate struct {
	pending atomic.Bool
}

func (g *wakeGate) wake(post func(Message) bool, msg Message) {
	if g == nil || post == nil {
		return
	}
	if g.pending.CompareAndSwap(false, true) {
		if !post(msg) {
			g.pending.Store(false)
		}
	}
}

func (g *wakeGate) reset() {
	if g == nil {
		return
	}
	g.pending.Store(false)
}

// QueueFlushPolicy configures when the app flushes the state queue.
type QueueFlushPolicy int

const (
	// FlushOnMessageAndTick flushes on any message or tick.
	FlushOnMessageAndTick QueueFlushPolicy = iota
	// FlushOnMessage flushes on messages except TickMsg.
	FlushOnMessage
	// FlushOnTick flushes only on TickMsg.
	FlushOnTick
	// FlushManual flushes only on QueueFlushMsg.
	FlushManual
)

func shouldFlushQueue(policy QueueFlushPolicy, msg Message) bool {
	if _, ok := msg.(QueueFlushMsg); ok {
		return true
	}
	if policy == FlushManual {
		return false
	}
	_, isTick := msg.(TickMsg)
	switch policy {
	case FlushOnMessage:
		return !isTick
	case FlushOnTick:
		return isTick
	default:
		return true
	}
}

// QueueScheduler enqueues callbacks and wakes the app to flush.
type QueueScheduler struct {
	queue *state.Queue
	post  func(Message) bool
	gate  wakeGate
}

// NewQueueScheduler wires a queue to a post function.
func NewQueueScheduler(queue *state.Queue, post func(Message) bool) *QueueScheduler {
	if queue == nil {
		queue = state.NewQueue()
	}
	return &QueueScheduler{queue: queue, post: post}
}

// Schedule enqueues the callback and posts a flush message.
func (s *QueueScheduler) Schedule(fn func()) {
	if s == nil || fn == nil {
		return
	}
	s.queue.Schedule(fn)
	s.gate.wake(s.post, QueueFlushMsg{})
}

func (s *QueueScheduler) resetPending() {
	if s == nil {
		return
	}
	s.gate.reset()
}

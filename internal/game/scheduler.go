package game

import (
	"context"
	"time"
)

// FrameQueue is a Scheduler drained by the host once per refresh. It is
// not safe for concurrent use; the host and the frame loop share a goroutine.
type FrameQueue struct {
	next  FrameID
	order []FrameID
	fns   map[FrameID]func()
}

func NewFrameQueue() *FrameQueue {
	return &FrameQueue{fns: make(map[FrameID]func())}
}

func (q *FrameQueue) RequestFrame(fn func()) FrameID {
	q.next++
	q.fns[q.next] = fn
	q.order = append(q.order, q.next)
	return q.next
}

func (q *FrameQueue) CancelFrame(id FrameID) {
	delete(q.fns, id)
}

// Pending is the number of requests waiting for the next flush.
func (q *FrameQueue) Pending() int { return len(q.fns) }

// Flush runs the callbacks that were pending when it was called. Requests
// made by those callbacks wait for the next flush. Returns the number run.
func (q *FrameQueue) Flush() int {
	batch := q.order
	q.order = nil
	ran := 0
	for _, id := range batch {
		fn, ok := q.fns[id]
		if !ok {
			continue
		}
		delete(q.fns, id)
		fn()
		ran++
	}
	return ran
}

// RunTicker drains q at rate flushes per second until ctx is done or
// nothing is pending any more.
func RunTicker(ctx context.Context, q *FrameQueue, rate int) error {
	if rate <= 0 {
		rate = TickRate
	}
	ticker := time.NewTicker(time.Second / time.Duration(rate))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			q.Flush()
			if q.Pending() == 0 {
				return nil
			}
		}
	}
}

package session

import (
	"container/heap"
	"time"

	"github.com/vovakirdan/typejump/internal/field"
)

// reenable is a deferred request to restore collision on a platform. It
// only carries the handle, so a platform retired in the meantime is simply
// not found when the request comes due.
type reenable struct {
	due    time.Duration
	seq    uint64
	handle field.Handle
}

// timerQueue is a min-heap of deferred requests ordered by due time, then
// by scheduling order.
type timerQueue []reenable

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].due != q[j].due {
		return q[i].due < q[j].due
	}
	return q[i].seq < q[j].seq
}

func (q timerQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *timerQueue) Push(x any) { *q = append(*q, x.(reenable)) }

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

type scheduler struct {
	queue timerQueue
	seq   uint64
}

func (s *scheduler) schedule(due time.Duration, h field.Handle) {
	s.seq++
	heap.Push(&s.queue, reenable{due: due, seq: s.seq, handle: h})
}

// popDue removes and returns every request due at or before now.
func (s *scheduler) popDue(now time.Duration) []field.Handle {
	var out []field.Handle
	for s.queue.Len() > 0 && s.queue[0].due <= now {
		out = append(out, heap.Pop(&s.queue).(reenable).handle)
	}
	return out
}

func (s *scheduler) pending() int {
	return s.queue.Len()
}

func (s *scheduler) reset() {
	s.queue = s.queue[:0]
}

package kernel

// FrameID identifies a pending frame callback. Zero is never issued.
type FrameID = uint64

type frameReq struct {
	id FrameID
	fn func()
}

// frameQueue holds callbacks for the next tick. Callbacks requested while
// the queue is running land in the following tick.
type frameQueue struct {
	next FrameID
	reqs []frameReq
	live map[FrameID]struct{}
}

func (q *frameQueue) request(fn func()) FrameID {
	if fn == nil {
		return 0
	}
	if q.live == nil {
		q.live = make(map[FrameID]struct{})
	}
	q.next++
	q.reqs = append(q.reqs, frameReq{id: q.next, fn: fn})
	q.live[q.next] = struct{}{}
	return q.next
}

func (q *frameQueue) cancel(id FrameID) bool {
	if _, ok := q.live[id]; !ok {
		return false
	}
	delete(q.live, id)
	return true
}

func (q *frameQueue) len() int { return len(q.live) }

func (q *frameQueue) run() {
	due := q.reqs
	q.reqs = nil
	for _, r := range due {
		if _, ok := q.live[r.id]; !ok {
			continue
		}
		delete(q.live, r.id)
		r.fn()
	}
}

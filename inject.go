package grove

import "log/slog"

type grabEventKind uint8

const (
	grabStart grabEventKind = iota
	grabEnd
)

// grabEvent is a queued grab or release request.
type grabEvent struct {
	kind      grabEventKind
	grabber   GlobalID
	grabbable GlobalID
}

// StartGrab queues a request to anchor grabbable to grabber. The request is
// applied at the top of the next ResolveFrame using the poses of the last
// resolved frame. If either node was absent from that frame the request is
// dropped. Safe to call from any goroutine.
func (r *Renderer) StartGrab(grabber, grabbable GlobalID) {
	r.queueMu.Lock()
	r.queue = append(r.queue, grabEvent{kind: grabStart, grabber: grabber, grabbable: grabbable})
	r.queueMu.Unlock()
}

// EndGrab queues a request to remove grabbable's anchor. Safe to call from
// any goroutine.
func (r *Renderer) EndGrab(grabber, grabbable GlobalID) {
	r.queueMu.Lock()
	r.queue = append(r.queue, grabEvent{kind: grabEnd, grabber: grabber, grabbable: grabbable})
	r.queueMu.Unlock()
}

// drainEvents applies every queued grab event in arrival order.
func (r *Renderer) drainEvents() {
	r.queueMu.Lock()
	events := r.queue
	r.queue = r.drained[:0]
	r.queueMu.Unlock()

	for _, ev := range events {
		switch ev.kind {
		case grabStart:
			if err := r.anchors.startGrab(r.lastFrame, ev.grabber, ev.grabbable); err != nil {
				r.absorb(ev.grabbable, err)
				continue
			}
			r.log.Debug("grab started",
				slog.String("grabber", ev.grabber.String()), slog.String("grabbable", ev.grabbable.String()))
		case grabEnd:
			r.anchors.endGrab(ev.grabber, ev.grabbable)
			r.log.Debug("grab ended",
				slog.String("grabber", ev.grabber.String()), slog.String("grabbable", ev.grabbable.String()))
		}
	}
	clear(events)
	r.drained = events
}

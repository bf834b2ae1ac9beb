package eventbus

import (
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/lsevent/dispatcher/config"
	"github.com/lsevent/dispatcher/internal/core/metrics"
	"github.com/lsevent/dispatcher/pkg/interfaces"
	"github.com/lsevent/dispatcher/pkg/lib/log"
	"github.com/lsevent/dispatcher/pkg/types"
)

// Option configures a Dispatcher at construction time.
type Option func(*Dispatcher)

// WithMetricsConfig attaches Prometheus collectors under cfg's namespace.
// Without this option a Dispatcher tracks no metrics.
func WithMetricsConfig(cfg config.MetricsConfig) Option {
	return func(d *Dispatcher) {
		if !cfg.Enabled {
			return
		}
		d.metrics = NewMetrics(cfg.Namespace)
	}
}

// WithLogger overrides the dispatcher's component logger.
func WithLogger(l *log.LazyLogger) Option {
	return func(d *Dispatcher) {
		d.log = l
	}
}

// WithQueueConfig bounds the moment queue: once cfg.MaxDepth moments are
// waiting, further Trigger calls report types.ErrInvalidState instead of
// enqueueing, and further TriggerPrepared calls enqueue nothing (it has no
// error return). A zero MaxDepth (the default) leaves the queue unbounded.
func WithQueueConfig(cfg config.QueueConfig) Option {
	return func(d *Dispatcher) {
		d.maxQueueDepth = cfg.MaxDepth
	}
}

// WithMemoryConfig sizes the per-moment arena pool's initial token
// capacity from cfg.ArenaHint, avoiding early slice growth for callers
// whose callbacks predictably allocate a handful of pool entries.
func WithMemoryConfig(cfg config.MemoryConfig) Option {
	return func(d *Dispatcher) {
		d.arenaHint = cfg.ArenaHint
	}
}

// Dispatcher coordinates named events and their breadth-first triggering
// for one source. It implements interfaces.Dispatcher.
type Dispatcher struct {
	source interface{}
	events *nameIndex

	queueHead, queueTail *triggerRecord
	queueLen             int
	maxQueueDepth        int
	arenaHint            int

	running        bool
	destroyPending bool
	closed         bool
	currentEvent   *event

	rate    *metrics.RateMeter
	metrics *Metrics
	log     *log.LazyLogger
}

// New creates a dispatcher bound to source.
func New(source interface{}, opts ...Option) (*Dispatcher, error) {
	if _, ok := allocToken(0); !ok {
		return nil, types.NewError("dispatcher_create", types.KindNoMemory, types.ErrNoMemory)
	}

	d := &Dispatcher{
		source: source,
		events: newNameIndex(),
		rate:   metrics.NewRateMeter(),
		log:    log.Logger("eventbus"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Source implements interfaces.Dispatcher.
func (d *Dispatcher) Source() interface{} { return d.source }

// Registry implements interfaces.Dispatcher.
func (d *Dispatcher) Registry() *prometheus.Registry {
	if d.metrics == nil {
		return nil
	}
	return d.metrics.Registry()
}

// isDispatching reports whether e is the event whose binding list is
// currently being walked. Only that event's Bind/Unbind calls need to
// stage their mutation; every other event's calls take effect immediately
// even while the dispatcher as a whole is running.
func (d *Dispatcher) isDispatching(e *event) bool {
	return d.running && d.currentEvent == e
}

// CreateEvent implements interfaces.Dispatcher.
func (d *Dispatcher) CreateEvent(name string) (interfaces.Event, error) {
	if d.closed {
		return nil, types.NewError("create_event", types.KindClosed, types.ErrDispatcherClosed)
	}
	if name == "" {
		return nil, types.NewError("create_event", types.KindInvalidArg, types.ErrInvalidArg)
	}
	if _, exists := d.events.get(name); exists {
		return nil, types.NewError("create_event", types.KindInvalidState, types.ErrInvalidState)
	}
	if _, ok := allocToken(len(name)); !ok {
		return nil, types.NewError("create_event", types.KindNoMemory, types.ErrNoMemory)
	}

	e := newEvent(name, d)
	d.events.putIfAbsent(name, e)
	d.log.Debug("event created", "name", name)
	return e, nil
}

// GetEvent implements interfaces.Dispatcher.
func (d *Dispatcher) GetEvent(name string) (interfaces.Event, bool) {
	e, ok := d.events.get(name)
	if !ok {
		return nil, false
	}
	return e, true
}

// PrepareTrigger implements interfaces.Dispatcher.
func (d *Dispatcher) PrepareTrigger() (interfaces.TriggerRecord, error) {
	if d.closed {
		return nil, types.NewError("prepare_trigger", types.KindClosed, types.ErrDispatcherClosed)
	}
	tok, ok := allocToken(0)
	if !ok {
		return nil, types.NewError("prepare_trigger", types.KindNoMemory, types.ErrNoMemory)
	}
	return &triggerRecord{allocTok: tok, prepared: true}, nil
}

// UnprepareTrigger implements interfaces.Dispatcher.
func (d *Dispatcher) UnprepareTrigger(record interfaces.TriggerRecord) {
	r, ok := record.(*triggerRecord)
	if !ok || r == nil {
		return
	}
	freeToken(r.allocTok)
}

// Destroy implements interfaces.Dispatcher. Once it completes,
// CreateEvent, PrepareTrigger, and Trigger all report
// types.ErrDispatcherClosed instead of operating on the reset dispatcher;
// TriggerPrepared, which has no error return, enqueues nothing.
func (d *Dispatcher) Destroy() {
	if d.running {
		d.destroyPending = true
		return
	}
	d.destroyNow()
}

func (d *Dispatcher) destroyNow() {
	d.events = newNameIndex()
	d.queueHead, d.queueTail = nil, nil
	d.queueLen = 0
	d.closed = true
	d.log.Debug("dispatcher destroyed")
}

// enqueue appends r to the moment queue's tail.
func (d *Dispatcher) enqueue(r *triggerRecord) {
	r.next = nil
	if d.queueTail == nil {
		d.queueHead = r
	} else {
		d.queueTail.next = r
	}
	d.queueTail = r
	d.queueLen++
}

// dequeue pops the moment queue's head, or nil if empty.
func (d *Dispatcher) dequeue() *triggerRecord {
	m := d.queueHead
	if m == nil {
		return nil
	}
	d.queueHead = m.next
	if d.queueHead == nil {
		d.queueTail = nil
	}
	m.next = nil
	d.queueLen--
	return m
}

// trigger is the shared implementation behind Event.Trigger and
// Event.TriggerPrepared. When prepared is non-nil, allocation cannot fail:
// the caller already paid that cost in PrepareTrigger.
func (d *Dispatcher) trigger(e *event, data interface{}, result types.ResultCallback, resultArg interface{}, prepared *triggerRecord) error {
	if d.closed {
		return types.NewError("trigger", types.KindClosed, types.ErrDispatcherClosed)
	}
	if d.maxQueueDepth > 0 && d.queueLen >= d.maxQueueDepth {
		return types.NewError("trigger", types.KindInvalidState, types.ErrInvalidState)
	}

	var r *triggerRecord
	if prepared != nil {
		r = prepared
		r.event = e
		r.data = data
		r.resultCB = result
		r.resultArg = resultArg
		r.handled = false
	} else {
		tok, ok := allocToken(0)
		if !ok {
			return types.NewError("trigger", types.KindNoMemory, types.ErrNoMemory)
		}
		r = &triggerRecord{event: e, data: data, resultCB: result, resultArg: resultArg, allocTok: tok}
	}

	d.enqueue(r)

	if d.running {
		return nil
	}

	d.runLoop()
	return nil
}

// runLoop drains the moment queue breadth-first: each iteration pops the
// head moment, walks its event's bindings to completion (including any
// further moments enqueued along the way, which land at the tail and are
// only reached once every currently queued moment ahead of them has run),
// then moves on. Destruction requested mid-loop is deferred until the
// queue empties.
func (d *Dispatcher) runLoop() {
	d.running = true
	activeDispatches.Add(1)
	defer activeDispatches.Add(-1)

	for {
		m := d.dequeue()
		if m == nil {
			break
		}

		d.currentEvent = m.event
		d.dispatchMoment(m)
		d.currentEvent = nil
	}

	d.running = false
	if d.destroyPending {
		d.destroyPending = false
		d.destroyNow()
	}
}

// dispatchMoment walks m.event's binding list once, invoking every binding
// that is neither pending-add (added during this very walk) nor already
// visited-and-superseded. Per the observed reference behavior a binding
// marked pending-remove during THIS walk still runs if the walk has not
// yet reached it; only the cleanup pass that follows actually unlinks it.
func (d *Dispatcher) dispatchMoment(m *triggerRecord) {
	pool := newArenaPoolWithHint(d.arenaHint)
	evt := &types.EventData{
		MomentID: uuid.New().String(),
		Source:   d.source,
		Name:     m.event.name,
		Notifier: m.event,
		Data:     m.data,
		Pool:     pool,
	}

	d.log.Debug("dispatching moment", "event", m.event.name, "moment_id", evt.MomentID)

	for b := m.event.head; b != nil; b = b.next {
		if b.pendingAdd {
			continue
		}
		b.cb(evt, b.arg)
	}

	d.cleanup(m.event)
	d.rate.Add(1)
	if d.metrics != nil {
		d.metrics.ObserveTrigger(m.event.name, evt.Handled)
	}

	if m.resultCB != nil {
		m.resultCB(evt, evt.Handled, m.resultArg)
	}

	pool.release()
	if !m.prepared {
		freeToken(m.allocTok)
	}
}

// cleanup unlinks every pending-remove binding and clears pending-add on
// every binding that survives, once per event per completed walk.
func (d *Dispatcher) cleanup(e *event) {
	var prev *binding
	b := e.head
	for b != nil {
		next := b.next
		if b.pendingRemove {
			if prev == nil {
				e.head = next
			} else {
				prev.next = next
			}
			if e.tail == b {
				e.tail = prev
			}
			b = next
			continue
		}
		b.pendingAdd = false
		prev = b
		b = next
	}
}

var _ interfaces.Dispatcher = (*Dispatcher)(nil)

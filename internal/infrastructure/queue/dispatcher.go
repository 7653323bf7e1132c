package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/taskhive/todo-api/internal/core/domain"
	"github.com/taskhive/todo-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes activity events to a fixed set of workers using
// consistent hashing on the todo id, so events for the same todo are
// recorded in the order the operations happened.
type Dispatcher struct {
	workers []chan domain.ActivityEvent
	service ports.ActivityService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.ActivityService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.ActivityEvent, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.ActivityEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Publish sends an event to the worker responsible for its todo. If the
// worker's buffer is full the event is dropped rather than stalling the
// request path; the audit feed is best-effort.
func (d *Dispatcher) Publish(event domain.ActivityEvent) {
	idx := d.shardIndex(event.TodoID)
	select {
	case d.workers[idx] <- event:
		activityQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		activityErrorsTotal.WithLabelValues("queue_full").Inc()
		d.log.Warn().Str("todo_id", event.TodoID).Int("worker_id", idx).Msg("activity queue full, event dropped")
	}
}

// shardIndex maps a todo id deterministically to a worker index.
func (d *Dispatcher) shardIndex(todoID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(todoID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.ActivityEvent) {
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			activityQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			if err := d.service.Record(ctx, event); err != nil {
				activityErrorsTotal.WithLabelValues("record_failed").Inc()
				d.log.Error().Err(err).
					Str("todo_id", event.TodoID).
					Int("worker_id", id).
					Msg("activity recording failed")
				continue
			}
			activityRecordedTotal.WithLabelValues(string(event.Action)).Inc()
		}
	}
}

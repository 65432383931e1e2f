package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/talentbridge/referral-system/internal/api/metrics"
	"github.com/talentbridge/referral-system/internal/core/domain"
	"github.com/talentbridge/referral-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes candidate activity events to a fixed set of workers using
// consistent hashing on the candidate id, so events for one candidate are
// recorded in the order they were published.
type Dispatcher struct {
	workers []chan domain.ActivityEvent
	service ports.ActivityService
	log     zerolog.Logger
	wg      sync.WaitGroup

	mu     sync.RWMutex
	closed bool
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

// Start launches all worker goroutines. Workers drain their queues and exit
// after Close. Cancelling ctx aborts them immediately and drops whatever is
// still buffered, so callers should cancel only after Wait returns or a
// drain deadline has passed.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Close stops accepting events and lets every worker finish its queue.
// It is safe to call more than once.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.closed = true
	for _, ch := range d.workers {
		close(ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Publish hands an event to the worker responsible for its candidate. It never
// blocks: when that worker's buffer is full the event is dropped and logged.
// Events published after Close are dropped the same way.
func (d *Dispatcher) Publish(event domain.ActivityEvent) {
	idx := d.shardIndex(event.CandidateID)

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		metrics.ActivityEventsTotal.WithLabelValues(string(event.Kind), "dropped").Inc()
		d.log.Warn().
			Str("candidate_id", event.CandidateID).
			Str("kind", string(event.Kind)).
			Msg("activity dispatcher closed, event dropped")
		return
	}
	select {
	case d.workers[idx] <- event:
		metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		metrics.ActivityEventsTotal.WithLabelValues(string(event.Kind), "dropped").Inc()
		d.log.Warn().
			Str("candidate_id", event.CandidateID).
			Str("kind", string(event.Kind)).
			Int("worker_id", idx).
			Msg("activity queue full, event dropped")
	}
}

// shardIndex maps a candidate id deterministically to a worker index.
func (d *Dispatcher) shardIndex(candidateID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(candidateID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.ActivityEvent) {
	defer d.wg.Done()
	label := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			d.log.Warn().Int("worker_id", id).Int("pending", len(ch)).Msg("activity worker aborted")
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.ActivityQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
			d.record(ctx, id, event)
		}
	}
}

func (d *Dispatcher) record(ctx context.Context, id int, event domain.ActivityEvent) {
	start := time.Now()
	err := d.service.Record(ctx, event)
	metrics.ActivityRecordDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.ActivityEventsTotal.WithLabelValues(string(event.Kind), "failed").Inc()
		d.log.Error().Err(err).
			Str("candidate_id", event.CandidateID).
			Str("kind", string(event.Kind)).
			Int("worker_id", id).
			Msg("activity recording failed")
		return
	}
	metrics.ActivityEventsTotal.WithLabelValues(string(event.Kind), "recorded").Inc()
}

package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/folioreads/folio-admin/internal/domain"
	"github.com/folioreads/folio-admin/internal/metrics"
	"github.com/folioreads/folio-admin/internal/models"
)

// Auditor is an alias for the canonical domain.Auditor interface.
type Auditor = domain.Auditor

// AuditEnqueuer accepts audit entries for asynchronous persistence.
type AuditEnqueuer interface {
	Enqueue(e *models.AuditEntry)
}

// EventBroadcaster receives committed audit entries for live distribution.
type EventBroadcaster interface {
	BroadcastAudit(e *models.AuditEntry)
}

// AuditWorker buffers audit entries and writes them via a single worker
// goroutine. Producers never block and never observe failures: a full queue
// drops the entry, and a persistent write failure drops it after the retry
// budget. Both cases are logged and counted for operators.
type AuditWorker struct {
	auditor     Auditor
	log         *logrus.Logger
	jobs        chan *models.AuditEntry
	maxAttempts int
	broadcaster EventBroadcaster
}

// Per-job write limits.
const (
	defaultAuditQueueSize   = 1000
	defaultAuditMaxAttempts = 3
	auditWriteTimeout       = 10 * time.Second
	auditRetryBackoff       = 100 * time.Millisecond
)

// NewAuditWorker creates an AuditWorker with the given queue capacity and
// per-entry retry budget.
func NewAuditWorker(auditor Auditor, log *logrus.Logger, queueSize, maxAttempts int) *AuditWorker {
	if queueSize <= 0 {
		queueSize = defaultAuditQueueSize
	}
	if maxAttempts <= 0 {
		maxAttempts = defaultAuditMaxAttempts
	}
	return &AuditWorker{
		auditor:     auditor,
		log:         log,
		jobs:        make(chan *models.AuditEntry, queueSize),
		maxAttempts: maxAttempts,
	}
}

// SetBroadcaster wires an optional live feed. Must be called before Run.
func (w *AuditWorker) SetBroadcaster(b EventBroadcaster) {
	w.broadcaster = b
}

// Enqueue adds an audit entry. Non-blocking; drops the entry if the queue is full.
func (w *AuditWorker) Enqueue(e *models.AuditEntry) {
	select {
	case w.jobs <- e:
		metrics.AuditQueueDepth.Set(float64(len(w.jobs)))
	default:
		metrics.AuditDropsTotal.Inc()
		w.log.WithField("action", e.Action).Warn("audit queue full, dropping entry")
	}
}

// Run processes audit entries until the context is cancelled, then drains
// remaining entries. Cancellation of a producer's request never retracts an
// entry that has already been enqueued.
func (w *AuditWorker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			w.drain()
			return
		case e := <-w.jobs:
			w.process(e)
		}
	}
}

func (w *AuditWorker) drain() {
	for {
		select {
		case e := <-w.jobs:
			w.process(e)
		default:
			return
		}
	}
}

// process writes one entry, retrying up to the budget before dropping it.
// The write uses a background context: the producing request has already
// completed and its cancellation must not affect the append.
func (w *AuditWorker) process(e *models.AuditEntry) {
	defer metrics.AuditQueueDepth.Set(float64(len(w.jobs)))

	var lastErr error

	for attempt := 1; attempt <= w.maxAttempts; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), auditWriteTimeout)
		lastErr = w.auditor.RecordAudit(ctx, e)
		cancel()

		if lastErr == nil {
			if w.broadcaster != nil {
				w.broadcaster.BroadcastAudit(e)
			}
			return
		}

		if attempt < w.maxAttempts {
			time.Sleep(time.Duration(attempt) * auditRetryBackoff)
		}
	}

	metrics.AuditDropsTotal.Inc()
	w.log.WithError(lastErr).WithFields(logrus.Fields{
		"action":   e.Action,
		"attempts": w.maxAttempts,
	}).Warn("audit record failed, dropping entry")
}

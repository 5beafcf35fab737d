package service

import (
	"context"
	"sync"
	"time"

	commoncrypto "github.com/driftmail/newsletter-backend/internal/common/crypto"
	commonerrors "github.com/driftmail/newsletter-backend/internal/common/errors"
	"github.com/driftmail/newsletter-backend/internal/observability/metrics"
)

type verifyJob struct {
	storedHash commoncrypto.Secret
	candidate  commoncrypto.Secret
	result     chan error
}

// VerifyPool runs Argon2id comparisons on a fixed set of worker goroutines
// so the deliberately expensive hashing never executes on a request
// goroutine. The job queue is bounded; a full queue rejects the submission
// instead of queueing unbounded CPU work.
type VerifyPool struct {
	hasher commoncrypto.PasswordHasher
	jobs   chan verifyJob
	wg     sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

func NewVerifyPool(hasher commoncrypto.PasswordHasher, workers, queueSize int) *VerifyPool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}

	p := &VerifyPool{
		hasher: hasher,
		jobs:   make(chan verifyJob, queueSize),
	}

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}

	return p
}

func (p *VerifyPool) worker() {
	defer p.wg.Done()
	for job := range p.jobs {
		metrics.VerifierQueueDepth.Dec()

		start := time.Now()
		err := p.hasher.Compare(job.storedHash, job.candidate)
		metrics.PasswordVerificationDurationSeconds.Observe(time.Since(start).Seconds())

		job.result <- err
	}
}

// Verify submits one comparison and blocks until a worker reports back or
// ctx is done. A saturated queue surfaces as ErrVerifierSaturated, which
// callers must treat as an internal failure, never a credential failure.
func (p *VerifyPool) Verify(ctx context.Context, storedHash, candidate commoncrypto.Secret) error {
	job := verifyJob{
		storedHash: storedHash,
		candidate:  candidate,
		result:     make(chan error, 1),
	}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return commonerrors.ErrVerifierSaturated.WithCause(errPoolClosed)
	}

	select {
	case p.jobs <- job:
		metrics.VerifierQueueDepth.Inc()
		p.mu.Unlock()
	default:
		p.mu.Unlock()
		metrics.VerifierSaturatedTotal.Inc()
		return commonerrors.ErrVerifierSaturated
	}

	select {
	case err := <-job.result:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown stops accepting work and waits for in-flight comparisons.
func (p *VerifyPool) Shutdown() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.jobs)
	p.mu.Unlock()

	p.wg.Wait()
}

package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/driftmail/newsletter-backend/internal/auth/service"
	commoncrypto "github.com/driftmail/newsletter-backend/internal/common/crypto"
	commonerrors "github.com/driftmail/newsletter-backend/internal/common/errors"
)

func TestVerifyPool_Verify_ReturnsWorkerResult(t *testing.T) {
	want := errors.New("comparison failed")
	hasher := &mockHasher{
		compareFunc: func(encodedHash, password commoncrypto.Secret) error {
			return want
		},
	}

	pool := service.NewVerifyPool(hasher, 1, 4)
	defer pool.Shutdown()

	err := pool.Verify(context.Background(), commoncrypto.NewSecret("hash"), commoncrypto.NewSecret("pw"))

	if !errors.Is(err, want) {
		t.Fatalf("expected worker error, got %v", err)
	}
}

func TestVerifyPool_Verify_Saturation(t *testing.T) {
	block := make(chan struct{})
	hasher := &mockHasher{
		compareFunc: func(encodedHash, password commoncrypto.Secret) error {
			<-block
			return nil
		},
	}

	pool := service.NewVerifyPool(hasher, 1, 1)

	// Occupy the single worker, then fill the single queue slot.
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = pool.Verify(context.Background(), commoncrypto.NewSecret("hash"), commoncrypto.NewSecret("pw"))
		}()
	}

	// Wait until the worker has picked up a job and the queue is full. A
	// probe submitted before that can land in the queue, so bound each
	// probe with a short context.
	deadline := time.Now().Add(2 * time.Second)
	for {
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		err := pool.Verify(ctx, commoncrypto.NewSecret("hash"), commoncrypto.NewSecret("pw"))
		cancel()

		if errors.Is(err, commonerrors.ErrVerifierSaturated) {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("pool never reported saturation")
		}
		time.Sleep(10 * time.Millisecond)
	}

	close(block)
	wg.Wait()
	pool.Shutdown()
}

func TestVerifyPool_Verify_ContextCancelled(t *testing.T) {
	block := make(chan struct{})
	defer close(block)

	hasher := &mockHasher{
		compareFunc: func(encodedHash, password commoncrypto.Secret) error {
			<-block
			return nil
		},
	}

	pool := service.NewVerifyPool(hasher, 1, 4)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := pool.Verify(ctx, commoncrypto.NewSecret("hash"), commoncrypto.NewSecret("pw"))

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestVerifyPool_Verify_AfterShutdown(t *testing.T) {
	hasher := &mockHasher{}

	pool := service.NewVerifyPool(hasher, 1, 4)
	pool.Shutdown()

	err := pool.Verify(context.Background(), commoncrypto.NewSecret("hash"), commoncrypto.NewSecret("pw"))

	if !errors.Is(err, commonerrors.ErrVerifierSaturated) {
		t.Fatalf("expected rejection after shutdown, got %v", err)
	}
}

func TestVerifyPool_Shutdown_Idempotent(t *testing.T) {
	pool := service.NewVerifyPool(&mockHasher{}, 1, 1)
	pool.Shutdown()
	pool.Shutdown()
}

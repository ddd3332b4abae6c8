package database

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

func TestMongoProvider_CachesClient(t *testing.T) {
	dials := 0
	provider := NewMongoProviderWithDialer(func(ctx context.Context) (*mongo.Client, error) {
		dials++
		// Connect does not reach the server until an operation runs.
		return mongo.Connect(options.Client().ApplyURI("mongodb://localhost:27017"))
	})

	first, err := provider.Client(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := provider.Client(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Fatalf("expected the same client to be returned")
	}
	if dials != 1 {
		t.Fatalf("expected one dial, got %d", dials)
	}
	if err := provider.Close(context.Background()); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestMongoProvider_RetriesAfterFailure(t *testing.T) {
	dials := 0
	provider := NewMongoProviderWithDialer(func(ctx context.Context) (*mongo.Client, error) {
		dials++
		if dials == 1 {
			return nil, errors.New("server selection timeout")
		}
		return mongo.Connect(options.Client().ApplyURI("mongodb://localhost:27017"))
	})

	if _, err := provider.Client(context.Background()); err == nil {
		t.Fatalf("expected first dial to fail")
	}
	if _, err := provider.Client(context.Background()); err != nil {
		t.Fatalf("expected second dial to succeed, got %v", err)
	}
	if dials != 2 {
		t.Fatalf("expected failed dial not to be cached, got %d dials", dials)
	}
	_ = provider.Close(context.Background())
}

func TestMongoProvider_NotConfigured(t *testing.T) {
	provider := NewMongoProvider("")
	if _, err := provider.Client(context.Background()); !errors.Is(err, ErrMongoNotConfigured) {
		t.Fatalf("expected ErrMongoNotConfigured, got %v", err)
	}
	if err := provider.Close(context.Background()); err != nil {
		t.Fatalf("close without client should be a no-op, got %v", err)
	}
}

func TestMongoProvider_ConcurrentCallersShareDial(t *testing.T) {
	var dials atomic.Int32
	entered := make(chan struct{})
	release := make(chan struct{})
	provider := NewMongoProviderWithDialer(func(ctx context.Context) (*mongo.Client, error) {
		if dials.Add(1) == 1 {
			close(entered)
		}
		<-release
		return nil, errors.New("server selection timeout")
	})

	const callers = 5
	errs := make(chan error, callers)
	var started, done sync.WaitGroup
	started.Add(callers)
	done.Add(callers)
	for i := 0; i < callers; i++ {
		go func() {
			defer done.Done()
			started.Done()
			_, err := provider.Client(context.Background())
			errs <- err
		}()
	}

	started.Wait()
	<-entered
	// Give the remaining callers time to join the in-flight dial.
	time.Sleep(50 * time.Millisecond)
	close(release)
	done.Wait()
	close(errs)

	for err := range errs {
		if err == nil {
			t.Fatalf("expected every caller to see the dial failure")
		}
	}
	if got := dials.Load(); got != 1 {
		t.Fatalf("expected one shared dial, got %d", got)
	}

	// The failure is not cached.
	if _, err := provider.Client(context.Background()); err == nil {
		t.Fatalf("expected a fresh dial to fail again")
	}
	if got := dials.Load(); got != 2 {
		t.Fatalf("expected a retry after the shared failure, got %d dials", got)
	}
}

func TestMongoProvider_DialOutlivesCanceledCaller(t *testing.T) {
	provider := NewMongoProviderWithDialer(func(ctx context.Context) (*mongo.Client, error) {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return mongo.Connect(options.Client().ApplyURI("mongodb://localhost:27017"))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := provider.Client(ctx); err != nil {
		t.Fatalf("expected dial to ignore caller cancellation, got %v", err)
	}
	_ = provider.Close(context.Background())
}

package event

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shandysiswandi/tableview/internal/tableview/entity"
)

type handlerFunc func(ctx context.Context, event entity.TableEvent) error

func (h handlerFunc) Handle(ctx context.Context, event entity.TableEvent) error {
	return h(ctx, event)
}

func TestConsumerRetriesUntilSuccess(t *testing.T) {
	bus := NewBus(10)

	var attempts int32
	done := make(chan struct{})
	handler := handlerFunc(func(ctx context.Context, event entity.TableEvent) error {
		n := atomic.AddInt32(&attempts, 1)
		if n < 3 {
			return errors.New("temporary failure")
		}
		close(done)
		return nil
	})

	consumer := NewConsumer(bus, handler, ConsumerConfig{
		Workers:     1,
		MaxRetries:  2,
		BaseBackoff: time.Millisecond,
	})
	consumer.Start()

	if err := bus.Publish(context.Background(), entity.TableEvent{EventID: "evt-1", Kind: entity.TableEventStored}); err != nil {
		t.Fatalf("publish event: %v", err)
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for handler")
	}

	if err := consumer.Stop(context.Background()); err != nil {
		t.Fatalf("stop consumer: %v", err)
	}

	if got := atomic.LoadInt32(&attempts); got != 3 {
		t.Fatalf("expected 3 attempts, got %d", got)
	}
}

func TestConsumerGivesUpAfterMaxRetries(t *testing.T) {
	bus := NewBus(10)

	var attempts int32
	handler := handlerFunc(func(ctx context.Context, event entity.TableEvent) error {
		atomic.AddInt32(&attempts, 1)
		return errors.New("permanent failure")
	})

	consumer := NewConsumer(bus, handler, ConsumerConfig{Workers: 1, MaxRetries: 1, BaseBackoff: time.Millisecond})
	consumer.Start()

	if err := bus.Publish(context.Background(), entity.TableEvent{EventID: "evt-1"}); err != nil {
		t.Fatalf("publish event: %v", err)
	}

	// Stop drains the bus before returning.
	if err := consumer.Stop(context.Background()); err != nil {
		t.Fatalf("stop consumer: %v", err)
	}

	if got := atomic.LoadInt32(&attempts); got != 2 {
		t.Fatalf("expected 2 attempts, got %d", got)
	}
}

func TestBusPublishFullAndClosed(t *testing.T) {
	bus := NewBus(1)
	ctx := context.Background()

	if err := bus.Publish(ctx, entity.TableEvent{EventID: "a"}); err != nil {
		t.Fatalf("publish first: %v", err)
	}
	if err := bus.Publish(ctx, entity.TableEvent{EventID: "b"}); !errors.Is(err, ErrBusFull) {
		t.Fatalf("expected ErrBusFull, got %v", err)
	}

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	if err := bus.Publish(canceled, entity.TableEvent{EventID: "c"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	bus.Close()
	bus.Close()
	if err := bus.Publish(ctx, entity.TableEvent{EventID: "d"}); !errors.Is(err, ErrBusClosed) {
		t.Fatalf("expected ErrBusClosed, got %v", err)
	}
}

func TestConsumerStopHonorsContext(t *testing.T) {
	bus := NewBus(1)
	release := make(chan struct{})
	started := make(chan struct{})
	handler := handlerFunc(func(ctx context.Context, event entity.TableEvent) error {
		close(started)
		<-release
		return nil
	})

	consumer := NewConsumer(bus, handler, ConsumerConfig{Workers: 1})
	consumer.Start()
	if err := bus.Publish(context.Background(), entity.TableEvent{EventID: "slow"}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := consumer.Stop(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}

	close(release)
}

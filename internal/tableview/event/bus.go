package event

import (
	"context"
	"errors"
	"sync"

	"github.com/shandysiswandi/tableview/internal/tableview/entity"
)

var (
	ErrBusClosed = errors.New("event bus is closed")
	ErrBusFull   = errors.New("event bus is full")
)

// Bus is a bounded in-process queue of table events. Publish never waits for
// room: a full bus drops the event and reports ErrBusFull, so a slow observer
// cannot stall uploads or queries.
type Bus struct {
	mu     sync.RWMutex
	closed bool
	ch     chan entity.TableEvent
}

func NewBus(buffer int) *Bus {
	if buffer < 1 {
		buffer = 1
	}

	return &Bus{
		ch: make(chan entity.TableEvent, buffer),
	}
}

func (b *Bus) Publish(ctx context.Context, event entity.TableEvent) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return ErrBusClosed
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	select {
	case b.ch <- event:
		return nil
	default:
		return ErrBusFull
	}
}

func (b *Bus) Subscribe() <-chan entity.TableEvent {
	return b.ch
}

func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	b.closed = true
	close(b.ch)
}

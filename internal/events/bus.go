// Package events fans frames out to every subscriber watching a viewer
// session, e.g. SSE connections.
package events

import (
	"context"
	"sync"
	"time"

	"github.com/soochol/ralphflow/internal/reveal"
)

// FrameEvent is published after every state change of a session.
type FrameEvent struct {
	SessionID string       `json:"session_id"`
	Seq       int64        `json:"seq"`
	Op        reveal.Op    `json:"op,omitempty"`
	Frame     reveal.Frame `json:"frame"`
	Timestamp time.Time    `json:"timestamp"`
}

type Handler func(FrameEvent)

type Bus struct {
	mu       sync.RWMutex
	nextID   int
	handlers map[int]Handler
}

func NewBus() *Bus {
	return &Bus{handlers: make(map[int]Handler)}
}

// Subscribe registers handler and returns a function that removes it.
func (b *Bus) Subscribe(handler Handler) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	b.handlers[id] = handler
	return func() {
		b.mu.Lock()
		delete(b.handlers, id)
		b.mu.Unlock()
	}
}

func (b *Bus) Publish(event FrameEvent) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.handlers))
	for _, h := range b.handlers {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()
	for _, h := range handlers {
		h(event)
	}
}

// Channel delivers the events of one session until ctx is done. A slow reader
// never blocks publishers: when its buffer is full the oldest queued frame is
// dropped, so the latest state always arrives.
func (b *Bus) Channel(ctx context.Context, sessionID string, bufSize int) <-chan FrameEvent {
	if bufSize < 1 {
		bufSize = 1
	}
	ch := make(chan FrameEvent, bufSize)
	var mu sync.Mutex
	closed := false
	unsubscribe := b.Subscribe(func(e FrameEvent) {
		if e.SessionID != sessionID {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		if closed {
			return
		}
		for {
			select {
			case ch <- e:
				return
			default:
			}
			select {
			case <-ch:
			default:
			}
		}
	})
	go func() {
		<-ctx.Done()
		unsubscribe()
		mu.Lock()
		closed = true
		close(ch)
		mu.Unlock()
	}()
	return ch
}

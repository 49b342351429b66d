package seatunnel

import (
	"sync"

	"github.com/goliatone/go-taskform/pkg/model"
	"github.com/goliatone/go-taskform/pkg/reactive"
	"github.com/goliatone/go-taskform/pkg/selection"
	"github.com/goliatone/go-taskform/pkg/signals"
)

// SchemaListener receives every schema rebuilt by a Live projection.
type SchemaListener func(model.Schema)

// Live keeps a schema in step with a reactive store. The schema is rebuilt
// synchronously on every store update from the store's latest revision, so
// notifications delivered out of order never leave it behind the store.
type Live struct {
	gen   *Generator
	store *reactive.Store

	mu        sync.RWMutex
	schema    model.Schema
	revision  uint64
	nextID    int
	listeners map[int]SchemaListener
	order     []int

	cancel func()
}

// Bind subscribes a Live projection to store.
func (g *Generator) Bind(store *reactive.Store) *Live {
	live := &Live{
		gen:       g,
		store:     store,
		listeners: make(map[int]SchemaListener),
	}
	state, revision := store.Current()
	live.schema = g.Generate(state)
	live.revision = revision
	live.cancel = store.Subscribe(func(selection.State, signals.Signals) {
		live.refresh()
	})
	return live
}

func (l *Live) refresh() {
	state, revision := l.store.Current()
	schema := l.gen.Generate(state)

	l.mu.Lock()
	if revision <= l.revision {
		l.mu.Unlock()
		return
	}
	l.schema = schema
	l.revision = revision
	listeners := make([]SchemaListener, 0, len(l.order))
	for _, id := range l.order {
		listeners = append(listeners, l.listeners[id])
	}
	l.mu.Unlock()

	for _, fn := range listeners {
		fn(schema)
	}
}

// Schema returns the schema built for the latest store revision.
func (l *Live) Schema() model.Schema {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.schema
}

// Revision reports the store revision the current schema was built from.
func (l *Live) Revision() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.revision
}

// Subscribe registers fn and returns a function that removes it.
func (l *Live) Subscribe(fn SchemaListener) func() {
	if fn == nil {
		return func() {}
	}
	l.mu.Lock()
	id := l.nextID
	l.nextID++
	l.listeners[id] = fn
	l.order = append(l.order, id)
	l.mu.Unlock()

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if _, ok := l.listeners[id]; !ok {
			return
		}
		delete(l.listeners, id)
		for i, candidate := range l.order {
			if candidate == id {
				l.order = append(l.order[:i:i], l.order[i+1:]...)
				break
			}
		}
	}
}

// Close detaches the projection from its store.
func (l *Live) Close() {
	if l.cancel != nil {
		l.cancel()
	}
}

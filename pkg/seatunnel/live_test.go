package seatunnel

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-taskform/pkg/model"
	"github.com/goliatone/go-taskform/pkg/reactive"
	"github.com/goliatone/go-taskform/pkg/selection"
	"github.com/goliatone/go-taskform/pkg/signals"
)

func TestLiveConvergesOnOutOfOrderNotifications(t *testing.T) {
	t.Parallel()

	initial := selection.Default()
	initial.UseCustom = false
	store := reactive.NewStore(initial)

	// The first subscriber holds the first notification until released, so
	// the second update reaches Live before the first one does.
	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	store.Subscribe(func(selection.State, signals.Signals) {
		first := false
		once.Do(func() { first = true })
		if first {
			close(entered)
			<-release
		}
	})

	live := New().Bind(store)
	defer live.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		store.Update(func(s *selection.State) { s.UseCustom = true })
	}()
	<-entered

	store.Update(func(s *selection.State) { s.UseCustom = false })
	close(release)
	<-done

	want := store.Signals()
	got := live.Schema().Signals
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("live signals diverged from store (-want +got):\n%s", diff)
	}
	if got.UseCustom || got.ResourceEditorSpan != signals.Full {
		t.Fatalf("expected resource editor after the last update, got %+v", got)
	}
	if live.Revision() != store.Revision() {
		t.Fatalf("revision mismatch: live %d, store %d", live.Revision(), store.Revision())
	}
}

func TestLiveSkipsRedundantRefresh(t *testing.T) {
	t.Parallel()

	store := reactive.NewStore(selection.Default())
	live := New().Bind(store)
	defer live.Close()

	calls := 0
	live.Subscribe(func(_ model.Schema) { calls++ })

	store.Update(func(s *selection.State) { s.UseCustom = false })
	live.refresh()
	if calls != 1 {
		t.Fatalf("expected one notification per revision, got %d", calls)
	}
}

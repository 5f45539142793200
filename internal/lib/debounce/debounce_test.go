package debounce

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	mu      sync.Mutex
	applied []string
}

func (r *recorder) apply(v string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.applied = append(r.applied, v)
}

func (r *recorder) values() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.applied...)
}

func value(v string) func(context.Context) (string, error) {
	return func(context.Context) (string, error) { return v, nil }
}

func TestOnlyLastRequestIsApplied(t *testing.T) {
	d := New[string](30 * time.Millisecond)
	defer d.Stop()
	rec := &recorder{}
	var computed atomic.Int32

	for _, term := range []string{"d", "du", "dun", "dune"} {
		d.Schedule(context.Background(), func(context.Context) (string, error) {
			computed.Add(1)
			return term, nil
		}, rec.apply)
	}

	assert.Eventually(t, func() bool { return len(rec.values()) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, []string{"dune"}, rec.values())
	assert.EqualValues(t, 1, computed.Load())
}

func TestStaleResultIsDropped(t *testing.T) {
	d := New[string](time.Millisecond)
	defer d.Stop()
	rec := &recorder{}
	started := make(chan struct{})
	release := make(chan struct{})

	d.Schedule(context.Background(), func(ctx context.Context) (string, error) {
		close(started)
		<-release
		return "stale", nil
	}, rec.apply)
	<-started

	d.Schedule(context.Background(), value("fresh"), rec.apply)
	assert.Eventually(t, func() bool { return len(rec.values()) == 1 }, time.Second, 5*time.Millisecond)
	close(release)

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, []string{"fresh"}, rec.values())
}

func TestSupersededComputeIsCancelled(t *testing.T) {
	d := New[string](time.Millisecond)
	defer d.Stop()
	started := make(chan struct{})
	cancelled := make(chan struct{})

	d.Schedule(context.Background(), func(ctx context.Context) (string, error) {
		close(started)
		<-ctx.Done()
		close(cancelled)
		return "", ctx.Err()
	}, func(string) {})
	<-started
	d.Schedule(context.Background(), value("next"), func(string) {})

	select {
	case <-cancelled:
	case <-time.After(time.Second):
		t.Fatal("superseded compute was not cancelled")
	}
}

func TestStop(t *testing.T) {
	d := New[string](20 * time.Millisecond)
	rec := &recorder{}

	d.Schedule(context.Background(), value("pending"), rec.apply)
	d.Stop()
	d.Schedule(context.Background(), value("after stop"), rec.apply)

	time.Sleep(60 * time.Millisecond)
	assert.Empty(t, rec.values())
}

func TestSequentialRequestsAreAllApplied(t *testing.T) {
	d := New[string](time.Millisecond)
	defer d.Stop()
	rec := &recorder{}

	d.Schedule(context.Background(), value("first"), rec.apply)
	assert.Eventually(t, func() bool { return len(rec.values()) == 1 }, time.Second, time.Millisecond)
	d.Schedule(context.Background(), value("second"), rec.apply)
	assert.Eventually(t, func() bool { return len(rec.values()) == 2 }, time.Second, time.Millisecond)
	assert.Equal(t, []string{"first", "second"}, rec.values())
}

func TestScheduleDoesNotWaitForApply(t *testing.T) {
	d := New[string](time.Millisecond)
	defer d.Stop()
	applying := make(chan struct{})
	release := make(chan struct{})

	d.Schedule(context.Background(), value("slow"), func(string) {
		close(applying)
		<-release
	})
	<-applying

	scheduled := make(chan struct{})
	go func() {
		d.Schedule(context.Background(), value("next"), func(string) {})
		close(scheduled)
	}()
	select {
	case <-scheduled:
	case <-time.After(time.Second):
		t.Fatal("Schedule blocked on a running apply")
	}
	close(release)
}

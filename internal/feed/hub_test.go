package feed_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/portfolio-content-api/internal/feed"
	"github.com/portfolio-content-api/internal/mocks"
	"github.com/portfolio-content-api/internal/models"
	"github.com/rs/zerolog"
)

func recvSnapshot(t *testing.T, ch <-chan models.Snapshot, timeout time.Duration) models.Snapshot {
	t.Helper()
	select {
	case snap := <-ch:
		return snap
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for snapshot")
	}
	return models.Snapshot{}
}

func expectNoSnapshot(t *testing.T, ch <-chan models.Snapshot) {
	t.Helper()
	select {
	case snap := <-ch:
		t.Fatalf("unexpected snapshot delivered: %+v", snap)
	case <-time.After(75 * time.Millisecond):
	}
}

func TestHub_DeliversCurrentSnapshotOnSubscribe(t *testing.T) {
	repo := mocks.NewMockDocumentRepository()
	repo.SetJSON("education", `{"e1":{"status":"active"}}`)
	hub := feed.NewHub(repo, time.Second, zerolog.Nop())
	defer hub.Close()

	got := make(chan models.Snapshot, 4)
	cancel := hub.Subscribe("education", func(s models.Snapshot) { got <- s }, func(error) {
		t.Error("unexpected feed error")
	})
	defer cancel()

	snap := recvSnapshot(t, got, time.Second)
	if snap.Kind != models.SnapshotMapping || len(snap.Entries) != 1 {
		t.Errorf("Expected 1-entry mapping, got %s with %d entries", snap.Kind, len(snap.Entries))
	}
}

func TestHub_AbsentPathIsSnapshotNotError(t *testing.T) {
	repo := mocks.NewMockDocumentRepository()
	hub := feed.NewHub(repo, time.Second, zerolog.Nop())
	defer hub.Close()

	var errCount atomic.Int32
	got := make(chan models.Snapshot, 1)
	cancel := hub.Subscribe("projects", func(s models.Snapshot) { got <- s }, func(error) { errCount.Add(1) })
	defer cancel()

	snap := recvSnapshot(t, got, time.Second)
	if snap.Kind != models.SnapshotAbsent {
		t.Errorf("Expected absent snapshot, got %s", snap.Kind)
	}
	if errCount.Load() != 0 {
		t.Errorf("Expected no error callbacks, got %d", errCount.Load())
	}
}

func TestHub_NotifyRedeliversInOrder(t *testing.T) {
	repo := mocks.NewMockDocumentRepository()
	repo.SetJSON("skills", `{"a":{"n":0}}`)
	hub := feed.NewHub(repo, time.Second, zerolog.Nop())
	defer hub.Close()

	got := make(chan models.Snapshot, 8)
	cancel := hub.Subscribe("skills", func(s models.Snapshot) { got <- s }, nil)
	defer cancel()
	recvSnapshot(t, got, time.Second)

	repo.SetJSON("skills", `{"a":{"n":1},"b":{"n":2}}`)
	hub.Notify("skills")
	snap := recvSnapshot(t, got, time.Second)
	if len(snap.Entries) != 2 {
		t.Errorf("Expected updated snapshot with 2 entries, got %d", len(snap.Entries))
	}

	// notifications for other paths are ignored
	hub.Notify("projects")
	expectNoSnapshot(t, got)
}

func TestHub_ReadErrorIsTerminalAndReportedOnce(t *testing.T) {
	repo := mocks.NewMockDocumentRepository()
	repo.GetError = errors.New("permission denied")
	hub := feed.NewHub(repo, time.Second, zerolog.Nop())
	defer hub.Close()

	errs := make(chan error, 4)
	got := make(chan models.Snapshot, 4)
	cancel := hub.Subscribe("Aboutspage", func(s models.Snapshot) { got <- s }, func(err error) { errs <- err })
	defer cancel()

	select {
	case err := <-errs:
		if err.Error() != "permission denied" {
			t.Errorf("Unexpected error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for feed error")
	}

	// no automatic retry and no further deliveries
	repo.GetError = nil
	hub.Notify("Aboutspage")
	expectNoSnapshot(t, got)
	select {
	case err := <-errs:
		t.Fatalf("error reported twice: %v", err)
	default:
	}
	if n := hub.Subscribers("Aboutspage"); n != 0 {
		t.Errorf("Expected failed subscription to be detached, got %d subscribers", n)
	}
}

// slowRepository never answers a read before the context gives up
type slowRepository struct {
	*mocks.MockDocumentRepository
}

func (r slowRepository) Get(ctx context.Context, path string) (models.Snapshot, error) {
	<-ctx.Done()
	return models.Snapshot{}, ctx.Err()
}

func TestHub_ReadTimeoutFailsSubscription(t *testing.T) {
	hub := feed.NewHub(slowRepository{mocks.NewMockDocumentRepository()}, 20*time.Millisecond, zerolog.Nop())
	defer hub.Close()

	errs := make(chan error, 1)
	cancel := hub.Subscribe("projects", func(models.Snapshot) {}, func(err error) { errs <- err })
	defer cancel()

	select {
	case err := <-errs:
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("Expected deadline exceeded, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for the read timeout")
	}
}

func TestHub_NoCallbackAfterCancel(t *testing.T) {
	repo := mocks.NewMockDocumentRepository()
	repo.SetJSON("Homepage", `{"h":{"status":"active"}}`)
	hub := feed.NewHub(repo, time.Second, zerolog.Nop())
	defer hub.Close()

	var calls atomic.Int32
	got := make(chan models.Snapshot, 8)
	cancel := hub.Subscribe("Homepage", func(s models.Snapshot) {
		calls.Add(1)
		got <- s
	}, nil)
	recvSnapshot(t, got, time.Second)

	cancel()
	cancel() // idempotent
	before := calls.Load()

	for i := 0; i < 5; i++ {
		hub.Notify("Homepage")
	}
	expectNoSnapshot(t, got)

	if calls.Load() != before {
		t.Errorf("Expected no callbacks after cancel, got %d more", calls.Load()-before)
	}
	if n := hub.Subscribers("Homepage"); n != 0 {
		t.Errorf("Expected 0 subscribers after cancel, got %d", n)
	}
}

func TestHub_SubscribeAfterCloseNeverDelivers(t *testing.T) {
	repo := mocks.NewMockDocumentRepository()
	hub := feed.NewHub(repo, time.Second, zerolog.Nop())
	hub.Close()

	got := make(chan models.Snapshot, 1)
	cancel := hub.Subscribe("skills", func(s models.Snapshot) { got <- s }, nil)
	defer cancel()

	expectNoSnapshot(t, got)
}

func TestNotifyingRepository_PushReachesSubscribers(t *testing.T) {
	repo := mocks.NewMockDocumentRepository()
	bus := feed.NewMemoryBus()
	defer bus.Close()

	hub := feed.NewHub(repo, time.Second, zerolog.Nop())
	defer hub.Close()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	if err := hub.Start(ctx, bus); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	got := make(chan models.Snapshot, 8)
	cancel := hub.Subscribe("contact", func(s models.Snapshot) { got <- s }, nil)
	defer cancel()
	if first := recvSnapshot(t, got, time.Second); first.Kind != models.SnapshotAbsent {
		t.Fatalf("Expected absent contact path, got %s", first.Kind)
	}

	writer := feed.NewNotifyingRepository(repo, bus, zerolog.Nop())
	value, _ := json.Marshal(map[string]string{"subject": "hello"})
	if _, err := writer.Push(context.Background(), "contact", value); err != nil {
		t.Fatalf("Push failed: %v", err)
	}

	snap := recvSnapshot(t, got, time.Second)
	if len(snap.Entries) != 1 {
		t.Errorf("Expected pushed record to be delivered, got %d entries", len(snap.Entries))
	}
}

func TestNotifyingRepository_FailedWriteDoesNotPublish(t *testing.T) {
	repo := mocks.NewMockDocumentRepository()
	repo.PushError = errors.New("disk full")

	var published atomic.Int32
	bus := feed.NewMemoryBus()
	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	bus.Start(ctx, func(string) { published.Add(1) })

	writer := feed.NewNotifyingRepository(repo, bus, zerolog.Nop())
	if _, err := writer.Push(context.Background(), "contact", json.RawMessage(`{}`)); err == nil {
		t.Fatal("Expected push error")
	}
	if published.Load() != 0 {
		t.Errorf("Expected no notification for a failed write, got %d", published.Load())
	}
}

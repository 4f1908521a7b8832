package collection

import (
	"context"
	"testing"
	"time"

	"art-quiz-service/internal/domain"
)

// recordingPersister captures full-collection writes on a channel so tests
// can wait for the asynchronous persistence request.
type recordingPersister struct {
	writes chan []domain.Artwork
}

func newRecordingPersister() *recordingPersister {
	return &recordingPersister{writes: make(chan []domain.Artwork, 8)}
}

func (p *recordingPersister) SaveCollection(_ context.Context, _ string, items []domain.Artwork) error {
	p.writes <- items
	return nil
}

func (p *recordingPersister) waitForWrite(t *testing.T) []domain.Artwork {
	t.Helper()
	select {
	case items := <-p.writes:
		return items
	case <-time.After(2 * time.Second):
		t.Fatalf("no persistence request observed")
		return nil
	}
}

func art(id string) domain.Artwork {
	return domain.Artwork{ID: id, Title: "Artwork " + id, Artist: "Artist " + id}
}

func TestAddIsIdempotent(t *testing.T) {
	ctx := context.Background()
	persister := newRecordingPersister()
	manager := NewManager("u1", nil, persister)

	if !manager.Add(ctx, art("1")) {
		t.Fatalf("expected first add to change the collection")
	}
	persister.waitForWrite(t)

	if manager.Add(ctx, art("1")) {
		t.Fatalf("duplicate add must be a no-op")
	}
	if manager.Len() != 1 {
		t.Fatalf("expected length 1 after duplicate add, got %d", manager.Len())
	}
	select {
	case <-persister.writes:
		t.Fatalf("duplicate add must not request a write")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestRemoveByID(t *testing.T) {
	ctx := context.Background()
	persister := newRecordingPersister()
	manager := NewManager("u1", []domain.Artwork{art("1"), art("2"), art("3")}, persister)

	if !manager.RemoveByID(ctx, "2") {
		t.Fatalf("expected removal of present id")
	}
	written := persister.waitForWrite(t)
	if len(written) != 2 {
		t.Fatalf("persisted snapshot has %d items, want 2", len(written))
	}

	if manager.RemoveByID(ctx, "2") {
		t.Fatalf("removing an absent id must be a no-op")
	}
	if manager.Contains("2") {
		t.Fatalf("removed artwork still present")
	}
}

func TestRemoveCurrentResetsView(t *testing.T) {
	ctx := context.Background()
	persister := newRecordingPersister()
	manager := NewManager("u1", []domain.Artwork{art("1"), art("2"), art("3")}, persister)

	if _, ok := manager.Next(); !ok {
		t.Fatalf("expected next to advance")
	}
	if manager.ViewIndex() != 1 {
		t.Fatalf("expected cursor at 1, got %d", manager.ViewIndex())
	}

	if !manager.RemoveAt(ctx, 1) {
		t.Fatalf("expected removal at index 1")
	}
	if manager.ViewIndex() != 0 {
		t.Fatalf("removing the viewed entry must reset the cursor, got %d", manager.ViewIndex())
	}
}

func TestRemoveBeforeCursorShiftsView(t *testing.T) {
	ctx := context.Background()
	persister := newRecordingPersister()
	manager := NewManager("u1", []domain.Artwork{art("1"), art("2"), art("3")}, persister)

	manager.Next()
	manager.Next() // cursor on "3"

	if !manager.RemoveAt(ctx, 0) {
		t.Fatalf("expected removal at index 0")
	}
	current, ok := manager.Current()
	if !ok || current.ID != "3" {
		t.Fatalf("cursor should still point at artwork 3, got %+v", current)
	}
}

func TestEmptyCollectionState(t *testing.T) {
	ctx := context.Background()
	persister := newRecordingPersister()
	manager := NewManager("u1", []domain.Artwork{art("1")}, persister)

	manager.RemoveByID(ctx, "1")
	if manager.Len() != 0 {
		t.Fatalf("expected empty collection")
	}
	if _, ok := manager.Current(); ok {
		t.Fatalf("empty collection must report no current artwork")
	}
	if _, ok := manager.Next(); ok {
		t.Fatalf("empty collection must not advance")
	}
}

func TestBrowseWrapsAround(t *testing.T) {
	persister := newRecordingPersister()
	manager := NewManager("u1", []domain.Artwork{art("1"), art("2")}, persister)

	if a, _ := manager.Next(); a.ID != "2" {
		t.Fatalf("expected 2, got %s", a.ID)
	}
	if a, _ := manager.Next(); a.ID != "1" {
		t.Fatalf("expected wrap to 1, got %s", a.ID)
	}
	if a, _ := manager.Prev(); a.ID != "2" {
		t.Fatalf("expected wrap back to 2, got %s", a.ID)
	}
}

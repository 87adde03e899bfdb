package replay

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStore_RejectsReuse(t *testing.T) {
	s := NewMemoryStore(10)
	ctx := context.Background()

	fresh, err := s.MarkUsed(ctx, "a", time.Minute)
	if err != nil || !fresh {
		t.Fatalf("first use: fresh=%v err=%v", fresh, err)
	}
	fresh, _ = s.MarkUsed(ctx, "a", time.Minute)
	if fresh {
		t.Error("second use reported fresh")
	}
}

func TestMemoryStore_Expiry(t *testing.T) {
	now := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	s := NewMemoryStore(10)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	s.MarkUsed(ctx, "a", 30*time.Second)
	s.MarkUsed(ctx, "b", 30*time.Second)

	now = now.Add(31 * time.Second)
	fresh, _ := s.MarkUsed(ctx, "a", 30*time.Second)
	if !fresh {
		t.Error("expired id should be accepted again")
	}
	if s.Len() != 1 {
		t.Errorf("len = %d, want 1 after pruning", s.Len())
	}
}

func TestMemoryStore_Bounded(t *testing.T) {
	s := NewMemoryStore(3)
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c", "d"} {
		s.MarkUsed(ctx, id, time.Hour)
	}
	if s.Len() != 3 {
		t.Fatalf("len = %d, want 3", s.Len())
	}

	// oldest was evicted, newest kept
	if fresh, _ := s.MarkUsed(ctx, "d", time.Hour); fresh {
		t.Error("d should still be remembered")
	}
	if fresh, _ := s.MarkUsed(ctx, "a", time.Hour); !fresh {
		t.Error("a should have been evicted")
	}
}

package dedup

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/denmor86/ya-orderbot/internal/models"
)

func TestMemorySet_Lifecycle(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	set := NewMemorySet()
	set.now = func() time.Time { return now }

	if ok, _ := set.IsNotified(ctx, "1"); ok {
		t.Fatalf("Expected empty set")
	}
	if err := set.MarkNotified(ctx, "1"); err != nil {
		t.Fatalf("MarkNotified failed: %v", err)
	}
	if ok, _ := set.IsNotified(ctx, "1"); !ok {
		t.Fatalf("Expected order 1 notified")
	}

	tickStart := now.Add(-time.Second)
	if err := set.Clear(ctx, "1"); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if ok, _ := set.IsNotified(ctx, "1"); ok {
		t.Errorf("Expected order 1 cleared")
	}
	if ok, _ := set.ClearedSince(ctx, "1", tickStart); !ok {
		t.Errorf("Expected clear after tick start to be visible")
	}
	if ok, _ := set.ClearedSince(ctx, "1", now.Add(time.Second)); ok {
		t.Errorf("Clear before since must not be reported")
	}

	if err := set.Prune(ctx, now.Add(time.Minute)); err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if ok, _ := set.ClearedSince(ctx, "1", tickStart); ok {
		t.Errorf("Expected pruned clear stamp")
	}

	// повторная отметка снимает след очистки
	_ = set.Clear(ctx, "2")
	_ = set.MarkNotified(ctx, "2")
	if ok, _ := set.ClearedSince(ctx, "2", tickStart); ok {
		t.Errorf("MarkNotified must drop clear stamp")
	}
	if set.Len() != 1 {
		t.Errorf("Expected one notified order, got %d", set.Len())
	}
}

func TestMemorySet_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	set := NewMemorySet()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		id := models.OrderID(fmt.Sprint(i))
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = set.MarkNotified(ctx, id)
		}()
		go func() {
			defer wg.Done()
			_, _ = set.IsNotified(ctx, id)
		}()
	}
	wg.Wait()

	if set.Len() != 50 {
		t.Errorf("Expected 50 notified orders, got %d", set.Len())
	}
}

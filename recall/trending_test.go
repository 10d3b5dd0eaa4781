package recall

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/rushteam/affinity/core"
	"github.com/rushteam/affinity/store"
)

func TestTrending_Builtin(t *testing.T) {
	r := &Trending{}
	blocks := r.Load(context.Background())
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks, want 1", len(blocks))
	}
	b := blocks[0]
	if b.ID != "trend-001" || b.Type != "trending" || b.Title != "Most Popular This Week" {
		t.Errorf("block = %+v", b)
	}
	if len(b.Items) != 3 {
		t.Fatalf("got %d trending items, want 3", len(b.Items))
	}
	if b.Items[0].Title != "AI Breakthrough in Healthcare" || b.Items[0].Views != 15420 {
		t.Errorf("first item = %+v", b.Items[0])
	}
	if b.Reason != "Trending content across all categories" {
		t.Errorf("reason = %q", b.Reason)
	}
}

func TestTrending_FromStore(t *testing.T) {
	ctx := context.Background()
	ms := store.NewMemoryStore()
	defer ms.Close()

	want := []core.TrendingBlock{{
		ID:    "trend-live",
		Type:  "trending",
		Title: "Right Now",
		Items: []core.TrendingItem{{Title: "Breaking", Views: 42, Category: "news"}},
	}}
	data, _ := json.Marshal(want)
	if err := ms.Set(ctx, "trending:weekly", data); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	r := &Trending{Store: ms, Key: "trending:weekly"}
	blocks := r.Load(ctx)
	if len(blocks) != 1 || blocks[0].ID != "trend-live" {
		t.Errorf("blocks = %+v, want store-backed block", blocks)
	}
}

func TestTrending_StoreMissFallsBack(t *testing.T) {
	ms := store.NewMemoryStore()
	defer ms.Close()

	fallback := []core.TrendingBlock{{ID: "trend-static", Type: "trending"}}
	r := &Trending{Store: ms, Key: "trending:absent", Blocks: fallback}

	blocks := r.Load(context.Background())
	if len(blocks) != 1 || blocks[0].ID != "trend-static" {
		t.Errorf("blocks = %+v, want fallback block", blocks)
	}
}

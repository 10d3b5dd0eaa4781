package filter

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/rushteam/affinity/core"
	"github.com/rushteam/affinity/store"
)

func catalogItems() []*core.Item {
	out := make([]*core.Item, 0, 6)
	for _, ci := range core.DefaultCatalog() {
		it := core.NewContentItem(ci)
		it.Score = ci.BaseScore
		out = append(out, it)
	}
	return out
}

func TestBlacklist(t *testing.T) {
	node := &Node{Filters: []Filter{&Blacklist{ItemIDs: []string{"tech-002", "cook-001"}}}}

	out, err := node.Process(context.Background(), nil, catalogItems())
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(out) != 4 {
		t.Fatalf("got %d items, want 4", len(out))
	}
	for _, it := range out {
		if it.ID == "tech-002" || it.ID == "cook-001" {
			t.Errorf("blacklisted item %s survived", it.ID)
		}
	}
}

func TestBlacklist_FromStore(t *testing.T) {
	ctx := context.Background()
	ms := store.NewMemoryStore()
	defer ms.Close()

	data, _ := json.Marshal([]string{"music-001"})
	if err := ms.Set(ctx, "blacklist:content", data); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	node := &Node{Filters: []Filter{&Blacklist{Store: ms, Key: "blacklist:content"}}}
	out, err := node.Process(ctx, nil, catalogItems())
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	for _, it := range out {
		if it.ID == "music-001" {
			t.Errorf("store-blacklisted item survived")
		}
	}
	if len(out) != 5 {
		t.Errorf("got %d items, want 5", len(out))
	}
}

func TestExpr(t *testing.T) {
	tests := []struct {
		name string
		keep string
		want int
	}{
		// base scores: 0.9, 0.8, 0.85, 0.9, 0.87, 0.75
		{name: "score threshold", keep: "item.score > 0.8", want: 4},
		{name: "category rule", keep: `label.category != "technology"`, want: 4},
		{name: "empty expression keeps all", keep: "", want: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := &Node{Filters: []Filter{&Expr{Keep: tt.keep}}}
			out, err := node.Process(context.Background(), &core.RecommendContext{UserID: 1}, catalogItems())
			if err != nil {
				t.Fatalf("Process() error = %v", err)
			}
			if len(out) != tt.want {
				t.Errorf("keep=%q got %d items, want %d", tt.keep, len(out), tt.want)
			}
		})
	}
}

func TestExpr_ContextFields(t *testing.T) {
	rctx := &core.RecommendContext{UserID: 42, Scene: "feed"}
	node := &Node{Filters: []Filter{&Expr{Keep: `rctx.scene == "feed"`}}}

	out, err := node.Process(context.Background(), rctx, catalogItems())
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(out) != 6 {
		t.Errorf("scene rule should keep all, got %d", len(out))
	}
}

func TestNode_BadFilterDoesNotBreakPipeline(t *testing.T) {
	// 表达式编译失败时过滤器报错，Node 跳过该过滤器继续处理
	node := &Node{Filters: []Filter{&Expr{Keep: "((("}}}
	out, err := node.Process(context.Background(), nil, catalogItems())
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(out) != 6 {
		t.Errorf("got %d items, want all 6 kept", len(out))
	}
}

func TestNode_FilteredLabel(t *testing.T) {
	items := catalogItems()
	node := &Node{Filters: []Filter{&Blacklist{ItemIDs: []string{"tech-001"}}}}
	if _, err := node.Process(context.Background(), nil, items); err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	for _, it := range items {
		if it.ID == "tech-001" {
			lbl, ok := it.Labels["filtered"]
			if !ok || lbl.Value != "true" || lbl.Source != "filter.blacklist" {
				t.Errorf("filtered label = %+v", lbl)
			}
		}
	}
}

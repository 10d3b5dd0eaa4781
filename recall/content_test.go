package recall

import (
	"context"
	"reflect"
	"testing"

	"github.com/rushteam/affinity/core"
)

func itemIDs(items []*core.Item) []string {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	return ids
}

func TestContent_Personalized(t *testing.T) {
	r := &Content{Catalog: core.DefaultCatalog()}
	rctx := &core.RecommendContext{
		UserID: 1,
		Prefs:  core.PreferenceMap{"technology": 1.0},
	}

	items, err := r.Recall(context.Background(), rctx)
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}
	if len(items) != 5 {
		t.Fatalf("Recall() returned %d items, want 5", len(items))
	}

	// tech-001: 0.9*1.0=0.9 必须排在 sports-001: 0.85*0.1=0.085 之前
	pos := map[string]int{}
	score := map[string]float64{}
	for i, it := range items {
		pos[it.ID] = i
		score[it.ID] = it.Score
	}
	if score["tech-001"] != 0.9 {
		t.Errorf("tech-001 score = %v, want 0.9", score["tech-001"])
	}
	if score["sports-001"] != 0.085 {
		t.Errorf("sports-001 score = %v, want 0.085", score["sports-001"])
	}
	if pos["tech-001"] > pos["sports-001"] {
		t.Errorf("tech-001 (pos %d) should rank above sports-001 (pos %d)", pos["tech-001"], pos["sports-001"])
	}
	if items[0].ID != "tech-001" {
		t.Errorf("top item = %s, want tech-001", items[0].ID)
	}

	// 推荐理由
	if got := items[0].Labels["reason"].Value; got != "Matches your technology preferences" {
		t.Errorf("reason = %q", got)
	}
}

func TestContent_PersonalizedStableTieBreak(t *testing.T) {
	// 两个同分条目必须保持目录原始顺序
	catalog := core.Catalog{
		{ID: "a", Category: "x", BaseScore: 0.5},
		{ID: "b", Category: "x", BaseScore: 0.5},
		{ID: "c", Category: "x", BaseScore: 0.9},
	}
	r := &Content{Catalog: catalog}
	rctx := &core.RecommendContext{UserID: 1, Prefs: core.PreferenceMap{"x": 1.0}}

	items, err := r.Recall(context.Background(), rctx)
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}
	if got, want := itemIDs(items), []string{"c", "a", "b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

func TestContent_PersonalizedIdempotent(t *testing.T) {
	r := &Content{Catalog: core.DefaultCatalog(), Sampler: NewRandSampler(42)}
	rctx := &core.RecommendContext{
		UserID: 7,
		Prefs:  core.PreferenceMap{"music": 0.8, "travel": 0.4},
	}

	first, err := r.Recall(context.Background(), rctx)
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}
	second, err := r.Recall(context.Background(), rctx)
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}
	if !reflect.DeepEqual(itemIDs(first), itemIDs(second)) {
		t.Errorf("personalized mode not idempotent: %v vs %v", itemIDs(first), itemIDs(second))
	}
	for i := range first {
		if first[i].Score != second[i].Score {
			t.Errorf("score drift at %d: %v vs %v", i, first[i].Score, second[i].Score)
		}
	}
}

func TestContent_DefaultMode(t *testing.T) {
	r := &Content{Catalog: core.DefaultCatalog(), Sampler: FixedSampler{}}

	tests := []struct {
		name string
		rctx *core.RecommendContext
	}{
		{name: "anonymous", rctx: &core.RecommendContext{}},
		{name: "user without preferences", rctx: &core.RecommendContext{UserID: 4, Prefs: core.PreferenceMap{}}},
		{name: "nil context", rctx: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := r.Recall(context.Background(), tt.rctx)
			if err != nil {
				t.Fatalf("Recall() error = %v", err)
			}
			if len(items) != 3 {
				t.Fatalf("default mode returned %d items, want 3", len(items))
			}
			// FixedSampler 固定取目录前三个
			if got, want := itemIDs(items), []string{"tech-001", "tech-002", "sports-001"}; !reflect.DeepEqual(got, want) {
				t.Errorf("sampled ids = %v, want %v", got, want)
			}
			for _, it := range items {
				if it.Score != 0 {
					t.Errorf("default mode item %s has score %v, want 0", it.ID, it.Score)
				}
			}
		})
	}
}

func TestContent_EmptyCatalog(t *testing.T) {
	r := &Content{}
	items, err := r.Recall(context.Background(), &core.RecommendContext{UserID: 1})
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}
	if len(items) != 0 {
		t.Errorf("empty catalog returned %d items, want 0", len(items))
	}
}

func TestContent_TopKSmallerCatalog(t *testing.T) {
	catalog := core.Catalog{{ID: "only", Category: "x", BaseScore: 0.5}}
	r := &Content{Catalog: catalog, TopK: 5}
	rctx := &core.RecommendContext{UserID: 1, Prefs: core.PreferenceMap{"x": 0.9}}

	items, err := r.Recall(context.Background(), rctx)
	if err != nil {
		t.Fatalf("Recall() error = %v", err)
	}
	if len(items) != 1 {
		t.Errorf("returned %d items, want 1", len(items))
	}
}

func TestScoredContentFromItems(t *testing.T) {
	r := &Content{Catalog: core.DefaultCatalog()}
	rctx := &core.RecommendContext{UserID: 1, Prefs: core.PreferenceMap{"technology": 1.0}}
	items, _ := r.Recall(context.Background(), rctx)

	scored := ScoredContentFromItems(items)
	if len(scored) != len(items) {
		t.Fatalf("len = %d, want %d", len(scored), len(items))
	}
	top := scored[0]
	if top.ID != "tech-001" || top.Title != "Future of AI" || top.Type != "article" {
		t.Errorf("top = %+v", top)
	}
	if top.RecommendationScore != 0.9 || top.BaseScore != 0.9 {
		t.Errorf("scores = %v / %v", top.RecommendationScore, top.BaseScore)
	}
	if top.Reason != "Matches your technology preferences" {
		t.Errorf("reason = %q", top.Reason)
	}
}

func TestRandSampler(t *testing.T) {
	s := NewRandSampler(1)
	got := s.Sample(6, 3)
	if len(got) != 3 {
		t.Fatalf("Sample(6,3) len = %d", len(got))
	}
	seen := map[int]bool{}
	for _, i := range got {
		if i < 0 || i >= 6 {
			t.Errorf("index %d out of range", i)
		}
		if seen[i] {
			t.Errorf("duplicate index %d", i)
		}
		seen[i] = true
	}

	// 相同 seed 序列一致
	a := NewRandSampler(99).Sample(10, 5)
	b := NewRandSampler(99).Sample(10, 5)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("same seed gave %v and %v", a, b)
	}

	if got := s.Sample(2, 10); len(got) != 2 {
		t.Errorf("Sample(2,10) len = %d, want 2", len(got))
	}
	if got := s.Sample(0, 3); got != nil {
		t.Errorf("Sample(0,3) = %v, want nil", got)
	}
}

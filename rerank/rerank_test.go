package rerank

import (
	"context"
	"testing"

	"github.com/rushteam/affinity/core"
	"github.com/rushteam/affinity/pkg/utils"
)

func contentItems(catalog core.Catalog) []*core.Item {
	out := make([]*core.Item, 0, len(catalog))
	for _, ci := range catalog {
		out = append(out, core.NewContentItem(ci))
	}
	return out
}

func TestTopNNode(t *testing.T) {
	items := contentItems(core.DefaultCatalog())

	tests := []struct {
		name string
		n    int
		want int
	}{
		{name: "truncate", n: 5, want: 5},
		{name: "no truncation when n is zero", n: 0, want: 6},
		{name: "n larger than input", n: 100, want: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := &TopNNode{N: tt.n}
			out, err := node.Process(context.Background(), nil, items)
			if err != nil {
				t.Fatalf("Process() error = %v", err)
			}
			if len(out) != tt.want {
				t.Errorf("got %d items, want %d", len(out), tt.want)
			}
		})
	}
}

func TestDiversity(t *testing.T) {
	items := contentItems(core.DefaultCatalog())

	node := &Diversity{}
	out, err := node.Process(context.Background(), nil, items)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	// 默认目录有两个 technology 条目，去重后每个类目只剩一个
	seen := map[string]bool{}
	for _, it := range out {
		cate := it.Labels["category"].Value
		if seen[cate] {
			t.Errorf("category %q appears twice", cate)
		}
		seen[cate] = true
	}
	if len(out) != 5 {
		t.Errorf("got %d items, want 5 distinct categories", len(out))
	}
	// 首个 technology 条目保留
	if out[0].ID != "tech-001" {
		t.Errorf("first item = %s, want tech-001", out[0].ID)
	}
}

func TestDiversity_NoCategoryKept(t *testing.T) {
	it := core.NewItem("naked")
	out, err := (&Diversity{}).Process(context.Background(), nil, []*core.Item{it})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(out) != 1 {
		t.Errorf("item without category must be kept, got %d items", len(out))
	}
}

func TestDiversity_MetaFallback(t *testing.T) {
	a := core.NewItem("a")
	a.Meta["category"] = "music"
	b := core.NewItem("b")
	b.Meta["category"] = "music"
	_ = a.Labels // label 缺失时回退到 meta

	out, err := (&Diversity{}).Process(context.Background(), nil, []*core.Item{a, b})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(out) != 1 || out[0].ID != "a" {
		t.Errorf("out = %v, want only first music item", out)
	}
}

func TestDiversity_CustomLabelKey(t *testing.T) {
	a := core.NewItem("a")
	a.PutLabel("source", utils.Label{Value: "x"})
	b := core.NewItem("b")
	b.PutLabel("source", utils.Label{Value: "x"})

	out, err := (&Diversity{LabelKey: "source"}).Process(context.Background(), nil, []*core.Item{a, b})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if len(out) != 1 {
		t.Errorf("got %d items, want 1", len(out))
	}
}

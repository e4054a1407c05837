package store

import (
	"context"
	"errors"
	"testing"

	"github.com/boxlay/boxlay/pkg/graph"
	"github.com/boxlay/boxlay/pkg/layout"
)

func testDocument(t *testing.T) layout.Document {
	t.Helper()
	g := graph.New()
	if err := g.AddNode("a", 120, 60); err != nil {
		t.Fatalf("AddNode: %v", err)
	}
	if err := g.AddNode("b", 80, 40); err != nil {
		t.Fatalf("AddNode: %v", err)
	}
	g.AddEdge("a", "b")
	g.Finalize()

	l, err := layout.Circular(g)
	if err != nil {
		t.Fatalf("Circular: %v", err)
	}
	return layout.Export(g, l)
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	doc := testDocument(t)

	rec, err := s.Save(ctx, "demo", doc)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if rec.ID == "" {
		t.Fatal("Save returned empty ID")
	}
	if rec.Name != "demo" {
		t.Fatalf("Name = %q, want %q", rec.Name, "demo")
	}

	got, err := s.Get(ctx, rec.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.Document.Nodes) != len(doc.Nodes) {
		t.Fatalf("got %d nodes, want %d", len(got.Document.Nodes), len(doc.Nodes))
	}
}

func TestMemoryStoreGetUnknown(t *testing.T) {
	s := NewMemoryStore()
	if _, err := s.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get unknown = %v, want ErrNotFound", err)
	}
	if _, err := s.Get(context.Background(), ""); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("Get empty = %v, want ErrInvalidID", err)
	}
}

func TestMemoryStoreList(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	doc := testDocument(t)

	first, err := s.Save(ctx, "first", doc)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	second, err := s.Save(ctx, "second", doc)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	recs, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("List returned %d records, want 2", len(recs))
	}
	ids := map[string]bool{recs[0].ID: true, recs[1].ID: true}
	if !ids[first.ID] || !ids[second.ID] {
		t.Fatalf("List missing saved records: %v", ids)
	}
}

func TestMemoryStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	rec, err := s.Save(ctx, "gone", testDocument(t))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Delete(ctx, rec.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, rec.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after delete = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, rec.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second Delete = %v, want ErrNotFound", err)
	}
}

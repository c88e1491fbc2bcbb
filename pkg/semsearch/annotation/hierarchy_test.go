package annotation

import (
	"errors"
	"testing"

	"github.com/biofinder/semsearch/pkg/semsearch/internalerr"
)

func TestHierarchyLinking(t *testing.T) {
	h := NewHierarchy()
	h.Add(NewUri("https://example.org/taxon/fagaceae", ObjectPosition))
	h.Add(NewUri("https://example.org/taxon/fagus", ObjectPosition))

	if err := h.Link("https://example.org/taxon/fagaceae", "https://example.org/taxon/fagus"); err != nil {
		t.Fatalf("link: %v", err)
	}

	parent, ok := h.Parent("https://example.org/taxon/fagus")
	if !ok || parent.URL != "https://example.org/taxon/fagaceae" {
		t.Errorf("unexpected parent %+v", parent)
	}

	children := h.Children("https://example.org/taxon/fagaceae")
	if len(children) != 1 || children[0].URL != "https://example.org/taxon/fagus" {
		t.Errorf("unexpected children %+v", children)
	}
}

func TestHierarchyAddIsIdempotent(t *testing.T) {
	h := NewHierarchy()
	first := h.Add(NewUri("u1", ObjectPosition))
	second := h.Add(NewUri("u1", ObjectPosition))

	if first != second {
		t.Error("re-adding a url should return the existing index")
	}
	if h.Len() != 1 {
		t.Errorf("expected 1 record, got %d", h.Len())
	}
}

func TestHierarchyLinkUnknownUri(t *testing.T) {
	h := NewHierarchy()
	h.Add(NewUri("u1", ObjectPosition))

	err := h.Link("u1", "missing")
	if !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("linking an unregistered uri should fail with ErrNotFound, got %v", err)
	}
}

func TestHierarchyToleratesCycles(t *testing.T) {
	h := NewHierarchy()
	h.Add(NewUri("a", ObjectPosition))
	h.Add(NewUri("b", ObjectPosition))

	if err := h.Link("a", "b"); err != nil {
		t.Fatal(err)
	}
	if err := h.Link("b", "a"); err != nil {
		t.Fatal(err)
	}

	// Both directions resolve without recursing.
	if parent, ok := h.Parent("a"); !ok || parent.URL != "b" {
		t.Error("cycle parent lookup failed")
	}
	if parent, ok := h.Parent("b"); !ok || parent.URL != "a" {
		t.Error("cycle parent lookup failed")
	}
}

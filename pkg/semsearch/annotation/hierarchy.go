package annotation

import (
	"fmt"

	"github.com/biofinder/semsearch/pkg/semsearch/internalerr"
)

// Hierarchy records broader/narrower relations between URIs, e.g. taxon
// parent links. The source data may contain cycles, so links are stored as
// indexes into an arena of records instead of ownership pointers.
type Hierarchy struct {
	records  []*Uri
	index    map[string]int
	parents  []int
	children [][]int
}

// NewHierarchy creates an empty hierarchy.
func NewHierarchy() *Hierarchy {
	return &Hierarchy{index: make(map[string]int)}
}

// Add registers a Uri and returns its arena index. Adding the same URL
// twice returns the existing index.
func (h *Hierarchy) Add(u *Uri) int {
	if i, ok := h.index[u.URL]; ok {
		return i
	}
	i := len(h.records)
	h.records = append(h.records, u)
	h.parents = append(h.parents, -1)
	h.children = append(h.children, nil)
	h.index[u.URL] = i
	return i
}

// Link records child as narrower than parent. Both URIs must be registered.
func (h *Hierarchy) Link(parentURL, childURL string) error {
	parent, ok := h.index[parentURL]
	if !ok {
		return fmt.Errorf("%w: parent uri %q", internalerr.ErrNotFound, parentURL)
	}
	child, ok := h.index[childURL]
	if !ok {
		return fmt.Errorf("%w: child uri %q", internalerr.ErrNotFound, childURL)
	}
	h.parents[child] = parent
	h.children[parent] = append(h.children[parent], child)
	return nil
}

// Get returns the registered Uri for a URL.
func (h *Hierarchy) Get(url string) (*Uri, bool) {
	i, ok := h.index[url]
	if !ok {
		return nil, false
	}
	return h.records[i], true
}

// Parent returns the broader Uri of the given URL, if any.
func (h *Hierarchy) Parent(url string) (*Uri, bool) {
	i, ok := h.index[url]
	if !ok || h.parents[i] < 0 {
		return nil, false
	}
	return h.records[h.parents[i]], true
}

// Children returns the narrower URIs of the given URL.
func (h *Hierarchy) Children(url string) []*Uri {
	i, ok := h.index[url]
	if !ok {
		return nil
	}
	uris := make([]*Uri, 0, len(h.children[i]))
	for _, c := range h.children[i] {
		uris = append(uris, h.records[c])
	}
	return uris
}

// Len returns the number of registered URIs.
func (h *Hierarchy) Len() int { return len(h.records) }

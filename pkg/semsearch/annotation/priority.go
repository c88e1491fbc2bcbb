package annotation

import (
	"fmt"
	"sort"

	"github.com/biofinder/semsearch/pkg/semsearch/internalerr"
)

// Priority is a total order over the named entity types. A lower index wins
// when an ambiguous label has to be resolved without a context cue.
type Priority []NamedEntityType

// DefaultPriority is the order used by existing deployments.
func DefaultPriority() Priority {
	return Priority{Plant, Animal, Taxon, Location, Miscellaneous}
}

// Rank returns the position of the given type. Unknown types rank last.
func (p Priority) Rank(t NamedEntityType) int {
	for i, candidate := range p {
		if candidate == t {
			return i
		}
	}
	return len(p)
}

// Validate checks that the priority is a total order over all known types.
func (p Priority) Validate() error {
	seen := make(map[NamedEntityType]struct{}, len(p))
	for _, t := range p {
		if _, err := ParseNamedEntityType(string(t)); err != nil {
			return fmt.Errorf("%w: priority references %q", internalerr.ErrInvalidConfig, t)
		}
		if _, ok := seen[t]; ok {
			return fmt.Errorf("%w: duplicate priority entry %q", internalerr.ErrInvalidConfig, t)
		}
		seen[t] = struct{}{}
	}
	for _, t := range KnownEntityTypes() {
		if _, ok := seen[t]; !ok {
			return fmt.Errorf("%w: priority misses %q", internalerr.ErrInvalidConfig, t)
		}
	}
	return nil
}

// SortTypes orders the given type names by priority, in place. Names that do
// not parse keep their relative order at the end.
func (p Priority) SortTypes(names []string) {
	rank := func(name string) int {
		t, err := ParseNamedEntityType(name)
		if err != nil {
			return len(p) + 1
		}
		return p.Rank(t)
	}
	sort.SliceStable(names, func(i, j int) bool {
		return rank(names[i]) < rank(names[j])
	})
}

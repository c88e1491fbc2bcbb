package query

import (
	"context"

	"github.com/biofinder/semsearch/pkg/semsearch/annotation"
	"github.com/biofinder/semsearch/pkg/semsearch/store"
)

// TripleEngine resolves query statements against a local triple store
// instead of a remote SPARQL endpoint. Statements that only assert an
// annotation's identity carry no filter and are skipped; the remaining
// statements narrow the subject set successively.
type TripleEngine struct {
	triples store.TripleStore
}

// NewTripleEngine creates an engine over the given triple store.
func NewTripleEngine(triples store.TripleStore) *TripleEngine {
	return &TripleEngine{triples: triples}
}

// GenerateQuerySemantics implements SemanticEngine. The first executable
// statement is mandatory; later statements intersect the result but never
// empty it, mirroring optional graph patterns.
func (e *TripleEngine) GenerateQuerySemantics(ctx context.Context, q *annotation.Query, limit int) (map[string]annotation.UriSet, error) {
	target := taxonAnnotation(q)
	if target == nil {
		return map[string]annotation.UriSet{}, nil
	}

	var subjects []string
	matchedAny := false

	for _, statement := range q.Statements {
		predicates, objects := statementFilters(statement)
		if len(predicates) == 0 && len(objects) == 0 {
			continue
		}

		found, err := e.triples.SubjectsMatching(ctx, predicates, objects, limit)
		if err != nil {
			return nil, err
		}

		if !matchedAny {
			subjects = found
			matchedAny = true
			continue
		}
		if len(found) > 0 {
			subjects = intersect(subjects, found)
		}
	}

	if !matchedAny {
		return map[string]annotation.UriSet{}, nil
	}

	uris := make(annotation.UriSet, len(subjects))
	for _, subject := range subjects {
		u := annotation.NewUri(subject, annotation.ObjectPosition)
		u.IsSafe = true
		uris.Add(u)
	}
	return map[string]annotation.UriSet{target.ID(): uris}, nil
}

// statementFilters extracts the predicate and object URLs a statement
// filters by. Literal objects match on their text.
func statementFilters(statement *annotation.Statement) (predicates, objects []string) {
	if statement.Predicate != nil {
		predicates = statement.Predicate.URLs()
	}
	if statement.Object != nil {
		objects = statement.Object.URLs()
	} else if statement.ObjectLiteral != nil {
		objects = []string{statement.ObjectLiteral.Text}
	}
	return predicates, objects
}

func intersect(a, b []string) []string {
	inB := make(map[string]struct{}, len(b))
	for _, s := range b {
		inB[s] = struct{}{}
	}
	var out []string
	for _, s := range a {
		if _, ok := inB[s]; ok {
			out = append(out, s)
		}
	}
	return out
}

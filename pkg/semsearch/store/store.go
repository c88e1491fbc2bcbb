// Package store defines the contracts for the external databases the
// annotation pipeline talks to: a key-value label store and a knowledge
// graph. Backends live in the subpackages.
package store

import "context"

// KeyValue is a label store mapping a lowercase surface string to a
// JSON-encoded entity description (see annotation.DecodeEntityData for the
// value shape). A missing key yields internalerr.ErrNotFound.
type KeyValue interface {
	Read(ctx context.Context, key string) (string, error)
	Close() error
}

// Knowledge executes a raw graph query against a knowledge store and
// returns the serialized response. Implementations sanitize the query
// unless isSafe is set.
type Knowledge interface {
	Read(ctx context.Context, query string, isSafe bool) (string, error)
	Close() error
}

// Triple is one stored subject-predicate-object fact.
type Triple struct {
	Subject   string
	Predicate string
	Object    string
}

// TripleStore matches triple patterns directly, without a query language in
// between. It backs the triple-based semantic engine.
type TripleStore interface {
	AddTriples(ctx context.Context, triples []Triple) error

	// SubjectsMatching returns the distinct subjects of triples whose
	// predicate is in predicates (if non-empty) and whose object is in
	// objects (if non-empty), ordered by subject. A limit <= 0 means no
	// limit. No match is an empty result, not an error.
	SubjectsMatching(ctx context.Context, predicates, objects []string, limit int) ([]string, error)

	Close() error
}

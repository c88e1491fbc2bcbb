// Package solr converts enriched queries into Solr query strings for the
// document index backing the search portal.
package solr

import (
	"fmt"
	"sort"
	"strings"

	"github.com/biofinder/semsearch/pkg/semsearch/annotation"
)

// Query holds a generated Solr query string.
type Query struct {
	String string
}

// DefaultSearchField is the Solr field searched when none is configured.
const DefaultSearchField = "q"

// Generator converts enriched queries into Solr queries. Multiple URIs
// referencing the same entity are OR-conjuncted; otherwise unrelated terms
// are joined with the default conjunction.
type Generator struct {
	SearchField        string
	DefaultConjunction annotation.RelationshipType
}

// NewGenerator creates a generator with the default search field and an
// AND default conjunction.
func NewGenerator() *Generator {
	return &Generator{
		SearchField:        DefaultSearchField,
		DefaultConjunction: annotation.RelationshipAnd,
	}
}

// ToSolrQuery creates a Solr query from the given query. Statements with an
// explicit relationship consume their annotations and literals; everything
// left over is appended as plain terms. URIs are always quoted.
func (g *Generator) ToSolrQuery(q *annotation.Query) Query {
	annotations := append([]*annotation.Annotation(nil), q.Annotations...)
	literals := append([]*annotation.Word(nil), q.Literals...)

	var expr string
	for _, statement := range q.Statements {
		if statement.Relationship == annotation.RelationshipNone {
			continue
		}

		left := g.clause(statementTerms(statement.Subject, statement.SubjectLiteral), annotation.RelationshipOr)
		right := g.clause(statementTerms(statement.Object, statement.ObjectLiteral), annotation.RelationshipOr)
		merged := merge(left, right, statement.Relationship)

		expr = merge(expr, merged, g.DefaultConjunction)

		annotations = removeByUris(annotations, statement.Subject)
		annotations = removeByUris(annotations, statement.Object)
		literals = removeWord(literals, statement.SubjectLiteral)
		literals = removeWord(literals, statement.ObjectLiteral)
	}

	for _, ann := range annotations {
		terms := make([]string, 0, len(ann.Uris))
		for _, url := range ann.Uris.URLs() {
			terms = append(terms, quote(url))
		}
		expr = merge(expr, g.clause(terms, annotation.RelationshipOr), g.DefaultConjunction)
	}

	if len(literals) > 0 {
		terms := make([]string, 0, len(literals))
		for _, literal := range literals {
			terms = append(terms, literal.Text)
		}
		expr = merge(expr, g.clause(terms, annotation.RelationshipAnd), g.DefaultConjunction)
	}

	return Query{String: expr}
}

// clause renders one field clause, e.g. `q:("a" OR "b")`.
func (g *Generator) clause(terms []string, conjunction annotation.RelationshipType) string {
	if len(terms) == 0 {
		return ""
	}
	joined := strings.Join(terms, " "+conjunctionString(conjunction)+" ")
	if len(terms) > 1 {
		joined = "(" + joined + ")"
	}
	return g.SearchField + ":" + joined
}

// statementTerms renders the terms of one statement slot, sorted for
// deterministic output.
func statementTerms(uris annotation.UriSet, literal *annotation.Word) []string {
	if literal != nil {
		return []string{literal.Text}
	}
	terms := make([]string, 0, len(uris))
	for _, url := range uris.URLs() {
		terms = append(terms, quote(url))
	}
	sort.Strings(terms)
	return terms
}

// merge joins two rendered expressions with the given relationship. An
// empty side passes the other through.
func merge(a, b string, relationship annotation.RelationshipType) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	return fmt.Sprintf("(%s %s %s)", a, conjunctionString(relationship), b)
}

func conjunctionString(relationship annotation.RelationshipType) string {
	if relationship == annotation.RelationshipOr {
		return "OR"
	}
	return "AND"
}

func quote(url string) string {
	return `"` + url + `"`
}

func removeByUris(annotations []*annotation.Annotation, uris annotation.UriSet) []*annotation.Annotation {
	if uris == nil {
		return annotations
	}
	for i, ann := range annotations {
		if ann.Uris.Equal(uris) {
			return append(annotations[:i], annotations[i+1:]...)
		}
	}
	return annotations
}

func removeWord(literals []*annotation.Word, word *annotation.Word) []*annotation.Word {
	if word == nil {
		return literals
	}
	for i, literal := range literals {
		if literal.ID() == word.ID() {
			return append(literals[:i], literals[i+1:]...)
		}
	}
	return literals
}

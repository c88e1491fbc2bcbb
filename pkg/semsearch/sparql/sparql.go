// Package sparql generates SPARQL queries from statement patterns and
// decodes the result bindings of a SPARQL endpoint.
package sparql

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/biofinder/semsearch/pkg/semsearch/annotation"
)

// DefaultLimit caps the result count when the caller passes no limit.
const DefaultLimit = 1000

// DefaultNamespaces holds the prefixes added to every generated query.
func DefaultNamespaces() map[string]string {
	return map[string]string{"terms": "https://dwc.tdwg.org/terms/#"}
}

// HierarchyPredicates are the predicates that link a taxon to any ancestor
// in the systematic hierarchy. A subject match through any of them counts.
func HierarchyPredicates() []string {
	return []string{
		"terms:kingdom",
		"terms:class",
		"terms:order",
		"terms:family",
		"terms:genus",
		"terms:phylum",
		"terms:parentNameUsageID",
		"terms:acceptedNameUsageID",
	}
}

// Generator builds SPARQL SELECT queries from statements.
type Generator struct {
	Limit      int
	Namespaces map[string]string
	Hierarchy  []string
}

// NewGenerator creates a Generator with the default namespaces, hierarchy
// predicates and result limit.
func NewGenerator() *Generator {
	return &Generator{
		Limit:      DefaultLimit,
		Namespaces: DefaultNamespaces(),
		Hierarchy:  HierarchyPredicates(),
	}
}

// Generate builds a SELECT query binding the given variable (including its
// leading "?"). The first statement is a mandatory graph pattern, every
// further statement only narrows the result optionally. A limit <= 0 falls
// back to the generator's limit.
func (g *Generator) Generate(variable string, statements []*annotation.Statement, limit int) string {
	if limit <= 0 {
		limit = g.Limit
	}

	var b strings.Builder
	prefixes := make([]string, 0, len(g.Namespaces))
	for name := range g.Namespaces {
		prefixes = append(prefixes, name)
	}
	sort.Strings(prefixes)
	for _, name := range prefixes {
		fmt.Fprintf(&b, "PREFIX %s: <%s>\n", name, g.Namespaces[name])
	}

	fmt.Fprintf(&b, "SELECT DISTINCT %s\nWHERE {\n", variable)
	for i, statement := range statements {
		optional := i > 0
		g.writePattern(&b, variable, statement, optional)
	}
	b.WriteString("}\n")
	fmt.Fprintf(&b, "ORDER BY %s\nLIMIT %d", variable, limit)

	return b.String()
}

// writePattern emits one grouped graph pattern for a statement: the
// hierarchy triple tying the variable to the statement subject, plus the
// property filter triple when predicate or object are present.
func (g *Generator) writePattern(b *strings.Builder, variable string, statement *annotation.Statement, optional bool) {
	indent := "  "
	if optional {
		b.WriteString(" OPTIONAL {\n")
	} else {
		b.WriteString(" {\n")
	}

	if statement.Subject != nil || statement.SubjectLiteral != nil {
		fmt.Fprintf(b, "%sVALUES ?hasParent {%s}\n", indent, strings.Join(g.Hierarchy, " "))

		subjectTerm := "?subject"
		switch {
		case statement.SubjectLiteral != nil:
			subjectTerm = PrepareLiteral(statement.SubjectLiteral)
		case len(statement.Subject) == 1:
			subjectTerm = PrepareUri(statement.Subject.Any())
		default:
			fmt.Fprintf(b, "%sVALUES %s {%s}\n", indent, subjectTerm, prepareUriValues(statement.Subject))
		}
		fmt.Fprintf(b, "%s%s ?hasParent %s .\n", indent, variable, subjectTerm)
	}

	if statement.Predicate != nil || statement.Object != nil || statement.ObjectLiteral != nil {
		predicateTerm := "?predicates"
		if statement.Predicate != nil {
			fmt.Fprintf(b, "%sVALUES %s {%s}\n", indent, predicateTerm, prepareUriValues(statement.Predicate))
		}

		objectTerm := "?predicateValues"
		switch {
		case statement.ObjectLiteral != nil:
			objectTerm = PrepareLiteral(statement.ObjectLiteral)
		case len(statement.Object) == 1:
			objectTerm = PrepareUri(statement.Object.Any())
		case len(statement.Object) > 1:
			fmt.Fprintf(b, "%sVALUES %s {%s}\n", indent, objectTerm, prepareUriValues(statement.Object))
		}
		fmt.Fprintf(b, "%s%s %s %s .\n", indent, variable, predicateTerm, objectTerm)
	}

	b.WriteString(" }\n")
}

func prepareUriValues(uris annotation.UriSet) string {
	terms := make([]string, 0, len(uris))
	for _, url := range uris.URLs() {
		terms = append(terms, PrepareUri(uris[url]))
	}
	return strings.Join(terms, " ")
}

// PrepareUri renders a Uri as a SPARQL term. http(s) URLs are wrapped in
// angle brackets; everything else (e.g. a prefixed name) passes through.
// Unsafe URIs are escaped first.
func PrepareUri(u *annotation.Uri) string {
	url := u.URL
	if !u.IsSafe {
		url = Escape(url)
	}
	if !strings.HasPrefix(url, "http") || strings.HasPrefix(url, "<") {
		return url
	}
	return "<" + url + ">"
}

// PrepareLiteral renders a word as a quoted SPARQL literal; numeric values
// are typed as xsd:integer. Unsafe words are escaped first.
func PrepareLiteral(w *annotation.Word) string {
	text := w.Text
	if !w.IsSafe {
		text = Escape(text)
	}
	quoted := `"` + text + `"`
	if isNumeric(text) {
		return quoted + "^^<http://www.w3.org/2001/XMLSchema#integer>"
	}
	return quoted
}

// Escape backslash-escapes the characters that can break out of a SPARQL
// string or inject comments.
func Escape(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch r {
		case '\\', '\'', '"', '#', '<', '>':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// response mirrors the application/sparql-results+json shape.
type response struct {
	Results struct {
		Bindings []map[string]struct {
			Value string `json:"value"`
		} `json:"bindings"`
	} `json:"results"`
}

// ParseBindings extracts the values bound to the given variable (without
// the "?") from a SPARQL JSON result. The returned URIs are safe; they came
// from the store, not from user input.
func ParseBindings(raw string, variable string) (annotation.UriSet, error) {
	var decoded response
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, fmt.Errorf("decoding sparql response: %w", err)
	}

	uris := make(annotation.UriSet)
	for _, row := range decoded.Results.Bindings {
		binding, ok := row[variable]
		if !ok || binding.Value == "" {
			continue
		}
		u := annotation.NewUri(binding.Value, annotation.ObjectPosition)
		u.IsSafe = true
		uris.Add(u)
	}
	return uris, nil
}

// Package annotation holds the data model shared by the annotation engines,
// the text annotator and the query processing layer. The types here are plain
// messengers; all behavior lives in the engines.
package annotation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/biofinder/semsearch/pkg/semsearch/internalerr"
)

// NamedEntityType normalizes the named entity category names.
type NamedEntityType string

const (
	Taxon         NamedEntityType = "Taxon"
	Animal        NamedEntityType = "Animal"
	Plant         NamedEntityType = "Plant"
	Location      NamedEntityType = "Location"
	Miscellaneous NamedEntityType = "Miscellaneous"
)

// KnownEntityTypes lists every NamedEntityType the system understands.
func KnownEntityTypes() []NamedEntityType {
	return []NamedEntityType{Taxon, Animal, Plant, Location, Miscellaneous}
}

// Placeholder returns the lowercase marker used in abstracted query strings.
func (t NamedEntityType) Placeholder() string {
	return strings.ToLower(string(t))
}

// namedEntityAliases maps both the plain type names and the annotation
// strings used by existing label-store deployments (e.g. "Plant_Flora").
var namedEntityAliases = map[string]NamedEntityType{
	"taxon":          Taxon,
	"animal":         Animal,
	"animal_fauna":   Animal,
	"plant":          Plant,
	"plant_flora":    Plant,
	"location":       Location,
	"location_place": Location,
	"misc":           Miscellaneous,
	"miscellaneous":  Miscellaneous,
}

// ParseNamedEntityType resolves a type name from a query or a label store
// to its NamedEntityType.
func ParseNamedEntityType(name string) (NamedEntityType, error) {
	if t, ok := namedEntityAliases[strings.ToLower(name)]; ok {
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", internalerr.ErrUnknownEntity, name)
}

// RelationshipType describes how two words in a query relate.
type RelationshipType string

const (
	RelationshipNone RelationshipType = ""
	RelationshipAnd  RelationshipType = "and"
	RelationshipOr   RelationshipType = "or"
)

// Triple positions of an identifier. Position 1 is reserved for the query
// variable and is never stored on a Uri.
const (
	PredicatePosition = 2
	ObjectPosition    = 3
)

// Uri references a real-world entity in the knowledge graph.
type Uri struct {
	URL string

	// PredicatePosition or ObjectPosition.
	PositionInTriple int

	// IsSafe marks the URI as unambiguously resolved. Unsafe values are
	// escaped before they enter a generated query.
	IsSafe bool

	// Labels holds the surface strings that map to this URI.
	Labels map[string]struct{}
}

// NewUri creates a Uri at the given triple position.
func NewUri(url string, positionInTriple int) *Uri {
	return &Uri{URL: url, PositionInTriple: positionInTriple}
}

// UriSet is a set of URIs keyed by URL.
type UriSet map[string]*Uri

// NewUriSet builds a set from the given URIs.
func NewUriSet(uris ...*Uri) UriSet {
	set := make(UriSet, len(uris))
	for _, u := range uris {
		set[u.URL] = u
	}
	return set
}

// Add inserts a Uri into the set.
func (s UriSet) Add(u *Uri) { s[u.URL] = u }

// Contains reports whether the set holds the given URL.
func (s UriSet) Contains(url string) bool {
	_, ok := s[url]
	return ok
}

// URLs returns all URLs in deterministic order.
func (s UriSet) URLs() []string {
	urls := make([]string, 0, len(s))
	for url := range s {
		urls = append(urls, url)
	}
	sort.Strings(urls)
	return urls
}

// Key returns a deterministic identity for the set, usable as a map key.
func (s UriSet) Key() string {
	return strings.Join(s.URLs(), "\x1f")
}

// Equal reports whether both sets contain the same URLs.
func (s UriSet) Equal(other UriSet) bool {
	if len(s) != len(other) {
		return false
	}
	for url := range s {
		if !other.Contains(url) {
			return false
		}
	}
	return true
}

// Clone returns a shallow copy of the set.
func (s UriSet) Clone() UriSet {
	if s == nil {
		return nil
	}
	clone := make(UriSet, len(s))
	for url, u := range s {
		clone[url] = u
	}
	return clone
}

// Any returns an arbitrary element of the set.
func (s UriSet) Any() *Uri {
	for _, u := range s {
		return u
	}
	return nil
}

// Word is a span of the original query text. A word can cover multiple
// tokens. Offsets are half-open and relative to the original string.
type Word struct {
	Begin int
	End   int
	Text  string

	// Lemma is empty until a lemmatizer ran.
	Lemma string

	// IsQuoted marks words that were quoted in the original text.
	IsQuoted bool

	// IsSafe marks words whose text needs no escaping in generated queries.
	IsSafe bool
}

// ID identifies the word by its span.
func (w *Word) ID() string {
	return fmt.Sprintf("%d/%d", w.Begin, w.End)
}

// Join concatenates two words into one covering both spans.
func (w *Word) Join(other *Word) *Word {
	joined := &Word{
		Begin: w.Begin,
		End:   other.End,
		Text:  w.Text + " " + other.Text,
		Lemma: w.Lemma + " " + other.Lemma,
	}
	if other.Begin < w.Begin {
		joined.Begin = other.Begin
	}
	if w.End > other.End {
		joined.End = w.End
	}
	return joined
}

// Feature is one semantic fact extracted about an annotation, in the form
// [property] [value]. A nil Property denotes a bare identity fact.
type Feature struct {
	Property     UriSet
	Value        UriSet
	LiteralValue *Word
}

// Annotation is a text span tagged with a semantic type and candidate or
// resolved URIs. Uris may shrink or be replaced during disambiguation and
// resolution; Features are append-only provenance.
type Annotation struct {
	Word

	NamedEntityType NamedEntityType
	Uris            UriSet

	// Ambiguities holds alternative interpretations of the same span,
	// resolved by the disambiguation engine.
	Ambiguities []*Annotation

	Features []Feature

	// IsFeature marks annotations that only describe another annotation
	// and are removed from the query after resolution.
	IsFeature bool
}

// Clone copies the annotation without sharing its mutable members.
func (a *Annotation) Clone() *Annotation {
	clone := &Annotation{
		Word:            a.Word,
		NamedEntityType: a.NamedEntityType,
		Uris:            a.Uris.Clone(),
		IsFeature:       a.IsFeature,
	}
	clone.Ambiguities = append(clone.Ambiguities, a.Ambiguities...)
	clone.Features = append(clone.Features, a.Features...)
	return clone
}

// Statement is a subject-predicate-object pattern extracted from the query.
// None of the positions is mandatory; the subject position holds the query
// variable until resolution binds it.
type Statement struct {
	Subject        UriSet
	SubjectLiteral *Word
	Predicate      UriSet
	Object         UriSet
	ObjectLiteral  *Word
	Relationship   RelationshipType
}

// Relation is the raw output of the dependency linking engine: pattern role
// names mapped to word ids, before statements are built from it.
type Relation struct {
	Roles        map[string]string
	Relationship RelationshipType
}

// Result holds the state of one annotation run. Every engine receives the
// current Result, updates its own section and leaves the rest untouched.
type Result struct {
	Language      string
	Tokens        []*Word
	NamedEntities []*Annotation
	Literals      []*Word

	// EntityLinking maps annotation id to the candidate URIs per type.
	EntityLinking map[string]map[NamedEntityType]UriSet

	// Disambiguated maps the id of an ambiguous annotation to its resolved
	// interpretation.
	Disambiguated map[string]*Annotation

	Relations []Relation
}

// NewResult creates an empty annotation result.
func NewResult() *Result {
	return &Result{
		EntityLinking: make(map[string]map[NamedEntityType]UriSet),
		Disambiguated: make(map[string]*Annotation),
	}
}

// Query holds a user query together with all enrichment derived from it.
// A Query is owned by a single caller and mutated in place.
type Query struct {
	ID          string
	Text        string
	Annotations []*Annotation
	Literals    []*Word
	Statements  []*Statement
}

// NewQuery creates a Query for the given user input.
func NewQuery(text string) *Query {
	return &Query{Text: text}
}

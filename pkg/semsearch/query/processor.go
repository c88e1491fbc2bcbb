// Package query orchestrates the semantic enrichment of user queries:
// annotating the text, compiling statements, and resolving annotations
// against a knowledge engine.
package query

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/biofinder/semsearch/pkg/semsearch/annotate"
	"github.com/biofinder/semsearch/pkg/semsearch/annotation"
	"github.com/biofinder/semsearch/pkg/semsearch/internalerr"
)

// SemanticEngine inferences additional URI data for the annotations of a
// query. The result maps annotation ids to their updated URI sets; an
// empty set is a valid binding and means the engine searched but found
// nothing.
type SemanticEngine interface {
	GenerateQuerySemantics(ctx context.Context, q *annotation.Query, limit int) (map[string]annotation.UriSet, error)
}

// Processor enriches Query objects. The text annotator drives the
// annotation phase; the semantic engine, when present, drives resolution.
type Processor struct {
	annotator *annotate.Annotator
	engine    SemanticEngine

	mu      sync.Mutex
	entropy io.Reader
}

// NewProcessor creates a processor. The engine may be nil when only
// annotation is needed; ResolveQueryAnnotations then fails.
func NewProcessor(annotator *annotate.Annotator, engine SemanticEngine) *Processor {
	return &Processor{
		annotator: annotator,
		engine:    engine,
		entropy:   ulid.Monotonic(rand.Reader, 0),
	}
}

// UpdateQueryWithAnnotations annotates the query text and compiles the
// annotations, literals, statements and features in place. The query gets
// an id on its first annotation run.
func (p *Processor) UpdateQueryWithAnnotations(ctx context.Context, q *annotation.Query) error {
	if p.annotator == nil {
		return fmt.Errorf("%w: no text annotator configured", internalerr.ErrInvalidConfig)
	}

	result, err := p.annotator.Annotate(ctx, q.Text)
	if err != nil {
		return err
	}

	if q.ID == "" {
		q.ID = p.newID()
	}
	q.Annotations = result.NamedEntities
	q.Literals = result.Literals
	q.Statements = BuildStatements(result.Relations, q.Annotations, q.Literals)

	updateAnnotationFeatures(q)
	return nil
}

// ResolveQueryAnnotations lets the semantic engine bind URI data to the
// query annotations. On success the bound URI sets replace the annotation
// URIs (an empty binding empties them), ambiguities are purged and
// annotations that only describe another annotation leave the query. On an
// engine error the query stays untouched.
//
// The returned bool reports whether the engine found data for at least one
// annotation.
func (p *Processor) ResolveQueryAnnotations(ctx context.Context, q *annotation.Query, limit int) (bool, error) {
	if p.engine == nil {
		return false, fmt.Errorf("%w: no semantic engine configured", internalerr.ErrInvalidConfig)
	}

	data, err := p.engine.GenerateQuerySemantics(ctx, q, limit)
	if err != nil {
		return false, err
	}

	enriched := false
	for _, ann := range q.Annotations {
		uris, ok := data[ann.ID()]
		if !ok {
			continue
		}
		ann.Uris = uris
		if len(uris) > 0 {
			enriched = true
		}
	}

	for _, ann := range q.Annotations {
		ann.Ambiguities = nil
	}
	pruneFeatureWords(q)

	return enriched, nil
}

func (p *Processor) newID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), p.entropy).String()
}

// updateAnnotationFeatures derives Features for every annotation that is
// the subject of a statement and marks annotations consumed as property or
// value of another annotation.
func updateAnnotationFeatures(q *annotation.Query) {
	byUris := make(map[string]*annotation.Annotation, len(q.Annotations))
	for _, ann := range q.Annotations {
		byUris[ann.Uris.Key()] = ann
	}

	for _, statement := range q.Statements {
		if statement.Subject == nil {
			continue
		}
		ann, ok := byUris[statement.Subject.Key()]
		if !ok {
			continue
		}

		createFeaturesFromStatement(ann, statement)

		for _, feature := range ann.Features {
			markReferencedAnnotations(feature, ann, byUris)
		}
	}
}

// createFeaturesFromStatement appends the facts a statement states about
// the annotation: its own identity and, when present, the property filter.
func createFeaturesFromStatement(ann *annotation.Annotation, statement *annotation.Statement) {
	if identity := featureFromUris(ann.Uris); identity != nil {
		ann.Features = append(ann.Features, *identity)
	}

	feature := featureFromUris(statement.Object)
	if feature == nil {
		feature = featureFromUris(statement.Predicate)
		if feature != nil {
			if statement.Object != nil {
				feature.Value = statement.Object
			} else if statement.ObjectLiteral != nil {
				feature.LiteralValue = statement.ObjectLiteral
			}
		}
	} else {
		feature.Property = statement.Predicate
	}

	if feature != nil {
		ann.Features = append(ann.Features, *feature)
	}
}

// featureFromUris creates a Feature holding the URIs in the slot their
// triple position demands. Empty sets yield no feature.
func featureFromUris(uris annotation.UriSet) *annotation.Feature {
	if len(uris) == 0 {
		return nil
	}
	if uris.Any().PositionInTriple == annotation.PredicatePosition {
		return &annotation.Feature{Property: uris}
	}
	return &annotation.Feature{Value: uris}
}

// markReferencedAnnotations flags every other annotation whose URI set
// appears in the feature, so resolution can drop it from the query.
func markReferencedAnnotations(feature annotation.Feature, owner *annotation.Annotation, byUris map[string]*annotation.Annotation) {
	for _, uris := range []annotation.UriSet{feature.Value, feature.Property} {
		if uris == nil {
			continue
		}
		if referenced, ok := byUris[uris.Key()]; ok && referenced != owner {
			referenced.IsFeature = true
		}
	}
}

// pruneFeatureWords removes annotations marked as features of another
// annotation and literals consumed as feature values.
func pruneFeatureWords(q *annotation.Query) {
	consumedLiterals := make(map[string]struct{})
	for _, ann := range q.Annotations {
		for _, feature := range ann.Features {
			if feature.LiteralValue != nil {
				consumedLiterals[feature.LiteralValue.ID()] = struct{}{}
			}
		}
	}

	kept := q.Annotations[:0]
	for _, ann := range q.Annotations {
		if !ann.IsFeature {
			kept = append(kept, ann)
		}
	}
	q.Annotations = kept

	keptLiterals := q.Literals[:0]
	for _, lit := range q.Literals {
		if _, ok := consumedLiterals[lit.ID()]; !ok {
			keptLiterals = append(keptLiterals, lit)
		}
	}
	q.Literals = keptLiterals
}

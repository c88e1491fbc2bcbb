package query

import (
	"context"

	"github.com/biofinder/semsearch/pkg/semsearch/annotation"
	"github.com/biofinder/semsearch/pkg/semsearch/sparql"
	"github.com/biofinder/semsearch/pkg/semsearch/store"
)

// taxonVariable is the result variable bound by the generated queries.
const taxonVariable = "taxon"

// SparqlEngine resolves query statements against a SPARQL knowledge
// database. All retrieved URIs bind to the first taxonomic annotation of
// the query.
type SparqlEngine struct {
	database  store.Knowledge
	generator *sparql.Generator
}

// NewSparqlEngine creates an engine over the given knowledge database.
func NewSparqlEngine(database store.Knowledge) *SparqlEngine {
	return &SparqlEngine{database: database, generator: sparql.NewGenerator()}
}

// GenerateQuerySemantics implements SemanticEngine. A query without
// statements or without a taxonomic annotation yields no bindings; a query
// the database has no data for yields an explicit empty binding.
func (e *SparqlEngine) GenerateQuerySemantics(ctx context.Context, q *annotation.Query, limit int) (map[string]annotation.UriSet, error) {
	target := taxonAnnotation(q)
	if target == nil || len(q.Statements) == 0 {
		return map[string]annotation.UriSet{}, nil
	}

	sparqlQuery := e.generator.Generate("?"+taxonVariable, q.Statements, limit)

	response, err := e.database.Read(ctx, sparqlQuery, true)
	if err != nil {
		return nil, err
	}

	uris, err := sparql.ParseBindings(response, taxonVariable)
	if err != nil {
		return nil, err
	}

	return map[string]annotation.UriSet{target.ID(): uris}, nil
}

// taxonAnnotation returns the first annotation of a taxonomic type.
func taxonAnnotation(q *annotation.Query) *annotation.Annotation {
	for _, ann := range q.Annotations {
		switch ann.NamedEntityType {
		case annotation.Taxon, annotation.Plant, annotation.Animal:
			return ann
		}
	}
	return nil
}

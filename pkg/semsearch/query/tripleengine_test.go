package query

import (
	"context"
	"testing"

	"github.com/biofinder/semsearch/pkg/semsearch/annotation"
	"github.com/biofinder/semsearch/pkg/semsearch/store"
	"github.com/biofinder/semsearch/pkg/semsearch/store/memstore"
)

func taxonQuery(statements ...*annotation.Statement) (*annotation.Query, *annotation.Annotation) {
	target := &annotation.Annotation{
		Word:            annotation.Word{Begin: 0, End: 8, Text: "Pflanzen"},
		NamedEntityType: annotation.Taxon,
		Uris:            annotation.NewUriSet(annotation.NewUri(taxonPlantaeURI, annotation.ObjectPosition)),
	}
	q := annotation.NewQuery("Pflanzen")
	q.Annotations = []*annotation.Annotation{target}
	q.Statements = statements
	return q, target
}

func propertyStatement(subject annotation.UriSet, predicateURI, objectURI string) *annotation.Statement {
	return &annotation.Statement{
		Subject:   subject,
		Predicate: annotation.NewUriSet(annotation.NewUri(predicateURI, annotation.PredicatePosition)),
		Object:    annotation.NewUriSet(annotation.NewUri(objectURI, annotation.ObjectPosition)),
	}
}

func TestTripleEngineResolvesSubjects(t *testing.T) {
	engine := NewTripleEngine(testTriples(t))
	q, target := taxonQuery()
	q.Statements = []*annotation.Statement{propertyStatement(target.Uris, propertyFlowerURI, valueRedURI)}

	bindings, err := engine.GenerateQuerySemantics(context.Background(), q, 0)
	if err != nil {
		t.Fatal(err)
	}

	uris, ok := bindings[target.ID()]
	if !ok {
		t.Fatal("result should bind to the taxon annotation")
	}
	if !uris.Contains(plantPapaverURI) {
		t.Errorf("expected the red-flowered plant, got %v", uris.URLs())
	}
	if uris.Contains(plantFagusURI) {
		t.Error("the green-flowered plant must not match")
	}
	if !uris[plantPapaverURI].IsSafe {
		t.Error("store-provided uris are safe")
	}
}

func TestTripleEngineSkipsIdentityStatements(t *testing.T) {
	engine := NewTripleEngine(testTriples(t))
	q, _ := taxonQuery(&annotation.Statement{
		Subject: annotation.NewUriSet(annotation.NewUri(plantFagusURI, annotation.ObjectPosition)),
	})

	bindings, err := engine.GenerateQuerySemantics(context.Background(), q, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(bindings) != 0 {
		t.Errorf("identity-only statements carry no filter, got %v", bindings)
	}
}

func TestTripleEngineWithoutTaxonAnnotation(t *testing.T) {
	engine := NewTripleEngine(testTriples(t))
	q := annotation.NewQuery("Paris")
	q.Annotations = []*annotation.Annotation{{
		Word:            annotation.Word{Begin: 0, End: 5, Text: "Paris"},
		NamedEntityType: annotation.Location,
	}}
	q.Statements = []*annotation.Statement{propertyStatement(q.Annotations[0].Uris, propertyFlowerURI, valueRedURI)}

	bindings, err := engine.GenerateQuerySemantics(context.Background(), q, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(bindings) != 0 {
		t.Errorf("no taxonomic annotation means no binding target, got %v", bindings)
	}
}

func TestTripleEngineMatchesLiteralObjects(t *testing.T) {
	triples := memstore.NewTripleStore()
	err := triples.AddTriples(context.Background(), []store.Triple{
		{Subject: plantPapaverURI, Predicate: propertyFlowerURI, Object: "4"},
	})
	if err != nil {
		t.Fatal(err)
	}

	engine := NewTripleEngine(triples)
	q, target := taxonQuery(&annotation.Statement{
		Subject:       annotation.NewUriSet(annotation.NewUri(taxonPlantaeURI, annotation.ObjectPosition)),
		Predicate:     annotation.NewUriSet(annotation.NewUri(propertyFlowerURI, annotation.PredicatePosition)),
		ObjectLiteral: &annotation.Word{Text: "4"},
	})

	bindings, err := engine.GenerateQuerySemantics(context.Background(), q, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !bindings[target.ID()].Contains(plantPapaverURI) {
		t.Errorf("literal objects match on their text, got %v", bindings[target.ID()].URLs())
	}
}

func TestTripleEngineIntersectsStatements(t *testing.T) {
	triples := memstore.NewTripleStore()
	err := triples.AddTriples(context.Background(), []store.Triple{
		{Subject: plantPapaverURI, Predicate: propertyFlowerURI, Object: valueRedURI},
		{Subject: plantFagusURI, Predicate: propertyFlowerURI, Object: valueRedURI},
		{Subject: plantFagusURI, Predicate: propertyFlowerURI, Object: "https://example.org/property/value/green"},
	})
	if err != nil {
		t.Fatal(err)
	}

	engine := NewTripleEngine(triples)
	q, target := taxonQuery(
		propertyStatement(nil, propertyFlowerURI, valueRedURI),
		propertyStatement(nil, propertyFlowerURI, "https://example.org/property/value/green"),
	)

	bindings, err := engine.GenerateQuerySemantics(context.Background(), q, 0)
	if err != nil {
		t.Fatal(err)
	}

	uris := bindings[target.ID()]
	if !uris.Contains(plantFagusURI) || uris.Contains(plantPapaverURI) {
		t.Errorf("later statements narrow the result, got %v", uris.URLs())
	}
}

func TestTripleEngineLaterEmptyStatementDoesNotClear(t *testing.T) {
	engine := NewTripleEngine(testTriples(t))
	q, target := taxonQuery(
		propertyStatement(nil, propertyFlowerURI, valueRedURI),
		propertyStatement(nil, propertyFlowerURI, "https://example.org/property/value/blue"),
	)

	bindings, err := engine.GenerateQuerySemantics(context.Background(), q, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !bindings[target.ID()].Contains(plantPapaverURI) {
		t.Errorf("a non-matching later statement is optional, got %v", bindings[target.ID()].URLs())
	}
}

package query

import (
	"testing"

	"github.com/biofinder/semsearch/pkg/semsearch/annotation"
)

func TestBuildStatementsFromRoles(t *testing.T) {
	subject := &annotation.Annotation{
		Word: annotation.Word{Begin: 0, End: 8, Text: "Pflanzen"},
		Uris: annotation.NewUriSet(annotation.NewUri(taxonPlantaeURI, annotation.ObjectPosition)),
	}
	object := &annotation.Annotation{
		Word: annotation.Word{Begin: 13, End: 18, Text: "roten"},
		Uris: annotation.NewUriSet(annotation.NewUri(valueRedURI, annotation.ObjectPosition)),
	}
	predicate := &annotation.Annotation{
		Word: annotation.Word{Begin: 19, End: 26, Text: "Blüten"},
		Uris: annotation.NewUriSet(annotation.NewUri(propertyFlowerURI, annotation.PredicatePosition)),
	}

	relations := []annotation.Relation{{Roles: map[string]string{
		"subject":   "0/8",
		"object":    "13/18",
		"predicate": "19/26",
	}}}

	statements := BuildStatements(relations, []*annotation.Annotation{subject, object, predicate}, nil)
	if len(statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(statements))
	}
	s := statements[0]
	if !s.Subject.Contains(taxonPlantaeURI) || !s.Object.Contains(valueRedURI) || !s.Predicate.Contains(propertyFlowerURI) {
		t.Errorf("roles mapped wrong: %+v", s)
	}
}

func TestBuildStatementsLiteralRoles(t *testing.T) {
	subject := &annotation.Annotation{
		Word: annotation.Word{Begin: 0, End: 8, Text: "Pflanzen"},
		Uris: annotation.NewUriSet(annotation.NewUri(taxonPlantaeURI, annotation.ObjectPosition)),
	}
	predicate := &annotation.Annotation{
		Word: annotation.Word{Begin: 15, End: 29, Text: "Kelchblättern"},
		Uris: annotation.NewUriSet(annotation.NewUri(propertyFlowerURI, annotation.PredicatePosition)),
	}
	count := &annotation.Word{Begin: 13, End: 14, Text: "3"}

	relations := []annotation.Relation{{Roles: map[string]string{
		"subject":   "0/8",
		"object":    "13/14",
		"predicate": "15/29",
	}}}

	statements := BuildStatements(relations, []*annotation.Annotation{subject, predicate}, []*annotation.Word{count})
	if len(statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(statements))
	}
	if statements[0].ObjectLiteral == nil || statements[0].ObjectLiteral.Text != "3" {
		t.Errorf("literal object missing: %+v", statements[0])
	}
}

func TestBuildStatementsTaxonLocationRoles(t *testing.T) {
	taxon := &annotation.Annotation{
		Word: annotation.Word{Begin: 0, End: 5, Text: "Fagus"},
		Uris: annotation.NewUriSet(annotation.NewUri(plantFagusURI, annotation.ObjectPosition)),
	}
	location := &annotation.Annotation{
		Word: annotation.Word{Begin: 9, End: 14, Text: "Paris"},
		Uris: annotation.NewUriSet(annotation.NewUri(locationParisURI, annotation.ObjectPosition)),
	}

	relations := []annotation.Relation{{Roles: map[string]string{
		"taxon":    "0/5",
		"location": "9/14",
	}}}

	statements := BuildStatements(relations, []*annotation.Annotation{taxon, location}, nil)
	if len(statements) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(statements))
	}
	if !statements[0].Subject.Contains(plantFagusURI) {
		t.Error("taxon role fills the subject")
	}
	if !statements[0].Object.Contains(locationParisURI) {
		t.Error("location role fills the object")
	}
}

func TestBuildStatementsUnconsumedAnnotationsGetIdentityStatements(t *testing.T) {
	consumed := &annotation.Annotation{
		Word: annotation.Word{Begin: 0, End: 5, Text: "Fagus"},
		Uris: annotation.NewUriSet(annotation.NewUri(plantFagusURI, annotation.ObjectPosition)),
	}
	leftover := &annotation.Annotation{
		Word: annotation.Word{Begin: 6, End: 11, Text: "Paris"},
		Uris: annotation.NewUriSet(annotation.NewUri(locationParisURI, annotation.ObjectPosition)),
	}

	relations := []annotation.Relation{{Roles: map[string]string{"taxon": "0/5"}}}

	statements := BuildStatements(relations, []*annotation.Annotation{consumed, leftover}, nil)
	if len(statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(statements))
	}
	identity := statements[1]
	if !identity.Subject.Contains(locationParisURI) || identity.Predicate != nil || identity.Object != nil {
		t.Errorf("leftover annotation should yield a bare identity statement, got %+v", identity)
	}
}

func TestBuildStatementsRelationship(t *testing.T) {
	a := &annotation.Annotation{
		Word: annotation.Word{Begin: 0, End: 5, Text: "Fagus"},
		Uris: annotation.NewUriSet(annotation.NewUri(plantFagusURI, annotation.ObjectPosition)),
	}
	b := &annotation.Annotation{
		Word: annotation.Word{Begin: 10, End: 17, Text: "Quercus"},
		Uris: annotation.NewUriSet(annotation.NewUri("https://example.org/plant/quercus", annotation.ObjectPosition)),
	}

	relations := []annotation.Relation{{
		Roles:        map[string]string{"subject": "0/5", "object": "10/17"},
		Relationship: annotation.RelationshipOr,
	}}

	statements := BuildStatements(relations, []*annotation.Annotation{a, b}, nil)
	if statements[0].Relationship != annotation.RelationshipOr {
		t.Errorf("relationship should carry over, got %q", statements[0].Relationship)
	}
}

package query

import (
	"github.com/biofinder/semsearch/pkg/semsearch/annotation"
)

// Pattern role names produced by the dependency linker.
const (
	roleSubject   = "subject"
	rolePredicate = "predicate"
	roleObject    = "object"
	roleTaxon     = "taxon"
	roleLocation  = "location"
)

// BuildStatements compiles the relations of an annotation run into
// subject-predicate-object statements. Roles referencing an annotation
// contribute its URI set, roles referencing a literal contribute the word
// itself. Annotations no relation consumed still matter to the search, so
// each of them yields a bare identity statement.
func BuildStatements(relations []annotation.Relation, annotations []*annotation.Annotation, literals []*annotation.Word) []*annotation.Statement {
	annotationByID := make(map[string]*annotation.Annotation, len(annotations))
	for _, ann := range annotations {
		annotationByID[ann.ID()] = ann
	}
	literalByID := make(map[string]*annotation.Word, len(literals))
	for _, lit := range literals {
		literalByID[lit.ID()] = lit
	}

	var statements []*annotation.Statement
	consumed := make(map[string]struct{})

	for _, relation := range relations {
		statement := &annotation.Statement{Relationship: relation.Relationship}

		for role, wordID := range relation.Roles {
			if ann, ok := annotationByID[wordID]; ok {
				consumed[wordID] = struct{}{}
				assignUris(statement, role, ann.Uris)
				continue
			}
			if lit, ok := literalByID[wordID]; ok {
				assignLiteral(statement, role, lit)
			}
		}
		statements = append(statements, statement)
	}

	for _, ann := range annotations {
		if _, ok := consumed[ann.ID()]; ok {
			continue
		}
		statements = append(statements, &annotation.Statement{Subject: ann.Uris})
	}

	return statements
}

func assignUris(statement *annotation.Statement, role string, uris annotation.UriSet) {
	switch role {
	case roleSubject, roleTaxon:
		statement.Subject = uris
	case rolePredicate:
		statement.Predicate = uris
	case roleObject, roleLocation:
		statement.Object = uris
	}
}

func assignLiteral(statement *annotation.Statement, role string, word *annotation.Word) {
	switch role {
	case roleSubject, roleTaxon:
		statement.SubjectLiteral = word
	case roleObject, roleLocation:
		statement.ObjectLiteral = word
	}
}

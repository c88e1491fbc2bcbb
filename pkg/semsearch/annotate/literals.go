package annotate

import (
	"context"

	"github.com/biofinder/semsearch/pkg/semsearch/annotation"
)

// LiteralAnnotator collects every token not covered by a named entity span.
// Literals carry filter values ("rot", "30") and connective words ("in",
// "und") that later drive disambiguation and dependency linking.
type LiteralAnnotator struct{}

// NewLiteralAnnotator creates a literal annotator.
func NewLiteralAnnotator() *LiteralAnnotator { return &LiteralAnnotator{} }

// Name implements Engine.
func (l *LiteralAnnotator) Name() string { return LiteralsName }

// Requires implements Engine.
func (l *LiteralAnnotator) Requires() []string { return []string{RecognizerName} }

// Annotate implements Engine. Tokens and named entities are both ordered by
// offset, so one linear sweep suffices.
func (l *LiteralAnnotator) Annotate(_ context.Context, _ string, result *annotation.Result) error {
	var literals []*annotation.Word

	next := 0
	for _, token := range result.Tokens {
		covered := false
		for next < len(result.NamedEntities) && result.NamedEntities[next].End <= token.Begin {
			next++
		}
		if next < len(result.NamedEntities) {
			entity := result.NamedEntities[next]
			if token.Begin >= entity.Begin && token.End <= entity.End {
				covered = true
			}
		}
		if !covered {
			literals = append(literals, token)
		}
	}

	result.Literals = literals
	return nil
}

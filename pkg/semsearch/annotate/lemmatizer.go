package annotate

import (
	"context"
	"strings"

	"github.com/biofinder/semsearch/pkg/semsearch/annotation"
	"github.com/biofinder/semsearch/pkg/semsearch/lemma"
)

// DefaultLanguage is used when no language was detected for a query.
const DefaultLanguage = "de"

// Lemmatizer sets the lemma of every token through an injected per-language
// lookup. Lemmatization never fails; unsupported languages fall back to the
// lowercased surface form inside the lookup.
type Lemmatizer struct {
	lookup          lemma.LookupFunc
	defaultLanguage string
}

// NewLemmatizer creates a lemmatizer around the given lookup. An empty
// defaultLanguage falls back to DefaultLanguage.
func NewLemmatizer(lookup lemma.LookupFunc, defaultLanguage string) *Lemmatizer {
	if defaultLanguage == "" {
		defaultLanguage = DefaultLanguage
	}
	return &Lemmatizer{lookup: lookup, defaultLanguage: defaultLanguage}
}

// Name implements Engine.
func (l *Lemmatizer) Name() string { return LemmatizerName }

// Requires implements Engine.
func (l *Lemmatizer) Requires() []string { return []string{TokenizerName} }

// Annotate implements Engine.
func (l *Lemmatizer) Annotate(_ context.Context, _ string, result *annotation.Result) error {
	language := result.Language
	if language == "" {
		language = l.defaultLanguage
	}

	for _, token := range result.Tokens {
		// German articles share a surface form with unrelated lemmas in
		// dictionary-based lemmatizers; they pass through unchanged.
		switch strings.ToLower(token.Text) {
		case "der", "die", "das":
			token.Lemma = token.Text
		default:
			token.Lemma = l.lookup(token.Text, language)
		}
	}
	return nil
}

package annotate

import (
	"context"
	"testing"

	"github.com/biofinder/semsearch/pkg/semsearch/annotation"
)

func lemmatize(t *testing.T, text, language string) []*annotation.Word {
	t.Helper()
	result := annotation.NewResult()
	result.Language = language
	ctx := context.Background()
	if err := NewTokenizer().Annotate(ctx, text, result); err != nil {
		t.Fatal(err)
	}
	if err := NewLemmatizer(testLemmaLookup(), "de").Annotate(ctx, text, result); err != nil {
		t.Fatal(err)
	}
	return result.Tokens
}

func TestLemmatizerUsesDictionary(t *testing.T) {
	tokens := lemmatize(t, "Pflanzen mit roten Blüten", "de")

	want := []string{"pflanze", "mit", "rot", "blüte"}
	for i, token := range tokens {
		if token.Lemma != want[i] {
			t.Errorf("token %q: got lemma %q, want %q", token.Text, token.Lemma, want[i])
		}
	}
}

func TestLemmatizerKeepsGermanArticles(t *testing.T) {
	tokens := lemmatize(t, "die Pflanzen", "de")

	if tokens[0].Lemma != "die" {
		t.Errorf("articles must pass through unchanged, got %q", tokens[0].Lemma)
	}
}

func TestLemmatizerDefaultsLanguage(t *testing.T) {
	// No detected language: the configured default applies.
	tokens := lemmatize(t, "Pflanzen", "")

	if tokens[0].Lemma != "pflanze" {
		t.Errorf("default language lookup failed, got %q", tokens[0].Lemma)
	}
}

func TestLemmatizerUnknownWordLowercases(t *testing.T) {
	tokens := lemmatize(t, "Fagus", "de")

	if tokens[0].Lemma != "fagus" {
		t.Errorf("unknown word should lowercase, got %q", tokens[0].Lemma)
	}
}

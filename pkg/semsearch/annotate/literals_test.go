package annotate

import (
	"context"
	"testing"

	"github.com/biofinder/semsearch/pkg/semsearch/annotation"
)

func TestLiteralsAreUncoveredTokens(t *testing.T) {
	text := "Wo finde ich Fagus sylvatica in Paris?"
	result := annotation.NewResult()
	ctx := context.Background()
	labels := testLabels()
	for _, engine := range []Engine{
		NewTokenizer(),
		NewLemmatizer(testLemmaLookup(), "de"),
		NewEntityRecognizer(labels, nil),
		NewLiteralAnnotator(),
	} {
		if err := engine.Annotate(ctx, text, result); err != nil {
			t.Fatalf("engine %s: %v", engine.Name(), err)
		}
	}

	want := []string{"Wo", "finde", "ich", "in"}
	if len(result.Literals) != len(want) {
		t.Fatalf("expected %d literals, got %d", len(want), len(result.Literals))
	}
	for i, literal := range result.Literals {
		if literal.Text != want[i] {
			t.Errorf("literal %d: got %q, want %q", i, literal.Text, want[i])
		}
	}
}

func TestLiteralsWithoutEntities(t *testing.T) {
	text := "irgendwas anderes"
	result := annotation.NewResult()
	ctx := context.Background()
	for _, engine := range []Engine{
		NewTokenizer(),
		NewLemmatizer(testLemmaLookup(), "de"),
		NewEntityRecognizer(testLabels(), nil),
		NewLiteralAnnotator(),
	} {
		if err := engine.Annotate(ctx, text, result); err != nil {
			t.Fatal(err)
		}
	}

	if len(result.Literals) != 2 {
		t.Errorf("every token should be a literal, got %d", len(result.Literals))
	}
}

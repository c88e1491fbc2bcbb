package annotate

import (
	"context"
	"testing"

	"github.com/biofinder/semsearch/pkg/semsearch/annotation"
)

func tokenize(t *testing.T, text string) []*annotation.Word {
	t.Helper()
	result := annotation.NewResult()
	if err := NewTokenizer().Annotate(context.Background(), text, result); err != nil {
		t.Fatalf("tokenize: %v", err)
	}
	return result.Tokens
}

func TestTokenizerBasic(t *testing.T) {
	tokens := tokenize(t, "Fagus sylvatica in Paris")

	want := []string{"Fagus", "sylvatica", "in", "Paris"}
	if len(tokens) != len(want) {
		t.Fatalf("expected %d tokens, got %d", len(want), len(tokens))
	}
	for i, token := range tokens {
		if token.Text != want[i] {
			t.Errorf("token %d: got %q, want %q", i, token.Text, want[i])
		}
	}
}

func TestTokenizerOffsetsReconstructText(t *testing.T) {
	text := "Wo finde ich Fagus sylvatica in Paris?"
	for _, token := range tokenize(t, text) {
		if token.Begin < 0 || token.End > len(text) || token.Begin >= token.End {
			t.Fatalf("bad span %d/%d for %q", token.Begin, token.End, token.Text)
		}
		if !token.IsQuoted && text[token.Begin:token.End] != token.Text {
			t.Errorf("span %d/%d yields %q, token text is %q",
				token.Begin, token.End, text[token.Begin:token.End], token.Text)
		}
	}
}

func TestTokenizerStripsEdgePunctuation(t *testing.T) {
	tokens := tokenize(t, "Wo ist Paris?")

	last := tokens[len(tokens)-1]
	if last.Text != "Paris" {
		t.Errorf("question mark should be stripped, got %q", last.Text)
	}
	if last.End-last.Begin != len("Paris") {
		t.Errorf("span should shrink with the stripped punctuation, got %d/%d", last.Begin, last.End)
	}
}

func TestTokenizerQuotedPhrase(t *testing.T) {
	text := `Suche "Fagus sylvatica" in Paris`
	tokens := tokenize(t, text)

	if len(tokens) != 4 {
		t.Fatalf("expected 4 tokens, got %d", len(tokens))
	}

	quoted := tokens[1]
	if !quoted.IsQuoted {
		t.Error("quoted phrase should be marked")
	}
	if quoted.Text != "Fagus sylvatica" {
		t.Errorf("token text should lose the quotes, got %q", quoted.Text)
	}
	if text[quoted.Begin:quoted.End] != `"Fagus sylvatica"` {
		t.Errorf("span should keep the quotes, got %q", text[quoted.Begin:quoted.End])
	}
}

func TestTokenizerEmptyInput(t *testing.T) {
	if tokens := tokenize(t, ""); len(tokens) != 0 {
		t.Errorf("empty input should yield no tokens, got %d", len(tokens))
	}
	if tokens := tokenize(t, "  \t \n "); len(tokens) != 0 {
		t.Errorf("whitespace input should yield no tokens, got %d", len(tokens))
	}
}

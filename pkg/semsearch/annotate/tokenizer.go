package annotate

import (
	"context"

	"github.com/biofinder/semsearch/pkg/semsearch/annotation"
)

// Tokenizer splits the query text on whitespace into offset-carrying
// words. Quoted substrings stay one token; the span keeps the quotation
// marks while the token text loses them. Question marks, exclamation marks
// and semicolons are stripped from token edges.
type Tokenizer struct{}

// NewTokenizer creates a tokenizer.
func NewTokenizer() *Tokenizer { return &Tokenizer{} }

// Name implements Engine.
func (t *Tokenizer) Name() string { return TokenizerName }

// Requires implements Engine.
func (t *Tokenizer) Requires() []string { return nil }

// Annotate implements Engine. Empty input yields an empty token sequence.
func (t *Tokenizer) Annotate(_ context.Context, text string, result *annotation.Result) error {
	var tokens []*annotation.Word

	i := 0
	for i < len(text) {
		if isSpace(text[i]) {
			i++
			continue
		}

		begin := i
		if isQuoteChar(text[i]) {
			quote := text[i]
			i++
			for i < len(text) && text[i] != quote {
				i++
			}
			if i < len(text) {
				i++
			}
		} else {
			for i < len(text) && !isSpace(text[i]) {
				i++
			}
		}

		if word := makeWord(text, begin, i); word != nil {
			tokens = append(tokens, word)
		}
	}

	result.Tokens = tokens
	return nil
}

// makeWord builds a Word for the span [begin,end), trimming edge
// punctuation and resolving quotation.
func makeWord(text string, begin, end int) *annotation.Word {
	for begin < end && isEdgePunctuation(text[begin]) {
		begin++
	}
	for end > begin && isEdgePunctuation(text[end-1]) {
		end--
	}
	if begin == end {
		return nil
	}

	raw := text[begin:end]
	quoted := len(raw) >= 2 && isQuoteChar(raw[0]) && isQuoteChar(raw[len(raw)-1])

	trimmed := raw
	for len(trimmed) > 0 && isQuoteChar(trimmed[0]) {
		trimmed = trimmed[1:]
	}
	for len(trimmed) > 0 && isQuoteChar(trimmed[len(trimmed)-1]) {
		trimmed = trimmed[:len(trimmed)-1]
	}
	if trimmed == "" {
		return nil
	}

	return &annotation.Word{Begin: begin, End: end, Text: trimmed, IsQuoted: quoted}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isQuoteChar(c byte) bool {
	return c == '"' || c == '\''
}

func isEdgePunctuation(c byte) bool {
	return c == '!' || c == '?' || c == ';'
}

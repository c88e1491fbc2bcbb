package annotate

import (
	"errors"
	"testing"

	"github.com/biofinder/semsearch/pkg/semsearch/internalerr"
)

func TestNewValidatesEngineOrder(t *testing.T) {
	// Lemmatizer before its tokenizer prerequisite.
	_, err := New(NewLemmatizer(testLemmaLookup(), "de"), NewTokenizer())
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}

	// The same engines in a valid order pass.
	if _, err := New(NewTokenizer(), NewLemmatizer(testLemmaLookup(), "de")); err != nil {
		t.Errorf("valid order should pass, got %v", err)
	}
}

func TestNewRejectsMissingPrerequisite(t *testing.T) {
	_, err := New(NewTokenizer(), NewLemmatizer(testLemmaLookup(), "de"), NewLiteralAnnotator())
	if !errors.Is(err, internalerr.ErrInvalidConfig) {
		t.Errorf("literals without entity recognition should fail, got %v", err)
	}
}

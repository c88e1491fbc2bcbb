package annotate

import (
	"context"
	"testing"

	"github.com/biofinder/semsearch/pkg/semsearch/annotation"
)

func detect(t *testing.T, text string) string {
	t.Helper()
	result := annotation.NewResult()
	if err := NewLanguageDetector().Annotate(context.Background(), text, result); err != nil {
		t.Fatal(err)
	}
	return result.Language
}

func TestLanguageDetectorGerman(t *testing.T) {
	if got := detect(t, "Wo finde ich die Pflanze?"); got != "de" {
		t.Errorf("got %q, want de", got)
	}
}

func TestLanguageDetectorEnglish(t *testing.T) {
	if got := detect(t, "Where can I find the plant?"); got != "en" {
		t.Errorf("got %q, want en", got)
	}
}

func TestLanguageDetectorNoMarkers(t *testing.T) {
	if got := detect(t, "Fagus sylvatica"); got != "" {
		t.Errorf("no marker should leave the language empty, got %q", got)
	}
}

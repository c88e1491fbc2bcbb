package annotate

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"github.com/biofinder/semsearch/pkg/semsearch/annotation"
	"github.com/biofinder/semsearch/pkg/semsearch/internalerr"
	"github.com/biofinder/semsearch/pkg/semsearch/store"
)

// EntityRecognizer annotates named entities by pure string comparison
// against a label store. It attaches entity types only; URIs are linked by
// the UriLinker afterwards.
//
// Multi-token spans are tried greedily: every extension of a token that the
// store knows wins over the shorter match, so "Fagus sylvatica" outranks
// "Fagus" alone. On equal length the span starting earliest wins.
type EntityRecognizer struct {
	labels    store.KeyValue
	priority  annotation.Priority
	blacklist map[string]struct{}
}

// defaultBlacklist keeps low-information strings from causing noisy store
// lookups (botanical author abbreviations, connectors).
var defaultBlacklist = map[string]struct{}{
	"l.":   {},
	"(l.)": {},
	"R.":   {},
	"&":    {},
	"var.": {},
	"in":   {},
}

// NewEntityRecognizer creates a recognizer over the given label store. A
// nil priority falls back to the default order.
func NewEntityRecognizer(labels store.KeyValue, priority annotation.Priority) *EntityRecognizer {
	if priority == nil {
		priority = annotation.DefaultPriority()
	}
	return &EntityRecognizer{
		labels:    labels,
		priority:  priority,
		blacklist: defaultBlacklist,
	}
}

// Name implements Engine.
func (r *EntityRecognizer) Name() string { return RecognizerName }

// Requires implements Engine.
func (r *EntityRecognizer) Requires() []string {
	return []string{TokenizerName, LemmatizerName}
}

// Annotate implements Engine. A label the store does not know produces no
// annotation; store failures propagate.
func (r *EntityRecognizer) Annotate(ctx context.Context, _ string, result *annotation.Result) error {
	var recognized []*annotation.Annotation
	lastEnd := -1

	for i, token := range result.Tokens {
		if token.Begin < lastEnd {
			// Covered by a multi-token annotation already emitted.
			continue
		}

		type candidate struct {
			word *annotation.Word
			data string
		}
		var candidates []candidate

		if data, ok, err := r.readToken(ctx, token); err != nil {
			return err
		} else if ok {
			candidates = append(candidates, candidate{token, data})
		}

		// Quoted strings are encapsulated entities and never extended.
		if !token.IsQuoted {
			extended := token
			for _, following := range result.Tokens[i+1:] {
				extended = extended.Join(following)
				if extended.Lemma == "" {
					continue
				}
				data, ok, err := r.read(ctx, extended.Lemma)
				if err != nil {
					return err
				}
				if ok {
					candidates = append(candidates, candidate{extended, data})
				}
			}
		}

		if len(candidates) == 0 {
			continue
		}

		// Longest match appended last.
		best := candidates[len(candidates)-1]
		ann, err := r.buildAnnotation(best.word, best.data)
		if err != nil {
			return err
		}
		lastEnd = ann.End
		recognized = append(recognized, ann)
	}

	result.NamedEntities = recognized
	return nil
}

// readToken looks a single token up, testing the original text before the
// lemma.
func (r *EntityRecognizer) readToken(ctx context.Context, token *annotation.Word) (string, bool, error) {
	for _, key := range []string{token.Text, token.Lemma} {
		if key == "" || !r.isWordValid(key) {
			continue
		}
		data, ok, err := r.read(ctx, key)
		if err != nil || ok {
			return data, ok, err
		}
	}
	return "", false, nil
}

func (r *EntityRecognizer) read(ctx context.Context, key string) (string, bool, error) {
	data, err := r.labels.Read(ctx, strings.ToLower(key))
	if errors.Is(err, internalerr.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return data, true, nil
}

// buildAnnotation turns a matched span and its store data into an
// annotation. The highest-priority entity type becomes the primary
// interpretation, all others become ambiguities to be resolved later.
func (r *EntityRecognizer) buildAnnotation(word *annotation.Word, data string) (*annotation.Annotation, error) {
	decoded, err := annotation.DecodeEntityData(data)
	if err != nil {
		return nil, err
	}

	typeNames := make([]string, 0, len(decoded))
	for name := range decoded {
		typeNames = append(typeNames, name)
	}
	r.priority.SortTypes(typeNames)

	ann := &annotation.Annotation{Word: *word}
	for i, name := range typeNames {
		entityType, err := annotation.ParseNamedEntityType(name)
		if err != nil {
			return nil, err
		}
		if i == 0 {
			ann.NamedEntityType = entityType
			continue
		}
		alternative := ann.Clone()
		alternative.NamedEntityType = entityType
		alternative.Ambiguities = nil
		ann.Ambiguities = append(ann.Ambiguities, alternative)
	}
	return ann, nil
}

// isWordValid filters words that are too short, numeric, parenthesized or
// blacklisted before they reach the store.
func (r *EntityRecognizer) isWordValid(word string) bool {
	if len(word) <= 2 || strings.HasPrefix(word, "(") {
		return false
	}
	if _, ok := r.blacklist[word]; ok {
		return false
	}
	return !isNumeric(word)
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

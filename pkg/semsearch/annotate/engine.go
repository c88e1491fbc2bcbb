// Package annotate implements the text annotation pipeline: an ordered
// chain of engines that turns a raw query string into typed, positioned,
// disambiguated entity annotations plus the relations between them.
package annotate

import (
	"context"
	"fmt"
	"sort"

	"github.com/biofinder/semsearch/pkg/semsearch/annotation"
	"github.com/biofinder/semsearch/pkg/semsearch/internalerr"
)

// Engine names, used for configuration and prerequisite validation.
const (
	TokenizerName     = "tokenizer"
	LanguageName      = "language-detector"
	LemmatizerName    = "lemmatizer"
	RecognizerName    = "entity-recognition"
	LiteralsName      = "literals"
	UriLinkerName     = "uri-linker"
	DisambiguatorName = "disambiguation"
	DependenciesName  = "dependencies"
)

// Engine is one step of the annotation pipeline. An engine consumes the
// current partial result, updates its own section and returns; it must not
// rewrite sections owned by other engines.
type Engine interface {
	Name() string

	// Requires lists engines that must have run before this one. The
	// Annotator validates the order at construction.
	Requires() []string

	Annotate(ctx context.Context, text string, result *annotation.Result) error
}

// Annotator drives the engines strictly in the configured order.
type Annotator struct {
	engines []Engine
}

// New creates an Annotator and fails fast if a dependent engine is
// configured before one of its prerequisites.
func New(engines ...Engine) (*Annotator, error) {
	seen := make(map[string]struct{}, len(engines))
	for _, engine := range engines {
		for _, required := range engine.Requires() {
			if _, ok := seen[required]; !ok {
				return nil, fmt.Errorf("%w: engine %q requires %q to run first",
					internalerr.ErrInvalidConfig, engine.Name(), required)
			}
		}
		seen[engine.Name()] = struct{}{}
	}
	return &Annotator{engines: engines}, nil
}

// Annotate runs all engines over the text and compiles the final result.
// Engine errors abort the run and propagate unmodified.
func (a *Annotator) Annotate(ctx context.Context, text string) (*annotation.Result, error) {
	result := annotation.NewResult()
	for _, engine := range a.engines {
		if err := engine.Annotate(ctx, text, result); err != nil {
			return nil, fmt.Errorf("engine %s: %w", engine.Name(), err)
		}
	}
	compile(result)
	return result, nil
}

// compile associates each surviving annotation with the candidate URIs
// collected for its resolved type.
func compile(result *annotation.Result) {
	sort.Slice(result.NamedEntities, func(i, j int) bool {
		return result.NamedEntities[i].Begin < result.NamedEntities[j].Begin
	})

	for _, ann := range result.NamedEntities {
		perType, ok := result.EntityLinking[ann.ID()]
		if !ok {
			continue
		}
		if uris, ok := perType[ann.NamedEntityType]; ok {
			ann.Uris = uris.Clone()
		}
	}
}

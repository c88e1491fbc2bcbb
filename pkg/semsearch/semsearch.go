// Package semsearch is the facade over the semantic search enrichment
// pipeline: it assembles the annotation engines and the semantic engine
// from a configuration and exposes the query-level operations.
package semsearch

import (
	"context"
	"fmt"
	"strings"

	"github.com/biofinder/semsearch/pkg/semsearch/annotate"
	"github.com/biofinder/semsearch/pkg/semsearch/annotation"
	"github.com/biofinder/semsearch/pkg/semsearch/config"
	"github.com/biofinder/semsearch/pkg/semsearch/htmlsafe"
	"github.com/biofinder/semsearch/pkg/semsearch/internalerr"
	"github.com/biofinder/semsearch/pkg/semsearch/lemma"
	"github.com/biofinder/semsearch/pkg/semsearch/query"
	"github.com/biofinder/semsearch/pkg/semsearch/solr"
	"github.com/biofinder/semsearch/pkg/semsearch/store"
	"github.com/biofinder/semsearch/pkg/semsearch/store/memstore"
	"github.com/biofinder/semsearch/pkg/semsearch/store/sparqlstore"
	"github.com/biofinder/semsearch/pkg/semsearch/store/sqlitestore"
)

// Options configures a Pipeline instance.
type Options struct {
	// Config steers engine selection, priority and cues. Nil means the
	// default configuration.
	Config *config.Config

	// Labels is the key-value store the recognizer and the URI linker read
	// from. Required.
	Labels store.KeyValue

	// Engine resolves annotations against a knowledge store. Optional;
	// without it only annotation works.
	Engine query.SemanticEngine

	// Lemma looks lemmas up per language. Optional; the fallback lowercases.
	Lemma lemma.LookupFunc
}

// Pipeline bundles the processor with the result generators.
type Pipeline struct {
	processor *query.Processor
	solr      *solr.Generator
	labels    store.KeyValue
}

// New assembles a Pipeline from the given options.
func New(opts Options) (*Pipeline, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if opts.Labels == nil {
		return nil, fmt.Errorf("%w: no label store configured", internalerr.ErrInvalidConfig)
	}

	lookup := opts.Lemma
	if lookup == nil {
		lookup = func(word, _ string) string { return strings.ToLower(word) }
	}

	priority, err := cfg.Priority()
	if err != nil {
		return nil, err
	}
	cues, err := cfg.CueRules()
	if err != nil {
		return nil, err
	}

	engines := make([]annotate.Engine, 0, len(cfg.Engines))
	for _, name := range cfg.Engines {
		switch name {
		case annotate.TokenizerName:
			engines = append(engines, annotate.NewTokenizer())
		case annotate.LanguageName:
			engines = append(engines, annotate.NewLanguageDetector())
		case annotate.LemmatizerName:
			engines = append(engines, annotate.NewLemmatizer(lookup, cfg.Language))
		case annotate.RecognizerName:
			engines = append(engines, annotate.NewEntityRecognizer(opts.Labels, priority))
		case annotate.LiteralsName:
			engines = append(engines, annotate.NewLiteralAnnotator())
		case annotate.UriLinkerName:
			engines = append(engines, annotate.NewUriLinker(opts.Labels))
		case annotate.DisambiguatorName:
			engines = append(engines, annotate.NewDisambiguator(cues))
		case annotate.DependenciesName:
			engines = append(engines, annotate.NewDependencyLinker(nil))
		default:
			return nil, fmt.Errorf("%w: unknown engine %q", internalerr.ErrInvalidConfig, name)
		}
	}

	annotator, err := annotate.New(engines...)
	if err != nil {
		return nil, err
	}

	return &Pipeline{
		processor: query.NewProcessor(annotator, opts.Engine),
		solr:      solr.NewGenerator(),
		labels:    opts.Labels,
	}, nil
}

// AnnotateQuery sanitizes the user input, annotates it and returns the
// enriched query.
func (p *Pipeline) AnnotateQuery(ctx context.Context, text string) (*annotation.Query, error) {
	q := annotation.NewQuery(htmlsafe.StripMarkup(text))
	if err := p.processor.UpdateQueryWithAnnotations(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

// ResolveQuery resolves the query annotations through the semantic engine.
func (p *Pipeline) ResolveQuery(ctx context.Context, q *annotation.Query, limit int) (bool, error) {
	return p.processor.ResolveQueryAnnotations(ctx, q, limit)
}

// ToSolrQuery renders the enriched query for the document index.
func (p *Pipeline) ToSolrQuery(q *annotation.Query) solr.Query {
	return p.solr.ToSolrQuery(q)
}

// Close releases the backing stores.
func (p *Pipeline) Close() error {
	return p.labels.Close()
}

// OpenLabels opens the configured key-value label store.
func OpenLabels(ctx context.Context, cfg config.DatabaseConfig) (store.KeyValue, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		labels := memstore.NewLabelStore(nil)
		if cfg.Path != "" {
			if err := labels.LoadJSON(cfg.Path); err != nil {
				return nil, err
			}
		}
		return labels, nil
	case config.DriverSqlite:
		return sqlitestore.OpenLabelStore(ctx, cfg.Path)
	default:
		return nil, fmt.Errorf("%w: driver %q cannot back the label store", internalerr.ErrInvalidConfig, cfg.Driver)
	}
}

// OpenEngine opens the configured knowledge backend and wraps it in the
// matching semantic engine.
func OpenEngine(ctx context.Context, cfg config.DatabaseConfig) (query.SemanticEngine, error) {
	switch cfg.Driver {
	case config.DriverSparql:
		return query.NewSparqlEngine(sparqlstore.New(cfg.URL, nil)), nil
	case config.DriverSqlite:
		triples, err := sqlitestore.OpenTripleStore(ctx, cfg.Path)
		if err != nil {
			return nil, err
		}
		return query.NewTripleEngine(triples), nil
	case config.DriverMemory:
		return query.NewTripleEngine(memstore.NewTripleStore()), nil
	default:
		return nil, fmt.Errorf("%w: driver %q cannot back the knowledge store", internalerr.ErrInvalidConfig, cfg.Driver)
	}
}

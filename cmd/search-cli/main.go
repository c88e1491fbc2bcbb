package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/biofinder/semsearch/pkg/semsearch"
	"github.com/biofinder/semsearch/pkg/semsearch/annotation"
	"github.com/biofinder/semsearch/pkg/semsearch/config"
	"github.com/biofinder/semsearch/pkg/semsearch/lemma"
	"github.com/biofinder/semsearch/pkg/semsearch/query"
)

func main() {
	var (
		configPath = flag.String("config", "", "Configuration file (optional)")
		labelsPath = flag.String("labels", "", "Label data file, overrides the configured path")
		queryText  = flag.String("query", "", "One-shot query (non-interactive mode)")
		limit      = flag.Int("limit", 0, "Maximum number of resolved URIs (0 = default)")
		resolve    = flag.Bool("resolve", true, "Resolve annotations against the knowledge store")
	)
	flag.Parse()

	ctx := context.Background()

	pipeline, err := buildPipeline(ctx, *configPath, *labelsPath)
	if err != nil {
		log.Fatal(err)
	}
	defer pipeline.Close()

	// One-shot query mode
	if *queryText != "" {
		if err := executeQuery(ctx, pipeline, *queryText, *limit, *resolve); err != nil {
			log.Fatal(err)
		}
		return
	}

	// Interactive mode
	fmt.Println("===========================================")
	fmt.Println("  Semantic Search CLI")
	fmt.Println("  Query annotation and enrichment")
	fmt.Println("===========================================")
	fmt.Println()
	fmt.Println("Type your query (Ctrl+D to exit):")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}

		if err := executeQuery(ctx, pipeline, text, *limit, *resolve); err != nil {
			fmt.Println("Error:", err)
		}
	}

	fmt.Println("\nGoodbye!")
}

func buildPipeline(ctx context.Context, configPath, labelsPath string) (*semsearch.Pipeline, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if labelsPath != "" {
		cfg.Databases.KeyValue.Path = labelsPath
	}

	labels, err := semsearch.OpenLabels(ctx, cfg.Databases.KeyValue)
	if err != nil {
		return nil, fmt.Errorf("open label store: %w", err)
	}

	var engine query.SemanticEngine
	engine, err = semsearch.OpenEngine(ctx, cfg.Databases.Knowledge)
	if err != nil {
		return nil, fmt.Errorf("open knowledge store: %w", err)
	}

	var lookup lemma.LookupFunc
	if len(cfg.LemmaSources) > 0 {
		lookup = lemma.NewDictionary(cfg.LemmaSources).Lookup
	}

	return semsearch.New(semsearch.Options{
		Config: cfg,
		Labels: labels,
		Engine: engine,
		Lemma:  lookup,
	})
}

func executeQuery(ctx context.Context, pipeline *semsearch.Pipeline, text string, limit int, resolve bool) error {
	q, err := pipeline.AnnotateQuery(ctx, text)
	if err != nil {
		return fmt.Errorf("annotate: %w", err)
	}

	fmt.Printf("\nQuery %s\n", q.ID)
	if len(q.Annotations) == 0 {
		fmt.Println("No entities recognized.")
	}
	for _, ann := range q.Annotations {
		fmt.Printf("  [%d:%d] %q -> %s", ann.Begin, ann.End, ann.Text, ann.NamedEntityType)
		if !ann.IsSafe {
			fmt.Print(" (uncertain)")
		}
		fmt.Println()
		for _, url := range ann.Uris.URLs() {
			fmt.Println("      ", url)
		}
	}

	if len(q.Literals) > 0 {
		literals := make([]string, 0, len(q.Literals))
		for _, literal := range q.Literals {
			literals = append(literals, literal.Text)
		}
		fmt.Println("  Literals:", strings.Join(literals, ", "))
	}

	if resolve {
		enriched, err := pipeline.ResolveQuery(ctx, q, limit)
		if err != nil {
			return fmt.Errorf("resolve: %w", err)
		}
		fmt.Println("  Resolved:", enriched)
		for _, ann := range q.Annotations {
			printResolved(ann)
		}
	}

	solrQuery := pipeline.ToSolrQuery(q)
	if solrQuery.String != "" {
		fmt.Println("  Solr:", solrQuery.String)
	}
	fmt.Println()

	return nil
}

func printResolved(ann *annotation.Annotation) {
	if len(ann.Uris) == 0 {
		return
	}
	fmt.Printf("  %q:\n", ann.Text)
	for _, url := range ann.Uris.URLs() {
		fmt.Println("      ", url)
	}
}

// load-data fills the sqlite-backed stores from flat files: a JSON label
// file mapping lowercase labels to entity data, and a tab-separated triple
// file with one subject/predicate/object row per line.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/biofinder/semsearch/pkg/semsearch/store"
	"github.com/biofinder/semsearch/pkg/semsearch/store/sqlitestore"
)

func main() {
	var (
		labelsDB    = flag.String("labels-db", "", "Sqlite label store path")
		labelsFile  = flag.String("labels", "", "JSON label data file")
		triplesDB   = flag.String("triples-db", "", "Sqlite triple store path")
		triplesFile = flag.String("triples", "", "Tab-separated triples file")
	)
	flag.Parse()

	ctx := context.Background()

	if *labelsFile != "" {
		if *labelsDB == "" {
			log.Fatal("--labels-db required with --labels")
		}
		n, err := loadLabels(ctx, *labelsDB, *labelsFile)
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("loaded %d labels into %s", n, *labelsDB)
	}

	if *triplesFile != "" {
		if *triplesDB == "" {
			log.Fatal("--triples-db required with --triples")
		}
		n, err := loadTriples(ctx, *triplesDB, *triplesFile)
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("loaded %d triples into %s", n, *triplesDB)
	}

	if *labelsFile == "" && *triplesFile == "" {
		log.Fatal("nothing to do: give --labels and/or --triples")
	}
}

func loadLabels(ctx context.Context, dbPath, dataPath string) (int, error) {
	raw, err := os.ReadFile(dataPath)
	if err != nil {
		return 0, fmt.Errorf("read labels: %w", err)
	}
	var data map[string]json.RawMessage
	if err := json.Unmarshal(raw, &data); err != nil {
		return 0, fmt.Errorf("parse labels: %w", err)
	}

	labels, err := sqlitestore.OpenLabelStore(ctx, dbPath)
	if err != nil {
		return 0, fmt.Errorf("open label store: %w", err)
	}
	defer labels.Close()

	count := 0
	for key, value := range data {
		if err := labels.UpsertLabel(ctx, strings.ToLower(key), string(value)); err != nil {
			return count, fmt.Errorf("upsert %q: %w", key, err)
		}
		count++
	}
	return count, nil
}

func loadTriples(ctx context.Context, dbPath, dataPath string) (int, error) {
	file, err := os.Open(dataPath)
	if err != nil {
		return 0, fmt.Errorf("read triples: %w", err)
	}
	defer file.Close()

	var triples []store.Triple
	scanner := bufio.NewScanner(file)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		parts := strings.Split(text, "\t")
		if len(parts) != 3 {
			return 0, fmt.Errorf("line %d: expected 3 tab-separated fields, got %d", line, len(parts))
		}
		triples = append(triples, store.Triple{
			Subject:   parts[0],
			Predicate: parts[1],
			Object:    parts[2],
		})
	}
	if err := scanner.Err(); err != nil {
		return 0, fmt.Errorf("read triples: %w", err)
	}

	tripleStore, err := sqlitestore.OpenTripleStore(ctx, dbPath)
	if err != nil {
		return 0, fmt.Errorf("open triple store: %w", err)
	}
	defer tripleStore.Close()

	if err := tripleStore.AddTriples(ctx, triples); err != nil {
		return 0, err
	}
	return len(triples), nil
}

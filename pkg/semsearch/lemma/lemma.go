// Package lemma maps inflected surface forms to their canonical base forms.
// Lemmatization is best-effort enrichment: an unknown word or language falls
// back to the lowercased surface form and never fails.
package lemma

import (
	"fmt"
	"os"
	"strings"

	"github.com/patrickmn/go-cache"
	"gopkg.in/yaml.v3"
)

// LookupFunc resolves the lemma of a word in the given language.
type LookupFunc func(word, language string) string

// Dictionary loads per-language lemma tables from YAML files. A language's
// table is read once on first use and then served from a warm cache, so
// only the first lookup per language pays the load cost.
type Dictionary struct {
	sources map[string]string
	warm    *cache.Cache
}

// dictionaryFile is the on-disk shape: a flat surface-form to lemma map.
type dictionaryFile struct {
	Lemmas map[string]string `yaml:"lemmas"`
}

// NewDictionary creates a dictionary over language-code to YAML-path
// sources.
func NewDictionary(sources map[string]string) *Dictionary {
	return &Dictionary{
		sources: sources,
		warm:    cache.New(cache.NoExpiration, 0),
	}
}

// Languages returns the language codes the dictionary has sources for.
func (d *Dictionary) Languages() []string {
	languages := make([]string, 0, len(d.sources))
	for lang := range d.sources {
		languages = append(languages, lang)
	}
	return languages
}

// Lookup implements LookupFunc. Unsupported languages and unknown words
// yield the lowercased word.
func (d *Dictionary) Lookup(word, language string) string {
	lowered := strings.ToLower(word)

	table, err := d.table(language)
	if err != nil {
		return lowered
	}
	if lemmatized, ok := table[lowered]; ok {
		return lemmatized
	}
	return lowered
}

func (d *Dictionary) table(language string) (map[string]string, error) {
	if cached, ok := d.warm.Get(language); ok {
		return cached.(map[string]string), nil
	}

	path, ok := d.sources[language]
	if !ok {
		return nil, fmt.Errorf("no lemma source for language %q", language)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load lemma table %q: %w", language, err)
	}
	var file dictionaryFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("load lemma table %q: %w", language, err)
	}

	table := make(map[string]string, len(file.Lemmas))
	for form, lemmatized := range file.Lemmas {
		table[strings.ToLower(form)] = lemmatized
	}

	d.warm.Set(language, table, cache.NoExpiration)
	return table, nil
}

// StaticLookup builds a LookupFunc from an in-memory table keyed by
// language and lowercase surface form. Useful for tests and demo mode.
func StaticLookup(tables map[string]map[string]string) LookupFunc {
	return func(word, language string) string {
		lowered := strings.ToLower(word)
		if table, ok := tables[language]; ok {
			if lemmatized, ok := table[lowered]; ok {
				return lemmatized
			}
		}
		return lowered
	}
}

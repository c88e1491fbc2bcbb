// Package config loads and validates the YAML configuration of the search
// enrichment service.
package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/biofinder/semsearch/pkg/semsearch/annotate"
	"github.com/biofinder/semsearch/pkg/semsearch/annotation"
	"github.com/biofinder/semsearch/pkg/semsearch/internalerr"
)

// Database drivers understood by the configuration.
const (
	DriverMemory = "memory"
	DriverSqlite = "sqlite"
	DriverSparql = "sparql"
)

// Config is the root configuration.
type Config struct {
	Language           string            `yaml:"language"`
	AnnotationPriority []string          `yaml:"annotation_priority"`
	Engines            []string          `yaml:"engines"`
	ContextCues        []ContextCue      `yaml:"context_cues"`
	Databases          DatabasesConfig   `yaml:"databases"`
	LemmaSources       map[string]string `yaml:"lemma_sources"`
}

// ContextCue configures one disambiguation cue rule.
type ContextCue struct {
	Type    string `yaml:"type"`
	Pattern string `yaml:"pattern"`
}

// DatabasesConfig configures the backing stores.
type DatabasesConfig struct {
	KeyValue  DatabaseConfig `yaml:"key_value"`
	Knowledge DatabaseConfig `yaml:"knowledge"`
}

// DatabaseConfig configures one store. Path applies to file-backed
// drivers, URL to remote ones.
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
	URL    string `yaml:"url"`
}

// Default returns the configuration used when no file is given: the full
// engine chain over in-memory stores.
func Default() *Config {
	priority := make([]string, 0, len(annotation.DefaultPriority()))
	for _, t := range annotation.DefaultPriority() {
		priority = append(priority, string(t))
	}

	return &Config{
		Language:           annotate.DefaultLanguage,
		AnnotationPriority: priority,
		Engines: []string{
			annotate.TokenizerName,
			annotate.LanguageName,
			annotate.LemmatizerName,
			annotate.RecognizerName,
			annotate.LiteralsName,
			annotate.UriLinkerName,
			annotate.DisambiguatorName,
			annotate.DependenciesName,
		},
		Databases: DatabasesConfig{
			KeyValue:  DatabaseConfig{Driver: DriverMemory},
			Knowledge: DatabaseConfig{Driver: DriverMemory},
		},
	}
}

// Load reads and validates a configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate fails fast on anything that would surface later as a runtime
// error: unknown engines or entity types, broken cue regexes, unknown
// database drivers.
func (c *Config) Validate() error {
	priority, err := c.Priority()
	if err != nil {
		return err
	}
	if err := priority.Validate(); err != nil {
		return err
	}

	knownEngines := map[string]struct{}{
		annotate.TokenizerName:     {},
		annotate.LanguageName:      {},
		annotate.LemmatizerName:    {},
		annotate.RecognizerName:    {},
		annotate.LiteralsName:      {},
		annotate.UriLinkerName:     {},
		annotate.DisambiguatorName: {},
		annotate.DependenciesName:  {},
	}
	for _, name := range c.Engines {
		if _, ok := knownEngines[name]; !ok {
			return fmt.Errorf("%w: unknown engine %q", internalerr.ErrInvalidConfig, name)
		}
	}

	if _, err := c.CueRules(); err != nil {
		return err
	}

	for _, db := range []DatabaseConfig{c.Databases.KeyValue, c.Databases.Knowledge} {
		switch db.Driver {
		case DriverMemory, DriverSqlite, DriverSparql:
		default:
			return fmt.Errorf("%w: unknown database driver %q", internalerr.ErrInvalidConfig, db.Driver)
		}
	}

	return nil
}

// Priority returns the configured annotation priority.
func (c *Config) Priority() (annotation.Priority, error) {
	priority := make(annotation.Priority, 0, len(c.AnnotationPriority))
	for _, name := range c.AnnotationPriority {
		entityType, err := annotation.ParseNamedEntityType(name)
		if err != nil {
			return nil, fmt.Errorf("%w: annotation priority: %v", internalerr.ErrInvalidConfig, err)
		}
		priority = append(priority, entityType)
	}
	return priority, nil
}

// CueRules compiles the configured context cues. An empty configuration
// yields nil, letting the disambiguator fall back to its defaults.
func (c *Config) CueRules() ([]annotate.CueRule, error) {
	if len(c.ContextCues) == 0 {
		return nil, nil
	}

	rules := make([]annotate.CueRule, 0, len(c.ContextCues))
	for _, cue := range c.ContextCues {
		entityType, err := annotation.ParseNamedEntityType(cue.Type)
		if err != nil {
			return nil, fmt.Errorf("%w: context cue: %v", internalerr.ErrInvalidConfig, err)
		}
		pattern, err := regexp.Compile(cue.Pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: context cue pattern %q: %v", internalerr.ErrInvalidConfig, cue.Pattern, err)
		}
		rules = append(rules, annotate.CueRule{Type: entityType, Pattern: pattern})
	}
	return rules, nil
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"gopkg.in/yaml.v3"
)

// DiffMode controls how diff output participates in the rendered document.
type DiffMode string

const (
	// DiffNone suppresses diff output entirely.
	DiffNone DiffMode = "none"
	// DiffInline streams the diff into the document body (the default).
	DiffInline DiffMode = "inline"
	// DiffAttach leaves the diff to a separate attachment handled by the
	// delivery layer; file lists then render without anchor links.
	DiffAttach DiffMode = "attach"
)

// TicketRule maps an issue-tracker reference pattern to a URL template with
// one %s substitution slot. A pattern with two capture groups uses group 1 as
// link text and group 2 as the substituted value; with one group, that group
// serves as both.
type TicketRule struct {
	Pattern string `yaml:"pattern"`
	URL     string `yaml:"url"`

	re *regexp.Regexp
}

// Regexp returns the compiled pattern. It is nil until Validate has run.
func (r *TicketRule) Regexp() *regexp.Regexp { return r.re }

// Config is the full rendering configuration. It is populated once (from a
// YAML file or by the embedding application), validated, and then read-only
// for every render invocation that uses it.
type Config struct {
	// Linkify enables rewriting of bare URLs and email addresses in the
	// log message into hyperlinks.
	Linkify bool `yaml:"linkify"`
	// WrapLog renders the log message as paragraphs split on blank lines
	// instead of a preformatted block.
	WrapLog bool `yaml:"wrap_log"`
	// MarkdownLog renders the log message as Markdown. Takes precedence
	// over WrapLog when both are set.
	MarkdownLog bool `yaml:"markdown_log"`

	// StylesheetURL, when set, adds a stylesheet link to the document head.
	StylesheetURL string `yaml:"stylesheet_url,omitempty"`
	// RevisionURL is a template with one %s slot; when set, revision
	// references in the log message and the metadata revision become links.
	RevisionURL string `yaml:"revision_url,omitempty"`
	// AuthorURL is a template with one %s slot; when set, the metadata
	// author becomes a link.
	AuthorURL string `yaml:"author_url,omitempty"`
	// TicketMap is applied in declared order; later rules see the output
	// of earlier ones.
	TicketMap []*TicketRule `yaml:"ticket_map,omitempty"`

	// MaxDiffLength caps the number of diff bytes read; 0 means unlimited.
	MaxDiffLength int64 `yaml:"max_diff_length,omitempty"`
	// Diff selects the diff disposition. Empty defaults to inline.
	Diff DiffMode `yaml:"diff,omitempty"`

	// Header and Footer are emitted verbatim when they start with a markup
	// open character, escaped otherwise.
	Header string `yaml:"header,omitempty"`
	Footer string `yaml:"footer,omitempty"`

	// Language is an optional BCP 47 tag emitted as the document language.
	Language string `yaml:"language,omitempty"`
	// Charset is the declared character set name. Defaults to UTF-8.
	Charset string `yaml:"charset,omitempty"`
}

// Default returns a validated configuration with all defaults applied.
func Default() *Config {
	cfg := &Config{Linkify: true}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Diff == "" {
		c.Diff = DiffInline
	}
	if c.Charset == "" {
		c.Charset = "UTF-8"
	}
}

// InlineDiff reports whether diff output is part of the document body. File
// lists link to diff anchors only in this mode.
func (c *Config) InlineDiff() bool { return c.Diff == DiffInline }

// Load reads, expands, defaults, and validates a configuration file.
// Environment variables referenced in the YAML are expanded from the process
// environment, optionally supplemented by a .env file.
func Load(configPath string) (*Config, error) {
	loadEnvFile()

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

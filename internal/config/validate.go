package config

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/language"
)

// Validate checks the configuration and compiles every ticket pattern.
// It must succeed before the configuration is used for rendering; the
// transformation engine itself never fails on pattern grounds.
func (c *Config) Validate() error {
	switch c.Diff {
	case DiffNone, DiffInline, DiffAttach:
	default:
		return fmt.Errorf("%w: %q", ErrBadDiffMode, c.Diff)
	}

	if c.RevisionURL != "" {
		if err := checkTemplate(c.RevisionURL); err != nil {
			return fmt.Errorf("revision_url: %w", err)
		}
	}
	if c.AuthorURL != "" {
		if err := checkTemplate(c.AuthorURL); err != nil {
			return fmt.Errorf("author_url: %w", err)
		}
	}

	for i, rule := range c.TicketMap {
		re, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return fmt.Errorf("ticket_map[%d]: %w: %v", i, ErrBadTicketPattern, err)
		}
		if re.NumSubexp() < 1 {
			return fmt.Errorf("ticket_map[%d] %q: %w", i, rule.Pattern, ErrNoCaptureGroup)
		}
		if err := checkTemplate(rule.URL); err != nil {
			return fmt.Errorf("ticket_map[%d]: %w", i, err)
		}
		rule.re = re
	}

	if c.Charset != "" {
		if _, err := htmlindex.Get(strings.ToLower(c.Charset)); err != nil {
			return fmt.Errorf("%w: %q", ErrUnknownCharset, c.Charset)
		}
	}
	if c.Language != "" {
		if _, err := language.Parse(c.Language); err != nil {
			return fmt.Errorf("%w: %q: %v", ErrBadLanguageTag, c.Language, err)
		}
	}
	return nil
}

// checkTemplate enforces the one-slot contract on URL templates. Expansion
// uses literal %s replacement, so any other percent sequence passes through
// untouched.
func checkTemplate(tmpl string) error {
	if strings.Count(tmpl, "%s") != 1 {
		return fmt.Errorf("%w: %q", ErrMissingPlaceholder, tmpl)
	}
	return nil
}

// ExpandTemplate substitutes value into the template's single %s slot.
func ExpandTemplate(tmpl, value string) string {
	return strings.Replace(tmpl, "%s", value, 1)
}

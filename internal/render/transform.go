package render

import (
	"regexp"
	"strings"

	"git.home.luguber.info/inful/commitmail/internal/config"
)

// Rewrite patterns for the content transformer. Emails run before URLs; the
// URL scheme list deliberately omits mailto so a generated mail link is never
// wrapped a second time. All patterns operate on already-escaped text, so the
// character classes exclude the quote and angle characters our own generated
// markup introduces.
var (
	emailPattern    = regexp.MustCompile(`(?i)\b[\w.+-]+@[\w.-]+\.[a-z]{2,}\b`)
	urlPattern      = regexp.MustCompile(`(?i)\b(?:https?|ftp|file|afs|nfs)://[^\s"<>]+`)
	revisionPattern = regexp.MustCompile(`(?i)(\brev(?:ision)?\s*#?\s*|#)(\d+)\b`)
)

// Transform applies the ordered rewrite rules to already-escaped text:
// linkification, revision linking, then the ticket map in declared order.
// It never fails; unmatched text passes through unchanged.
func Transform(escaped string, cfg *config.Config) string {
	text := escaped
	if cfg.Linkify {
		text = linkify(text)
	}
	if cfg.RevisionURL != "" {
		text = linkRevisions(text, cfg.RevisionURL)
	}
	for _, rule := range cfg.TicketMap {
		text = applyTicketRule(text, rule)
	}
	return text
}

func linkify(text string) string {
	text = emailPattern.ReplaceAllString(text, `<a href="mailto:$0">$0</a>`)
	return urlPattern.ReplaceAllString(text, `<a href="$0">$0</a>`)
}

// linkRevisions wraps "rev N", "revision N", and "#N" references in a link
// built from the template, preserving the matched text as the label.
func linkRevisions(text, tmpl string) string {
	matches := revisionPattern.FindAllStringSubmatchIndex(text, -1)
	if matches == nil {
		return text
	}
	var b strings.Builder
	last := 0
	for _, m := range matches {
		label := text[m[0]:m[1]]
		value := text[m[4]:m[5]]
		b.WriteString(text[last:m[0]])
		b.WriteString(`<a href="`)
		b.WriteString(config.ExpandTemplate(tmpl, value))
		b.WriteString(`">`)
		b.WriteString(label)
		b.WriteString(`</a>`)
		last = m[1]
	}
	b.WriteString(text[last:])
	return b.String()
}

// applyTicketRule rewrites every match of one ticket rule. With two capture
// groups, group 1 is the link text and group 2 the substituted value; with
// one group it serves as both.
func applyTicketRule(text string, rule *config.TicketRule) string {
	re := rule.Regexp()
	if re == nil {
		// Unvalidated rule; the transformer never fails, so leave the text alone.
		return text
	}
	matches := re.FindAllStringSubmatchIndex(text, -1)
	if matches == nil {
		return text
	}
	var b strings.Builder
	last := 0
	for _, m := range matches {
		label := text[m[0]:m[1]]
		if m[2] >= 0 {
			label = text[m[2]:m[3]]
		}
		value := label
		if len(m) > 4 && m[4] >= 0 {
			value = text[m[4]:m[5]]
		}
		b.WriteString(text[last:m[0]])
		b.WriteString(`<a href="`)
		b.WriteString(config.ExpandTemplate(rule.URL, value))
		b.WriteString(`">`)
		b.WriteString(label)
		b.WriteString(`</a>`)
		last = m[1]
	}
	b.WriteString(text[last:])
	return b.String()
}

package render

import (
	"git.home.luguber.info/inful/commitmail/internal/commit"
	"git.home.luguber.info/inful/commitmail/internal/config"
)

// MetadataFormatter assembles the metadata block for a record. Variants can
// swap in alternative layouts without touching stage orchestration.
type MetadataFormatter interface {
	Metadata(rec *commit.Record, cfg *config.Config) []string
}

// DefaultMetadata renders the revision/author/date definition list. Revision
// and author become links when the corresponding URL template is configured;
// everything else is escaped.
type DefaultMetadata struct{}

func (DefaultMetadata) Metadata(rec *commit.Record, cfg *config.Config) []string {
	revision := escape(rec.Revision)
	if cfg.RevisionURL != "" {
		revision = `<a href="` + escape(config.ExpandTemplate(cfg.RevisionURL, rec.Revision)) + `">` + revision + `</a>`
	}
	author := escape(rec.Author)
	if cfg.AuthorURL != "" {
		author = `<a href="` + escape(config.ExpandTemplate(cfg.AuthorURL, rec.Author)) + `">` + author + `</a>`
	}
	return []string{
		`<dl class="meta">`,
		"<dt>Revision</dt> <dd>" + revision + "</dd>",
		"<dt>Author</dt> <dd>" + author + "</dd>",
		"<dt>Date</dt> <dd>" + escape(rec.Date) + "</dd>",
		"</dl>",
	}
}

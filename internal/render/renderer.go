package render

import (
	"io"
	"log/slog"
	"strings"

	"git.home.luguber.info/inful/commitmail/internal/commit"
	"git.home.luguber.info/inful/commitmail/internal/config"
	"git.home.luguber.info/inful/commitmail/internal/logfields"
	"git.home.luguber.info/inful/commitmail/internal/markdown"
)

// Stats reports what one render invocation produced.
type Stats struct {
	BytesWritten int64
	Diff         DiffStats
}

// Renderer drives the fixed stage sequence for one commit record:
// document-open, body-open, metadata, log-message, file-lists, diff, end.
// Content stages can be fully replaced by registered filters; structural
// stages only allow post-filtering of their assembled lines. A Renderer is
// read-only during rendering and may be reused across sequential,
// non-overlapping invocations.
type Renderer struct {
	cfg   *config.Config
	chain *FilterChain
	meta  MetadataFormatter
	diff  DiffFormatter
	css   CSSProvider
}

// New returns a Renderer with the default formatters and an empty filter
// chain. The configuration must already be validated.
func New(cfg *config.Config) *Renderer {
	return &Renderer{
		cfg:   cfg,
		chain: NewFilterChain(),
		meta:  DefaultMetadata{},
		diff:  PlainDiffFormatter{},
		css:   DefaultCSS{},
	}
}

// WithFilterChain attaches a filter chain (fluent helper).
func (r *Renderer) WithFilterChain(c *FilterChain) *Renderer { r.chain = c; return r }

// WithMetadataFormatter swaps the metadata block layout.
func (r *Renderer) WithMetadataFormatter(m MetadataFormatter) *Renderer { r.meta = m; return r }

// WithDiffFormatter swaps the per-line diff rendering. A formatter that also
// implements CSSProvider contributes its rules to the inline style block.
func (r *Renderer) WithDiffFormatter(f DiffFormatter) *Renderer { r.diff = f; return r }

// WithCSSProvider swaps the base stylesheet.
func (r *Renderer) WithCSSProvider(p CSSProvider) *Renderer { r.css = p; return r }

// Render writes a complete notification document for the record to the sink.
// The record's diff source, when present, is closed on every exit path from
// the diff stage; a close failure is logged and never propagated.
func (r *Renderer) Render(rec *commit.Record, sink io.Writer) (*Stats, error) {
	cw := &countingWriter{w: sink}
	stats := &Stats{}
	if rec.Diff != nil {
		defer func() {
			if cerr := rec.Diff.Close(); cerr != nil {
				slog.Warn("Failed to close diff source", logfields.Error(cerr))
			}
		}()
	}
	err := r.renderStages(rec, cw, stats)
	stats.BytesWritten = cw.n
	return stats, err
}

func (r *Renderer) renderStages(rec *commit.Record, w io.Writer, stats *Stats) error {
	if err := r.documentOpen(w, rec); err != nil {
		return err
	}
	if err := r.bodyOpen(w); err != nil {
		return err
	}
	if err := r.metadata(w, rec); err != nil {
		return err
	}
	if err := r.logMessage(w, rec); err != nil {
		return err
	}
	if err := r.fileLists(w, rec); err != nil {
		return err
	}
	msgClosed, err := r.diffStage(w, rec, stats)
	if err != nil {
		return err
	}
	return r.end(w, msgClosed)
}

// writeStructural emits a structural stage: built-in lines, post-filtered
// when filters are registered for the stage.
func (r *Renderer) writeStructural(w io.Writer, stage Stage, lines []string) error {
	if r.chain.Registered(stage) {
		lines = r.chain.Apply(stage, lines)
	}
	return writeLines(w, lines)
}

// overridden runs a content stage's registered filters over its raw input
// and writes the result verbatim. It reports false when no filter is
// registered and the built-in logic must run instead.
func (r *Renderer) overridden(w io.Writer, stage Stage, raw []string) (bool, error) {
	if !r.chain.Registered(stage) {
		return false, nil
	}
	return true, writeLines(w, r.chain.Apply(stage, raw))
}

func (r *Renderer) documentOpen(w io.Writer, rec *commit.Record) error {
	htmlOpen := "<html>"
	if r.cfg.Language != "" {
		htmlOpen = `<html lang="` + escape(r.cfg.Language) + `">`
	}
	lines := []string{
		"<!DOCTYPE html>",
		htmlOpen,
		"<head>",
		`<meta charset="` + escape(r.cfg.Charset) + `" />`,
		"<title>" + escape(strings.TrimSpace(rec.Revision+": "+firstLine(rec.Log))) + "</title>",
	}
	if r.cfg.StylesheetURL != "" {
		lines = append(lines, `<link rel="stylesheet" href="`+escape(r.cfg.StylesheetURL)+`" />`)
	}
	lines = append(lines, "</head>")
	return r.writeStructural(w, StageDocumentOpen, lines)
}

func (r *Renderer) bodyOpen(w io.Writer) error {
	css := r.css.CSS()
	if p, ok := r.diff.(CSSProvider); ok {
		css += p.CSS()
	}
	lines := []string{
		"<body>",
		`<style type="text/css">`,
		strings.TrimRight(css, "\n"),
		"</style>",
		`<div id="msg">`,
	}
	if r.cfg.Header != "" {
		lines = append(lines, `<div id="header">`+verbatimOrEscaped(r.cfg.Header)+`</div>`)
	}
	return r.writeStructural(w, StageBodyOpen, lines)
}

func (r *Renderer) metadata(w io.Writer, rec *commit.Record) error {
	raw := []string{rec.Revision, rec.Author, rec.Date}
	if done, err := r.overridden(w, StageMetadata, raw); done || err != nil {
		return err
	}
	return writeLines(w, r.meta.Metadata(rec, r.cfg))
}

func (r *Renderer) logMessage(w io.Writer, rec *commit.Record) error {
	if done, err := r.overridden(w, StageLogMessage, rec.Log); done || err != nil {
		return err
	}
	lines := []string{"<h3>Log Message</h3>"}
	msg := strings.Join(rec.Log, "\n")
	switch {
	case r.cfg.MarkdownLog:
		body, err := markdown.RenderLog(msg)
		if err != nil {
			// Degrade to the preformatted treatment rather than failing the render.
			slog.Warn("Markdown log rendering failed", logfields.Error(err))
			lines = append(lines, `<pre class="log">`+Transform(escape(msg), r.cfg)+"</pre>")
			break
		}
		lines = append(lines, `<div id="logmsg">`, body, "</div>")
	case r.cfg.WrapLog:
		lines = append(lines, `<div id="logmsg">`)
		for _, para := range paragraphs(rec.Log) {
			lines = append(lines, "<p>"+Transform(escape(para), r.cfg)+"</p>")
		}
		lines = append(lines, "</div>")
	default:
		lines = append(lines, `<pre class="log">`+Transform(escape(msg), r.cfg)+"</pre>")
	}
	return writeLines(w, lines)
}

func (r *Renderer) fileLists(w io.Writer, rec *commit.Record) error {
	if done, err := r.overridden(w, StageFileLists, fileListRaw(rec)); done || err != nil {
		return err
	}
	// Entries link to diff anchors only when the diff is part of this
	// document and the entry is not a directory.
	linkable := r.cfg.InlineDiff() && rec.Diff != nil
	var lines []string
	for _, kind := range commit.Kinds() {
		paths := rec.Changes[kind]
		if len(paths) == 0 {
			continue
		}
		lines = append(lines, "<h3>"+kind.Label()+"</h3>", "<ul>")
		for _, p := range paths {
			if linkable && !isDirectory(p) {
				lines = append(lines, `<li><a href="#`+AnchorID(p)+`">`+escape(p)+`</a></li>`)
			} else {
				lines = append(lines, "<li>"+escape(p)+"</li>")
			}
		}
		lines = append(lines, "</ul>")
	}
	return writeLines(w, lines)
}

// diffStage streams the diff into the document. It reports whether the msg
// container was closed here (the built-in diff block closes it before the
// patch container opens).
func (r *Renderer) diffStage(w io.Writer, rec *commit.Record, stats *Stats) (bool, error) {
	if rec.Diff == nil || !r.cfg.InlineDiff() {
		return false, nil
	}

	if r.chain.Registered(StageDiff) {
		raw, err := readLines(rec.Diff)
		if err != nil {
			return false, err
		}
		return false, writeLines(w, r.chain.Apply(StageDiff, raw))
	}

	if err := writeString(w, "</div>\n<div id=\"patch\">\n<pre>\n"); err != nil {
		return true, err
	}
	ds, err := StreamDiff(rec.Diff, w, r.cfg, r.diff)
	stats.Diff = ds
	if err != nil {
		return true, err
	}
	return true, writeString(w, "</pre></div>\n")
}

func (r *Renderer) end(w io.Writer, msgClosed bool) error {
	var lines []string
	if r.cfg.Footer != "" {
		lines = append(lines, `<div id="footer">`+verbatimOrEscaped(r.cfg.Footer)+`</div>`)
	}
	if !msgClosed {
		lines = append(lines, "</div>")
	}
	lines = append(lines, "</body>", "</html>")
	return r.writeStructural(w, StageEnd, lines)
}

func firstLine(log []string) string {
	if len(log) == 0 {
		return ""
	}
	return log[0]
}

// isDirectory preserves the upstream heuristic: sources mark directories
// with a trailing separator.
func isDirectory(path string) bool {
	return strings.HasSuffix(path, "/")
}

// fileListRaw flattens the change map into "kind: path" lines, the raw
// domain input handed to file-lists override filters.
func fileListRaw(rec *commit.Record) []string {
	var raw []string
	for _, kind := range commit.Kinds() {
		for _, p := range rec.Changes[kind] {
			raw = append(raw, string(kind)+": "+p)
		}
	}
	return raw
}

// paragraphs splits log lines into paragraphs on blank lines.
func paragraphs(log []string) []string {
	var paras []string
	var cur []string
	flush := func() {
		if len(cur) > 0 {
			paras = append(paras, strings.Join(cur, "\n"))
			cur = nil
		}
	}
	for _, line := range log {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		cur = append(cur, line)
	}
	flush()
	return paras
}

package render

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/commitmail/internal/commit"
	"git.home.luguber.info/inful/commitmail/internal/config"
	"git.home.luguber.info/inful/commitmail/internal/linkcheck"
)

// closeTracker records whether a diff source was closed.
type closeTracker struct {
	r        *strings.Reader
	closed   bool
	closeErr error
}

func (c *closeTracker) Read(p []byte) (int, error) { return c.r.Read(p) }
func (c *closeTracker) Close() error               { c.closed = true; return c.closeErr }

func testRecord() *commit.Record {
	return &commit.Record{
		Revision: "1234",
		Author:   "alice",
		Date:     "Mon, 02 Jan 2006 15:04:05 +0000",
		Log:      []string{"Fix the frobnicator", "", "See BUG-42 for background."},
		Changes: map[commit.ChangeKind][]string{
			commit.Modified: {"src/foo.c"},
			commit.Added:    {"docs/"},
		},
		Diff: commit.LineSource(
			"Modified: src/foo.c",
			"===================================================================",
			"--- src/foo.c",
			"+++ src/foo.c",
			"@@ -1 +1 @@",
			"-old",
			"+new",
		),
	}
}

func TestRenderFullDocument(t *testing.T) {
	cfg := config.Default()
	cfg.Header = "Commit notification"
	cfg.Footer = "<p>bye</p>"
	cfg.Language = "en"
	cfg.StylesheetURL = "https://example.com/notify.css"
	require.NoError(t, cfg.Validate())

	var out strings.Builder
	stats, err := New(cfg).Render(testRecord(), &out)
	require.NoError(t, err)
	require.Equal(t, int64(out.Len()), stats.BytesWritten)

	got := out.String()
	require.Contains(t, got, "<!DOCTYPE html>")
	require.Contains(t, got, `<html lang="en">`)
	require.Contains(t, got, `<meta charset="UTF-8" />`)
	require.Contains(t, got, "<title>1234: Fix the frobnicator</title>")
	require.Contains(t, got, `<link rel="stylesheet" href="https://example.com/notify.css" />`)
	require.Contains(t, got, `<div id="msg">`)
	require.Contains(t, got, `<div id="header">Commit notification</div>`)
	require.Contains(t, got, "<dt>Revision</dt> <dd>1234</dd>")
	require.Contains(t, got, "<dt>Author</dt> <dd>alice</dd>")
	require.Contains(t, got, `<pre class="log">`)
	require.Contains(t, got, "<h3>Modified Paths</h3>")
	require.Contains(t, got, `<li><a href="#srcfooc">src/foo.c</a></li>`)
	require.Contains(t, got, `<div id="patch">`)
	require.Contains(t, got, `<a id="srcfooc">Modified: src/foo.c</a>`)
	// Footer starting with markup is emitted verbatim.
	require.Contains(t, got, `<div id="footer"><p>bye</p></div>`)
	require.True(t, strings.HasSuffix(got, "</body>\n</html>\n"))

	// Every file-list anchor must resolve to a diff section.
	problems, err := linkcheck.VerifyAnchors(strings.NewReader(got))
	require.NoError(t, err)
	require.Empty(t, problems)
}

func TestRenderEscapesPlainHeaderAndFooter(t *testing.T) {
	cfg := config.Default()
	cfg.Header = "status & news"
	cfg.Footer = "over & out"
	require.NoError(t, cfg.Validate())

	var out strings.Builder
	_, err := New(cfg).Render(testRecord(), &out)
	require.NoError(t, err)
	require.Contains(t, out.String(), `<div id="header">status &amp; news</div>`)
	require.Contains(t, out.String(), `<div id="footer">over &amp; out</div>`)
}

func TestRenderOmitsOptionalHead(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())

	rec := testRecord()
	var out strings.Builder
	_, err := New(cfg).Render(rec, &out)
	require.NoError(t, err)
	require.Contains(t, out.String(), "<html>\n")
	require.NotContains(t, out.String(), "stylesheet")
	require.NotContains(t, out.String(), `<div id="header">`)
	require.NotContains(t, out.String(), `<div id="footer">`)
}

func TestRenderDirectoriesAndAttachModeNotLinked(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())

	// Directory entries keep the trailing separator and never link.
	var out strings.Builder
	_, err := New(cfg).Render(testRecord(), &out)
	require.NoError(t, err)
	require.Contains(t, out.String(), "<li>docs/</li>")

	// Attached diffs render no anchor links at all.
	cfg = config.Default()
	cfg.Diff = config.DiffAttach
	require.NoError(t, cfg.Validate())
	out.Reset()
	_, err = New(cfg).Render(testRecord(), &out)
	require.NoError(t, err)
	require.NotContains(t, out.String(), `href="#`)
	require.NotContains(t, out.String(), `<div id="patch">`)
}

func TestRenderWrapLogSplitsParagraphs(t *testing.T) {
	cfg := config.Default()
	cfg.WrapLog = true
	require.NoError(t, cfg.Validate())

	var out strings.Builder
	_, err := New(cfg).Render(testRecord(), &out)
	require.NoError(t, err)
	got := out.String()
	require.Contains(t, got, `<div id="logmsg">`)
	require.Contains(t, got, "<p>Fix the frobnicator</p>")
	require.Contains(t, got, "<p>See BUG-42 for background.</p>")
	require.NotContains(t, got, `<pre class="log">`)
}

func TestRenderMarkdownLog(t *testing.T) {
	cfg := config.Default()
	cfg.MarkdownLog = true
	require.NoError(t, cfg.Validate())

	rec := testRecord()
	rec.Log = []string{"# Summary", "", "- one", "- two"}
	var out strings.Builder
	_, err := New(cfg).Render(rec, &out)
	require.NoError(t, err)
	require.Contains(t, out.String(), `<div id="logmsg">`)
	require.Contains(t, out.String(), "<h1>Summary</h1>")
	require.Contains(t, out.String(), "<li>one</li>")
}

func TestRenderLogMessageTransforms(t *testing.T) {
	cfg := config.Default()
	cfg.TicketMap = []*config.TicketRule{
		{Pattern: `\b(BUG-(\d+))\b`, URL: "http://x/?show=%s"},
	}
	require.NoError(t, cfg.Validate())

	var out strings.Builder
	_, err := New(cfg).Render(testRecord(), &out)
	require.NoError(t, err)
	require.Contains(t, out.String(), `<a href="http://x/?show=42">BUG-42</a>`)
}

func TestRenderMetadataLinks(t *testing.T) {
	cfg := config.Default()
	cfg.RevisionURL = "http://vc/r/%s"
	cfg.AuthorURL = "http://people/%s"
	require.NoError(t, cfg.Validate())

	var out strings.Builder
	_, err := New(cfg).Render(testRecord(), &out)
	require.NoError(t, err)
	require.Contains(t, out.String(), `<dd><a href="http://vc/r/1234">1234</a></dd>`)
	require.Contains(t, out.String(), `<dd><a href="http://people/alice">alice</a></dd>`)
}

// recordingMetadata reports whether built-in metadata rendering ran.
type recordingMetadata struct{ called bool }

func (m *recordingMetadata) Metadata(*commit.Record, *config.Config) []string {
	m.called = true
	return []string{"<!-- built-in metadata -->"}
}

func TestRenderOverrideFilterSkipsBuiltin(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())

	meta := &recordingMetadata{}
	chain := NewFilterChain()
	chain.Register(StageMetadata, func(lines []string) []string {
		// Raw domain input: revision, author, date.
		return []string{"meta: " + strings.Join(lines, "|")}
	})

	var out strings.Builder
	_, err := New(cfg).WithMetadataFormatter(meta).WithFilterChain(chain).Render(testRecord(), &out)
	require.NoError(t, err)
	require.False(t, meta.called)
	require.Contains(t, out.String(), "meta: 1234|alice|Mon, 02 Jan 2006 15:04:05 +0000")
	require.NotContains(t, out.String(), "built-in metadata")
}

func TestRenderLogMessageOverrideGetsRawLines(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())

	var seen []string
	chain := NewFilterChain()
	chain.Register(StageLogMessage, func(lines []string) []string {
		seen = append([]string(nil), lines...)
		return []string{"<p>replaced</p>"}
	})

	rec := testRecord()
	var out strings.Builder
	_, err := New(cfg).WithFilterChain(chain).Render(rec, &out)
	require.NoError(t, err)
	require.Equal(t, rec.Log, seen)
	require.Contains(t, out.String(), "<p>replaced</p>")
	require.NotContains(t, out.String(), "<h3>Log Message</h3>")
}

func TestRenderStructuralStagePostFilter(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())

	chain := NewFilterChain()
	chain.Register(StageEnd, func(lines []string) []string {
		return append(lines, "<!-- delivered by commitmail -->")
	})

	var out strings.Builder
	_, err := New(cfg).WithFilterChain(chain).Render(testRecord(), &out)
	require.NoError(t, err)
	got := out.String()
	// Built-in structural output still present, filter output appended.
	require.Contains(t, got, "</html>")
	require.True(t, strings.HasSuffix(got, "<!-- delivered by commitmail -->\n"))
}

func TestRenderDiffOverrideReceivesRawDiff(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())

	var seen []string
	chain := NewFilterChain()
	chain.Register(StageDiff, func(lines []string) []string {
		seen = append([]string(nil), lines...)
		return []string{"<div>custom diff</div>"}
	})

	src := &closeTracker{r: strings.NewReader("Modified: a\n-x\n+y\n")}
	rec := testRecord()
	rec.Diff = src

	var out strings.Builder
	_, err := New(cfg).WithFilterChain(chain).Render(rec, &out)
	require.NoError(t, err)
	require.Equal(t, []string{"Modified: a", "-x", "+y"}, seen)
	require.Contains(t, out.String(), "<div>custom diff</div>")
	require.NotContains(t, out.String(), `<div id="patch">`)
	require.True(t, src.closed)
}

func TestRenderTruncationWiring(t *testing.T) {
	cfg := config.Default()
	cfg.MaxDiffLength = 10
	require.NoError(t, cfg.Validate())

	var out strings.Builder
	stats, err := New(cfg).Render(testRecord(), &out)
	require.NoError(t, err)
	require.True(t, stats.Diff.Truncated)
	require.Contains(t, out.String(), "@@ Diff output truncated at 10 characters. @@")
}

func TestRenderClosesDiffSource(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())

	src := &closeTracker{r: strings.NewReader("Modified: a\n")}
	rec := testRecord()
	rec.Diff = src

	var out strings.Builder
	_, err := New(cfg).Render(rec, &out)
	require.NoError(t, err)
	require.True(t, src.closed)
}

func TestRenderCloseFailureIsNonFatal(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())

	src := &closeTracker{r: strings.NewReader("Modified: a\n"), closeErr: errors.New("already closed")}
	rec := testRecord()
	rec.Diff = src

	var out strings.Builder
	_, err := New(cfg).Render(rec, &out)
	require.NoError(t, err)
	require.True(t, src.closed)
}

// failAfterWriter fails every write after the first n bytes.
type failAfterWriter struct {
	n       int
	written int
}

func (w *failAfterWriter) Write(p []byte) (int, error) {
	if w.written+len(p) > w.n {
		return 0, errors.New("sink full")
	}
	w.written += len(p)
	return len(p), nil
}

func TestRenderPropagatesWriteErrors(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())

	src := &closeTracker{r: strings.NewReader("Modified: a\n")}
	rec := testRecord()
	rec.Diff = src

	_, err := New(cfg).Render(rec, &failAfterWriter{n: 64})
	require.ErrorIs(t, err, ErrWrite)
	require.True(t, src.closed)
}

func TestRenderColorDiffAddsCSS(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.Validate())

	var out strings.Builder
	_, err := New(cfg).WithDiffFormatter(ColorDiffFormatter{}).Render(testRecord(), &out)
	require.NoError(t, err)
	require.Contains(t, out.String(), `#patch .add`)
	require.Contains(t, out.String(), `<span class="add">+new</span>`)
}

package commands

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/commitmail/internal/commit"
	"git.home.luguber.info/inful/commitmail/internal/config"
	"git.home.luguber.info/inful/commitmail/internal/gitsource"
	"git.home.luguber.info/inful/commitmail/internal/logfields"
	"git.home.luguber.info/inful/commitmail/internal/metrics"
	"git.home.luguber.info/inful/commitmail/internal/render"
)

// RenderCmd implements the 'render' command. The commit event comes either
// from a local git repository or from a YAML commit file with an optional
// separate diff.
type RenderCmd struct {
	Repo       string `short:"r" help:"Path to a local git repository" type:"existingdir"`
	Revision   string `help:"Revision to render (hash, ref, or HEAD)" default:"HEAD"`
	CommitFile string `help:"YAML commit file to render instead of a repository" type:"existingfile"`
	DiffFile   string `help:"Unified diff accompanying the commit file ('-' for stdin)"`
	Output     string `short:"o" help:"Output file (default stdout)"`
	ColorDiff  bool   `help:"Colorize diff output"`
	Metrics    string `help:"Write Prometheus metrics to this textfile after rendering"`
}

// Run executes the render command.
func (rc *RenderCmd) Run(_ *Global, root *CLI) error {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return err
	}

	rec, err := rc.loadRecord()
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if rc.Output != "" {
		f, ferr := os.Create(rc.Output)
		if ferr != nil {
			return fmt.Errorf("failed to create output file: %w", ferr)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil {
				slog.Warn("Failed to close output file", logfields.Error(cerr))
			}
		}()
		out = f
	}

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var promRecorder *metrics.PrometheusRecorder
	if rc.Metrics != "" {
		promRecorder = metrics.NewPrometheusRecorder(nil)
		recorder = promRecorder
	}

	r := render.New(cfg)
	if rc.ColorDiff {
		r = r.WithDiffFormatter(render.ColorDiffFormatter{})
	}

	renderID := uuid.NewString()
	start := time.Now()
	stats, rerr := r.Render(rec, out)
	recorder.ObserveRenderDuration(time.Since(start))

	if rerr != nil {
		recorder.IncRenderOutcome(metrics.OutcomeFailed)
	} else {
		recorder.IncRenderOutcome(metrics.OutcomeSuccess)
		recorder.ObserveDocumentBytes(stats.BytesWritten)
		recorder.ObserveDiffBytes(stats.Diff.Bytes)
		if stats.Diff.Truncated {
			recorder.IncDiffTruncated()
		}
		slog.Info("Rendered commit notification",
			logfields.RenderID(renderID),
			logfields.Revision(rec.Revision),
			logfields.Bytes(stats.BytesWritten),
			logfields.DurationMS(float64(time.Since(start).Microseconds())/1000.0),
		)
	}

	if promRecorder != nil {
		if werr := promRecorder.WriteTextfile(rc.Metrics); werr != nil {
			slog.Warn("Failed to write metrics textfile", logfields.Path(rc.Metrics), logfields.Error(werr))
		}
	}
	return rerr
}

func (rc *RenderCmd) loadRecord() (*commit.Record, error) {
	switch {
	case rc.CommitFile != "":
		rec, err := commit.LoadRecord(rc.CommitFile)
		if err != nil {
			return nil, err
		}
		if rc.DiffFile != "" {
			diff, derr := rc.openDiff()
			if derr != nil {
				return nil, derr
			}
			rec.Diff = diff
		}
		return rec, nil
	case rc.Repo != "":
		return gitsource.Load(rc.Repo, rc.Revision)
	}
	return nil, errors.New("either --repo or --commit-file is required")
}

func (rc *RenderCmd) openDiff() (io.ReadCloser, error) {
	if rc.DiffFile == "-" {
		// Stdin is not ours to close; the renderer closes every diff source.
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(rc.DiffFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open diff file: %w", err)
	}
	return f, nil
}

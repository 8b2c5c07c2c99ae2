// Package gitsource builds commit records from local git repositories. It is
// the retrieval collaborator in front of the rendering engine: it resolves a
// revision, classifies tree changes, and synthesizes the per-file-header diff
// format the diff streamer recognizes.
package gitsource

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/utils/merkletrie"

	"git.home.luguber.info/inful/commitmail/internal/commit"
	"git.home.luguber.info/inful/commitmail/internal/logfields"
)

const headerSeparator = "==================================================================="

// Load builds a commit Record for the given revision of a local repository.
// The first parent is used as the diff base; a root commit diffs against the
// empty tree. PropertyChanged entries never occur for git sources; that kind
// exists for property-carrying systems whose hooks feed records directly.
func Load(repoPath, rev string) (*commit.Record, error) {
	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}
	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve revision %q: %w", rev, err)
	}
	c, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("failed to load commit %s: %w", hash, err)
	}
	slog.Debug("Loaded commit", logfields.Repository(repoPath), logfields.Revision(hash.String()))

	tree, err := c.Tree()
	if err != nil {
		return nil, fmt.Errorf("failed to load commit tree: %w", err)
	}
	var parentTree *object.Tree
	if c.NumParents() > 0 {
		parent, perr := c.Parent(0)
		if perr != nil {
			return nil, fmt.Errorf("failed to load parent commit: %w", perr)
		}
		if parentTree, perr = parent.Tree(); perr != nil {
			return nil, fmt.Errorf("failed to load parent tree: %w", perr)
		}
	}

	changes, err := object.DiffTree(parentTree, tree)
	if err != nil {
		return nil, fmt.Errorf("failed to diff trees: %w", err)
	}

	rec := &commit.Record{
		Revision: hash.String(),
		Author:   c.Author.Name,
		Date:     c.Author.When.Format("Mon, 02 Jan 2006 15:04:05 -0700"),
		Log:      strings.Split(strings.TrimRight(c.Message, "\n"), "\n"),
		Changes:  make(map[commit.ChangeKind][]string),
	}

	var diff bytes.Buffer
	for _, ch := range changes {
		kind, path, cerr := classify(ch)
		if cerr != nil {
			return nil, cerr
		}
		rec.Changes[kind] = append(rec.Changes[kind], path)

		patch, perr := ch.Patch()
		if perr != nil {
			return nil, fmt.Errorf("failed to build patch for %s: %w", path, perr)
		}
		fmt.Fprintf(&diff, "%s: %s\n%s\n%s\n", headerPrefix(kind), path, headerSeparator, patch.String())
	}
	if diff.Len() > 0 {
		rec.Diff = io.NopCloser(&diff)
	}
	return rec, nil
}

func classify(ch *object.Change) (commit.ChangeKind, string, error) {
	action, err := ch.Action()
	if err != nil {
		return "", "", fmt.Errorf("failed to classify change: %w", err)
	}
	switch action {
	case merkletrie.Insert:
		return commit.Added, ch.To.Name, nil
	case merkletrie.Delete:
		return commit.Deleted, ch.From.Name, nil
	default:
		return commit.Modified, ch.To.Name, nil
	}
}

// headerPrefix maps a change kind to the per-file header prefix the diff
// streamer anchors on.
func headerPrefix(kind commit.ChangeKind) string {
	switch kind {
	case commit.Added:
		return "Added"
	case commit.Deleted:
		return "Deleted"
	case commit.PropertyChanged:
		return "Property changes on"
	default:
		return "Modified"
	}
}

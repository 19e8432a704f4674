// Package scm retrieves file content from the working tree or from git
// history. It is the default ContentProvider for the plots service: the
// special workspace revision reads straight from disk, any other
// revision shells out to git show.
package scm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/plotline/internal/plots"
)

// Repo reads file content from a project directory and its git history.
type Repo struct {
	root   string
	logger *slog.Logger
}

// New creates a Repo rooted at dir. The directory does not have to be a
// git repository until a non-workspace revision is requested.
func New(dir string, logger *slog.Logger) *Repo {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Repo{root: dir, logger: logger}
}

// Get returns the content of path at rev. An empty rev or the workspace
// revision reads the working tree; anything else resolves through git.
// A path absent at the revision is plots.ErrNotFound.
func (r *Repo) Get(ctx context.Context, path, rev string) ([]byte, error) {
	if rev == "" || rev == plots.WorkspaceRevision {
		return r.readWorkspace(path)
	}
	return r.readGit(ctx, path, rev)
}

func (r *Repo) readWorkspace(path string) ([]byte, error) {
	content, err := os.ReadFile(filepath.Join(r.root, path))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, plots.ErrNotFound
		}
		return nil, err
	}
	return content, nil
}

func (r *Repo) readGit(ctx context.Context, path, rev string) ([]byte, error) {
	// git expects forward slashes in tree paths regardless of platform
	object := rev + ":" + filepath.ToSlash(path)
	cmd := exec.CommandContext(ctx, "git", "-C", r.root, "show", object)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			msg := strings.TrimSpace(stderr.String())
			r.logger.Debug("git show failed", "object", object, "stderr", msg)
			if isUnknownRevision(msg) {
				return nil, fmt.Errorf("unknown revision '%s': %s", rev, msg)
			}
			return nil, plots.ErrNotFound
		}
		return nil, fmt.Errorf("running git show: %w", err)
	}
	return out, nil
}

// isUnknownRevision distinguishes a bad revision from a path missing at
// a valid revision. Both exit non-zero, only the stderr text differs.
func isUnknownRevision(stderr string) bool {
	return strings.Contains(stderr, "unknown revision") ||
		strings.Contains(stderr, "bad revision")
}

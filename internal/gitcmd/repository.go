package gitcmd

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"sort"
	"strings"
	"time"
)

const (
	defaultTimeout = 60 * time.Second
	blameTimeout   = 30 * time.Second
)

// Repository runs git against one checked-out repository. Every invocation
// goes through run, which pins the working directory and a timeout so a hung
// or corrupted repository cannot stall a whole batch.
type Repository struct {
	path    string
	timeout time.Duration
}

// Open validates that path is a readable git repository.
func Open(path string) (*Repository, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &RepositoryError{Path: path, Err: err}
	}

	r := &Repository{path: path, timeout: defaultTimeout}

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()
	if _, err := r.run(ctx, "rev-parse", "--git-dir"); err != nil {
		return nil, &RepositoryError{Path: path, Err: fmt.Errorf("not a git repository: %w", err)}
	}
	return r, nil
}

// Path returns the repository's filesystem location.
func (r *Repository) Path() string { return r.path }

func (r *Repository) run(ctx context.Context, args ...string) ([]byte, error) {
	runCtx := ctx
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, "git", args...)
	cmd.Dir = r.path

	output, err := cmd.Output()
	if err != nil {
		op := "git"
		if len(args) > 0 {
			op = args[0]
		}
		if exitErr, ok := err.(*exec.ExitError); ok && len(exitErr.Stderr) > 0 {
			err = fmt.Errorf("%w (stderr: %s)", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, &ProcessError{Op: op, Args: args, Err: err}
	}
	return output, nil
}

// TrackedFiles lists the files tracked in the current working tree, sorted,
// so downstream passes are reproducible across runs.
func (r *Repository) TrackedFiles(ctx context.Context) ([]string, error) {
	output, err := r.run(ctx, "ls-files")
	if err != nil {
		return nil, err
	}

	var files []string
	for _, line := range strings.Split(strings.TrimSpace(string(output)), "\n") {
		if line != "" {
			files = append(files, line)
		}
	}
	sort.Strings(files)
	return files, nil
}

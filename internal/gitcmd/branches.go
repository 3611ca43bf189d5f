package gitcmd

import (
	"context"
	"strings"
)

// Branches lists all local and remote branches, excluding the synthetic
// remote HEAD pointer.
func (r *Repository) Branches(ctx context.Context) ([]string, error) {
	output, err := r.run(ctx, "branch", "-a", "--format=%(refname:short)")
	if err != nil {
		return nil, err
	}

	var branches []string
	for _, line := range strings.Split(strings.TrimSpace(string(output)), "\n") {
		name := strings.TrimSpace(line)
		if name == "" {
			continue
		}
		// "origin/HEAD" is a pointer, not a branch.
		if strings.HasSuffix(name, "/HEAD") || name == "HEAD" {
			continue
		}
		branches = append(branches, name)
	}
	return branches, nil
}

// RevList returns the commit hashes reachable from a branch, newest first.
func (r *Repository) RevList(ctx context.Context, branch string) ([]string, error) {
	output, err := r.run(ctx, "rev-list", branch)
	if err != nil {
		return nil, err
	}

	var hashes []string
	for _, line := range strings.Split(strings.TrimSpace(string(output)), "\n") {
		if line != "" {
			hashes = append(hashes, line)
		}
	}
	return hashes, nil
}

// BranchAuthors returns the commit authors reachable from a branch, one raw
// identity per commit, for the per-member-per-branch table.
func (r *Repository) BranchAuthors(ctx context.Context, branch string) ([]string, error) {
	output, err := r.run(ctx, "log", branch, "--pretty=format:%an")
	if err != nil {
		return nil, err
	}

	var authors []string
	for _, line := range strings.Split(string(output), "\n") {
		if line != "" {
			authors = append(authors, line)
		}
	}
	return authors, nil
}

package gitcmd

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/FadyCoding/EPEPEP/internal/types"
)

// logFieldSep is the ASCII unit separator. Author names and commit subjects
// are attacker-controlled, so the header format cannot rely on printable
// delimiters.
const logFieldSep = "\x1f"

const logFormat = "%H" + "%x1f" + "%an" + "%x1f" + "%at" + "%x1f" + "%P" + "%x1f" + "%s"

// Log walks the current HEAD history in the repository's native reverse
// chronological order and returns one record per commit, including the
// per-commit numstat aggregates and the changed-file list.
func (r *Repository) Log(ctx context.Context) ([]types.Commit, error) {
	output, err := r.run(ctx, "log", "--numstat", "--pretty=format:"+logFormat)
	if err != nil {
		return nil, &RepositoryError{Path: r.path, Err: err}
	}
	return parseLog(string(output)), nil
}

func parseLog(output string) []types.Commit {
	var commits []types.Commit
	var current *types.Commit

	for _, line := range strings.Split(output, "\n") {
		if line == "" {
			continue
		}

		if strings.Contains(line, logFieldSep) {
			if current != nil {
				commits = append(commits, *current)
			}
			current = parseHeader(line)
			continue
		}

		if current == nil {
			continue
		}
		if change, ok := parseNumstat(line); ok {
			current.Files = append(current.Files, change)
			current.Insertions += change.Added
			current.Deletions += change.Deleted
			// TotalLines is sourced from the stat entries themselves, kept
			// as an independent accumulator.
			current.TotalLines += change.Added + change.Deleted
		}
	}
	if current != nil {
		commits = append(commits, *current)
	}

	return commits
}

func parseHeader(line string) *types.Commit {
	parts := strings.SplitN(line, logFieldSep, 5)
	if len(parts) < 5 {
		return nil
	}

	timestamp, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return nil
	}

	return &types.Commit{
		Hash:    parts[0],
		Author:  parts[1],
		Time:    time.Unix(timestamp, 0).UTC(),
		Parents: len(strings.Fields(parts[3])),
		Message: parts[4],
	}
}

func parseNumstat(line string) (types.FileChange, bool) {
	parts := strings.SplitN(line, "\t", 3)
	if len(parts) != 3 {
		return types.FileChange{}, false
	}

	change := types.FileChange{Path: parts[2]}
	if parts[0] == "-" || parts[1] == "-" {
		change.Binary = true
		return change, true
	}

	added, err := strconv.Atoi(parts[0])
	if err != nil {
		return types.FileChange{}, false
	}
	deleted, err := strconv.Atoi(parts[1])
	if err != nil {
		return types.FileChange{}, false
	}

	change.Added = added
	change.Deleted = deleted
	return change, true
}

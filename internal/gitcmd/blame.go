package gitcmd

import (
	"bufio"
	"context"
	"strings"
)

// BlameFile attributes every line of one tracked file to the identity that
// last touched it, using the whitespace-insensitive porcelain blame. The
// returned slice holds one raw author identity per file line. Failures are
// per-file ProcessErrors; callers skip the file and keep going.
func (r *Repository) BlameFile(ctx context.Context, path string) ([]string, error) {
	blameCtx, cancel := context.WithTimeout(ctx, blameTimeout)
	defer cancel()

	output, err := r.run(blameCtx, "blame", "-w", "--line-porcelain", "--", path)
	if err != nil {
		return nil, err
	}
	return parseBlameAuthors(string(output)), nil
}

// parseBlameAuthors extracts the author of each line group from porcelain
// blame output. Every line of the file produces exactly one "author" header.
func parseBlameAuthors(output string) []string {
	var authors []string

	scanner := bufio.NewScanner(strings.NewReader(output))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "author ") {
			authors = append(authors, strings.TrimPrefix(line, "author "))
		}
	}

	return authors
}

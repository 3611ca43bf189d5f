package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// WriteCommitJSON writes the commit-activity report, one file per
// repository.
func WriteCommitJSON(doc *Document, dir string) (string, error) {
	payload := struct {
		Repository       string      `json:"repository"`
		RepositoryURL    string      `json:"repository_url"`
		TotalCommits     int         `json:"total_commits"`
		CommitsPerMember interface{} `json:"commits_per_member"`
		MembersCommits   interface{} `json:"members_commits"`
		IgnoredCommits   interface{} `json:"ignored_commits"`
		Branches         interface{} `json:"branches,omitempty"`
		Diagnostics      Diagnostics `json:"diagnostics"`
	}{
		Repository:       doc.Repository,
		RepositoryURL:    doc.RepositoryURL,
		TotalCommits:     doc.TotalCommits,
		CommitsPerMember: doc.CommitsPerMember,
		MembersCommits:   doc.MembersCommits,
		IgnoredCommits:   doc.IgnoredCommits,
		Branches:         doc.Branches,
		Diagnostics:      doc.Diagnostics,
	}
	return writeJSON(dir, doc.Repository+"_report.json", payload)
}

// WriteLOCJSON writes the line-of-code report, one file per repository.
func WriteLOCJSON(doc *Document, dir string) (string, error) {
	return writeJSON(dir, doc.Repository+"_loc_report.json", doc.LOC)
}

func writeJSON(dir, filename string, v any) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating report folder: %w", err)
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding report: %w", err)
	}
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}

package types

import "time"

// FileChange is one numstat entry of a commit. Binary files report "-" for
// both counters and carry zero in Added/Deleted.
type FileChange struct {
	Path    string
	Added   int
	Deleted int
	Binary  bool
}

// Commit is an immutable snapshot of one commit as read from the ledger.
type Commit struct {
	Hash       string
	Author     string
	Time       time.Time
	Parents    int
	Message    string
	Insertions int
	Deletions  int
	// TotalLines is the line total reported by the per-commit stat scan.
	// It is accumulated as its own field while reading the stat block and is
	// never recomputed from Insertions+Deletions downstream.
	TotalLines int
	Files      []FileChange
}

// ContributorStats accumulates a contributor's historical commit activity.
type ContributorStats struct {
	Commits int `json:"nb_commits"`
	Added   int `json:"added"`
	Deleted int `json:"deleted"`
	Total   int `json:"total"`
}

// CommitRef is a lightweight commit reference used in the biggest-commit and
// ignored-commit tables of the report.
type CommitRef struct {
	Hash           string `json:"commit"`
	Message        string `json:"message"`
	Added          int    `json:"lines_added"`
	Deleted        int    `json:"lines_deleted"`
	OriginalAuthor string `json:"original_author"`
	Link           string `json:"link,omitempty"`
}

// IgnoredCommit is a commit excluded from per-contributor totals, with the
// reasons that excluded it.
type IgnoredCommit struct {
	CommitRef
	MultipleParents bool `json:"because_multiple_parents"`
	MergeKeyword    bool `json:"because_merge"`
}

// FinalLOC is a contributor's surviving line count in the current snapshot.
type FinalLOC struct {
	Lines      int     `json:"lines"`
	Percentage float64 `json:"percentage"`
}

// FileOwnership is a contributor's share of one file's attributed lines.
// Percentage is rounded up, so any nonzero ownership reports at least 1%.
type FileOwnership struct {
	Lines      int `json:"lines"`
	Percentage int `json:"percentage"`
}

// IgnoredFiles records files skipped by one exclusion rule, keyed in the
// ledger by the matching extension or path fragment.
type IgnoredFiles struct {
	Reason   string   `json:"reason"`
	Count    int      `json:"count"`
	Examples []string `json:"files"`
}

// FolderContribution counts a contributor's distinct commits touching one
// root folder and that count's share of all commits touching the folder.
type FolderContribution struct {
	Touches     int     `json:"contributions"`
	FolderTotal int     `json:"total_commits"`
	Percentage  float64 `json:"percentage"`
}

// Grade is the derived fairness score for one contributor. Values are
// rounded to two decimals for reporting.
type Grade struct {
	Commits         int     `json:"nb_commits"`
	ExpectedCommits float64 `json:"expected_nb_commits"`
	CommitGrade     float64 `json:"commit_grade"`
	FinalLines      int     `json:"total"`
	ExpectedLines   float64 `json:"expected_total"`
	LocGrade        float64 `json:"loc_grade"`
	FinalGrade      float64 `json:"final_grade"`
}

// BranchActivity summarizes branch-level commit counts for one repository.
type BranchActivity struct {
	Branches               []string                  `json:"branches"`
	TotalUniqueCommits     int                       `json:"total_unique_commits"`
	AvgCommitsPerBranch    int                       `json:"avg_commits_per_branch"`
	CommitsPerBranch       map[string]int            `json:"branches_commit_counts"`
	MemberCommitsPerBranch map[string]map[string]int `json:"member_commits_by_branch"`
}

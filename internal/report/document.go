// Package report assembles the analysis results of one repository into a
// single document and renders it as JSON, Markdown, CSV, and an HTML
// activity chart.
package report

import (
	"sort"
	"strings"

	"github.com/FadyCoding/EPEPEP/internal/analyze"
	"github.com/FadyCoding/EPEPEP/internal/folders"
	"github.com/FadyCoding/EPEPEP/internal/grading"
	"github.com/FadyCoding/EPEPEP/internal/identity"
	"github.com/FadyCoding/EPEPEP/internal/snapshot"
	"github.com/FadyCoding/EPEPEP/internal/types"
)

// hugeCommitThreshold flags commits worth a manual look in the report.
const hugeCommitThreshold = 3000

// TotalLOC is the committed-lines section: repository-wide added/deleted
// totals plus the per-contributor table.
type TotalLOC struct {
	Total struct {
		Added   int `json:"added"`
		Deleted int `json:"deleted"`
	} `json:"total"`
	Data map[string]*types.ContributorStats `json:"data"`
}

// FinalLOCSection is the snapshot-ownership section of the LOC report.
type FinalLOCSection struct {
	Total            int                                        `json:"total"`
	Data             map[string]*types.FinalLOC                 `json:"data"`
	ContributedFiles map[string]map[string]*types.FileOwnership `json:"contributed_files"`
	IgnoredFiles     map[string]*types.IgnoredFiles             `json:"ignored_files"`
}

// LOCReport mirrors the layout of the emitted LOC JSON file. The section
// names are part of the report format.
type LOCReport struct {
	TotalLOC      TotalLOC                                        `json:"Total LOC"`
	FinalLOC      FinalLOCSection                                 `json:"Final LOC"`
	RootFolderLOC map[string]map[string]*types.FolderContribution `json:"Root Folder LOC"`
	Grades        map[string]*types.Grade                         `json:"Grades"`
}

// Diagnostics surfaces author identities the mapping did not cover, with
// fuzzy-matched canonical candidates.
type Diagnostics struct {
	UnmappedAuthors map[string]int        `json:"unmapped_authors,omitempty"`
	Suggestions     []identity.Suggestion `json:"mapping_suggestions,omitempty"`
	BlameWarnings   []string              `json:"blame_warnings,omitempty"`
}

// Document is the full analysis result of one repository.
type Document struct {
	Repository       string                             `json:"repository"`
	RepositoryURL    string                             `json:"repository_url"`
	TotalCommits     int                                `json:"total_commits"`
	CommitsPerMember map[string]*types.ContributorStats `json:"commits_per_member"`
	MembersCommits   map[string][]types.CommitRef       `json:"members_commits"`
	IgnoredCommits   map[string][]types.IgnoredCommit   `json:"ignored_commits"`
	Branches         *types.BranchActivity              `json:"branches,omitempty"`
	Activity         []analyze.ActivityPoint            `json:"-"`
	LOC              LOCReport                          `json:"loc_data"`
	Diagnostics      Diagnostics                        `json:"diagnostics"`
	Mapping          identity.Mapping                   `json:"-"`
}

// Inputs carries everything Build folds into a Document.
type Inputs struct {
	Name     string
	URL      string
	History  *analyze.History
	Snapshot *snapshot.Result
	Folders  *folders.Attribution
	Branches *types.BranchActivity
	Resolver *identity.Resolver
	Mapping  identity.Mapping
}

// Build assembles the document. Grades are computed here so every rendering
// works from the same numbers.
func Build(in Inputs) *Document {
	doc := &Document{
		Repository:       in.Name,
		RepositoryURL:    in.URL,
		TotalCommits:     in.History.TotalCommits,
		CommitsPerMember: in.History.PerContributor,
		MembersCommits:   linked(in.History.BiggestCommits, in.URL),
		IgnoredCommits:   linkedIgnored(in.History.IgnoredCommits, in.URL),
		Branches:         in.Branches,
		Activity:         in.History.Activity,
		Mapping:          in.Mapping,
	}

	for _, stats := range in.History.PerContributor {
		doc.LOC.TotalLOC.Total.Added += stats.Added
		doc.LOC.TotalLOC.Total.Deleted += stats.Deleted
	}
	doc.LOC.TotalLOC.Data = in.History.PerContributor

	doc.LOC.FinalLOC = FinalLOCSection{
		Total:            in.Snapshot.TotalLines,
		Data:             in.Snapshot.FinalLOC,
		ContributedFiles: in.Snapshot.FileOwnership,
		IgnoredFiles:     in.Snapshot.IgnoredFiles,
	}
	doc.LOC.RootFolderLOC = in.Folders.PerContributor
	doc.LOC.Grades = grading.Grade(in.History.PerContributor, in.Snapshot.FinalLOC)

	doc.Diagnostics = Diagnostics{
		UnmappedAuthors: in.Resolver.Unmapped(),
		Suggestions:     in.Resolver.Suggestions(),
		BlameWarnings:   in.Snapshot.Warnings,
	}
	return doc
}

// HugeCommits lists every non-ignored commit at or above the huge threshold,
// largest first, tagged with its contributor.
func (d *Document) HugeCommits() []HugeCommit {
	var huge []HugeCommit
	for member, refs := range d.MembersCommits {
		for _, ref := range refs {
			if ref.Added >= hugeCommitThreshold {
				huge = append(huge, HugeCommit{CommitRef: ref, Member: member})
			}
		}
	}
	sortHuge(huge)
	return huge
}

func sortHuge(huge []HugeCommit) {
	sort.SliceStable(huge, func(i, j int) bool {
		return huge[i].Added > huge[j].Added
	})
}

// HugeCommit is one oversized commit with the contributor it resolved to.
type HugeCommit struct {
	types.CommitRef
	Member string `json:"member"`
}

// CommitLink builds the web link for a commit hash from the repository URL.
// Non-http remotes get no link.
func CommitLink(repoURL, hash string) string {
	if !strings.HasPrefix(repoURL, "http") {
		return ""
	}
	return strings.TrimSuffix(repoURL, ".git") + "/commit/" + hash
}

func linked(in map[string][]types.CommitRef, url string) map[string][]types.CommitRef {
	out := make(map[string][]types.CommitRef, len(in))
	for member, refs := range in {
		linked := make([]types.CommitRef, len(refs))
		for i, ref := range refs {
			ref.Link = CommitLink(url, ref.Hash)
			linked[i] = ref
		}
		out[member] = linked
	}
	return out
}

func linkedIgnored(in map[string][]types.IgnoredCommit, url string) map[string][]types.IgnoredCommit {
	out := make(map[string][]types.IgnoredCommit, len(in))
	for member, commits := range in {
		linked := make([]types.IgnoredCommit, len(commits))
		for i, c := range commits {
			c.Link = CommitLink(url, c.Hash)
			linked[i] = c
		}
		out[member] = linked
	}
	return out
}

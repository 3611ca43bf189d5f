package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FadyCoding/EPEPEP/internal/analyze"
	"github.com/FadyCoding/EPEPEP/internal/folders"
	"github.com/FadyCoding/EPEPEP/internal/identity"
	"github.com/FadyCoding/EPEPEP/internal/snapshot"
	"github.com/FadyCoding/EPEPEP/internal/types"
)

func testMapping() identity.Mapping {
	return identity.Mapping{
		"Tom":  {"Tom Mansion", "ToMansion"},
		"Fady": {"FadyCoding"},
	}
}

func testInputs(t *testing.T) Inputs {
	t.Helper()
	resolver := identity.NewResolver(testMapping())
	commits := []types.Commit{
		{
			Hash: "aaaaaaaa", Author: "Tom Mansion", Parents: 1,
			Time: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
			Message: "big import", Insertions: 3500, Deletions: 10, TotalLines: 3510,
			Files: []types.FileChange{{Path: "src/a.go", Added: 3500, Deleted: 10}},
		},
		{
			Hash: "bbbbbbbb", Author: "FadyCoding", Parents: 1,
			Time: time.Date(2024, 3, 2, 10, 0, 0, 0, time.UTC),
			Message: "small fix", Insertions: 5, Deletions: 2, TotalLines: 7,
			Files: []types.FileChange{{Path: "src/b.go", Added: 5, Deleted: 2}},
		},
		{
			Hash: "cccccccc", Author: "Tom Mansion", Parents: 2,
			Time: time.Date(2024, 3, 3, 10, 0, 0, 0, time.UTC),
			Message: "Merge branch feature", Insertions: 0, Deletions: 0,
		},
	}
	history := analyze.AggregateHistory(commits, resolver)

	snap := &snapshot.Result{
		TotalLines: 100,
		FinalLOC: map[string]*types.FinalLOC{
			"Tom":  {Lines: 70, Percentage: 70},
			"Fady": {Lines: 30, Percentage: 30},
		},
		FileOwnership: map[string]map[string]*types.FileOwnership{
			"Tom": {"src/a.go": {Lines: 70, Percentage: 100}},
		},
		IgnoredFiles: map[string]*types.IgnoredFiles{
			"lock": {Reason: "Extension", Count: 1, Examples: []string{"package-lock.json"}},
		},
	}

	return Inputs{
		Name:     "demo",
		URL:      "https://github.com/debiai/demo.git",
		History:  history,
		Snapshot: snap,
		Folders:  folders.AttributeFolders(commits, resolver),
		Branches: &types.BranchActivity{Branches: []string{"main"}},
		Resolver: resolver,
		Mapping:  testMapping(),
	}
}

func TestBuildDocument(t *testing.T) {
	doc := Build(testInputs(t))

	assert.Equal(t, "demo", doc.Repository)
	assert.Equal(t, 3, doc.TotalCommits)
	assert.Equal(t, 1, doc.CommitsPerMember["Tom"].Commits)
	assert.Equal(t, 1, doc.CommitsPerMember["Fady"].Commits)

	require.Len(t, doc.IgnoredCommits["Tom"], 1)
	assert.True(t, doc.IgnoredCommits["Tom"][0].MultipleParents)

	require.NotNil(t, doc.LOC.Grades["Tom"])
	assert.InDelta(t, 20.0, doc.LOC.Grades["Tom"].LocGrade, 1e-9)

	assert.Equal(t, 3505, doc.LOC.TotalLOC.Total.Added)
	assert.Equal(t, 5, doc.LOC.TotalLOC.Data["Fady"].Added)

	assert.Equal(t,
		"https://github.com/debiai/demo/commit/aaaaaaaa",
		doc.MembersCommits["Tom"][0].Link)
}

func TestHugeCommits(t *testing.T) {
	doc := Build(testInputs(t))

	huge := doc.HugeCommits()
	require.Len(t, huge, 1)
	assert.Equal(t, "aaaaaaaa", huge[0].Hash)
	assert.Equal(t, "Tom", huge[0].Member)
}

func TestCommitLinkNonHTTPRemote(t *testing.T) {
	assert.Empty(t, CommitLink("/tmp/local-repo", "abc"))
	assert.Equal(t, "https://github.com/x/y/commit/abc", CommitLink("https://github.com/x/y.git", "abc"))
}

func TestWriteJSONReports(t *testing.T) {
	doc := Build(testInputs(t))
	dir := t.TempDir()

	commitPath, err := WriteCommitJSON(doc, dir)
	require.NoError(t, err)
	locPath, err := WriteLOCJSON(doc, dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "demo_report.json"), commitPath)

	var commitReport map[string]any
	data, err := os.ReadFile(commitPath)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &commitReport))
	assert.EqualValues(t, 3, commitReport["total_commits"])
	assert.Contains(t, commitReport, "members_commits")
	assert.Contains(t, commitReport, "ignored_commits")

	var locReport map[string]any
	data, err = os.ReadFile(locPath)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &locReport))
	assert.Contains(t, locReport, "Total LOC")
	assert.Contains(t, locReport, "Final LOC")
	assert.Contains(t, locReport, "Root Folder LOC")
	assert.Contains(t, locReport, "Grades")
}

func TestRenderMarkdown(t *testing.T) {
	doc := Build(testInputs(t))
	dir := t.TempDir()

	require.NoError(t, RenderMarkdown(doc, dir))

	repoReport, err := os.ReadFile(filepath.Join(dir, "demo_report.md"))
	require.NoError(t, err)
	text := string(repoReport)
	assert.Contains(t, text, "# demo Analysis Report")
	assert.Contains(t, text, "## Members")
	assert.Contains(t, text, "Tom Mansion<br>ToMansion")
	assert.Contains(t, text, "## Huge Commits (3000+ lines added)")
	assert.Contains(t, text, "big import")
	assert.Contains(t, text, "package-lock.json")

	tomReport, err := os.ReadFile(filepath.Join(dir, "contributors", "Tom_report.md"))
	require.NoError(t, err)
	tomText := string(tomReport)
	assert.Contains(t, tomText, "# Tom Contribution Report")
	assert.Contains(t, tomText, "Contribution by Folder")
	assert.Contains(t, tomText, "## Ignored commits")
	assert.Contains(t, tomText, "Merge branch feature")
}

func TestRenderMarkdownSpacedNames(t *testing.T) {
	in := testInputs(t)
	in.Mapping = identity.Mapping{"Tom M": {"Tom Mansion"}}
	in.Snapshot.FinalLOC = map[string]*types.FinalLOC{"Tom M": {Lines: 1, Percentage: 100}}
	doc := Build(in)
	dir := t.TempDir()

	require.NoError(t, RenderMarkdown(doc, dir))
	assert.FileExists(t, filepath.Join(dir, "contributors", "Tom_M_report.md"))
}

func TestWriteContributorCSV(t *testing.T) {
	doc := Build(testInputs(t))
	dir := t.TempDir()

	path, err := WriteContributorCSV(doc, dir)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "Contributor,Commits,Added,Deleted,FinalLines,FinalPercent,FinalGrade")
	assert.Contains(t, text, "Fady,1,5,2,30,30.00,")
}

func TestRenderActivityChart(t *testing.T) {
	doc := Build(testInputs(t))
	dir := t.TempDir()

	path, err := RenderActivityChart(doc, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "demo_activity.html"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "demo commit activity")
}

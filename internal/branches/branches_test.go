package branches

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FadyCoding/EPEPEP/internal/identity"
)

type fakeRepo struct {
	branches []string
	revs     map[string][]string
	authors  map[string][]string
	err      error
}

func (f *fakeRepo) Branches(context.Context) ([]string, error) {
	return f.branches, f.err
}

func (f *fakeRepo) RevList(_ context.Context, branch string) ([]string, error) {
	return f.revs[branch], nil
}

func (f *fakeRepo) BranchAuthors(_ context.Context, branch string) ([]string, error) {
	return f.authors[branch], nil
}

func testResolver() *identity.Resolver {
	return identity.NewResolver(identity.Mapping{
		"Tom":  {"Tom Mansion"},
		"Fady": {"FadyCoding"},
	})
}

func TestAnalyzeCountsAndAverage(t *testing.T) {
	repo := &fakeRepo{
		branches: []string{"main", "feature/a", "feature/b"},
		revs: map[string][]string{
			"main":      {"h1", "h2", "h3"},
			"feature/a": {"h4", "h1", "h2", "h3"},
			"feature/b": {"h5", "h6", "h1"},
		},
		authors: map[string][]string{
			"main":      {"Tom Mansion", "FadyCoding", "Tom Mansion"},
			"feature/a": {"Tom Mansion"},
			"feature/b": {"FadyCoding", "ghost"},
		},
	}

	a, err := Analyze(context.Background(), repo, testResolver())
	require.NoError(t, err)

	assert.Equal(t, []string{"main", "feature/a", "feature/b"}, a.Branches)
	assert.Equal(t, 6, a.TotalUniqueCommits)
	assert.Equal(t, 4, a.CommitsPerBranch["feature/a"])

	// Feature branches carry h1..h6 (6 unique) across 2 branches.
	assert.Equal(t, 3, a.AvgCommitsPerBranch)

	assert.Equal(t, 2, a.MemberCommitsPerBranch["main"]["Tom"])
	assert.Equal(t, 1, a.MemberCommitsPerBranch["feature/b"]["Fady"])
	assert.NotContains(t, a.MemberCommitsPerBranch["feature/b"], "ghost")
}

func TestAnalyzeTrunkVariantsExcludedFromAverage(t *testing.T) {
	repo := &fakeRepo{
		branches: []string{"main", "origin/main", "origin/develop", "topic"},
		revs: map[string][]string{
			"main":           {"h1"},
			"origin/main":    {"h1"},
			"origin/develop": {"h1", "h2"},
			"topic":          {"h3", "h4"},
		},
	}

	a, err := Analyze(context.Background(), repo, testResolver())
	require.NoError(t, err)

	// Only "topic" is a feature branch: 2 hashes / 1 branch.
	assert.Equal(t, 2, a.AvgCommitsPerBranch)
	assert.Equal(t, 4, a.TotalUniqueCommits)
}

func TestAnalyzeNoFeatureBranches(t *testing.T) {
	repo := &fakeRepo{
		branches: []string{"main"},
		revs:     map[string][]string{"main": {"h1", "h2"}},
	}

	a, err := Analyze(context.Background(), repo, testResolver())
	require.NoError(t, err)
	assert.Equal(t, 0, a.AvgCommitsPerBranch)
}

func TestAnalyzeBranchListError(t *testing.T) {
	repo := &fakeRepo{err: errors.New("not a repository")}
	_, err := Analyze(context.Background(), repo, testResolver())
	assert.Error(t, err)
}

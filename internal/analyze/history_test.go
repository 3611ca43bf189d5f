package analyze

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FadyCoding/EPEPEP/internal/identity"
	"github.com/FadyCoding/EPEPEP/internal/types"
)

func testResolver() *identity.Resolver {
	return identity.NewResolver(identity.Mapping{
		"Tom":  {"Tom Mansion", "ToMansion"},
		"Fady": {"FadyCoding"},
	})
}

func commit(hash, author, message string, parents, added, deleted int) types.Commit {
	return types.Commit{
		Hash:       hash,
		Author:     author,
		Time:       time.Unix(1700000000, 0),
		Parents:    parents,
		Message:    message,
		Insertions: added,
		Deletions:  deleted,
		TotalLines: added + deleted,
	}
}

func TestAggregateHistory(t *testing.T) {
	commits := []types.Commit{
		commit("a1", "Tom Mansion", "add api", 1, 100, 10),
		commit("a2", "ToMansion", "fix api", 1, 20, 5),
		commit("a3", "FadyCoding", "add ui", 1, 50, 0),
	}

	h := AggregateHistory(commits, testResolver())

	assert.Equal(t, 3, h.TotalCommits)

	tom := h.PerContributor["Tom"]
	require.NotNil(t, tom)
	assert.Equal(t, 2, tom.Commits)
	assert.Equal(t, 120, tom.Added)
	assert.Equal(t, 15, tom.Deleted)
	assert.Equal(t, 135, tom.Total)

	fady := h.PerContributor["Fady"]
	assert.Equal(t, 1, fady.Commits)
	assert.Equal(t, 50, fady.Added)
}

func TestMergeCommitsExcludedButCounted(t *testing.T) {
	commits := []types.Commit{
		commit("a1", "Tom Mansion", "real work", 1, 10, 2),
		commit("m1", "Tom Mansion", "Merge branch 'dev'", 1, 500, 0),
		commit("m2", "Tom Mansion", "combine things", 2, 300, 0),
	}

	h := AggregateHistory(commits, testResolver())

	// Raw total keeps all three commits.
	assert.Equal(t, 3, h.TotalCommits)

	tom := h.PerContributor["Tom"]
	assert.Equal(t, 1, tom.Commits)
	assert.Equal(t, 10, tom.Added)
	assert.Equal(t, 2, tom.Deleted)

	require.Len(t, h.IgnoredCommits["Tom"], 2)
	byHash := map[string]types.IgnoredCommit{}
	for _, ic := range h.IgnoredCommits["Tom"] {
		byHash[ic.Hash] = ic
	}
	assert.True(t, byHash["m1"].MergeKeyword)
	assert.False(t, byHash["m1"].MultipleParents)
	assert.True(t, byHash["m2"].MultipleParents)
	assert.False(t, byHash["m2"].MergeKeyword)
}

func TestUnmappedAuthorsKeptOutOfContributorTotals(t *testing.T) {
	resolver := testResolver()
	commits := []types.Commit{
		commit("a1", "Tom Mansion", "work", 1, 10, 0),
		commit("b1", "dependabot[bot]", "bump deps", 1, 9000, 9000),
	}

	h := AggregateHistory(commits, resolver)

	assert.Equal(t, 2, h.TotalCommits)
	assert.Equal(t, 10, h.PerContributor["Tom"].Added)
	assert.Equal(t, 0, h.PerContributor["Fady"].Added)
	assert.Contains(t, resolver.Unmapped(), "dependabot[bot]")
}

func TestAggregateIsCommutative(t *testing.T) {
	commits := []types.Commit{
		commit("a1", "Tom Mansion", "one", 1, 7, 1),
		commit("a2", "ToMansion", "two", 1, 13, 3),
		commit("a3", "FadyCoding", "three", 1, 21, 8),
		commit("a4", "Tom Mansion", "four", 1, 2, 2),
		commit("m1", "FadyCoding", "Merge it", 2, 100, 100),
	}

	want := AggregateHistory(commits, testResolver())

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		shuffled := make([]types.Commit, len(commits))
		copy(shuffled, commits)
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		got := AggregateHistory(shuffled, testResolver())
		assert.Equal(t, want.TotalCommits, got.TotalCommits)
		for name, stats := range want.PerContributor {
			assert.Equal(t, *stats, *got.PerContributor[name], "contributor %s", name)
		}
	}
}

func TestSummedDeltasMatchCommitDeltas(t *testing.T) {
	commits := []types.Commit{
		commit("a1", "Tom Mansion", "one", 1, 7, 1),
		commit("a2", "FadyCoding", "two", 1, 13, 3),
		commit("a3", "ToMansion", "three", 1, 21, 8),
	}

	h := AggregateHistory(commits, testResolver())

	wantAdded, wantDeleted := 0, 0
	for _, c := range commits {
		wantAdded += c.Insertions
		wantDeleted += c.Deletions
	}
	gotAdded, gotDeleted := 0, 0
	for _, stats := range h.PerContributor {
		gotAdded += stats.Added
		gotDeleted += stats.Deleted
	}
	assert.Equal(t, wantAdded, gotAdded)
	assert.Equal(t, wantDeleted, gotDeleted)
}

func TestBiggestCommitsSortedByAddedLines(t *testing.T) {
	commits := []types.Commit{
		commit("small", "Tom Mansion", "small", 1, 5, 0),
		commit("huge", "Tom Mansion", "huge", 1, 4000, 0),
		commit("mid", "ToMansion", "mid", 1, 100, 0),
	}

	h := AggregateHistory(commits, testResolver())

	refs := h.BiggestCommits["Tom"]
	require.Len(t, refs, 3)
	assert.Equal(t, "huge", refs[0].Hash)
	assert.Equal(t, "mid", refs[1].Hash)
	assert.Equal(t, "small", refs[2].Hash)
}

func TestSortedContributorsByCommitCount(t *testing.T) {
	commits := []types.Commit{
		commit("a1", "FadyCoding", "one", 1, 1, 0),
		commit("a2", "FadyCoding", "two", 1, 1, 0),
		commit("a3", "Tom Mansion", "three", 1, 1, 0),
	}

	h := AggregateHistory(commits, testResolver())
	assert.Equal(t, []string{"Fady", "Tom"}, h.SortedContributors())
}

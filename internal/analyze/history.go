package analyze

import (
	"sort"
	"time"

	"github.com/FadyCoding/EPEPEP/internal/identity"
	"github.com/FadyCoding/EPEPEP/internal/rules"
	"github.com/FadyCoding/EPEPEP/internal/types"
)

// ActivityPoint is one commit on the activity timeline.
type ActivityPoint struct {
	Contributor string
	Time        time.Time
}

// History is the aggregated commit activity of one repository. Merge commits
// and unresolved authors are excluded from the per-contributor stats but kept
// in TotalCommits, so the raw repository total stays honest.
type History struct {
	TotalCommits   int
	PerContributor map[string]*types.ContributorStats
	BiggestCommits map[string][]types.CommitRef
	IgnoredCommits map[string][]types.IgnoredCommit
	Activity       []ActivityPoint
}

// AggregateHistory folds the commit stream into per-contributor totals. The
// reducer is commutative: processing order never changes the result.
func AggregateHistory(commits []types.Commit, resolver *identity.Resolver) *History {
	h := &History{
		PerContributor: make(map[string]*types.ContributorStats),
		BiggestCommits: make(map[string][]types.CommitRef),
		IgnoredCommits: make(map[string][]types.IgnoredCommit),
	}
	for _, name := range resolver.Roster() {
		h.PerContributor[name] = &types.ContributorStats{}
	}

	for _, c := range commits {
		h.TotalCommits++

		contributor, ok := resolver.Resolve(c.Author)
		if !ok {
			continue
		}

		h.Activity = append(h.Activity, ActivityPoint{Contributor: contributor, Time: c.Time})

		ref := types.CommitRef{
			Hash:           c.Hash,
			Message:        c.Message,
			Added:          c.Insertions,
			Deleted:        c.Deletions,
			OriginalAuthor: c.Author,
		}

		if rules.IsMergeCommit(c) {
			h.IgnoredCommits[contributor] = append(h.IgnoredCommits[contributor], types.IgnoredCommit{
				CommitRef:       ref,
				MultipleParents: c.Parents > 1,
				MergeKeyword:    rules.IsMergeMessage(c.Message),
			})
			continue
		}

		stats := h.PerContributor[contributor]
		stats.Commits++
		stats.Added += c.Insertions
		stats.Deleted += c.Deletions
		stats.Total += c.TotalLines

		h.BiggestCommits[contributor] = append(h.BiggestCommits[contributor], ref)
	}

	for contributor := range h.BiggestCommits {
		refs := h.BiggestCommits[contributor]
		sort.SliceStable(refs, func(i, j int) bool {
			return refs[i].Added > refs[j].Added
		})
	}
	sort.SliceStable(h.Activity, func(i, j int) bool {
		return h.Activity[i].Time.Before(h.Activity[j].Time)
	})

	return h
}

// SortedContributors orders contributors by descending commit count, then by
// name. Presentation only: the aggregates themselves are order-free.
func (h *History) SortedContributors() []string {
	names := make([]string, 0, len(h.PerContributor))
	for name := range h.PerContributor {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ci, cj := h.PerContributor[names[i]].Commits, h.PerContributor[names[j]].Commits
		if ci != cj {
			return ci > cj
		}
		return names[i] < names[j]
	})
	return names
}

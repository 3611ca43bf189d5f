// Package branches measures how work is spread across a repository's
// branches: per-branch commit counts, per-member commit counts on each
// branch, and an average over feature branches that leaves the trunk out.
package branches

import (
	"context"
	"strings"

	"github.com/FadyCoding/EPEPEP/internal/identity"
	"github.com/FadyCoding/EPEPEP/internal/types"
)

// trunkNames are branch names excluded from the per-branch average. Remote
// variants (origin/main) match on the segment after the last slash.
var trunkNames = map[string]struct{}{
	"main":    {},
	"master":  {},
	"dev":     {},
	"develop": {},
}

// Lister is the subset of repository operations branch analysis needs.
type Lister interface {
	Branches(ctx context.Context) ([]string, error)
	RevList(ctx context.Context, branch string) ([]string, error)
	BranchAuthors(ctx context.Context, branch string) ([]string, error)
}

// Analyze walks every branch of the repository and builds the branch
// activity summary. Unmapped identities are left out of the member tables;
// the history pass owns their tally, so branch walks only look up.
func Analyze(ctx context.Context, repo Lister, resolver *identity.Resolver) (*types.BranchActivity, error) {
	names, err := repo.Branches(ctx)
	if err != nil {
		return nil, err
	}

	activity := &types.BranchActivity{
		Branches:               names,
		CommitsPerBranch:       make(map[string]int, len(names)),
		MemberCommitsPerBranch: make(map[string]map[string]int, len(names)),
	}

	seen := map[string]struct{}{}
	featureHashes := map[string]struct{}{}
	featureBranches := 0

	for _, name := range names {
		hashes, err := repo.RevList(ctx, name)
		if err != nil {
			return nil, err
		}
		activity.CommitsPerBranch[name] = len(hashes)

		feature := !isTrunk(name)
		if feature {
			featureBranches++
		}
		for _, h := range hashes {
			seen[h] = struct{}{}
			if feature {
				featureHashes[h] = struct{}{}
			}
		}

		authors, err := repo.BranchAuthors(ctx, name)
		if err != nil {
			return nil, err
		}
		members := map[string]int{}
		for _, raw := range authors {
			if canonical, ok := resolver.Lookup(raw); ok {
				members[canonical]++
			}
		}
		activity.MemberCommitsPerBranch[name] = members
	}

	activity.TotalUniqueCommits = len(seen)
	if featureBranches > 0 {
		activity.AvgCommitsPerBranch = len(featureHashes) / featureBranches
	}
	return activity, nil
}

func isTrunk(branch string) bool {
	short := branch
	if i := strings.LastIndex(branch, "/"); i >= 0 {
		short = branch[i+1:]
	}
	_, ok := trunkNames[short]
	return ok
}

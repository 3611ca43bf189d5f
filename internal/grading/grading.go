// Package grading turns commit counts and surviving line counts into a 0-20
// fairness grade per contributor. The expectation is an even split: with N
// contributors each is expected to carry 1/N of the commits and 1/N of the
// final lines. Meeting or exceeding the expectation caps at 20.
package grading

import (
	"math"

	"github.com/FadyCoding/EPEPEP/internal/types"
)

const maxGrade = 20.0

// Grade computes per-contributor grades from commit statistics and final LOC
// ownership. Contributors present in either map are graded; missing entries
// count as zero. Returns nil when there is nobody to grade.
func Grade(stats map[string]*types.ContributorStats, finalLOC map[string]*types.FinalLOC) map[string]*types.Grade {
	names := map[string]struct{}{}
	totalCommits := 0
	totalLines := 0
	for name, s := range stats {
		names[name] = struct{}{}
		totalCommits += s.Commits
	}
	for name, loc := range finalLOC {
		names[name] = struct{}{}
		totalLines += loc.Lines
	}
	n := len(names)
	if n == 0 {
		return nil
	}

	expectedCommits := float64(totalCommits) / float64(n)
	expectedLines := float64(totalLines) / float64(n)

	grades := make(map[string]*types.Grade, n)
	for name := range names {
		commits := 0
		if s, ok := stats[name]; ok {
			commits = s.Commits
		}
		lines := 0
		if loc, ok := finalLOC[name]; ok {
			lines = loc.Lines
		}

		commitGrade := scale(float64(commits), expectedCommits)
		locGrade := scale(float64(lines), expectedLines)
		final := (commitGrade + locGrade) / 2

		grades[name] = &types.Grade{
			Commits:         commits,
			ExpectedCommits: round2(expectedCommits),
			CommitGrade:     round2(commitGrade),
			FinalLines:      lines,
			ExpectedLines:   round2(expectedLines),
			LocGrade:        round2(locGrade),
			FinalGrade:      round2(final),
		}
	}
	return grades
}

// scale maps actual/expected onto 0-20, capped at 20. A zero expectation
// means nothing was produced at all, which grades as full marks.
func scale(actual, expected float64) float64 {
	if expected <= 0 || actual >= expected {
		return maxGrade
	}
	return maxGrade * actual / expected
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

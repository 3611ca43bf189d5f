package folders

import (
	"sort"
	"strings"

	"github.com/FadyCoding/EPEPEP/internal/identity"
	"github.com/FadyCoding/EPEPEP/internal/types"
)

// Attribution maps each contributor to their per-root-folder touch counts.
// A touch is one commit by the contributor that changed at least one file
// under the folder; several files under the same folder in one commit still
// count once.
type Attribution struct {
	PerContributor map[string]map[string]*types.FolderContribution
	FolderTotals   map[string]int
}

// AttributeFolders derives per-root-folder contribution shares from the
// commit stream. Commits by unresolved identities are skipped; the history
// pass has already tallied them, so this one only looks up.
func AttributeFolders(commits []types.Commit, resolver *identity.Resolver) *Attribution {
	a := &Attribution{
		PerContributor: make(map[string]map[string]*types.FolderContribution),
		FolderTotals:   make(map[string]int),
	}
	for _, name := range resolver.Roster() {
		a.PerContributor[name] = make(map[string]*types.FolderContribution)
	}

	for _, c := range commits {
		contributor, ok := resolver.Lookup(c.Author)
		if !ok {
			continue
		}

		touched := rootFolders(c.Files)
		for folder := range touched {
			entry := a.PerContributor[contributor][folder]
			if entry == nil {
				entry = &types.FolderContribution{}
				a.PerContributor[contributor][folder] = entry
			}
			entry.Touches++
			a.FolderTotals[folder]++
		}
	}

	for _, folderTable := range a.PerContributor {
		for folder, entry := range folderTable {
			total := a.FolderTotals[folder]
			entry.FolderTotal = total
			if total > 0 {
				entry.Percentage = float64(entry.Touches) / float64(total) * 100
			}
		}
	}

	return a
}

// rootFolders returns the distinct first path segments of a commit's changed
// files. A file at the repository root attributes to its own name.
func rootFolders(files []types.FileChange) map[string]bool {
	out := make(map[string]bool)
	for _, f := range files {
		segment, _, _ := strings.Cut(f.Path, "/")
		if segment == "" {
			continue
		}
		out[segment] = true
	}
	return out
}

// SortedFolders orders one contributor's folders by descending touch count,
// then by name. Presentation only.
func (a *Attribution) SortedFolders(contributor string) []string {
	table := a.PerContributor[contributor]
	names := make([]string, 0, len(table))
	for folder := range table {
		names = append(names, folder)
	}
	sort.Slice(names, func(i, j int) bool {
		ti, tj := table[names[i]].Touches, table[names[j]].Touches
		if ti != tj {
			return ti > tj
		}
		return names[i] < names[j]
	})
	return names
}

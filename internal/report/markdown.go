package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// contributorPage is the relative link from the repository report to one
// contributor's page.
func contributorPage(name string) string {
	return "./contributors/" + strings.ReplaceAll(name, " ", "_") + "_report.md"
}

// RenderMarkdown writes the repository report and one page per contributor
// under dir.
func RenderMarkdown(doc *Document, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating report folder: %w", err)
	}

	repoPath := filepath.Join(dir, doc.Repository+"_report.md")
	if err := os.WriteFile(repoPath, []byte(repositoryMarkdown(doc)), 0o644); err != nil {
		return fmt.Errorf("writing repository report: %w", err)
	}

	contributorsDir := filepath.Join(dir, "contributors")
	if err := os.MkdirAll(contributorsDir, 0o755); err != nil {
		return fmt.Errorf("creating contributors folder: %w", err)
	}
	for name := range doc.LOC.FinalLOC.Data {
		page := contributorMarkdown(doc, name)
		path := filepath.Join(contributorsDir, strings.ReplaceAll(name, " ", "_")+"_report.md")
		if err := os.WriteFile(path, []byte(page), 0o644); err != nil {
			return fmt.Errorf("writing contributor report for %s: %w", name, err)
		}
	}
	return nil
}

func repositoryMarkdown(doc *Document) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s Analysis Report\n", doc.Repository)
	fmt.Fprintf(&b, "**Repository URL:** %s\n\n", doc.RepositoryURL)

	membersSection(&b, doc)

	b.WriteString("## Commits\n")
	fmt.Fprintf(&b, "**Total Commits:** %d\n\n", doc.TotalCommits)
	fmt.Fprintf(&b, "[Commit activity chart](./%s_activity.html)\n\n", doc.Repository)

	locSection(&b, doc)
	gradeSection(&b, doc)
	contributionSection(&b, doc)
	hugeCommitsSection(&b, doc)
	ignoredFilesSection(&b, doc)
	diagnosticsSection(&b, doc)

	return b.String()
}

func membersSection(b *strings.Builder, doc *Document) {
	b.WriteString("## Members\n")

	names := make([]string, 0, len(doc.Mapping))
	totalAccounts := 0
	for name, aliases := range doc.Mapping {
		names = append(names, name)
		totalAccounts += len(aliases)
	}
	sort.Strings(names)

	fmt.Fprintf(b, "**Total Members:** %d\n\n", totalAccounts)
	b.WriteString("| Name | Git and GitHub Accounts |\n")
	b.WriteString("|------|-------------------------|\n")
	for _, name := range names {
		accounts := strings.Join(doc.Mapping[name], "<br>")
		fmt.Fprintf(b, "| [%s](%s) | %s |\n", name, contributorPage(name), accounts)
	}
	b.WriteString("\n")
}

func locSection(b *strings.Builder, doc *Document) {
	total := doc.LOC.TotalLOC.Total

	b.WriteString("## Line of Codes\n")
	b.WriteString("### Count:\n")
	fmt.Fprintf(b, "- **Final LOC:** %d\n\n", doc.LOC.FinalLOC.Total)
	b.WriteString("### Total Committed:\n")
	fmt.Fprintf(b, "- **Total Added:** %d\n", total.Added)
	fmt.Fprintf(b, "- **Total Removed:** %d\n", total.Deleted)
	fmt.Fprintf(b, "- **Total LOC:** %d\n\n", total.Added-total.Deleted)

	b.WriteString("### Members committed lines:\n")
	b.WriteString("| Contributor | commits | Added | Removed | Total added | Sum |\n")
	b.WriteString("|-------------|---------|-------|---------|-------------|-----|\n")
	for _, name := range sortedKeys(doc.LOC.TotalLOC.Data) {
		s := doc.LOC.TotalLOC.Data[name]
		fmt.Fprintf(b, "| [%s](%s) | %d | %d | %d | %d | %d |\n",
			name, contributorPage(name), s.Commits, s.Added, s.Deleted, s.Added-s.Deleted, s.Total)
	}
	b.WriteString("\n")
}

func gradeSection(b *strings.Builder, doc *Document) {
	b.WriteString("### Grade:\n")
	b.WriteString("| Contributor | Expected nb commits | Commit grade | Expected total LOC | LOC grade | Final grade |\n")
	b.WriteString("|-------------|---------------------|--------------|--------------------|-----------|-------------|\n")
	for _, name := range sortedKeys(doc.LOC.Grades) {
		g := doc.LOC.Grades[name]
		fmt.Fprintf(b, "| [%s](%s) | %d / %.2f | %.2f | %d / %.2f | %.2f | %.2f |\n",
			name, contributorPage(name),
			g.Commits, g.ExpectedCommits, g.CommitGrade,
			g.FinalLines, g.ExpectedLines, g.LocGrade, g.FinalGrade)
	}
	b.WriteString("\n")
}

func contributionSection(b *strings.Builder, doc *Document) {
	b.WriteString("### Contribution\n")
	b.WriteString("This section shows the contribution of each contributor to the final LOC of the repository (a snapshot of the repository at the time of the analysis).\n\n")
	fmt.Fprintf(b, "**Total Contributors:** %d\n\n", len(doc.LOC.FinalLOC.Data))
	b.WriteString("| Contributor | Lines | Percent |\n")
	b.WriteString("|-------------|-------|---------|\n")
	for _, name := range sortedKeys(doc.LOC.FinalLOC.Data) {
		loc := doc.LOC.FinalLOC.Data[name]
		fmt.Fprintf(b, "| [%s](%s) | %d | %.2f%% |\n", name, contributorPage(name), loc.Lines, loc.Percentage)
	}
	b.WriteString("\n")
}

func hugeCommitsSection(b *strings.Builder, doc *Document) {
	b.WriteString("## Huge Commits (3000+ lines added)\n")
	b.WriteString("| Commit | Contributor | Message | Lines Added | Lines Deleted |\n")
	b.WriteString("|--------|-------------|---------|-------------|---------------|\n")
	for _, c := range doc.HugeCommits() {
		fmt.Fprintf(b, "| %s | %s | %s | +%d | -%d |\n",
			hashCell(c.CommitRef.Hash, c.Link), c.Member, oneLine(c.Message), c.Added, c.Deleted)
	}
	b.WriteString("\n")
}

func ignoredFilesSection(b *strings.Builder, doc *Document) {
	if len(doc.LOC.FinalLOC.IgnoredFiles) == 0 {
		return
	}
	b.WriteString("## Ignored folder or file extensions\n")
	b.WriteString("| File | Reason | Number | Examples |\n")
	b.WriteString("|------|--------|--------|----------|\n")
	for _, key := range sortedKeys(doc.LOC.FinalLOC.IgnoredFiles) {
		entry := doc.LOC.FinalLOC.IgnoredFiles[key]
		examples := ""
		if len(entry.Examples) > 0 {
			examples = "- " + strings.Join(entry.Examples, "<br> - ")
		}
		if entry.Count > len(entry.Examples) {
			examples += "<br>..."
		}
		fmt.Fprintf(b, "| %s | %s | %d | %s |\n", key, entry.Reason, entry.Count, examples)
	}
	b.WriteString("\n")
}

func diagnosticsSection(b *strings.Builder, doc *Document) {
	if len(doc.Diagnostics.UnmappedAuthors) == 0 {
		return
	}
	b.WriteString("## Unmapped author identities\n")
	b.WriteString("These git authors were seen in the history but are absent from the members mapping. Their work is excluded from every table above.\n\n")
	b.WriteString("| Author | Commits seen | Closest member |\n")
	b.WriteString("|--------|--------------|----------------|\n")

	closest := map[string]string{}
	for _, s := range doc.Diagnostics.Suggestions {
		closest[s.Raw] = s.Canonical
	}
	for _, raw := range sortedKeys(doc.Diagnostics.UnmappedAuthors) {
		fmt.Fprintf(b, "| %s | %d | %s |\n", raw, doc.Diagnostics.UnmappedAuthors[raw], closest[raw])
	}
	b.WriteString("\n")
}

func contributorMarkdown(doc *Document, name string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "<- back to [Repository Report](../%s_report.md)\n\n", doc.Repository)
	fmt.Fprintf(&b, "# %s Contribution Report\n", name)
	fmt.Fprintf(&b, "**Repository:** %s\n\n", doc.Repository)

	if loc, ok := doc.LOC.FinalLOC.Data[name]; ok {
		b.WriteString("## Line of Codes\n")
		fmt.Fprintf(&b, "**Total Lines:** %d\n", loc.Lines)
		fmt.Fprintf(&b, "**Percentage:** %.2f%%\n\n", loc.Percentage)
	}

	folderSection(&b, doc, name)
	fileSection(&b, doc, name)
	biggestCommitsSection(&b, doc, name)
	ignoredCommitsSection(&b, doc, name)

	return b.String()
}

func folderSection(b *strings.Builder, doc *Document, name string) {
	perFolder := doc.LOC.RootFolderLOC[name]
	if len(perFolder) == 0 {
		return
	}
	b.WriteString("### Contribution by Folder\n")
	b.WriteString("| Folder | Commits | Percent |\n")
	b.WriteString("|--------|---------|---------|\n")

	folders := sortedKeys(perFolder)
	sort.SliceStable(folders, func(i, j int) bool {
		return perFolder[folders[i]].Touches > perFolder[folders[j]].Touches
	})
	for _, folder := range folders {
		c := perFolder[folder]
		fmt.Fprintf(b, "| %s | **%d** / %d | %.2f%% |\n", folder, c.Touches, c.FolderTotal, c.Percentage)
	}
	b.WriteString("\nThe folder percentage is calculated based on the total Commits of each contributor that has contributed to the said folder.\n")
}

const maxListedRows = 30

func fileSection(b *strings.Builder, doc *Document, name string) {
	perFile := doc.LOC.FinalLOC.ContributedFiles[name]
	if len(perFile) == 0 {
		return
	}
	b.WriteString("## Contribution by File\n")
	b.WriteString("| File | Total contributed lines | Percent |\n")
	b.WriteString("|------|-------------------------|---------|\n")

	files := sortedKeys(perFile)
	sort.SliceStable(files, func(i, j int) bool {
		return perFile[files[i]].Lines > perFile[files[j]].Lines
	})
	for i, file := range files {
		if i == maxListedRows {
			b.WriteString("| ... | ... | ... |\n")
			fmt.Fprintf(b, "%d out of %d files shown.\n", maxListedRows, len(files))
			break
		}
		o := perFile[file]
		fmt.Fprintf(b, "| %s | %d | %d%% |\n", file, o.Lines, o.Percentage)
	}
	b.WriteString("\n")
}

func biggestCommitsSection(b *strings.Builder, doc *Document, name string) {
	refs := doc.MembersCommits[name]
	if len(refs) == 0 {
		return
	}
	b.WriteString("\n## Biggest commits\n")
	b.WriteString("| Commit | Message | Lines Added | Lines Deleted | Author |\n")
	b.WriteString("|--------|---------|-------------|---------------|-----------------|\n")
	for i, ref := range refs {
		if i == maxListedRows {
			break
		}
		fmt.Fprintf(b, "| %s | %s | +%d | -%d | %s |\n",
			hashCell(ref.Hash, ref.Link), oneLine(ref.Message), ref.Added, ref.Deleted, ref.OriginalAuthor)
	}
	b.WriteString("\n")
}

func ignoredCommitsSection(b *strings.Builder, doc *Document, name string) {
	ignored := doc.IgnoredCommits[name]
	b.WriteString("\n## Ignored commits\n")
	if len(ignored) == 0 {
		b.WriteString("No ignored commits for this contributor.\n")
		return
	}
	b.WriteString("| Commit | Message | Lines Added | Reason | Author |\n")
	b.WriteString("|--------|---------|-------------|--------|--------|\n")
	for _, c := range ignored {
		reason := ""
		if c.MultipleParents {
			reason += "Multiple parents. "
		}
		if c.MergeKeyword {
			reason += "Merge"
		}
		fmt.Fprintf(b, "| %s | %s | %d | %s | %s |\n",
			hashCell(c.Hash, c.Link), oneLine(c.Message), c.Added, strings.TrimSpace(reason), c.OriginalAuthor)
	}
	b.WriteString("\n")
}

func hashCell(hash, link string) string {
	short := hash
	if len(short) > 5 {
		short = short[:5]
	}
	if link == "" {
		return short
	}
	return fmt.Sprintf("[%s](%s)", short, link)
}

func oneLine(message string) string {
	s := strings.ReplaceAll(message, "\n", " ")
	return strings.ReplaceAll(s, "|", "\\|")
}

func sortedKeys[M map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

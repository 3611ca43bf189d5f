// Package display renders the analysis summary for the terminal.
package display

import (
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/FadyCoding/EPEPEP/internal/report"
)

var (
	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FAFAFA")).
		Background(lipgloss.Color("#5d5d5d")).
		PaddingLeft(1).
		PaddingRight(1)

	warnStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ffff00"))

	gradeStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#ffd700"))
)

// Summary prints the per-repository analysis summary: contributor totals,
// grades, and any identities the mapping missed.
func Summary(w io.Writer, doc *report.Document) {
	fmt.Fprintln(w, titleStyle.Render(doc.Repository+" - Contribution Summary"))
	fmt.Fprintf(w, "Total commits: %d\n", doc.TotalCommits)
	fmt.Fprintf(w, "Final LOC: %d\n\n", doc.LOC.FinalLOC.Total)

	contributorTable(w, doc)
	gradeTable(w, doc)
	unmappedWarnings(w, doc)
}

func contributorTable(w io.Writer, doc *report.Document) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Contributor", "Commits", "Added", "Removed", "Final LOC", "Final %"})

	for _, name := range sortedContributors(doc) {
		stats := doc.CommitsPerMember[name]
		lines, percent := 0, 0.0
		if loc, ok := doc.LOC.FinalLOC.Data[name]; ok {
			lines, percent = loc.Lines, loc.Percentage
		}
		t.AppendRow(table.Row{name, stats.Commits, stats.Added, stats.Deleted, lines, fmt.Sprintf("%.2f%%", percent)})
	}
	t.Render()
	fmt.Fprintln(w)
}

func gradeTable(w io.Writer, doc *report.Document) {
	if len(doc.LOC.Grades) == 0 {
		return
	}
	fmt.Fprintln(w, gradeStyle.Render("Grades (0-20)"))

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Contributor", "Commit grade", "LOC grade", "Final grade"})

	for _, name := range sortedContributors(doc) {
		g, ok := doc.LOC.Grades[name]
		if !ok {
			continue
		}
		t.AppendRow(table.Row{name, g.CommitGrade, g.LocGrade, g.FinalGrade})
	}
	t.Render()
	fmt.Fprintln(w)
}

func unmappedWarnings(w io.Writer, doc *report.Document) {
	if len(doc.Diagnostics.UnmappedAuthors) == 0 {
		return
	}
	fmt.Fprintln(w, warnStyle.Render("Unmapped author identities:"))

	closest := map[string]string{}
	for _, s := range doc.Diagnostics.Suggestions {
		closest[s.Raw] = s.Canonical
	}
	for _, raw := range sortedAuthors(doc.Diagnostics.UnmappedAuthors) {
		line := fmt.Sprintf("  %s (%d commits)", raw, doc.Diagnostics.UnmappedAuthors[raw])
		if c := closest[raw]; c != "" {
			line += fmt.Sprintf(", did you mean %q?", c)
		}
		fmt.Fprintln(w, warnStyle.Render(line))
	}
}

// sortedContributors orders by descending commit count, then by name.
func sortedContributors(doc *report.Document) []string {
	names := make([]string, 0, len(doc.CommitsPerMember))
	for name := range doc.CommitsPerMember {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		ci, cj := doc.CommitsPerMember[names[i]].Commits, doc.CommitsPerMember[names[j]].Commits
		if ci != cj {
			return ci > cj
		}
		return names[i] < names[j]
	})
	return names
}

func sortedAuthors(m map[string]int) []string {
	authors := make([]string, 0, len(m))
	for a := range m {
		authors = append(authors, a)
	}
	sort.Strings(authors)
	return authors
}

// Package pipeline runs the analysis stages for configured projects and
// writes their reports into the configured folders.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/FadyCoding/EPEPEP/internal/analyze"
	"github.com/FadyCoding/EPEPEP/internal/branches"
	"github.com/FadyCoding/EPEPEP/internal/clone"
	"github.com/FadyCoding/EPEPEP/internal/config"
	"github.com/FadyCoding/EPEPEP/internal/display"
	"github.com/FadyCoding/EPEPEP/internal/folders"
	"github.com/FadyCoding/EPEPEP/internal/gitcmd"
	"github.com/FadyCoding/EPEPEP/internal/identity"
	"github.com/FadyCoding/EPEPEP/internal/report"
	"github.com/FadyCoding/EPEPEP/internal/snapshot"
)

// Options tunes a pipeline run.
type Options struct {
	// SkipClone keeps existing checkouts instead of cloning.
	SkipClone bool
	// BlameWorkers bounds the concurrent blame passes. Defaults to 4.
	BlameWorkers int
	// Quiet disables the progress bar.
	Quiet bool
}

// Clone fetches every configured repository.
func Clone(ctx context.Context, cfg *config.Config, opts Options) error {
	tasks := clone.Tasks(cfg)
	if opts.SkipClone {
		color.Yellow("Skipping clone step")
		return nil
	}
	return clone.All(ctx, tasks, cfg.CloneWorkers)
}

// AnalyzeProject runs every analysis stage for one cloned project and
// returns the assembled document.
func AnalyzeProject(ctx context.Context, name string, project *config.Project, opts Options) (*report.Document, error) {
	repo, err := gitcmd.Open(project.RepoDir)
	if err != nil {
		return nil, err
	}

	resolver := identity.NewResolver(project.MembersMapping)

	commits, err := repo.Log(ctx)
	if err != nil {
		return nil, err
	}
	history := analyze.AggregateHistory(commits, resolver)

	files, err := repo.TrackedFiles(ctx)
	if err != nil {
		return nil, err
	}

	var bar *progressbar.ProgressBar
	snapOpts := snapshot.Options{Workers: opts.BlameWorkers}
	if !opts.Quiet {
		bar = progressbar.Default(int64(len(files)), "blaming "+name)
		snapOpts.Progress = func() { _ = bar.Add(1) }
	}
	snap := snapshot.Attribute(ctx, repo, files, resolver, snapOpts)
	if bar != nil {
		_ = bar.Finish()
	}

	folderAttribution := folders.AttributeFolders(commits, resolver)

	branchActivity, err := branches.Analyze(ctx, repo, resolver)
	if err != nil {
		return nil, err
	}

	return report.Build(report.Inputs{
		Name:     name,
		URL:      project.URL,
		History:  history,
		Snapshot: snap,
		Folders:  folderAttribution,
		Branches: branchActivity,
		Resolver: resolver,
		Mapping:  project.MembersMapping,
	}), nil
}

// AnalyzeAll runs AnalyzeProject for every configured project. A failing
// project is reported and skipped, the rest of the batch continues.
func AnalyzeAll(ctx context.Context, cfg *config.Config, opts Options) ([]*report.Document, error) {
	clone.Tasks(cfg) // set RepoDir on every project

	var docs []*report.Document
	var failures int
	for _, name := range cfg.ProjectNames() {
		color.Cyan("- Project: %s", name)
		doc, err := AnalyzeProject(ctx, name, cfg.Projects[name], opts)
		if err != nil {
			color.Red("  analysis failed: %v", err)
			failures++
			continue
		}
		docs = append(docs, doc)
	}
	if len(docs) == 0 && failures > 0 {
		return nil, fmt.Errorf("all %d projects failed", failures)
	}
	return docs, nil
}

// WriteCommitReports writes the commit JSON report and the contributor CSV
// for each document.
func WriteCommitReports(docs []*report.Document, cfg *config.Config) error {
	for _, doc := range docs {
		if _, err := report.WriteCommitJSON(doc, cfg.Folders.CommitReports); err != nil {
			return err
		}
		if _, err := report.WriteContributorCSV(doc, cfg.Folders.CommitReports); err != nil {
			return err
		}
	}
	return nil
}

// WriteLOCReports writes the line-of-code JSON report for each document.
func WriteLOCReports(docs []*report.Document, cfg *config.Config) error {
	for _, doc := range docs {
		if _, err := report.WriteLOCJSON(doc, cfg.Folders.LineOfCodeReports); err != nil {
			return err
		}
	}
	return nil
}

// WriteMarkdownReports renders the markdown report tree and the activity
// chart for each document.
func WriteMarkdownReports(docs []*report.Document, cfg *config.Config) error {
	for _, doc := range docs {
		dir := filepath.Join(cfg.Folders.MarkdownReports, doc.Repository)
		if err := report.RenderMarkdown(doc, dir); err != nil {
			return err
		}
		if _, err := report.RenderActivityChart(doc, dir); err != nil {
			return err
		}
	}
	return nil
}

// Run executes the full pipeline: clone, analyze, and every report format,
// then prints the terminal summary per project.
func Run(ctx context.Context, cfg *config.Config, opts Options) error {
	color.Cyan("Cloning repositories...")
	if err := Clone(ctx, cfg, opts); err != nil {
		// Projects without a checkout are skipped during analysis.
		color.Red("some repositories failed to clone: %v", err)
	}

	color.Cyan("Analyzing repositories...")
	docs, err := AnalyzeAll(ctx, cfg, opts)
	if err != nil {
		return err
	}

	color.Cyan("Writing reports...")
	if err := WriteCommitReports(docs, cfg); err != nil {
		return err
	}
	if err := WriteLOCReports(docs, cfg); err != nil {
		return err
	}
	if err := WriteMarkdownReports(docs, cfg); err != nil {
		return err
	}

	for _, doc := range docs {
		display.Summary(os.Stdout, doc)
	}
	color.Green("All steps completed successfully.")
	color.Green("Markdown reports saved in %q", cfg.Folders.MarkdownReports)
	return nil
}

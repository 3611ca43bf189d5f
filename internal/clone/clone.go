// Package clone fetches the configured repositories into the local
// checkout folder, skipping any that are already present.
package clone

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fatih/color"
	git "github.com/go-git/go-git/v5"
	"golang.org/x/sync/errgroup"

	"github.com/FadyCoding/EPEPEP/internal/config"
)

// Task names one repository to fetch.
type Task struct {
	Name string
	URL  string
	Dir  string
}

// Tasks builds the clone tasks for a configuration, setting each project's
// RepoDir as a side effect so later stages know where the checkout lives.
func Tasks(cfg *config.Config) []Task {
	tasks := make([]Task, 0, len(cfg.Projects))
	for _, name := range cfg.ProjectNames() {
		p := cfg.Projects[name]
		dir := filepath.Join(cfg.Folders.ClonedProjects, name)
		p.RepoDir = dir
		tasks = append(tasks, Task{Name: name, URL: p.URL, Dir: dir})
	}
	return tasks
}

// One clones a single repository. An existing checkout is left untouched.
func One(ctx context.Context, task Task) error {
	if _, err := os.Stat(task.Dir); err == nil {
		color.Yellow("Skipping %s: %s already exists", task.Name, task.Dir)
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(task.Dir), 0o755); err != nil {
		return fmt.Errorf("preparing clone folder: %w", err)
	}

	_, err := git.PlainCloneContext(ctx, task.Dir, false, &git.CloneOptions{
		URL: task.URL,
	})
	if err != nil {
		return fmt.Errorf("cloning %s: %w", task.URL, err)
	}
	color.Green("Cloned %s into %s", task.URL, task.Dir)
	return nil
}

// All clones every task with a bounded worker pool. Failures are collected
// per task; one bad repository never stops the rest of the batch.
func All(ctx context.Context, tasks []Task, workers int) error {
	if workers < 1 {
		workers = 1
	}

	var (
		g    errgroup.Group
		mu   sync.Mutex
		errs []error
	)
	g.SetLimit(workers)
	for _, task := range tasks {
		task := task
		g.Go(func() error {
			if err := One(ctx, task); err != nil {
				color.Red("clone failed for %s: %v", task.Name, err)
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()
	return errors.Join(errs...)
}

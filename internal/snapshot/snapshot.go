package snapshot

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/FadyCoding/EPEPEP/internal/identity"
	"github.com/FadyCoding/EPEPEP/internal/rules"
	"github.com/FadyCoding/EPEPEP/internal/types"
	"github.com/FadyCoding/EPEPEP/internal/utils"
)

// BlameProvider yields per-line author identities for one tracked file.
// gitcmd.Repository implements it; tests substitute a fake.
type BlameProvider interface {
	BlameFile(ctx context.Context, path string) ([]string, error)
}

// Result is the final-ownership attribution of the current working tree.
type Result struct {
	// TotalLines counts every line attributed to a resolved contributor.
	TotalLines int
	// FinalLOC holds every roster contributor, zeros included.
	FinalLOC map[string]*types.FinalLOC
	// FileOwnership maps contributor -> file -> owned lines and ceiling-
	// rounded share of that file's attributed lines.
	FileOwnership map[string]map[string]*types.FileOwnership
	// IgnoredFiles is the exclusion ledger, keyed by matching extension or
	// path fragment.
	IgnoredFiles map[string]*types.IgnoredFiles
	// UnmappedLines tallies blamed lines whose identity did not resolve.
	UnmappedLines map[string]int
	// Warnings lists files skipped because blame failed, sorted.
	Warnings []string
}

// Options tunes the attribution pass.
type Options struct {
	// Workers bounds concurrent blame invocations. Defaults to 4.
	Workers int
	// Progress, when set, is called once per processed file.
	Progress func()
}

const ignoredExampleCap = 5

// fileCount is one file's locally-owned accumulator, merged into the result
// at the per-file join point. Merging is associative and commutative, so
// worker completion order never changes the output.
type fileCount struct {
	path     string
	byOwner  map[string]int
	unmapped map[string]int
	total    int
}

// Attribute runs line-ownership attribution over the tracked files. Excluded
// files are recorded in the ignored ledger; blame failures skip the file and
// are surfaced as warnings.
func Attribute(ctx context.Context, blame BlameProvider, files []string, resolver *identity.Resolver, opts Options) *Result {
	workers := opts.Workers
	if workers <= 0 {
		workers = 4
	}

	res := &Result{
		FinalLOC:      make(map[string]*types.FinalLOC),
		FileOwnership: make(map[string]map[string]*types.FileOwnership),
		IgnoredFiles:  make(map[string]*types.IgnoredFiles),
		UnmappedLines: make(map[string]int),
	}
	for _, name := range resolver.Roster() {
		res.FinalLOC[name] = &types.FinalLOC{}
		res.FileOwnership[name] = make(map[string]*types.FileOwnership)
	}

	// Classification runs over the sorted file list so the ledger and its
	// capped example lists are reproducible across runs.
	sorted := make([]string, len(files))
	copy(sorted, files)
	sort.Strings(sorted)

	var included []string
	for _, path := range sorted {
		reason, key, excluded := rules.ClassifyFile(path)
		if !excluded {
			included = append(included, path)
			continue
		}
		entry := res.IgnoredFiles[key]
		if entry == nil {
			entry = &types.IgnoredFiles{Reason: string(reason)}
			res.IgnoredFiles[key] = entry
		}
		entry.Count++
		if len(entry.Examples) < ignoredExampleCap {
			entry.Examples = append(entry.Examples, path)
		}
	}

	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		warnings  []string
		fileTotal = make(map[string]int)
	)
	sem := utils.NewSemaphore(workers)

	for _, path := range included {
		if err := sem.Acquire(ctx); err != nil {
			break
		}
		wg.Add(1)
		go func(path string) {
			defer wg.Done()
			defer sem.Release()

			fc, err := blameOneFile(ctx, blame, path, resolver)

			mu.Lock()
			defer mu.Unlock()
			if opts.Progress != nil {
				opts.Progress()
			}
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("blame failed for %s: %v", path, err))
				return
			}
			mergeFile(res, fileTotal, fc)
		}(path)
	}
	wg.Wait()

	finalize(res, fileTotal)

	sort.Strings(warnings)
	res.Warnings = warnings
	return res
}

// blameOneFile builds a file-local accumulator; no shared state is touched.
func blameOneFile(ctx context.Context, blame BlameProvider, path string, resolver *identity.Resolver) (*fileCount, error) {
	authors, err := blame.BlameFile(ctx, path)
	if err != nil {
		return nil, err
	}

	fc := &fileCount{
		path:     path,
		byOwner:  make(map[string]int),
		unmapped: make(map[string]int),
	}
	// The result's own UnmappedLines map tallies blame misses per line, so
	// the resolver's commit-level ledger stays untouched here.
	for _, raw := range authors {
		contributor, ok := resolver.Lookup(raw)
		if !ok {
			fc.unmapped[raw]++
			continue
		}
		fc.byOwner[contributor]++
		fc.total++
	}
	return fc, nil
}

func mergeFile(res *Result, fileTotal map[string]int, fc *fileCount) {
	fileTotal[fc.path] = fc.total
	for contributor, lines := range fc.byOwner {
		res.FinalLOC[contributor].Lines += lines
		res.TotalLines += lines
		res.FileOwnership[contributor][fc.path] = &types.FileOwnership{Lines: lines}
	}
	for raw, lines := range fc.unmapped {
		res.UnmappedLines[raw] += lines
	}
}

func finalize(res *Result, fileTotal map[string]int) {
	for _, entry := range res.FinalLOC {
		if res.TotalLines > 0 {
			entry.Percentage = float64(entry.Lines) / float64(res.TotalLines) * 100
		}
	}

	for _, files := range res.FileOwnership {
		for path, own := range files {
			total := fileTotal[path]
			if total == 0 {
				continue
			}
			// Rounded up: owning even one line of a huge file reports 1%.
			own.Percentage = int(math.Ceil(float64(own.Lines) / float64(total) * 100))
		}
	}
}

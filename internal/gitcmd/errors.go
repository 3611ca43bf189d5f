package gitcmd

import "fmt"

// RepositoryError means a repository could not be analyzed at all: the path
// is missing, is not a git repository, or its history is unreadable. It is
// fatal for that repository only; a multi-repository batch keeps going.
type RepositoryError struct {
	Path string
	Err  error
}

func (e *RepositoryError) Error() string {
	return fmt.Sprintf("repository %s: %v", e.Path, e.Err)
}

func (e *RepositoryError) Unwrap() error { return e.Err }

// ProcessError means a single git invocation failed or timed out. The unit
// of work it covered (one file's blame, one branch's rev-list) is skipped
// and the analysis continues.
type ProcessError struct {
	Op   string
	Args []string
	Err  error
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("git %s: %v", e.Op, e.Err)
}

func (e *ProcessError) Unwrap() error { return e.Err }

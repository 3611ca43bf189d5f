package rules

import (
	"strings"

	"github.com/FadyCoding/EPEPEP/internal/types"
)

// Reason classifies why a file was excluded from snapshot attribution.
type Reason string

const (
	ReasonExtension Reason = "Extension"
	ReasonPath      Reason = "Path"
)

// ExcludedExtensions lists file extensions (without the leading dot) that are
// never attributed: binaries, media, archives, fonts, lockfiles and other
// generated artifacts.
var ExcludedExtensions = map[string]bool{
	"png": true, "jpg": true, "jpeg": true, "gif": true, "svg": true,
	"ico": true, "webp": true, "bmp": true,
	"pdf": true, "zip": true, "tar": true, "gz": true, "rar": true,
	"exe": true, "bin": true, "dll": true, "so": true, "dylib": true,
	"woff": true, "woff2": true, "ttf": true, "eot": true, "otf": true,
	"mp3": true, "mp4": true, "webm": true, "ogg": true, "wav": true,
	"lock": true, "map": true, "min": true, "min.js": true, "min.css": true,
	"pyc": true, "class": true, "jar": true,
	"log": true, "tmp": true, "cache": true,
}

// ExcludedPathFragments lists path substrings that mark vendored, generated
// or environment directories.
var ExcludedPathFragments = []string{
	"node_modules",
	"vendor/",
	"dist/",
	"build/",
	"coverage/",
	".nyc_output",
	"__pycache__",
	".venv",
	"venv/",
	".git/",
	"bower_components",
}

// MergeKeywords are matched as case-sensitive substrings of the commit
// message. A hit excludes the commit from per-contributor aggregation.
var MergeKeywords = []string{"merge", "Merge", "Merged"}

// ClassifyFile reports whether a tracked file is excluded from attribution.
// The returned key is the matching extension or path fragment, which also
// keys the ignored-file ledger.
func ClassifyFile(path string) (reason Reason, key string, excluded bool) {
	for _, fragment := range ExcludedPathFragments {
		if strings.Contains(path, fragment) {
			return ReasonPath, fragment, true
		}
	}

	base := path
	if idx := strings.LastIndex(base, "/"); idx >= 0 {
		base = base[idx+1:]
	}
	// Walk dot suffixes longest-first, so "min.js" beats "js".
	parts := strings.Split(base, ".")
	for i := 1; i < len(parts); i++ {
		suffix := strings.Join(parts[i:], ".")
		if ExcludedExtensions[suffix] {
			return ReasonExtension, suffix, true
		}
	}

	return "", "", false
}

// IsMergeMessage reports whether a commit message matches a merge keyword.
func IsMergeMessage(message string) bool {
	for _, keyword := range MergeKeywords {
		if strings.Contains(message, keyword) {
			return true
		}
	}
	return false
}

// IsMergeCommit reports whether a commit is excluded from per-contributor
// totals: more than one parent, or a merge-keyword message.
func IsMergeCommit(c types.Commit) bool {
	return c.Parents > 1 || IsMergeMessage(c.Message)
}

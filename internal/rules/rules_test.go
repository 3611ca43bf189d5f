package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/FadyCoding/EPEPEP/internal/types"
)

func TestClassifyFileByExtension(t *testing.T) {
	reason, key, excluded := ClassifyFile("app.min.js.map")
	assert.True(t, excluded)
	assert.Equal(t, ReasonExtension, reason)
	assert.Equal(t, "map", key)

	reason, key, excluded = ClassifyFile("assets/logo.png")
	assert.True(t, excluded)
	assert.Equal(t, ReasonExtension, reason)
	assert.Equal(t, "png", key)
}

func TestClassifyFileCompoundSuffixes(t *testing.T) {
	// Minified bundles book under the compound suffix, not the bare "js".
	reason, key, excluded := ClassifyFile("dist2/app.min.js")
	assert.True(t, excluded)
	assert.Equal(t, ReasonExtension, reason)
	assert.Equal(t, "min.js", key)

	reason, key, excluded = ClassifyFile("style.min.css")
	assert.True(t, excluded)
	assert.Equal(t, ReasonExtension, reason)
	assert.Equal(t, "min.css", key)

	// A plain .js file still attributes.
	_, _, excluded = ClassifyFile("src/app.js")
	assert.False(t, excluded)
}

func TestClassifyFileByPath(t *testing.T) {
	reason, key, excluded := ClassifyFile("frontend/node_modules/react/index.js")
	assert.True(t, excluded)
	assert.Equal(t, ReasonPath, reason)
	assert.Equal(t, "node_modules", key)
}

func TestClassifyFilePathWinsOverExtension(t *testing.T) {
	// A png under node_modules books under the path fragment, not "png".
	reason, key, excluded := ClassifyFile("node_modules/pkg/icon.png")
	assert.True(t, excluded)
	assert.Equal(t, ReasonPath, reason)
	assert.Equal(t, "node_modules", key)
}

func TestClassifyFileKeepsSourceFiles(t *testing.T) {
	for _, path := range []string{"main.go", "src/app.py", "README.md", "Makefile"} {
		_, _, excluded := ClassifyFile(path)
		assert.False(t, excluded, "expected %s to be kept", path)
	}
}

func TestIsMergeMessage(t *testing.T) {
	assert.True(t, IsMergeMessage("Merge branch 'main' into dev"))
	assert.True(t, IsMergeMessage("auto merge of pull request"))
	assert.True(t, IsMergeMessage("Merged in feature/x"))
	// Substring match, not whole-word: "emergency" contains "merge".
	assert.True(t, IsMergeMessage("add emergency fallback"))
	// Case-sensitive.
	assert.False(t, IsMergeMessage("MERGE EVERYTHING"))
}

func TestIsMergeCommit(t *testing.T) {
	assert.True(t, IsMergeCommit(types.Commit{Parents: 2, Message: "regular message"}))
	assert.True(t, IsMergeCommit(types.Commit{Parents: 1, Message: "Merge branch"}))
	assert.False(t, IsMergeCommit(types.Commit{Parents: 1, Message: "fix bug"}))
	assert.False(t, IsMergeCommit(types.Commit{Parents: 0, Message: "initial commit"}))
}

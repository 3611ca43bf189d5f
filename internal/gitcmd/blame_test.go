package gitcmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBlameAuthors(t *testing.T) {
	output := "49790a266b6ee2b9c97a73f3a6dbd0d1e4d25e27 1 1 2\n" +
		"author Tom Mansion\n" +
		"author-mail <tom@example.com>\n" +
		"author-time 1700000000\n" +
		"summary initial commit\n" +
		"filename app.py\n" +
		"\tprint(\"hello\")\n" +
		"49790a266b6ee2b9c97a73f3a6dbd0d1e4d25e27 2 2\n" +
		"author Tom Mansion\n" +
		"author-mail <tom@example.com>\n" +
		"\tprint(\"world\")\n" +
		"8871a1b9549c6a72136ba46b16e1ea1cdf5f1a53 3 3 1\n" +
		"author FadyCoding\n" +
		"author-mail <fady@example.com>\n" +
		"\treturn\n"

	authors := parseBlameAuthors(output)
	assert.Equal(t, []string{"Tom Mansion", "Tom Mansion", "FadyCoding"}, authors)
}

func TestParseBlameAuthorsEmpty(t *testing.T) {
	assert.Empty(t, parseBlameAuthors(""))
}

func TestParseBlameAuthorsIgnoresContentLines(t *testing.T) {
	// Content lines start with a tab; an "author " inside file content must
	// not be miscounted.
	output := "49790a266b6ee2b9c97a73f3a6dbd0d1e4d25e27 1 1 1\n" +
		"author Tom\n" +
		"\tauthor somebody wrote this line\n"

	authors := parseBlameAuthors(output)
	assert.Equal(t, []string{"Tom"}, authors)
}

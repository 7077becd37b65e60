package page

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNormalizesEquivalentForms(t *testing.T) {
	inputs := []string{
		"Albert Einstein",
		"Albert_Einstein",
		"  Albert  Einstein ",
		"https://en.wikipedia.org/wiki/Albert_Einstein",
		"https://en.wikipedia.org/wiki/Albert_Einstein#Career",
		"https://en.wikipedia.org/wiki/Albert_Einstein?action=history",
	}

	for _, input := range inputs {
		id, err := Parse(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, "Albert_Einstein", id.Title(), "input %q", input)
	}
}

func TestParseRejectsEmpty(t *testing.T) {
	for _, input := range []string{"", "   ", "___"} {
		_, err := Parse(input)
		assert.Error(t, err, "input %q", input)
	}
}

func TestDisplayAndURL(t *testing.T) {
	id, err := Parse("Go (programming language)")
	require.NoError(t, err)

	assert.Equal(t, "Go (programming language)", id.Display())
	assert.Equal(t, "https://en.wikipedia.org/wiki/Go_(programming_language)", id.URL())
}

func TestKeyIsFilenameSafe(t *testing.T) {
	id, err := Parse("https://en.wikipedia.org/wiki/Albert_Einstein")
	require.NoError(t, err)

	key := id.Key()
	assert.Equal(t, "https-en-wikipedia-org-wiki-Albert_Einstein", key)
	assert.NotContains(t, key, "/")
	assert.NotContains(t, key, ":")
}

func TestSameKeyForTitleAndURL(t *testing.T) {
	a, err := Parse("Albert Einstein")
	require.NoError(t, err)
	b, err := Parse("https://en.wikipedia.org/wiki/Albert_Einstein")
	require.NoError(t, err)

	assert.Equal(t, a.Key(), b.Key())
}

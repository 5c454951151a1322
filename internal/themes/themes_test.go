package themes

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList_Order(t *testing.T) {
	names := Names()
	require.Len(t, names, 10)
	assert.Equal(t, "Netflix", names[0])
	assert.Equal(t, "Forest Night", names[9])
	assert.Len(t, List(), 10)
}

func TestList_ReturnsCopy(t *testing.T) {
	l := List()
	l[0].Name = "changed"
	assert.Equal(t, "Netflix", List()[0].Name)
}

func TestGet(t *testing.T) {
	th, ok := Get(Default)
	require.True(t, ok)
	assert.Equal(t, "#6366F1", th.Primary)

	_, ok = Get("Nope")
	assert.False(t, ok)
}

func TestValid(t *testing.T) {
	assert.True(t, Valid(""))
	assert.True(t, Valid("Spotify"))
	assert.False(t, Valid("spotify"))
}

func TestCSSVariables(t *testing.T) {
	css := CSSVariables("Netflix")
	assert.Contains(t, css, "--primary: #E50914;")
	assert.Contains(t, css, "--muted-foreground: #999999;")
	assert.Contains(t, css, "--card-foreground: #FFFFFF;")
	assert.Equal(t, 10, strings.Count(css, ";"))

	assert.Empty(t, CSSVariables("Unknown"))
}

package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_ListsThemesAndDevice(t *testing.T) {
	p := Config("mobile")
	assert.True(t, strings.HasPrefix(p, "You are a lead UI/UX developer creating mobile designs."))
	assert.Contains(t, p, "[Netflix, Spotify, Polar Mint, Amazon, Shopify, Sunset Glow, Midnight Blue, Cyber Punk, Ocean Breeze, Forest Night]")
	assert.Contains(t, p, `"layoutDescription": "string"`)
}

func TestScreen(t *testing.T) {
	p := Screen("website")
	assert.Contains(t, p, "Create a professional website design")
	assert.Contains(t, p, "var(--card-foreground)")
	assert.Contains(t, p, "Do not include <html>")
}

func TestNewScreen(t *testing.T) {
	p := NewScreen("mobile", "dark and moody")
	assert.Contains(t, p, "Project Description: dark and moody")
	assert.Contains(t, p, "professional mobile design")
}

func TestScreenDetails(t *testing.T) {
	t.Run("with visual style", func(t *testing.T) {
		p := ScreenDetails("Home", "landing", "hero and cards", "glassmorphism")
		assert.Contains(t, p, "- Name: Home\n")
		assert.Contains(t, p, "- Purpose: landing\n")
		assert.Contains(t, p, "- Description: hero and cards\n")
		assert.Contains(t, p, "Project Visual Style: glassmorphism")
		assert.True(t, strings.HasSuffix(p, "Generate the HTML body content for this screen."))
	})

	t.Run("without visual style", func(t *testing.T) {
		p := ScreenDetails("Home", "landing", "hero", "")
		assert.NotContains(t, p, "Project Visual Style")
	})
}

func TestEditRequest(t *testing.T) {
	p := EditRequest("<div>old</div>", "make it blue")
	assert.Contains(t, p, "Old code:\n<div>old</div>\n")
	assert.Contains(t, p, "User changes requested:\nmake it blue\n")
	assert.Contains(t, Edit(), "same CSS variable usage")
}

func TestSuggestions(t *testing.T) {
	s := Suggestions()
	assert.Len(t, s, 8)
	assert.Equal(t, "Budget Tracker", s[0].Name)
	s[0].Name = "x"
	assert.Equal(t, "Budget Tracker", Suggestions()[0].Name)
}

// Package themes holds the static color palettes screens are rendered with.
package themes

import (
	"fmt"
	"strings"
)

// Default is used when a project has no theme yet.
const Default = "Midnight Blue"

type Theme struct {
	Name            string `json:"name"`
	Primary         string `json:"primary"`
	Secondary       string `json:"secondary"`
	Accent          string `json:"accent"`
	Background      string `json:"background"`
	Foreground      string `json:"foreground"`
	Muted           string `json:"muted"`
	MutedForeground string `json:"mutedForeground"`
	Border          string `json:"border"`
	Card            string `json:"card"`
	CardForeground  string `json:"cardForeground"`
}

// palette keeps declaration order; List and the config prompt depend on it.
var palette = []Theme{
	{Name: "Netflix", Primary: "#E50914", Secondary: "#141414", Accent: "#F5F5F1", Background: "#000000", Foreground: "#FFFFFF", Muted: "#333333", MutedForeground: "#999999", Border: "#333333", Card: "#1A1A1A", CardForeground: "#FFFFFF"},
	{Name: "Spotify", Primary: "#1DB954", Secondary: "#191414", Accent: "#B3B3B3", Background: "#121212", Foreground: "#FFFFFF", Muted: "#282828", MutedForeground: "#B3B3B3", Border: "#282828", Card: "#181818", CardForeground: "#FFFFFF"},
	{Name: "Polar Mint", Primary: "#00D9A5", Secondary: "#0A1628", Accent: "#38BDF8", Background: "#0F172A", Foreground: "#F8FAFC", Muted: "#1E293B", MutedForeground: "#94A3B8", Border: "#1E293B", Card: "#1E293B", CardForeground: "#F8FAFC"},
	{Name: "Amazon", Primary: "#FF9900", Secondary: "#232F3E", Accent: "#37475A", Background: "#FFFFFF", Foreground: "#0F1111", Muted: "#F7F8F8", MutedForeground: "#565959", Border: "#DDD", Card: "#FFFFFF", CardForeground: "#0F1111"},
	{Name: "Shopify", Primary: "#96BF48", Secondary: "#5C6AC4", Accent: "#006FBB", Background: "#F6F6F7", Foreground: "#212B36", Muted: "#EBEEF1", MutedForeground: "#637381", Border: "#DFE3E8", Card: "#FFFFFF", CardForeground: "#212B36"},
	{Name: "Sunset Glow", Primary: "#FF6B6B", Secondary: "#4ECDC4", Accent: "#FFE66D", Background: "#1A1A2E", Foreground: "#EAEAEA", Muted: "#16213E", MutedForeground: "#8892B0", Border: "#0F3460", Card: "#16213E", CardForeground: "#EAEAEA"},
	{Name: "Midnight Blue", Primary: "#6366F1", Secondary: "#8B5CF6", Accent: "#EC4899", Background: "#0F0F23", Foreground: "#E2E8F0", Muted: "#1E1E3F", MutedForeground: "#94A3B8", Border: "#2D2D5A", Card: "#1A1A3E", CardForeground: "#E2E8F0"},
	{Name: "Cyber Punk", Primary: "#00FFFF", Secondary: "#FF00FF", Accent: "#FFFF00", Background: "#0D0D0D", Foreground: "#FFFFFF", Muted: "#1A1A1A", MutedForeground: "#888888", Border: "#333333", Card: "#1A1A1A", CardForeground: "#FFFFFF"},
	{Name: "Ocean Breeze", Primary: "#0EA5E9", Secondary: "#14B8A6", Accent: "#F97316", Background: "#F0F9FF", Foreground: "#0C4A6E", Muted: "#E0F2FE", MutedForeground: "#64748B", Border: "#BAE6FD", Card: "#FFFFFF", CardForeground: "#0C4A6E"},
	{Name: "Forest Night", Primary: "#22C55E", Secondary: "#10B981", Accent: "#84CC16", Background: "#0A0F0D", Foreground: "#ECFDF5", Muted: "#14281D", MutedForeground: "#86EFAC", Border: "#1E3A2F", Card: "#14281D", CardForeground: "#ECFDF5"},
}

var byName = func() map[string]Theme {
	m := make(map[string]Theme, len(palette))
	for _, t := range palette {
		m[t.Name] = t
	}
	return m
}()

// List returns every theme in declaration order.
func List() []Theme {
	out := make([]Theme, len(palette))
	copy(out, palette)
	return out
}

// Names returns the theme names in declaration order.
func Names() []string {
	out := make([]string, 0, len(palette))
	for _, t := range palette {
		out = append(out, t.Name)
	}
	return out
}

func Get(name string) (Theme, bool) {
	t, ok := byName[name]
	return t, ok
}

// Valid reports whether name may be stored on a project. Empty means "not chosen yet".
func Valid(name string) bool {
	if name == "" {
		return true
	}
	_, ok := byName[name]
	return ok
}

// CSSVariables renders the palette as custom properties for a :root block.
// Unknown names render as an empty string.
func CSSVariables(name string) string {
	t, ok := byName[name]
	if !ok {
		return ""
	}

	vars := []struct{ k, v string }{
		{"primary", t.Primary},
		{"secondary", t.Secondary},
		{"accent", t.Accent},
		{"background", t.Background},
		{"foreground", t.Foreground},
		{"muted", t.Muted},
		{"muted-foreground", t.MutedForeground},
		{"border", t.Border},
		{"card", t.Card},
		{"card-foreground", t.CardForeground},
	}

	var b strings.Builder
	for _, kv := range vars {
		fmt.Fprintf(&b, "--%s: %s;\n", kv.k, kv.v)
	}
	return b.String()
}

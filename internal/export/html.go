// Package export renders a screen as a standalone HTML document.
package export

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/screenforge/screenforge-backend/internal/themes"
)

// Placeholder is shown for screens whose code has not been generated yet.
const Placeholder = `<div class="flex items-center justify-center h-screen bg-slate-900 text-slate-400">Generating...</div>`

const documentTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>%s</title>
<script src="https://cdn.tailwindcss.com"></script>
<link rel="preconnect" href="https://fonts.googleapis.com">
<link rel="preconnect" href="https://fonts.gstatic.com" crossorigin>
<link href="https://fonts.googleapis.com/css2?family=DM+Sans:wght@400;500;700&display=swap" rel="stylesheet">
<style>
:root {
%s}
body {
  font-family: 'DM Sans', sans-serif;
  margin: 0;
  padding: 0;
  background-color: var(--background);
  color: var(--foreground);
}
</style>
</head>
<body>
%s
</body>
</html>
`

// Document wraps code in a full page themed with the named palette.
// Unknown theme names fall back to the default palette.
func Document(title, code, theme string) string {
	if !themes.Valid(theme) || theme == "" {
		theme = themes.Default
	}
	if strings.TrimSpace(code) == "" {
		code = Placeholder
	}
	vars := themes.CSSVariables(theme)
	var indented strings.Builder
	for _, line := range strings.Split(strings.TrimRight(vars, "\n"), "\n") {
		indented.WriteString("  " + line + "\n")
	}
	return fmt.Sprintf(documentTemplate, html.EscapeString(title), indented.String(), code)
}

var unsafeFilename = regexp.MustCompile(`[^A-Za-z0-9 _.-]+`)

// Filename returns the download name for a screen, "<name>.html".
func Filename(screenName string) string {
	name := strings.TrimSpace(unsafeFilename.ReplaceAllString(screenName, ""))
	if name == "" {
		name = "screen"
	}
	return name + ".html"
}

// Package prompts builds the system and user messages sent to the LLM.
package prompts

import (
	"fmt"
	"strings"

	"github.com/screenforge/screenforge-backend/internal/themes"
)

const cssVariableList = "var(--primary), var(--secondary), var(--accent), var(--background), var(--foreground), var(--muted), var(--muted-foreground), var(--border), var(--card), var(--card-foreground)"

const bodyOnly = "Return ONLY the HTML body content. Do not include <html>, <head>, <body>, or <!DOCTYPE> tags."

// Config asks for the project name, theme, visual description and screen list as JSON.
func Config(deviceType string) string {
	return fmt.Sprintf(`You are a lead UI/UX developer creating %s designs.
Generate a JSON configuration for screens including:
- Project name (creative and relevant)
- Theme selection from: [%s]
- Project visual description (a comprehensive description of the overall visual style, color usage, typography, and design language)
- Screens array with each screen having:
  - screenId (unique identifier like "screen-1", "screen-2", etc.)
  - name (screen name like "Home", "Profile", "Settings", etc.)
  - purpose (brief description of what this screen does)
  - layoutDescription (detailed description of the layout, components, and visual elements)

Return ONLY valid JSON in this exact format, no markdown or explanations:
{
  "projectName": "string",
  "theme": "string",
  "projectVisualDescription": "string",
  "screens": [
    {
      "screenId": "string",
      "name": "string",
      "purpose": "string",
      "layoutDescription": "string"
    }
  ]
}`, deviceType, strings.Join(themes.Names(), ", "))
}

// Screen is the system prompt for rendering one screen.
func Screen(deviceType string) string {
	return fmt.Sprintf(`You are an expert UI/UX developer.
Create a professional %s design using:
- Pure HTML with Tailwind CSS utility classes
- Modern, responsive design that looks professional and polished
- CRITICAL: Use CSS variables for colors in inline styles and Tailwind: %s
- Example: style="color: var(--foreground); background-color: var(--card);"
- NEVER use hardcoded colors or Tailwind arbitrary color values - ALWAYS use CSS variables
- Include realistic content, icons using Lucide icons SVGs, and images
- Use https://api.dicebear.com/7.x/avataaars/svg?seed={random} for avatar images (use different seeds for variety)
- Use https://images.unsplash.com for other images with appropriate keywords
- Beautiful gradients, shadows, and subtle animations
- Follow Material Design or modern web design standards
- For mobile designs, use a max-width of 400px
- For website designs, make it responsive and full-width
- Body background should use var(--background) color
- All text should use var(--foreground) color by default

%s
Use Tailwind CSS classes extensively for styling AND inline styles for theming with CSS variables.
Make the design beautiful, modern, and professional.`, deviceType, cssVariableList, bodyOnly)
}

// Edit is the system prompt for modifying existing screen code.
func Edit() string {
	return `You are an expert UI/UX developer.
Make changes to the provided HTML code while keeping the overall design and style consistent.
Apply the user's requested changes while maintaining:
- The same Tailwind CSS styling approach
- The same CSS variable usage for theming
- Visual consistency with the original design
- Professional quality and attention to detail

` + bodyOnly
}

// NewScreen is the system prompt for a screen added after the initial generation.
func NewScreen(deviceType, projectDescription string) string {
	return fmt.Sprintf(`You are an expert UI/UX developer.
Create a new screen that matches the existing project's design language and theme.

Project Description: %s

Create a professional %s design using:
- Pure HTML with Tailwind CSS utility classes
- Design language and style consistent with the project description
- Use CSS variables for theming: %s
- Include realistic content and appropriate icons/images
- Beautiful gradients, shadows, and subtle animations

%s`, projectDescription, deviceType, cssVariableList, bodyOnly)
}

// ScreenDetails is the user message describing the screen to render.
func ScreenDetails(name, purpose, description, visualDescription string) string {
	var b strings.Builder
	b.WriteString("\nScreen details:\n")
	fmt.Fprintf(&b, "- Name: %s\n", name)
	fmt.Fprintf(&b, "- Purpose: %s\n", purpose)
	fmt.Fprintf(&b, "- Description: %s\n", description)
	if visualDescription != "" {
		fmt.Fprintf(&b, "\nProject Visual Style: %s\n", visualDescription)
	}
	b.WriteString("\nGenerate the HTML body content for this screen.")
	return b.String()
}

// EditRequest is the user message carrying the current code and requested change.
func EditRequest(currentCode, userInput string) string {
	return fmt.Sprintf(`
Old code:
%s

User changes requested:
%s

Apply the requested changes while maintaining the design consistency.`, currentCode, userInput)
}

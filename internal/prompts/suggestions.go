package prompts

type Suggestion struct {
	Icon        string `json:"icon"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

var suggestions = []Suggestion{
	{Icon: "💰", Name: "Budget Tracker", Description: "Create a budget tracking app with expense categories, spending analysis, and financial goals"},
	{Icon: "🏋️", Name: "Fitness App", Description: "Design a fitness tracking app with workout plans, progress tracking, and meal planning"},
	{Icon: "📝", Name: "Task Manager", Description: "Build a task management app with projects, due dates, priorities, and collaboration"},
	{Icon: "🛒", Name: "E-commerce Store", Description: "Design a modern online store with product catalog, cart, checkout, and order tracking"},
	{Icon: "🍔", Name: "Food Delivery", Description: "Create a food delivery app with restaurant listings, menus, cart, and order tracking"},
	{Icon: "📰", Name: "News Portal", Description: "Design a news website with categories, featured articles, search, and personalization"},
	{Icon: "🎵", Name: "Music Player", Description: "Build a music streaming app with playlists, library, search, and playback controls"},
	{Icon: "💬", Name: "Chat Application", Description: "Create a messaging app with conversations, groups, media sharing, and real-time chat"},
}

// Suggestions returns the starter prompts shown on an empty workspace.
func Suggestions() []Suggestion {
	out := make([]Suggestion, len(suggestions))
	copy(out, suggestions)
	return out
}

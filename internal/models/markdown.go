package models

// Markdown is one typed block of rich text. Post and comment bodies are
// ordered sequences of these, stored as a JSON column.
type Markdown struct {
	Type    string `json:"type" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type RichText []Markdown

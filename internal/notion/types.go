package notion

// Wire types for page creation. Only the fields the digest sets are
// modeled; omitempty keeps unused branches out of the payload.

// PageRequest is the body of POST /v1/pages.
type PageRequest struct {
	Parent     Parent                   `json:"parent"`
	Properties map[string]PropertyValue `json:"properties"`
	Children   []Block                  `json:"children,omitempty"`
}

// Parent locates the database the page is created in.
type Parent struct {
	DatabaseID string `json:"database_id"`
}

// PropertyValue is one page property. Exactly one branch is set.
type PropertyValue struct {
	Title    []RichText `json:"title,omitempty"`
	RichText []RichText `json:"rich_text,omitempty"`
	Number   *float64   `json:"number,omitempty"`
	Date     *DateValue `json:"date,omitempty"`
}

// DateValue is a date property payload.
type DateValue struct {
	Start string `json:"start"`
}

// RichText is one rich-text fragment.
type RichText struct {
	Type string `json:"type"`
	Text Text   `json:"text"`
}

// Text is the plain-text content of a rich-text fragment.
type Text struct {
	Content string `json:"content"`
}

// Block is one content block of a page.
type Block struct {
	Object    string     `json:"object"`
	Type      string     `json:"type"`
	Paragraph *Paragraph `json:"paragraph,omitempty"`
	Code      *Code      `json:"code,omitempty"`
}

// Paragraph is a plain text block.
type Paragraph struct {
	RichText []RichText `json:"rich_text"`
}

// Code is a monospace block with a language tag.
type Code struct {
	Language string     `json:"language"`
	RichText []RichText `json:"rich_text"`
}

func text(content string) RichText {
	return RichText{Type: "text", Text: Text{Content: content}}
}

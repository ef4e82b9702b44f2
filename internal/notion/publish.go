package notion

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ChunkSize is the per-block text limit. Notion caps rich-text content at
// 2000 characters; 1800 leaves margin.
const ChunkSize = 1800

// Acceptable names for the optional properties, matched case-insensitively
// against the database schema. Unmatched properties are omitted, never
// synthesized.
var (
	dateNames  = []string{"date", "day"}
	repoNames  = []string{"repo", "repository"}
	countNames = []string{"commit count", "commits", "count"}
)

// Page is the logical document one run publishes.
type Page struct {
	Title       string
	Date        string // YYYY-MM-DD; the digested day
	Repo        string // repository display name, may be empty
	CommitCount int
	Intro       string // leading paragraph text
	Body        string
	Language    string // code-block language: "markdown" or "diff"
}

// Publisher maps a Page onto a concrete database's schema and creates it.
type Publisher struct {
	client     *Client
	databaseID string
}

// NewPublisher creates a publisher targeting one database.
func NewPublisher(client *Client, databaseID string) *Publisher {
	return &Publisher{client: client, databaseID: databaseID}
}

// Publish introspects the database schema and creates the page. Creation
// is not idempotent; re-running the same day makes a second page.
func (p *Publisher) Publish(ctx context.Context, page Page) error {
	db, err := p.client.Database(ctx, p.databaseID)
	if err != nil {
		return fmt.Errorf("fetch database schema: %w", err)
	}

	props, err := buildProperties(db, page)
	if err != nil {
		return err
	}

	req := &PageRequest{
		Parent:     Parent{DatabaseID: p.databaseID},
		Properties: props,
		Children:   buildBlocks(page),
	}
	if err := p.client.CreatePage(ctx, req); err != nil {
		return fmt.Errorf("create page: %w", err)
	}
	return nil
}

// buildProperties maps logical fields onto the schema's actual property
// names. The title property is required; everything else is optional.
func buildProperties(db *Database, page Page) (map[string]PropertyValue, error) {
	titleName := ""
	for name, prop := range db.Properties {
		if prop.Type == "title" {
			titleName = name
			break
		}
	}
	if titleName == "" {
		return nil, errors.New("database has no title property")
	}

	props := map[string]PropertyValue{
		titleName: {Title: []RichText{text(page.Title)}},
	}

	if name, ok := matchProperty(db, dateNames, "date"); ok && page.Date != "" {
		props[name] = PropertyValue{Date: &DateValue{Start: page.Date}}
	}
	if name, ok := matchProperty(db, repoNames, "rich_text"); ok && page.Repo != "" {
		props[name] = PropertyValue{RichText: []RichText{text(page.Repo)}}
	}
	if name, ok := matchProperty(db, countNames, "number"); ok {
		count := float64(page.CommitCount)
		props[name] = PropertyValue{Number: &count}
	}

	return props, nil
}

// matchProperty finds a schema property whose name is in candidates
// (case-insensitive) and whose type matches.
func matchProperty(db *Database, candidates []string, wantType string) (string, bool) {
	for _, candidate := range candidates {
		for name, prop := range db.Properties {
			if strings.EqualFold(name, candidate) && prop.Type == wantType {
				return name, true
			}
		}
	}
	return "", false
}

func buildBlocks(page Page) []Block {
	blocks := make([]Block, 0, 2)
	if page.Intro != "" {
		blocks = append(blocks, Block{
			Object:    "block",
			Type:      "paragraph",
			Paragraph: &Paragraph{RichText: []RichText{text(page.Intro)}},
		})
	}
	for _, chunk := range Chunk(page.Body, ChunkSize) {
		blocks = append(blocks, Block{
			Object: "block",
			Type:   "code",
			Code:   &Code{Language: page.Language, RichText: []RichText{text(chunk)}},
		})
	}
	return blocks
}

// Chunk splits s into consecutive pieces of at most size runes, in order.
// Concatenating the pieces reconstructs s exactly.
func Chunk(s string, size int) []string {
	if s == "" || size <= 0 {
		if s == "" {
			return nil
		}
		return []string{s}
	}

	runes := []rune(s)
	chunks := make([]string, 0, (len(runes)+size-1)/size)
	for start := 0; start < len(runes); start += size {
		end := min(start+size, len(runes))
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}

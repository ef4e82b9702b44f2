package notion

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func schemaWith(props map[string]string) *Database {
	db := &Database{Properties: map[string]Property{}}
	for name, typ := range props {
		db.Properties[name] = Property{Type: typ}
	}
	return db
}

func TestBuildProperties_TitleRequired(t *testing.T) {
	db := schemaWith(map[string]string{"Date": "date"})

	if _, err := buildProperties(db, Page{Title: "x"}); err == nil {
		t.Fatal("expected an error for a schema without a title property")
	}
}

func TestBuildProperties_AllOptionalMatched(t *testing.T) {
	db := schemaWith(map[string]string{
		"Name":         "title",
		"DATE":         "date",
		"Repository":   "rich_text",
		"Commit Count": "number",
	})
	page := Page{Title: "2024-01-01 changes", Date: "2024-01-01", Repo: "acme/widgets", CommitCount: 3}

	props, err := buildProperties(db, page)
	if err != nil {
		t.Fatalf("buildProperties: %v", err)
	}

	if len(props["Name"].Title) != 1 || props["Name"].Title[0].Text.Content != page.Title {
		t.Errorf("title property = %+v", props["Name"])
	}
	// Name matching is case-insensitive; the schema's own spelling is used.
	if props["DATE"].Date == nil || props["DATE"].Date.Start != "2024-01-01" {
		t.Errorf("date property = %+v", props["DATE"])
	}
	if got := props["Repository"].RichText; len(got) != 1 || got[0].Text.Content != "acme/widgets" {
		t.Errorf("repo property = %+v", props["Repository"])
	}
	if props["Commit Count"].Number == nil || *props["Commit Count"].Number != 3 {
		t.Errorf("count property = %+v", props["Commit Count"])
	}
}

func TestBuildProperties_UnmatchedOptionalOmitted(t *testing.T) {
	db := schemaWith(map[string]string{
		"Name": "title",
		// Right name, wrong type: must not match.
		"Date": "rich_text",
	})
	page := Page{Title: "t", Date: "2024-01-01", Repo: "acme/widgets", CommitCount: 5}

	props, err := buildProperties(db, page)
	if err != nil {
		t.Fatalf("buildProperties: %v", err)
	}

	if len(props) != 1 {
		t.Errorf("props = %v, expected the title only", props)
	}
}

func TestBuildBlocks(t *testing.T) {
	page := Page{
		Intro:    "Commit digest for 2024-01-01.",
		Body:     strings.Repeat("x", ChunkSize+10),
		Language: "diff",
	}

	blocks := buildBlocks(page)

	if len(blocks) != 3 {
		t.Fatalf("blocks = %d, expected paragraph + 2 code chunks", len(blocks))
	}
	if blocks[0].Type != "paragraph" || blocks[0].Paragraph == nil {
		t.Errorf("blocks[0] = %+v, expected a paragraph", blocks[0])
	}
	for i, b := range blocks[1:] {
		if b.Type != "code" || b.Code == nil || b.Code.Language != "diff" {
			t.Errorf("blocks[%d] = %+v, expected a diff code block", i+1, b)
		}
	}
	if got := len([]rune(blocks[1].Code.RichText[0].Text.Content)); got != ChunkSize {
		t.Errorf("first chunk has %d runes, expected %d", got, ChunkSize)
	}
}

func TestChunk(t *testing.T) {
	tests := []struct {
		name  string
		input string
		size  int
		want  []string
	}{
		{name: "Empty", input: "", size: 4, want: nil},
		{name: "Short", input: "abc", size: 4, want: []string{"abc"}},
		{name: "Exact", input: "abcd", size: 4, want: []string{"abcd"}},
		{name: "Split", input: "abcdefghij", size: 4, want: []string{"abcd", "efgh", "ij"}},
		{name: "Multibyte", input: "ありがとう", size: 2, want: []string{"あり", "がと", "う"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Chunk(tt.input, tt.size)
			if len(got) != len(tt.want) {
				t.Fatalf("Chunk(%q, %d) = %v, expected %v", tt.input, tt.size, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("chunk[%d] = %q, expected %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestPublisher_Publish(t *testing.T) {
	var created PageRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/v1/databases/db1":
			io.WriteString(w, `{"properties":{"Name":{"type":"title"},"Date":{"type":"date"},"Commits":{"type":"number"}}}`)
		case r.Method == http.MethodPost && r.URL.Path == "/v1/pages":
			if err := json.NewDecoder(r.Body).Decode(&created); err != nil {
				t.Errorf("decode page request: %v", err)
			}
			io.WriteString(w, `{}`)
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient("tok")
	c.BaseURL = srv.URL
	p := NewPublisher(c, "db1")

	page := Page{
		Title:       "2024-01-01 changes",
		Date:        "2024-01-01",
		Repo:        "acme/widgets", // no rich_text property in schema: omitted
		CommitCount: 2,
		Intro:       "Commit digest for 2024-01-01.",
		Body:        "- `abc` something",
		Language:    "markdown",
	}
	if err := p.Publish(context.Background(), page); err != nil {
		t.Fatalf("Publish: %v", err)
	}

	if created.Parent.DatabaseID != "db1" {
		t.Errorf("parent = %+v", created.Parent)
	}
	if _, ok := created.Properties["Name"]; !ok {
		t.Errorf("title property missing: %v", created.Properties)
	}
	if _, ok := created.Properties["Commits"]; !ok {
		t.Errorf("commit count property missing: %v", created.Properties)
	}
	for name := range created.Properties {
		if strings.EqualFold(name, "repo") || strings.EqualFold(name, "repository") {
			t.Errorf("repo property %q set despite missing column", name)
		}
	}
	if len(created.Children) != 2 {
		t.Fatalf("children = %d blocks, expected paragraph + one code chunk", len(created.Children))
	}
}

func TestPublisher_SchemaFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"message":"invalid token"}`)
	}))
	defer srv.Close()

	c := NewClient("bad")
	c.BaseURL = srv.URL
	p := NewPublisher(c, "db1")

	if err := p.Publish(context.Background(), Page{Title: "t"}); err == nil {
		t.Fatal("expected schema fetch failure to propagate")
	}
}

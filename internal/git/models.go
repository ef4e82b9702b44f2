package git

import "fmt"

// Commit is one record from the log, split out of the pretty format.
// Date keeps git's iso-strict string untouched; the digest reprints it.
type Commit struct {
	ShortSHA string
	Author   string
	Date     string
	Subject  string
	SHA      string
}

// FileChange is one numstat row for a commit. Binary files carry no line
// counts; git prints "-" for both columns.
type FileChange struct {
	Path    string
	Added   int
	Deleted int
	Binary  bool
}

// AddedLabel returns the added-line count as git prints it.
func (f FileChange) AddedLabel() string {
	if f.Binary {
		return "-"
	}
	return fmt.Sprintf("%d", f.Added)
}

// DeletedLabel returns the deleted-line count as git prints it.
func (f FileChange) DeletedLabel() string {
	if f.Binary {
		return "-"
	}
	return fmt.Sprintf("%d", f.Deleted)
}

// SummaryMode selects how each commit's changes are summarized.
type SummaryMode int

const (
	// ModePatch keeps every hunk header and changed line; the body is
	// chunked at publish time instead of truncated per commit.
	ModePatch SummaryMode = iota
	// ModeExcerpt keeps the first hunk header and a bounded number of
	// changed lines per commit.
	ModeExcerpt
	// ModeNumstat keeps per-file added/deleted counts only.
	ModeNumstat
)

// ParseSummaryMode parses a mode name from config or flags.
func ParseSummaryMode(s string) (SummaryMode, error) {
	switch s {
	case "", "patch", "full":
		return ModePatch, nil
	case "excerpt", "diff":
		return ModeExcerpt, nil
	case "numstat", "stat":
		return ModeNumstat, nil
	default:
		return ModePatch, fmt.Errorf("unknown summary mode %q (expected patch, excerpt or numstat)", s)
	}
}

// String returns the canonical mode name.
func (m SummaryMode) String() string {
	switch m {
	case ModeExcerpt:
		return "excerpt"
	case ModeNumstat:
		return "numstat"
	default:
		return "patch"
	}
}

package git

import (
	"context"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// CommitSummary holds whichever representation the active mode produced.
// Files is set under ModeNumstat, Diff under ModeExcerpt and ModePatch.
type CommitSummary struct {
	Files []FileChange
	Diff  string
}

// Summarizer extracts a bounded view of each commit's changes.
type Summarizer struct {
	RepoPath string
	Mode     SummaryMode
	MaxLines int // changed-line cap, ModeExcerpt only
	Include  []string
	Exclude  []string
}

// Summarize fetches and condenses the changes of one commit.
func (s *Summarizer) Summarize(ctx context.Context, sha string) (CommitSummary, error) {
	if s.Mode == ModeNumstat {
		files, err := s.numstat(ctx, sha)
		return CommitSummary{Files: files}, err
	}

	out, err := runGit(ctx, s.RepoPath,
		"show", sha,
		"--no-color",
		"--unified=0",
		"--pretty=format:",
	)
	if err != nil {
		return CommitSummary{}, err
	}

	limit := -1
	if s.Mode == ModeExcerpt {
		limit = s.MaxLines
	}
	return CommitSummary{Diff: s.extractDiff(out, limit)}, nil
}

func (s *Summarizer) numstat(ctx context.Context, sha string) ([]FileChange, error) {
	out, err := runGit(ctx, s.RepoPath,
		"show", sha,
		"--numstat",
		"--no-color",
		"--format=",
	)
	if err != nil {
		return nil, err
	}
	return s.parseNumstat(out), nil
}

// parseNumstat reads tab-separated "added deleted path" rows. Binary files
// report "-" in both count columns. Rows with any other shape are dropped.
func (s *Summarizer) parseNumstat(out string) []FileChange {
	var files []FileChange
	for _, line := range strings.Split(out, "\n") {
		cols := strings.Split(line, "\t")
		if len(cols) != 3 {
			continue
		}
		if !s.matchesFilters(cols[2]) {
			continue
		}

		change := FileChange{Path: cols[2]}
		if cols[0] == "-" || cols[1] == "-" {
			change.Binary = true
		} else {
			added, errA := strconv.Atoi(cols[0])
			deleted, errD := strconv.Atoi(cols[1])
			if errA != nil || errD != nil {
				continue
			}
			change.Added = added
			change.Deleted = deleted
		}
		files = append(files, change)
	}
	return files
}

// extractDiff keeps hunk headers and changed lines from a zero-context
// patch, dropping file headers and anything else. maxLines < 0 means
// unlimited; maxLines >= 0 caps the changed lines and keeps only the
// first hunk header. "---"/"+++" lines count as file headers only between
// a "diff --git" line and that file's first hunk, so changed content that
// happens to start with "++ " or "-- " survives.
func (s *Summarizer) extractDiff(out string, maxLines int) string {
	limited := maxLines >= 0
	if limited && maxLines == 0 {
		return ""
	}

	var b strings.Builder
	emitted := 0
	wroteHunk := false
	skipFile := false
	inHeader := false
	lastSrcPath := ""

	for _, line := range strings.Split(out, "\n") {
		switch {
		case strings.HasPrefix(line, "diff --git"):
			inHeader = true
			skipFile = false
			lastSrcPath = ""

		case inHeader && strings.HasPrefix(line, "--- "):
			lastSrcPath = pathFromFileHeader(line)

		case inHeader && strings.HasPrefix(line, "+++ "):
			path := pathFromFileHeader(line)
			if path == "" {
				// Deleted file: the post-image is /dev/null.
				path = lastSrcPath
			}
			skipFile = path != "" && !s.matchesFilters(path)

		case strings.HasPrefix(line, "@@"):
			inHeader = false
			if skipFile {
				continue
			}
			if limited && wroteHunk {
				continue
			}
			b.WriteString(line)
			b.WriteByte('\n')
			wroteHunk = true

		case strings.HasPrefix(line, "+") || strings.HasPrefix(line, "-"):
			if inHeader || skipFile {
				continue
			}
			if limited && emitted >= maxLines {
				continue
			}
			b.WriteString(line)
			b.WriteByte('\n')
			emitted++
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// pathFromFileHeader strips the "--- a/" / "+++ b/" prefix from a unified
// diff file header. Returns "" for /dev/null.
func pathFromFileHeader(line string) string {
	path := strings.TrimSpace(line[4:])
	if path == "/dev/null" {
		return ""
	}
	path = strings.TrimPrefix(path, "a/")
	path = strings.TrimPrefix(path, "b/")
	return path
}

func (s *Summarizer) matchesFilters(path string) bool {
	path = strings.ReplaceAll(path, "\\", "/")

	for _, pattern := range s.Exclude {
		matched, _ := doublestar.Match(pattern, path)
		if matched {
			return false
		}
	}

	if len(s.Include) == 0 {
		return true
	}

	for _, pattern := range s.Include {
		matched, _ := doublestar.Match(pattern, path)
		if matched {
			return true
		}
	}

	return false
}

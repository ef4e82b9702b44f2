package git

import (
	"context"
	"strings"
	"time"

	"github.com/mkusano/daily-changelog/internal/timewindow"
)

// logFormat prints one record per commit. The subject is the only
// free-text field and goes last, so a capped split keeps embedded
// delimiters inside it.
const logFormat = "%h|%an|%ad|%H|%s"

const logFieldCount = 5

// Collector lists the commits a digest run covers.
type Collector struct {
	RepoPath string
}

// Commits runs git log over the window on the given branch, excluding
// merges. The returned slice keeps git's native reverse-chronological
// order and may be empty.
func (c *Collector) Commits(ctx context.Context, branch string, w timewindow.Window) ([]Commit, error) {
	out, err := runGit(ctx, c.RepoPath,
		"log", branch,
		"--no-merges",
		"--since="+w.Start.Format(time.RFC3339),
		"--until="+w.End.Format(time.RFC3339),
		"--pretty=format:"+logFormat,
		"--date=iso-strict",
	)
	if err != nil {
		return nil, err
	}
	return parseLog(out), nil
}

// parseLog splits log output into commits, one line per record. Lines that
// do not yield exactly five fields are dropped.
func parseLog(out string) []Commit {
	if strings.TrimSpace(out) == "" {
		return nil
	}

	var commits []Commit
	for _, line := range strings.Split(out, "\n") {
		parts := strings.SplitN(line, "|", logFieldCount)
		if len(parts) != logFieldCount {
			continue
		}
		commits = append(commits, Commit{
			ShortSHA: parts[0],
			Author:   parts[1],
			Date:     parts[2],
			SHA:      parts[3],
			Subject:  parts[4],
		})
	}
	return commits
}

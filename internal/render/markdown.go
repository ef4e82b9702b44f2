// Package render builds the digest body published as the page content.
package render

import (
	"fmt"
	"strings"

	"github.com/mkusano/daily-changelog/internal/git"
)

// NoCommitsMessage is the fixed body used when the window is empty.
const NoCommitsMessage = "No commits for the previous day."

// Entry pairs a commit with the summary the active mode produced for it.
type Entry struct {
	Commit git.Commit
	Files  []git.FileChange
	Diff   string
}

// Options controls digest rendering.
type Options struct {
	Mode     git.SummaryMode
	RepoName string // "owner/name"; enables commit links when set
}

// ContentKind names the code-block language for the rendered body. An
// empty digest carries the fixed no-commits text, which is prose, not a
// patch, so it is always markdown.
func ContentKind(mode git.SummaryMode, entries []Entry) string {
	if mode == git.ModePatch && len(entries) > 0 {
		return "diff"
	}
	return "markdown"
}

// Body renders the digest for one day's commits.
func Body(entries []Entry, opts Options) string {
	if len(entries) == 0 {
		return NoCommitsMessage
	}
	if opts.Mode == git.ModePatch {
		return patchBody(entries, opts)
	}
	return markdownBody(entries, opts)
}

func markdownBody(entries []Entry, opts Options) string {
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "- `%s` %s  \n", e.Commit.ShortSHA, e.Commit.Subject)
		b.WriteString("  " + attribution(e.Commit, opts.RepoName) + "\n")

		if len(e.Files) > 0 {
			b.WriteString("  Changed files:\n")
			for _, f := range e.Files {
				fmt.Fprintf(&b, "    - `%s` (+%s / -%s)\n", f.Path, f.AddedLabel(), f.DeletedLabel())
			}
		}
		if e.Diff != "" {
			b.WriteString("  Diff:\n")
			for _, line := range strings.Split(e.Diff, "\n") {
				b.WriteString("    " + line + "\n")
			}
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func patchBody(entries []Entry, opts Options) string {
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "commit %s %s\n", e.Commit.ShortSHA, e.Commit.Subject)
		b.WriteString(attribution(e.Commit, opts.RepoName) + "\n")
		if e.Diff != "" {
			b.WriteString(e.Diff + "\n")
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func attribution(c git.Commit, repoName string) string {
	line := fmt.Sprintf("Author: %s | Date: %s", c.Author, c.Date)
	if repoName != "" {
		line += fmt.Sprintf(" | [commit](https://github.com/%s/commit/%s)", repoName, c.SHA)
	}
	return line
}

package cmd

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/mkusano/daily-changelog/config"
	"github.com/mkusano/daily-changelog/internal/git"
	"github.com/mkusano/daily-changelog/internal/notion"
	"github.com/mkusano/daily-changelog/internal/render"
	"github.com/mkusano/daily-changelog/internal/timewindow"
	"github.com/urfave/cli/v2"
)

const dateFlagLayout = "2006-01-02"

// digestAction runs one digest: resolve the window and branch, collect the
// commits, summarize, render and publish. Strictly sequential; any failure
// aborts the run before the page exists.
func digestAction(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	dryRun := c.Bool("dry-run")
	if !dryRun {
		// Credential shape is checked before any network traffic.
		if err := cfg.ValidateNotion(); err != nil {
			return err
		}
	}

	mode, err := git.ParseSummaryMode(cfg.Digest.Mode)
	if err != nil {
		return err
	}

	window, err := resolveWindow(cfg, c.String("date"))
	if err != nil {
		return err
	}

	resolver, err := git.NewBranchResolver(cfg.Repo.Path, cfg.Repo.Remote, cfg.Repo.Branch)
	if err != nil {
		return err
	}
	branch, err := resolver.Resolve()
	if err != nil {
		return err
	}

	collector := &git.Collector{RepoPath: cfg.Repo.Path}
	commits, err := collector.Commits(c.Context, branch, window)
	if err != nil {
		return err
	}

	summarizer := &git.Summarizer{
		RepoPath: cfg.Repo.Path,
		Mode:     mode,
		MaxLines: cfg.Digest.MaxDiffLines,
		Include:  cfg.Digest.Filters.Include,
		Exclude:  cfg.Digest.Filters.Exclude,
	}

	entries := make([]render.Entry, 0, len(commits))
	for _, commit := range commits {
		summary, err := summarizer.Summarize(c.Context, commit.SHA)
		if err != nil {
			return err
		}
		entries = append(entries, render.Entry{
			Commit: commit,
			Files:  summary.Files,
			Diff:   summary.Diff,
		})
	}

	body := render.Body(entries, render.Options{Mode: mode, RepoName: cfg.Repo.DisplayName})
	page := notion.Page{
		Title:       window.Date() + " changes",
		Date:        window.Date(),
		Repo:        cfg.Repo.DisplayName,
		CommitCount: len(commits),
		Intro:       fmt.Sprintf("Commit digest for %s on %s.", window.Date(), branch),
		Body:        body,
		Language:    render.ContentKind(mode, entries),
	}

	if dryRun {
		fmt.Fprintln(c.App.Writer, page.Intro)
		fmt.Fprintln(c.App.Writer)
		fmt.Fprintln(c.App.Writer, page.Body)
		return nil
	}

	client := notion.NewClient(cfg.Notion.Token)
	publisher := notion.NewPublisher(client, cfg.Notion.DatabaseID)
	if err := publisher.Publish(c.Context, page); err != nil {
		return err
	}

	color.Green("Created Notion page %q with %d commits.", page.Title, len(commits))
	return nil
}

// resolveWindow picks the digested day: an explicit --date, or yesterday
// in the configured timezone.
func resolveWindow(cfg *config.Config, dateFlag string) (timewindow.Window, error) {
	loc, err := time.LoadLocation(cfg.Digest.Timezone)
	if err != nil {
		return timewindow.Window{}, fmt.Errorf("invalid timezone %q: %w", cfg.Digest.Timezone, err)
	}

	if dateFlag != "" {
		day, err := time.ParseInLocation(dateFlagLayout, dateFlag, loc)
		if err != nil {
			return timewindow.Window{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", dateFlag)
		}
		return timewindow.Day(loc, day), nil
	}

	return timewindow.Yesterday(loc, time.Now()), nil
}

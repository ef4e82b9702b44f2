package cmd

import (
	"fmt"
	"os"

	"github.com/mkusano/daily-changelog/config"
	"github.com/urfave/cli/v2"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "daily-changelog",
		Usage:   "Publish a daily commit digest from a Git repository to Notion",
		Version: "1.0.0",
		Flags:   digestFlags(),
		Action:  digestAction,
	}
}

func digestFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file",
		},
		&cli.StringFlag{
			Name:    "repo",
			Aliases: []string{"r"},
			Usage:   "Path to Git repository",
		},
		&cli.StringFlag{
			Name:    "branch",
			Aliases: []string{"b"},
			Usage:   "Branch to digest (default: resolve from the remote)",
			EnvVars: []string{"TARGET_BRANCH"},
		},
		&cli.StringFlag{
			Name:  "remote",
			Usage: "Remote whose branches are digested",
		},
		&cli.StringFlag{
			Name:    "repo-name",
			Usage:   "Repository display name (owner/name), enables commit links",
			EnvVars: []string{"GITHUB_REPOSITORY"},
		},
		&cli.StringFlag{
			Name:  "timezone",
			Usage: "Timezone the calendar day is computed in",
		},
		&cli.StringFlag{
			Name:    "mode",
			Aliases: []string{"m"},
			Usage:   "Summary mode (patch, excerpt, numstat)",
		},
		&cli.IntFlag{
			Name:    "diff-lines",
			Usage:   "Changed-line cap per commit (excerpt mode)",
			EnvVars: []string{"DIFF_LINE_CAP"},
		},
		&cli.StringSliceFlag{
			Name:  "include",
			Usage: "Glob patterns of paths to include (can be specified multiple times)",
		},
		&cli.StringSliceFlag{
			Name:  "exclude",
			Usage: "Glob patterns of paths to exclude (can be specified multiple times)",
		},
		&cli.StringFlag{
			Name:  "date",
			Usage: "Digest this day (YYYY-MM-DD) instead of yesterday",
		},
		&cli.BoolFlag{
			Name:  "dry-run",
			Usage: "Print the digest instead of publishing it",
		},
		&cli.StringFlag{
			Name:    "notion-token",
			Usage:   "Notion integration token",
			EnvVars: []string{"NOTION_API_KEY"},
		},
		&cli.StringFlag{
			Name:    "database",
			Usage:   "Notion database id",
			EnvVars: []string{"NOTION_DATABASE_ID"},
		},
	}
}

// loadConfig loads the config file and applies flag/env overrides on top.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if v := c.String("repo"); v != "" {
		cfg.Repo.Path = v
	}
	if v := c.String("branch"); v != "" {
		cfg.Repo.Branch = v
	}
	if v := c.String("remote"); v != "" {
		cfg.Repo.Remote = v
	}
	if v := c.String("repo-name"); v != "" {
		cfg.Repo.DisplayName = v
	}
	if v := c.String("timezone"); v != "" {
		cfg.Digest.Timezone = v
	}
	if v := c.String("mode"); v != "" {
		cfg.Digest.Mode = v
	}
	if c.IsSet("diff-lines") {
		cfg.Digest.MaxDiffLines = c.Int("diff-lines")
	}
	if includes := c.StringSlice("include"); len(includes) > 0 {
		cfg.Digest.Filters.Include = includes
	}
	if excludes := c.StringSlice("exclude"); len(excludes) > 0 {
		cfg.Digest.Filters.Exclude = excludes
	}
	if v := c.String("notion-token"); v != "" {
		cfg.Notion.Token = v
	}
	if v := c.String("database"); v != "" {
		cfg.Notion.DatabaseID = v
	}

	return cfg, nil
}

// Run executes the CLI application.
func Run() {
	if err := App().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

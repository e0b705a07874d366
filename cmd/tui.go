package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/podshelf/internal/shared"
	"github.com/desertthunder/podshelf/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive episode browser.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(cmd.String("log-file"))
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	shared.SetLogLevel(fileLogger, shared.ParseLogLevel(r.config.Log.Level))
	r.SetLogger(fileLogger)

	c, err := r.loadCatalog(cmd.StringSlice("file"))
	if err != nil {
		return err
	}

	baseURL := r.config.Browse.BaseURL
	if cmd.IsSet("url") {
		baseURL = cmd.String("url")
	}

	model, err := ui.NewModel(c.Episodes, ui.Options{
		PageSize:   r.config.Browse.EpisodesPerPage,
		Series:     c.Series,
		Fragment:   cmd.String("fragment"),
		Permalinks: r.config.Browse.Permalinks,
		BaseURL:    baseURL,
		Debounce:   r.config.Browse.SearchDebounce(),
		Logger:     shared.WithLogger(fileLogger, "component", "tui"),
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// tuiCommand returns the top-level TUI command for interactive browsing.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive episode browser",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "fragment",
				Usage: "Start at a permalink fragment, e.g. 'B' or 'C%20D'",
			},
			&cli.StringFlag{
				Name:  "url",
				Usage: "Base URL for copied permalinks (overrides browse.base_url)",
			},
			&cli.StringSliceFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Read catalog files instead of the database",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Where to write logs while the TUI is running",
				Value: "./tmp/podshelf-tui.log",
			},
		},
		Action: r.TUI,
	}
}

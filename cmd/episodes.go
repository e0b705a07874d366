package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/podshelf/internal/browse"
	"github.com/desertthunder/podshelf/internal/formatter"
	"github.com/desertthunder/podshelf/internal/shared"
	"github.com/urfave/cli/v3"
)

// EpisodesList prints one page of the catalog after applying the fragment, search and series selection in that order.
//
// The command drives a browsing controller exactly like the interactive front ends, rendering only the final frame.
func (r *Runner) EpisodesList(ctx context.Context, cmd *cli.Command) error {
	page := int(cmd.Int("page"))
	if page < 1 {
		return fmt.Errorf("%w: --page must be at least 1, got %d", shared.ErrInvalidArgument, page)
	}

	c, err := r.loadCatalog(cmd.StringSlice("file"))
	if err != nil {
		return err
	}

	var view browse.View
	opts := browse.Options{
		PageSize: r.config.Browse.EpisodesPerPage,
		Series:   c.Series,
		Renderer: browse.RenderFunc(func(v browse.View) { view = v }),
		Logger:   r.logger,
	}
	if r.config.Browse.Permalinks {
		opts.Location = browse.NewMemoryLocation(cmd.String("fragment"))
	}

	controller, err := browse.NewController(c.Episodes, opts)
	if err != nil {
		return err
	}
	controller.Start()

	if search := cmd.String("search"); search != "" {
		controller.OnSearchInput(search)
	}
	if cmd.IsSet("series") {
		controller.OnSeriesChange(cmd.String("series"))
	}
	for view.CurrentPage < page {
		if !controller.OnNextPage() {
			r.logger.Warn("page out of range, showing the last page", "page", page, "pages", view.TotalPages)
			break
		}
	}

	if cmd.Bool("json") {
		return r.writeJSON(view, cmd.Bool("pretty"))
	}
	return r.writeView(view)
}

func (r *Runner) writeView(view browse.View) error {
	if view.Empty() {
		r.writePlain("No episodes found\n")
	} else {
		offset := (view.CurrentPage - 1) * r.config.Browse.EpisodesPerPage
		r.writePlain("%s\n", episodeTable(view.Episodes, offset))
	}

	r.writePlain("%s", formatter.Stats(view.ShownCount, view.TotalCount))
	if view.TotalPages > 1 {
		r.writePlain(" (page %d of %d)", view.CurrentPage, view.TotalPages)
	}
	if err := r.writePlain("\n"); err != nil {
		return err
	}

	if view.SelectedSeries != "" && r.config.Browse.Permalinks {
		return r.writePlain("Permalink: %s\n", browse.URL(r.config.Browse.BaseURL, view.SelectedSeries))
	}
	return nil
}

// episodesCommand handles non-interactive browsing.
func episodesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "episodes",
		Aliases: []string{"ep"},
		Usage:   "Browse episodes without the TUI",
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "Print one page of episodes",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "search",
						Aliases: []string{"s"},
						Usage:   "Search titles and descriptions",
					},
					&cli.StringFlag{
						Name:  "series",
						Usage: "Series code to show (empty for all)",
					},
					&cli.StringFlag{
						Name:  "fragment",
						Usage: "URL fragment to resolve, as in a shared permalink",
					},
					&cli.IntFlag{
						Name:    "page",
						Aliases: []string{"p"},
						Usage:   "Page number",
						Value:   1,
					},
					&cli.StringSliceFlag{
						Name:    "file",
						Aliases: []string{"f"},
						Usage:   "Read catalog files instead of the database",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output the view as JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print JSON output",
						Value: true,
					},
				},
				Action: r.EpisodesList,
			},
		},
	}
}

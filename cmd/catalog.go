package main

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/podshelf/internal/browse"
	"github.com/desertthunder/podshelf/internal/catalog"
	"github.com/desertthunder/podshelf/internal/formatter"
	"github.com/desertthunder/podshelf/internal/shared"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"
)

// CatalogImport loads catalog files and replaces the stored catalog with their merged contents.
func (r *Runner) CatalogImport(ctx context.Context, cmd *cli.Command) error {
	paths := cmd.Args().Slice()
	if pattern := cmd.String("glob"); pattern != "" {
		matches, err := catalog.Glob(pattern)
		if err != nil {
			return err
		}
		r.logger.Debug("glob expanded", "pattern", pattern, "files", len(matches))
		paths = append(paths, matches...)
	}
	if len(paths) == 0 {
		return fmt.Errorf("%w: pass catalog files or --glob", shared.ErrMissingArgument)
	}

	store, db, err := r.openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	imp, err := store.Import(paths...)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(imp, true)
	}
	return r.writePlain("✓ Imported %s episodes in %d series from %d file(s)\n",
		humanize.Comma(int64(imp.Episodes)), imp.Series, len(paths))
}

// CatalogExport writes the (optionally filtered) catalog as CSV, Markdown or text.
func (r *Runner) CatalogExport(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	c, err := r.loadCatalog(cmd.StringSlice("file"))
	if err != nil {
		return err
	}

	episodes := browse.Filter(c.Episodes, browse.NormalizeSearch(cmd.String("search")), cmd.String("series"))
	title := cmd.String("title")
	output := cmd.String("output")

	if err := formatter.WriteExport(r.output, output, format, title, episodes); err != nil {
		return err
	}
	if output != "" {
		r.logger.Info("catalog exported", "path", output, "format", format, "episodes", len(episodes))
	}
	return nil
}

// CatalogStatus reports the most recent import.
func (r *Runner) CatalogStatus(ctx context.Context, cmd *cli.Command) error {
	store, db, err := r.openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	imp, err := store.LastImport()
	if err != nil {
		return err
	}
	if imp == nil {
		return r.writePlain("No catalog imported yet; reading %s\n", r.config.Catalog.Path)
	}
	if cmd.Bool("json") {
		return r.writeJSON(imp, true)
	}

	r.writePlain("Source:   %s\n", imp.Source)
	r.writePlain("Episodes: %s\n", humanize.Comma(int64(imp.Episodes)))
	r.writePlain("Series:   %d\n", imp.Series)
	return r.writePlain("Imported: %s\n", humanize.RelTime(imp.ImportedAt, time.Now(), "ago", "from now"))
}

// catalogCommand handles catalog import, export and status.
func catalogCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "catalog",
		Usage: "Manage the episode catalog",
		Commands: []*cli.Command{
			{
				Name:  "import",
				Usage: "Replace the stored catalog with JSON, TOML or YAML files",
				ArgsUsage: "<files...>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "glob",
						Usage: "Import every catalog file matching a pattern, e.g. 'data/**/*.yaml'",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output the import record as JSON",
					},
				},
				Action: r.CatalogImport,
			},
			{
				Name:  "export",
				Usage: "Export episodes as csv, md or txt",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "format",
						Usage: "Export format (csv, md, txt)",
						Value: "csv",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (default: stdout)",
					},
					&cli.StringSliceFlag{
						Name:    "file",
						Aliases: []string{"f"},
						Usage:   "Read catalog files instead of the database",
					},
					&cli.StringFlag{
						Name:  "search",
						Usage: "Only export episodes matching a search term",
					},
					&cli.StringFlag{
						Name:  "series",
						Usage: "Only export episodes in a series",
					},
					&cli.StringFlag{
						Name:  "title",
						Usage: "Heading for Markdown exports",
						Value: "Episodes",
					},
				},
				Action: r.CatalogExport,
			},
			{
				Name:  "status",
				Usage: "Show the most recent import",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.CatalogStatus,
			},
		},
	}
}

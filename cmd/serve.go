package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/desertthunder/podshelf/internal/server"
	"github.com/desertthunder/podshelf/internal/shared"
	"github.com/desertthunder/podshelf/internal/web"
	"github.com/urfave/cli/v3"
)

// newRouter wires the middleware stack and the browser handler.
func (r *Runner) newRouter(handler server.Handler) *server.BasicRouter {
	cfg := r.config.Server
	router := server.NewBasicRouter()
	router.Use(
		server.Recover(r.logger),
		server.RequestLogger(shared.WithLogger(r.logger, "component", "http")),
		server.RateLimit(cfg.RateLimit, cfg.RateBurst),
	)
	router.Handler(handler)
	return router
}

// Serve runs the web front end until interrupted.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	cfg := r.config.Server
	if cmd.IsSet("host") {
		cfg.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		cfg.Port = int(cmd.Int("port"))
	}

	c, err := r.loadCatalog(cmd.StringSlice("file"))
	if err != nil {
		return err
	}

	handler, err := web.NewHandler(c, web.Options{
		PageSize:    r.config.Browse.EpisodesPerPage,
		Permalinks:  r.config.Browse.Permalinks,
		MaxSessions: cfg.MaxSessions,
		Logger:      r.logger,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	r.logger.Info("serving episode browser", "episodes", len(c.Episodes), "url", fmt.Sprintf("http://%s/", cfg.Addr()))
	return server.NewServer(cfg.Addr(), r.newRouter(handler), r.logger).Run(ctx)
}

// serveCommand starts the HTTP front end.
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the episode browser over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "host",
				Usage: "Listen host (overrides server.host)",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Listen port (overrides server.port)",
			},
			&cli.StringSliceFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Read catalog files instead of the database",
			},
		},
		Action: r.Serve,
	}
}

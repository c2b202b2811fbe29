package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/qepting91/hotfavs/internal/config"
	"github.com/qepting91/hotfavs/internal/domain"
	"github.com/qepting91/hotfavs/internal/ingest"
	"github.com/qepting91/hotfavs/internal/view"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"
)

func rootApp(cfg *config.Config, logger *slog.Logger) *cli.App {
	return &cli.App{
		Name:  "hotfavs",
		Usage: "Browse the top 10 hot posts of a subreddit and keep favorites",
		Description: `Searches a subreddit for its ten hottest posts and lets you mark
		favorites. Only the ids of favorites are stored; their posts are fetched
		again every time hotfavs starts.

		Flags can generally be set via environment variables, e.g.:

		--mode => COLLECTOR_MODE=mock
		--data-dir => DATA_DIR=data
		`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "mode",
				Usage:       "Upstream client: public, api or mock",
				Value:       cfg.CollectorMode,
				Destination: &cfg.CollectorMode,
			},
			&cli.StringFlag{
				Name:        "data-dir",
				Usage:       "Directory holding the favorites slot",
				Value:       cfg.DataDir,
				Destination: &cfg.DataDir,
			},
			&cli.StringFlag{
				Name:        "user-agent",
				Usage:       "User-Agent sent to Reddit",
				Value:       cfg.UserAgent,
				Destination: &cfg.UserAgent,
			},
		},
		Commands: []*cli.Command{
			serveCmd(cfg, logger),
			searchCmd(cfg, logger),
			favoritesCmd(cfg, logger),
		},
	}
}

func serveCmd(cfg *config.Config, logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the web view",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "port",
				Aliases:     []string{"p"},
				Usage:       "Port for the web view",
				Value:       cfg.Port,
				Destination: &cfg.Port,
			},
		},
		Action: func(ctx *cli.Context) error {
			a, err := newApp(*cfg, logger)
			if err != nil {
				return err
			}
			defer a.close()
			a.start(ctx.Context)

			logger.Info("Starting view", "port", cfg.Port)
			srv := view.NewServer(view.NewRouter(a.view, logger))
			return srv.ListenAndServe(ctx.Context, ":"+cfg.Port)
		},
	}
}

func searchCmd(cfg *config.Config, logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Print the top 10 hot posts of a subreddit",
		ArgsUsage: "<subreddit>",
		Action: func(ctx *cli.Context) error {
			if ctx.NArg() != 1 {
				return cli.Exit("expected one subreddit name", 2)
			}
			a, err := newApp(*cfg, logger)
			if err != nil {
				return err
			}
			defer a.close()
			a.start(ctx.Context)
			<-a.store.Ready()

			state := a.view.Search(ctx.Context, ctx.Args().First())
			page := a.view.Snapshot()
			fmt.Fprintf(ctx.App.Writer, "Top 10 posts on %q\n", page.Query)
			switch state {
			case view.StateUnavailable:
				return cli.Exit("unable to load posts", 1)
			case view.StateEmpty:
				fmt.Fprintln(ctx.App.Writer, "No post found")
				return nil
			}
			printRows(ctx.App.Writer, page.Results)
			return nil
		},
	}
}

func favoritesCmd(cfg *config.Config, logger *slog.Logger) *cli.Command {
	return &cli.Command{
		Name:    "favorites",
		Aliases: []string{"fav"},
		Usage:   "List, add, remove or import favorites",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "Fetch and print every favorite",
				Action: func(ctx *cli.Context) error {
					a, err := newApp(*cfg, logger)
					if err != nil {
						return err
					}
					defer a.close()
					a.start(ctx.Context)
					<-a.store.Ready()

					page := a.view.Snapshot()
					printRows(ctx.App.Writer, page.Favorites)
					if missing := len(a.store.IDs()) - len(page.Favorites); missing > 0 {
						fmt.Fprintf(ctx.App.Writer, "(%d stored favorites could not be loaded)\n", missing)
					}
					return nil
				},
			},
			{
				Name:      "add",
				Usage:     "Add a post to the favorites",
				ArgsUsage: "<id>",
				Action: func(ctx *cli.Context) error {
					if ctx.NArg() != 1 {
						return cli.Exit("expected one post id", 2)
					}
					a, err := newApp(*cfg, logger)
					if err != nil {
						return err
					}
					defer a.close()
					a.load()

					id := domain.CanonicalID(ctx.Args().First())
					if lo.Contains(a.store.IDs(), id) {
						fmt.Fprintf(ctx.App.Writer, "%s is already a favorite\n", id)
						return nil
					}
					p, err := a.view.AddFavorite(ctx.Context, id)
					if errors.Is(err, domain.ErrNotFound) {
						return cli.Exit("post not found", 1)
					}
					if err != nil {
						return err
					}
					fmt.Fprintf(ctx.App.Writer, "Added %s: %s\n", p.ID, p.Title)
					return nil
				},
			},
			{
				Name:      "remove",
				Aliases:   []string{"rm"},
				Usage:     "Remove a post from the favorites",
				ArgsUsage: "<id>",
				Action: func(ctx *cli.Context) error {
					if ctx.NArg() != 1 {
						return cli.Exit("expected one post id", 2)
					}
					a, err := newApp(*cfg, logger)
					if err != nil {
						return err
					}
					defer a.close()
					a.load()

					id := ctx.Args().First()
					if a.view.RemoveFavorite(id) {
						fmt.Fprintf(ctx.App.Writer, "Removed %s\n", id)
					} else {
						fmt.Fprintf(ctx.App.Writer, "%s was not a favorite\n", id)
					}
					return nil
				},
			},
			{
				Name:      "import",
				Usage:     "Add every post id listed in the first column of a CSV file",
				ArgsUsage: "<file.csv>",
				Action: func(ctx *cli.Context) error {
					if ctx.NArg() != 1 {
						return cli.Exit("expected one csv file", 2)
					}
					ids, err := ingest.LoadIDs(ctx.Args().First())
					if err != nil {
						return fmt.Errorf("read ids: %w", err)
					}

					a, err := newApp(*cfg, logger)
					if err != nil {
						return err
					}
					defer a.close()
					a.start(ctx.Context)
					<-a.store.Ready()

					added := 0
					for _, id := range ids {
						if a.store.IsFavorite(id) {
							continue
						}
						if _, err := a.view.AddFavorite(ctx.Context, id); err != nil {
							logger.Warn("Import skipped id", "id", id, "err", err)
							continue
						}
						added++
					}
					fmt.Fprintf(ctx.App.Writer, "Imported %d of %d ids\n", added, len(ids))
					return nil
				},
			},
		},
	}
}

func printRows(w io.Writer, rows []view.Row) {
	for _, r := range rows {
		heart := "♡"
		if r.Favorite {
			heart = "♥"
		}
		fmt.Fprintf(w, "%s %s | Score: %d | %s\n", heart, r.Title, r.Score, r.CommentsURL)
	}
}

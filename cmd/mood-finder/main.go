// Command mood-finder recommends Spotify tracks for a mood or an image.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"golang.org/x/time/rate"

	"github.com/justestif/go-spotify-mood-finder/internal/db"
	"github.com/justestif/go-spotify-mood-finder/internal/mood"
	"github.com/justestif/go-spotify-mood-finder/internal/recommend"
	"github.com/justestif/go-spotify-mood-finder/internal/spotify"
	"github.com/justestif/go-spotify-mood-finder/internal/web"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Error: loading .env file: %v\n", err)
		os.Exit(1)
	}

	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "mood-finder"
	app.Usage = "Recommend Spotify tracks for a mood or an image."
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "client-id",
			Usage:   "Spotify application client ID",
			EnvVars: []string{"SPOTIFY_CLIENT_ID"},
		},
		&cli.StringFlag{
			Name:    "client-secret",
			Usage:   "Spotify application client secret",
			EnvVars: []string{"SPOTIFY_CLIENT_SECRET"},
		},
		&cli.BoolFlag{
			Name:    "debug",
			Usage:   "enable debug logging",
			EnvVars: []string{"MOOD_DEBUG"},
		},
	}
	app.Before = func(c *cli.Context) error {
		level := slog.LevelInfo
		if c.Bool("debug") {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		return nil
	}
	app.Commands = []*cli.Command{
		serveCommand(),
		moodCommand(),
		imageCommand(),
	}
	return app
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "addr",
				Value:   web.DefaultAddr,
				Usage:   "address to listen on",
				EnvVars: []string{"MOOD_ADDR"},
			},
			&cli.Float64Flag{
				Name:    "rate-limit",
				Value:   web.DefaultRateLimit,
				Usage:   "API requests per second (0 disables limiting)",
				EnvVars: []string{"MOOD_RATE_LIMIT"},
			},
			&cli.IntFlag{
				Name:    "rate-burst",
				Value:   web.DefaultRateBurst,
				Usage:   "API request burst size",
				EnvVars: []string{"MOOD_RATE_BURST"},
			},
			&cli.StringFlag{
				Name:    "database-url",
				Usage:   "PostgreSQL URL for request history (optional)",
				EnvVars: []string{"DATABASE_URL"},
			},
		},
		Action: func(c *cli.Context) error {
			cfg := spotifyConfig(c)
			if err := cfg.Validate(); err != nil {
				slog.Warn("spotify credentials missing, analyze requests will fail until they are set")
			}

			var opts []recommend.Option
			var history web.HistoryStore
			if url := c.String("database-url"); url != "" {
				database, err := db.New(c.Context, url)
				if err != nil {
					return fmt.Errorf("connecting to database: %w", err)
				}
				defer database.Close()

				if err := database.Migrate(c.Context); err != nil {
					return err
				}
				opts = append(opts, recommend.WithRecorder(database.History()))
				history = database.History()
			}

			server, err := web.NewServer(web.ServerConfig{
				Addr:      c.String("addr"),
				Service:   recommend.NewService(spotify.NewClient(cfg), opts...),
				History:   history,
				RateLimit: rate.Limit(c.Float64("rate-limit")),
				RateBurst: c.Int("rate-burst"),
			})
			if err != nil {
				return fmt.Errorf("creating server: %w", err)
			}

			return server.Run()
		},
	}
}

func moodCommand() *cli.Command {
	return &cli.Command{
		Name:      "mood",
		Usage:     "recommend tracks for a mood description",
		ArgsUsage: "<text>",
		Action: func(c *cli.Context) error {
			text := strings.Join(c.Args().Slice(), " ")

			svc := recommend.NewService(spotify.NewClient(spotifyConfig(c)))
			result, err := svc.AnalyzeMood(c.Context, text)
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}
}

func imageCommand() *cli.Command {
	return &cli.Command{
		Name:  "image",
		Usage: "recommend tracks for an image, judged by its name and the time",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "name",
				Usage:    "image filename",
				Required: true,
			},
			&cli.Int64Flag{
				Name:  "size",
				Usage: "image size in bytes",
			},
			&cli.IntFlag{
				Name:  "hour",
				Value: -1,
				Usage: "hour of day 0-23 (default: now)",
			},
			&cli.IntFlag{
				Name:  "weekday",
				Value: -1,
				Usage: "day of week 0-6, 0 = Sunday (default: today)",
			},
		},
		Action: func(c *cli.Context) error {
			signals := mood.SignalsFrom(c.String("name"), c.Int64("size"), time.Now())
			if c.IsSet("hour") {
				signals.Hour = c.Int("hour")
			}
			if c.IsSet("weekday") {
				signals.Weekday = time.Weekday(c.Int("weekday"))
			}

			svc := recommend.NewService(spotify.NewClient(spotifyConfig(c)))
			result, err := svc.AnalyzeImage(c.Context, &signals)
			if err != nil {
				return err
			}
			return printJSON(result)
		},
	}
}

func spotifyConfig(c *cli.Context) spotify.Config {
	return spotify.Config{
		ClientID:     c.String("client-id"),
		ClientSecret: c.String("client-secret"),
	}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/primesieve/internal/api"
	"github.com/samcharles93/primesieve/internal/logger"
)

func serveFlags(opts *serveOptions, cfgPath *string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "listen address",
			Value:       "127.0.0.1:8080",
			Destination: &opts.addr,
		},
		&cli.Int64Flag{
			Name:        "max-bound",
			Usage:       "largest max a client may request",
			Value:       api.DefaultMaxBound,
			Destination: &opts.maxBound,
		},
		&cli.DurationFlag{
			Name:        "read-timeout",
			Usage:       "read header timeout",
			Value:       30 * time.Second,
			Destination: &opts.readTimeout,
		},
		&cli.StringFlag{
			Name:        "config",
			Usage:       "path to config.yaml",
			Value:       configPath(),
			Destination: cfgPath,
		},
	}
}

// newEcho wires the API routes behind request logging and panic recovery.
// Request logs go through log, so they honour the logging flags and stay
// off stdout.
func newEcho(server *api.Server, log logger.Logger) *echo.Echo {
	e := echo.New()
	e.Logger = log.Slog()
	e.Use(middleware.RequestLogger())
	e.Use(middleware.Recover())
	server.Register(e)
	return e
}

func serveCmd() *cli.Command {
	var (
		opts    serveOptions
		cfgPath string
	)

	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the prime API over HTTP",
		Flags: serveFlags(&opts, &cfgPath),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := LoadConfig(cfgPath)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			applyServeConfig(cmd, cfg, &opts)
			if opts.maxBound <= 0 {
				return cli.Exit(fmt.Sprintf("error: max-bound must be positive, got %d", opts.maxBound), 1)
			}

			log := logger.NewFromFlags(errWriter(cmd), logLevel, logFormat, debug)
			ctx = logger.WithContext(ctx, log)

			server := api.NewServer(api.ServerConfig{
				MaxBound: int(opts.maxBound),
				Logger:   log,
			})
			e := newEcho(server, log)

			log.Info("starting server", "address", opts.addr, "max_bound", server.MaxBound())
			sc := echo.StartConfig{
				Address: opts.addr,
				BeforeServeFunc: func(srv *http.Server) error {
					srv.ReadHeaderTimeout = opts.readTimeout
					return nil
				},
			}
			return sc.Start(ctx, e)
		},
	}
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/primesieve/internal/logger"
)

const rootDescription = "MAX is a non-negative integer and defaults to 1000. The words serve,\n" +
	"benchmark, version and help name subcommands and are never read as MAX."

func newApp() *cli.Command {
	var useIter bool

	return &cli.Command{
		Name:        "sieve",
		Usage:       "List the primes up to MAX with the Sieve of Eratosthenes",
		ArgsUsage:   "[MAX]",
		Description: rootDescription,
		Flags: append(loggingFlags(),
			&cli.BoolFlag{
				Name:        "iter",
				Usage:       "produce primes one at a time instead of sieving the whole range first",
				Destination: &useIter,
			},
		),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			log := logger.NewFromFlags(errWriter(cmd), logLevel, logFormat, debug)
			return logger.WithContext(ctx, log), nil
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return primesAction(ctx, cmd, useIter)
		},
		Commands: []*cli.Command{
			serveCmd(),
			benchmarkCmd(),
			versionCmd(),
		},
	}
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

// reportError prints err, followed by the usage line for argument errors.
func reportError(w io.Writer, err error) {
	var ue usageError
	if errors.As(err, &ue) {
		_, _ = fmt.Fprintf(w, "error: %s\n", ue.msg)
		_, _ = fmt.Fprintln(w, usageLine)
		return
	}
	_, _ = fmt.Fprintln(w, err)
}

func outWriter(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func errWriter(cmd *cli.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}
	return os.Stderr
}

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/primesieve/internal/logger"
	"github.com/samcharles93/primesieve/internal/sieve"
)

const (
	defaultMax = 1000
	usageLine  = "Usage: sieve [MAX]"
)

// usageError is an argument problem; main reports it together with usageLine.
type usageError struct {
	msg string
}

func (e usageError) Error() string {
	return e.msg
}

func primesAction(ctx context.Context, cmd *cli.Command, useIter bool) error {
	log := logger.FromContext(ctx)

	max, err := parseMaxArgs(cmd.Args().Slice())
	if err != nil {
		return err
	}

	start := time.Now()
	count, err := writePrimes(outWriter(cmd), max, useIter)
	if err != nil {
		return fmt.Errorf("write primes: %w", err)
	}
	log.Debug("sieve complete", "max", max, "count", count, "iter", useIter, "elapsed", time.Since(start))
	return nil
}

// parseMaxArgs resolves the optional MAX positional argument.
func parseMaxArgs(args []string) (int, error) {
	switch len(args) {
	case 0:
		return defaultMax, nil
	case 1:
	default:
		return 0, usageError{msg: fmt.Sprintf("expected at most one argument, got %d", len(args))}
	}

	tok := args[0]
	n, err := strconv.ParseUint(tok, 10, strconv.IntSize-1)
	if err != nil {
		reason := err
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			reason = numErr.Err
		}
		return 0, usageError{msg: fmt.Sprintf("invalid MAX %q: %v", tok, reason)}
	}
	return int(n), nil
}

// writePrimes prints the primes <= max on one space-separated line followed
// by the count line, and returns the count.
func writePrimes(w io.Writer, max int, useIter bool) (int, error) {
	bw := bufio.NewWriterSize(w, 64*1024)
	count := 0
	emit := func(p int) {
		if count > 0 {
			_ = bw.WriteByte(' ')
		}
		var num [20]byte
		_, _ = bw.Write(strconv.AppendInt(num[:0], int64(p), 10))
		count++
	}

	if useIter {
		for p := range sieve.NewIter(max).All() {
			emit(p)
		}
	} else {
		for _, p := range sieve.Sieve(max) {
			emit(p)
		}
	}

	_ = bw.WriteByte('\n')
	_, _ = fmt.Fprintf(bw, "Count of primes 2-%d: %d\n", max, count)
	if err := bw.Flush(); err != nil {
		return count, err
	}
	return count, nil
}

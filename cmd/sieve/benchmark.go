package main

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"slices"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/primesieve/internal/logger"
	"github.com/samcharles93/primesieve/internal/sieve"
)

type benchCase struct {
	name string
	run  func(max int) int
}

var benchCases = []benchCase{
	{"sieve", func(max int) int { return len(sieve.Sieve(max)) }},
	{"iter", func(max int) int { return len(sieve.NewIter(max).Collect()) }},
	{"count", sieve.Count},
}

type benchResult struct {
	name  string
	count int
	runs  []time.Duration
}

func (r benchResult) mean() time.Duration {
	if len(r.runs) == 0 {
		return 0
	}
	var sum time.Duration
	for _, d := range r.runs {
		sum += d
	}
	return sum / time.Duration(len(r.runs))
}

func (r benchResult) min() time.Duration {
	if len(r.runs) == 0 {
		return 0
	}
	return slices.Min(r.runs)
}

func benchmarkCmd() *cli.Command {
	var (
		max        int64
		warmupRuns int64
		benchRuns  int64
	)

	return &cli.Command{
		Name:  "benchmark",
		Usage: "Time the batch sieve against the incremental producer",
		Flags: []cli.Flag{
			&cli.Int64Flag{
				Name:        "max",
				Aliases:     []string{"n"},
				Usage:       "upper bound to sieve",
				Value:       10_000_000,
				Destination: &max,
			},
			&cli.Int64Flag{
				Name:        "warmup",
				Usage:       "number of warmup runs",
				Value:       1,
				Destination: &warmupRuns,
			},
			&cli.Int64Flag{
				Name:        "runs",
				Usage:       "number of benchmark runs",
				Value:       5,
				Destination: &benchRuns,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if max < 0 {
				return cli.Exit(fmt.Sprintf("error: max must be non-negative, got %d", max), 1)
			}
			if benchRuns < 1 {
				return cli.Exit("error: runs must be at least 1", 1)
			}
			results, err := runBenchmark(ctx, int(max), int(warmupRuns), int(benchRuns))
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			printBenchmark(outWriter(cmd), int(max), int(warmupRuns), results)
			return nil
		},
	}
}

// runBenchmark times every bench case and checks they agree on the count.
func runBenchmark(ctx context.Context, max, warmup, runs int) ([]benchResult, error) {
	log := logger.FromContext(ctx)

	results := make([]benchResult, 0, len(benchCases))
	for _, bc := range benchCases {
		for i := range warmup {
			log.Debug("warmup run", "case", bc.name, "run", i+1)
			bc.run(max)
		}

		res := benchResult{name: bc.name, runs: make([]time.Duration, 0, runs)}
		for i := range runs {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			start := time.Now()
			res.count = bc.run(max)
			res.runs = append(res.runs, time.Since(start))
			log.Debug("benchmark run", "case", bc.name, "run", i+1, "elapsed", res.runs[i])
		}
		results = append(results, res)
	}

	for _, r := range results[1:] {
		if r.count != results[0].count {
			return nil, fmt.Errorf("%s found %d primes, %s found %d", r.name, r.count, results[0].name, results[0].count)
		}
	}
	return results, nil
}

func printBenchmark(w io.Writer, max, warmup int, results []benchResult) {
	_, _ = fmt.Fprintln(w, "=== Sieve Benchmark ===")
	_, _ = fmt.Fprintf(w, "Max:        %d\n", max)
	_, _ = fmt.Fprintf(w, "GOMAXPROCS: %d\n", runtime.GOMAXPROCS(0))
	_, _ = fmt.Fprintf(w, "Warmup:     %d runs\n", warmup)
	if len(results) > 0 {
		_, _ = fmt.Fprintf(w, "Runs:       %d\n", len(results[0].runs))
		_, _ = fmt.Fprintf(w, "Primes:     %d\n", results[0].count)
	}
	_, _ = fmt.Fprintln(w)

	_, _ = fmt.Fprintf(w, "%-8s %12s %12s\n", "Case", "Mean", "Min")
	for _, r := range results {
		_, _ = fmt.Fprintf(w, "%-8s %12s %12s\n", r.name, r.mean().Round(time.Microsecond), r.min().Round(time.Microsecond))
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	_, _ = fmt.Fprintf(w, "\nMemory: %.1f MB alloc, %.1f MB sys\n",
		float64(mem.Alloc)/(1024*1024),
		float64(mem.Sys)/(1024*1024))
}

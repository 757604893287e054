// Package api serves the prime sieve over HTTP.
//
// Every request owns its own sieve table or producer; the server keeps no
// per-request state, so handlers run concurrently without locking.
package api

import (
	"net/http"
	"slices"
	"time"

	"github.com/labstack/echo/v5"

	"github.com/samcharles93/primesieve/internal/logger"
	"github.com/samcharles93/primesieve/internal/sieve"
	"github.com/samcharles93/primesieve/internal/version"
)

// DefaultMaxBound caps the bound a client may request when the server is not
// configured otherwise. Ten million marks fit in about 1.2 MiB.
const DefaultMaxBound = 10_000_000

// maxBatchBounds limits how many bounds one batch count request may carry.
const maxBatchBounds = 64

type ServerConfig struct {
	// MaxBound is the largest accepted max; zero selects DefaultMaxBound.
	MaxBound int
	Logger   logger.Logger
}

type Server struct {
	maxBound int
	log      logger.Logger
	clock    func() time.Time
}

func NewServer(cfg ServerConfig) *Server {
	if cfg.MaxBound <= 0 {
		cfg.MaxBound = DefaultMaxBound
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Discard()
	}
	return &Server{
		maxBound: cfg.MaxBound,
		log:      cfg.Logger.With("component", "api"),
		clock:    time.Now,
	}
}

// MaxBound returns the largest bound the server accepts.
func (s *Server) MaxBound() int {
	return s.maxBound
}

func (s *Server) Register(e *echo.Echo) {
	e.GET("/healthz", s.handleHealth)

	e.GET("/v1/primes", s.handleList)
	e.GET("/v1/primes/count", s.handleCount)
	e.POST("/v1/primes/count", s.handleCountBatch)
	e.GET("/v1/primes/stream", s.handleStream)
}

func (s *Server) handleHealth(c *echo.Context) error {
	return c.JSON(http.StatusOK, Health{Status: "ok", Version: version.String()})
}

func (s *Server) handleList(c *echo.Context) error {
	bound, err := parseBound(c.QueryParam("max"), s.maxBound)
	if err != nil {
		return writeBadRequest(c, err)
	}

	start := s.clock()
	primes := sieve.Sieve(bound)
	s.log.Debug("sieve complete", "max", bound, "count", len(primes), "elapsed", time.Since(start))

	return c.JSON(http.StatusOK, PrimeList{
		ID:        newID("primes"),
		Object:    "prime_list",
		CreatedAt: start.Unix(),
		Max:       bound,
		Count:     len(primes),
		Primes:    primes,
	})
}

func (s *Server) handleCount(c *echo.Context) error {
	bound, err := parseBound(c.QueryParam("max"), s.maxBound)
	if err != nil {
		return writeBadRequest(c, err)
	}
	return c.JSON(http.StatusOK, PrimeCount{
		ID:        newID("count"),
		Object:    "prime_count",
		CreatedAt: s.clock().Unix(),
		Max:       bound,
		Count:     sieve.Count(bound),
	})
}

func (s *Server) handleCountBatch(c *echo.Context) error {
	req, err := decodeJSON[CountBatchRequest](c.Request().Body)
	if err != nil {
		return writeBadRequest(c, err)
	}
	if len(req.Max) == 0 {
		return writeBadRequest(c, newInvalidRequest("max", "max must list at least one bound"))
	}
	if len(req.Max) > maxBatchBounds {
		return writeBadRequest(c, newInvalidRequest("max", "too many bounds in one request"))
	}

	largest := 0
	for _, n := range req.Max {
		if _, err := checkBound(n, s.maxBound); err != nil {
			return writeBadRequest(c, err)
		}
		largest = max(largest, n)
	}

	// One sieve up to the largest bound answers every smaller one by
	// binary search, since Sieve(n) is a prefix of Sieve(largest).
	primes := sieve.Sieve(largest)
	data := make([]PrimeCount, 0, len(req.Max))
	for _, n := range req.Max {
		data = append(data, PrimeCount{
			Object: "prime_count",
			Max:    n,
			Count:  countAtMost(primes, n),
		})
	}

	return c.JSON(http.StatusOK, CountBatchResponse{
		ID:     newID("counts"),
		Object: "list",
		Data:   data,
	})
}

func (s *Server) handleStream(c *echo.Context) error {
	bound, err := parseBound(c.QueryParam("max"), s.maxBound)
	if err != nil {
		return writeBadRequest(c, err)
	}
	offset := parseOffset(c.QueryParam("offset"))

	w, err := NewSSEStreamWriter(c)
	if err != nil {
		return writeError(c, http.StatusInternalServerError, "server_error", err.Error(), "", "")
	}

	ctx := c.Request().Context()
	log := s.log.With("max", bound, "offset", offset)

	if err := w.Begin(bound, offset); err != nil {
		return err
	}

	it := sieve.NewIter(bound)
	index := 0
	for p, ok := it.Next(); ok; p, ok = it.Next() {
		if err := ctx.Err(); err != nil {
			log.Debug("stream cancelled", "index", index, "error", err)
			return nil
		}
		if index >= offset {
			if err := w.Prime(index, p); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
		}
		index++
	}

	log.Debug("stream complete", "count", index, "events", w.Sent())
	return w.Done(index)
}

// countAtMost returns how many entries of the ascending slice primes are <= n.
func countAtMost(primes []int, n int) int {
	i, found := slices.BinarySearch(primes, n)
	if found {
		i++
	}
	return i
}

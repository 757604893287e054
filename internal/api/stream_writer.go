package api

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v5"
)

// flushEvery bounds how many prime events are buffered between flushes.
const flushEvery = 256

// SSEStreamWriter writes a prime traversal as server-sent events.
type SSEStreamWriter struct {
	w       io.Writer
	flusher func()
	pending int
	sent    int
}

func NewSSEStreamWriter(c *echo.Context) (*SSEStreamWriter, error) {
	res := c.Response()
	flusher, ok := res.(interface{ Flush() })
	if !ok {
		return nil, fmt.Errorf("streaming unsupported")
	}

	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set("Cache-Control", "no-cache")
	res.Header().Set("Connection", "keep-alive")

	return &SSEStreamWriter{
		w:       res,
		flusher: flusher.Flush,
	}, nil
}

// Begin announces the bound and the index of the first prime event.
func (s *SSEStreamWriter) Begin(bound, offset int) error {
	if err := s.send(streamEvent{Type: "start", Max: &bound, Index: &offset}); err != nil {
		return err
	}
	s.flush()
	return nil
}

func (s *SSEStreamWriter) Prime(index, p int) error {
	if err := s.send(streamEvent{Type: "prime", Index: &index, Prime: p}); err != nil {
		return err
	}
	s.pending++
	if s.pending >= flushEvery {
		s.flush()
	}
	return nil
}

// Done closes the stream with the total number of primes <= max.
func (s *SSEStreamWriter) Done(count int) error {
	if err := s.send(streamEvent{Type: "done", Count: &count}); err != nil {
		return err
	}
	s.flush()
	return nil
}

// Sent returns the number of events written so far.
func (s *SSEStreamWriter) Sent() int {
	return s.sent
}

func (s *SSEStreamWriter) send(ev streamEvent) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", b); err != nil {
		return err
	}
	s.sent++
	return nil
}

func (s *SSEStreamWriter) flush() {
	s.pending = 0
	if s.flusher != nil {
		s.flusher()
	}
}

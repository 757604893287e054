package api

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/labstack/echo/v5"
)

func writeBadRequest(c *echo.Context, err error) error {
	return writeError(c, http.StatusBadRequest, "invalid_request_error", err.Error(), paramOf(err), "")
}

func writeError(c *echo.Context, status int, errType, msg, param, code string) error {
	return c.JSON(status, map[string]any{
		"error": ResponseError{
			Message: msg,
			Type:    errType,
			Code:    code,
			Param:   param,
		},
	})
}

// parseBound validates a bound supplied by a client against the server limit.
func parseBound(raw string, limit int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, newInvalidRequest("max", "max is required")
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, newInvalidRequest("max", fmt.Sprintf("max must be an integer, got %q", raw))
	}
	return checkBound(n, limit)
}

func checkBound(n, limit int) (int, error) {
	if n < 0 {
		return 0, newInvalidRequest("max", fmt.Sprintf("max must be non-negative, got %d", n))
	}
	if limit > 0 && n > limit {
		return 0, newInvalidRequest("max", fmt.Sprintf("max %d exceeds server limit %d", n, limit))
	}
	return n, nil
}

func decodeJSON[T any](r io.Reader) (T, error) {
	var out T
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		return out, newInvalidRequest("", fmt.Sprintf("decode body: %v", err))
	}
	return out, nil
}

// parseOffset reads the index a stream resumes at. Anything that is not a
// non-negative integer means "from the start".
func parseOffset(v string) int {
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func newID(prefix string) string {
	return prefix + "_" + uuid.NewString()
}

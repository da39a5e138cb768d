package httputil

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParsePagination reads ?offset= and ?limit=. A missing offset is 0 and a
// missing limit is defaultLimit. The maximum limit is left to the use cases,
// which reject out-of-range values instead of clamping them.
func ParsePagination(c *gin.Context, defaultLimit int) (offset, limit int, err error) {
	offset, ok := queryInt(c, "offset", 0)
	if !ok || offset < 0 {
		return 0, 0, fmt.Errorf("invalid offset parameter: must be a non-negative integer")
	}

	limit, ok = queryInt(c, "limit", defaultLimit)
	if !ok || limit < 1 {
		return 0, 0, fmt.Errorf("invalid limit parameter: must be a positive integer")
	}

	return offset, limit, nil
}

func queryInt(c *gin.Context, key string, fallback int) (int, bool) {
	raw, present := c.GetQuery(key)
	if !present {
		return fallback, true
	}
	v, err := strconv.Atoi(raw)
	return v, err == nil
}

// Pagination is the pagination block returned by list endpoints.
type Pagination struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

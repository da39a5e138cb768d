package httputil_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/credvault/internal/httputil"
)

func parse(t *testing.T, query string) (int, int, error) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/v1/clients"+query, nil)
	return httputil.ParsePagination(c, 50)
}

func TestParsePagination_Accepts(t *testing.T) {
	cases := map[string][2]int{
		"":                     {0, 50},
		"?offset=10&limit=20":  {10, 20},
		"?limit=5000":          {0, 5000},
		"?offset=3":            {3, 50},
		"?search=acme&limit=1": {0, 1},
	}

	for query, want := range cases {
		t.Run(query, func(t *testing.T) {
			offset, limit, err := parse(t, query)
			require.NoError(t, err)
			assert.Equal(t, want[0], offset)
			assert.Equal(t, want[1], limit)
		})
	}
}

func TestParsePagination_Rejects(t *testing.T) {
	cases := map[string]string{
		"?offset=-1":  "invalid offset parameter: must be a non-negative integer",
		"?offset=abc": "invalid offset parameter: must be a non-negative integer",
		"?offset=":    "invalid offset parameter: must be a non-negative integer",
		"?limit=0":    "invalid limit parameter: must be a positive integer",
		"?limit=-5":   "invalid limit parameter: must be a positive integer",
		"?limit=ten":  "invalid limit parameter: must be a positive integer",
	}

	for query, want := range cases {
		t.Run(query, func(t *testing.T) {
			_, _, err := parse(t, query)
			assert.EqualError(t, err, want)
		})
	}
}

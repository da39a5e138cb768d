package http

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

var (
	corsAllowMethods = []string{
		http.MethodGet,
		http.MethodPost,
		http.MethodPatch,
		http.MethodDelete,
		http.MethodOptions,
	}
	corsAllowHeaders  = []string{"Authorization", "Content-Type", "X-Request-Id"}
	corsExposeHeaders = []string{"X-Request-Id", "Retry-After", "Content-Disposition"}
)

// createCORSMiddleware returns nil when the staff frontend origin list is
// disabled or holds nothing usable. Credentials are allowed, so a wildcard
// origin is refused.
func createCORSMiddleware(enabled bool, allowOriginsStr string, logger *slog.Logger) gin.HandlerFunc {
	if !enabled {
		return nil
	}

	origins, rejected := parseOrigins(allowOriginsStr)
	for _, origin := range rejected {
		logger.Warn("ignoring invalid CORS origin", slog.String("origin", origin))
	}
	if len(origins) == 0 {
		logger.Warn("CORS enabled but no valid origins configured")
		return nil
	}

	logger.Info("CORS enabled", slog.Any("origins", origins))

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     corsAllowMethods,
		AllowHeaders:     corsAllowHeaders,
		ExposeHeaders:    corsExposeHeaders,
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

// parseOrigins splits a comma separated list into distinct scheme://host
// origins. Entries that are not absolute http(s) origins are returned as rejected.
func parseOrigins(originsStr string) (origins, rejected []string) {
	entries := lo.Compact(lo.Map(strings.Split(originsStr, ","), func(s string, _ int) string {
		return strings.TrimRight(strings.TrimSpace(s), "/")
	}))

	for _, entry := range lo.Uniq(entries) {
		if validOrigin(entry) {
			origins = append(origins, entry)
		} else {
			rejected = append(rejected, entry)
		}
	}
	return origins, rejected
}

func validOrigin(origin string) bool {
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Path == "" && u.RawQuery == "" && u.User == nil
}

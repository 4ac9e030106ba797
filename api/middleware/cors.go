package middleware

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/opensight/sift/config"
)

// CORS returns gin-contrib/cors middleware that lets the browser client
// call the API from another origin.
//
// "*" in AllowOrigins accepts any origin. Otherwise only the listed
// http(s) origins are accepted; other entries are dropped with a warning,
// and an empty list rejects every cross-origin request. Preflight OPTIONS
// requests are answered with 204 and never reach a route.
func CORS(cfg config.CORSConfig) gin.HandlerFunc {
	corsCfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", RequestIDHeader},
		ExposeHeaders: []string{RequestIDHeader},
		MaxAge:        10 * time.Minute,
	}

	if slices.Contains(cfg.AllowOrigins, "*") {
		corsCfg.AllowAllOrigins = true
		return cors.New(corsCfg)
	}

	for _, origin := range cfg.AllowOrigins {
		if strings.HasPrefix(origin, "http://") || strings.HasPrefix(origin, "https://") {
			corsCfg.AllowOrigins = append(corsCfg.AllowOrigins, origin)
			continue
		}
		slog.Warn("ignoring CORS origin without http(s) scheme", "origin", origin)
	}
	if len(corsCfg.AllowOrigins) == 0 {
		corsCfg.AllowOriginFunc = func(string) bool { return false }
	}
	return cors.New(corsCfg)
}

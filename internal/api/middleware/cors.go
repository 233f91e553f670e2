package middleware

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/termquest/internal/infrastructure/tracing"
)

// Verbs and request headers used by the session API and the browser terminal.
var (
	sessionMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	sessionHeaders = []string{"Content-Type", "Content-Length", "Accept", "Origin", tracing.HeaderTraceID, tracing.HeaderSpanID}
)

// CORSConfig selects which browser origins may drive game sessions.
type CORSConfig struct {
	Origins     []string
	Credentials bool
	MaxAge      time.Duration
}

// CORS lets cfg.Origins call the session API and read the trace ids of
// each response. No origins, or "*", admits every origin, and credentials
// are then never allowed.
func CORS(cfg CORSConfig) gin.HandlerFunc {
	c := cors.Config{
		AllowMethods:  sessionMethods,
		AllowHeaders:  sessionHeaders,
		ExposeHeaders: []string{tracing.HeaderTraceID, tracing.HeaderSpanID},
		MaxAge:        cfg.MaxAge,
	}
	if len(cfg.Origins) == 0 || slices.Contains(cfg.Origins, "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = cfg.Origins
		c.AllowCredentials = cfg.Credentials
	}
	return cors.New(c)
}

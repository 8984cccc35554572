package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tithe-dev/tithe/internal/config"
)

const usage = `POST /tithing with multipart/form-data:
  - file: Wells Fargo CSV export
Query params:
  - start: YYYY-MM-DD (required)
  - end:   YYYY-MM-DD (required, inclusive)
  - desc_contains: default 'MILLWORK DEV PAYROLL'
  - rate: tithe rate, default 0.10
  - case_insensitive: true/false, default true
  - format: 'json' or 'csv', default 'json'
`

// NewRouter builds the gin engine with all routes and middleware.
func NewRouter(cfg *config.Config, log zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestID())
	r.Use(requestLogger(log))

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding"},
	}))

	h := &handler{cfg: cfg}

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, usage)
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/tithing", h.tithing)

	return r
}

// requestID echoes an incoming X-Request-ID or mints one.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Header("X-Request-ID", id)
		c.Set("request_id", id)
		c.Next()
	}
}

// requestLogger emits one structured line per request.
func requestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", c.GetString("request_id")).
			Msg("HTTP request")
	}
}

package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sannyeinphyo/internlink-sub001/pkg/logger"
)

// LoggerMiddleware logs every request once it has been handled. It expects
// RequestIDMiddleware to run first.
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if raw := c.Request.URL.RawQuery; raw != "" {
			path += "?" + raw
		}

		c.Next()

		logger.LogRequest(c.Request.Context(), c.Request.Method, path, c.Writer.Status(), time.Since(start), c.ClientIP())
	}
}

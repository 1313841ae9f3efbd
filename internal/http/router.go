package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter wires the Gin router with middlewares and the negotiation routes.
func NewRouter(logger *zap.Logger, negH *NegotiationHandler) *gin.Engine {
	r := gin.New()

	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	r.GET("/locations", negH.ListLocations)
	r.POST("/session", negH.StartSession)

	session := r.Group("/session/:id", SessionTokenMiddleware(negH.tokens))
	session.GET("", negH.GetSession)
	session.POST("/message", negH.PostMessage)
	session.POST("/reset", negH.ResetSession)

	return r
}

// zapLoggerMiddleware logs one structured line per request.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware forces Content-Type: application/json on responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}

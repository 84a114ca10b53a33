package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracing starts a server span per request, named after the route template.
func Tracing(serviceName string) gin.HandlerFunc {
	return otelgin.Middleware(serviceName)
}

// SpanEnricher adds request_id, user_id and auth_level to the active span
// after the rest of the chain ran, and marks refused cancellations (403)
// as failed. Place it right after Tracing.
func SpanEnricher() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		span := trace.SpanFromContext(c.Request.Context())
		if !span.IsRecording() {
			return
		}
		if requestID := c.GetString(RequestIDKey); requestID != "" {
			span.SetAttributes(attribute.String("request_id", requestID))
		}
		if session, ok := GetSession(c); ok {
			span.SetAttributes(
				attribute.Int64("user_id", int64(session.UserID)),
				attribute.String("auth_level", session.Level.String()),
			)
		}
		if c.Writer.Status() == http.StatusForbidden {
			span.SetStatus(codes.Error, http.StatusText(http.StatusForbidden))
		}
	}
}

package middleware

import (
	"net/http"
	"time"

	"github.com/wakil69/BuildingManagementSaas-sub003/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ErrorHandler answers errors attached with c.Error by a generic 500 unless a
// handler already wrote a response. The real error only goes to the log.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		for _, e := range c.Errors {
			withCaller(log.Error(), c).
				Str("route", c.FullPath()).
				Err(e.Err).
				Msg("request failed")
		}
		if !c.Writer.Written() {
			c.AbortWithStatusJSON(http.StatusInternalServerError, apierror.New(apierror.Internal))
		}
	}
}

// Recovery turns a panic into the same generic 500.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			withCaller(log.Error(), c).
				Str("route", c.FullPath()).
				Interface("panic", r).
				Msg("panic recovered")
			if !c.Writer.Written() {
				c.AbortWithStatusJSON(http.StatusInternalServerError, apierror.New(apierror.Internal))
				return
			}
			c.Abort()
		}()
		c.Next()
	}
}

// Logger writes one line per request. 4xx are warnings, 5xx errors; health
// checks are only logged when they fail.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		if c.FullPath() == "/health" && status < http.StatusInternalServerError {
			return
		}

		var ev *zerolog.Event
		switch {
		case status >= http.StatusInternalServerError:
			ev = log.Error()
		case status >= http.StatusBadRequest:
			ev = log.Warn()
		default:
			ev = log.Info()
		}
		withCaller(ev, c).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("request")
	}
}

// withCaller tags a log event with the request id and, once JWTAuth ran, the
// tenant and user of the caller.
func withCaller(ev *zerolog.Event, c *gin.Context) *zerolog.Event {
	ev = ev.Str("request_id", c.GetString(RequestIDKey))
	if claims := GetClaims(c); claims != nil {
		ev = ev.Str("company_id", claims.CompanyID).Str("user_id", claims.UserID)
	}
	return ev
}

package middleware

import (
	"fmt"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/charlesng35/collabhub/pkg/errors"
	"github.com/charlesng35/collabhub/pkg/logger"
	"github.com/charlesng35/collabhub/pkg/response"
)

// Recovery converts panics into a 500 response, logs them and forwards them
// to Sentry. Sentry calls are no-ops until sentry.Init has run.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.WithModule("http").Error("panic",
					zap.String("path", c.Request.URL.Path),
					zap.Any("error", r),
					zap.Stack("stack"),
				)
				sentry.WithScope(func(scope *sentry.Scope) {
					scope.SetRequest(c.Request)
					scope.SetTag("route", c.FullPath())
					sentry.CurrentHub().Recover(r)
				})
				response.Error(c, errors.ErrInternalServer)
				c.Abort()
			}
		}()
		c.Next()
	}
}

// ReportErrors forwards errors attached to server-error responses to Sentry.
func ReportErrors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Status() < http.StatusInternalServerError || len(c.Errors) == 0 {
			return
		}
		for _, ginErr := range c.Errors {
			err := ginErr.Err
			sentry.WithScope(func(scope *sentry.Scope) {
				scope.SetRequest(c.Request)
				scope.SetTag("route", c.FullPath())
				if userID := c.GetString(CtxUserIDKey); userID != "" {
					scope.SetUser(sentry.User{ID: userID})
				}
				sentry.CaptureException(err)
			})
		}
	}
}

// NotFoundHandler returns a JSON 404 response for unknown routes.
func NotFoundHandler(c *gin.Context) {
	response.Error(c, errors.NewNotFound("ROUTE_NOT_FOUND", fmt.Sprintf("route %s not found", c.Request.URL.Path)))
}

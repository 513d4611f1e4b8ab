package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/mood-diary/internal/application"
	"github.com/oksasatya/mood-diary/internal/interface/middleware"
	"github.com/oksasatya/mood-diary/pkg/helpers"
	"github.com/oksasatya/mood-diary/pkg/response"
	"github.com/oksasatya/mood-diary/pkg/validation"
)

// writeError answers typed errors with their own status; anything else is logged and hidden behind a 500.
func writeError(c *gin.Context, logger logrus.FieldLogger, err error) {
	var appErr *application.Error
	if errors.As(err, &appErr) {
		response.Error(c, appErr.Status, appErr.Message)
		return
	}
	helpers.LogError(logger, "request failed", err, logrus.Fields{
		"request_id": c.GetString("request_id"),
		"path":       c.FullPath(),
	})
	response.Error(c, http.StatusInternalServerError, "internal server error")
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Validation(c, validation.ToDetails(err))
		return false
	}
	return true
}

func bindQuery(c *gin.Context, dst any) bool {
	if err := c.ShouldBindQuery(dst); err != nil {
		response.Validation(c, validation.ToDetails(err))
		return false
	}
	return true
}

func userID(c *gin.Context) string {
	return c.GetString(middleware.CtxUserIDKey)
}

package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type HTTPError struct {
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, message string) {
	c.JSON(status, HTTPError{
		Message: message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Write(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context, message string) {
	Write(c, http.StatusNotFound, message)
}

func Internal(c *gin.Context, message string) {
	Write(c, http.StatusInternalServerError, message)
}

func Unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, HTTPError{Message: message})
}

func Forbidden(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusForbidden, HTTPError{Message: message})
}

// StatusOf maps an error to the HTTP status it is surfaced with.
func StatusOf(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes err as a JSON message. Server side failures are logged with
// their cause and answered with a generic message.
func Respond(c *gin.Context, err error) {
	status := StatusOf(err)

	if status >= http.StatusInternalServerError {
		logrus.WithFields(logrus.Fields{
			"request_id": c.Writer.Header().Get("X-Request-ID"),
			"method":     c.Request.Method,
			"path":       c.FullPath(),
		}).WithError(err).Error("request failed")

		message := "Erro interno."
		var be BusinessError
		if errors.As(err, &be) && be.Kind == KindGateway && be.Message != "" {
			message = be.Message
		}
		Write(c, status, message)
		return
	}

	var be BusinessError
	if errors.As(err, &be) && be.Message != "" {
		Write(c, status, be.Message)
		return
	}
	Write(c, status, http.StatusText(status))
}

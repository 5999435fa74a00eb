package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/emilythestrangee/reddit-api/internal/apperror"
)

// ErrorHandler translates the first error recorded during the request
// into a status code and JSON body. Anything that isn't an
// *apperror.Error becomes a bare 500 with no detail leaked.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors[0].Err
		var appErr *apperror.Error
		if !errors.As(err, &appErr) {
			log.Error().
				Err(err).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Msg("unhandled error")
			appErr = apperror.ErrInternal
		}

		c.JSON(appErr.Status, appErr)
	}
}

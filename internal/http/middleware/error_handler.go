package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ignatzorin/consulting-backend/internal/logger"
	"github.com/ignatzorin/consulting-backend/internal/pkg/apperror"
)

// ErrorHandler централизованно превращает ошибки слоя бизнес-логики в ответы.
// AppError несёт собственный статус и код; всё остальное маскируется
// как внутренняя ошибка.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.HTTPStatus >= http.StatusInternalServerError && logger.Log != nil {
				logger.Log.WithFields(logrus.Fields{
					"error":  appErr.Error(),
					"path":   c.Request.URL.Path,
					"method": c.Request.Method,
				}).Error("request error")
			}

			body := gin.H{
				"error": appErr.Message,
				"code":  string(appErr.Code),
			}
			// Временные конфликты помечаются явно: клиент может повторить запрос.
			if appErr.Retryable {
				body["retryable"] = true
			}
			c.JSON(appErr.HTTPStatus, body)
			return
		}

		if logger.Log != nil {
			logger.Log.WithFields(logrus.Fields{
				"error":  err.Error(),
				"path":   c.Request.URL.Path,
				"method": c.Request.Method,
			}).Error("unhandled request error")
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "внутренняя ошибка сервера",
			"code":  string(apperror.ErrCodeInternal),
		})
	}
}

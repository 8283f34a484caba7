package response

import (
	"net/http"

	"reviewdesk/internal/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// Fail writes the envelope for err. Typed application errors keep their code
// and status; anything else is logged and reported as an internal error.
func Fail(c *gin.Context, err error) {
	appErr, ok := apperrors.As(err)
	if !ok {
		_ = c.Error(err)
		Error(c, http.StatusInternalServerError, string(apperrors.CodeInternal), "Internal error")
		return
	}

	if appErr.Details != nil {
		ErrorWithDetails(c, appErr.HTTPStatus(), string(appErr.Code), appErr.Message, appErr.Details)
		return
	}
	Error(c, appErr.HTTPStatus(), string(appErr.Code), appErr.Message)
}

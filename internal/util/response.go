package util

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Response struct {
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
	Warning string      `json:"warning,omitempty"`
}

func Success(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Data:    data,
		Message: message,
	})
}

// SuccessWithWarning reports a completed request that still produced a
// diagnostic, such as an out-of-range step choice.
func SuccessWithWarning(c *gin.Context, data interface{}, message string, warning error) {
	zap.S().Warnf("API warning: %v", warning)

	c.JSON(http.StatusOK, Response{
		Code:    1,
		Data:    data,
		Message: message,
		Warning: warning.Error(),
	})
}

func Error(c *gin.Context, code int, err interface{}) {
	msg := ""
	switch e := err.(type) {
	case string:
		msg = e
	case error:
		msg = e.Error()
	default:
		msg = "Internal Server Error"
	}

	zap.S().Errorf("API Error: %s", msg)

	c.JSON(code, Response{
		Code:    -1,
		Data:    nil,
		Message: msg,
	})
}

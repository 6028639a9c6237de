package util

import (
	"net/http"

	"github.com/tuanminh7/website-lms/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Mọi API đều trả về JSON dạng {success: bool, message?: string, ...payload}.

func Success(c *gin.Context, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

func SuccessMessage(c *gin.Context, message string, payload gin.H) {
	body := gin.H{"success": true, "message": message}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

func Fail(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "message": message})
}

func BadRequest(c *gin.Context, message string) {
	Fail(c, http.StatusBadRequest, message)
}

func Unauthorized(c *gin.Context) {
	Fail(c, http.StatusUnauthorized, "Vui lòng đăng nhập để tiếp tục")
}

func Forbidden(c *gin.Context, message string) {
	Fail(c, http.StatusForbidden, message)
}

func NotFound(c *gin.Context, message string) {
	Fail(c, http.StatusNotFound, message)
}

// LogInternalError ghi log lỗi bất ngờ và trả về thông báo chung, không bao
// giờ lộ chi tiết lỗi ra ngoài.
func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("internal server error",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	Fail(c, http.StatusInternalServerError, "Đã xảy ra lỗi, vui lòng thử lại sau")
}

package middleware

import (
	"github.com/tuanminh7/website-lms/internal/config"
	"github.com/tuanminh7/website-lms/internal/model"
	"github.com/tuanminh7/website-lms/internal/util"

	"github.com/gin-gonic/gin"
)

// Session đọc cookie phiên nếu có và đặt claims vào context. Cookie thiếu
// hoặc chữ ký sai thì request đi tiếp như khách chưa đăng nhập; các route
// cần đăng nhập chặn ở LoginRequired.
func Session(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(util.SessionCookieName)
		if err == nil && token != "" {
			if claims, err := util.ParseSession(token, cfg.Session.Secret); err == nil {
				util.PutSession(c, claims)
			}
		}
		c.Next()
	}
}

func LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if util.GetSession(c) == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RoleRequired chặn route theo vai trò, dùng sau LoginRequired.
func RoleRequired(role model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := util.GetSession(c)
		if claims == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}
		if claims.Role != role {
			util.Forbidden(c, "Bạn không có quyền truy cập chức năng này")
			c.Abort()
			return
		}
		c.Next()
	}
}

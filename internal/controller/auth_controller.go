package controller

import (
	"errors"

	"github.com/tuanminh7/website-lms/internal/config"
	"github.com/tuanminh7/website-lms/internal/service"
	"github.com/tuanminh7/website-lms/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	auth *service.AuthService
	cfg  *config.Config
}

func NewAuthController(auth *service.AuthService, cfg *config.Config) *AuthController {
	return &AuthController{auth: auth, cfg: cfg}
}

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Email    string `json:"email" binding:"required"`
}

// Register xử lý POST /api/register. Đăng ký công khai chỉ tạo học sinh.
func (ctl *AuthController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, "Vui lòng điền đầy đủ thông tin đăng ký")
		return
	}

	user, err := ctl.auth.Register(req.Username, req.Password, req.Email, "")
	if err != nil {
		if errors.Is(err, util.ErrUsernameTaken) || errors.Is(err, util.ErrEmailTaken) {
			util.BadRequest(c, err.Error())
			return
		}
		util.BadRequest(c, err.Error())
		return
	}

	util.SuccessMessage(c, "Đăng ký thành công, vui lòng đăng nhập", gin.H{
		"user": gin.H{"id": user.ID, "username": user.Username, "role": user.Role},
	})
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login xử lý POST /api/login và phát cookie phiên.
func (ctl *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, "Vui lòng nhập tên đăng nhập và mật khẩu")
		return
	}

	user, err := ctl.auth.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, util.ErrInvalidCredentials) {
			util.Fail(c, 401, err.Error())
			return
		}
		util.LogInternalError(c, err)
		return
	}

	claims := &util.SessionClaims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
	}
	if err := util.SaveSession(c, claims, ctl.cfg); err != nil {
		util.LogInternalError(c, err)
		return
	}

	util.SuccessMessage(c, "Đăng nhập thành công", gin.H{
		"user": gin.H{"id": user.ID, "username": user.Username, "role": user.Role},
	})
}

// Logout xóa cookie phiên.
func (ctl *AuthController) Logout(c *gin.Context) {
	util.ClearSessionCookie(c, ctl.cfg)
	util.SuccessMessage(c, "Đã đăng xuất", nil)
}

// Profile trả về thông tin tài khoản đang đăng nhập.
func (ctl *AuthController) Profile(c *gin.Context) {
	claims := util.GetSession(c)
	user, err := ctl.auth.GetUser(claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			util.Unauthorized(c)
			return
		}
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, gin.H{
		"user": gin.H{
			"id":         user.ID,
			"username":   user.Username,
			"email":      user.Email,
			"role":       user.Role,
			"created_at": user.CreatedAt,
		},
	})
}

package util

import (
	"time"

	"github.com/tuanminh7/website-lms/internal/config"
	"github.com/tuanminh7/website-lms/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	SessionCookieName = "lms_session"
	sessionContextKey = "session"
)

// SessionClaims là toàn bộ trạng thái phiên, ký HS256 và đặt trong cookie
// HttpOnly; server không giữ session store. ExamStarts ánh xạ khóa tổng hợp
// "khối:mã đề" sang mốc bắt đầu làm bài (unix giây); cookie bị sửa tay sẽ
// không qua được bước xác thực chữ ký và bị coi như chưa đăng nhập.
type SessionClaims struct {
	UserID     string           `json:"user_id"`
	Username   string           `json:"username"`
	Role       model.UserRole   `json:"role"`
	ExamStarts map[string]int64 `json:"exam_starts,omitempty"`
	jwt.RegisteredClaims
}

func examKey(grade, examID string) string {
	return grade + ":" + examID
}

func (s *SessionClaims) ExamStart(grade, examID string) (time.Time, bool) {
	ts, ok := s.ExamStarts[examKey(grade, examID)]
	if !ok {
		return time.Time{}, false
	}
	return time.Unix(ts, 0), true
}

func (s *SessionClaims) SetExamStart(grade, examID string, start time.Time) {
	if s.ExamStarts == nil {
		s.ExamStarts = make(map[string]int64)
	}
	s.ExamStarts[examKey(grade, examID)] = start.Unix()
}

func (s *SessionClaims) ClearExamStart(grade, examID string) {
	delete(s.ExamStarts, examKey(grade, examID))
}

// SignSession ký lại toàn bộ claims với hạn mới; mỗi lần ghi cookie là một
// lần gia hạn phiên.
func SignSession(claims *SessionClaims, secret string, lifetime time.Duration) (string, error) {
	now := time.Now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(lifetime))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseSession(tokenString, secret string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrTokenInvalidClaims
}

func GetSession(c *gin.Context) *SessionClaims {
	v, exists := c.Get(sessionContextKey)
	if !exists {
		return nil
	}
	claims, ok := v.(*SessionClaims)
	if !ok {
		return nil
	}
	return claims
}

func PutSession(c *gin.Context, claims *SessionClaims) {
	c.Set(sessionContextKey, claims)
}

// SaveSession ghi claims (đã thay đổi) ngược lại cookie của response.
func SaveSession(c *gin.Context, claims *SessionClaims, cfg *config.Config) error {
	token, err := SignSession(claims, cfg.Session.Secret, cfg.Session.Lifetime)
	if err != nil {
		return err
	}
	c.SetCookie(SessionCookieName, token, int(cfg.Session.Lifetime.Seconds()), "/", "", cfg.Session.CookieSecure, true)
	return nil
}

func ClearSessionCookie(c *gin.Context, cfg *config.Config) {
	c.SetCookie(SessionCookieName, "", -1, "/", "", cfg.Session.CookieSecure, true)
}

package service

import (
	"errors"
	"strings"
	"time"

	"github.com/tuanminh7/website-lms/internal/model"
	"github.com/tuanminh7/website-lms/internal/repository"
	"github.com/tuanminh7/website-lms/internal/util"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	users  *repository.UserRepository
	logger *zap.Logger
}

func NewAuthService(users *repository.UserRepository, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, logger: logger}
}

// Register tạo tài khoản mới. Đăng ký công khai luôn tạo vai trò học sinh;
// tài khoản giáo viên được cấp sẵn trong dữ liệu.
func (s *AuthService) Register(username, password, email string, role model.UserRole) (*model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || password == "" || email == "" {
		return nil, errors.New("vui lòng điền đầy đủ thông tin")
	}
	if len(password) < 6 {
		return nil, errors.New("mật khẩu phải có ít nhất 6 ký tự")
	}
	if role != model.Teacher {
		role = model.Student
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:  username,
		Password:  string(hash),
		Email:     email,
		Role:      role,
		CreatedAt: time.Now(),
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}

	s.logger.Info("tài khoản mới", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return user, nil
}

// Login kiểm tra thông tin đăng nhập. Mật khẩu lưu dạng hash bcrypt; bản
// ghi demo cũ còn lưu plaintext nên so sánh trực tiếp khi không phải hash.
func (s *AuthService) Login(username, password string) (*model.User, error) {
	user, err := s.users.FindByUsername(strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, util.ErrNotFound) {
			return nil, util.ErrInvalidCredentials
		}
		return nil, err
	}

	if strings.HasPrefix(user.Password, "$2") {
		if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
			return nil, util.ErrInvalidCredentials
		}
	} else if user.Password != password {
		return nil, util.ErrInvalidCredentials
	}

	return user, nil
}

func (s *AuthService) GetUser(id string) (*model.User, error) {
	return s.users.FindByID(id)
}

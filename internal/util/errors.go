package util

import "errors"

var (
	ErrUsernameTaken      = errors.New("tên đăng nhập đã tồn tại")
	ErrEmailTaken         = errors.New("email đã được sử dụng")
	ErrInvalidCredentials = errors.New("tên đăng nhập hoặc mật khẩu không đúng")
	ErrNotFound           = errors.New("không tìm thấy dữ liệu")
	ErrPermissionDenied   = errors.New("bạn không có quyền thực hiện thao tác này")
	ErrDuplicateCourse    = errors.New("bạn đã có khóa học trùng tên này")

	// ErrNoExamSession: không có mốc thời gian làm bài trong session
	// (chưa bắt đầu, hoặc đã nộp rồi và thử nộp lại).
	ErrNoExamSession = errors.New("phiên làm bài đã hết hạn, vui lòng làm lại")
	// ErrExamTimeExpired: nộp bài sau khi hết thời gian làm bài.
	ErrExamTimeExpired = errors.New("đã hết thời gian làm bài, không thể nộp")
)

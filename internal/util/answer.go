package util

import (
	"strings"

	"github.com/tuanminh7/website-lms/internal/model"
)

// NormalizeAnswerToken đưa bài làm dạng "a. Hà Nội" / " B " về ký tự đáp án
// chuẩn "A", "B". Cắt phần sau dấu chấm đầu tiên rồi viết hoa.
func NormalizeAnswerToken(value string) string {
	token := strings.TrimSpace(value)
	if token == "" {
		return ""
	}
	if i := strings.Index(token, "."); i >= 0 {
		token = token[:i]
	}
	return strings.ToUpper(strings.TrimSpace(token))
}

// NormalizeAnswerSet chuẩn hóa đáp án đúng thành tập ký tự để so khớp.
func NormalizeAnswerSet(key model.AnswerKey) map[string]bool {
	set := make(map[string]bool, len(key))
	for _, v := range key {
		if token := NormalizeAnswerToken(v); token != "" {
			set[token] = true
		}
	}
	return set
}

// FormatAnswerKey hiển thị đáp án đúng trong phần chữa bài.
func FormatAnswerKey(key model.AnswerKey) string {
	parts := make([]string, 0, len(key))
	for _, v := range key {
		if s := strings.TrimSpace(v); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

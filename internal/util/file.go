package util

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var forumExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".pdf": true, ".doc": true, ".docx": true, ".txt": true,
	".zip": true, ".rar": true,
}

var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
}

func AllowedForumFile(filename string) bool {
	return forumExtensions[strings.ToLower(filepath.Ext(filename))]
}

// AllowedExamFile: đề thi chỉ nhận file .docx.
func AllowedExamFile(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".docx")
}

// FileKind phân loại đính kèm để client chọn cách hiển thị.
func FileKind(filename string) string {
	if imageExtensions[strings.ToLower(filepath.Ext(filename))] {
		return "image"
	}
	return "file"
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// SanitizeFilename bỏ đường dẫn và ký tự nguy hiểm khỏi tên file người dùng
// gửi lên.
func SanitizeFilename(filename string) string {
	base := filepath.Base(filename)
	base = strings.ReplaceAll(base, " ", "_")
	base = unsafeFilenameChars.ReplaceAllString(base, "")
	if base == "" || base == "." || base == ".." {
		base = "file"
	}
	return base
}

// UniqueFilename thêm tiền tố ngẫu nhiên tránh trùng tên khi lưu.
func UniqueFilename(filename string) string {
	return uuid.New().String()[:8] + "_" + SanitizeFilename(filename)
}

package service

import (
	"errors"
	"strings"

	"github.com/tuanminh7/website-lms/internal/model"
	"github.com/tuanminh7/website-lms/internal/repository"
)

type DocumentService struct {
	documents *repository.DocumentRepository
}

func NewDocumentService(documents *repository.DocumentRepository) *DocumentService {
	return &DocumentService{documents: documents}
}

// List trả về tài liệu, lọc theo khối và loại nếu có.
func (s *DocumentService) List(grade, docType string) ([]model.Document, error) {
	docs, err := s.documents.All()
	if err != nil {
		return nil, err
	}
	filtered := make([]model.Document, 0, len(docs))
	for _, d := range docs {
		if grade != "" && d.Grade != grade {
			continue
		}
		if docType != "" && d.DocType != docType {
			continue
		}
		filtered = append(filtered, d)
	}
	return filtered, nil
}

// Add thêm một liên kết tài liệu, tự nhận diện loại liên kết để client chọn
// cách nhúng (YouTube nhúng player, Drive nhúng preview).
func (s *DocumentService) Add(title, url, description, grade, docType string) (*model.Document, error) {
	title = strings.TrimSpace(title)
	url = strings.TrimSpace(url)
	if title == "" || url == "" {
		return nil, errors.New("vui lòng nhập tên và đường dẫn tài liệu")
	}

	doc := &model.Document{
		Title:       title,
		Type:        "link",
		URL:         url,
		Description: strings.TrimSpace(description),
		Grade:       grade,
		DocType:     docType,
		LinkType:    detectLinkType(url),
	}
	if err := s.documents.Add(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func detectLinkType(url string) string {
	lower := strings.ToLower(url)
	switch {
	case strings.Contains(lower, "youtube.com") || strings.Contains(lower, "youtu.be"):
		return "youtube"
	case strings.Contains(lower, "drive.google.com"):
		return "drive"
	default:
		return "other"
	}
}

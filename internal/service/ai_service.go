package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/tuanminh7/website-lms/internal/config"

	"go.uber.org/zap"
)

// AIService chuyển câu hỏi của học sinh sang API sinh văn bản Gemini và
// làm sạch markdown trong câu trả lời trước khi hiển thị.
type AIService struct {
	cfg    config.AIConfig
	client *http.Client
	logger *zap.Logger
}

func NewAIService(cfg config.AIConfig, logger *zap.Logger) *AIService {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-1.5-flash"
	}
	return &AIService{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
		logger: logger,
	}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Ask gửi câu hỏi và trả về câu trả lời thuần văn bản. Chưa cấu hình API
// key thì trả lời bằng thông báo hướng dẫn thay vì lỗi để trang chat vẫn
// dùng được.
func (s *AIService) Ask(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", errors.New("vui lòng nhập câu hỏi")
	}
	if s.cfg.APIKey == "" {
		return "Trợ lý AI chưa được cấu hình, vui lòng liên hệ quản trị viên.", nil
	}

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: question}}}},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		strings.TrimRight(s.cfg.BaseURL, "/"), s.cfg.Model, s.cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn("gọi API AI thất bại", zap.Error(err))
		return "", errors.New("không kết nối được trợ lý AI, vui lòng thử lại sau")
	}
	defer resp.Body.Close()

	var parsed geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", errors.New("trợ lý AI trả về dữ liệu không đọc được")
	}
	if resp.StatusCode != http.StatusOK || parsed.Error != nil {
		message := ""
		if parsed.Error != nil {
			message = parsed.Error.Message
		}
		s.logger.Warn("API AI trả về lỗi",
			zap.Int("status", resp.StatusCode),
			zap.String("message", message),
		)
		return "", errors.New("trợ lý AI đang gặp sự cố, vui lòng thử lại sau")
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("trợ lý AI không có câu trả lời cho câu hỏi này")
	}

	var sb strings.Builder
	for _, part := range parsed.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return StripMarkdown(sb.String()), nil
}

var (
	mdBold      = regexp.MustCompile(`\*\*(.*?)\*\*`)
	mdItalic    = regexp.MustCompile(`\*(.*?)\*`)
	mdCodeBlock = regexp.MustCompile("```[a-zA-Z]*\n?")
	mdInline    = regexp.MustCompile("`([^`]*)`")
	mdHeading   = regexp.MustCompile(`(?m)^#{1,6}\s*`)
	mdBullet    = regexp.MustCompile(`(?m)^\s*[-*]\s+`)
)

// StripMarkdown gỡ ký hiệu markdown thường gặp trong câu trả lời của model
// để hiển thị dạng văn bản thuần.
func StripMarkdown(text string) string {
	text = mdCodeBlock.ReplaceAllString(text, "")
	text = mdInline.ReplaceAllString(text, "$1")
	text = mdBold.ReplaceAllString(text, "$1")
	text = mdItalic.ReplaceAllString(text, "$1")
	text = mdHeading.ReplaceAllString(text, "")
	text = mdBullet.ReplaceAllString(text, "- ")
	return strings.TrimSpace(text)
}

package service

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tuanminh7/website-lms/internal/model"
	"github.com/tuanminh7/website-lms/pkg/docx"
)

// ExamParseError mô tả lỗi khi đọc đề từ file Word. Reason là thông báo cho
// giáo viên; QuestionNumber là câu gây lỗi nếu xác định được.
type ExamParseError struct {
	Reason          string
	QuestionNumber  int
	MultipleAnswers bool
}

func (e *ExamParseError) Error() string {
	if e.QuestionNumber > 0 {
		return fmt.Sprintf("câu %d: %s", e.QuestionNumber, e.Reason)
	}
	return e.Reason
}

var (
	questionPattern    = regexp.MustCompile(`(?i)^câu\s*(\d+)\s*[:.]?\s*(.+)`)
	optionPattern      = regexp.MustCompile(`(?i)^([A-D])[.)]\s*(.+)`)
	answerPattern      = regexp.MustCompile(`(?i)^đáp\s*án\s*[:\-]\s*([A-D])\s*$`)
	explanationPattern = regexp.MustCompile(`(?i)^giải\s*thích\s*[:\-]\s*(.+)`)
)

// Cụm từ đánh dấu đáp án đúng ngay trong nội dung lựa chọn.
var correctMarkers = []string{
	"(đúng)", "(đáp án đúng)", "(correct)", "(true)", "[đúng]",
}

// ParseExamParagraphs quét các đoạn văn theo thứ tự, gom dần từng câu hỏi.
// Dòng "Câu N" chốt câu trước và mở câu mới; dòng "A." thêm lựa chọn; đáp án
// đúng nhận diện qua cụm từ đánh dấu, gạch chân, hoặc dòng "Đáp án:". Chế độ
// một đáp án gặp câu có nhiều đáp án sẽ trả về ExamParseError có cờ
// MultipleAnswers để bên gọi thử lại ở chế độ nhiều đáp án.
func ParseExamParagraphs(paragraphs []docx.Paragraph, allowMultiple bool) ([]model.Question, error) {
	var questions []model.Question
	var current *questionBuilder

	finalize := func() error {
		if current == nil {
			return nil
		}
		q, err := current.build(allowMultiple)
		if err != nil {
			return err
		}
		q.ID = len(questions) + 1
		questions = append(questions, *q)
		current = nil
		return nil
	}

	for _, para := range paragraphs {
		line := strings.TrimSpace(para.Text)
		if line == "" {
			continue
		}

		if m := questionPattern.FindStringSubmatch(line); m != nil {
			if err := finalize(); err != nil {
				return nil, err
			}
			number, _ := strconv.Atoi(m[1])
			current = &questionBuilder{
				number:  number,
				text:    strings.TrimSpace(m[2]),
				options: make(map[string]string),
				correct: make(map[string]bool),
			}
			continue
		}

		if current == nil {
			// Nội dung trước câu đầu tiên (tiêu đề, hướng dẫn) bị bỏ qua.
			continue
		}

		if m := optionPattern.FindStringSubmatch(line); m != nil {
			letter := strings.ToUpper(m[1])
			text := strings.TrimSpace(m[2])

			if marked, stripped := stripCorrectMarker(text); marked {
				current.correct[letter] = true
				text = stripped
			}
			if optionLetterUnderlined(para, letter) {
				current.correct[letter] = true
			}
			current.options[letter] = text
			continue
		}

		if m := answerPattern.FindStringSubmatch(line); m != nil {
			letter := strings.ToUpper(m[1])
			if _, ok := current.options[letter]; ok {
				current.correct[letter] = true
			} else {
				current.pendingAnswer = letter
			}
			continue
		}

		if m := explanationPattern.FindStringSubmatch(line); m != nil {
			current.explanation = strings.TrimSpace(m[1])
			continue
		}

		// Dòng không khớp mẫu nào là phần tiếp theo của đề bài.
		current.text += " " + line
	}

	if err := finalize(); err != nil {
		return nil, err
	}

	if len(questions) == 0 {
		return nil, &ExamParseError{Reason: "không tìm thấy câu hỏi nào trong file"}
	}
	return questions, nil
}

type questionBuilder struct {
	number        int
	text          string
	options       map[string]string
	correct       map[string]bool
	explanation   string
	pendingAnswer string
}

func (b *questionBuilder) build(allowMultiple bool) (*model.Question, error) {
	// "Đáp án: X" xuất hiện trước khi lựa chọn X được khai báo vẫn tính,
	// miễn là lựa chọn đó tồn tại lúc chốt câu.
	if b.pendingAnswer != "" {
		if _, ok := b.options[b.pendingAnswer]; ok {
			b.correct[b.pendingAnswer] = true
		}
	}

	if strings.TrimSpace(b.text) == "" {
		return nil, &ExamParseError{Reason: "câu hỏi không có nội dung", QuestionNumber: b.number}
	}
	if len(b.options) < 2 {
		return nil, &ExamParseError{Reason: "câu hỏi phải có ít nhất 2 lựa chọn", QuestionNumber: b.number}
	}
	if len(b.correct) == 0 {
		return nil, &ExamParseError{Reason: "không xác định được đáp án đúng", QuestionNumber: b.number}
	}
	if len(b.correct) > 1 && !allowMultiple {
		return nil, &ExamParseError{
			Reason:          "câu hỏi có nhiều hơn một đáp án đúng",
			QuestionNumber:  b.number,
			MultipleAnswers: true,
		}
	}

	var answers model.AnswerKey
	for _, letter := range []string{"A", "B", "C", "D"} {
		if b.correct[letter] {
			answers = append(answers, letter)
		}
	}

	return &model.Question{
		Number:        b.number,
		Question:      strings.TrimSpace(b.text),
		Options:       b.options,
		CorrectAnswer: answers,
		Explanation:   b.explanation,
		Type:          model.QuestionStandard,
	}, nil
}

// stripCorrectMarker kiểm tra và gỡ cụm từ đánh dấu đáp án đúng khỏi nội
// dung lựa chọn.
func stripCorrectMarker(text string) (bool, string) {
	lower := strings.ToLower(text)
	for _, marker := range correctMarkers {
		if i := strings.Index(lower, marker); i >= 0 {
			stripped := text[:i] + text[i+len(marker):]
			return true, strings.TrimSpace(stripped)
		}
	}
	return false, text
}

// optionLetterUnderlined xét run mở đầu bằng ký tự lựa chọn: giáo viên hay
// đánh dấu đáp án đúng bằng cách gạch chân chữ cái trong Word.
func optionLetterUnderlined(para docx.Paragraph, letter string) bool {
	for _, run := range para.Runs {
		text := strings.TrimSpace(run.Text)
		if text == "" {
			continue
		}
		if strings.HasPrefix(strings.ToUpper(text), letter) {
			return run.Underlined
		}
		// Run đầu tiên có chữ không mở đầu bằng ký tự lựa chọn: đoạn này
		// không gạch chân chữ cái.
		return false
	}
	return false
}

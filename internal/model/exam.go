package model

import (
	"encoding/json"
	"time"
)

type QuestionType string

const (
	// QuestionStandard: chọn một đáp án A-D.
	QuestionStandard QuestionType = "standard"
	// QuestionTrueFalse: dạng đúng/sai từng ý, chấm điểm từng phần.
	QuestionTrueFalse QuestionType = "tl2"
)

// AnswerKey giữ đáp án đúng của một câu hỏi. Trong file JSON đáp án đơn được
// ghi là chuỗi, đáp án kép được ghi là mảng; AnswerKey đọc/ghi được cả hai.
type AnswerKey []string

func (k AnswerKey) MarshalJSON() ([]byte, error) {
	if len(k) == 1 {
		return json.Marshal(k[0])
	}
	return json.Marshal([]string(k))
}

func (k *AnswerKey) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == "" {
			*k = nil
		} else {
			*k = AnswerKey{single}
		}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*k = AnswerKey(list)
	return nil
}

type Question struct {
	ID            int               `json:"id"`
	Number        int               `json:"number"`
	Question      string            `json:"question"`
	Options       map[string]string `json:"options"`
	CorrectAnswer AnswerKey         `json:"correct_answer"`
	Explanation   string            `json:"explanation"`
	Type          QuestionType      `json:"type"`
}

type Exam struct {
	ID                   string     `json:"id"`
	Title                string     `json:"title"`
	Description          string     `json:"description"`
	TimeLimit            int        `json:"time_limit"` // phút
	Questions            []Question `json:"questions"`
	AllowMultipleAnswers bool       `json:"allow_multiple_answers"`
	CreatedBy            string     `json:"created_by"`
	CreatedByName        string     `json:"created_by_name"`
	CreatedAt            time.Time  `json:"created_at"`

	// Grade chỉ gán khi trả về API gộp nhiều khối, không lưu trong file.
	Grade string `json:"grade,omitempty"`
}

// ExamBank là toàn bộ nội dung một file lop{10,11,12}.json. File định dạng cũ
// là mảng đề thuần nên UnmarshalJSON chấp nhận cả hai.
type ExamBank struct {
	Exams []Exam `json:"exams"`
}

func (b *ExamBank) UnmarshalJSON(data []byte) error {
	var obj struct {
		Exams []Exam `json:"exams"`
	}
	if err := json.Unmarshal(data, &obj); err == nil {
		b.Exams = obj.Exams
		return nil
	}
	var list []Exam
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	b.Exams = list
	return nil
}

// SubmittedAnswer là bài làm của học sinh cho một câu hỏi. Câu standard gửi
// lên một chuỗi ("A" hoặc "A. Nội dung"); câu đúng/sai gửi lên object gồm các
// ý chọn "đúng" và các ý đã trả lời.
type SubmittedAnswer struct {
	Choice      string
	TrueOptions []string
	Answered    []string
}

func (a *SubmittedAnswer) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		a.Choice = s
		return nil
	}
	var obj struct {
		TrueOptions []string `json:"true_options"`
		Answered    []string `json:"answered"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	a.TrueOptions = obj.TrueOptions
	a.Answered = obj.Answered
	return nil
}

func (a SubmittedAnswer) MarshalJSON() ([]byte, error) {
	if a.TrueOptions == nil && a.Answered == nil {
		return json.Marshal(a.Choice)
	}
	return json.Marshal(struct {
		TrueOptions []string `json:"true_options"`
		Answered    []string `json:"answered"`
	}{a.TrueOptions, a.Answered})
}

// AnswerReview là một dòng trong phần chữa bài trả về sau khi nộp.
type AnswerReview struct {
	QuestionNumber int     `json:"question_number"`
	QuestionText   string  `json:"question_text"`
	UserAnswer     string  `json:"user_answer"`
	CorrectAnswer  string  `json:"correct_answer"`
	Points         float64 `json:"points"`
	Explanation    string  `json:"explanation"`
}

// ExamResult là bản ghi kết quả trong data/exam_results.json, chỉ ghi thêm.
type ExamResult struct {
	UserID           string         `json:"user_id"`
	Username         string         `json:"username"`
	Grade            string         `json:"grade"`
	ExamID           string         `json:"exam_id"`
	ExamTitle        string         `json:"exam_title"`
	Score            float64        `json:"score"` // thang 0-10
	CorrectCount     int            `json:"correct_count"`
	TotalQuestions   int            `json:"total_questions"`
	WrongAnswers     []AnswerReview `json:"wrong_answers"`
	SubmittedAt      time.Time      `json:"submitted_at"`
	TimeSpentSeconds int            `json:"time_spent_seconds"`
}

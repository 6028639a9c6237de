package model

import "time"

// LessonQuestion là câu hỏi luyện tập gắn trong bài học.
type LessonQuestion struct {
	Question      string            `json:"question"`
	Options       map[string]string `json:"options,omitempty"`
	CorrectAnswer AnswerKey         `json:"correct_answer"`
}

type Lesson struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Content   string           `json:"content,omitempty"`
	Questions []LessonQuestion `json:"questions,omitempty"`
}

type Course struct {
	ID          string     `json:"id"`
	TeacherID   string     `json:"teacher_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Lessons     []Lesson   `json:"lessons"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`

	// TeacherName chỉ dùng khi trả về API, không lưu vào file.
	TeacherName string `json:"teacher_name,omitempty"`
}

type Progress struct {
	UserID           string    `json:"user_id"`
	CourseID         string    `json:"course_id"`
	CompletedLessons []string  `json:"completed_lessons"`
	LastUpdated      time.Time `json:"last_updated"`
}

// ExerciseSubmission là bài nộp luyện tập, chỉ ghi thêm chứ không sửa.
type ExerciseSubmission struct {
	ID          string            `json:"id"`
	UserID      string            `json:"user_id"`
	CourseID    string            `json:"course_id"`
	ExerciseID  string            `json:"exercise_id"`
	Answers     map[string]string `json:"answers"`
	SubmittedAt time.Time         `json:"submitted_at"`
}

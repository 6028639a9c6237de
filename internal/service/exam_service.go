package service

import (
	"errors"
	"strings"
	"time"

	"github.com/tuanminh7/website-lms/internal/model"
	"github.com/tuanminh7/website-lms/internal/repository"
	"github.com/tuanminh7/website-lms/internal/util"
	"github.com/tuanminh7/website-lms/pkg/docx"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Thời gian làm bài mặc định khi giáo viên không nhập (phút).
const defaultTimeLimit = 15

// ExamSummary là dòng danh sách đề cho trang chọn đề của học sinh.
type ExamSummary struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	TimeLimit     int       `json:"time_limit"`
	QuestionCount int       `json:"question_count"`
	CreatedByName string    `json:"created_by_name"`
	CreatedAt     time.Time `json:"created_at"`
}

// ExamView là đề đã giấu đáp án và lời giải, trả về khi học sinh bắt đầu làm.
type ExamView struct {
	ID        string             `json:"id"`
	Title     string             `json:"title"`
	TimeLimit int                `json:"time_limit"`
	Questions []ExamQuestionView `json:"questions"`
}

type ExamQuestionView struct {
	ID       int                `json:"id"`
	Number   int                `json:"number"`
	Question string             `json:"question"`
	Options  map[string]string  `json:"options"`
	Type     model.QuestionType `json:"type"`
}

type ExamService struct {
	exams    *repository.ExamRepository
	results  *repository.ResultRepository
	sessions *ExamSessionService
	logger   *zap.Logger
}

func NewExamService(exams *repository.ExamRepository, results *repository.ResultRepository, sessions *ExamSessionService, logger *zap.Logger) *ExamService {
	return &ExamService{exams: exams, results: results, sessions: sessions, logger: logger}
}

// ListByGrade trả về danh sách tóm tắt đề của một khối, không kèm câu hỏi.
func (s *ExamService) ListByGrade(grade string) ([]ExamSummary, error) {
	bank, err := s.exams.LoadBank(grade)
	if err != nil {
		return nil, err
	}
	summaries := make([]ExamSummary, 0, len(bank.Exams))
	for _, e := range bank.Exams {
		summaries = append(summaries, ExamSummary{
			ID:            e.ID,
			Title:         e.Title,
			Description:   e.Description,
			TimeLimit:     e.TimeLimit,
			QuestionCount: len(e.Questions),
			CreatedByName: e.CreatedByName,
			CreatedAt:     e.CreatedAt,
		})
	}
	return summaries, nil
}

// Import đọc đề từ file Word và thêm vào ngân hàng của khối. Thử đọc ở chế
// độ một đáp án trước; gặp câu nhiều đáp án thì tự đọc lại ở chế độ nhiều
// đáp án và bật cờ allow_multiple_answers cho đề. Lỗi đọc đề trả về nguyên
// ExamParseError để controller báo rõ câu hỏng; toàn bộ đề bị từ chối chứ
// không nhập một phần.
func (s *ExamService) Import(teacher *model.User, grade, title, description string, timeLimit int, paragraphs []docx.Paragraph) (*model.Exam, error) {
	if !repository.IsSupportedGrade(grade) {
		return nil, errors.New("khối lớp không hợp lệ, chỉ nhận 10, 11, 12")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errors.New("vui lòng nhập tên đề thi")
	}
	if timeLimit <= 0 {
		timeLimit = defaultTimeLimit
	}

	allowMultiple := false
	questions, err := ParseExamParagraphs(paragraphs, false)
	if err != nil {
		var parseErr *ExamParseError
		if !errors.As(err, &parseErr) || !parseErr.MultipleAnswers {
			return nil, err
		}
		questions, err = ParseExamParagraphs(paragraphs, true)
		if err != nil {
			return nil, err
		}
		allowMultiple = true
	}

	exam := &model.Exam{
		ID:                   "exam_" + grade + "_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:6],
		Title:                title,
		Description:          strings.TrimSpace(description),
		TimeLimit:            timeLimit,
		Questions:            questions,
		AllowMultipleAnswers: allowMultiple,
		CreatedBy:            teacher.ID,
		CreatedByName:        teacher.Username,
		CreatedAt:            time.Now(),
	}
	if err := s.exams.Add(grade, exam); err != nil {
		return nil, err
	}

	s.logger.Info("đã nhập đề thi",
		zap.String("exam_id", exam.ID),
		zap.String("grade", grade),
		zap.Int("questions", len(questions)),
		zap.Bool("allow_multiple", allowMultiple),
	)
	return exam, nil
}

// Delete xóa đề của chính giáo viên và dọn mọi kết quả đã nộp của đề đó.
func (s *ExamService) Delete(teacher *model.User, grade, examID string) error {
	exam, err := s.exams.Find(grade, examID)
	if err != nil {
		return err
	}
	if exam.CreatedBy != teacher.ID {
		return util.ErrPermissionDenied
	}

	removed, err := s.exams.Delete(grade, examID)
	if err != nil {
		return err
	}
	if !removed {
		return util.ErrNotFound
	}

	count, err := s.results.DeleteByExam(grade, examID)
	if err != nil {
		return err
	}
	s.logger.Info("đã xóa đề thi",
		zap.String("exam_id", examID),
		zap.String("grade", grade),
		zap.Int("results_removed", count),
	)
	return nil
}

// ByTeacher gom đề của giáo viên theo khối cho trang quản lý đề.
func (s *ExamService) ByTeacher(teacherID string) (map[string][]model.Exam, error) {
	return s.exams.ByTeacher(teacherID)
}

// Start mở (hoặc tiếp tục) lượt làm bài: cấp mốc thời gian nếu cần và trả
// về đề đã giấu đáp án. claims thay đổi nên controller phải ghi lại cookie.
func (s *ExamService) Start(claims *util.SessionClaims, grade, examID string) (*ExamView, AttemptState, error) {
	exam, err := s.exams.Find(grade, examID)
	if err != nil {
		return nil, AttemptState{}, err
	}

	state := s.sessions.Begin(claims, exam, grade)
	if state.Expired {
		return nil, state, nil
	}

	view := &ExamView{
		ID:        exam.ID,
		Title:     exam.Title,
		TimeLimit: exam.TimeLimit,
		Questions: make([]ExamQuestionView, 0, len(exam.Questions)),
	}
	for _, q := range exam.Questions {
		view.Questions = append(view.Questions, ExamQuestionView{
			ID:       q.ID,
			Number:   q.Number,
			Question: q.Question,
			Options:  q.Options,
			Type:     q.Type,
		})
	}
	return view, state, nil
}

// RemainingTime phục vụ endpoint polling số giây còn lại.
func (s *ExamService) RemainingTime(claims *util.SessionClaims, grade, examID string) (AttemptState, error) {
	exam, err := s.exams.Find(grade, examID)
	if err != nil {
		return AttemptState{}, err
	}
	return s.sessions.Remaining(claims, exam, grade)
}

// Reset hủy lượt làm hiện tại và bắt đầu lượt mới.
func (s *ExamService) Reset(claims *util.SessionClaims, grade, examID string) (AttemptState, error) {
	exam, err := s.exams.Find(grade, examID)
	if err != nil {
		return AttemptState{}, err
	}
	return s.sessions.Reset(claims, exam, grade), nil
}

// Submit chấm bài nộp trong giờ làm và ghi kết quả. Nộp muộn hoặc nộp lại
// lượt đã nộp bị từ chối và không ghi gì.
func (s *ExamService) Submit(claims *util.SessionClaims, grade, examID string, answers map[string]model.SubmittedAnswer) (*model.ExamResult, error) {
	exam, err := s.exams.Find(grade, examID)
	if err != nil {
		return nil, err
	}

	timeSpent, err := s.sessions.ValidateSubmission(claims, exam, grade)
	if err != nil {
		return nil, err
	}

	graded := GradeExam(exam, answers)
	result := &model.ExamResult{
		UserID:           claims.UserID,
		Username:         claims.Username,
		Grade:            grade,
		ExamID:           exam.ID,
		ExamTitle:        exam.Title,
		Score:            graded.Score,
		CorrectCount:     graded.CorrectCount,
		TotalQuestions:   graded.TotalQuestions,
		WrongAnswers:     graded.WrongAnswers,
		SubmittedAt:      time.Now(),
		TimeSpentSeconds: timeSpent,
	}
	if err := s.results.Append(result); err != nil {
		return nil, err
	}
	return result, nil
}

// History trả về lịch sử làm bài của học sinh, mới nhất trước.
func (s *ExamService) History(userID string) ([]model.ExamResult, error) {
	results, err := s.results.ByUser(userID)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []model.ExamResult{}
	}
	return results, nil
}

// LatestResult trả về lần nộp gần nhất của học sinh cho một đề, nil nếu
// chưa từng nộp.
func (s *ExamService) LatestResult(userID, grade, examID string) (*model.ExamResult, error) {
	return s.results.Latest(userID, grade, examID)
}

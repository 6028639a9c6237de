package service

import (
	"testing"
	"time"

	"github.com/tuanminh7/website-lms/internal/model"
	"github.com/tuanminh7/website-lms/internal/repository"
	"github.com/tuanminh7/website-lms/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type examFixture struct {
	svc     *ExamService
	exams   *repository.ExamRepository
	results *repository.ResultRepository
	now     *time.Time
}

func newExamFixture(t *testing.T) *examFixture {
	t.Helper()
	store, err := repository.NewStore(t.TempDir())
	require.NoError(t, err)

	now := time.Now()
	sessions := &ExamSessionService{now: func() time.Time { return now }}

	exams := repository.NewExamRepository(store)
	results := repository.NewResultRepository(store)
	return &examFixture{
		svc:     NewExamService(exams, results, sessions, zap.NewNop()),
		exams:   exams,
		results: results,
		now:     &now,
	}
}

func (f *examFixture) addExam(t *testing.T, grade string, exam model.Exam) {
	t.Helper()
	require.NoError(t, f.exams.Add(grade, &exam))
}

func fixtureExam() model.Exam {
	return model.Exam{
		ID:        "exam_10_abc123",
		Title:     "Kiểm tra 15 phút",
		TimeLimit: 15,
		Questions: []model.Question{
			{
				ID: 1, Number: 1, Question: "1 + 1 bằng mấy?",
				Options:       map[string]string{"A": "1", "B": "2"},
				CorrectAnswer: model.AnswerKey{"B"},
				Explanation:   "Cộng hai số một.",
				Type:          model.QuestionStandard,
			},
			{
				ID: 2, Number: 2, Question: "2 + 2 bằng mấy?",
				Options:       map[string]string{"A": "4", "B": "5"},
				CorrectAnswer: model.AnswerKey{"A"},
				Type:          model.QuestionStandard,
			},
		},
		CreatedBy:     "2",
		CreatedByName: "giaovien",
		CreatedAt:     time.Now(),
	}
}

func TestExamImportParsesAndStores(t *testing.T) {
	f := newExamFixture(t)
	teacher := &model.User{ID: "2", Username: "giaovien", Role: model.Teacher}

	exam, err := f.svc.Import(teacher, "11", "Đề giữa kỳ", "Chương 1", 0, paragraphs(
		"Câu 1: Một cộng một?",
		"A. 2 (đúng)",
		"B. 3",
	))
	require.NoError(t, err)
	assert.Contains(t, exam.ID, "exam_11_")
	assert.Equal(t, defaultTimeLimit, exam.TimeLimit, "không nhập thời gian thì dùng mặc định")
	assert.False(t, exam.AllowMultipleAnswers)

	bank, err := f.exams.LoadBank("11")
	require.NoError(t, err)
	require.Len(t, bank.Exams, 1)
	assert.Equal(t, exam.ID, bank.Exams[0].ID)
}

func TestExamImportRetriesInMultiMode(t *testing.T) {
	f := newExamFixture(t)
	teacher := &model.User{ID: "2", Username: "giaovien", Role: model.Teacher}

	exam, err := f.svc.Import(teacher, "10", "Đề nhiều đáp án", "", 20, paragraphs(
		"Câu 1: Những số nào chẵn?",
		"A. 2 (đúng)",
		"B. 3",
		"C. 4 (đúng)",
	))
	require.NoError(t, err)
	assert.True(t, exam.AllowMultipleAnswers, "gặp câu nhiều đáp án phải tự chuyển chế độ")
	assert.Equal(t, []string{"A", "C"}, []string(exam.Questions[0].CorrectAnswer))
}

func TestExamImportRejectsBadInput(t *testing.T) {
	f := newExamFixture(t)
	teacher := &model.User{ID: "2", Username: "giaovien", Role: model.Teacher}

	_, err := f.svc.Import(teacher, "13", "Đề", "", 15, paragraphs("Câu 1: x", "A. 1 (đúng)", "B. 2"))
	assert.Error(t, err, "khối lớp ngoài 10-12 phải bị từ chối")

	_, err = f.svc.Import(teacher, "10", "  ", "", 15, paragraphs("Câu 1: x", "A. 1 (đúng)", "B. 2"))
	assert.Error(t, err, "thiếu tên đề phải bị từ chối")

	_, err = f.svc.Import(teacher, "10", "Đề", "", 15, paragraphs("không có câu hỏi"))
	var parseErr *ExamParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestExamStartSubmitFlow(t *testing.T) {
	f := newExamFixture(t)
	f.addExam(t, "10", fixtureExam())
	claims := &util.SessionClaims{UserID: "1", Username: "hocsinh"}

	view, state, err := f.svc.Start(claims, "10", "exam_10_abc123")
	require.NoError(t, err)
	assert.False(t, state.Expired)
	assert.Equal(t, 15*60, state.RemainingSeconds)
	require.Len(t, view.Questions, 2)

	result, err := f.svc.Submit(claims, "10", "exam_10_abc123", map[string]model.SubmittedAnswer{
		"1": {Choice: "B"},
		"2": {Choice: "B"},
	})
	require.NoError(t, err)
	assert.Equal(t, 5.0, result.Score)
	assert.Equal(t, 1, result.CorrectCount)
	require.Len(t, result.WrongAnswers, 1)
	assert.Equal(t, 2, result.WrongAnswers[0].QuestionNumber)

	// Nộp lại cùng lượt làm phải bị từ chối.
	_, err = f.svc.Submit(claims, "10", "exam_10_abc123", nil)
	assert.ErrorIs(t, err, util.ErrNoExamSession)

	history, err := f.svc.History("1")
	require.NoError(t, err)
	require.Len(t, history, 1, "lần nộp bị từ chối không được ghi kết quả")
}

func TestExamStartHidesAnswers(t *testing.T) {
	f := newExamFixture(t)
	f.addExam(t, "10", fixtureExam())
	claims := &util.SessionClaims{UserID: "1", Username: "hocsinh"}

	view, _, err := f.svc.Start(claims, "10", "exam_10_abc123")
	require.NoError(t, err)
	for _, q := range view.Questions {
		assert.NotEmpty(t, q.Options)
		assert.NotEmpty(t, q.Question)
	}
	// ExamQuestionView không có trường đáp án hay lời giải nên không thể lộ
	// qua JSON; kiểm tra lại tiêu đề và giới hạn thời gian được giữ nguyên.
	assert.Equal(t, "Kiểm tra 15 phút", view.Title)
	assert.Equal(t, 15, view.TimeLimit)
}

func TestExamSubmitAfterExpiryRejected(t *testing.T) {
	f := newExamFixture(t)
	f.addExam(t, "10", fixtureExam())
	claims := &util.SessionClaims{UserID: "1", Username: "hocsinh"}

	_, _, err := f.svc.Start(claims, "10", "exam_10_abc123")
	require.NoError(t, err)

	*f.now = f.now.Add(16 * time.Minute)

	_, err = f.svc.Submit(claims, "10", "exam_10_abc123", map[string]model.SubmittedAnswer{"1": {Choice: "B"}})
	assert.ErrorIs(t, err, util.ErrExamTimeExpired)

	history, err := f.svc.History("1")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestExamDeleteCascadesResults(t *testing.T) {
	f := newExamFixture(t)
	f.addExam(t, "10", fixtureExam())
	teacher := &model.User{ID: "2", Username: "giaovien", Role: model.Teacher}

	require.NoError(t, f.results.Append(&model.ExamResult{
		UserID: "1", Grade: "10", ExamID: "exam_10_abc123", Score: 5,
	}))

	require.NoError(t, f.svc.Delete(teacher, "10", "exam_10_abc123"))

	_, err := f.exams.Find("10", "exam_10_abc123")
	assert.ErrorIs(t, err, util.ErrNotFound)

	results, err := f.results.ByUser("1")
	require.NoError(t, err)
	assert.Empty(t, results, "kết quả của đề bị xóa phải bị dọn theo")
}

func TestExamDeleteRequiresOwnership(t *testing.T) {
	f := newExamFixture(t)
	f.addExam(t, "10", fixtureExam())
	other := &model.User{ID: "9", Username: "giaovienkhac", Role: model.Teacher}

	err := f.svc.Delete(other, "10", "exam_10_abc123")
	assert.ErrorIs(t, err, util.ErrPermissionDenied)
}

func TestExamListByGradeSummaries(t *testing.T) {
	f := newExamFixture(t)
	f.addExam(t, "12", fixtureExam())

	summaries, err := f.svc.ListByGrade("12")
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, 2, summaries[0].QuestionCount)

	empty, err := f.svc.ListByGrade("11")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

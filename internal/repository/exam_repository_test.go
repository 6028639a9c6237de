package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tuanminh7/website-lms/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestExamBankRoundTripDefaults(t *testing.T) {
	store := newTestStore(t)
	repo := NewExamRepository(store)

	// File cũ không ghi type câu hỏi và allow_multiple_answers.
	raw := `{
	  "exams": [
	    {
	      "id": "exam_10_cu",
	      "title": "Đề cũ",
	      "time_limit": 15,
	      "questions": [
	        {"id": 1, "number": 1, "question": "Câu?", "options": {"A": "1", "B": "2"}, "correct_answer": "A"}
	      ]
	    }
	  ]
	}`
	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), "lop10.json"), []byte(raw), 0644))

	bank, err := repo.LoadBank("10")
	require.NoError(t, err)
	require.Len(t, bank.Exams, 1)

	exam := bank.Exams[0]
	assert.False(t, exam.AllowMultipleAnswers)
	require.Len(t, exam.Questions, 1)
	assert.Equal(t, model.QuestionStandard, exam.Questions[0].Type, "type thiếu phải về standard")
	assert.Equal(t, []string{"A"}, []string(exam.Questions[0].CorrectAnswer), "đáp án chuỗi đơn phải đọc thành danh sách")

	// Ghi lại rồi đọc lần nữa, nội dung không đổi.
	require.NoError(t, repo.SaveBank("10", bank))
	reloaded, err := repo.LoadBank("10")
	require.NoError(t, err)
	assert.Equal(t, bank.Exams, reloaded.Exams)
}

func TestExamBankLegacyArrayFormat(t *testing.T) {
	store := newTestStore(t)
	repo := NewExamRepository(store)

	raw := `[{"id": "exam_11_x", "title": "Đề dạng mảng", "time_limit": 10, "questions": []}]`
	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), "lop11.json"), []byte(raw), 0644))

	bank, err := repo.LoadBank("11")
	require.NoError(t, err)
	require.Len(t, bank.Exams, 1)
	assert.Equal(t, "exam_11_x", bank.Exams[0].ID)
}

func TestExamRepositoryAddFindDelete(t *testing.T) {
	store := newTestStore(t)
	repo := NewExamRepository(store)

	exam := model.Exam{ID: "exam_10_aa", Title: "Đề A", TimeLimit: 15, CreatedBy: "2"}
	require.NoError(t, repo.Add("10", &exam))

	found, err := repo.Find("10", "exam_10_aa")
	require.NoError(t, err)
	assert.Equal(t, "Đề A", found.Title)

	removed, err := repo.Delete("10", "exam_10_aa")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Delete("10", "exam_10_aa")
	require.NoError(t, err)
	assert.False(t, removed, "xóa đề không tồn tại phải trả về false")
}

func TestExamRepositoryByTeacher(t *testing.T) {
	store := newTestStore(t)
	repo := NewExamRepository(store)

	require.NoError(t, repo.Add("10", &model.Exam{ID: "e1", CreatedBy: "2"}))
	require.NoError(t, repo.Add("12", &model.Exam{ID: "e2", CreatedBy: "2"}))
	require.NoError(t, repo.Add("12", &model.Exam{ID: "e3", CreatedBy: "9"}))

	grouped, err := repo.ByTeacher("2")
	require.NoError(t, err)
	assert.Len(t, grouped["10"], 1)
	assert.Len(t, grouped["12"], 1)
	assert.Equal(t, "12", grouped["12"][0].Grade, "khối phải được gán khi gộp nhiều file")
}

func TestStoreCorruptFileTreatedAsEmpty(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(store.Dir(), "lop10.json"), []byte("{hỏng"), 0644))

	bank, err := NewExamRepository(store).LoadBank("10")
	require.NoError(t, err)
	assert.Empty(t, bank.Exams)
}

package service

import (
	"testing"

	"github.com/tuanminh7/website-lms/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func standardQuestion(number int, correct ...string) model.Question {
	return model.Question{
		Number:   number,
		Question: "Câu hỏi",
		Options: map[string]string{
			"A": "Một", "B": "Hai", "C": "Ba", "D": "Bốn",
		},
		CorrectAnswer: model.AnswerKey(correct),
		Type:          model.QuestionStandard,
	}
}

func trueFalseQuestion(number int, correct ...string) model.Question {
	q := standardQuestion(number, correct...)
	q.Type = model.QuestionTrueFalse
	return q
}

func TestScoreStandard(t *testing.T) {
	q := standardQuestion(1, "B")

	cases := []struct {
		name   string
		choice string
		want   float64
	}{
		{"đúng ký tự", "B", 1.0},
		{"chữ thường", "b", 1.0},
		{"kèm nội dung sau dấu chấm", "B. Hai", 1.0},
		{"thừa khoảng trắng", "  B  ", 1.0},
		{"sai ký tự", "A", 0},
		{"bỏ trống", "", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := scoreStandard(&q, model.SubmittedAnswer{Choice: tc.choice})
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestScoreStandardMultiCorrectMembership(t *testing.T) {
	// Câu nhiều đáp án chỉ xét thành viên tập: nộp một trong các đáp án
	// đúng là được trọn điểm.
	q := standardQuestion(1, "A", "C")
	assert.Equal(t, 1.0, scoreStandard(&q, model.SubmittedAnswer{Choice: "A"}))
	assert.Equal(t, 1.0, scoreStandard(&q, model.SubmittedAnswer{Choice: "C"}))
	assert.Equal(t, 0.0, scoreStandard(&q, model.SubmittedAnswer{Choice: "B"}))
}

func TestScoreTrueFalse(t *testing.T) {
	q := trueFalseQuestion(1, "A", "C")
	all := []string{"A", "B", "C", "D"}

	t.Run("đúng hết", func(t *testing.T) {
		got := scoreTrueFalse(&q, model.SubmittedAnswer{TrueOptions: []string{"A", "C"}, Answered: all})
		assert.Equal(t, 1.0, got)
	})

	t.Run("một ý sai", func(t *testing.T) {
		got := scoreTrueFalse(&q, model.SubmittedAnswer{TrueOptions: []string{"A"}, Answered: all})
		assert.Equal(t, 0.5, got)
	})

	t.Run("hai ý sai", func(t *testing.T) {
		got := scoreTrueFalse(&q, model.SubmittedAnswer{TrueOptions: nil, Answered: all})
		assert.Equal(t, 0.25, got)
	})

	t.Run("bỏ trống toàn bộ", func(t *testing.T) {
		got := scoreTrueFalse(&q, model.SubmittedAnswer{})
		assert.LessOrEqual(t, got, 0.1)
	})

	t.Run("chọn thừa", func(t *testing.T) {
		got := scoreTrueFalse(&q, model.SubmittedAnswer{TrueOptions: []string{"A", "B", "C"}, Answered: all})
		assert.Equal(t, 0.5, got)
	})
}

func TestGradeExamTotal(t *testing.T) {
	exam := &model.Exam{
		ID:        "exam_test",
		Title:     "Đề kiểm tra",
		TimeLimit: 15,
		Questions: []model.Question{
			standardQuestion(1, "A"),
			standardQuestion(2, "B"),
			trueFalseQuestion(3, "A", "C"),
		},
	}

	answers := map[string]model.SubmittedAnswer{
		"1": {Choice: "A"},
		"2": {Choice: "D"},
		"3": {TrueOptions: []string{"A"}, Answered: []string{"A", "B", "C", "D"}},
	}

	result := GradeExam(exam, answers)
	require.NotNil(t, result)
	assert.Equal(t, 3, result.TotalQuestions)
	assert.Equal(t, 1, result.CorrectCount)
	// (1.0 + 0 + 0.5) / 3 * 10 = 5.0
	assert.Equal(t, 5.0, result.Score)

	require.Len(t, result.WrongAnswers, 2)
	assert.Equal(t, 2, result.WrongAnswers[0].QuestionNumber)
	assert.Equal(t, "D", result.WrongAnswers[0].UserAnswer)
	assert.Equal(t, 3, result.WrongAnswers[1].QuestionNumber)
	assert.Equal(t, 0.5, result.WrongAnswers[1].Points)
}

func TestGradeExamEmpty(t *testing.T) {
	result := GradeExam(&model.Exam{}, nil)
	assert.Equal(t, 0.0, result.Score)
	assert.Equal(t, 0, result.TotalQuestions)
}

func TestRoundScore(t *testing.T) {
	assert.Equal(t, 3.33, roundScore(1.0/3.0*10))
	assert.Equal(t, 6.67, roundScore(2.0/3.0*10))
	assert.Equal(t, 10.0, roundScore(10))
}

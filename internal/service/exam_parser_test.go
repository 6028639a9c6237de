package service

import (
	"testing"

	"github.com/tuanminh7/website-lms/pkg/docx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paragraphs(lines ...string) []docx.Paragraph {
	out := make([]docx.Paragraph, 0, len(lines))
	for _, line := range lines {
		out = append(out, docx.Paragraph{
			Text: line,
			Runs: []docx.Run{{Text: line}},
		})
	}
	return out
}

func TestParseExamBasic(t *testing.T) {
	questions, err := ParseExamParagraphs(paragraphs(
		"Câu 1: Thủ đô của Việt Nam là gì?",
		"A. Hà Nội (đúng)",
		"B. Đà Nẵng",
		"C. Hải Phòng",
		"D. Cần Thơ",
		"Giải thích: Hà Nội là thủ đô từ năm 1945.",
		"Câu 2. 2 + 2 bằng mấy?",
		"A) 3",
		"B) 4",
		"Đáp án: B",
	), false)
	require.NoError(t, err)
	require.Len(t, questions, 2)

	q1 := questions[0]
	assert.Equal(t, 1, q1.Number)
	assert.Equal(t, "Thủ đô của Việt Nam là gì?", q1.Question)
	assert.Len(t, q1.Options, 4)
	assert.Equal(t, "Hà Nội", q1.Options["A"], "cụm từ đánh dấu phải bị gỡ khỏi nội dung")
	assert.Equal(t, []string{"A"}, []string(q1.CorrectAnswer))
	assert.Equal(t, "Hà Nội là thủ đô từ năm 1945.", q1.Explanation)

	q2 := questions[1]
	assert.Equal(t, 2, q2.Number)
	assert.Equal(t, []string{"B"}, []string(q2.CorrectAnswer))
	assert.Empty(t, q2.Explanation)
}

func TestParseExamUnderlinedAnswer(t *testing.T) {
	paras := []docx.Paragraph{
		{Text: "Câu 1: Chọn đáp án đúng", Runs: []docx.Run{{Text: "Câu 1: Chọn đáp án đúng"}}},
		{Text: "A. Sai rồi", Runs: []docx.Run{{Text: "A. Sai rồi"}}},
		{Text: "B. Đúng đây", Runs: []docx.Run{{Text: "B. Đúng đây", Underlined: true}}},
	}
	questions, err := ParseExamParagraphs(paras, false)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, []string{"B"}, []string(questions[0].CorrectAnswer))
}

func TestParseExamContinuationLines(t *testing.T) {
	questions, err := ParseExamParagraphs(paragraphs(
		"Câu 1: Cho đoạn văn sau:",
		"\"Nước Việt Nam là một, dân tộc Việt Nam là một.\"",
		"Ai là tác giả?",
		"A. Hồ Chí Minh (đúng)",
		"B. Võ Nguyên Giáp",
	), false)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Contains(t, questions[0].Question, "Ai là tác giả?")
}

func TestParseExamMultipleAnswersSingleMode(t *testing.T) {
	paras := paragraphs(
		"Câu 1: Câu hợp lệ",
		"A. Một (đúng)",
		"B. Hai",
		"Câu 2: Những số nào chẵn?",
		"A. 2 (đúng)",
		"B. 3",
		"C. 4 (đúng)",
		"D. 5",
	)

	_, err := ParseExamParagraphs(paras, false)
	require.Error(t, err)
	var parseErr *ExamParseError
	require.ErrorAs(t, err, &parseErr)
	assert.True(t, parseErr.MultipleAnswers)
	assert.Equal(t, 2, parseErr.QuestionNumber)

	// Cùng tài liệu đọc được ở chế độ nhiều đáp án.
	questions, err := ParseExamParagraphs(paras, true)
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Equal(t, []string{"A", "C"}, []string(questions[1].CorrectAnswer))
}

func TestParseExamValidation(t *testing.T) {
	t.Run("không có câu hỏi nào", func(t *testing.T) {
		_, err := ParseExamParagraphs(paragraphs("chỉ là một dòng chữ"), false)
		var parseErr *ExamParseError
		require.ErrorAs(t, err, &parseErr)
	})

	t.Run("thiếu lựa chọn", func(t *testing.T) {
		_, err := ParseExamParagraphs(paragraphs(
			"Câu 1: Câu hỏi thiếu lựa chọn",
			"A. Chỉ một lựa chọn (đúng)",
		), false)
		var parseErr *ExamParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, 1, parseErr.QuestionNumber)
	})

	t.Run("không có đáp án đúng", func(t *testing.T) {
		_, err := ParseExamParagraphs(paragraphs(
			"Câu 1: Câu hỏi không có đáp án",
			"A. Một",
			"B. Hai",
		), false)
		var parseErr *ExamParseError
		require.ErrorAs(t, err, &parseErr)
	})

	t.Run("đáp án trỏ đến lựa chọn không tồn tại", func(t *testing.T) {
		_, err := ParseExamParagraphs(paragraphs(
			"Câu 1: Câu hỏi",
			"A. Một",
			"B. Hai",
			"Đáp án: D",
		), false)
		var parseErr *ExamParseError
		require.ErrorAs(t, err, &parseErr)
	})
}

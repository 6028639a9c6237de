package service

import (
	"math"
	"strconv"
	"strings"

	"github.com/tuanminh7/website-lms/internal/model"
	"github.com/tuanminh7/website-lms/internal/util"
)

// GradeResult là kết quả chấm một bài nộp trước khi ghi vào sổ kết quả.
type GradeResult struct {
	Score          float64
	CorrectCount   int
	TotalQuestions int
	WrongAnswers   []model.AnswerReview
}

// GradeExam chấm toàn bộ bài làm: mỗi câu được 0..1 điểm, tổng quy về thang
// 0-10. Câu đạt trọn điểm tính vào số câu đúng; câu còn lại (kể cả đúng một
// phần) đưa vào phần chữa bài.
func GradeExam(exam *model.Exam, answers map[string]model.SubmittedAnswer) *GradeResult {
	result := &GradeResult{
		TotalQuestions: len(exam.Questions),
		WrongAnswers:   []model.AnswerReview{},
	}
	if len(exam.Questions) == 0 {
		return result
	}

	var sum float64
	for i := range exam.Questions {
		q := &exam.Questions[i]
		submitted := answers[questionKey(q)]

		var points float64
		var shown string
		if q.Type == model.QuestionTrueFalse {
			points = scoreTrueFalse(q, submitted)
			shown = formatTrueFalseAnswer(submitted)
		} else {
			points = scoreStandard(q, submitted)
			shown = strings.TrimSpace(submitted.Choice)
		}
		sum += points

		if points >= 1.0 {
			result.CorrectCount++
			continue
		}
		if shown == "" {
			shown = "(không trả lời)"
		}
		result.WrongAnswers = append(result.WrongAnswers, model.AnswerReview{
			QuestionNumber: q.Number,
			QuestionText:   q.Question,
			UserAnswer:     shown,
			CorrectAnswer:  util.FormatAnswerKey(q.CorrectAnswer),
			Points:         points,
			Explanation:    q.Explanation,
		})
	}

	result.Score = roundScore(sum / float64(len(exam.Questions)) * 10)
	return result
}

// scoreStandard chấm câu chọn đáp án: trọn điểm khi ký tự nộp lên (đã chuẩn
// hóa) thuộc tập đáp án đúng. Câu nhiều đáp án cũng chỉ xét thành viên tập,
// không đòi hỏi nộp đủ mọi đáp án.
func scoreStandard(q *model.Question, submitted model.SubmittedAnswer) float64 {
	token := util.NormalizeAnswerToken(submitted.Choice)
	if token == "" {
		return 0
	}
	if util.NormalizeAnswerSet(q.CorrectAnswer)[token] {
		return 1.0
	}
	return 0
}

// Bảng điểm từng phần cho câu đúng/sai theo số ý sai.
var partialCredit = map[int]float64{
	0: 1.0,
	1: 0.5,
	2: 0.25,
	3: 0.1,
}

// scoreTrueFalse chấm câu đúng/sai từng ý: số lỗi là hiệu đối xứng giữa tập
// ý học sinh chọn "đúng" và tập ý đúng thật, cộng thêm mỗi ý bỏ trống một
// lỗi, chặn trên bằng số ý của câu.
func scoreTrueFalse(q *model.Question, submitted model.SubmittedAnswer) float64 {
	correctSet := util.NormalizeAnswerSet(q.CorrectAnswer)

	submittedSet := make(map[string]bool, len(submitted.TrueOptions))
	for _, v := range submitted.TrueOptions {
		if token := util.NormalizeAnswerToken(v); token != "" {
			submittedSet[token] = true
		}
	}
	answeredSet := make(map[string]bool, len(submitted.Answered))
	for _, v := range submitted.Answered {
		if token := util.NormalizeAnswerToken(v); token != "" {
			answeredSet[token] = true
		}
	}

	mistakes := 0
	for token := range correctSet {
		if !submittedSet[token] {
			mistakes++
		}
	}
	for token := range submittedSet {
		if !correctSet[token] {
			mistakes++
		}
	}
	for letter := range q.Options {
		if !answeredSet[util.NormalizeAnswerToken(letter)] {
			mistakes++
		}
	}
	if mistakes > len(q.Options) {
		mistakes = len(q.Options)
	}

	if credit, ok := partialCredit[mistakes]; ok {
		return credit
	}
	return 0
}

// questionKey là khóa của câu hỏi trong map bài làm gửi lên (số thứ tự câu).
func questionKey(q *model.Question) string {
	return strconv.Itoa(q.Number)
}

func formatTrueFalseAnswer(submitted model.SubmittedAnswer) string {
	if len(submitted.TrueOptions) == 0 {
		return ""
	}
	tokens := make([]string, 0, len(submitted.TrueOptions))
	for _, v := range submitted.TrueOptions {
		if token := util.NormalizeAnswerToken(v); token != "" {
			tokens = append(tokens, token)
		}
	}
	return "Đúng: " + strings.Join(tokens, ", ")
}

// roundScore làm tròn điểm tổng đến 2 chữ số thập phân.
func roundScore(score float64) float64 {
	return math.Round(score*100) / 100
}

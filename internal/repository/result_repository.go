package repository

import (
	"sort"
	"time"

	"github.com/tuanminh7/website-lms/internal/model"
)

const examResultsFile = "exam_results.json"

type ResultRepository struct {
	store *Store
}

func NewResultRepository(store *Store) *ResultRepository {
	return &ResultRepository{store: store}
}

func (r *ResultRepository) Append(result *model.ExamResult) error {
	var results []model.ExamResult
	return r.store.Update(examResultsFile, &results, func() (bool, error) {
		if result.SubmittedAt.IsZero() {
			result.SubmittedAt = time.Now()
		}
		if result.WrongAnswers == nil {
			result.WrongAnswers = []model.AnswerReview{}
		}
		results = append(results, *result)
		return true, nil
	})
}

// ByUser trả về lịch sử làm bài của một học sinh, lần nộp mới nhất trước.
func (r *ResultRepository) ByUser(userID string) ([]model.ExamResult, error) {
	var results []model.ExamResult
	if err := r.store.Load(examResultsFile, &results); err != nil {
		return nil, err
	}
	var mine []model.ExamResult
	for _, res := range results {
		if res.UserID == userID {
			mine = append(mine, res)
		}
	}
	sort.Slice(mine, func(i, j int) bool {
		return mine[i].SubmittedAt.After(mine[j].SubmittedAt)
	})
	return mine, nil
}

// Latest trả về lần nộp gần nhất của học sinh cho một đề, nil nếu chưa nộp.
func (r *ResultRepository) Latest(userID, grade, examID string) (*model.ExamResult, error) {
	mine, err := r.ByUser(userID)
	if err != nil {
		return nil, err
	}
	for i := range mine {
		if mine[i].Grade == grade && mine[i].ExamID == examID {
			return &mine[i], nil
		}
	}
	return nil, nil
}

// DeleteByExam xóa mọi kết quả của một đề khi giáo viên xóa đề, trả về số
// bản ghi đã xóa.
func (r *ResultRepository) DeleteByExam(grade, examID string) (int, error) {
	removed := 0
	var results []model.ExamResult
	err := r.store.Update(examResultsFile, &results, func() (bool, error) {
		kept := results[:0]
		for _, res := range results {
			if res.Grade == grade && res.ExamID == examID {
				removed++
				continue
			}
			kept = append(kept, res)
		}
		results = kept
		return removed > 0, nil
	})
	return removed, err
}

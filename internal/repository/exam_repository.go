package repository

import (
	"fmt"

	"github.com/tuanminh7/website-lms/internal/model"
	"github.com/tuanminh7/website-lms/internal/util"
)

// SupportedGrades là các khối lớp có ngân hàng đề, mỗi khối một file riêng.
var SupportedGrades = []string{"10", "11", "12"}

func IsSupportedGrade(grade string) bool {
	for _, g := range SupportedGrades {
		if g == grade {
			return true
		}
	}
	return false
}

func bankFile(grade string) string {
	return fmt.Sprintf("lop%s.json", grade)
}

type ExamRepository struct {
	store *Store
}

func NewExamRepository(store *Store) *ExamRepository {
	return &ExamRepository{store: store}
}

// LoadBank đọc ngân hàng đề của một khối và chuẩn hóa các trường thiếu của
// dữ liệu cũ: danh sách câu hỏi không được nil, câu hỏi không ghi type được
// coi là dạng standard.
func (r *ExamRepository) LoadBank(grade string) (*model.ExamBank, error) {
	var bank model.ExamBank
	if err := r.store.Load(bankFile(grade), &bank); err != nil {
		return nil, err
	}
	normalizeBank(&bank)
	return &bank, nil
}

func (r *ExamRepository) SaveBank(grade string, bank *model.ExamBank) error {
	return r.store.Save(bankFile(grade), bank)
}

func (r *ExamRepository) Add(grade string, exam *model.Exam) error {
	var bank model.ExamBank
	return r.store.Update(bankFile(grade), &bank, func() (bool, error) {
		normalizeBank(&bank)
		bank.Exams = append(bank.Exams, *exam)
		return true, nil
	})
}

func (r *ExamRepository) Find(grade, examID string) (*model.Exam, error) {
	bank, err := r.LoadBank(grade)
	if err != nil {
		return nil, err
	}
	for i := range bank.Exams {
		if bank.Exams[i].ID == examID {
			return &bank.Exams[i], nil
		}
	}
	return nil, util.ErrNotFound
}

// Delete gỡ một đề khỏi ngân hàng, trả về false nếu đề không tồn tại.
func (r *ExamRepository) Delete(grade, examID string) (bool, error) {
	removed := false
	var bank model.ExamBank
	err := r.store.Update(bankFile(grade), &bank, func() (bool, error) {
		normalizeBank(&bank)
		kept := bank.Exams[:0]
		for _, e := range bank.Exams {
			if e.ID == examID {
				removed = true
				continue
			}
			kept = append(kept, e)
		}
		bank.Exams = kept
		return removed, nil
	})
	return removed, err
}

// ByTeacher gom các đề do một giáo viên tạo, nhóm theo khối.
func (r *ExamRepository) ByTeacher(teacherID string) (map[string][]model.Exam, error) {
	out := make(map[string][]model.Exam)
	for _, grade := range SupportedGrades {
		bank, err := r.LoadBank(grade)
		if err != nil {
			return nil, err
		}
		for _, e := range bank.Exams {
			if e.CreatedBy == teacherID {
				e.Grade = grade
				out[grade] = append(out[grade], e)
			}
		}
	}
	return out, nil
}

func normalizeBank(bank *model.ExamBank) {
	if bank.Exams == nil {
		bank.Exams = []model.Exam{}
	}
	for i := range bank.Exams {
		if bank.Exams[i].Questions == nil {
			bank.Exams[i].Questions = []model.Question{}
		}
		for j := range bank.Exams[i].Questions {
			if bank.Exams[i].Questions[j].Type == "" {
				bank.Exams[i].Questions[j].Type = model.QuestionStandard
			}
		}
	}
}

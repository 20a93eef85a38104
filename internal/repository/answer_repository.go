package repository

import (
	"quiz_admin_backend/internal/model"

	"gorm.io/gorm"
)

type AnswerRepository struct {
	DB *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) *AnswerRepository {
	return &AnswerRepository{DB: db}
}

func (r *AnswerRepository) HasSubmission(studentID, quizID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.StudentAnswer{}).
		Where("student_id = ? AND quiz_id = ?", studentID, quizID).
		Count(&count).Error
	return count > 0, err
}

// CreateBatch 一次提交的所有答案行原子落库
func (r *AnswerRepository) CreateBatch(answers []model.StudentAnswer) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&answers).Error
	})
}

func (r *AnswerRepository) ListByStudentAndQuiz(studentID, quizID uint) ([]model.StudentAnswer, error) {
	var answers []model.StudentAnswer
	err := r.DB.Where("student_id = ? AND quiz_id = ?", studentID, quizID).
		Order("question_id").Find(&answers).Error
	return answers, err
}

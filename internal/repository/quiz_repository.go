package repository

import (
	"quiz_admin_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

// CreateWithQuestions 试卷、题目、选项在一个事务里创建
func (r *QuizRepository) CreateWithQuestions(quiz *model.Quiz) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		questions := quiz.Questions
		quiz.Questions = nil
		if err := tx.Create(quiz).Error; err != nil {
			return err
		}

		for i := range questions {
			q := &questions[i]
			options := q.Options
			q.Options = nil
			q.QuizID = quiz.ID
			if err := tx.Create(q).Error; err != nil {
				return err
			}
			for j := range options {
				options[j].QuestionID = q.ID
			}
			if err := tx.Create(&options).Error; err != nil {
				return err
			}
			q.Options = options
		}

		quiz.Questions = questions
		return nil
	})
}

func (r *QuizRepository) FindByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.Preload("Questions.Options").First(&quiz, id).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizRepository) Exists(id uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Quiz{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *QuizRepository) ListAll() ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.DB.Preload("Questions.Options").Order("created_at DESC").Find(&quizzes).Error
	return quizzes, err
}

func (r *QuizRepository) ListByTeacher(teacherID uint) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.DB.Preload("Questions.Options").
		Where("teacher_id = ?", teacherID).
		Order("created_at DESC").Find(&quizzes).Error
	return quizzes, err
}

// UpdateWithQuestions 标量字段更新；questions 非 nil 时整体替换（删旧建新），整个过程在一个事务里
func (r *QuizRepository) UpdateWithQuestions(quiz *model.Quiz, questions []model.Question) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Quiz{}).Where("id = ?", quiz.ID).
			Updates(map[string]interface{}{
				"title":            quiz.Title,
				"description":      quiz.Description,
				"duration_minutes": quiz.DurationMinutes,
			}).Error; err != nil {
			return err
		}

		if questions == nil {
			return nil
		}

		if err := tx.Where("question_id IN (?)",
			tx.Model(&model.Question{}).Select("id").Where("quiz_id = ?", quiz.ID),
		).Delete(&model.Option{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id = ?", quiz.ID).Delete(&model.Question{}).Error; err != nil {
			return err
		}

		for i := range questions {
			q := &questions[i]
			q.ID = 0
			options := q.Options
			q.Options = nil
			q.QuizID = quiz.ID
			if err := tx.Create(q).Error; err != nil {
				return err
			}
			for j := range options {
				options[j].ID = 0
				options[j].QuestionID = q.ID
			}
			if err := tx.Create(&options).Error; err != nil {
				return err
			}
			q.Options = options
		}
		return nil
	})
}

// DeleteCascade 答案→指派→选项→题目→试卷，一个事务完成，不留半删状态
func (r *QuizRepository) DeleteCascade(quizID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quiz_id = ?", quizID).Delete(&model.StudentAnswer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id = ?", quizID).Delete(&model.QuizAssignment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id IN (?)",
			tx.Model(&model.Question{}).Select("id").Where("quiz_id = ?", quizID),
		).Delete(&model.Option{}).Error; err != nil {
			return err
		}
		if err := tx.Where("quiz_id = ?", quizID).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Quiz{}, quizID).Error
	})
}

// CorrectOptions 答案键：题目ID → 正确选项ID
func (r *QuizRepository) CorrectOptions(quizID uint) (map[uint]uint, error) {
	type pair struct {
		QuestionID      uint
		CorrectOptionID uint
	}
	var rows []pair
	err := r.DB.Table("questions q").
		Select("q.id AS question_id, o.id AS correct_option_id").
		Joins("JOIN options o ON q.id = o.question_id").
		Where("q.quiz_id = ? AND o.is_correct = ?", quizID, true).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	key := make(map[uint]uint, len(rows))
	for _, row := range rows {
		key[row.QuestionID] = row.CorrectOptionID
	}
	return key, nil
}

func (r *QuizRepository) CountQuestions(quizID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Question{}).Where("quiz_id = ?", quizID).Count(&count).Error
	return count, err
}

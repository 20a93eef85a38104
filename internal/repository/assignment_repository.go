package repository

import (
	"time"

	"quiz_admin_backend/internal/model"

	"gorm.io/gorm"
)

type AssignmentRepository struct {
	DB *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{DB: db}
}

func (r *AssignmentRepository) Create(assignment *model.QuizAssignment) error {
	return r.DB.Create(assignment).Error
}

// CreateBatch 一次规则解析出的所有指派行在一个事务里落库
func (r *AssignmentRepository) CreateBatch(assignments []model.QuizAssignment) error {
	if len(assignments) == 0 {
		return nil
	}
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&assignments).Error
	})
}

func (r *AssignmentRepository) DeleteByQuizAndStudent(quizID, studentID uint) error {
	return r.DB.Where("quiz_id = ? AND student_id = ?", quizID, studentID).
		Delete(&model.QuizAssignment{}).Error
}

func (r *AssignmentRepository) ListByQuiz(quizID uint) ([]model.QuizAssignment, error) {
	var rows []model.QuizAssignment
	err := r.DB.Where("quiz_id = ?", quizID).Order("id").Find(&rows).Error
	return rows, err
}

// AssignedQuizRow 学生可见指派 + 作答聚合状态
type AssignedQuizRow struct {
	AssignmentID    uint      `json:"assignment_id"`
	QuizID          uint      `json:"quiz_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	DurationMinutes int       `json:"duration_minutes"`
	AssignedAt      time.Time `json:"assigned_at"`
	StudentID       *uint     `json:"-"`
	BatchYear       *int      `json:"-"`
	DepartmentID    *uint     `json:"-"`
	TotalQuestions  int       `json:"total_questions"`
	Answered        int       `json:"-"`
	Score           int       `json:"-"`
}

// ListForStudent 命中规则：定向指派，或匹配学生当前档案的院系/届/两者快照行。
// 按指派行聚合题目总数、是否作答和得分
func (r *AssignmentRepository) ListForStudent(studentID uint, departmentID uint, batchYear int) ([]AssignedQuizRow, error) {
	var rows []AssignedQuizRow
	err := r.DB.Table("quiz_assignments qa").
		Select("qa.id AS assignment_id, q.id AS quiz_id, q.title, q.description, "+
			"q.duration_minutes, qa.assigned_at, qa.student_id, qa.batch_year, qa.department_id, "+
			"COUNT(DISTINCT qstn.id) AS total_questions, "+
			"MAX(CASE WHEN sa.id IS NULL THEN 0 ELSE 1 END) AS answered, "+
			"COALESCE(SUM(CASE WHEN sa.is_correct THEN 1 ELSE 0 END), 0) AS score").
		Joins("JOIN quizzes q ON q.id = qa.quiz_id").
		Joins("JOIN questions qstn ON qstn.quiz_id = q.id").
		Joins("LEFT JOIN student_answers sa ON sa.quiz_id = q.id AND sa.question_id = qstn.id AND sa.student_id = ?", studentID).
		Where("qa.student_id = ? OR (qa.student_id IS NULL AND ("+
			"(qa.department_id IS NOT NULL AND qa.batch_year IS NULL AND qa.department_id = ?) "+
			"OR (qa.batch_year IS NOT NULL AND qa.department_id IS NULL AND qa.batch_year = ?) "+
			"OR (qa.department_id IS NOT NULL AND qa.batch_year IS NOT NULL AND qa.department_id = ? AND qa.batch_year = ?)))",
			studentID, departmentID, batchYear, departmentID, batchYear).
		Group("qa.id, q.id, q.title, q.description, q.duration_minutes, qa.assigned_at, qa.student_id, qa.batch_year, qa.department_id").
		Order("qa.assigned_at").
		Scan(&rows).Error
	return rows, err
}

package repository

import (
	"gorm.io/gorm"
)

type ResultRepository struct {
	DB *gorm.DB
}

func NewResultRepository(db *gorm.DB) *ResultRepository {
	return &ResultRepository{DB: db}
}

// ResultFilter 过滤条件按 AND 组合，nil 即不限
type ResultFilter struct {
	DepartmentID *uint
	QuizID       *uint
	TeacherID    *uint
}

type AggregateResultRow struct {
	QuizID            uint      `json:"quiz_id"`
	StudentID         uint      `json:"student_id"`
	QuizTitle         string    `json:"quiz_title"`
	TeacherName       string    `json:"teacher_name"`
	TeacherDepartment string    `json:"teacher_department"`
	StudentName       string    `json:"student_name"`
	StudentDepartment string    `json:"student_department"`
	CorrectCount      int       `json:"correct_count"`
	TotalQuestions    int       `json:"total_questions"`
	// MAX() 聚合列的驱动返回类型不统一，按文本取出
	LastAnsweredAt string `json:"last_answered_at"`
}

// ListResults 报表视图：按（学生，试卷）聚合答案，连上试卷、教师、学生及两侧院系
func (r *ResultRepository) ListResults(filter ResultFilter) ([]AggregateResultRow, error) {
	query := r.DB.Table("student_answers sa").
		Select("q.id AS quiz_id, sa.student_id, q.title AS quiz_title, " +
			"t.name AS teacher_name, td.name AS teacher_department, " +
			"su.name AS student_name, sd.name AS student_department, " +
			"SUM(CASE WHEN sa.is_correct THEN 1 ELSE 0 END) AS correct_count, " +
			"(SELECT COUNT(*) FROM questions qn WHERE qn.quiz_id = q.id) AS total_questions, " +
			"CAST(MAX(sa.created_at) AS CHAR) AS last_answered_at").
		Joins("JOIN quizzes q ON q.id = sa.quiz_id").
		Joins("JOIN users t ON t.id = q.teacher_id").
		Joins("LEFT JOIN teacher_info ti ON ti.user_id = t.id").
		Joins("LEFT JOIN departments td ON td.id = ti.department_id").
		Joins("JOIN users su ON su.id = sa.student_id").
		Joins("LEFT JOIN student_info si ON si.user_id = su.id").
		Joins("LEFT JOIN departments sd ON sd.id = si.department_id")

	if filter.QuizID != nil {
		query = query.Where("q.id = ?", *filter.QuizID)
	}
	if filter.TeacherID != nil {
		query = query.Where("q.teacher_id = ?", *filter.TeacherID)
	}
	if filter.DepartmentID != nil {
		query = query.Where("si.department_id = ?", *filter.DepartmentID)
	}

	var rows []AggregateResultRow
	err := query.
		Group("q.id, sa.student_id, q.title, t.name, td.name, su.name, sd.name").
		Order("last_answered_at DESC").
		Scan(&rows).Error
	return rows, err
}

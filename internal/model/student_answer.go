package model

import "time"

// StudentAnswer 提交时评分并落库，之后只读。
// 唯一索引保证同一学生对同一题只能有一条答案（首次提交生效）。
// swagger:model StudentAnswer
type StudentAnswer struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	StudentID  uint      `gorm:"uniqueIndex:idx_student_quiz_question;type:bigint unsigned;not null" json:"studentId"`
	QuizID     uint      `gorm:"uniqueIndex:idx_student_quiz_question;type:bigint unsigned;not null" json:"quizId"`
	QuestionID uint      `gorm:"uniqueIndex:idx_student_quiz_question;type:bigint unsigned;not null" json:"questionId"`
	OptionID   uint      `gorm:"type:bigint unsigned;not null" json:"optionId"`
	IsCorrect  bool      `gorm:"default:false" json:"isCorrect"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (StudentAnswer) TableName() string {
	return "student_answers"
}

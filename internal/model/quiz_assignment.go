package model

import "time"

// QuizAssignment 指派规则。四种形态（创建时恰好满足其一）：
//  1. StudentID 非空，其余为空 —— 定向指派
//  2. 仅 DepartmentID 非空 —— 按院系
//  3. 仅 BatchYear 非空 —— 按届
//  4. 两者都非空 —— 交集
//
// 按批次解析出的行同时带上 StudentID 和匹配用的 BatchYear/DepartmentID（快照语义）。
// swagger:model QuizAssignment
type QuizAssignment struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	QuizID       uint      `gorm:"index;type:bigint unsigned;not null" json:"quizId"`
	CreatedBy    uint      `gorm:"type:bigint unsigned;not null" json:"createdBy"`
	StudentID    *uint     `gorm:"index;type:bigint unsigned" json:"studentId,omitempty"`
	BatchYear    *int      `json:"batchYear,omitempty"`
	DepartmentID *uint     `gorm:"type:bigint unsigned" json:"departmentId,omitempty"`
	AssignedAt   time.Time `gorm:"autoCreateTime" json:"assignedAt"`
}

func (QuizAssignment) TableName() string {
	return "quiz_assignments"
}

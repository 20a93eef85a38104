package model

// StudentInfo 学生档案，和 User 一对一，随 User 一起删除
// swagger:model StudentInfo
type StudentInfo struct {
	BaseModel
	UserID       uint   `gorm:"uniqueIndex;type:bigint unsigned;not null" json:"userId"`
	RollNumber   string `gorm:"size:50;not null" json:"rollNumber"`
	DepartmentID uint   `gorm:"index;type:bigint unsigned;not null" json:"departmentId"`
	BatchYear    int    `gorm:"index;not null" json:"batchYear"`
}

func (StudentInfo) TableName() string {
	return "student_info"
}

package model

// swagger:model TeacherInfo
type TeacherInfo struct {
	BaseModel
	UserID       uint   `gorm:"uniqueIndex;type:bigint unsigned;not null" json:"userId"`
	DepartmentID uint   `gorm:"index;type:bigint unsigned;not null" json:"departmentId"`
	Phone        string `gorm:"size:20" json:"phone"`
}

func (TeacherInfo) TableName() string {
	return "teacher_info"
}

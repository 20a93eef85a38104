package model

// swagger:model Quiz
type Quiz struct {
	BaseModel
	TeacherID       uint       `gorm:"index;type:bigint unsigned;not null" json:"teacherId"`
	Title           string     `gorm:"size:255;not null" json:"title"`
	Description     string     `gorm:"type:text" json:"description"`
	DurationMinutes int        `gorm:"default:0" json:"durationMinutes"`
	Questions       []Question `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// swagger:model Question
type Question struct {
	BaseModel
	QuizID       uint     `gorm:"index;type:bigint unsigned;not null" json:"quizId"`
	QuestionText string   `gorm:"type:text;not null" json:"questionText"`
	Explanation  string   `gorm:"type:text" json:"explanation,omitempty"`
	Options      []Option `gorm:"foreignKey:QuestionID" json:"options,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

// Option 每题有且仅有一个 IsCorrect=true，由服务层校验
// swagger:model Option
type Option struct {
	BaseModel
	QuestionID uint   `gorm:"index;type:bigint unsigned;not null" json:"questionId"`
	OptionText string `gorm:"type:text;not null" json:"optionText"`
	IsCorrect  bool   `gorm:"default:false" json:"isCorrect"`
}

func (Option) TableName() string {
	return "options"
}

package model

// swagger:model Department
type Department struct {
	BaseModel
	Name string `gorm:"size:100;unique;not null" json:"name"`
}

func (Department) TableName() string {
	return "departments"
}

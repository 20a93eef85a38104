package repository

import (
	"quiz_admin_backend/internal/model"

	"gorm.io/gorm"
)

type TeacherRepository struct {
	DB *gorm.DB
}

func NewTeacherRepository(db *gorm.DB) *TeacherRepository {
	return &TeacherRepository{DB: db}
}

type TeacherRow struct {
	ID           uint           `json:"id"`
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	Role         model.UserRole `json:"role"`
	DepartmentID uint           `json:"departmentId"`
	Department   string         `json:"department"`
	Phone        string         `json:"phone"`
}

func (r *TeacherRepository) teacherQuery() *gorm.DB {
	return r.DB.Table("users u").
		Select("u.id, u.name, u.email, u.role, t.department_id, d.name AS department, t.phone").
		Joins("JOIN teacher_info t ON u.id = t.user_id").
		Joins("JOIN departments d ON t.department_id = d.id").
		Where("u.role = ?", model.Teacher)
}

func (r *TeacherRepository) FindByUserID(id uint) (*TeacherRow, error) {
	var row TeacherRow
	err := r.teacherQuery().Where("u.id = ?", id).Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *TeacherRepository) ListAll() ([]TeacherRow, error) {
	var rows []TeacherRow
	err := r.teacherQuery().Order("u.id").Scan(&rows).Error
	return rows, err
}

func (r *TeacherRepository) FindInfoByUserID(id uint) (*model.TeacherInfo, error) {
	var info model.TeacherInfo
	err := r.DB.Where("user_id = ?", id).First(&info).Error
	return &info, err
}

func (r *TeacherRepository) CreateWithUser(user *model.User, info *model.TeacherInfo) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		info.UserID = user.ID
		return tx.Create(info).Error
	})
}

func (r *TeacherRepository) UpdateWithUser(user *model.User, info *model.TeacherInfo) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(user).Error; err != nil {
			return err
		}
		return tx.Save(info).Error
	})
}

func (r *TeacherRepository) DeleteWithUser(userID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.TeacherInfo{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.User{}, userID).Error
	})
}

package repository

import (
	"quiz_admin_backend/internal/model"

	"gorm.io/gorm"
)

type StudentRepository struct {
	DB *gorm.DB
}

func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{DB: db}
}

// StudentRow 学生视图：users 和 student_info 的连接结果
type StudentRow struct {
	ID           uint           `json:"id"`
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	Role         model.UserRole `json:"role"`
	RollNumber   string         `json:"rollNumber"`
	DepartmentID uint           `json:"departmentId"`
	Department   string         `json:"department"`
	BatchYear    int            `json:"batchYear"`
}

func (r *StudentRepository) studentQuery() *gorm.DB {
	return r.DB.Table("users u").
		Select("u.id, u.name, u.email, u.role, s.roll_number, s.department_id, d.name AS department, s.batch_year").
		Joins("JOIN student_info s ON u.id = s.user_id").
		Joins("JOIN departments d ON s.department_id = d.id").
		Where("u.role = ?", model.Student)
}

func (r *StudentRepository) FindByUserID(id uint) (*StudentRow, error) {
	var row StudentRow
	err := r.studentQuery().Where("u.id = ?", id).Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *StudentRepository) ListAll() ([]StudentRow, error) {
	var rows []StudentRow
	err := r.studentQuery().Order("u.id").Scan(&rows).Error
	return rows, err
}

func (r *StudentRepository) FindInfoByUserID(id uint) (*model.StudentInfo, error) {
	var info model.StudentInfo
	err := r.DB.Where("user_id = ?", id).First(&info).Error
	return &info, err
}

// CreateWithUser 用户和学生档案在一个事务里创建
func (r *StudentRepository) CreateWithUser(user *model.User, info *model.StudentInfo) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		info.UserID = user.ID
		return tx.Create(info).Error
	})
}

func (r *StudentRepository) UpdateWithUser(user *model.User, info *model.StudentInfo) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(user).Error; err != nil {
			return err
		}
		return tx.Save(info).Error
	})
}

// DeleteWithUser 档案随用户一起删除
func (r *StudentRepository) DeleteWithUser(userID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&model.StudentInfo{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.User{}, userID).Error
	})
}

// FindCohort 按届/院系解析学生集合。两个条件都给时取交集；都不给由服务层拦截
func (r *StudentRepository) FindCohort(batchYear *int, departmentID *uint) ([]uint, error) {
	query := r.DB.Table("users u").
		Joins("JOIN student_info s ON u.id = s.user_id").
		Where("u.role = ?", model.Student)

	if batchYear != nil {
		query = query.Where("s.batch_year = ?", *batchYear)
	}
	if departmentID != nil {
		query = query.Where("s.department_id = ?", *departmentID)
	}

	var ids []uint
	err := query.Order("u.id").Pluck("u.id", &ids).Error
	return ids, err
}

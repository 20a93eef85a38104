package service

import (
	"testing"

	"quiz_admin_backend/internal/model"
	"quiz_admin_backend/internal/repository"
	"quiz_admin_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newStudentService(t *testing.T) (*StudentService, *gorm.DB, *model.Department) {
	t.Helper()
	db := newTestDB(t)
	dept := createDepartment(t, db, "计算机")
	svc := NewStudentService(
		repository.NewStudentRepository(db),
		repository.NewUserRepository(db),
		repository.NewDepartmentRepository(db),
	)
	return svc, db, dept
}

func TestStudentCreate(t *testing.T) {
	svc, db, dept := newStudentService(t)

	row, err := svc.Create(StudentCreateReq{
		Name:         "王五",
		Email:        "wangwu@quiz.local",
		Password:     "secret123",
		RollNumber:   "CS-001",
		DepartmentID: dept.ID,
		BatchYear:    2024,
	})
	require.NoError(t, err)
	assert.Equal(t, "王五", row.Name)
	assert.Equal(t, "计算机", row.Department)
	assert.Equal(t, 2024, row.BatchYear)

	// 账号和档案都落库
	var user model.User
	require.NoError(t, db.Take(&user, row.ID).Error)
	assert.Equal(t, model.Student, user.Role)
	assert.NotEqual(t, "secret123", user.Password)

	t.Run("邮箱重复", func(t *testing.T) {
		_, err := svc.Create(StudentCreateReq{
			Name: "重复", Email: "wangwu@quiz.local", Password: "secret123",
			RollNumber: "CS-002", DepartmentID: dept.ID, BatchYear: 2024,
		})
		assert.ErrorIs(t, err, util.ErrEmailRegistered)
	})

	t.Run("院系不存在", func(t *testing.T) {
		_, err := svc.Create(StudentCreateReq{
			Name: "无系", Email: "nodept@quiz.local", Password: "secret123",
			RollNumber: "CS-003", DepartmentID: 9999, BatchYear: 2024,
		})
		assert.ErrorIs(t, err, util.ErrDepartmentNotFound)
	})
}

func TestStudentUpdate(t *testing.T) {
	svc, db, dept := newStudentService(t)
	other := createDepartment(t, db, "机械")

	row, err := svc.Create(StudentCreateReq{
		Name: "王五", Email: "wangwu@quiz.local", Password: "secret123",
		RollNumber: "CS-001", DepartmentID: dept.ID, BatchYear: 2024,
	})
	require.NoError(t, err)

	updated, err := svc.Update(row.ID, StudentUpdateReq{
		Name:         strPtr("王五改"),
		DepartmentID: &other.ID,
		BatchYear:    intPtr(2025),
	})
	require.NoError(t, err)
	assert.Equal(t, "王五改", updated.Name)
	assert.Equal(t, "机械", updated.Department)
	assert.Equal(t, 2025, updated.BatchYear)

	_, err = svc.Update(row.ID, StudentUpdateReq{DepartmentID: uintPtr(9999)})
	assert.ErrorIs(t, err, util.ErrDepartmentNotFound)

	_, err = svc.Update(9999, StudentUpdateReq{Name: strPtr("无人")})
	assert.ErrorIs(t, err, util.ErrStudentNotFound)
}

func TestStudentDelete(t *testing.T) {
	svc, db, dept := newStudentService(t)

	row, err := svc.Create(StudentCreateReq{
		Name: "王五", Email: "wangwu@quiz.local", Password: "secret123",
		RollNumber: "CS-001", DepartmentID: dept.ID, BatchYear: 2024,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(row.ID))

	// 档案和账号一起删除
	var count int64
	require.NoError(t, db.Model(&model.StudentInfo{}).Where("user_id = ?", row.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&model.User{}).Where("id = ?", row.ID).Count(&count).Error)
	assert.Zero(t, count)

	assert.ErrorIs(t, svc.Delete(row.ID), util.ErrStudentNotFound)
}

func TestUserServiceProtectsSeedAdmin(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&model.User{
		Name: "admin", Email: "admin@quiz.local", Password: "hash", Role: model.Admin,
	}).Error) // 自增从 1 开始，即内置管理员

	svc := NewUserService(repository.NewUserRepository(db))

	_, err := svc.Update(model.AdminUserID, UserUpdateReq{Name: strPtr("hack")})
	assert.ErrorIs(t, err, util.ErrProtectedUser)
	assert.ErrorIs(t, svc.Delete(model.AdminUserID), util.ErrProtectedUser)
}

// 角色建档后不可变：更新接口改不了 role
func TestUserUpdateKeepsRole(t *testing.T) {
	db := newTestDB(t)
	dept := createDepartment(t, db, "计算机")
	student := createStudent(t, db, "sunqi", dept.ID, 2024)

	svc := NewUserService(repository.NewUserRepository(db))
	updated, err := svc.Update(student.ID, UserUpdateReq{Name: strPtr("孙七改")})
	require.NoError(t, err)
	assert.Equal(t, "孙七改", updated.Name)
	assert.Equal(t, model.Student, updated.Role)
}

package service

import (
	"fmt"
	"testing"

	"quiz_admin_backend/internal/model"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	// 连接池里每个连接都是独立的内存库，收紧到单连接
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Department{},
		&model.StudentInfo{},
		&model.TeacherInfo{},
		&model.Quiz{},
		&model.Question{},
		&model.Option{},
		&model.QuizAssignment{},
		&model.StudentAnswer{},
	))
	return db
}

func createDepartment(t *testing.T, db *gorm.DB, name string) *model.Department {
	t.Helper()
	dept := &model.Department{Name: name}
	require.NoError(t, db.Create(dept).Error)
	return dept
}

func createStudent(t *testing.T, db *gorm.DB, name string, deptID uint, batchYear int) *model.User {
	t.Helper()
	user := &model.User{
		Name:     name,
		Email:    fmt.Sprintf("%s@quiz.local", name),
		Password: "hash",
		Role:     model.Student,
	}
	require.NoError(t, db.Create(user).Error)
	require.NoError(t, db.Create(&model.StudentInfo{
		UserID:       user.ID,
		RollNumber:   fmt.Sprintf("R-%d", user.ID),
		DepartmentID: deptID,
		BatchYear:    batchYear,
	}).Error)
	return user
}

func createTeacher(t *testing.T, db *gorm.DB, name string, deptID uint) *model.User {
	t.Helper()
	user := &model.User{
		Name:     name,
		Email:    fmt.Sprintf("%s@quiz.local", name),
		Password: "hash",
		Role:     model.Teacher,
	}
	require.NoError(t, db.Create(user).Error)
	require.NoError(t, db.Create(&model.TeacherInfo{
		UserID:       user.ID,
		DepartmentID: deptID,
	}).Error)
	return user
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func uintPtr(u uint) *uint    { return &u }

// twoQuestionQuiz 两道题、各三个选项，第一个选项为正确答案
func twoQuestionQuiz(title string) QuizReq {
	questions := []QuestionReq{
		{
			QuestionText: "第一题",
			Options: []OptionReq{
				{OptionText: "A", IsCorrect: true},
				{OptionText: "B"},
				{OptionText: "C"},
			},
		},
		{
			QuestionText: "第二题",
			Options: []OptionReq{
				{OptionText: "A", IsCorrect: true},
				{OptionText: "B"},
				{OptionText: "C"},
			},
		},
	}
	return QuizReq{
		Title:       strPtr(title),
		Description: strPtr("测试用卷"),
		Questions:   &questions,
	}
}

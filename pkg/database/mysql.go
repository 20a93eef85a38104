package database

import (
	"fmt"
	"log"

	"quiz_admin_backend/internal/config"
	"quiz_admin_backend/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Department{},
		&model.StudentInfo{},
		&model.TeacherInfo{},
		&model.Quiz{},
		&model.Question{},
		&model.Option{},
		&model.QuizAssignment{},
		&model.StudentAnswer{},
	)
}

// Seed 初始化种子数据：id=1 的管理员和一个默认院系
func Seed(db *gorm.DB) error {
	var count int64
	db.Model(&model.User{}).Count(&count)
	if count == 0 {
		hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		admin := &model.User{
			Name:     "Administrator",
			Email:    "admin@quiz.local",
			Password: string(hashed),
			Role:     model.Admin,
		}
		admin.ID = model.AdminUserID
		if err := db.Create(admin).Error; err != nil {
			return err
		}
		log.Println("Seeded default admin user (change the password!)")
	}

	var deptCount int64
	db.Model(&model.Department{}).Count(&deptCount)
	if deptCount == 0 {
		if err := db.Create(&model.Department{Name: "General"}).Error; err != nil {
			return err
		}
	}

	return nil
}

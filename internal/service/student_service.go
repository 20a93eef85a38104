package service

import (
	"errors"

	"quiz_admin_backend/internal/model"
	"quiz_admin_backend/internal/repository"
	"quiz_admin_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type StudentService struct {
	Repo     *repository.StudentRepository
	UserRepo *repository.UserRepository
	DeptRepo *repository.DepartmentRepository
}

func NewStudentService(repo *repository.StudentRepository, userRepo *repository.UserRepository, deptRepo *repository.DepartmentRepository) *StudentService {
	return &StudentService{Repo: repo, UserRepo: userRepo, DeptRepo: deptRepo}
}

type StudentCreateReq struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required"`
	RollNumber   string `json:"rollNumber" binding:"required"`
	DepartmentID uint   `json:"departmentId" binding:"required"`
	BatchYear    int    `json:"batchYear" binding:"required"`
}

func (s *StudentService) Create(req StudentCreateReq) (*repository.StudentRow, error) {
	if _, err := s.DeptRepo.FindByID(req.DepartmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrDepartmentNotFound
		}
		return nil, err
	}

	if _, err := s.UserRepo.FindByEmail(req.Email); err == nil {
		return nil, util.ErrEmailRegistered
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashed),
		Role:     model.Student,
	}
	info := &model.StudentInfo{
		RollNumber:   req.RollNumber,
		DepartmentID: req.DepartmentID,
		BatchYear:    req.BatchYear,
	}

	if err := s.Repo.CreateWithUser(user, info); err != nil {
		return nil, err
	}

	return s.Repo.FindByUserID(user.ID)
}

func (s *StudentService) Get(id uint) (*repository.StudentRow, error) {
	row, err := s.Repo.FindByUserID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrStudentNotFound
	}
	return row, err
}

func (s *StudentService) List() ([]repository.StudentRow, error) {
	return s.Repo.ListAll()
}

type StudentUpdateReq struct {
	Name         *string `json:"name"`
	Email        *string `json:"email"`
	Password     *string `json:"password"`
	RollNumber   *string `json:"rollNumber"`
	DepartmentID *uint   `json:"departmentId"`
	BatchYear    *int    `json:"batchYear"`
}

func (s *StudentService) Update(id uint, req StudentUpdateReq) (*repository.StudentRow, error) {
	if _, err := s.Get(id); err != nil {
		return nil, err
	}

	user, err := s.UserRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	info, err := s.Repo.FindInfoByUserID(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hashed)
	}
	if req.RollNumber != nil {
		info.RollNumber = *req.RollNumber
	}
	if req.DepartmentID != nil {
		if _, err := s.DeptRepo.FindByID(*req.DepartmentID); err != nil {
			return nil, util.ErrDepartmentNotFound
		}
		info.DepartmentID = *req.DepartmentID
	}
	if req.BatchYear != nil {
		info.BatchYear = *req.BatchYear
	}

	if err := s.Repo.UpdateWithUser(user, info); err != nil {
		return nil, err
	}
	return s.Repo.FindByUserID(id)
}

func (s *StudentService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.Repo.DeleteWithUser(id)
}

package service

import (
	"errors"

	"quiz_admin_backend/internal/model"
	"quiz_admin_backend/internal/repository"
	"quiz_admin_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type TeacherService struct {
	Repo     *repository.TeacherRepository
	UserRepo *repository.UserRepository
	DeptRepo *repository.DepartmentRepository
}

func NewTeacherService(repo *repository.TeacherRepository, userRepo *repository.UserRepository, deptRepo *repository.DepartmentRepository) *TeacherService {
	return &TeacherService{Repo: repo, UserRepo: userRepo, DeptRepo: deptRepo}
}

type TeacherCreateReq struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required"`
	DepartmentID uint   `json:"departmentId" binding:"required"`
	Phone        string `json:"phone"`
}

func (s *TeacherService) Create(req TeacherCreateReq) (*repository.TeacherRow, error) {
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
		Role:     model.Teacher,
	}
	info := &model.TeacherInfo{
		DepartmentID: req.DepartmentID,
		Phone:        req.Phone,
	}

	if err := s.Repo.CreateWithUser(user, info); err != nil {
		return nil, err
	}

	return s.Repo.FindByUserID(user.ID)
}

func (s *TeacherService) Get(id uint) (*repository.TeacherRow, error) {
	row, err := s.Repo.FindByUserID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrTeacherNotFound
	}
	return row, err
}

func (s *TeacherService) List() ([]repository.TeacherRow, error) {
	return s.Repo.ListAll()
}

type TeacherUpdateReq struct {
	Name         *string `json:"name"`
	Email        *string `json:"email"`
	Password     *string `json:"password"`
	DepartmentID *uint   `json:"departmentId"`
	Phone        *string `json:"phone"`
}

func (s *TeacherService) Update(id uint, req TeacherUpdateReq) (*repository.TeacherRow, error) {
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
	if req.DepartmentID != nil {
		if _, err := s.DeptRepo.FindByID(*req.DepartmentID); err != nil {
			return nil, util.ErrDepartmentNotFound
		}
		info.DepartmentID = *req.DepartmentID
	}
	if req.Phone != nil {
		info.Phone = *req.Phone
	}

	if err := s.Repo.UpdateWithUser(user, info); err != nil {
		return nil, err
	}
	return s.Repo.FindByUserID(id)
}

func (s *TeacherService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.Repo.DeleteWithUser(id)
}

package service

import (
	"errors"

	"quiz_admin_backend/internal/model"
	"quiz_admin_backend/internal/repository"
	"quiz_admin_backend/internal/util"

	"gorm.io/gorm"
)

type DepartmentService struct {
	Repo *repository.DepartmentRepository
}

func NewDepartmentService(repo *repository.DepartmentRepository) *DepartmentService {
	return &DepartmentService{Repo: repo}
}

func (s *DepartmentService) Create(name string) (*model.Department, error) {
	dept := &model.Department{Name: name}
	if err := s.Repo.Create(dept); err != nil {
		return nil, err
	}
	return dept, nil
}

func (s *DepartmentService) Get(id uint) (*model.Department, error) {
	dept, err := s.Repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrDepartmentNotFound
	}
	return dept, err
}

func (s *DepartmentService) List() ([]model.Department, error) {
	return s.Repo.ListAll()
}

func (s *DepartmentService) Update(id uint, name string) (*model.Department, error) {
	dept, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	dept.Name = name
	if err := s.Repo.Update(dept); err != nil {
		return nil, err
	}
	return dept, nil
}

func (s *DepartmentService) Delete(id uint) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.Repo.Delete(id)
}

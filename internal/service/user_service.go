package service

import (
	"quiz_admin_backend/internal/model"
	"quiz_admin_backend/internal/repository"
	"quiz_admin_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	Repo *repository.UserRepository
}

func NewUserService(repo *repository.UserRepository) *UserService {
	return &UserService{Repo: repo}
}

func (s *UserService) ListByRole(role model.UserRole) ([]model.User, error) {
	return s.Repo.ListByRole(role)
}

func (s *UserService) Get(id uint) (*model.User, error) {
	return s.Repo.FindByID(id)
}

// UserUpdateReq 角色建档后不可变（1:1 档案行跟着角色走），所以这里没有 role 字段
type UserUpdateReq struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

func (s *UserService) Update(id uint, req UserUpdateReq) (*model.User, error) {
	if id == model.AdminUserID {
		return nil, util.ErrProtectedUser
	}

	user, err := s.Repo.FindByID(id)
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
	if err := s.Repo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(id uint) error {
	if id == model.AdminUserID {
		return util.ErrProtectedUser
	}
	if _, err := s.Repo.FindByID(id); err != nil {
		return err
	}
	return s.Repo.Delete(id)
}

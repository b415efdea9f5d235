package services

import (
	"errors"

	"expense_tracker/internal/models"
	"expense_tracker/internal/repositories"
	"expense_tracker/internal/services/dto"
	"expense_tracker/pkg/apperrors"

	"gorm.io/gorm"
)

type EmployeeService interface {
	List(db *gorm.DB) ([]dto.UserResponse, error)
	Suspend(db *gorm.DB, employeeID string) (*dto.UserResponse, error)
	Activate(db *gorm.DB, employeeID string) (*dto.UserResponse, error)
}

type EmployeeServiceImpl struct {
	userRepo repositories.UserRepository
}

func NewEmployeeService(userRepo repositories.UserRepository) EmployeeService {
	return &EmployeeServiceImpl{userRepo: userRepo}
}

func (s *EmployeeServiceImpl) List(db *gorm.DB) ([]dto.UserResponse, error) {
	users, err := s.userRepo.ListByRole(db, models.UserRoleEmployee)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewUserResponses(users), nil
}

func (s *EmployeeServiceImpl) Suspend(db *gorm.DB, employeeID string) (*dto.UserResponse, error) {
	return s.setSuspended(db, employeeID, true)
}

func (s *EmployeeServiceImpl) Activate(db *gorm.DB, employeeID string) (*dto.UserResponse, error) {
	return s.setSuspended(db, employeeID, false)
}

// Only users with the employee role can be managed; anyone else is reported
// as not found.
func (s *EmployeeServiceImpl) setSuspended(db *gorm.DB, employeeID string, suspended bool) (*dto.UserResponse, error) {
	user, err := s.userRepo.SetSuspended(db, employeeID, models.UserRoleEmployee, suspended)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

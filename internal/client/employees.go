package client

import (
	"context"
	"net/http"
	"net/url"

	"expense_tracker/internal/services/dto"
)

type EmployeeService struct {
	client *Client
}

func (s *EmployeeService) List(ctx context.Context) ([]dto.UserResponse, error) {
	var out []dto.UserResponse
	if err := s.client.Do(ctx, http.MethodGet, "/employees", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *EmployeeService) Suspend(ctx context.Context, id string) (*dto.UserResponse, error) {
	return s.toggle(ctx, id, "suspend")
}

func (s *EmployeeService) Activate(ctx context.Context, id string) (*dto.UserResponse, error) {
	return s.toggle(ctx, id, "activate")
}

func (s *EmployeeService) toggle(ctx context.Context, id, action string) (*dto.UserResponse, error) {
	var out dto.UserResponse
	path := "/employees/" + url.PathEscape(id) + "/" + action
	if err := s.client.Do(ctx, http.MethodPost, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

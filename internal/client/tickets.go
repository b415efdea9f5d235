package client

import (
	"context"
	"net/http"
	"net/url"

	"expense_tracker/internal/services/dto"
)

type TicketService struct {
	client *Client
}

func ticketPath(id string, suffix string) string {
	return "/tickets/" + url.PathEscape(id) + suffix
}

func (s *TicketService) List(ctx context.Context) ([]dto.TicketResponse, error) {
	var out []dto.TicketResponse
	if err := s.client.Do(ctx, http.MethodGet, "/tickets", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *TicketService) Get(ctx context.Context, id string) (*dto.TicketResponse, error) {
	return s.one(ctx, http.MethodGet, ticketPath(id, ""), nil)
}

func (s *TicketService) Create(ctx context.Context, req dto.CreateTicketRequest) (*dto.TicketResponse, error) {
	return s.one(ctx, http.MethodPost, "/tickets", req)
}

func (s *TicketService) Update(ctx context.Context, id string, req dto.UpdateTicketRequest) (*dto.TicketResponse, error) {
	return s.one(ctx, http.MethodPut, ticketPath(id, ""), req)
}

func (s *TicketService) Approve(ctx context.Context, id string) (*dto.TicketResponse, error) {
	return s.one(ctx, http.MethodPost, ticketPath(id, "/approve"), nil)
}

func (s *TicketService) Deny(ctx context.Context, id string) (*dto.TicketResponse, error) {
	return s.one(ctx, http.MethodPost, ticketPath(id, "/deny"), nil)
}

func (s *TicketService) Delete(ctx context.Context, id string) error {
	return s.client.Do(ctx, http.MethodDelete, ticketPath(id, ""), nil, nil)
}

func (s *TicketService) Events(ctx context.Context, id string) ([]dto.TicketEventResponse, error) {
	var out []dto.TicketEventResponse
	if err := s.client.Do(ctx, http.MethodGet, ticketPath(id, "/events"), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *TicketService) one(ctx context.Context, method, path string, body interface{}) (*dto.TicketResponse, error) {
	var out dto.TicketResponse
	if err := s.client.Do(ctx, method, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

package service

import (
	"context"
	"fmt"

	"evalux/internal/domain/model"
	"evalux/internal/domain/repository"
)

// AdminService exposes the read-only views behind the admin endpoints.
type AdminService struct {
	userRepo repository.UserRepository
	cvRepo   repository.CVRepository
}

func NewAdminService(userRepo repository.UserRepository, cvRepo repository.CVRepository) *AdminService {
	return &AdminService{userRepo: userRepo, cvRepo: cvRepo}
}

type UserListResponse struct {
	Users []model.User `json:"users"`
	Total int          `json:"total"`
}

type UserDetail struct {
	User    *model.User `json:"user"`
	CVCount int         `json:"cv_count"`
}

func (s *AdminService) Stats(ctx context.Context) (*model.UserStats, error) {
	stats, err := s.userRepo.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load user stats: %w", err)
	}
	return stats, nil
}

func (s *AdminService) ListUsers(ctx context.Context, limit, offset int) (*UserListResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	users, total, err := s.userRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return &UserListResponse{Users: users, Total: total}, nil
}

func (s *AdminService) GetUser(ctx context.Context, id string) (*UserDetail, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	user.HashedPassword = ""

	cvCount, err := s.cvRepo.CountByUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to count analyses: %w", err)
	}
	return &UserDetail{User: user, CVCount: cvCount}, nil
}

package service

import (
	"context"

	"blogify/internal/models"
	"blogify/internal/observability"
	"blogify/internal/repository"
)

// AdminService backs the admin dashboard: listings with activity stats,
// aggregate reports and moderation deletes.
type AdminService struct {
	adminRepo repository.AdminRepository
	userRepo  repository.UserRepository
	postRepo  repository.PostRepository
}

func NewAdminService(
	adminRepo repository.AdminRepository,
	userRepo repository.UserRepository,
	postRepo repository.PostRepository,
) *AdminService {
	return &AdminService{
		adminRepo: adminRepo,
		userRepo:  userRepo,
		postRepo:  postRepo,
	}
}

func (s *AdminService) ListUsers(ctx context.Context, search string, limit, offset int) ([]repository.UserStats, int64, error) {
	return s.adminRepo.ListUsers(ctx, search, limit, offset)
}

func (s *AdminService) ListPosts(ctx context.Context, search string, limit, offset int) ([]*models.Post, int64, error) {
	return s.adminRepo.ListPosts(ctx, search, limit, offset)
}

func (s *AdminService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.userRepo.GetProfile(ctx, user.Username)
}

func (s *AdminService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetWithComments(ctx, id, 0)
}

func (s *AdminService) GetDashboardStats(ctx context.Context) (*repository.DashboardStats, error) {
	span, ctx := observability.NewSpan(ctx, "admin.dashboard_stats")
	defer span.End()

	stats, err := s.adminRepo.GetDashboardStats(ctx)
	if err != nil {
		span.SetError(err)
	}
	return stats, err
}

func (s *AdminService) GetAnalytics(ctx context.Context) (*repository.Analytics, error) {
	span, ctx := observability.NewSpan(ctx, "admin.analytics")
	defer span.End()

	report, err := s.adminRepo.GetAnalytics(ctx)
	if err != nil {
		span.SetError(err)
	}
	return report, err
}

// DeleteUser removes a user and everything they authored. Admins cannot
// delete themselves through this path.
func (s *AdminService) DeleteUser(ctx context.Context, adminID, targetID uint) error {
	if adminID == targetID {
		return models.NewValidationError("Use account deletion to remove your own account")
	}
	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return err
	}
	return s.userRepo.DeleteCascade(ctx, targetID)
}

func (s *AdminService) DeletePost(ctx context.Context, postID uint) error {
	if _, err := s.postRepo.GetByID(ctx, postID, 0); err != nil {
		return err
	}
	return s.postRepo.Delete(ctx, postID)
}

package service

import (
	"context"

	"blogify/internal/cache"
	"blogify/internal/models"
	"blogify/internal/repository"
)

type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

// ToggleFollowResult reports the follow relationship after a toggle.
type ToggleFollowResult struct {
	Following      bool  `json:"following"`
	FollowersCount int64 `json:"followers_count"`
}

func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// ToggleFollow follows the target if no edge exists and unfollows otherwise.
// Both mutations keep the follower and followee views consistent because the
// relationship is a single edge row.
func (s *FollowService) ToggleFollow(ctx context.Context, followerID, followeeID uint) (*ToggleFollowResult, error) {
	if followerID == followeeID {
		return nil, models.NewValidationError("You cannot follow yourself")
	}

	followee, err := s.userRepo.GetByID(ctx, followeeID)
	if err != nil {
		return nil, err
	}

	following, err := s.followRepo.Toggle(ctx, followerID, followeeID)
	if err != nil {
		return nil, err
	}
	// Both profiles carry edge-derived counts.
	cache.InvalidateProfile(ctx, followee.Username)
	if follower, ferr := s.userRepo.GetByIDCached(ctx, followerID); ferr == nil && follower != nil {
		cache.InvalidateProfile(ctx, follower.Username)
	}

	count, err := s.followRepo.FollowerCount(ctx, followeeID)
	if err != nil {
		return nil, err
	}

	return &ToggleFollowResult{
		Following:      following,
		FollowersCount: count,
	}, nil
}

func (s *FollowService) IsFollowing(ctx context.Context, followerID, followeeID uint) (bool, error) {
	return s.followRepo.IsFollowing(ctx, followerID, followeeID)
}

func (s *FollowService) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.Followers(ctx, userID)
}

func (s *FollowService) Following(ctx context.Context, userID uint) ([]models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.Following(ctx, userID)
}

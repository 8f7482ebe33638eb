package service

import (
	"context"
	"strings"
	"testing"

	"blogify/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn          func(context.Context, *models.Post) error
	getByIDFn         func(context.Context, uint, uint) (*models.Post, error)
	getWithCommentsFn func(context.Context, uint, uint) (*models.Post, error)
	feedFn            func(context.Context, uint, int, int) ([]*models.Post, error)
	getByUserIDFn     func(context.Context, uint, int, int, uint) ([]*models.Post, error)
	updateFn          func(context.Context, *models.Post) error
	deleteFn          func(context.Context, uint) error
	isLikedFn         func(context.Context, uint, uint) (bool, error)
	likeFn            func(context.Context, uint, uint) error
	unlikeFn          func(context.Context, uint, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *postRepoStub) GetWithComments(ctx context.Context, id, currentUserID uint) (*models.Post, error) {
	return s.getWithCommentsFn(ctx, id, currentUserID)
}
func (s *postRepoStub) Feed(ctx context.Context, currentUserID uint, limit, offset int) ([]*models.Post, error) {
	return s.feedFn(ctx, currentUserID, limit, offset)
}
func (s *postRepoStub) GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint) ([]*models.Post, error) {
	return s.getByUserIDFn(ctx, userID, limit, offset, currentUserID)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, postID)
}
func (s *postRepoStub) Like(ctx context.Context, userID, postID uint) error {
	return s.likeFn(ctx, userID, postID)
}
func (s *postRepoStub) Unlike(ctx context.Context, userID, postID uint) error {
	return s.unlikeFn(ctx, userID, postID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(_ context.Context, p *models.Post) error {
			p.ID = 1
			return nil
		},
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Post, error) {
			return &models.Post{ID: id, UserID: 1, Text: "hello"}, nil
		},
		getWithCommentsFn: func(_ context.Context, id, _ uint) (*models.Post, error) {
			return &models.Post{ID: id, UserID: 1, Text: "hello"}, nil
		},
		feedFn: func(_ context.Context, _ uint, _, _ int) ([]*models.Post, error) {
			return nil, nil
		},
		getByUserIDFn: func(_ context.Context, _ uint, _, _ int, _ uint) ([]*models.Post, error) {
			return nil, nil
		},
		updateFn:  func(_ context.Context, _ *models.Post) error { return nil },
		deleteFn:  func(_ context.Context, _ uint) error { return nil },
		isLikedFn: func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		likeFn:    func(_ context.Context, _, _ uint) error { return nil },
		unlikeFn:  func(_ context.Context, _, _ uint) error { return nil },
	}
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok, "expected *models.AppError, got %T", err)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func assertForbiddenError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok, "expected *models.AppError, got %T", err)
	assert.Equal(t, "FORBIDDEN", appErr.Code)
}

func neverAdmin(_ context.Context, _ uint) (bool, error) { return false, nil }
func alwaysAdmin(_ context.Context, _ uint) (bool, error) { return true, nil }

func TestPostService_CreatePost(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("blank text rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewPostService(noopPostRepo(), neverAdmin)
		_, err := svc.CreatePost(ctx, CreatePostInput{UserID: 1, Text: "   "})
		assertValidationError(t, err)
	})

	t.Run("text too long rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewPostService(noopPostRepo(), neverAdmin)
		_, err := svc.CreatePost(ctx, CreatePostInput{UserID: 1, Text: strings.Repeat("x", 10001)})
		assertValidationError(t, err)
	})

	t.Run("text is trimmed", func(t *testing.T) {
		t.Parallel()
		repo := noopPostRepo()
		var created *models.Post
		repo.createFn = func(_ context.Context, p *models.Post) error {
			p.ID = 7
			created = p
			return nil
		}
		svc := NewPostService(repo, neverAdmin)
		_, err := svc.CreatePost(ctx, CreatePostInput{UserID: 1, Text: "  hi there  "})
		require.NoError(t, err)
		assert.Equal(t, "hi there", created.Text)
	})
}

func TestPostService_UpdatePost_Ownership(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 2, Text: "not yours"}, nil
	}
	svc := NewPostService(repo, neverAdmin)

	_, err := svc.UpdatePost(ctx, UpdatePostInput{UserID: 1, PostID: 5, Text: "edit"})
	assertForbiddenError(t, err)
}

func TestPostService_DeletePost(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	otherOwned := func() *postRepoStub {
		repo := noopPostRepo()
		repo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
			return &models.Post{ID: id, UserID: 2}, nil
		}
		return repo
	}

	t.Run("non-owner rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewPostService(otherOwned(), neverAdmin)
		err := svc.DeletePost(ctx, DeletePostInput{UserID: 1, PostID: 5})
		assertForbiddenError(t, err)
	})

	t.Run("admin may delete any post", func(t *testing.T) {
		t.Parallel()
		repo := otherOwned()
		deleted := false
		repo.deleteFn = func(_ context.Context, _ uint) error {
			deleted = true
			return nil
		}
		svc := NewPostService(repo, alwaysAdmin)
		err := svc.DeletePost(ctx, DeletePostInput{UserID: 1, PostID: 5})
		require.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("owner may delete", func(t *testing.T) {
		t.Parallel()
		repo := noopPostRepo()
		svc := NewPostService(repo, neverAdmin)
		err := svc.DeletePost(ctx, DeletePostInput{UserID: 1, PostID: 5})
		assert.NoError(t, err)
	})
}

func TestPostService_ToggleLike(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("not liked yet likes", func(t *testing.T) {
		t.Parallel()
		repo := noopPostRepo()
		liked, unliked := false, false
		repo.likeFn = func(_ context.Context, _, _ uint) error { liked = true; return nil }
		repo.unlikeFn = func(_ context.Context, _, _ uint) error { unliked = true; return nil }
		svc := NewPostService(repo, neverAdmin)

		_, err := svc.ToggleLike(ctx, 1, 5)
		require.NoError(t, err)
		assert.True(t, liked)
		assert.False(t, unliked)
	})

	t.Run("already liked unlikes", func(t *testing.T) {
		t.Parallel()
		repo := noopPostRepo()
		repo.isLikedFn = func(_ context.Context, _, _ uint) (bool, error) { return true, nil }
		liked, unliked := false, false
		repo.likeFn = func(_ context.Context, _, _ uint) error { liked = true; return nil }
		repo.unlikeFn = func(_ context.Context, _, _ uint) error { unliked = true; return nil }
		svc := NewPostService(repo, neverAdmin)

		_, err := svc.ToggleLike(ctx, 1, 5)
		require.NoError(t, err)
		assert.False(t, liked)
		assert.True(t, unliked)
	})

	t.Run("missing post propagates not found", func(t *testing.T) {
		t.Parallel()
		repo := noopPostRepo()
		repo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
			return nil, models.NewNotFoundError("Post", id)
		}
		svc := NewPostService(repo, neverAdmin)

		_, err := svc.ToggleLike(ctx, 1, 99)
		require.Error(t, err)
		appErr, ok := err.(*models.AppError)
		require.True(t, ok)
		assert.Equal(t, "NOT_FOUND", appErr.Code)
	})
}

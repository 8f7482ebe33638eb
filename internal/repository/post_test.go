package repository

import (
	"context"
	"testing"

	"blogify/internal/cache"
	"blogify/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository_GetByID_Details(t *testing.T) {
	db := testDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createUser(t, db)
	fan := createUser(t, db)
	post := createPost(t, db, author, "counting test")

	require.NoError(t, repo.Like(ctx, fan.ID, post.ID))
	require.NoError(t, db.Create(&models.Comment{Text: "nice", UserID: fan.ID, PostID: post.ID}).Error)

	got, err := repo.GetByID(ctx, post.ID, fan.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.LikesCount)
	assert.Equal(t, 1, got.CommentsCount)
	assert.True(t, got.Liked)
	assert.Equal(t, author.Username, got.User.Username)

	// A different viewer sees the same counts but not the liked flag.
	got, err = repo.GetByID(ctx, post.ID, author.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.LikesCount)
	assert.False(t, got.Liked)
}

func TestPostRepository_GetByID_NotFound(t *testing.T) {
	db := testDB(t)
	repo := NewPostRepository(db)

	_, err := repo.GetByID(context.Background(), 12345, 0)
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestPostRepository_Feed_ExcludesOwnPosts(t *testing.T) {
	db := testDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	alice := createUser(t, db)
	bob := createUser(t, db)
	createPost(t, db, alice, "mine")
	bobPost := createPost(t, db, bob, "theirs")

	feed, err := repo.Feed(ctx, alice.ID, 20, 0)
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, bobPost.ID, feed[0].ID)
	assert.Equal(t, bob.Username, feed[0].User.Username)
}

func TestPostRepository_LikeIsIdempotent(t *testing.T) {
	db := testDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createUser(t, db)
	fan := createUser(t, db)
	post := createPost(t, db, author, "like me")

	require.NoError(t, repo.Like(ctx, fan.ID, post.ID))
	require.NoError(t, repo.Like(ctx, fan.ID, post.ID))

	var likes int64
	require.NoError(t, db.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&likes).Error)
	assert.Equal(t, int64(1), likes)

	// Unlike twice: second call is a no-op.
	require.NoError(t, repo.Unlike(ctx, fan.ID, post.ID))
	require.NoError(t, repo.Unlike(ctx, fan.ID, post.ID))

	require.NoError(t, db.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&likes).Error)
	assert.Equal(t, int64(0), likes)
}

func TestPostRepository_GetWithComments_Ordering(t *testing.T) {
	db := testDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createUser(t, db)
	commenter := createUser(t, db)
	post := createPost(t, db, author, "thread")

	for _, text := range []string{"first", "second", "third"} {
		require.NoError(t, db.Create(&models.Comment{Text: text, UserID: commenter.ID, PostID: post.ID}).Error)
	}

	got, err := repo.GetWithComments(ctx, post.ID, 0)
	require.NoError(t, err)
	require.Len(t, got.Comments, 3)
	assert.Equal(t, "first", got.Comments[0].Text)
	assert.Equal(t, "third", got.Comments[2].Text)
	assert.Equal(t, commenter.Username, got.Comments[0].User.Username)
}

func TestPostRepository_Delete_RemovesChildren(t *testing.T) {
	db := testDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	author := createUser(t, db)
	fan := createUser(t, db)
	post := createPost(t, db, author, "doomed")

	require.NoError(t, repo.Like(ctx, fan.ID, post.ID))
	require.NoError(t, db.Create(&models.Comment{Text: "bye", UserID: fan.ID, PostID: post.ID}).Error)

	require.NoError(t, repo.Delete(ctx, post.ID))

	var likes, comments, posts int64
	require.NoError(t, db.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&likes).Error)
	require.NoError(t, db.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&comments).Error)
	require.NoError(t, db.Model(&models.Post{}).Where("id = ?", post.ID).Count(&posts).Error)
	assert.Zero(t, likes)
	assert.Zero(t, comments)
	assert.Zero(t, posts)
}

// Not parallel: swaps the global cache client.
func TestPostRepository_WritesDropAuthorCachedProfile(t *testing.T) {
	db := testDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	cache.SetClient(rdb)
	t.Cleanup(func() { cache.SetClient(nil) })

	author := createUser(t, db)
	key := cache.ProfileKey(author.Username)

	// The cached profile embeds the author's post list.
	require.NoError(t, mr.Set(key, "{}"))
	post := &models.Post{Text: "fresh", UserID: author.ID}
	require.NoError(t, repo.Create(ctx, post))
	assert.False(t, mr.Exists(key))

	require.NoError(t, mr.Set(key, "{}"))
	require.NoError(t, repo.Delete(ctx, post.ID))
	assert.False(t, mr.Exists(key))
}

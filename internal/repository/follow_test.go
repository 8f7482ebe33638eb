package repository

import (
	"context"
	"testing"

	"blogify/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowRepository_Toggle(t *testing.T) {
	db := testDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	alice := createUser(t, db)
	bob := createUser(t, db)

	following, err := repo.Toggle(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, following)

	isFollowing, err := repo.IsFollowing(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, isFollowing)

	// The edge is one row, so the follower's view and the followee's view
	// can never disagree.
	count, err := repo.FollowerCount(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	followers, err := repo.Followers(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, followers, 1)
	assert.Equal(t, alice.ID, followers[0].ID)

	followingList, err := repo.Following(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, followingList, 1)
	assert.Equal(t, bob.ID, followingList[0].ID)

	// Second toggle removes the edge.
	following, err = repo.Toggle(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, following)

	count, err = repo.FollowerCount(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestFollowRepository_ToggleIsDirectional(t *testing.T) {
	db := testDB(t)
	repo := NewFollowRepository(db)
	ctx := context.Background()

	alice := createUser(t, db)
	bob := createUser(t, db)

	_, err := repo.Toggle(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	// alice -> bob does not imply bob -> alice.
	reverse, err := repo.IsFollowing(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, reverse)

	// Both directions can coexist as independent edges.
	_, err = repo.Toggle(ctx, bob.ID, alice.ID)
	require.NoError(t, err)

	var edges int64
	require.NoError(t, db.Model(&models.Follow{}).Count(&edges).Error)
	assert.Equal(t, int64(2), edges)
}

func TestFollowRepository_DuplicateEdgeRejected(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()

	alice := createUser(t, db)
	bob := createUser(t, db)

	repo := NewFollowRepository(db)
	_, err := repo.Toggle(ctx, alice.ID, bob.ID)
	require.NoError(t, err)

	// A raw duplicate insert trips the unique index.
	dup := &models.Follow{FollowerID: alice.ID, FolloweeID: bob.ID}
	assert.Error(t, db.Create(dup).Error)
}

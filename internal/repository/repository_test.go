package repository

import (
	"fmt"
	"testing"

	"blogify/internal/database"
	"blogify/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// testDB opens an isolated in-memory database with the full schema.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.ConnectTest()
	require.NoError(t, err)
	return db
}

var userSeq int

// createUser persists a minimal user with unique identity fields.
func createUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	userSeq++
	user := &models.User{
		Name:     fmt.Sprintf("User %d", userSeq),
		Username: fmt.Sprintf("user%d", userSeq),
		Email:    fmt.Sprintf("user%d@example.com", userSeq),
		Password: "hashed-password",
		Role:     models.RoleUser,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createPost(t *testing.T, db *gorm.DB, author *models.User, text string) *models.Post {
	t.Helper()
	post := &models.Post{Text: text, UserID: author.ID}
	require.NoError(t, db.Create(post).Error)
	return post
}

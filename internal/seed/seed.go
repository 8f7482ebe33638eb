// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"errors"
	"fmt"
	"log/slog"

	"blogify/internal/config"
	"blogify/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configures the seeder.
type Options struct {
	NumUsers   int
	NumPosts   int
	MaxDays    int
	SkipBcrypt bool
}

// Seeder populates the database with a believable social mesh.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
	opts    Options
}

// NewSeeder creates a seeder with the given options.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 50
	}
	if opts.NumPosts <= 0 {
		opts.NumPosts = 200
	}
	return &Seeder{
		db:      db,
		factory: NewFactory(db, opts),
		opts:    opts,
	}
}

// ClearAll wipes all seeded tables. Child tables go first.
func (s *Seeder) ClearAll() error {
	tables := []string{"likes", "comments", "follows", "posts", "users"}
	for _, table := range tables {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	slog.Info("database cleared")
	return nil
}

// SeedSocialMesh creates users, posts and a web of follows, likes and
// comments between them.
func (s *Seeder) SeedSocialMesh() error {
	users := make([]*models.User, 0, s.opts.NumUsers)
	for i := 0; i < s.opts.NumUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return fmt.Errorf("creating user: %w", err)
		}
		users = append(users, user)
	}
	slog.Info("seeded users", "count", len(users))

	posts := make([]*models.Post, 0, s.opts.NumPosts)
	for i := 0; i < s.opts.NumPosts; i++ {
		author := users[s.factory.rng.Intn(len(users))]
		post, err := s.factory.CreatePost(author)
		if err != nil {
			return fmt.Errorf("creating post: %w", err)
		}
		posts = append(posts, post)
	}
	slog.Info("seeded posts", "count", len(posts))

	// Each user follows a handful of others.
	for _, follower := range users {
		n := s.factory.rng.Intn(8)
		for i := 0; i < n; i++ {
			followee := users[s.factory.rng.Intn(len(users))]
			if err := s.factory.CreateFollow(follower, followee); err != nil {
				return fmt.Errorf("creating follow: %w", err)
			}
		}
	}

	// Sprinkle likes and comments over the posts.
	for _, post := range posts {
		likes := s.factory.rng.Intn(10)
		for i := 0; i < likes; i++ {
			fan := users[s.factory.rng.Intn(len(users))]
			if err := s.factory.CreateLike(fan, post); err != nil {
				return fmt.Errorf("creating like: %w", err)
			}
		}
		comments := s.factory.rng.Intn(4)
		for i := 0; i < comments; i++ {
			commenter := users[s.factory.rng.Intn(len(users))]
			if _, err := s.factory.CreateComment(commenter, post); err != nil {
				return fmt.Errorf("creating comment: %w", err)
			}
		}
	}

	slog.Info("social mesh seeded")
	return nil
}

// EnsureBootstrapAdmin creates the configured admin account if it does not
// exist yet, or promotes it if it does.
func EnsureBootstrapAdmin(db *gorm.DB, cfg *config.Config) error {
	if !cfg.HasBootstrapAdmin() {
		return nil
	}

	var user models.User
	err := db.Where("LOWER(email) = LOWER(?)", cfg.AdminEmail).First(&user).Error
	if err == nil {
		if user.Role == models.RoleAdmin {
			return nil
		}
		user.Role = models.RoleAdmin
		return db.Save(&user).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := &models.User{
		Name:     cfg.AdminUsername,
		Username: cfg.AdminUsername,
		Email:    cfg.AdminEmail,
		Password: string(hashedPassword),
		Role:     models.RoleAdmin,
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}
	slog.Info("bootstrap admin created", "username", cfg.AdminUsername)
	return nil
}

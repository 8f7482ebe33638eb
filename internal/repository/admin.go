package repository

import (
	"context"
	"time"

	"blogify/internal/models"

	"gorm.io/gorm"
)

// UserStats is a user row in admin listings, augmented with activity counts.
type UserStats struct {
	models.User
	TotalLikes int64 `json:"total_likes"`
}

// MonthlyCount is one bucket of a growth-by-month series.
type MonthlyCount struct {
	Month string `json:"month"` // "YYYY-MM"
	Count int64  `json:"count"`
}

// ActiveUser ranks a user by number of posts authored.
type ActiveUser struct {
	UserID     uint   `json:"user_id"`
	Name       string `json:"name"`
	Username   string `json:"username"`
	PostsCount int64  `json:"posts_count"`
}

// RankedUser ranks a user by follower count.
type RankedUser struct {
	UserID         uint   `json:"user_id"`
	Name           string `json:"name"`
	Username       string `json:"username"`
	FollowersCount int64  `json:"followers_count"`
}

// RankedPost ranks a post by like count.
type RankedPost struct {
	PostID     uint      `json:"post_id"`
	Text       string    `json:"text"`
	Name       string    `json:"name"`
	Username   string    `json:"username"`
	LikesCount int64     `json:"likes_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// DashboardStats is the admin landing-page summary.
type DashboardStats struct {
	TotalUsers      int64        `json:"total_users"`
	TotalPosts      int64        `json:"total_posts"`
	NewUsers7Days   int64        `json:"new_users_7_days"`
	NewPosts7Days   int64        `json:"new_posts_7_days"`
	MostActiveUsers []ActiveUser `json:"most_active_users"`
	MostLikedPosts  []RankedPost `json:"most_liked_posts"`
}

// Analytics is the admin analytics report.
type Analytics struct {
	TotalUsers          int64          `json:"total_users"`
	TotalPosts          int64          `json:"total_posts"`
	UserGrowth          []MonthlyCount `json:"user_growth"`
	PostGrowth          []MonthlyCount `json:"post_growth"`
	TopUsersByFollowers []RankedUser   `json:"top_users_by_followers"`
	TopPostsByLikes     []RankedPost   `json:"top_posts_by_likes"`
}

// AdminRepository implements the read-only aggregate reports and listings
// behind the admin dashboard.
type AdminRepository interface {
	ListUsers(ctx context.Context, search string, limit, offset int) ([]UserStats, int64, error)
	ListPosts(ctx context.Context, search string, limit, offset int) ([]*models.Post, int64, error)
	GetDashboardStats(ctx context.Context) (*DashboardStats, error)
	GetAnalytics(ctx context.Context) (*Analytics, error)
}

type adminRepository struct {
	db *gorm.DB
}

// NewAdminRepository returns a new AdminRepository implementation.
func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

// userStatsSelect augments users with post/follower/following/like counts.
const userStatsSelect = "users.*, " +
	"(SELECT COUNT(*) FROM posts WHERE posts.user_id = users.id) as posts_count, " +
	"(SELECT COUNT(*) FROM follows WHERE follows.followee_id = users.id) as followers_count, " +
	"(SELECT COUNT(*) FROM follows WHERE follows.follower_id = users.id) as following_count, " +
	"(SELECT COUNT(*) FROM likes JOIN posts p ON likes.post_id = p.id WHERE p.user_id = users.id) as total_likes"

func (r *adminRepository) ListUsers(ctx context.Context, search string, limit, offset int) ([]UserStats, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.User{})
	if search != "" {
		like := "%" + search + "%"
		base = base.Where("LOWER(name) LIKE LOWER(?) OR LOWER(username) LIKE LOWER(?) OR LOWER(email) LIKE LOWER(?)", like, like, like)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var users []UserStats
	err := base.
		Select(userStatsSelect).
		Order("created_at DESC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return users, total, nil
}

func (r *adminRepository) ListPosts(ctx context.Context, search string, limit, offset int) ([]*models.Post, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Post{})
	if search != "" {
		base = base.Where("LOWER(text) LIKE LOWER(?)", "%"+search+"%")
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var posts []*models.Post
	err := base.
		Select("posts.*, " +
			"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) as comments_count, " +
			"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) as likes_count, " +
			"false as liked").
		Preload("User").
		Order("created_at DESC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return posts, total, nil
}

func (r *adminRepository) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}
	db := r.db.WithContext(ctx)

	if err := db.Model(&models.User{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := db.Model(&models.Post{}).Count(&stats.TotalPosts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	last7Days := time.Now().AddDate(0, 0, -7)
	if err := db.Model(&models.User{}).Where("created_at >= ?", last7Days).Count(&stats.NewUsers7Days).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := db.Model(&models.Post{}).Where("created_at >= ?", last7Days).Count(&stats.NewPosts7Days).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	err := db.Model(&models.Post{}).
		Select("posts.user_id, users.name, users.username, COUNT(posts.id) as posts_count").
		Joins("JOIN users ON users.id = posts.user_id").
		Group("posts.user_id, users.name, users.username").
		Order("posts_count DESC").
		Limit(5).
		Scan(&stats.MostActiveUsers).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	if err := r.topPostsByLikes(ctx, 5, &stats.MostLikedPosts); err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *adminRepository) GetAnalytics(ctx context.Context) (*Analytics, error) {
	report := &Analytics{}
	db := r.db.WithContext(ctx)

	if err := db.Model(&models.User{}).Count(&report.TotalUsers).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := db.Model(&models.Post{}).Count(&report.TotalPosts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	if err := r.growthByMonth(ctx, "users", &report.UserGrowth); err != nil {
		return nil, err
	}
	if err := r.growthByMonth(ctx, "posts", &report.PostGrowth); err != nil {
		return nil, err
	}

	err := db.Model(&models.User{}).
		Select("users.id as user_id, users.name, users.username, " +
			"(SELECT COUNT(*) FROM follows WHERE follows.followee_id = users.id) as followers_count").
		Order("followers_count DESC, users.id ASC").
		Limit(10).
		Scan(&report.TopUsersByFollowers).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	if err := r.topPostsByLikes(ctx, 10, &report.TopPostsByLikes); err != nil {
		return nil, err
	}

	return report, nil
}

func (r *adminRepository) topPostsByLikes(ctx context.Context, limit int, dest *[]RankedPost) error {
	err := r.db.WithContext(ctx).Model(&models.Post{}).
		Select("posts.id as post_id, posts.text, posts.created_at, users.name, users.username, "+
			"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) as likes_count").
		Joins("JOIN users ON users.id = posts.user_id").
		Order("likes_count DESC, posts.id ASC").
		Limit(limit).
		Scan(dest).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// growthByMonth groups row creation timestamps into "YYYY-MM" buckets.
// The month expression differs between PostgreSQL and SQLite (tests).
func (r *adminRepository) growthByMonth(ctx context.Context, table string, dest *[]MonthlyCount) error {
	monthExpr := "to_char(created_at, 'YYYY-MM')"
	if r.db.Dialector.Name() == "sqlite" {
		monthExpr = "strftime('%Y-%m', created_at)"
	}

	err := r.db.WithContext(ctx).
		Table(table).
		Select(monthExpr + " as month, COUNT(*) as count").
		Group(monthExpr).
		Order("month ASC").
		Scan(dest).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

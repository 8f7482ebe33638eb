// Package server contains HTTP handlers for the application's API endpoints.
package server

import (
	"blogify/internal/models"

	"github.com/gofiber/fiber/v2"
)

// AdminListUsers handles GET /api/admin/users?q=&limit=&offset=
func (s *Server) AdminListUsers(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	users, total, err := s.adminService.ListUsers(c.Context(), c.Query("q"), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"users":  users,
		"total":  total,
		"limit":  p.Limit,
		"offset": p.Offset,
	})
}

// AdminListPosts handles GET /api/admin/posts?q=&limit=&offset=
func (s *Server) AdminListPosts(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	posts, total, err := s.adminService.ListPosts(c.Context(), c.Query("q"), p.Limit, p.Offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"posts":  posts,
		"total":  total,
		"limit":  p.Limit,
		"offset": p.Offset,
	})
}

// AdminGetUser handles GET /api/admin/users/:id
func (s *Server) AdminGetUser(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.adminService.GetUser(c.Context(), userID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(user)
}

// AdminGetPost handles GET /api/admin/posts/:id
func (s *Server) AdminGetPost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.adminService.GetPost(c.Context(), postID)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(post)
}

// AdminDashboardStats handles GET /api/admin/stats
func (s *Server) AdminDashboardStats(c *fiber.Ctx) error {
	stats, err := s.adminService.GetDashboardStats(c.Context())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(stats)
}

// AdminAnalytics handles GET /api/admin/analytics
func (s *Server) AdminAnalytics(c *fiber.Ctx) error {
	report, err := s.adminService.GetAnalytics(c.Context())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(report)
}

// AdminSetRole handles PUT /api/admin/users/:id/role
func (s *Server) AdminSetRole(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Role string `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.SetRole(c.Context(), userID, models.Role(req.Role))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(user)
}

// AdminDeleteUser handles DELETE /api/admin/users/:id
func (s *Server) AdminDeleteUser(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.adminService.DeleteUser(c.Context(), currentUserID(c), userID); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "User deleted"})
}

// AdminDeletePost handles DELETE /api/admin/posts/:id
func (s *Server) AdminDeletePost(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.adminService.DeletePost(c.Context(), postID); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Post deleted"})
}

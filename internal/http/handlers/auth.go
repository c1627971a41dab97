package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atish-2023/Ecommerce-Website/internal/http/middleware"
	"github.com/atish-2023/Ecommerce-Website/internal/http/validation"
	"github.com/atish-2023/Ecommerce-Website/internal/modules/users"
	"github.com/atish-2023/Ecommerce-Website/internal/shared/apperr"
)

type AuthHandler struct {
	Svc *users.Service
}

func NewAuthHandler(svc *users.Service) *AuthHandler {
	return &AuthHandler{Svc: svc}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type registerRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var in loginRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Email and password are required", validation.FromBindError(err, &in)))
		return
	}

	res, err := h.Svc.Login(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": res.Token,
		"user":         res.User.Public(),
	})
}

// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var in registerRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		middleware.Fail(c, apperr.InvalidErr("Name, email, and password are required", validation.FromBindError(err, &in)))
		return
	}

	res, err := h.Svc.Register(c.Request.Context(), in.Name, in.Email, in.Password)
	if err != nil {
		middleware.Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"access_token": res.Token,
		"user":         res.User.Public(),
	})
}

// GET /api/v1/auth/profile (JWT protected)
func (h *AuthHandler) Profile(c *gin.Context) {
	uid, ok := middleware.CurrentUserID(c)
	if !ok {
		middleware.Fail(c, apperr.UnauthorizedErr("Missing token"))
		return
	}

	u, err := h.Svc.Profile(c.Request.Context(), uid)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, u.Public())
}

// GET /api/v1/users (password-reset support path)
func (h *AuthHandler) ListUsers(c *gin.Context) {
	all, err := h.Svc.All(c.Request.Context())
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, all)
}

package httpapi

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"intelhub/internal/auth"
	"intelhub/internal/domain"
	"intelhub/internal/ports"
)

// TokenMinter issues session tokens for authenticated accounts.
type TokenMinter interface {
	Mint(email string) (string, error)
}

// AuthHandler serves account registration, login, and interest updates.
type AuthHandler struct {
	users  ports.UserStore
	tokens TokenMinter
	logger *slog.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(users ports.UserStore, tokens TokenMinter, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens, logger: logger}
}

// Register creates a new account. A missing interest selection subscribes
// the account to every department.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email, name and password are required"})
		return
	}

	if _, err := h.users.Get(c.Request.Context(), req.Email); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "account already exists"})
		return
	} else if !errors.Is(err, ports.ErrNotFound) {
		h.error(c, "lookup account", err)
		return
	}

	interests, ok := parseDepartments(req.Interests)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown department in interests"})
		return
	}
	if len(interests) == 0 {
		interests = domain.Departments()
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.error(c, "hash password", err)
		return
	}

	account := domain.UserAccount{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
		Interests:    interests,
		CreatedAt:    time.Now(),
	}
	if err := h.users.Create(c.Request.Context(), account); err != nil {
		h.error(c, "create account", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"email": account.Email})
}

// Login verifies credentials and returns a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	user, err := h.users.Get(c.Request.Context(), req.Email)
	if errors.Is(err, ports.ErrNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if err != nil {
		h.error(c, "lookup account", err)
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := h.tokens.Mint(user.Email)
	if err != nil {
		h.error(c, "mint token", err)
		return
	}

	c.JSON(http.StatusOK, loginResponse{
		Token:     token,
		Name:      user.Name,
		Interests: departmentStrings(user.Interests),
	})
}

// UpdateInterests replaces the session user's subscribed departments.
func (h *AuthHandler) UpdateInterests(c *gin.Context) {
	var req interestsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "interests are required"})
		return
	}

	interests, ok := parseDepartments(req.Interests)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown department in interests"})
		return
	}

	s := session(c)
	if err := h.users.UpdateInterests(c.Request.Context(), s.Email, interests); err != nil {
		h.error(c, "update interests", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"interests": departmentStrings(interests)})
}

func (h *AuthHandler) error(c *gin.Context, op string, err error) {
	if h.logger != nil {
		h.logger.Error(op, "error", err)
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

func parseDepartments(values []string) ([]domain.Department, bool) {
	var out []domain.Department
	for _, v := range values {
		d := domain.Department(v)
		if !domain.ValidDepartment(d) {
			return nil, false
		}
		out = append(out, d)
	}
	return out, true
}

func departmentStrings(depts []domain.Department) []string {
	out := make([]string, 0, len(depts))
	for _, d := range depts {
		out = append(out, string(d))
	}
	return out
}

package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskhub/api/internal/auth"
	"github.com/taskhub/api/internal/config"
	"github.com/taskhub/api/internal/domain/user"
	"github.com/taskhub/api/internal/security"
)

type UserReader interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
}

type UserWriter interface {
	Create(ctx context.Context, name, email, passwordHash string) (user.User, error)
}

type UsersHandler struct {
	users      UserReader
	userWriter UserWriter
	jwt        *auth.Manager
	bcryptCost int
}

func NewUsersHandler(users UserReader, userWriter UserWriter, jwtManager *auth.Manager, bcryptCost int) *UsersHandler {
	return &UsersHandler{
		users:      users,
		userWriter: userWriter,
		jwt:        jwtManager,
		bcryptCost: bcryptCost,
	}
}

func (h *UsersHandler) Register(ctx *gin.Context) {
	var req user.RegisterRequest

	if !BindJSON(ctx, &req) {
		return
	}

	if !RequireValid(ctx, req.Validate()) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	hash, err := security.HashPassword(req.Password, h.bcryptCost)

	if err != nil {
		RespondInternal(ctx, "Could not create user", err)
		return
	}

	u, err := h.userWriter.Create(cctx, req.Name, req.Email, hash)

	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			RespondBadRequest(ctx, "User already exists", nil)
			return
		}

		RespondInternal(ctx, "Could not create user", err)
		return
	}

	token, err := h.jwt.Issue(u.ID)

	if err != nil {
		RespondInternal(ctx, "Could not generate token", err)
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
		"token": token,
	})
}

// Login rejects an unknown email and a wrong password with the exact same
// response, so callers cannot probe which accounts exist.
func (h *UsersHandler) Login(ctx *gin.Context) {
	var req user.LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}

	if !RequireValid(ctx, req.Validate()) {
		return
	}

	// short timeout for DB lookup
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	foundUser, err := h.users.GetByEmail(cctx, req.Email)
	if err != nil {
		RespondUnAuthorized(ctx, "invalid_credentials", "Invalid email or password")
		return
	}

	err = security.CheckPassword(foundUser.PasswordHash, req.Password)

	if err != nil {
		RespondUnAuthorized(ctx, "invalid_credentials", "Invalid email or password")
		return
	}

	token, err := h.jwt.Issue(foundUser.ID)

	if err != nil {
		RespondInternal(ctx, "Could not generate token", err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"id":    foundUser.ID,
		"name":  foundUser.Name,
		"email": foundUser.Email,
		"token": token,
	})
}

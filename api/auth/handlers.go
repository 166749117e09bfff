package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/castkeep/publisher-api/api/types"
	apperrors "github.com/castkeep/publisher-api/pkg/errors"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userPayload struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Register creates a new account
func Register(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			types.RespondError(c, apperrors.New(apperrors.ErrCodeValidation, "invalid request body"))
			return
		}

		user, err := deps.UserService.Register(c.Request.Context(), req.Name, req.Email, req.Password, req.Role)
		if err != nil {
			types.RespondError(c, err)
			return
		}

		types.RespondMessage(c, http.StatusCreated, "account created", gin.H{
			"user": userPayload{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role},
		})
	}
}

// Login verifies credentials and returns the user with a signed token
func Login(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			types.RespondError(c, apperrors.New(apperrors.ErrCodeValidation, "invalid request body"))
			return
		}

		user, token, err := deps.UserService.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			types.RespondError(c, err)
			return
		}

		types.RespondData(c, http.StatusOK, gin.H{
			"user":  userPayload{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role},
			"token": token,
		})
	}
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/middleware"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/models"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/services"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/utils"
	"github.com/AwesomeBlossomm/Climate-Fit-Ai/internal/validators"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if err := validators.ValidateRegisterRequest(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	user, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrUserExists) {
			utils.ConflictResponse(c, err.Error())
			return
		}
		var pwErr *utils.PasswordError
		if errors.As(err, &pwErr) {
			utils.BadRequestResponse(c, err.Error())
			return
		}
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.CreatedResponse(c, "Registration successful", user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if err := validators.ValidateLoginRequest(&req); err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			utils.ErrorResponse(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password")
		case errors.Is(err, services.ErrUserInactive):
			utils.ErrorResponse(c, http.StatusForbidden, "ACCOUNT_DISABLED", "Account is deactivated")
		default:
			utils.InternalServerErrorResponse(c)
		}
		return
	}

	utils.SuccessResponse(c, "Login successful", result)
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	username := middleware.GetUsername(c)

	user, err := h.authService.GetProfile(c.Request.Context(), username)
	if err != nil {
		utils.NotFoundResponse(c, "User")
		return
	}

	utils.SuccessResponse(c, "Profile retrieved", user)
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	username := middleware.GetUsername(c)

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body")
		return
	}
	if err := validators.ValidateUpdateProfileRequest(&req); err != nil {
		utils.ValidationErrorResponse(c, utils.FormatValidationErrors(err))
		return
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), username, &req)
	if err != nil {
		utils.InternalServerErrorResponse(c)
		return
	}

	utils.SuccessResponse(c, "Profile updated", user)
}

package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pscosmeticos/internal/app/catalog/entity"
	"pscosmeticos/internal/app/catalog/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req entity.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.APIResponse{
			Success: false,
			Data:    "Invalid request body",
		})
		return
	}
	if err := validate.Struct(&req); err != nil {
		respondValidationErrors(c, err)
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, entity.APIResponse{
				Success: false,
				Data:    "Invalid username or password",
			})
			return
		}
		handleServiceError(c, err)
		return
	}

	respondOK(c, http.StatusOK, resp)
}

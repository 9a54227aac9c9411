package handlers

import (
	"github.com/cloudkitchen/backend/internal/services"
	"github.com/cloudkitchen/backend/internal/utils"
	"github.com/gin-gonic/gin"
)

type TokenHandler struct {
	tokenService *services.TokenService
}

func NewTokenHandler(tokenService *services.TokenService) *TokenHandler {
	return &TokenHandler{tokenService: tokenService}
}

type IssueTokenRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

// IssueToken signs a 7-day bearer token for the supplied reviewer identity.
func (h *TokenHandler) IssueToken(c *gin.Context) {
	var req IssueTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	token, err := h.tokenService.Issue(req.Name, req.Email)
	if err != nil {
		utils.SendInternalError(c, "Failed to issue token", err)
		return
	}

	utils.SendSuccess(c, "Token issued successfully", gin.H{"token": token})
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/cloudkitchen/backend/internal/models"
	"github.com/cloudkitchen/backend/internal/services"
	"github.com/cloudkitchen/backend/internal/utils"
	"github.com/gin-gonic/gin"
)

type BlogHandler struct {
	blogService *services.BlogService
}

func NewBlogHandler(blogService *services.BlogService) *BlogHandler {
	return &BlogHandler{blogService: blogService}
}

func (h *BlogHandler) GetBlogs(c *gin.Context) {
	blogs, err := h.blogService.GetBlogs(c.Request.Context())
	if err != nil {
		utils.SendInternalError(c, "Failed to retrieve blogs", err)
		return
	}

	utils.SendSuccess(c, "Blogs retrieved successfully", blogs)
}

func (h *BlogHandler) CreateBlog(c *gin.Context) {
	var req models.CreateBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	blog, err := h.blogService.CreateBlog(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			utils.SendError(c, http.StatusBadRequest, "Invalid blog data", err)
			return
		}
		utils.SendInternalError(c, "Failed to create blog", err)
		return
	}

	utils.SendCreated(c, "Blog created successfully", blog)
}

package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/cloudkitchen/backend/internal/models"
	"github.com/cloudkitchen/backend/internal/services"
	"github.com/cloudkitchen/backend/internal/utils"
	"github.com/gin-gonic/gin"
)

type ServiceHandler struct {
	catalogService *services.CatalogService
	s3Service      *services.S3Service
}

func NewServiceHandler(catalogService *services.CatalogService, s3Service *services.S3Service) *ServiceHandler {
	return &ServiceHandler{
		catalogService: catalogService,
		s3Service:      s3Service,
	}
}

func (h *ServiceHandler) GetServices(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			utils.SendValidationError(c, "Invalid limit")
			return
		}
		limit = parsed
	}

	result, err := h.catalogService.GetServices(c.Request.Context(), limit)
	if err != nil {
		utils.SendInternalError(c, "Failed to retrieve services", err)
		return
	}

	utils.SendSuccess(c, "Services retrieved successfully", result)
}

func (h *ServiceHandler) GetService(c *gin.Context) {
	service, err := h.catalogService.GetServiceByID(c.Request.Context(), c.Param("serviceId"))
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			utils.SendError(c, http.StatusBadRequest, "Invalid service ID", err)
		case errors.Is(err, services.ErrServiceNotFound):
			utils.SendError(c, http.StatusNotFound, "Service not found", err)
		default:
			utils.SendInternalError(c, "Failed to retrieve service", err)
		}
		return
	}

	utils.SendSuccess(c, "Service retrieved successfully", service)
}

func (h *ServiceHandler) CreateService(c *gin.Context) {
	var req models.CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	service, err := h.catalogService.CreateService(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidInput) {
			utils.SendError(c, http.StatusBadRequest, "Invalid service data", err)
			return
		}
		utils.SendInternalError(c, "Failed to create service", err)
		return
	}

	utils.SendCreated(c, "Service created successfully", service)
}

// UploadServiceImages pushes multipart "images" files to S3 and records them
// against the offering.
func (h *ServiceHandler) UploadServiceImages(c *gin.Context) {
	serviceID := c.Param("serviceId")

	form, err := c.MultipartForm()
	if err != nil {
		utils.SendError(c, http.StatusBadRequest, "Failed to parse multipart form", err)
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		utils.SendValidationError(c, "No images provided")
		return
	}

	uploads, err := h.s3Service.UploadMultipleImages(files)
	if err != nil {
		utils.SendError(c, http.StatusBadRequest, "Failed to upload images", err)
		return
	}

	images, err := h.catalogService.AddServiceImages(c.Request.Context(), serviceID, uploads)
	if err != nil {
		// Storage write failed after upload; drop the orphaned objects
		for _, upload := range uploads {
			h.s3Service.DeleteImage(upload.Key)
		}
		switch {
		case errors.Is(err, services.ErrInvalidInput):
			utils.SendError(c, http.StatusBadRequest, "Invalid service ID", err)
		case errors.Is(err, services.ErrServiceNotFound):
			utils.SendError(c, http.StatusNotFound, "Service not found", err)
		default:
			utils.SendInternalError(c, "Failed to record images", err)
		}
		return
	}

	utils.SendCreated(c, "Images uploaded successfully", images)
}

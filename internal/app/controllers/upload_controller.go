package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/qpsphere/paperbank/internal/app/models/dto"
	"github.com/qpsphere/paperbank/internal/app/services"
	"github.com/qpsphere/paperbank/internal/middleware"
)

// UploadController handles paper file uploads
type UploadController struct {
	uploadService services.UploadService
}

// NewUploadController creates a new UploadController
func NewUploadController(uploadService services.UploadService) *UploadController {
	return &UploadController{uploadService: uploadService}
}

// UploadPaper handles uploading a new paper file
// @Summary Upload a paper
// @Description Accepts a single PDF named by the paper convention, stores it and notifies the site inbox
// @Tags upload
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Paper PDF, at most the configured size limit"
// @Success 200 {object} dto.UploadResponse "File uploaded successfully"
// @Failure 400 {object} dto.ErrorResponse "Missing, oversized, non-PDF or badly named file"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/upload [post]
func (c *UploadController) UploadPaper(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeFileMissing, "No file uploaded").WithField("file")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	response, err := c.uploadService.UploadPaper(ctx, fileHeader)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/qpsphere/paperbank/internal/app/models/dto"
	"github.com/qpsphere/paperbank/internal/app/services"
	"github.com/qpsphere/paperbank/internal/middleware"
)

// PaperController handles catalog browsing operations
type PaperController struct {
	paperService services.PaperService
}

// NewPaperController creates a new PaperController
func NewPaperController(paperService services.PaperService) *PaperController {
	return &PaperController{paperService: paperService}
}

// GetPapers handles retrieving the filtered paper catalog
// @Summary List papers
// @Description Retrieves the paper catalog, filtered by free-text query, exam category and selected course
// @Tags papers
// @Produce json
// @Param query query string false "Free-text search over course code and name"
// @Param category query string false "Exam category (all, CAT1, CAT2, FAT)"
// @Param course query string false "Exact course selection as '{code} - {name}'"
// @Success 200 {object} dto.PaperListResponse "Papers retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request parameters"
// @Router /api/papers [get]
func (c *PaperController) GetPapers(ctx *gin.Context) {
	var filter dto.PaperFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid query parameters").WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	response, err := c.paperService.ListPapers(ctx, &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, response)
}

// GetPaperByID handles retrieving a single paper for the detail view
// @Summary Get paper by ID
// @Description Retrieves one paper by its storage file id
// @Tags papers
// @Produce json
// @Param id path string true "Paper file id"
// @Success 200 {object} models.Paper "Paper retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Paper not found"
// @Router /api/papers/{id} [get]
func (c *PaperController) GetPaperByID(ctx *gin.Context) {
	paper, err := c.paperService.GetPaperByID(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, paper)
}

// Suggest handles course autocomplete
// @Summary Suggest courses
// @Description Returns up to eight course labels matching the query
// @Tags papers
// @Produce json
// @Param query query string false "Partial course code or name"
// @Success 200 {object} dto.SuggestResponse "Suggestions retrieved successfully"
// @Router /api/papers/suggest [get]
func (c *PaperController) Suggest(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.paperService.Suggest(ctx, ctx.Query("query")))
}

// Stats handles the operator snapshot report
// @Summary Catalog statistics
// @Description Reports snapshot size, dropped-filename count and refresh time
// @Tags papers
// @Produce json
// @Success 200 {object} dto.CatalogStatsResponse "Statistics retrieved successfully"
// @Router /api/papers/stats [get]
func (c *PaperController) Stats(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.paperService.Stats(ctx))
}

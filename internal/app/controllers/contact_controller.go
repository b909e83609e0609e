package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/qpsphere/paperbank/internal/app/models/dto"
	"github.com/qpsphere/paperbank/internal/app/services"
	"github.com/qpsphere/paperbank/internal/middleware"
)

// ContactController handles contact-form submissions
type ContactController struct {
	contactService services.ContactService
}

// NewContactController creates a new ContactController
func NewContactController(contactService services.ContactService) *ContactController {
	return &ContactController{contactService: contactService}
}

// SendMessage handles relaying a contact-form submission
// @Summary Send a contact message
// @Description Relays the contact form to the site inbox by email
// @Tags contact
// @Accept json
// @Produce json
// @Param request body dto.ContactRequest true "Contact message"
// @Success 200 {object} dto.ContactResponse "Message sent successfully"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 502 {object} dto.ErrorResponse "Mail delivery failed"
// @Router /send [post]
func (c *ContactController) SendMessage(ctx *gin.Context) {
	var req dto.ContactRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(bindingErrors(err)...))
		return
	}

	if err := c.contactService.SendMessage(ctx, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ContactResponse{
		Success: true,
		Message: "Message sent successfully!",
	})
}

// bindingErrors turns validator failures into field-level error details so
// the form can highlight the offending inputs.
func bindingErrors(err error) []dto.ErrorDetail {
	if verrs, ok := err.(validator.ValidationErrors); ok {
		details := make([]dto.ErrorDetail, 0, len(verrs))
		for _, fe := range verrs {
			detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Field validation failed on the '"+fe.Tag()+"' rule").
				WithField(fe.Field())
			details = append(details, detail)
		}
		return details
	}
	return []dto.ErrorDetail{
		dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid request body").WithDetails(err.Error()),
	}
}

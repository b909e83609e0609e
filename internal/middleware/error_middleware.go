package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/qpsphere/paperbank/internal/app/models/dto"
	"github.com/qpsphere/paperbank/internal/pkg/apperrors"
)

// HandleAPIError maps service errors onto the standard error envelope. Every
// controller funnels its service failures through here so status codes and
// error codes stay consistent across endpoints.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrPaperNotFound), errors.Is(err, apperrors.ErrResourceNotFound):
		c.JSON(404, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Resource not found"),
		))
	case errors.Is(err, apperrors.ErrFileMissing):
		c.JSON(400, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeFileMissing, "No file uploaded").WithField("file"),
		))
	case errors.Is(err, apperrors.ErrFileTooLarge):
		c.JSON(400, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeFileTooLarge, "File exceeds the maximum upload size").WithField("file"),
		))
	case errors.Is(err, apperrors.ErrUnsupportedType):
		c.JSON(400, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeUnsupportedType, "Only PDF files are accepted").WithField("file"),
		))
	case errors.Is(err, apperrors.ErrBadPaperName):
		c.JSON(400, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeBadPaperName,
				"Filename must follow CODE_CourseName_TYPE_Semester_SlotX.pdf").WithField("file"),
		))
	case errors.Is(err, apperrors.ErrValidationFailed), errors.Is(err, apperrors.ErrBadRequest):
		c.JSON(400, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, messageOf(err, "Validation failed")),
		))
	case errors.Is(err, apperrors.ErrMailDeliveryFailed):
		c.JSON(502, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeExternalServiceError, "Error sending email"),
		))
	default:
		c.JSON(500, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error"),
		))
	}
}

// messageOf extracts the human-readable message from a CustomError, falling
// back to a generic one.
func messageOf(err error, fallback string) string {
	var custom *apperrors.CustomError
	if errors.As(err, &custom) && custom.Message != "" {
		return custom.Message
	}
	return fallback
}

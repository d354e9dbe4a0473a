package handler

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	"warga-be-svc/internal/service"
	"warga-be-svc/pkg/logger"
	"warga-be-svc/pkg/utils"
)

// maxUploadSize caps a single uploaded image at 5 MB
const maxUploadSize = 5 << 20

// parseIDParam parses a numeric path parameter
func parseIDParam(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return uint(id), nil
}

// readUploadedFile reads one multipart file field into memory. A missing
// field is only an error when the field is required.
func readUploadedFile(c *gin.Context, field string, required bool) (*service.UploadedFile, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		if !required {
			return nil, nil
		}
		return nil, fmt.Errorf("file field %q is required", field)
	}

	if fileHeader.Size > maxUploadSize {
		return nil, fmt.Errorf("file %q exceeds the %d MB limit", fileHeader.Filename, maxUploadSize>>20)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, maxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	if int64(len(content)) > maxUploadSize {
		return nil, fmt.Errorf("file %q exceeds the %d MB limit", fileHeader.Filename, maxUploadSize>>20)
	}

	return &service.UploadedFile{
		Name:        fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Content:     content,
	}, nil
}

// respondServiceError maps service-level errors onto the response envelope
func respondServiceError(c *gin.Context, log *logger.Logger, err error, fallbackMessage string) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		utils.NotFoundResponse(c, "Resource not found")
	case errors.Is(err, service.ErrActiveRequestExists):
		utils.ConflictResponse(c, "You already have an active request. Please wait until it is resolved before submitting a new one.")
	case errors.Is(err, service.ErrNotEditable):
		utils.ConflictResponse(c, "Only pending requests can be edited")
	case errors.Is(err, service.ErrBillingAlreadyPaid):
		utils.ConflictResponse(c, "This billing has already been paid")
	case errors.Is(err, service.ErrInvalidMaintenanceType):
		utils.BadRequestResponse(c, "Invalid maintenance request type", err)
	case errors.Is(err, service.ErrInvalidSignature):
		utils.UnauthorizedResponse(c, "Invalid notification signature")
	default:
		log.WithError(err).Error(fallbackMessage)
		utils.InternalServerErrorResponse(c, fallbackMessage, err)
	}
}

package handlers

import (
	"encoding/base64"
	"errors"
	"io"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/campus-services/lostfound-backend/internal/dto"
	"github.com/campus-services/lostfound-backend/internal/services"
)

const maxPhotoSize = 5 * 1024 * 1024

type ReportsHandler struct {
	reportsService *services.ReportsService
	validate       *validator.Validate
}

func NewReportsHandler(reportsService *services.ReportsService) *ReportsHandler {
	v := validator.New()
	// Report field names in json form so validation messages match the
	// request payload.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &ReportsHandler{reportsService: reportsService, validate: v}
}

// CreateLostReport handles POST /reports/lost (JSON body, photo optional as
// a data URL).
func (h *ReportsHandler) CreateLostReport(c *fiber.Ctx) error {
	var req dto.CreateLostReportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(dto.NewError(dto.CodeBadRequest, "Invalid request payload"))
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.LastSeenLocation = strings.TrimSpace(req.LastSeenLocation)
	req.ContactEmail = strings.TrimSpace(req.ContactEmail)

	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(dto.NewError(dto.CodeBadRequest, validationMessage(err)))
	}

	report, err := h.reportsService.CreateLostReport(c.Context(), &req)
	if err != nil {
		return h.createReportError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreateReportResponse{
		ID:            report.ID,
		ReferenceCode: report.ReferenceCode,
	})
}

// CreateFoundReport handles POST /reports/found (multipart form, photo
// required, JPEG or PNG, 5 MiB cap).
func (h *ReportsHandler) CreateFoundReport(c *fiber.Ctx) error {
	file, err := c.FormFile("photo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(dto.NewError(dto.CodeBadRequest, "photo is required"))
	}
	if file.Size > maxPhotoSize {
		return c.Status(fiber.StatusBadRequest).
			JSON(dto.NewError(dto.CodeBadRequest, "photo must be 5MB or smaller"))
	}

	contentType := file.Header.Get("Content-Type")
	switch contentType {
	case "image/jpeg", "image/jpg", "image/png":
	default:
		return c.Status(fiber.StatusBadRequest).
			JSON(dto.NewError(dto.CodeBadRequest, "photo must be JPEG or PNG"))
	}

	photo, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(dto.NewError(dto.CodeBadRequest, "Invalid upload payload"))
	}
	defer photo.Close()

	data, err := io.ReadAll(photo)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(dto.NewError(dto.CodeBadRequest, "Invalid upload payload"))
	}

	req := dto.CreateFoundReportRequest{
		Title:         strings.TrimSpace(c.FormValue("title")),
		Description:   strings.TrimSpace(c.FormValue("description")),
		FoundLocation: strings.TrimSpace(c.FormValue("foundLocation")),
		FoundAt:       strings.TrimSpace(c.FormValue("foundAt")),
		ContactEmail:  strings.TrimSpace(c.FormValue("contactEmail")),
		PhotoDataURL:  "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data),
	}

	if err := h.validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).
			JSON(dto.NewError(dto.CodeBadRequest, validationMessage(err)))
	}

	report, err := h.reportsService.CreateFoundReport(c.Context(), &req)
	if err != nil {
		return h.createReportError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.CreateReportResponse{
		ID:            report.ID,
		ReferenceCode: report.ReferenceCode,
	})
}

func (h *ReportsHandler) createReportError(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrInvalidPhotoDataURL) {
		return c.Status(fiber.StatusBadRequest).
			JSON(dto.NewError(dto.CodeBadRequest, "photo must be an image data URL"))
	}
	slog.Error("report creation failed", "error", err)
	return c.Status(fiber.StatusInternalServerError).
		JSON(dto.NewError(dto.CodeInternalError, "Unexpected server error"))
}

// validationMessage reduces a validation failure to the first offending
// field, mirroring the payload's json names.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request payload"
	}

	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email"
	case "datetime":
		return fe.Field() + " must be an ISO-8601 datetime"
	case "startswith":
		return "photo must be an image data URL"
	default:
		return fe.Field() + " is invalid"
	}
}

package handler

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/passforge/coupon-pass-service/internal/model"
	"github.com/passforge/coupon-pass-service/internal/service"
)

// PassServiceInterface defines the interface for pass generation logic.
type PassServiceInterface interface {
	Generate(ctx context.Context, req *model.CreatePassRequest, baseURL string) (*model.PassResponse, error)
}

// ArchiveResolver maps a download filename to its on-disk path.
type ArchiveResolver interface {
	Resolve(filename string) (string, error)
}

// pkpassContentType is the media type pass readers expect for archives.
const pkpassContentType = "application/vnd.apple.pkpass"

// PassHandler handles HTTP requests for pass generation and download.
type PassHandler struct {
	service   PassServiceInterface
	archives  ArchiveResolver
	validator *validator.Validate
	// publicBaseURL overrides the request's own scheme/host when the
	// service sits behind a proxy. Empty means use the request's.
	publicBaseURL string
}

// NewPassHandler creates a new PassHandler.
func NewPassHandler(svc PassServiceInterface, archives ArchiveResolver, v *validator.Validate, publicBaseURL string) *PassHandler {
	return &PassHandler{service: svc, archives: archives, validator: v, publicBaseURL: publicBaseURL}
}

// formatValidationError converts validator errors to caller-facing messages.
func formatValidationError(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			field := fe.Field()
			tag := fe.Tag()

			switch field {
			case "Discount":
				if tag == "required" {
					return "invalid request: discount is required"
				}
				if tag == "notblank" {
					return "invalid request: discount cannot be whitespace only"
				}
				return "invalid request: discount is invalid"
			default:
				if tag == "required" {
					return "invalid request: " + field + " is required"
				}
				return "invalid request: " + field + " is invalid"
			}
		}
	}
	return "invalid request"
}

// CreatePass handles POST /api/passes requests to generate a signed pass.
func (h *PassHandler) CreatePass(c *fiber.Ctx) error {
	var req model.CreatePassRequest

	// Parse JSON body
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(model.ErrorResponse{Error: "invalid request body"})
	}

	// Validate request
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(model.ErrorResponse{Error: formatValidationError(err)})
	}

	baseURL := h.publicBaseURL
	if baseURL == "" {
		baseURL = c.BaseURL()
	}

	resp, err := h.service.Generate(c.Context(), &req, baseURL)
	if err != nil {
		if errors.Is(err, service.ErrInvalidImage) || errors.Is(err, service.ErrInvalidRequest) {
			return c.Status(fiber.StatusBadRequest).JSON(model.ErrorResponse{Error: err.Error()})
		}
		log.Error().
			Err(err).
			Str("request_id", c.GetRespHeader("X-Request-ID")).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("failed to generate pass")
		return c.Status(fiber.StatusInternalServerError).JSON(model.ErrorResponse{Error: err.Error()})
	}

	log.Info().
		Str("request_id", c.GetRespHeader("X-Request-ID")).
		Str("pass_id", resp.PassID).
		Msg("pass created")

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// DownloadPass handles GET /passes/:filename requests to retrieve a
// previously generated archive.
func (h *PassHandler) DownloadPass(c *fiber.Ctx) error {
	filename := c.Params("filename")

	path, err := h.archives.Resolve(filename)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(model.ErrorResponse{Error: "pass not found"})
	}

	if err := c.SendFile(path); err != nil {
		log.Error().Err(err).Str("path", path).Msg("failed to send archive")
		return c.Status(fiber.StatusInternalServerError).JSON(model.ErrorResponse{Error: "internal server error"})
	}
	// SendFile derives a content type from the extension; force the
	// pass media type afterwards so installers recognize the archive.
	c.Set(fiber.HeaderContentType, pkpassContentType)
	return nil
}

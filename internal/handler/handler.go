package handler

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"cidrsum/internal/ipv4"
	"cidrsum/internal/model"
	"cidrsum/internal/service"
)

//go:embed form.html
var formHTML string

const (
	notFoundBody = "Page Not Found\n"
	usageBody    = "Method Not Allowed\nTry POSTing a list of IPv4 subnets (e.g. 10/8), one per line, with key \"nets\"."
)

type AggregateService interface {
	Aggregate(ctx context.Context, req model.AggregateRequest) (*model.AggregateResult, error)
}

type Handler struct {
	service AggregateService
	logger  *zap.Logger
}

func NewHandler(service AggregateService, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Get("/", h.Form)
	app.Post("/", h.Aggregate)
	app.Use(h.Fallback)
}

func (h *Handler) Form(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(formHTML)
}

func (h *Handler) Aggregate(c *fiber.Ctx) error {
	nets, maskField := h.formFields(c)

	maxMasklen := 32
	if maskField != "" {
		v, err := strconv.Atoi(maskField)
		if err != nil {
			return badRequest(c, fmt.Sprintf("invalid max_masklen: %q", maskField))
		}
		maxMasklen = v
	}

	result, err := h.service.Aggregate(c.Context(), model.AggregateRequest{
		Nets:       nets,
		MaxMasklen: maxMasklen,
	})
	if err != nil {
		var parseErr *ipv4.ParseError
		var validationErr *service.ValidationError
		if errors.As(err, &parseErr) || errors.As(err, &validationErr) {
			return badRequest(c, err.Error())
		}

		h.logger.Error("aggregation failed", zap.Error(err))

		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to aggregate networks")
	}

	c.Set("X-Input-Count", strconv.Itoa(result.InputCount))
	c.Set("X-Output-Count", strconv.Itoa(len(result.Networks)))
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(ipv4.FormatCRLF(result.Networks))
}

// Fallback answers everything no route matched.
func (h *Handler) Fallback(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	switch c.Method() {
	case fiber.MethodGet, fiber.MethodHead, fiber.MethodPost:
		return c.Status(fiber.StatusNotFound).SendString(notFoundBody)
	default:
		return c.Status(fiber.StatusMethodNotAllowed).SendString(usageBody)
	}
}

// formFields reads nets and max_masklen from a urlencoded or multipart form.
// A urlencoded body sent without a form content type is read as well.
func (h *Handler) formFields(c *fiber.Ctx) (string, string) {
	ct := strings.ToLower(string(c.Request().Header.ContentType()))
	if strings.HasPrefix(ct, fiber.MIMEApplicationForm) || strings.HasPrefix(ct, fiber.MIMEMultipartForm) {
		return c.FormValue("nets"), c.FormValue("max_masklen")
	}

	values, err := url.ParseQuery(string(c.Body()))
	if err != nil {
		h.logger.Debug("unparseable request body", zap.Error(err))
		return "", ""
	}
	return values.Get("nets"), values.Get("max_masklen")
}

func badRequest(c *fiber.Ctx, message string) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlain)
	return c.Status(fiber.StatusBadRequest).SendString(message)
}

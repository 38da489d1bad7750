package handlers

import (
	"errors"

	"equiptrack/internal/app"
	referenceController "equiptrack/internal/controllers/reference"
	"equiptrack/internal/logger"
	. "equiptrack/internal/models"

	"github.com/gofiber/fiber/v2"
)

type ReferenceHandler struct {
	Handler
	controller referenceController.ReferenceController
}

func NewReferenceHandler(app app.App, router fiber.Router) *ReferenceHandler {
	log := logger.New("handlers").File("reference_handler")
	return &ReferenceHandler{
		controller: *app.ReferenceController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *ReferenceHandler) Register() {
	h.router.Get("/engineers", h.middleware.RequireAuth(), h.getEngineers)
	h.router.Get("/companies", h.middleware.RequireAuth(), h.middleware.RequireAdmin(), h.getCompanies)
	h.router.Post("/companies", h.middleware.RequireAuth(), h.middleware.RequireAdmin(), h.createCompany)
}

func (h *ReferenceHandler) getEngineers(c *fiber.Ctx) error {
	log := h.log.Function("getEngineers")

	engineers, err := h.controller.Engineers(c.Context())
	if err != nil {
		log.Er("failed to get engineers", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to get engineers"})
	}

	return c.JSON(fiber.Map{"message": "success", "engineers": engineers})
}

func (h *ReferenceHandler) createCompany(c *fiber.Ctx) error {
	log := h.log.Function("createCompany")

	var request CreateCompanyRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse company request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse company request"})
	}

	company, err := h.controller.CreateCompany(c.Context(), &request)
	if err != nil {
		if errors.Is(err, referenceController.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).
				JSON(fiber.Map{"message": err.Error()})
		}
		log.Er("failed to create company", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to create company"})
	}

	return c.Status(fiber.StatusCreated).
		JSON(fiber.Map{"message": "success", "company": company})
}

func (h *ReferenceHandler) getCompanies(c *fiber.Ctx) error {
	log := h.log.Function("getCompanies")

	companies, err := h.controller.Companies(c.Context())
	if err != nil {
		log.Er("failed to get companies", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": "failed to get companies"})
	}

	return c.JSON(fiber.Map{"message": "success", "companies": companies})
}

package handlers

import (
	"errors"

	"equiptrack/internal/app"
	recordController "equiptrack/internal/controllers/records"
	"equiptrack/internal/logger"
	. "equiptrack/internal/models"

	"github.com/gofiber/fiber/v2"
)

// categoryRoutes maps the public route groups onto the category variant
// tag. One handler serves all four; the legacy system had a copy of the
// route file per category.
var categoryRoutes = map[string]Category{
	"service-records": CategoryService,
	"spot-welders":    CategorySpotWelder,
	"lift-service":    CategoryLift,
	"compressors":     CategoryCompressor,
}

type RecordHandler struct {
	Handler
	controller recordController.RecordController
}

func NewRecordHandler(app app.App, router fiber.Router) *RecordHandler {
	log := logger.New("handlers").File("record_handler")
	return &RecordHandler{
		controller: *app.RecordController,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *RecordHandler) Register() {
	for slug, category := range categoryRoutes {
		group := h.router.Group("/"+slug, h.middleware.RequireAuth())
		group.Get("/", h.listRecords(category))
		group.Get("/export", h.exportRecords(category))
		group.Post("/", h.createRecord(category))
		group.Get("/:id", h.getRecord)
		group.Put("/:id", h.updateRecord)
		group.Delete("/:id", h.deleteRecord)
	}
}

func (h *RecordHandler) requester(c *fiber.Ctx) User {
	user, _ := c.Locals("user").(User)
	return user
}

func (h *RecordHandler) listRecords(category Category) fiber.Handler {
	return func(c *fiber.Ctx) error {
		log := h.log.Function("listRecords")

		records, err := h.controller.List(c.Context(), h.requester(c), category, c.Query("company_id"))
		if err != nil {
			return h.mapError(c, log, err, "failed to list records")
		}

		return c.JSON(fiber.Map{"message": "success", "records": records})
	}
}

func (h *RecordHandler) exportRecords(category Category) fiber.Handler {
	return func(c *fiber.Ctx) error {
		log := h.log.Function("exportRecords")

		csv, err := h.controller.ExportCSV(c.Context(), h.requester(c), category, c.Query("company_id"))
		if err != nil {
			return h.mapError(c, log, err, "failed to export records")
		}

		c.Set(fiber.HeaderContentType, "text/csv")
		c.Set(fiber.HeaderContentDisposition, `attachment; filename="records.csv"`)
		return c.Send(csv)
	}
}

func (h *RecordHandler) getRecord(c *fiber.Ctx) error {
	log := h.log.Function("getRecord")

	record, err := h.controller.Get(c.Context(), h.requester(c), c.Params("id"))
	if err != nil {
		return h.mapError(c, log, err, "failed to get record")
	}

	return c.JSON(fiber.Map{"message": "success", "record": record})
}

func (h *RecordHandler) createRecord(category Category) fiber.Handler {
	return func(c *fiber.Ctx) error {
		log := h.log.Function("createRecord")

		var request RecordRequest
		if err := c.BodyParser(&request); err != nil {
			log.Er("failed to parse record request", err)
			return c.Status(fiber.StatusBadRequest).
				JSON(fiber.Map{"message": "failed to parse record request"})
		}

		result, err := h.controller.Create(c.Context(), h.requester(c), category, &request)
		if err != nil {
			return h.mapError(c, log, err, "failed to create record")
		}

		if result.Partial {
			c.Set("X-Database-Error", result.ErrorInfo)
		}

		return c.Status(fiber.StatusCreated).
			JSON(fiber.Map{"message": "success", "record": result.Record})
	}
}

func (h *RecordHandler) updateRecord(c *fiber.Ctx) error {
	log := h.log.Function("updateRecord")

	var request RecordRequest
	if err := c.BodyParser(&request); err != nil {
		log.Er("failed to parse record request", err)
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": "failed to parse record request"})
	}

	record, err := h.controller.Update(c.Context(), h.requester(c), c.Params("id"), &request)
	if err != nil {
		return h.mapError(c, log, err, "failed to update record")
	}

	return c.JSON(fiber.Map{"message": "success", "record": record})
}

func (h *RecordHandler) deleteRecord(c *fiber.Ctx) error {
	log := h.log.Function("deleteRecord")

	if err := h.controller.Delete(c.Context(), h.requester(c), c.Params("id")); err != nil {
		return h.mapError(c, log, err, "failed to delete record")
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// mapError translates controller errors into status codes. Store errors
// stay generic: internal detail goes to the log, not the response.
func (h *RecordHandler) mapError(c *fiber.Ctx, log logger.Logger, err error, msg string) error {
	switch {
	case errors.Is(err, recordController.ErrValidation):
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"message": err.Error()})
	case errors.Is(err, recordController.ErrForbidden):
		return c.Status(fiber.StatusForbidden).
			JSON(fiber.Map{"message": "forbidden"})
	case errors.Is(err, recordController.ErrNotFound):
		return c.Status(fiber.StatusNotFound).
			JSON(fiber.Map{"message": "record not found"})
	default:
		log.Er(msg, err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"message": msg})
	}
}

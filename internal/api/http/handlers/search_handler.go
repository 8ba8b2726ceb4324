package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/lumis/servicedesk/internal/api/dto"
	"github.com/lumis/servicedesk/internal/auth"
	"github.com/lumis/servicedesk/internal/domain"
	"github.com/lumis/servicedesk/internal/service"
	"github.com/lumis/servicedesk/pkg/util"
)

// SearchHandler exposes the search projection.
type SearchHandler struct {
	projections *service.ProjectionService
}

// NewSearchHandler constructs handler.
func NewSearchHandler(projections *service.ProjectionService) *SearchHandler {
	return &SearchHandler{projections: projections}
}

// Build POST /search/index/:type/:id rebuilds one ticket's row.
func (h *SearchHandler) Build(c *fiber.Ctx) error {
	entry, err := h.projections.Build(c.Context(), domain.TicketType(c.Params("type")), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": searchEntryResponse(entry)})
}

// Get GET /search/index/:type/:id.
func (h *SearchHandler) Get(c *fiber.Ctx) error {
	entry, err := h.projections.Get(c.Context(), domain.TicketType(c.Params("type")), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": searchEntryResponse(entry)})
}

// Search GET /search?q=...
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return util.NewUnauthorized("authentication required")
	}

	limit := 20
	if v := c.Query("page_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	var dealerID *string
	if principal.User.IsDealer() {
		dealerID = principal.User.DealerID
	}

	entries, err := h.projections.Search(c.Context(), c.Query("q"), dealerID, limit)
	if err != nil {
		return err
	}
	items := make([]dto.SearchEntryResponse, 0, len(entries))
	for i := range entries {
		items = append(items, searchEntryResponse(&entries[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func searchEntryResponse(entry *domain.SearchIndexEntry) dto.SearchEntryResponse {
	return dto.SearchEntryResponse{
		TicketType:   entry.TicketType,
		TicketID:     entry.TicketID,
		TicketNumber: entry.TicketNumber,
		Title:        entry.Title,
		Description:  entry.Description,
		Resolution:   entry.Resolution,
		Tags:         entry.Tags,
		ProductModel: entry.ProductModel,
		SerialNumber: entry.SerialNumber,
		Category:     entry.Category,
		Status:       entry.Status,
		Visibility:   entry.Visibility,
		ClosedAt:     entry.ClosedAt,
		IndexedAt:    entry.IndexedAt,
	}
}

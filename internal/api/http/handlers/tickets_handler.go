package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/lumis/servicedesk/internal/api/dto"
	"github.com/lumis/servicedesk/internal/auth"
	"github.com/lumis/servicedesk/internal/domain"
	"github.com/lumis/servicedesk/internal/repository"
	"github.com/lumis/servicedesk/internal/service"
	"github.com/lumis/servicedesk/pkg/util"
)

// TicketsHandler manages ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

func principalID(c *fiber.Ctx) (string, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return "", util.NewUnauthorized("authentication required")
	}
	return principal.User.ID, nil
}

// CreateTicket POST /tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	actorID, err := principalID(c)
	if err != nil {
		return err
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.service.Create(c.Context(), actorID, service.CreateTicketInput{
		Type:               req.Type,
		ChannelCode:        req.ChannelCode,
		Status:             req.Status,
		Priority:           req.Priority,
		AccountID:          req.AccountID,
		DealerID:           req.DealerID,
		ProductID:          req.ProductID,
		SerialNumber:       req.SerialNumber,
		ReporterName:       req.ReporterName,
		AssignedTo:         req.AssignedTo,
		ServiceType:        req.ServiceType,
		Channel:            req.Channel,
		ProblemSummary:     req.ProblemSummary,
		CommunicationLog:   req.CommunicationLog,
		IssueType:          req.IssueType,
		IssueCategory:      req.IssueCategory,
		Severity:           req.Severity,
		ProblemDescription: req.ProblemDescription,
		IsWarranty:         req.IsWarranty,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": ticketDetail(ticket)})
}

// ListTickets GET /tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	actorID, err := principalID(c)
	if err != nil {
		return err
	}
	tickets, err := h.service.List(c.Context(), actorID, parseTicketFilter(c))
	if err != nil {
		return err
	}
	items := make([]dto.TicketSummary, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketSummary(&tickets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetTicket GET /tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	actorID, err := principalID(c)
	if err != nil {
		return err
	}
	ticket, err := h.service.Get(c.Context(), actorID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket)})
}

// GetTicketByNumber GET /tickets/number/:number.
func (h *TicketsHandler) GetTicketByNumber(c *fiber.Ctx) error {
	actorID, err := principalID(c)
	if err != nil {
		return err
	}
	ticket, err := h.service.GetByNumber(c.Context(), actorID, c.Params("number"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket)})
}

// ChangeStatus POST /tickets/:id/status.
func (h *TicketsHandler) ChangeStatus(c *fiber.Ctx) error {
	actorID, err := principalID(c)
	if err != nil {
		return err
	}
	var req dto.ChangeStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Status) == "" {
		return util.NewValidationError("status required", nil)
	}
	ticket, err := h.service.ChangeStatus(c.Context(), actorID, c.Params("id"), req.Status, req.Comment)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket)})
}

// Assign POST /tickets/:id/assign.
func (h *TicketsHandler) Assign(c *fiber.Ctx) error {
	actorID, err := principalID(c)
	if err != nil {
		return err
	}
	var req dto.AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	if req.AssigneeID == "" {
		return util.NewValidationError("assignee_id required", nil)
	}
	ticket, err := h.service.Assign(c.Context(), actorID, c.Params("id"), req.AssigneeID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket)})
}

// AddComment POST /tickets/:id/comments.
func (h *TicketsHandler) AddComment(c *fiber.Ctx) error {
	actorID, err := principalID(c)
	if err != nil {
		return err
	}
	var req dto.AddCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	activity, err := h.service.AddComment(c.Context(), actorID, c.Params("id"), req.Body, req.Visibility)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": activityResponse(activity)})
}

// ListActivities GET /tickets/:id/activities.
func (h *TicketsHandler) ListActivities(c *fiber.Ctx) error {
	actorID, err := principalID(c)
	if err != nil {
		return err
	}
	activities, err := h.service.ListActivities(c.Context(), actorID, c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.ActivityResponse, 0, len(activities))
	for i := range activities {
		items = append(items, activityResponse(&activities[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// ListParticipants GET /tickets/:id/participants.
func (h *TicketsHandler) ListParticipants(c *fiber.Ctx) error {
	actorID, err := principalID(c)
	if err != nil {
		return err
	}
	participants, err := h.service.ListParticipants(c.Context(), actorID, c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.ParticipantResponse, 0, len(participants))
	for _, p := range participants {
		items = append(items, dto.ParticipantResponse{
			UserID:      p.UserID,
			Role:        p.Role,
			JoinMethod:  p.JoinMethod,
			NotifyLevel: p.NotifyLevel,
			JoinedAt:    p.JoinedAt,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

// Convert POST /tickets/:id/convert.
func (h *TicketsHandler) Convert(c *fiber.Ctx) error {
	actorID, err := principalID(c)
	if err != nil {
		return err
	}
	var req dto.ConvertRequest
	if err := c.BodyParser(&req); err != nil {
		return util.NewValidationError("invalid payload", nil)
	}
	child, err := h.service.Convert(c.Context(), actorID, c.Params("id"), service.ConvertInput{
		TargetType:  req.TargetType,
		ChannelCode: req.ChannelCode,
		IssueType:   req.IssueType,
		Severity:    req.Severity,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": ticketDetail(child)})
}

// Stats GET /tickets/stats.
func (h *TicketsHandler) Stats(c *fiber.Ctx) error {
	actorID, err := principalID(c)
	if err != nil {
		return err
	}
	stats, err := h.service.Stats(c.Context(), actorID, parseTicketFilter(c))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": stats})
}

// SweepSla POST /tickets/sla/sweep.
func (h *TicketsHandler) SweepSla(c *fiber.Ctx) error {
	if _, err := principalID(c); err != nil {
		return err
	}
	changed, err := h.service.SweepSla(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"changed": changed}})
}

func parseTicketFilter(c *fiber.Ctx) repository.TicketFilter {
	filter := repository.TicketFilter{
		Limit:  20,
		Offset: 0,
	}
	if v := c.Query("type"); v != "" {
		t := domain.TicketType(v)
		filter.Type = &t
	}
	for _, raw := range splitQuery(c.Query("status")) {
		filter.Statuses = append(filter.Statuses, domain.Status(raw))
	}
	for _, raw := range splitQuery(c.Query("node")) {
		filter.Nodes = append(filter.Nodes, domain.Node(raw))
	}
	for _, raw := range splitQuery(c.Query("priority")) {
		filter.Priorities = append(filter.Priorities, domain.Priority(raw))
	}
	for _, raw := range splitQuery(c.Query("sla_status")) {
		filter.SlaStatuses = append(filter.SlaStatuses, domain.SlaStatus(raw))
	}
	if v := c.Query("assigned_to"); v != "" {
		filter.AssignedTo = &v
	}
	if v := c.Query("submitted_by"); v != "" {
		filter.SubmittedBy = &v
	}
	if v := c.Query("account_id"); v != "" {
		filter.AccountID = &v
	}
	if v := c.Query("dealer_id"); v != "" {
		filter.DealerID = &v
	}
	if v := c.Query("serial_number"); v != "" {
		filter.SerialNumber = &v
	}
	if v := c.Query("q"); v != "" {
		filter.Keyword = &v
	}
	if v := c.Query("created_from"); v != "" {
		if ts, err := time.Parse(time.RFC3339, v); err == nil {
			filter.CreatedFrom = &ts
		}
	}
	if v := c.Query("created_to"); v != "" {
		if ts, err := time.Parse(time.RFC3339, v); err == nil {
			filter.CreatedTo = &ts
		}
	}
	if v := c.Query("page_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 200 {
			filter.Limit = n
		}
	}
	if v := c.Query("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 1 {
			filter.Offset = (n - 1) * filter.Limit
		}
	}
	return filter
}

func splitQuery(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := parts[:0]
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func ticketSummary(ticket *domain.Ticket) dto.TicketSummary {
	return dto.TicketSummary{
		ID:           ticket.ID,
		TicketNumber: ticket.TicketNumber,
		Type:         ticket.Type,
		Status:       ticket.Status,
		CurrentNode:  ticket.CurrentNode,
		Priority:     ticket.Priority,
		SlaDueAt:     ticket.SlaDueAt,
		SlaStatus:    ticket.SlaStatus,
		AssignedTo:   ticket.AssignedTo,
		CreatedAt:    ticket.CreatedAt,
		UpdatedAt:    ticket.UpdatedAt,
	}
}

func ticketDetail(ticket *domain.Ticket) dto.TicketDetailResponse {
	resp := dto.TicketDetailResponse{
		TicketSummary:  ticketSummary(ticket),
		ChannelCode:    ticket.ChannelCode,
		AccountID:      ticket.AccountID,
		DealerID:       ticket.DealerID,
		ProductID:      ticket.ProductID,
		SerialNumber:   ticket.SerialNumber,
		ReporterName:   ticket.ReporterName,
		SubmittedBy:    ticket.SubmittedBy,
		ParentTicketID: ticket.ParentTicketID,
		ClosedAt:       ticket.ClosedAt,
	}
	switch ticket.Type {
	case domain.TicketTypeInquiry:
		resp.Inquiry = &dto.InquiryFields{
			ServiceType:      ticket.ServiceType,
			Channel:          ticket.Channel,
			ProblemSummary:   ticket.ProblemSummary,
			CommunicationLog: ticket.CommunicationLog,
			Resolution:       ticket.Resolution,
		}
	case domain.TicketTypeRMA, domain.TicketTypeDealerRepair:
		resp.Repair = &dto.RepairFields{
			IssueType:           ticket.IssueType,
			IssueCategory:       ticket.IssueCategory,
			Severity:            ticket.Severity,
			ProblemDescription:  ticket.ProblemDescription,
			ProblemAnalysis:     ticket.ProblemAnalysis,
			SolutionForCustomer: ticket.SolutionForCustomer,
			RepairContent:       ticket.RepairContent,
			IsWarranty:          ticket.IsWarranty,
		}
	}
	return resp
}

func activityResponse(activity *domain.TicketActivity) dto.ActivityResponse {
	return dto.ActivityResponse{
		ID:         activity.ID,
		Type:       activity.Type,
		Content:    activity.Content,
		Visibility: activity.Visibility,
		ActorID:    activity.ActorID,
		ActorName:  activity.ActorName,
		ActorRole:  activity.ActorRole,
		Metadata:   activity.Metadata,
		CreatedAt:  activity.CreatedAt,
	}
}

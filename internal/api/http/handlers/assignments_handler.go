package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/service"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// AssignmentsHandler manages technician-ticket assignment endpoints.
type AssignmentsHandler struct {
	service *service.AssignmentService
}

// NewAssignmentsHandler constructs handler.
func NewAssignmentsHandler(assignmentService *service.AssignmentService) *AssignmentsHandler {
	return &AssignmentsHandler{service: assignmentService}
}

// CreateAssignment POST /assignments.
func (h *AssignmentsHandler) CreateAssignment(c *fiber.Ctx) error {
	var req dto.CreateAssignmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.TechnicianID <= 0 || req.TicketID <= 0 {
		return apperrors.NewValidationError("technician_id and ticket_id required", nil)
	}

	assignment, err := h.service.Assign(c.Context(), req.TechnicianID, req.TicketID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": assignmentResponse(assignment)})
}

// ListAssignments GET /assignments.
func (h *AssignmentsHandler) ListAssignments(c *fiber.Ctx) error {
	assignments, err := h.service.List(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		items = append(items, assignmentResponse(&assignments[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetAssignment GET /assignments/:id.
func (h *AssignmentsHandler) GetAssignment(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	assignment, err := h.service.GetByID(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": assignmentResponse(assignment)})
}

// DeleteAssignment DELETE /assignments/:id.
func (h *AssignmentsHandler) DeleteAssignment(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.service.Unassign(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

package policy

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/observability"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// Guard builds the fiber middleware enforcing the given rule in front of a
// route. It resolves path parameters into the identifiers the dynamic
// policies need and hands the fully-built Request to the engine.
type Guard struct {
	engine  *Engine
	metrics *observability.Metrics
}

// NewGuard creates a route guard factory.
func NewGuard(engine *Engine, metrics *observability.Metrics) *Guard {
	return &Guard{engine: engine, metrics: metrics}
}

// Enforce returns middleware applying rule to the route it wraps.
func (g *Guard) Enforce(rule Rule) fiber.Handler {
	return func(c *fiber.Ctx) error {
		req := Request{Rule: rule}

		switch rule.Kind {
		case KindTicketGet, KindTicketStatusUpdate:
			id, err := paramInt64(c, "id")
			if err != nil {
				return apperrors.NewValidationError("invalid ticket id", nil)
			}
			req.TicketID = id
		case KindClientTickets:
			id, err := paramInt64(c, "id")
			if err != nil {
				return apperrors.NewValidationError("invalid client id", nil)
			}
			req.ClientID = id
		case KindTechnicianTickets:
			id, err := paramInt64(c, "id")
			if err != nil {
				return apperrors.NewValidationError("invalid technician id", nil)
			}
			req.TechnicianID = id
		}

		principal, _ := auth.PrincipalFromContext(c)
		if err := g.engine.Authorize(c.UserContext(), principal, req); err != nil {
			if g.metrics != nil && apperrors.ToDomainError(err).HTTPStatus == fiber.StatusForbidden {
				role := ""
				if principal != nil {
					role = string(principal.Role)
				}
				g.metrics.RecordPolicyDeny(role)
			}
			return err
		}
		return c.Next()
	}
}

func paramInt64(c *fiber.Ctx, name string) (int64, error) {
	return strconv.ParseInt(c.Params(name), 10, 64)
}

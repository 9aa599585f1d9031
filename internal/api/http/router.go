package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/http/handlers"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/policy"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	Assignments    *handlers.AssignmentsHandler
	Users          *handlers.UsersHandler
	Roles          *handlers.RolesHandler
	Categories     *handlers.CategoriesHandler
	Clients        *handlers.ClientsHandler
	Technicians    *handlers.TechniciansHandler
	AuthMiddleware *auth.Middleware
	Guard          *policy.Guard
}

// RegisterRoutes wires HTTP routes. Each route declares its authorization
// rule here; the guard consults nothing but this table.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	guard := cfg.Guard
	authn := cfg.AuthMiddleware.Handle
	adminOnly := policy.RequireRoles(domain.RoleAdministrator)

	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", guard.Enforce(policy.Public()), cfg.Auth.Register)
	authGroup.Post("/login", guard.Enforce(policy.Public()), cfg.Auth.Login)

	accesses := app.Group("/accesses", authn, guard.Enforce(adminOnly))
	accesses.Get("/", cfg.Auth.ListAccesses)
	accesses.Delete("/:id", cfg.Auth.DeleteAccess)

	// The two sub-collection routes are registered ahead of /tickets/:id so
	// "client" and "technician" never parse as a ticket id.
	tickets := app.Group("/tickets", authn)
	tickets.Get("/client/:id", guard.Enforce(policy.Dynamic(policy.KindClientTickets)), cfg.Tickets.ListClientTickets)
	tickets.Get("/technician/:id", guard.Enforce(policy.Dynamic(policy.KindTechnicianTickets)), cfg.Tickets.ListTechnicianTickets)
	tickets.Post("/", guard.Enforce(policy.Dynamic(policy.KindTicketCreate)), cfg.Tickets.CreateTicket)
	tickets.Get("/", guard.Enforce(adminOnly), cfg.Tickets.ListTickets)
	tickets.Patch("/:id/status", guard.Enforce(policy.Dynamic(policy.KindTicketStatusUpdate)), cfg.Tickets.UpdateTicketStatus)
	tickets.Get("/:id", guard.Enforce(policy.Dynamic(policy.KindTicketGet)), cfg.Tickets.GetTicket)
	tickets.Patch("/:id", guard.Enforce(adminOnly), cfg.Tickets.UpdateTicket)
	tickets.Delete("/:id", guard.Enforce(adminOnly), cfg.Tickets.DeleteTicket)

	// No dynamic rule grants non-admin access to assignments; the
	// administrator bypass is the only way through.
	assignments := app.Group("/assignments", authn, guard.Enforce(policy.Protected()))
	assignments.Post("/", cfg.Assignments.CreateAssignment)
	assignments.Get("/", cfg.Assignments.ListAssignments)
	assignments.Get("/:id", cfg.Assignments.GetAssignment)
	assignments.Delete("/:id", cfg.Assignments.DeleteAssignment)

	users := app.Group("/users", authn, guard.Enforce(adminOnly))
	users.Post("/", cfg.Users.CreateUser)
	users.Get("/", cfg.Users.ListUsers)
	users.Get("/:id", cfg.Users.GetUser)
	users.Patch("/:id", cfg.Users.UpdateUser)
	users.Delete("/:id", cfg.Users.DeleteUser)

	roles := app.Group("/roles", authn, guard.Enforce(adminOnly))
	roles.Post("/", cfg.Roles.CreateRole)
	roles.Get("/", cfg.Roles.ListRoles)
	roles.Get("/:id", cfg.Roles.GetRole)
	roles.Patch("/:id", cfg.Roles.UpdateRole)
	roles.Delete("/:id", cfg.Roles.DeleteRole)

	categories := app.Group("/categories", authn, guard.Enforce(adminOnly))
	categories.Post("/", cfg.Categories.CreateCategory)
	categories.Get("/", cfg.Categories.ListCategories)
	categories.Get("/:id", cfg.Categories.GetCategory)
	categories.Patch("/:id", cfg.Categories.UpdateCategory)
	categories.Delete("/:id", cfg.Categories.DeleteCategory)

	clients := app.Group("/clients", authn, guard.Enforce(adminOnly))
	clients.Post("/", cfg.Clients.CreateClient)
	clients.Get("/", cfg.Clients.ListClients)
	clients.Get("/:id", cfg.Clients.GetClient)
	clients.Patch("/:id", cfg.Clients.UpdateClient)
	clients.Delete("/:id", cfg.Clients.DeleteClient)

	technicians := app.Group("/technicians", authn, guard.Enforce(adminOnly))
	technicians.Post("/", cfg.Technicians.CreateTechnician)
	technicians.Get("/", cfg.Technicians.ListTechnicians)
	technicians.Get("/:id", cfg.Technicians.GetTechnician)
	technicians.Patch("/:id", cfg.Technicians.UpdateTechnician)
	technicians.Delete("/:id", cfg.Technicians.DeleteTechnician)
}

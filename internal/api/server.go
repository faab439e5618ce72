package api

import (
	"github.com/gin-gonic/gin"

	"github.com/kingrain94/support-desk-api/internal/auth"
	"github.com/kingrain94/support-desk-api/internal/config"
	"github.com/kingrain94/support-desk-api/internal/middleware"
	"github.com/kingrain94/support-desk-api/internal/service/pubsub"
	"github.com/kingrain94/support-desk-api/pkg/logger"
)

// Services bundles the business services the routes dispatch to.
type Services struct {
	Auth      AuthService
	Tickets   TicketService
	Users     UserService
	Bookings  BookingService
	Dashboard DashboardService
	Tenants   TenantService
}

type Server struct {
	cfg        *config.Config
	auth       *AuthHandler
	tickets    *TicketHandler
	users      *UserHandler
	bookings   *BookingHandler
	dashboard  *DashboardHandler
	tenant     *TenantHandler
	websocket  *WebSocketHandler
	authMW     *middleware.AuthMiddleware
	rateLimit  *middleware.RateLimitMiddleware
	validation *middleware.ValidationMiddleware
}

// NewServer wires handlers to services. rateLimit and events may be nil, in
// which case rate limiting and the live ticket stream are not mounted.
func NewServer(
	cfg *config.Config,
	services Services,
	authMW *middleware.AuthMiddleware,
	rateLimit *middleware.RateLimitMiddleware,
	validation *middleware.ValidationMiddleware,
	logger *logger.Logger,
	events *pubsub.RedisPubSub,
) *Server {
	s := &Server{
		cfg:        cfg,
		auth:       NewAuthHandler(services.Auth, logger),
		tickets:    NewTicketHandler(services.Tickets, logger),
		users:      NewUserHandler(services.Users, logger),
		bookings:   NewBookingHandler(services.Bookings, logger),
		dashboard:  NewDashboardHandler(services.Dashboard, logger),
		tenant:     NewTenantHandler(services.Tenants, logger),
		authMW:     authMW,
		rateLimit:  rateLimit,
		validation: validation,
	}
	if events != nil {
		s.websocket = NewWebSocketHandler(logger.Named("ticket-stream"), events)
	}
	return s
}

func (s *Server) SetupRoutes(api *gin.RouterGroup) {
	api.Use(s.validation.BlockSuspiciousPatterns())
	api.Use(s.validation.SanitizeInput())
	// multipart framing on top of the largest allowed attachment
	api.Use(s.validation.ValidateRequestSize(s.cfg.Upload.MaxSizeBytes + 1<<20))
	api.Use(s.validation.ValidateContentType("application/json", "multipart/form-data"))

	if s.rateLimit != nil {
		api.Use(s.rateLimit.GlobalRateLimit(s.cfg.GlobalRateLimit))
	}

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", s.auth.Login)
		authGroup.POST("/register", s.auth.Register)
	}

	tickets := api.Group("/tickets")
	{
		tickets.GET("", s.authed(s.tickets.ListTickets))
		tickets.GET("/search", s.authed(s.tickets.SearchTickets))
		tickets.GET("/:id", s.authed(s.tickets.GetTicket))
		tickets.POST("", s.authed(s.tickets.CreateTicket))
		tickets.PUT("/:id", s.authed(s.tickets.UpdateTicket))
	}

	users := api.Group("/users")
	{
		users.GET("", s.allowed(auth.Identity.CanManageUsers, s.users.ListUsers))
		users.GET("/roles", s.allowed(middleware.AnyOf(auth.Identity.IsAdmin, auth.Identity.IsAgent), s.users.ListRoles))
		users.GET("/me", s.authed(s.users.Me))
		users.GET("/agents", s.authed(s.users.ListAgents))
		users.GET("/consultants", s.authed(s.users.ListConsultants))
		users.GET("/:id", s.authed(s.users.GetUser))
	}

	bookings := api.Group("/bookings")
	{
		bookings.GET("", s.authed(s.bookings.ListBookings))
		bookings.GET("/:id", s.authed(s.bookings.GetBooking))
		bookings.POST("", s.authed(s.bookings.CreateBooking))
		bookings.PUT("/:id/status", s.authed(s.bookings.UpdateBookingStatus))
	}

	api.GET("/dashboard/client/:userId", s.authed(s.dashboard.ClientDashboard))
	api.GET("/tenants/current", s.authed(s.tenant.CurrentTenant))

	if s.websocket != nil {
		api.GET("/ws/tickets", s.authed(s.websocket.HandleWebSocket))
	}
}

func (s *Server) limited(h middleware.IdentityHandlerFunc) middleware.IdentityHandlerFunc {
	if s.rateLimit == nil {
		return h
	}
	return s.rateLimit.TenantRateLimit(h)
}

func (s *Server) authed(h middleware.IdentityHandlerFunc) gin.HandlerFunc {
	return s.authMW.Authenticated(s.limited(h))
}

func (s *Server) allowed(pred middleware.Predicate, h middleware.IdentityHandlerFunc) gin.HandlerFunc {
	return s.authMW.Authorized(pred, s.limited(h))
}

// StartWebSocketHub starts the hub that fans ticket events out to sockets.
func (s *Server) StartWebSocketHub() {
	if s.websocket != nil {
		go s.websocket.Start()
	}
}

func (s *Server) StopWebSocketHub() {
	if s.websocket != nil {
		s.websocket.Stop()
	}
}

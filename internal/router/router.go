package router

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/kiwari-pos/floor/internal/auth"
	"github.com/kiwari-pos/floor/internal/config"
	"github.com/kiwari-pos/floor/internal/enum"
	"github.com/kiwari-pos/floor/internal/handler"
	mw "github.com/kiwari-pos/floor/internal/middleware"
	"github.com/kiwari-pos/floor/internal/service"
	"github.com/kiwari-pos/floor/internal/store"
	"github.com/kiwari-pos/floor/internal/ws"
)

// New creates a Chi router with all application routes wired up.
// Everything except health, login, refresh and the WebSocket endpoint
// requires a bearer token.
func New(cfg *config.Config, st *store.Store, payments *service.PaymentService, staff *auth.Directory, hub *ws.Hub) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	authHandler := handler.NewAuthHandler(staff, cfg.JWTSecret)
	authHandler.RegisterRoutes(r)

	// WebSocket route (handles auth internally via query param)
	r.Get("/ws", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, cfg.JWTSecret, w, r)
	})

	// Protected routes (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(mw.Authenticate(cfg.JWTSecret))

		r.Get("/auth/me", authHandler.Me)

		handler.NewDashboardHandler(st).RegisterRoutes(r)

		r.Route("/tables", handler.NewTableHandler(st).RegisterRoutes)
		r.Route("/reservations", handler.NewReservationHandler(st).RegisterRoutes)
		r.Route("/customers", handler.NewCustomerHandler(st).RegisterRoutes)
		r.Route("/selection", handler.NewSelectionHandler(st).RegisterRoutes)

		menuHandler := handler.NewMenuHandler(st)
		r.Route("/menu", menuHandler.RegisterRoutes)
		r.Route("/categories", menuHandler.RegisterCategoryRoutes)

		orderHandler := handler.NewOrderHandler(st)
		r.Route("/orders", func(r chi.Router) {
			orderHandler.RegisterRoutes(r)

			// Payments (nested under orders)
			r.Route("/{id}/payments", func(r chi.Router) {
				r.Use(mw.RequireRole(enum.UserRoleCashier, enum.UserRoleManager))
				handler.NewPaymentHandler(payments).RegisterRoutes(r)
			})
		})
	})

	log.Println("Router initialized with all handlers")
	return r
}

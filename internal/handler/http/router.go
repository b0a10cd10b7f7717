package http

import (
	"log/slog"
	"os"

	"github.com/danny20232023/hris-sub003/internal/config"
	"github.com/danny20232023/hris-sub003/internal/handler/http/middleware"
	"github.com/danny20232023/hris-sub003/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(cfg *config.Config, jwtService jwt.Service, authHandler AuthHandler, overtimeHandler OvertimeHandler) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hris-sub003"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
			r.Post("/logout", authHandler.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/overtime", func(r chi.Router) {

				r.Route("/transactions", func(r chi.Router) {
					r.Get("/", overtimeHandler.List)
					r.Post("/", overtimeHandler.Create)

					r.Route("/{id}", func(r chi.Router) {
						r.Get("/", overtimeHandler.Get)
						r.Put("/", overtimeHandler.Update)
						r.Patch("/status", overtimeHandler.SetStatus)

						// Admin only
						r.Group(func(r chi.Router) {
							r.Use(middleware.RequireRole("admin"))
							r.Delete("/", overtimeHandler.Delete)
						})
					})
				})

				r.Route("/dates", func(r chi.Router) {
					r.Get("/", overtimeHandler.ListDates)
					r.Route("/{id}", func(r chi.Router) {
						r.Put("/", overtimeHandler.UpdateDate)
						r.Post("/compute", overtimeHandler.ComputeDate)
						r.Post("/save", overtimeHandler.SaveDate)
						r.Delete("/pending", overtimeHandler.DiscardPending)
					})
				})

				r.Post("/compute-all", overtimeHandler.ComputeAll)
				r.Post("/save-all", overtimeHandler.SaveAll)

				r.Get("/raw-logs/{employeeID}/{date}", overtimeHandler.RawLogs)
			})
		})
	})

	return r
}

package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/peoplehub/hr-backend-go/internal/config"
	"github.com/peoplehub/hr-backend-go/internal/handler/http/middleware"
	"github.com/peoplehub/hr-backend-go/internal/pkg/jwt"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	categoryHandler CategoryHandler,
	leaveHandler LeaveHandler,
	attendanceHandler AttendanceHandler,
	notificationHandler NotificationHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hr-backend"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
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
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/leave-categories", func(r chi.Router) {
				r.Get("/", categoryHandler.List)
				r.Get("/{id}", categoryHandler.Get)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireApprover)
					r.Post("/", categoryHandler.Create)
					r.Put("/{id}", categoryHandler.Update)
					r.Delete("/{id}", categoryHandler.Delete)
				})
			})

			r.Route("/leave-allotments", func(r chi.Router) {
				r.Get("/", leaveHandler.ListAllotments)
				r.Get("/history/{categoryID}", leaveHandler.LedgerHistory)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireApprover)
					r.Post("/", leaveHandler.CreateAllotment)
					r.Put("/{id}", leaveHandler.EditAllotment)
					r.Delete("/{id}", leaveHandler.DeleteAllotment)
				})
			})

			r.Route("/leave-requests", func(r chi.Router) {
				r.Post("/", leaveHandler.SubmitRequest)
				r.Get("/my", leaveHandler.GetMyRequests)
				r.Delete("/{id}", leaveHandler.DeleteRequest)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireApprover)
					r.Get("/", leaveHandler.ListRequests)
					r.Post("/{id}/decision", leaveHandler.DecideRequest)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/clock-in", attendanceHandler.ClockIn)
				r.Get("/penalties", attendanceHandler.ListMyPenalties)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireApprover)
					r.Post("/reconcile", attendanceHandler.Reconcile)
				})
			})

			r.Get("/notifications/stream", notificationHandler.Stream)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n"))
	})

	return r
}

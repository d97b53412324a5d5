package api

import (
	"net/http"
	"time"

	"evalux/internal/api/handler"
	"evalux/internal/app/service"
	"evalux/internal/common"
	"evalux/internal/common/security"
	"evalux/internal/platform/database"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authService *service.AuthService,
	cvService *service.CVService,
	interviewService *service.InterviewService,
	problemService *service.ProblemService,
	submissionService *service.SubmissionService,
	adminService *service.AdminService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Verifies the Authorization: Bearer token and puts claims in context.
	r.Use(jwtauth.Verifier(security.TokenAuth))

	// Public root and health check
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		common.RespondWithJSON(w, http.StatusOK, map[string]string{
			"service": "evalux",
			"status":  "running",
		})
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := database.DB.PingContext(r.Context()); err != nil {
			common.RespondWithError(w, http.StatusServiceUnavailable, "database unreachable")
			return
		}
		common.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// API v1 Routes
	r.Route("/api/v1", func(v1 chi.Router) {
		authHandler := handler.NewAuthHandler(authService)
		v1.Route("/auth", authHandler.RegisterRoutes)

		cvHandler := handler.NewCVHandler(cvService)
		v1.Route("/cv", cvHandler.RegisterRoutes)

		interviewHandler := handler.NewInterviewHandler(interviewService)
		v1.Route("/interviews", interviewHandler.RegisterRoutes)

		problemHandler := handler.NewProblemHandler(problemService)
		v1.Route("/problems", problemHandler.RegisterRoutes)

		submissionHandler := handler.NewSubmissionHandler(submissionService)
		v1.Route("/submissions", submissionHandler.RegisterRoutes)

		adminHandler := handler.NewAdminHandler(adminService)
		v1.Route("/admin", adminHandler.RegisterRoutes)
	})

	return r
}

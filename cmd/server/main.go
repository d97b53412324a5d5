package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"evalux/internal/api"
	"evalux/internal/app/service"
	"evalux/internal/codexec"
	"evalux/internal/common/security"
	"evalux/internal/domain/repository"
	"evalux/internal/platform/cache"
	"evalux/internal/platform/config"
	"evalux/internal/platform/database"
	"evalux/internal/platform/groq"
	"evalux/internal/platform/mail"
	"evalux/internal/problemgen"
)

func main() {
	// 1. Load Configuration
	config.Load()
	fmt.Println("Configuration loaded.")

	// 2. Initialize JWT
	security.InitJWT()
	fmt.Println("JWT initialized.")

	// 3. Initialize Database
	database.Connect()
	defer database.Close()
	fmt.Println("Database connected.")

	// 4. Initialize Redis
	cache.Connect()
	defer cache.Close()
	fmt.Println("Redis connected.")

	// 5. Initialize Repositories
	userRepo := repository.NewPgUserRepository(database.DB)
	cvRepo := repository.NewPgCVRepository(database.DB)
	interviewRepo := repository.NewPgInterviewRepository(database.DB)
	problemRepo := repository.NewPgProblemRepository(database.DB)
	submissionRepo := repository.NewPgSubmissionRepository(database.DB)

	// 6. Initialize Platform Components
	mailer := mail.NewMailer(
		config.AppConfig.EmailHost,
		config.AppConfig.EmailPort,
		config.AppConfig.EmailUser,
		config.AppConfig.EmailPass,
	)

	// A nil provider is valid: every AI-backed service has a deterministic
	// fallback path.
	var provider service.Completer
	var genProvider problemgen.Completer
	if config.AppConfig.GroqAPIKey != "" {
		client := groq.NewClient(
			config.AppConfig.GroqAPIKey,
			config.AppConfig.GroqModel,
			config.AppConfig.GroqBaseURL,
		)
		provider = client
		genProvider = client
		fmt.Println("AI provider configured.")
	} else {
		log.Println("GROQ_API_KEY not set, running with deterministic fallbacks")
	}

	runner := codexec.NewRunner(time.Duration(config.AppConfig.ExecutionTimeoutMs) * time.Millisecond)
	generator := problemgen.NewGenerator(genProvider)

	// 7. Initialize Services
	authService := service.NewAuthService(userRepo, mailer, cache.RDB)
	cvService := service.NewCVService(cvRepo, provider)
	interviewService := service.NewInterviewService(interviewRepo, cvRepo, cache.RDB, provider)
	problemService := service.NewProblemService(problemRepo, cvRepo, generator)
	submissionService := service.NewSubmissionService(problemRepo, submissionRepo, runner)
	adminService := service.NewAdminService(userRepo, cvRepo)

	// 8. Initialize Router & HTTP Server
	router := api.NewRouter(authService, cvService, interviewService, problemService, submissionService, adminService)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 9. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}

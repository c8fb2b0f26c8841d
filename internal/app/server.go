package app

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/dcharly/atsparse/internal/api/handlers"
	appMiddleware "github.com/dcharly/atsparse/internal/api/middlewares"
	"github.com/dcharly/atsparse/internal/config"
	"github.com/dcharly/atsparse/internal/core"
	"github.com/dcharly/atsparse/internal/services"
)

// Server wraps the HTTP server instance and its handlers.
type Server struct {
	httpServer *http.Server
}

// NewServer builds and wires all routes.
func NewServer(cfg *config.Config, db core.DbClient, parseSvc *services.ParseService, fileSvc *services.FileService, userSvc *services.UserService) *Server {
	authHandler := handlers.NewAuthHandler(userSvc, cfg.JWTSecret)
	parseHandler := handlers.NewParseHandler(parseSvc, fileSvc, cfg.MaxUploadBytes)
	resumeHandler := handlers.NewResumeHandler(db)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8888"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// Serve static files from the web directory
	fileServer := http.FileServer(http.Dir("./web"))
	r.Handle("/*", fileServer)

	// API routes
	r.Route("/api", func(api chi.Router) {
		// public endpoints
		api.Post("/signup", authHandler.Signup)
		api.Post("/login", authHandler.Login)

		// the two extraction flows stay on distinct routes: a JSON body
		// and a multipart form can't share one path cleanly
		api.Post("/resume/parse", parseHandler.ParseResumeText)
		api.Post("/resume/upload", parseHandler.UploadResume)

		// protected endpoints
		api.Group(func(protected chi.Router) {
			protected.Use(appMiddleware.JWT(cfg.JWTSecret))
			protected.Get("/resumes", resumeHandler.ListResumes)
			protected.Get("/resumes/{id}", resumeHandler.GetResume)
			protected.Get("/resumes/{id}/similar", resumeHandler.SimilarResumes)
		})
	})

	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	return &Server{httpServer: httpSrv}
}

// Start runs the HTTP server.
func (s *Server) Start() {
	log.Printf("HTTP server listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down HTTP server...")
	return s.httpServer.Shutdown(ctx)
}

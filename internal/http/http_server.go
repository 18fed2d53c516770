package http

// this is entry point of the http request handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"

	"gitlab.com/ppjudge.net/internal/core/ports/primary"
	"gitlab.com/ppjudge.net/internal/core/services/judge"
	"gitlab.com/ppjudge.net/internal/handlers/problems"
	"gitlab.com/ppjudge.net/internal/handlers/submissions"
)

type ServiceProvider struct {
	judgeService      judge.IJudgeService
	defaultProblemSet string
}

func NewServiceProvider(judgeService judge.IJudgeService, defaultProblemSet string) *ServiceProvider {
	return &ServiceProvider{
		judgeService:      judgeService,
		defaultProblemSet: defaultProblemSet,
	}
}

type Server struct {
	router          *mux.Router
	srv             *http.Server
	Port            int
	ServiceName     string
	ServiceProvider ServiceProvider
	logger          primary.Logger
}

func NewServer(port int, serviceName string, serviceProvider ServiceProvider, logger primary.Logger) *Server {
	return &Server{
		Port:            port,
		ServiceName:     serviceName,
		ServiceProvider: serviceProvider,
		logger:          logger,
	}
}

func (s *Server) Init() error {
	r := mux.NewRouter()
	submissions.
		NewSubmissionHandler(s.ServiceProvider.judgeService, s.ServiceProvider.defaultProblemSet, s.logger).
		RegisterRoutes(r)
	problems.
		NewProblemHandler(s.ServiceProvider.judgeService, s.logger).
		RegisterRoutes(r)
	s.router = r
	return nil
}

func (s *Server) Start(ctx context.Context) {
	s.srv = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start the server in a goroutine
	go func() {
		s.logger.Info("Server listening", "service", s.ServiceName, "addr", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()
}

func (s *Server) Stop(ctx context.Context) {
	s.logger.Info("Shutting down http server...")
	if s.srv == nil {
		return
	}
	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Error("Server forced to shutdown", "error", err)
	}
}

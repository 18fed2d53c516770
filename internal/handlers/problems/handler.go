package problems

import (
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/ppjudge.net/internal/core/ports/primary"
	"gitlab.com/ppjudge.net/internal/core/services/judge"
	"gitlab.com/ppjudge.net/internal/handlers/response"
)

// ProblemHandler serves the read-only problem catalog
type ProblemHandler struct {
	judgeService judge.IJudgeService
	logger       primary.Logger
}

// NewProblemHandler creates a new problem handler
func NewProblemHandler(judgeService judge.IJudgeService, logger primary.Logger) *ProblemHandler {
	return &ProblemHandler{
		judgeService: judgeService,
		logger:       logger,
	}
}

// RegisterRoutes registers the API routes for ProblemHandler
func (h *ProblemHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/problems/{problemSet}", h.ListProblems).Methods("GET")
}

// ListProblems handles problem catalog requests
func (h *ProblemHandler) ListProblems(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	problemSet := vars["problemSet"]

	problems, err := h.judgeService.ListProblems(r.Context(), problemSet)
	if err != nil {
		h.logger.Error("Failed to list problems", "problemSet", problemSet, "error", err)
		response.WriteError(w, response.ErrorMessage{Message: "Failed to list problems", StatusCode: http.StatusInternalServerError})
		return
	}

	response.WriteSuccess(w, map[string]interface{}{"problems": problems})
}

package submissions

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"gitlab.com/ppjudge.net/internal/core/ports/primary"
	"gitlab.com/ppjudge.net/internal/core/services/judge"
	"gitlab.com/ppjudge.net/internal/handlers/response"
	"gitlab.com/ppjudge.net/internal/static/errs"
)

// SubmissionHandler handles submission and judge-run API requests
type SubmissionHandler struct {
	judgeService      judge.IJudgeService
	defaultProblemSet string
	logger            primary.Logger
}

// NewSubmissionHandler creates a new submission handler
func NewSubmissionHandler(judgeService judge.IJudgeService, defaultProblemSet string, logger primary.Logger) *SubmissionHandler {
	return &SubmissionHandler{
		judgeService:      judgeService,
		defaultProblemSet: defaultProblemSet,
		logger:            logger,
	}
}

// RegisterRoutes registers the API routes for SubmissionHandler
func (h *SubmissionHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/submissions", h.Submit).Methods("POST")
	router.HandleFunc("/api/submissions/{submissionId}", h.GetSubmission).Methods("GET")
	router.HandleFunc("/api/runs/{runId}", h.GetRun).Methods("GET")
	router.HandleFunc("/api/problems/{problemSet}/{problemId}/submissions", h.ListSubmissions).Methods("GET")
	router.HandleFunc("/api/users/{userId}/status", h.GetUserStatus).Methods("GET")
}

// Submit judges a submission synchronously and returns the outcome
func (h *SubmissionHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", "error", err)
		response.WriteError(w, response.ErrorMessage{Message: "Invalid request", StatusCode: http.StatusBadRequest})
		return
	}
	if req.ProblemID == "" || req.Code == "" {
		response.WriteError(w, response.ErrorMessage{Message: "problem_id and code are required", StatusCode: http.StatusBadRequest})
		return
	}
	if req.ProblemSet == "" {
		req.ProblemSet = h.defaultProblemSet
	}
	if req.UserID == "" {
		req.UserID = "default"
	}

	outcome, err := h.judgeService.Submit(r.Context(), &judge.SubmitRequest{
		UserID:     req.UserID,
		ProblemID:  req.ProblemID,
		ProblemSet: req.ProblemSet,
		SourceCode: req.Code,
	})
	if err != nil {
		if errors.Is(err, errs.ErrCaseNotFound) {
			response.WriteError(w, response.ErrorMessage{Message: "No test cases for problem", StatusCode: http.StatusNotFound})
			return
		}
		h.logger.Error("Failed to judge submission", "error", err)
		response.WriteError(w, response.ErrorMessage{Message: "Failed to judge submission", StatusCode: http.StatusInternalServerError})
		return
	}

	resp := SubmitResponse{
		RunID:        outcome.RunID,
		SubmissionID: outcome.Submission.ID,
		Status:       outcome.Submission.Status,
		Results:      outcome.Results,
		Solved:       outcome.UserStatus.Solved,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(resp)
}

// GetRun handles judge run retrieval requests
func (h *SubmissionHandler) GetRun(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	runID := vars["runId"]

	run, err := h.judgeService.GetRun(r.Context(), runID)
	if err != nil {
		if errors.Is(err, errs.ErrRunNotFound) {
			response.WriteError(w, response.ErrorMessage{Message: "Run not found", StatusCode: http.StatusNotFound})
			return
		}
		h.logger.Error("Failed to get run", "runId", runID, "error", err)
		response.WriteError(w, response.ErrorMessage{Message: "Failed to get run", StatusCode: http.StatusInternalServerError})
		return
	}

	response.WriteSuccess(w, run)
}

// ListSubmissions handles submission listing requests
func (h *SubmissionHandler) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	problemSet := vars["problemSet"]
	problemID := vars["problemId"]

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.WriteError(w, response.ErrorMessage{Message: "Invalid limit", StatusCode: http.StatusBadRequest})
			return
		}
		limit = parsed
	}

	logs, err := h.judgeService.ListSubmissions(r.Context(), problemSet, problemID, limit)
	if err != nil {
		h.logger.Error("Failed to list submissions", "problemId", problemID, "error", err)
		response.WriteError(w, response.ErrorMessage{Message: "Failed to list submissions", StatusCode: http.StatusInternalServerError})
		return
	}

	response.WriteSuccess(w, map[string]interface{}{"submissions": logs})
}

// GetSubmission handles submission detail requests
func (h *SubmissionHandler) GetSubmission(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	submissionID := vars["submissionId"]

	log, result, err := h.judgeService.GetSubmissionDetails(r.Context(), submissionID)
	if err != nil {
		if errors.Is(err, errs.ErrSubmissionNotFound) {
			response.WriteError(w, response.ErrorMessage{Message: "Submission not found", StatusCode: http.StatusNotFound})
			return
		}
		h.logger.Error("Failed to get submission", "submissionId", submissionID, "error", err)
		response.WriteError(w, response.ErrorMessage{Message: "Failed to get submission", StatusCode: http.StatusInternalServerError})
		return
	}

	response.WriteSuccess(w, map[string]interface{}{
		"submission": log,
		"result":     result,
	})
}

// GetUserStatus handles user status requests
func (h *SubmissionHandler) GetUserStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	userID := vars["userId"]

	problemID := r.URL.Query().Get("problem_id")
	if problemID == "" {
		response.WriteError(w, response.ErrorMessage{Message: "problem_id is required", StatusCode: http.StatusBadRequest})
		return
	}
	problemSet := r.URL.Query().Get("problem_set")
	if problemSet == "" {
		problemSet = h.defaultProblemSet
	}

	status, err := h.judgeService.GetUserStatus(r.Context(), userID, problemSet, problemID)
	if err != nil {
		h.logger.Error("Failed to get user status", "userId", userID, "error", err)
		response.WriteError(w, response.ErrorMessage{Message: "Failed to get user status", StatusCode: http.StatusInternalServerError})
		return
	}

	response.WriteSuccess(w, status)
}

package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/scamwatch/backend/internal/middleware"
	"github.com/scamwatch/backend/internal/models"
	"github.com/scamwatch/backend/internal/scoring"
	"github.com/scamwatch/backend/internal/services"
)

type ReportHandler struct {
	reportService services.ReportService
	scorer        *services.ReportScorer
	notifier      *services.Notifier
}

func NewReportHandler(reportService services.ReportService, scorer *services.ReportScorer, notifier *services.Notifier) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		scorer:        scorer,
		notifier:      notifier,
	}
}

func (h *ReportHandler) CreateReport(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	var req models.CreateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		log.Printf("[CreateReport] Validation errors: %v", errors)
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	candidate := scoring.Candidate{
		Username:    req.ScammerUsername,
		Platform:    req.Platform,
		ScamType:    req.ScamType,
		Description: req.Description,
		CreatedAt:   time.Now().UTC(),
	}

	score, knownScam, err := h.scorer.ScoreCandidate(r.Context(), candidate)
	if err != nil {
		if errors.Is(err, scoring.ErrMissingUsername) {
			writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Username is required"))
			return
		}
		// A degraded scoring computation must never slip through as a
		// low-risk report.
		log.Printf("[CreateReport] scoring failed: %v", err)
		writeJSON(w, http.StatusServiceUnavailable, models.NewErrorResponse("Could not process your report right now, please try again"))
		return
	}

	status := services.InitialStatus(knownScam)

	report, err := h.reportService.Create(r.Context(), userID, &req, score, knownScam, status)
	if err != nil {
		log.Printf("[CreateReport] Service error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to create report"))
		return
	}

	log.Printf("[CreateReport] Report created: %s score=%d status=%s", report.ID, report.RiskScore, report.Status)
	if h.notifier != nil {
		go h.notifier.NotifyReportReceived(report)
	}

	writeJSON(w, http.StatusCreated, models.NewSuccessResponse(report))
}

func (h *ReportHandler) ListReports(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	search := r.URL.Query().Get("search")

	isAdmin := middleware.GetUserRole(r.Context()) == models.RoleAdmin

	result, err := h.reportService.Search(r.Context(), search, page, isAdmin)
	if err != nil {
		log.Printf("[ListReports] Service error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to fetch reports"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(result))
}

func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	reportID := chi.URLParam(r, "reportId")

	report, err := h.reportService.GetByID(r.Context(), reportID)
	if err != nil {
		if err == services.ErrReportNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Report not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to get report"))
		return
	}

	// Non-admins only see confirmed reports in search; detail follows the
	// same visibility rule.
	if report.Status != models.StatusConfirmed && middleware.GetUserRole(r.Context()) != models.RoleAdmin {
		writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Report not found"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(report))
}

func (h *ReportHandler) VoteReport(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}
	reportID := chi.URLParam(r, "reportId")

	var req models.VoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}
	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	delta := 1
	if req.VoteType == "down" {
		delta = -1
	}

	report, err := h.reportService.Vote(r.Context(), reportID, delta)
	if err != nil {
		if err == services.ErrReportNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Report not found"))
			return
		}
		log.Printf("[VoteReport] Service error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to submit vote"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(report))
}

package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/scamwatch/backend/internal/models"
	"github.com/scamwatch/backend/internal/services"
)

type AdminHandler struct {
	reportService  services.ReportService
	contactService services.ContactService
	notifier       *services.Notifier
}

func NewAdminHandler(reportService services.ReportService, contactService services.ContactService, notifier *services.Notifier) *AdminHandler {
	return &AdminHandler{
		reportService:  reportService,
		contactService: contactService,
		notifier:       notifier,
	}
}

func (h *AdminHandler) UpdateReportStatus(w http.ResponseWriter, r *http.Request) {
	reportID := chi.URLParam(r, "reportId")

	var req models.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}
	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	report, err := h.reportService.UpdateStatus(r.Context(), reportID, req.Status)
	if err != nil {
		if err == services.ErrReportNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Report not found"))
			return
		}
		log.Printf("[UpdateReportStatus] Service error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to update report"))
		return
	}

	log.Printf("[UpdateReportStatus] Report %s -> %s", report.ID, report.Status)
	if report.Status == models.StatusConfirmed && h.notifier != nil {
		go h.notifier.NotifyReportConfirmed(report)
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(report))
}

func (h *AdminHandler) EscalateReport(w http.ResponseWriter, r *http.Request) {
	reportID := chi.URLParam(r, "reportId")

	report, err := h.reportService.UpdateStatus(r.Context(), reportID, models.StatusEscalated)
	if err != nil {
		if err == services.ErrReportNotFound {
			writeJSON(w, http.StatusNotFound, models.NewErrorResponse("Report not found"))
			return
		}
		log.Printf("[EscalateReport] Service error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to escalate report"))
		return
	}

	log.Printf("[EscalateReport] Report %s escalated", report.ID)
	writeJSON(w, http.StatusOK, models.NewSuccessResponse(report))
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.reportService.Dashboard(r.Context())
	if err != nil {
		log.Printf("[Dashboard] Service error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to load dashboard"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(dashboard))
}

func (h *AdminHandler) ListContactMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.contactService.List(r.Context())
	if err != nil {
		log.Printf("[ListContactMessages] Service error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to fetch messages"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(messages))
}

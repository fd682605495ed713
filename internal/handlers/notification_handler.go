package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/scamwatch/backend/internal/middleware"
	"github.com/scamwatch/backend/internal/models"
	"github.com/scamwatch/backend/internal/services"
)

type NotificationHandler struct {
	notificationService services.NotificationService
}

func NewNotificationHandler(notificationService services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	notifications, err := h.notificationService.ListForUser(r.Context(), userID)
	if err != nil {
		log.Printf("[ListNotifications] Service error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to fetch notifications"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(notifications))
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse("Unauthorized"))
		return
	}

	var req models.MarkReadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	if err := h.notificationService.MarkRead(r.Context(), userID, req.IDs); err != nil {
		log.Printf("[MarkRead] Service error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("Failed to mark notifications read"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(nil))
}

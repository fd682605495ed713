package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/scamwatch/backend/internal/models"
	"github.com/scamwatch/backend/internal/services"
)

type ContactHandler struct {
	contactService services.ContactService
}

func NewContactHandler(contactService services.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

func (h *ContactHandler) SubmitMessage(w http.ResponseWriter, r *http.Request) {
	var req models.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.NewErrorResponse("Invalid request body"))
		return
	}

	if errors := req.Validate(); len(errors) > 0 {
		writeJSON(w, http.StatusBadRequest, models.NewValidationErrorResponse(errors))
		return
	}

	message, err := h.contactService.Create(r.Context(), req.Email, req.Message)
	if err != nil {
		log.Printf("[SubmitMessage] Service error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.NewErrorResponse("An error occurred while storing the message"))
		return
	}

	writeJSON(w, http.StatusOK, models.NewSuccessResponse(message))
}

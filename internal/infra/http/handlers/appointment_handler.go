package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/echtwell/echt-crm/internal/usecase"
)

type AppointmentHandler struct {
	BookAppointment *usecase.BookAppointmentUseCase
}

func NewAppointmentHandler(book *usecase.BookAppointmentUseCase) *AppointmentHandler {
	return &AppointmentHandler{BookAppointment: book}
}

func (h *AppointmentHandler) Book(w http.ResponseWriter, r *http.Request) {
	var input usecase.BookAppointmentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	output, err := h.BookAppointment.Execute(r.Context(), input)
	if err != nil {
		if usecase.IsDomainError(err) {
			writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": "An unexpected error occurred."})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success":        true,
		"message":        "Appointment booked successfully!",
		"appointment_id": output.AppointmentID,
		"lead_id":        output.LeadID,
	})
}

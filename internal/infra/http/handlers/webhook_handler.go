package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/echtwell/echt-crm/internal/infra/http/middleware"
	"github.com/echtwell/echt-crm/internal/usecase"
)

// webhookPayload is everything echt.im may deliver. Status updates and user
// messages arrive on the same endpoint and are told apart by field presence.
type webhookPayload struct {
	ID       string `json:"id"`
	Status   string `json:"status"`
	StatusAt string `json:"statusAt"`
	Error    string `json:"error"`

	IMType            string  `json:"imType"`
	SourceNumber      string  `json:"source_number"`
	DestinationNumber string  `json:"destination_number"`
	ReceivedAt        string  `json:"receivedAt"`
	ContentType       string  `json:"contentType"`
	Text              string  `json:"text"`
	AttachmentURL     string  `json:"attachmentUrl"`
	AttachmentName    string  `json:"attachmentName"`
	Longitude         float64 `json:"longitude"`
	Latitude          float64 `json:"latitude"`
	LocationAddress   string  `json:"locationAddress"`
	Username          string  `json:"username"`
	Payload           string  `json:"payload"` // button code when contentType is "button"
}

type webhookAck struct {
	Status  string `json:"status,omitempty"`
	Message string `json:"message"`
}

// WebhookHandler owns the always-200 policy: the gateway contract requires a
// success response no matter what happened inside, so every internal failure
// is logged and counted here and never surfaces over the wire.
type WebhookHandler struct {
	Inbound *usecase.InboundMessageUseCase
}

func NewWebhookHandler(inbound *usecase.InboundMessageUseCase) *WebhookHandler {
	return &WebhookHandler{Inbound: inbound}
}

func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var payload webhookPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Printf("webhook received undecodable body: %v", err)
		middleware.RecordWebhookError()
		writeAck(w, webhookAck{Status: "error", Message: "Invalid payload received by webhook"})
		return
	}

	// delivery-status callback: log and acknowledge, tracking not implemented
	if payload.Status != "" && payload.StatusAt != "" {
		log.Printf("message status update: ID %s, status %s, at %s, error: %s",
			payload.ID, payload.Status, payload.StatusAt, errorOrNone(payload.Error))
		writeAck(w, webhookAck{Message: "Status update received"})
		return
	}

	if payload.SourceNumber == "" || payload.ContentType == "" {
		log.Printf("webhook received an invalid or empty incoming message payload")
		writeAck(w, webhookAck{Status: "error", Message: "Invalid payload received by webhook"})
		return
	}

	middleware.RecordMessageReceived(payload.ContentType)

	intent, err := h.Inbound.Execute(r.Context(), usecase.InboundMessage{
		SenderPhone:   payload.SourceNumber,
		Username:      payload.Username,
		ContentType:   payload.ContentType,
		Text:          payload.Text,
		ButtonPayload: payload.Payload,
		AttachmentURL: payload.AttachmentURL,
	})
	if err != nil {
		log.Printf("❌ error processing webhook message from %s: %v", payload.SourceNumber, err)
		middleware.RecordWebhookError()
		writeAck(w, webhookAck{Status: "error", Message: "Internal server error processing webhook"})
		return
	}

	middleware.RecordIntent(string(intent))
	writeAck(w, webhookAck{Message: "Incoming message processed"})
}

// HandleVerify answers the gateway's GET probe during webhook setup.
func (h *WebhookHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	writeAck(w, webhookAck{Message: "Webhook endpoint is active. Configure verification as per echt.im docs."})
}

func writeAck(w http.ResponseWriter, ack webhookAck) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(ack)
}

func errorOrNone(s string) string {
	if s == "" {
		return "None"
	}
	return s
}

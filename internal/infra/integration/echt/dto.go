package echt

type SendMessageInput struct {
	Phone    string // normalized digits incl. country code, ex: "918526454931"
	Message  string
	MediaURL string // optional attachment
}

// sendRequest is the wire shape echt.im expects on POST /api/v1/message.
type sendRequest struct {
	Phone    string  `json:"phone"`
	Message  string  `json:"message"`
	MediaURL *string `json:"media_url,omitempty"`
}

type sendResponse struct {
	MessageID string `json:"messageId"`
	Message   string `json:"message"`
	Error     string `json:"error,omitempty"`
}

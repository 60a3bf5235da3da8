package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/echtwell/echt-crm/internal/infra/queue"
	"github.com/echtwell/echt-crm/internal/infra/session"
)

// Intent is the classified purpose of an inbound message.
type Intent string

const (
	IntentOrder       Intent = "order"
	IntentAppointment Intent = "appointment"
	IntentInquiry     Intent = "inquiry"
	IntentButton      Intent = "button"
	IntentMedia       Intent = "media"
	IntentUnknown     Intent = "unknown"
)

// InboundMessage is a user-originated message as delivered by the gateway
// webhook, already stripped of the delivery-status variant.
type InboundMessage struct {
	SenderPhone   string
	Username      string
	ContentType   string
	Text          string
	ButtonPayload string
	AttachmentURL string
}

var mediaContentTypes = map[string]bool{
	"image":    true,
	"document": true,
	"video":    true,
	"location": true,
}

// InboundMessageUseCase classifies a message and dispatches it. Substring
// matching, first match wins; a sender with an open order session skips
// classification entirely so replies like "2" land in the flow.
type InboundMessageUseCase struct {
	ResolveLead *ResolveLeadUseCase
	OrderFlow   *OrderFlowUseCase
	Sessions    session.Store
	Sender      MessageSender
	Notifier    NotificationPublisherInterface
}

func NewInboundMessageUseCase(
	resolveLead *ResolveLeadUseCase,
	orderFlow *OrderFlowUseCase,
	sessions session.Store,
	sender MessageSender,
	notifier NotificationPublisherInterface,
) *InboundMessageUseCase {
	return &InboundMessageUseCase{
		ResolveLead: resolveLead,
		OrderFlow:   orderFlow,
		Sessions:    sessions,
		Sender:      sender,
		Notifier:    notifier,
	}
}

func (uc *InboundMessageUseCase) Execute(ctx context.Context, msg InboundMessage) (Intent, error) {
	phone := uc.Sender.FormatPhoneNumber(msg.SenderPhone)
	log.Printf("processing incoming message from %s (%s): type %s", phone, usernameOrNA(msg.Username), msg.ContentType)

	switch {
	case msg.ContentType == "text" && msg.Text != "":
		return uc.handleText(ctx, phone, msg)

	case msg.ContentType == "button" && msg.ButtonPayload != "":
		log.Printf("button click from %s, payload: %s", phone, msg.ButtonPayload)
		err := uc.Sender.SendText(ctx, phone,
			fmt.Sprintf("You clicked a button with payload: %s. We will process this!", msg.ButtonPayload))
		return IntentButton, err

	case mediaContentTypes[msg.ContentType]:
		err := uc.Sender.SendText(ctx, phone,
			fmt.Sprintf("Thanks for sending the %s. We will review it.", msg.ContentType))
		return IntentMedia, err

	default:
		log.Printf("unhandled contentType %q from %s", msg.ContentType, phone)
		err := uc.Sender.SendText(ctx, phone, "Sorry, I didn't understand that type of message.")
		return IntentUnknown, err
	}
}

func (uc *InboundMessageUseCase) handleText(ctx context.Context, phone string, msg InboundMessage) (Intent, error) {
	// open session first: mid-flow replies carry no keywords
	if _, err := uc.Sessions.Get(ctx, phone); err == nil {
		return IntentOrder, uc.OrderFlow.Continue(ctx, phone, msg.Text)
	} else if !errors.Is(err, session.ErrNotFound) {
		return IntentOrder, &TechnicalError{Code: "SESSION_READ_FAILED", Message: err.Error()}
	}

	lower := strings.ToLower(msg.Text)

	switch {
	case strings.Contains(lower, "order") || strings.Contains(lower, "buy"):
		lead, err := uc.resolveAndNotify(ctx, phone, msg, "Product Order")
		if err != nil {
			return IntentOrder, err
		}
		return IntentOrder, uc.OrderFlow.Start(ctx, phone, lead)

	case strings.Contains(lower, "appointment") || strings.Contains(lower, "book"):
		lead, err := uc.resolveAndNotify(ctx, phone, msg, "Appointment Request")
		if err != nil {
			return IntentAppointment, err
		}
		return IntentAppointment, uc.Sender.SendText(ctx, phone,
			fmt.Sprintf("We've received your appointment request (Lead: %s). Our team will assist you soon!", lead.ID))

	default:
		lead, err := uc.resolveAndNotify(ctx, phone, msg, "General Inquiry")
		if err != nil {
			return IntentInquiry, err
		}
		reply := fmt.Sprintf(
			`Thanks for your message, %s! A team member will review your inquiry (ref: %s). How can I assist you today? (Type "order" for products or "appointment" to book)`,
			usernameOrThere(msg.Username), shortID(lead.ID),
		)
		return IntentInquiry, uc.Sender.SendText(ctx, phone, reply)
	}
}

func (uc *InboundMessageUseCase) resolveAndNotify(ctx context.Context, phone string, msg InboundMessage, serviceHint string) (LeadInfo, error) {
	lead, err := uc.ResolveLead.Execute(ctx, phone, msg.Username, msg.Text, serviceHint)
	if err != nil {
		return LeadInfo{}, err
	}

	if lead.IsNew && uc.Notifier != nil {
		payload := queue.NotificationPayload{
			Kind:        queue.NotificationNewLead,
			LeadID:      lead.ID,
			Name:        msg.Username,
			Phone:       phone,
			ServiceType: serviceHint,
			Source:      SourceWhatsApp,
		}
		if err := uc.Notifier.PublishNotification(ctx, payload); err != nil {
			// the lead is already saved, an unsent alert is not worth failing for
			log.Printf("⚠️ failed to queue new-lead notification for %s: %v", lead.ID, err)
		}
	}

	return lead, nil
}

func usernameOrNA(name string) string {
	if name == "" {
		return "N/A"
	}
	return name
}

func usernameOrThere(name string) string {
	if name == "" {
		return "there"
	}
	return name
}

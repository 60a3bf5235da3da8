package usecase

import (
	"context"
	"errors"
	"log"

	"github.com/echtwell/echt-crm/internal/entity"
)

const SourceWhatsApp = "WhatsApp"

// Defaults used when the first inbound contact carries no usable detail.
const (
	defaultLeadName    = "WhatsApp User"
	defaultLeadMessage = "Initial contact via WhatsApp"
	defaultServiceHint = "Unknown Inquiry"
)

type LeadInfo struct {
	ID    string
	IsNew bool
}

// ResolveLeadUseCase finds or creates the lead for a phone number. At most
// one lead per phone, enforced by lookup-before-insert.
type ResolveLeadUseCase struct {
	Leads entity.LeadRepositoryInterface
}

func NewResolveLeadUseCase(leads entity.LeadRepositoryInterface) *ResolveLeadUseCase {
	return &ResolveLeadUseCase{Leads: leads}
}

func (uc *ResolveLeadUseCase) Execute(ctx context.Context, phone, displayName, initialMessage, serviceHint string) (LeadInfo, error) {
	existing, err := uc.Leads.FindByPhone(ctx, phone)
	if err != nil && !errors.Is(err, entity.ErrLeadNotFound) {
		return LeadInfo{}, &TechnicalError{
			Code:    "LEAD_LOOKUP_FAILED",
			Message: "error checking for existing lead: " + err.Error(),
		}
	}

	if existing != nil {
		log.Printf("lead already exists for phone %s with ID %s", phone, existing.ID)
		return LeadInfo{ID: existing.ID, IsNew: false}, nil
	}

	if displayName == "" {
		displayName = defaultLeadName
	}
	if initialMessage == "" {
		initialMessage = defaultLeadMessage
	}
	if serviceHint == "" {
		serviceHint = defaultServiceHint
	}

	lead := entity.NewLead(displayName, phone, "", serviceHint, initialMessage, SourceWhatsApp)
	if err := uc.Leads.Create(ctx, lead); err != nil {
		return LeadInfo{}, &TechnicalError{
			Code:    "LEAD_CREATE_FAILED",
			Message: "error creating new lead: " + err.Error(),
		}
	}

	log.Printf("new lead created from WhatsApp with ID %s", lead.ID)
	return LeadInfo{ID: lead.ID, IsNew: true}, nil
}

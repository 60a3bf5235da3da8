package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/echtwell/echt-crm/internal/entity"
)

type BookAppointmentInput struct {
	CustomerPhone string `json:"customer_phone"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email,omitempty"`
	ServiceName   string `json:"service_name"`
	Date          string `json:"date"` // YYYY-MM-DD
	Time          string `json:"time"` // HH:MM
	Notes         string `json:"notes,omitempty"`
}

type BookAppointmentOutput struct {
	AppointmentID string `json:"id"`
	LeadID        string `json:"lead_id"`
	LeadName      string `json:"lead_name"`
	ServiceName   string `json:"service_name"`
	Date          string `json:"date"`
	Time          string `json:"time"`
}

type BookAppointmentUseCase struct {
	Leads        entity.LeadRepositoryInterface
	Appointments entity.AppointmentRepositoryInterface
	Sender       MessageSender
}

func NewBookAppointmentUseCase(
	leads entity.LeadRepositoryInterface,
	appointments entity.AppointmentRepositoryInterface,
	sender MessageSender,
) *BookAppointmentUseCase {
	return &BookAppointmentUseCase{
		Leads:        leads,
		Appointments: appointments,
		Sender:       sender,
	}
}

func (uc *BookAppointmentUseCase) Execute(ctx context.Context, input BookAppointmentInput) (*BookAppointmentOutput, error) {
	if errs := ValidateBookAppointmentInput(input); len(errs) > 0 {
		return nil, &DomainError{Code: "VALIDATION_ERROR", Message: joinValidationErrors(errs)}
	}

	phone := uc.Sender.FormatPhoneNumber(input.CustomerPhone)

	// find or create the lead by phone
	var leadID string
	existing, err := uc.Leads.FindByPhone(ctx, phone)
	switch {
	case err == nil:
		leadID = existing.ID
	case errors.Is(err, entity.ErrLeadNotFound):
		lead := entity.NewLead(input.CustomerName, phone, input.CustomerEmail, input.ServiceName, "", "whatsapp")
		if err := uc.Leads.Create(ctx, lead); err != nil {
			return nil, &TechnicalError{Code: "LEAD_CREATE_FAILED", Message: err.Error()}
		}
		leadID = lead.ID
	default:
		return nil, &TechnicalError{Code: "LEAD_LOOKUP_FAILED", Message: err.Error()}
	}

	serviceType, err := uc.Appointments.FindServiceTypeByName(ctx, input.ServiceName)
	if err != nil {
		if errors.Is(err, entity.ErrServiceTypeNotFound) {
			return nil, &DomainError{
				Code:    "SERVICE_NOT_FOUND",
				Message: fmt.Sprintf("service %q not found, please ensure the service name is correct", input.ServiceName),
			}
		}
		return nil, &TechnicalError{Code: "SERVICE_LOOKUP_FAILED", Message: err.Error()}
	}

	appointment := entity.NewAppointment(leadID, serviceType.ID, input.Date, input.Time, input.Notes, "whatsapp")
	if err := uc.Appointments.Create(ctx, appointment); err != nil {
		return nil, &TechnicalError{Code: "APPOINTMENT_CREATE_FAILED", Message: err.Error()}
	}

	// best effort: the booking stands even if the confirmation fails to send
	confirmation := fmt.Sprintf(
		"Hi %s, your appointment for %s on %s at %s has been successfully booked. Your booking ID is %s. We look forward to seeing you!",
		input.CustomerName, serviceType.Name, input.Date, input.Time, shortID(appointment.ID),
	)
	if err := uc.Sender.SendText(ctx, phone, confirmation); err != nil {
		log.Printf("⚠️ failed to send appointment confirmation to %s: %v", phone, err)
	}

	return &BookAppointmentOutput{
		AppointmentID: appointment.ID,
		LeadID:        leadID,
		LeadName:      input.CustomerName,
		ServiceName:   serviceType.Name,
		Date:          appointment.Date,
		Time:          appointment.Time,
	}, nil
}

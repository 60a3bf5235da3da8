package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrServiceTypeNotFound = errors.New("service type not found")

const (
	AppointmentStatusScheduled = "scheduled"
	AppointmentStatusCompleted = "completed"
	AppointmentStatusCancelled = "cancelled"
	AppointmentStatusNoShow    = "no_show"
)

type ServiceType struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Appointment struct {
	ID            string    `json:"id"`
	LeadID        string    `json:"lead_id"`
	ServiceTypeID string    `json:"service_type_id"`
	Date          string    `json:"date"` // YYYY-MM-DD
	Time          string    `json:"time"` // HH:MM
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	Notes         string    `json:"notes,omitempty"`
	BookingSource string    `json:"booking_source"`
	Reminded      bool      `json:"reminded"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewAppointment(leadID, serviceTypeID, date, timeOfDay, notes, source string) *Appointment {
	return &Appointment{
		ID:            uuid.New().String(),
		LeadID:        leadID,
		ServiceTypeID: serviceTypeID,
		Date:          date,
		Time:          timeOfDay,
		Status:        AppointmentStatusScheduled,
		PaymentStatus: PaymentStatusPending,
		Notes:         notes,
		BookingSource: source,
		CreatedAt:     time.Now(),
	}
}

// AppointmentReminder is one due appointment joined with the contact details
// the reminder message needs.
type AppointmentReminder struct {
	AppointmentID string
	Date          string
	Time          string
	LeadName      string
	LeadPhone     string
	ServiceName   string
}

type AppointmentRepositoryInterface interface {
	Create(ctx context.Context, a *Appointment) error
	// FindServiceTypeByName matches case-insensitively on a partial name.
	FindServiceTypeByName(ctx context.Context, name string) (*ServiceType, error)
}

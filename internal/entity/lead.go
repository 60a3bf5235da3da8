package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Lead statuses move forward as the team works the contact.
const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusQualified = "qualified"
	LeadStatusConverted = "converted"
	LeadStatusLost      = "lost"
)

var ErrLeadNotFound = errors.New("lead not found")

type Lead struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"` // normalized, unique lookup key
	Email       string    `json:"email,omitempty"`
	ServiceType string    `json:"service_type,omitempty"`
	Message     string    `json:"message,omitempty"`
	SourceSite  string    `json:"source_site"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewLead(name, phone, email, serviceType, message, source string) *Lead {
	now := time.Now()
	return &Lead{
		ID:          uuid.New().String(),
		Name:        name,
		Phone:       phone,
		Email:       email,
		ServiceType: serviceType,
		Message:     message,
		SourceSite:  source,
		Status:      LeadStatusNew,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

type LeadRepositoryInterface interface {
	// FindByPhone returns ErrLeadNotFound when no lead matches exactly.
	FindByPhone(ctx context.Context, phone string) (*Lead, error)
	FindByID(ctx context.Context, id string) (*Lead, error)
	Create(ctx context.Context, lead *Lead) error
	UpdateStatus(ctx context.Context, id, status string) error
	List(ctx context.Context) ([]Lead, error)
}

package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/echtwell/echt-crm/internal/entity"
)

func TestResolveLead_ExistingLeadIsReused(t *testing.T) {
	leadRepo := new(MockLeadRepository)
	uc := NewResolveLeadUseCase(leadRepo)

	leadRepo.On("FindByPhone", mock.Anything, "918526454931").Return(
		&entity.Lead{ID: "lead-1", Phone: "918526454931"}, nil,
	)

	info, err := uc.Execute(context.Background(), "918526454931", "Asha", "hello", "General Inquiry")

	assert.NoError(t, err)
	assert.Equal(t, "lead-1", info.ID)
	assert.False(t, info.IsNew)
	leadRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestResolveLead_NewLeadGetsDefaults(t *testing.T) {
	leadRepo := new(MockLeadRepository)
	uc := NewResolveLeadUseCase(leadRepo)

	leadRepo.On("FindByPhone", mock.Anything, "918526454931").Return(nil, entity.ErrLeadNotFound)

	var created *entity.Lead
	leadRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		created = args.Get(1).(*entity.Lead)
	}).Return(nil)

	info, err := uc.Execute(context.Background(), "918526454931", "", "", "")

	assert.NoError(t, err)
	assert.True(t, info.IsNew)
	assert.NotEmpty(t, info.ID)
	assert.Equal(t, "WhatsApp User", created.Name)
	assert.Equal(t, "Initial contact via WhatsApp", created.Message)
	assert.Equal(t, "Unknown Inquiry", created.ServiceType)
	assert.Equal(t, SourceWhatsApp, created.SourceSite)
	assert.Equal(t, entity.LeadStatusNew, created.Status)
}

func TestResolveLead_LookupFailureIsTechnical(t *testing.T) {
	leadRepo := new(MockLeadRepository)
	uc := NewResolveLeadUseCase(leadRepo)

	leadRepo.On("FindByPhone", mock.Anything, mock.Anything).Return(nil, errors.New("connection refused"))

	_, err := uc.Execute(context.Background(), "918526454931", "Asha", "hi", "")

	assert.Error(t, err)
	assert.True(t, IsTechnicalError(err))
	leadRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

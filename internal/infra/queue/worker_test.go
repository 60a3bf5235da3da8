package queue

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockMessenger struct {
	mock.Mock
}

func (m *mockMessenger) SendText(ctx context.Context, to, body string) error {
	args := m.Called(ctx, to, body)
	return args.Error(0)
}

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendLeadAlert(leadName, leadPhone, serviceType, source string) error {
	args := m.Called(leadName, leadPhone, serviceType, source)
	return args.Error(0)
}

func TestProcessNotification_NewLeadAlertsAdminAndMails(t *testing.T) {
	messenger := new(mockMessenger)
	mailer := new(mockMailer)
	w := NewWorker(nil, messenger, mailer, "919999999999")

	messenger.On("SendText", mock.Anything, "919999999999", mock.Anything).Return(nil)
	mailer.On("SendLeadAlert", "Asha", "918526454931", "General Inquiry", "WhatsApp").Return(nil)

	err := w.processNotification(context.Background(), NotificationPayload{
		Kind:        NotificationNewLead,
		LeadID:      "lead-1",
		Name:        "Asha",
		Phone:       "918526454931",
		ServiceType: "General Inquiry",
		Source:      "WhatsApp",
	})

	assert.NoError(t, err)
	alert := messenger.Calls[0].Arguments.String(2)
	assert.Contains(t, alert, "New Lead Alert")
	assert.Contains(t, alert, "918526454931")
	mailer.AssertExpectations(t)
}

func TestProcessNotification_MissingNameGetsDefault(t *testing.T) {
	messenger := new(mockMessenger)
	w := NewWorker(nil, messenger, nil, "919999999999")

	messenger.On("SendText", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	err := w.processNotification(context.Background(), NotificationPayload{
		Kind:  NotificationNewLead,
		Phone: "918526454931",
	})

	assert.NoError(t, err)
	assert.Contains(t, messenger.Calls[0].Arguments.String(2), "WhatsApp User")
}

func TestProcessNotification_MailFailureIsNotFatal(t *testing.T) {
	messenger := new(mockMessenger)
	mailer := new(mockMailer)
	w := NewWorker(nil, messenger, mailer, "919999999999")

	messenger.On("SendText", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	mailer.On("SendLeadAlert", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("smtp timeout"))

	err := w.processNotification(context.Background(), NotificationPayload{
		Kind: NotificationNewLead,
		Name: "Asha",
	})

	assert.NoError(t, err)
}

func TestProcessNotification_AdminSendFailurePropagates(t *testing.T) {
	messenger := new(mockMessenger)
	w := NewWorker(nil, messenger, nil, "919999999999")

	messenger.On("SendText", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("gateway down"))

	err := w.processNotification(context.Background(), NotificationPayload{
		Kind: NotificationNewLead,
		Name: "Asha",
	})

	// the caller nacks to the DLQ on error
	assert.Error(t, err)
}

func TestProcessNotification_AppointmentReminder(t *testing.T) {
	messenger := new(mockMessenger)
	w := NewWorker(nil, messenger, nil, "")

	messenger.On("SendText", mock.Anything, "918526454931", mock.Anything).Return(nil)

	err := w.processNotification(context.Background(), NotificationPayload{
		Kind:        NotificationAppointmentReminder,
		Name:        "Asha",
		Phone:       "918526454931",
		ServiceType: "Reiki Healing",
		Date:        "2026-09-02",
		Time:        "14:30",
	})

	assert.NoError(t, err)
	reminder := messenger.Calls[0].Arguments.String(2)
	assert.Contains(t, reminder, "Appointment Reminder")
	assert.Contains(t, reminder, "2026-09-02")
}

func TestProcessNotification_UnknownKindIsDropped(t *testing.T) {
	messenger := new(mockMessenger)
	w := NewWorker(nil, messenger, nil, "919999999999")

	err := w.processNotification(context.Background(), NotificationPayload{Kind: "mystery"})

	assert.NoError(t, err)
	messenger.AssertNotCalled(t, "SendText", mock.Anything, mock.Anything, mock.Anything)
}

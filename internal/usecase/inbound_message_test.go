package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/echtwell/echt-crm/internal/entity"
	"github.com/echtwell/echt-crm/internal/infra/queue"
	"github.com/echtwell/echt-crm/internal/infra/session"
)

func newInboundFixture() (*InboundMessageUseCase, *session.MemoryStore, *MockLeadRepository, *MockProductRepository, *MockSender, *MockNotifier) {
	sessions := session.NewMemoryStore()
	leads := new(MockLeadRepository)
	products := new(MockProductRepository)
	orders := new(MockOrderRepository)
	sender := new(MockSender)
	notifier := new(MockNotifier)

	resolveLead := NewResolveLeadUseCase(leads)
	createOrder := NewCreateOrderUseCase(orders, leads)
	flow := NewOrderFlowUseCase(sessions, products, createOrder, sender)
	uc := NewInboundMessageUseCase(resolveLead, flow, sessions, sender, notifier)
	return uc, sessions, leads, products, sender, notifier
}

func existingLead() *entity.Lead {
	return &entity.Lead{ID: "lead-1", Phone: testPhone, Name: "Asha"}
}

func TestInbound_OrderKeywordStartsFlow(t *testing.T) {
	uc, sessions, leads, _, sender, _ := newInboundFixture()

	leads.On("FindByPhone", mock.Anything, testPhone).Return(existingLead(), nil)
	sender.On("SendText", mock.Anything, testPhone, mock.Anything).Return(nil)

	intent, err := uc.Execute(context.Background(), InboundMessage{
		SenderPhone: "8526454931",
		ContentType: "text",
		Text:        "I want to order something",
	})

	assert.NoError(t, err)
	assert.Equal(t, IntentOrder, intent)
	sess, err := sessions.Get(context.Background(), testPhone)
	assert.NoError(t, err)
	assert.Equal(t, entity.StepSelectingCategory, sess.Step)
}

func TestInbound_OrderBeatsAppointmentWhenBothMatch(t *testing.T) {
	uc, sessions, leads, _, sender, _ := newInboundFixture()

	leads.On("FindByPhone", mock.Anything, testPhone).Return(existingLead(), nil)
	sender.On("SendText", mock.Anything, testPhone, mock.Anything).Return(nil)

	intent, err := uc.Execute(context.Background(), InboundMessage{
		SenderPhone: testPhone,
		ContentType: "text",
		Text:        "can I order or book an appointment?",
	})

	assert.NoError(t, err)
	assert.Equal(t, IntentOrder, intent)
	_, err = sessions.Get(context.Background(), testPhone)
	assert.NoError(t, err)
}

func TestInbound_AppointmentKeyword(t *testing.T) {
	uc, _, leads, _, sender, _ := newInboundFixture()

	leads.On("FindByPhone", mock.Anything, testPhone).Return(existingLead(), nil)
	sender.On("SendText", mock.Anything, testPhone, mock.Anything).Return(nil)

	intent, err := uc.Execute(context.Background(), InboundMessage{
		SenderPhone: testPhone,
		ContentType: "text",
		Text:        "I'd like to book a session",
	})

	assert.NoError(t, err)
	assert.Equal(t, IntentAppointment, intent)
}

func TestInbound_PlainTextIsGeneralInquiry(t *testing.T) {
	uc, _, leads, _, sender, _ := newInboundFixture()

	leads.On("FindByPhone", mock.Anything, testPhone).Return(existingLead(), nil)
	sender.On("SendText", mock.Anything, testPhone, mock.Anything).Return(nil)

	intent, err := uc.Execute(context.Background(), InboundMessage{
		SenderPhone: testPhone,
		Username:    "Asha",
		ContentType: "text",
		Text:        "hello, what are your timings?",
	})

	assert.NoError(t, err)
	assert.Equal(t, IntentInquiry, intent)
	reply := sender.Calls[0].Arguments.String(2)
	assert.Contains(t, reply, "Asha")
	assert.Contains(t, reply, "order")
	assert.Contains(t, reply, "appointment")
}

func TestInbound_OpenSessionInterceptsKeywordText(t *testing.T) {
	uc, sessions, _, products, sender, _ := newInboundFixture()
	ctx := context.Background()

	// sender is mid-flow at the category step
	assert.NoError(t, sessions.Put(ctx, &entity.ConversationSession{
		Phone:  testPhone,
		LeadID: "lead-1",
		Step:   entity.StepSelectingCategory,
	}))

	products.On("FindByCategory", mock.Anything, "Webinars").Return(webinarCatalog(), nil)
	sender.On("SendText", mock.Anything, testPhone, mock.Anything).Return(nil)

	// "1" carries no keyword, it must land in the flow rather than be
	// classified as an inquiry
	intent, err := uc.Execute(ctx, InboundMessage{
		SenderPhone: testPhone,
		ContentType: "text",
		Text:        "1",
	})

	assert.NoError(t, err)
	assert.Equal(t, IntentOrder, intent)
	sess, _ := sessions.Get(ctx, testPhone)
	assert.Equal(t, entity.StepSelectingProduct, sess.Step)
}

func TestInbound_NewLeadPublishesNotification(t *testing.T) {
	uc, _, leads, _, sender, notifier := newInboundFixture()

	leads.On("FindByPhone", mock.Anything, testPhone).Return(nil, entity.ErrLeadNotFound)
	leads.On("Create", mock.Anything, mock.Anything).Return(nil)
	sender.On("SendText", mock.Anything, testPhone, mock.Anything).Return(nil)

	var published queue.NotificationPayload
	notifier.On("PublishNotification", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		published = args.Get(1).(queue.NotificationPayload)
	}).Return(nil)

	intent, err := uc.Execute(context.Background(), InboundMessage{
		SenderPhone: testPhone,
		Username:    "Asha",
		ContentType: "text",
		Text:        "hello",
	})

	assert.NoError(t, err)
	assert.Equal(t, IntentInquiry, intent)
	notifier.AssertCalled(t, "PublishNotification", mock.Anything, mock.Anything)
	assert.Equal(t, queue.NotificationNewLead, published.Kind)
	assert.Equal(t, testPhone, published.Phone)
	assert.Equal(t, SourceWhatsApp, published.Source)
}

func TestInbound_ExistingLeadDoesNotNotify(t *testing.T) {
	uc, _, leads, _, sender, notifier := newInboundFixture()

	leads.On("FindByPhone", mock.Anything, testPhone).Return(existingLead(), nil)
	sender.On("SendText", mock.Anything, testPhone, mock.Anything).Return(nil)

	_, err := uc.Execute(context.Background(), InboundMessage{
		SenderPhone: testPhone,
		ContentType: "text",
		Text:        "hello again",
	})

	assert.NoError(t, err)
	notifier.AssertNotCalled(t, "PublishNotification", mock.Anything, mock.Anything)
}

func TestInbound_ButtonEchoesPayload(t *testing.T) {
	uc, _, _, _, sender, _ := newInboundFixture()

	sender.On("SendText", mock.Anything, testPhone, mock.Anything).Return(nil)

	intent, err := uc.Execute(context.Background(), InboundMessage{
		SenderPhone:   testPhone,
		ContentType:   "button",
		ButtonPayload: "BOOK_NOW",
	})

	assert.NoError(t, err)
	assert.Equal(t, IntentButton, intent)
	assert.Contains(t, sender.Calls[0].Arguments.String(2), "BOOK_NOW")
}

func TestInbound_MediaGetsAcknowledged(t *testing.T) {
	uc, _, _, _, sender, _ := newInboundFixture()

	sender.On("SendText", mock.Anything, testPhone, mock.Anything).Return(nil)

	for _, contentType := range []string{"image", "document", "video", "location"} {
		intent, err := uc.Execute(context.Background(), InboundMessage{
			SenderPhone: testPhone,
			ContentType: contentType,
		})
		assert.NoError(t, err)
		assert.Equal(t, IntentMedia, intent, "contentType %s", contentType)
	}
}

func TestInbound_UnknownContentType(t *testing.T) {
	uc, _, _, _, sender, _ := newInboundFixture()

	sender.On("SendText", mock.Anything, testPhone, mock.Anything).Return(nil)

	intent, err := uc.Execute(context.Background(), InboundMessage{
		SenderPhone: testPhone,
		ContentType: "sticker",
	})

	assert.NoError(t, err)
	assert.Equal(t, IntentUnknown, intent)
}

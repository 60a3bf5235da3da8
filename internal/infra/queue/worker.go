package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// MessageClient sends a WhatsApp-style text to a phone number.
type MessageClient interface {
	SendText(ctx context.Context, to, body string) error
}

// AlertMailer emails the team about a new lead. Optional.
type AlertMailer interface {
	SendLeadAlert(leadName, leadPhone, serviceType, source string) error
}

// Worker consumes q.notifications and fans each payload out to the admin
// channels. Malformed or failed messages are nacked without requeue and end
// up on the DLQ.
type Worker struct {
	Channel    *amqp.Channel
	Messenger  MessageClient
	Mailer     AlertMailer
	AdminPhone string
}

func NewWorker(ch *amqp.Channel, messenger MessageClient, mailer AlertMailer, adminPhone string) *Worker {
	return &Worker{
		Channel:    ch,
		Messenger:  messenger,
		Mailer:     mailer,
		AdminPhone: adminPhone,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack (manual is safer)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("❌ failed to register RabbitMQ consumer: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload NotificationPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] invalid JSON: %s", err)
				d.Nack(false, false)
				continue
			}

			log.Printf("📥 [WORKER] processing %s notification", payload.Kind)

			if err := w.processNotification(context.Background(), payload); err != nil {
				log.Printf("❌ [WORKER] notification failed: %s", err)
				d.Nack(false, false)
			} else {
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Worker running, waiting on queue '%s'", queueName)
	<-forever
}

func (w *Worker) processNotification(ctx context.Context, payload NotificationPayload) error {
	switch payload.Kind {
	case NotificationNewLead:
		return w.notifyNewLead(ctx, payload)

	case NotificationAppointmentReminder:
		body := fmt.Sprintf(
			"Subject: Appointment Reminder - ECHT\n\nHi %s,\n\nJust a friendly reminder about your %s appointment on %s at %s.\n\nSee you there,\nECHT Team",
			payload.Name, payload.ServiceType, payload.Date, payload.Time,
		)
		return w.Messenger.SendText(ctx, payload.Phone, body)

	default:
		log.Printf("⚠️ unknown notification kind %q, dropping", payload.Kind)
		// ack and move on, we have no handler for it
		return nil
	}
}

func (w *Worker) notifyNewLead(ctx context.Context, payload NotificationPayload) error {
	name := payload.Name
	if name == "" {
		name = "WhatsApp User"
	}

	if w.AdminPhone != "" {
		body := fmt.Sprintf(
			"Subject: New Lead Alert - ECHT\n\nHi Team,\n\nA new lead has been registered:\n\nName: %s\nPhone: %s\nService: %s\nSource: %s\n\nPlease follow up soon.\n\nRegards,\nECHT System",
			name, payload.Phone, payload.ServiceType, payload.Source,
		)
		if err := w.Messenger.SendText(ctx, w.AdminPhone, body); err != nil {
			return err
		}
	}

	if w.Mailer != nil {
		if err := w.Mailer.SendLeadAlert(name, payload.Phone, payload.ServiceType, payload.Source); err != nil {
			// WhatsApp alert already went out, just log the email miss
			log.Printf("⚠️ [WORKER] lead alert email failed: %v", err)
		}
	}

	return nil
}

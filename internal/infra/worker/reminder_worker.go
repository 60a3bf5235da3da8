package worker

import (
	"context"
	"log"
	"time"

	"github.com/echtwell/echt-crm/internal/entity"
	"github.com/echtwell/echt-crm/internal/infra/queue"
)

// ReminderSource yields the appointments a reminder is due for and records
// which ones were actually queued.
type ReminderSource interface {
	DueForReminder(ctx context.Context) ([]entity.AppointmentReminder, error)
	MarkReminded(ctx context.Context, appointmentID string) error
}

// ReminderWorker scans for next-day appointments that have not been reminded
// yet and queues one reminder message each. An appointment is only marked
// reminded after its payload is accepted by the broker, so a failed publish
// is retried on the next scan rather than lost.
type ReminderWorker struct {
	appointments ReminderSource
	producer     queue.NotificationProducerInterface
	tickInterval time.Duration
}

func NewReminderWorker(appointments ReminderSource, producer queue.NotificationProducerInterface) *ReminderWorker {
	return &ReminderWorker{
		appointments: appointments,
		producer:     producer,
		tickInterval: 1 * time.Hour,
	}
}

func (w *ReminderWorker) Start(ctx context.Context) {
	log.Println("🕒 Appointment reminder worker started (hourly)")

	ticker := time.NewTicker(w.tickInterval)
	defer ticker.Stop()

	w.queueDueReminders(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Println("⚠️ Appointment reminder worker stopped")
			return
		case <-ticker.C:
			w.queueDueReminders(ctx)
		}
	}
}

func (w *ReminderWorker) queueDueReminders(ctx context.Context) {
	due, err := w.appointments.DueForReminder(ctx)
	if err != nil {
		log.Printf("❌ failed to scan for due reminders: %v", err)
		return
	}

	queued := 0
	for _, rem := range due {
		payload := queue.NotificationPayload{
			Kind:          queue.NotificationAppointmentReminder,
			AppointmentID: rem.AppointmentID,
			Name:          rem.LeadName,
			Phone:         rem.LeadPhone,
			ServiceType:   rem.ServiceName,
			Date:          rem.Date,
			Time:          rem.Time,
		}
		if err := w.producer.PublishNotification(ctx, payload); err != nil {
			// still unreminded, the next scan retries it
			log.Printf("❌ failed to queue reminder for appointment %s: %v", rem.AppointmentID, err)
			continue
		}

		if err := w.appointments.MarkReminded(ctx, rem.AppointmentID); err != nil {
			// queued but not recorded, the customer may hear from us twice
			log.Printf("⚠️ failed to mark appointment %s reminded: %v", rem.AppointmentID, err)
			continue
		}
		queued++
	}

	if queued > 0 {
		log.Printf("✅ %d appointment reminder(s) queued", queued)
	}
}

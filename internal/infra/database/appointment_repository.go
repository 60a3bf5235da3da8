package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/echtwell/echt-crm/internal/entity"
)

type AppointmentRepository struct {
	DB *sql.DB
}

func NewAppointmentRepository(db *sql.DB) *AppointmentRepository {
	return &AppointmentRepository{DB: db}
}

func (r *AppointmentRepository) Create(ctx context.Context, a *entity.Appointment) error {
	query := `
		INSERT INTO appointments (id, lead_id, service_type_id, date, time, status,
		                          payment_status, notes, booking_source, reminded, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.DB.ExecContext(ctx, query,
		a.ID,
		a.LeadID,
		a.ServiceTypeID,
		a.Date,
		a.Time,
		a.Status,
		a.PaymentStatus,
		nullString(a.Notes),
		a.BookingSource,
		a.Reminded,
		a.CreatedAt,
	)
	return err
}

func (r *AppointmentRepository) FindServiceTypeByName(ctx context.Context, name string) (*entity.ServiceType, error) {
	query := `
		SELECT id, name
		FROM service_types
		WHERE name ILIKE '%' || $1 || '%'
		LIMIT 1
	`

	st := &entity.ServiceType{}
	err := r.DB.QueryRowContext(ctx, query, name).Scan(&st.ID, &st.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrServiceTypeNotFound
	}
	if err != nil {
		return nil, err
	}

	return st, nil
}

// DueForReminder lists scheduled next-day appointments that have not been
// reminded yet. Rows stay unreminded until MarkReminded is called, so a
// failed delivery is picked up again on the next scan.
func (r *AppointmentRepository) DueForReminder(ctx context.Context) ([]entity.AppointmentReminder, error) {
	query := `
		SELECT a.id, a.date, a.time, l.name, l.phone, st.name
		FROM appointments a
		JOIN leads l ON a.lead_id = l.id
		JOIN service_types st ON a.service_type_id = st.id
		WHERE a.status = 'scheduled'
		  AND a.reminded = FALSE
		  AND a.date::date = CURRENT_DATE + INTERVAL '1 day'
	`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var due []entity.AppointmentReminder
	for rows.Next() {
		var rem entity.AppointmentReminder
		if err := rows.Scan(&rem.AppointmentID, &rem.Date, &rem.Time, &rem.LeadName, &rem.LeadPhone, &rem.ServiceName); err != nil {
			return nil, err
		}
		due = append(due, rem)
	}

	return due, rows.Err()
}

func (r *AppointmentRepository) MarkReminded(ctx context.Context, appointmentID string) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE appointments SET reminded = TRUE WHERE id = $1`, appointmentID)
	return err
}

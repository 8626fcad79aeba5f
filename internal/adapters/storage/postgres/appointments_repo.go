package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"pet-adoption-marketplace/internal/domain/appointments"
	"pet-adoption-marketplace/internal/domain/listing"
)

const appointmentColumns = `id, user_id, provider_id, service_name, service_type, price_amount, price_currency,
	pet_info, date, time, duration, status, user_notes, provider_notes,
	cancelled_by, cancel_reason, cancelled_at, created_at, updated_at`

type petInfoRow struct {
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	Breed        string  `json:"breed,omitempty"`
	Age          string  `json:"age,omitempty"`
	Weight       float64 `json:"weight,omitempty"`
	SpecialNeeds string  `json:"specialNeeds,omitempty"`
}

type AppointmentsRepo struct {
	db *sql.DB
}

func NewAppointmentsRepo(db *sql.DB) *AppointmentsRepo {
	return &AppointmentsRepo{db: db}
}

// Create deja que appointments_active_slot resuelva la carrera por el slot.
func (r *AppointmentsRepo) Create(ctx context.Context, a appointments.Appointment) error {
	info, err := json.Marshal(petInfoRow(a.PetInfo))
	if err != nil {
		return err
	}
	by, reason, at := cancellationArgs(a.Cancellation)

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO appointments (`+appointmentColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
	`,
		a.ID, a.UserID, a.ProviderID, a.Service.Name, a.Service.Type, a.Service.Price.Amount, a.Service.Price.Currency,
		info, a.Date, a.Time, a.Duration, string(a.Status), a.Notes.UserNotes, a.Notes.ProviderNotes,
		by, reason, at, a.CreatedAt, a.UpdatedAt,
	)
	switch {
	case isUniqueViolation(err, constraintActiveSlot):
		return appointments.ErrSlotConflict
	case isForeignKeyViolation(err):
		return appointments.ErrProviderNotFound
	}
	return err
}

func (r *AppointmentsRepo) GetByID(ctx context.Context, id string) (appointments.Appointment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return appointments.Appointment{}, appointments.ErrNotFound
	}
	a, err := scanAppointment(r.db.QueryRowContext(ctx,
		`SELECT `+appointmentColumns+` FROM appointments WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return appointments.Appointment{}, appointments.ErrNotFound
	}
	return a, err
}

// UpdateStatus es un compare-and-set sobre status.
func (r *AppointmentsRepo) UpdateStatus(ctx context.Context, a appointments.Appointment, from appointments.Status) error {
	by, reason, at := cancellationArgs(a.Cancellation)
	res, err := r.db.ExecContext(ctx, `
		UPDATE appointments
		SET
			status = $3,
			provider_notes = $4,
			cancelled_by = $5,
			cancel_reason = $6,
			cancelled_at = $7,
			updated_at = $8
		WHERE id = $1 AND status = $2
	`,
		a.ID, string(from), string(a.Status), a.Notes.ProviderNotes, by, reason, at, a.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM appointments WHERE id = $1)`, a.ID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return appointments.ErrNotFound
	}
	return fmt.Errorf("%w: status changed concurrently", appointments.ErrInvalidTransition)
}

func (r *AppointmentsRepo) ListByUser(ctx context.Context, userID string, status appointments.Status, p listing.Params) ([]appointments.Appointment, int, error) {
	w := &where{}
	w.add("user_id = " + w.arg(userID))
	if status != "" {
		w.add("status = " + w.arg(string(status)))
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM appointments`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 || p.Offset() >= total {
		return []appointments.Appointment{}, total, nil
	}

	dir := "ASC"
	if p.SortDesc {
		dir = "DESC"
	}
	sb := strings.Builder{}
	sb.WriteString(`SELECT ` + appointmentColumns + ` FROM appointments`)
	sb.WriteString(w.String())
	sb.WriteString(fmt.Sprintf(" ORDER BY date %s, time %s, id %s", dir, dir, dir))
	sb.WriteString(fmt.Sprintf(" LIMIT %s OFFSET %s", w.arg(p.Limit), w.arg(p.Offset())))

	items, err := r.query(ctx, sb.String(), w.args...)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *AppointmentsRepo) ListUpcoming(ctx context.Context, userID, fromDate string, limit int) ([]appointments.Appointment, int, error) {
	w := &where{}
	w.add("user_id = " + w.arg(userID))
	w.add("date >= " + w.arg(fromDate))
	w.add(fmt.Sprintf("status IN (%s, %s)",
		w.arg(string(appointments.StatusScheduled)), w.arg(string(appointments.StatusConfirmed))))

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM appointments`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []appointments.Appointment{}, 0, nil
	}

	sb := strings.Builder{}
	sb.WriteString(`SELECT ` + appointmentColumns + ` FROM appointments`)
	sb.WriteString(w.String())
	sb.WriteString(" ORDER BY date ASC, time ASC, id ASC")
	if limit > 0 {
		sb.WriteString(" LIMIT " + w.arg(limit))
	}

	items, err := r.query(ctx, sb.String(), w.args...)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *AppointmentsRepo) query(ctx context.Context, q string, args ...any) ([]appointments.Appointment, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]appointments.Appointment, 0)
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func scanAppointment(s scanner) (appointments.Appointment, error) {
	var (
		a           appointments.Appointment
		status      string
		info        []byte
		cancelledBy sql.NullString
		reason      sql.NullString
		cancelledAt sql.NullTime
	)
	err := s.Scan(
		&a.ID, &a.UserID, &a.ProviderID, &a.Service.Name, &a.Service.Type, &a.Service.Price.Amount, &a.Service.Price.Currency,
		&info, &a.Date, &a.Time, &a.Duration, &status, &a.Notes.UserNotes, &a.Notes.ProviderNotes,
		&cancelledBy, &reason, &cancelledAt, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return appointments.Appointment{}, err
	}
	a.Status = appointments.Status(status)

	if len(info) > 0 {
		var row petInfoRow
		if err := json.Unmarshal(info, &row); err != nil {
			return appointments.Appointment{}, fmt.Errorf("decode pet info: %w", err)
		}
		a.PetInfo = appointments.PetInfo(row)
	}
	if cancelledAt.Valid {
		a.Cancellation = &appointments.Cancellation{
			CancelledBy: cancelledBy.String,
			Reason:      reason.String,
			CancelledAt: cancelledAt.Time,
		}
	}
	return a, nil
}

func cancellationArgs(c *appointments.Cancellation) (sql.NullString, sql.NullString, sql.NullTime) {
	if c == nil {
		return sql.NullString{}, sql.NullString{}, sql.NullTime{}
	}
	return sql.NullString{String: c.CancelledBy, Valid: true},
		sql.NullString{String: c.Reason, Valid: true},
		sql.NullTime{Time: c.CancelledAt, Valid: true}
}

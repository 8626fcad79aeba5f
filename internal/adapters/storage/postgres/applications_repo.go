package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"pet-adoption-marketplace/internal/domain/applications"
	"pet-adoption-marketplace/internal/domain/listing"
)

const applicationColumns = `id, pet_id, shelter_id, applicant_id, applicant_email, status,
	questionnaire, notes, rejection_reason,
	submitted_at, reviewed_at, approved_at, rejected_at, completed_at, withdrawn_at, updated_at`

var applicationSortColumns = map[string]string{
	"submittedAt": "submitted_at",
}

type noteRow struct {
	ID         string    `json:"id"`
	AuthorID   string    `json:"authorId"`
	Message    string    `json:"message"`
	IsInternal bool      `json:"isInternal"`
	CreatedAt  time.Time `json:"createdAt"`
}

type ApplicationsRepo struct {
	db *sql.DB
}

func NewApplicationsRepo(db *sql.DB) *ApplicationsRepo {
	return &ApplicationsRepo{db: db}
}

// Create delega la unicidad de postulaciones activas al índice parcial applications_active_unique.
func (r *ApplicationsRepo) Create(ctx context.Context, a applications.Application) error {
	questionnaire, err := json.Marshal(a.Questionnaire)
	if err != nil {
		return err
	}
	notes, err := encodeNotes(a.Notes)
	if err != nil {
		return err
	}

	t := a.Timeline
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO applications (`+applicationColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
	`,
		a.ID, a.PetID, a.ShelterID, a.ApplicantID, a.ApplicantEmail, string(a.Status),
		questionnaire, notes, a.RejectionReason,
		t.SubmittedAt, toNullTime(t.ReviewedAt), toNullTime(t.ApprovedAt), toNullTime(t.RejectedAt),
		toNullTime(t.CompletedAt), toNullTime(t.WithdrawnAt), a.UpdatedAt,
	)
	if isUniqueViolation(err, constraintActiveApplication) {
		return applications.ErrDuplicateApplication
	}
	return err
}

func (r *ApplicationsRepo) GetByID(ctx context.Context, id string) (applications.Application, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return applications.Application{}, applications.ErrNotFound
	}
	a, err := scanApplication(r.db.QueryRowContext(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return applications.Application{}, applications.ErrNotFound
	}
	return a, err
}

func (r *ApplicationsRepo) HasActive(ctx context.Context, petID, applicantID string) (bool, error) {
	w := &where{}
	w.add("pet_id = " + w.arg(petID))
	w.add("applicant_id = " + w.arg(applicantID))
	w.add("status IN (" + w.in(activeStatuses()) + ")")

	var ok bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM applications`+w.String()+`)`, w.args...).Scan(&ok)
	return ok, err
}

// UpdateStatus es un compare-and-set sobre status.
func (r *ApplicationsRepo) UpdateStatus(ctx context.Context, a applications.Application, from applications.Status) error {
	t := a.Timeline
	res, err := r.db.ExecContext(ctx, `
		UPDATE applications
		SET
			status = $3,
			rejection_reason = $4,
			reviewed_at = $5,
			approved_at = $6,
			rejected_at = $7,
			completed_at = $8,
			withdrawn_at = $9,
			updated_at = $10
		WHERE id = $1 AND status = $2
	`,
		a.ID, string(from), string(a.Status), a.RejectionReason,
		toNullTime(t.ReviewedAt), toNullTime(t.ApprovedAt), toNullTime(t.RejectedAt),
		toNullTime(t.CompletedAt), toNullTime(t.WithdrawnAt), a.UpdatedAt,
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
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM applications WHERE id = $1)`, a.ID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return applications.ErrNotFound
	}
	return fmt.Errorf("%w: status changed concurrently", applications.ErrInvalidTransition)
}

func (r *ApplicationsRepo) AppendNote(ctx context.Context, applicationID string, n applications.Note) error {
	payload, err := encodeNotes([]applications.Note{n})
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx,
		`UPDATE applications SET notes = notes || $2::jsonb WHERE id = $1`, applicationID, payload)
	return expectOne(res, err, applications.ErrNotFound)
}

func (r *ApplicationsRepo) ListByApplicant(ctx context.Context, applicantID string, status applications.Status, p listing.Params) ([]applications.Application, int, error) {
	return r.list(ctx, "applicant_id", applicantID, status, p)
}

func (r *ApplicationsRepo) ListByShelter(ctx context.Context, shelterID string, status applications.Status, p listing.Params) ([]applications.Application, int, error) {
	return r.list(ctx, "shelter_id", shelterID, status, p)
}

// column viene de este paquete, nunca del request.
func (r *ApplicationsRepo) list(ctx context.Context, column, value string, status applications.Status, p listing.Params) ([]applications.Application, int, error) {
	w := &where{}
	w.add(column + " = " + w.arg(value))
	if status != "" {
		w.add("status = " + w.arg(string(status)))
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM applications`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 || p.Offset() >= total {
		return []applications.Application{}, total, nil
	}

	sb := strings.Builder{}
	sb.WriteString(`SELECT ` + applicationColumns + ` FROM applications`)
	sb.WriteString(w.String())
	sb.WriteString(orderBy(applicationSortColumns, p.SortBy, "submittedAt", p.SortDesc))
	sb.WriteString(fmt.Sprintf(" LIMIT %s OFFSET %s", w.arg(p.Limit), w.arg(p.Offset())))

	rows, err := r.db.QueryContext(ctx, sb.String(), w.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]applications.Application, 0, p.Limit)
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func scanApplication(s scanner) (applications.Application, error) {
	var (
		a             applications.Application
		status        string
		questionnaire []byte
		notes         []byte
		reviewed      sql.NullTime
		approved      sql.NullTime
		rejected      sql.NullTime
		completed     sql.NullTime
		withdrawn     sql.NullTime
	)
	err := s.Scan(
		&a.ID, &a.PetID, &a.ShelterID, &a.ApplicantID, &a.ApplicantEmail, &status,
		&questionnaire, &notes, &a.RejectionReason,
		&a.Timeline.SubmittedAt, &reviewed, &approved, &rejected, &completed, &withdrawn, &a.UpdatedAt,
	)
	if err != nil {
		return applications.Application{}, err
	}
	a.Status = applications.Status(status)
	a.Timeline.ReviewedAt = fromNullTime(reviewed)
	a.Timeline.ApprovedAt = fromNullTime(approved)
	a.Timeline.RejectedAt = fromNullTime(rejected)
	a.Timeline.CompletedAt = fromNullTime(completed)
	a.Timeline.WithdrawnAt = fromNullTime(withdrawn)

	if len(questionnaire) > 0 {
		if err := json.Unmarshal(questionnaire, &a.Questionnaire); err != nil {
			return applications.Application{}, fmt.Errorf("decode questionnaire: %w", err)
		}
	}
	if a.Notes, err = decodeNotes(notes); err != nil {
		return applications.Application{}, err
	}
	return a, nil
}

func activeStatuses() []string {
	out := make([]string, 0, len(applications.ActiveStatuses))
	for _, s := range applications.ActiveStatuses {
		out = append(out, string(s))
	}
	return out
}

func encodeNotes(notes []applications.Note) ([]byte, error) {
	rows := make([]noteRow, 0, len(notes))
	for _, n := range notes {
		rows = append(rows, noteRow{
			ID:         n.ID,
			AuthorID:   n.AuthorID,
			Message:    n.Message,
			IsInternal: n.IsInternal,
			CreatedAt:  n.CreatedAt,
		})
	}
	return json.Marshal(rows)
}

func decodeNotes(b []byte) ([]applications.Note, error) {
	if len(b) == 0 {
		return nil, nil
	}
	var rows []noteRow
	if err := json.Unmarshal(b, &rows); err != nil {
		return nil, fmt.Errorf("decode notes: %w", err)
	}
	out := make([]applications.Note, 0, len(rows))
	for _, n := range rows {
		out = append(out, applications.Note{
			ID:         n.ID,
			AuthorID:   n.AuthorID,
			Message:    n.Message,
			IsInternal: n.IsInternal,
			CreatedAt:  n.CreatedAt,
		})
	}
	return out, nil
}

func toNullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func fromNullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

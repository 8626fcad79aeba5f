package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"pet-adoption-marketplace/internal/domain/listing"
	"pet-adoption-marketplace/internal/domain/shelters"
)

const shelterColumns = `id, owner_user_id, name, description, street, city, state, zip_code,
	phone, email, website, is_verified, created_at, updated_at`

var shelterSortColumns = map[string]string{
	"createdAt": "created_at",
	"name":      "name",
}

type SheltersRepo struct {
	db *sql.DB
}

func NewSheltersRepo(db *sql.DB) *SheltersRepo {
	return &SheltersRepo{db: db}
}

func (r *SheltersRepo) Create(ctx context.Context, s shelters.Shelter) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO shelters (`+shelterColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
	`,
		s.ID, s.OwnerUserID, s.Name, s.Description,
		s.Address.Street, s.Address.City, s.Address.State, s.Address.ZipCode,
		s.Contact.Phone, s.Contact.Email, s.Contact.Website,
		s.IsVerified, s.CreatedAt, s.UpdatedAt,
	)
	if isUniqueViolation(err, constraintShelterOwner) {
		return shelters.ErrAlreadyExists
	}
	return err
}

func (r *SheltersRepo) GetByID(ctx context.Context, id string) (shelters.Shelter, error) {
	return r.getOne(ctx, `SELECT `+shelterColumns+` FROM shelters WHERE id = $1`, id)
}

func (r *SheltersRepo) GetByOwner(ctx context.Context, ownerUserID string) (shelters.Shelter, error) {
	return r.getOne(ctx, `SELECT `+shelterColumns+` FROM shelters WHERE owner_user_id = $1`, ownerUserID)
}

func (r *SheltersRepo) getOne(ctx context.Context, q, arg string) (shelters.Shelter, error) {
	s, err := scanShelter(r.db.QueryRowContext(ctx, q, arg))
	if errors.Is(err, sql.ErrNoRows) {
		return shelters.Shelter{}, shelters.ErrNotFound
	}
	return s, err
}

func (r *SheltersRepo) Update(ctx context.Context, s shelters.Shelter) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE shelters
		SET
			name = $2,
			description = $3,
			street = $4,
			city = $5,
			state = $6,
			zip_code = $7,
			phone = $8,
			email = $9,
			website = $10,
			updated_at = $11
		WHERE id = $1
	`,
		s.ID, s.Name, s.Description,
		s.Address.Street, s.Address.City, s.Address.State, s.Address.ZipCode,
		s.Contact.Phone, s.Contact.Email, s.Contact.Website,
		s.UpdatedAt,
	)
	return expectOne(res, err, shelters.ErrNotFound)
}

func (r *SheltersRepo) List(ctx context.Context, f shelters.Filter, p listing.Params) ([]shelters.Shelter, int, error) {
	w := &where{}
	if f.City != "" {
		w.add("city ILIKE " + w.arg(likePattern(f.City)))
	}
	if f.State != "" {
		w.add("state ILIKE " + w.arg(likePattern(f.State)))
	}
	if f.Search != "" {
		n := w.arg(likePattern(f.Search))
		w.add(fmt.Sprintf("(name ILIKE %s OR description ILIKE %s)", n, n))
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM shelters`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 || p.Offset() >= total {
		return []shelters.Shelter{}, total, nil
	}

	sb := strings.Builder{}
	sb.WriteString(`SELECT ` + shelterColumns + ` FROM shelters`)
	sb.WriteString(w.String())
	sb.WriteString(orderBy(shelterSortColumns, p.SortBy, "createdAt", p.SortDesc))
	sb.WriteString(fmt.Sprintf(" LIMIT %s OFFSET %s", w.arg(p.Limit), w.arg(p.Offset())))

	rows, err := r.db.QueryContext(ctx, sb.String(), w.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]shelters.Shelter, 0, p.Limit)
	for rows.Next() {
		s, err := scanShelter(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func scanShelter(s scanner) (shelters.Shelter, error) {
	var sh shelters.Shelter
	err := s.Scan(
		&sh.ID, &sh.OwnerUserID, &sh.Name, &sh.Description,
		&sh.Address.Street, &sh.Address.City, &sh.Address.State, &sh.Address.ZipCode,
		&sh.Contact.Phone, &sh.Contact.Email, &sh.Contact.Website,
		&sh.IsVerified, &sh.CreatedAt, &sh.UpdatedAt,
	)
	return sh, err
}

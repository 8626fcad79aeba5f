package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"pet-adoption-marketplace/internal/domain/listing"
	"pet-adoption-marketplace/internal/domain/providers"
)

const providerColumns = `id, owner_user_id, name, service_type, description, street, city, state, zip_code,
	phone, email, website, services, rating_avg, rating_count, is_verified, is_active, created_at, updated_at`

var providerSortColumns = map[string]string{
	"rating":    "rating_avg",
	"name":      "name",
	"createdAt": "created_at",
}

type offeringRow struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Amount      float64 `json:"amount"`
	Unit        string  `json:"unit,omitempty"`
	Duration    int     `json:"duration"`
}

type ProvidersRepo struct {
	db *sql.DB
}

func NewProvidersRepo(db *sql.DB) *ProvidersRepo {
	return &ProvidersRepo{db: db}
}

func (r *ProvidersRepo) Create(ctx context.Context, p providers.Provider) error {
	services, err := encodeOfferings(p.Services)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO service_providers (`+providerColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
	`,
		p.ID, p.OwnerUserID, p.Name, string(p.ServiceType), p.Description,
		p.Address.Street, p.Address.City, p.Address.State, p.Address.ZipCode,
		p.Contact.Phone, p.Contact.Email, p.Contact.Website,
		services, p.Rating.Average, p.Rating.Count, p.IsVerified, p.IsActive,
		p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func (r *ProvidersRepo) GetByID(ctx context.Context, id string) (providers.Provider, error) {
	p, err := scanProvider(r.db.QueryRowContext(ctx,
		`SELECT `+providerColumns+` FROM service_providers WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return providers.Provider{}, providers.ErrNotFound
	}
	return p, err
}

// List solo devuelve proveedores activos.
func (r *ProvidersRepo) List(ctx context.Context, f providers.Filter, p listing.Params) ([]providers.Provider, int, error) {
	w := &where{}
	w.add("is_active = TRUE")
	if f.ServiceType != "" {
		w.add("service_type = " + w.arg(string(f.ServiceType)))
	}
	if f.City != "" {
		w.add("city ILIKE " + w.arg(likePattern(f.City)))
	}
	if f.State != "" {
		w.add("state ILIKE " + w.arg(likePattern(f.State)))
	}
	if f.Search != "" {
		n := w.arg(likePattern(f.Search))
		w.add(fmt.Sprintf(
			"(name ILIKE %s OR description ILIKE %s OR EXISTS (SELECT 1 FROM jsonb_array_elements(services) o WHERE o->>'name' ILIKE %s))",
			n, n, n))
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM service_providers`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 || p.Offset() >= total {
		return []providers.Provider{}, total, nil
	}

	sb := strings.Builder{}
	sb.WriteString(`SELECT ` + providerColumns + ` FROM service_providers`)
	sb.WriteString(w.String())
	sb.WriteString(orderBy(providerSortColumns, p.SortBy, "rating", p.SortDesc))
	sb.WriteString(fmt.Sprintf(" LIMIT %s OFFSET %s", w.arg(p.Limit), w.arg(p.Offset())))

	rows, err := r.db.QueryContext(ctx, sb.String(), w.args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]providers.Provider, 0, p.Limit)
	for rows.Next() {
		item, err := scanProvider(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func scanProvider(s scanner) (providers.Provider, error) {
	var (
		p        providers.Provider
		typ      string
		services []byte
	)
	err := s.Scan(
		&p.ID, &p.OwnerUserID, &p.Name, &typ, &p.Description,
		&p.Address.Street, &p.Address.City, &p.Address.State, &p.Address.ZipCode,
		&p.Contact.Phone, &p.Contact.Email, &p.Contact.Website,
		&services, &p.Rating.Average, &p.Rating.Count, &p.IsVerified, &p.IsActive,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return providers.Provider{}, err
	}
	p.ServiceType = providers.ServiceType(typ)

	if len(services) > 0 {
		var rows []offeringRow
		if err := json.Unmarshal(services, &rows); err != nil {
			return providers.Provider{}, fmt.Errorf("decode services: %w", err)
		}
		for _, o := range rows {
			p.Services = append(p.Services, providers.Offering{
				Name:        o.Name,
				Description: o.Description,
				Price:       providers.Price{Amount: o.Amount, Unit: o.Unit},
				Duration:    o.Duration,
			})
		}
	}
	return p, nil
}

func encodeOfferings(items []providers.Offering) ([]byte, error) {
	rows := make([]offeringRow, 0, len(items))
	for _, o := range items {
		rows = append(rows, offeringRow{
			Name:        o.Name,
			Description: o.Description,
			Amount:      o.Price.Amount,
			Unit:        o.Price.Unit,
			Duration:    o.Duration,
		})
	}
	return json.Marshal(rows)
}

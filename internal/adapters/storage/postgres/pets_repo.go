package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"pet-adoption-marketplace/internal/domain/listing"
	"pet-adoption-marketplace/internal/domain/pets"
)

const petColumns = `id, shelter_id, name, type, breed, age_years, age_months, size, gender, color,
	description, images, city, state, zip_code, adoption_fee,
	good_with_children, good_with_dogs, good_with_cats,
	is_available, views, saves, created_at, updated_at`

var petSortColumns = map[string]string{
	"createdAt":   "created_at",
	"name":        "name",
	"age":         "(age_years * 12 + age_months)",
	"views":       "views",
	"saves":       "saves",
	"adoptionFee": "adoption_fee",
}

type imageRow struct {
	URL       string `json:"url"`
	Caption   string `json:"caption,omitempty"`
	IsPrimary bool   `json:"isPrimary"`
}

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	images, err := encodeImages(p.Images)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO pets (
			id, shelter_id, name, type, breed, age_years, age_months, size, gender, color,
			description, images, city, state, zip_code, adoption_fee,
			good_with_children, good_with_dogs, good_with_cats,
			is_available, views, saves, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24)
	`,
		p.ID, p.ShelterID, p.Name, string(p.Type), p.Breed, p.Age.Years, p.Age.Months,
		string(p.Size), string(p.Gender), p.Color,
		p.Description, images, p.Location.City, p.Location.State, p.Location.ZipCode, p.AdoptionFee,
		p.GoodWith.Children, p.GoodWith.Dogs, p.GoodWith.Cats,
		p.IsAvailable, p.Views, p.Saves, p.CreatedAt, p.UpdatedAt,
	)
	return err
}

// Update no toca views, saves ni is_available.
func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	images, err := encodeImages(p.Images)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET
			name = $2,
			type = $3,
			breed = $4,
			age_years = $5,
			age_months = $6,
			size = $7,
			gender = $8,
			color = $9,
			description = $10,
			images = $11,
			city = $12,
			state = $13,
			zip_code = $14,
			adoption_fee = $15,
			good_with_children = $16,
			good_with_dogs = $17,
			good_with_cats = $18,
			updated_at = $19
		WHERE id = $1
	`,
		p.ID, p.Name, string(p.Type), p.Breed, p.Age.Years, p.Age.Months,
		string(p.Size), string(p.Gender), p.Color, p.Description, images,
		p.Location.City, p.Location.State, p.Location.ZipCode, p.AdoptionFee,
		p.GoodWith.Children, p.GoodWith.Dogs, p.GoodWith.Cats, p.UpdatedAt,
	)
	return expectOne(res, err, pets.ErrNotFound)
}

func (r *PetsRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM pets WHERE id = $1`, id)
	return expectOne(res, err, pets.ErrNotFound)
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, pets.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+petColumns+` FROM pets WHERE id = $1`, id)
	p, err := scanPet(row)
	if errors.Is(err, sql.ErrNoRows) {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, err
}

func (r *PetsRepo) List(ctx context.Context, f pets.Filter, p listing.Params) ([]pets.Pet, int, error) {
	w := petWhere(f)

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pets`+w.String(), w.args...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 || p.Offset() >= total {
		return []pets.Pet{}, total, nil
	}

	sb := strings.Builder{}
	sb.WriteString(`SELECT ` + petColumns + ` FROM pets`)
	sb.WriteString(w.String())
	sb.WriteString(orderBy(petSortColumns, p.SortBy, "createdAt", p.SortDesc))
	sb.WriteString(fmt.Sprintf(" LIMIT %s OFFSET %s", w.arg(p.Limit), w.arg(p.Offset())))

	items, err := r.queryPets(ctx, sb.String(), w.args...)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// petWhere traduce pets.Filter a SQL con los mismos criterios que Filter.Matches.
func petWhere(f pets.Filter) *where {
	w := &where{}
	if f.Available != nil {
		w.add("is_available = " + w.arg(*f.Available))
	}
	if f.Type != "" {
		w.add("type = " + w.arg(string(f.Type)))
	}
	if f.Size != "" {
		w.add("size = " + w.arg(string(f.Size)))
	}
	if f.Gender != "" {
		w.add("gender = " + w.arg(string(f.Gender)))
	}
	if f.ShelterID != "" {
		w.add("shelter_id = " + w.arg(f.ShelterID))
	}
	if f.Breed != "" {
		w.add("breed ILIKE " + w.arg(likePattern(f.Breed)))
	}
	switch f.Age {
	case pets.AgeYoung:
		w.add("(age_years <= 1 OR (age_years = 2 AND age_months <= 6))")
	case pets.AgeAdult:
		w.add("age_years BETWEEN 2 AND 7")
	case pets.AgeSenior:
		w.add("age_years > 7")
	}
	if f.Location != "" {
		n := w.arg(likePattern(f.Location))
		w.add(fmt.Sprintf("(city ILIKE %s OR state ILIKE %s)", n, n))
	}
	if f.Search != "" {
		n := w.arg(likePattern(f.Search))
		w.add(fmt.Sprintf("(name ILIKE %s OR breed ILIKE %s OR description ILIKE %s)", n, n, n))
	}
	return w
}

// IncrementViews suma una vista a todos los ids en un solo UPDATE.
func (r *PetsRepo) IncrementViews(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	w := &where{}
	q := fmt.Sprintf(`UPDATE pets SET views = views + 1 WHERE id IN (%s)`, w.in(ids))
	_, err := r.db.ExecContext(ctx, q, w.args...)
	return err
}

func (r *PetsRepo) SetAvailability(ctx context.Context, id string, available bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE pets SET is_available = $2, updated_at = now() WHERE id = $1`, id, available)
	return expectOne(res, err, pets.ErrNotFound)
}

func (r *PetsRepo) ListByShelter(ctx context.Context, shelterID string, availableOnly bool, limit int) ([]pets.Pet, error) {
	w := &where{}
	w.add("shelter_id = " + w.arg(shelterID))
	if availableOnly {
		w.add("is_available = TRUE")
	}

	sb := strings.Builder{}
	sb.WriteString(`SELECT ` + petColumns + ` FROM pets`)
	sb.WriteString(w.String())
	sb.WriteString(" ORDER BY created_at DESC, id DESC")
	if limit > 0 {
		sb.WriteString(" LIMIT " + w.arg(limit))
	}
	return r.queryPets(ctx, sb.String(), w.args...)
}

func (r *PetsRepo) ListSimilar(ctx context.Context, p pets.Pet, limit int) ([]pets.Pet, error) {
	w := &where{}
	w.add("is_available = TRUE")
	w.add("type = " + w.arg(string(p.Type)))
	w.add("id <> " + w.arg(p.ID))
	w.add(fmt.Sprintf("(size = %s OR breed = %s OR city = %s)",
		w.arg(string(p.Size)), w.arg(p.Breed), w.arg(p.Location.City)))

	sb := strings.Builder{}
	sb.WriteString(`SELECT ` + petColumns + ` FROM pets`)
	sb.WriteString(w.String())
	sb.WriteString(" ORDER BY created_at DESC, id DESC")
	if limit > 0 {
		sb.WriteString(" LIMIT " + w.arg(limit))
	}
	return r.queryPets(ctx, sb.String(), w.args...)
}

func (r *PetsRepo) queryPets(ctx context.Context, q string, args ...any) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanPet(s scanner) (pets.Pet, error) {
	var (
		p      pets.Pet
		typ    string
		size   string
		gender string
		images []byte
	)
	err := s.Scan(
		&p.ID, &p.ShelterID, &p.Name, &typ, &p.Breed, &p.Age.Years, &p.Age.Months, &size, &gender, &p.Color,
		&p.Description, &images, &p.Location.City, &p.Location.State, &p.Location.ZipCode, &p.AdoptionFee,
		&p.GoodWith.Children, &p.GoodWith.Dogs, &p.GoodWith.Cats,
		&p.IsAvailable, &p.Views, &p.Saves, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return pets.Pet{}, err
	}
	p.Type = pets.Type(typ)
	p.Size = pets.Size(size)
	p.Gender = pets.Gender(gender)

	if p.Images, err = decodeImages(images); err != nil {
		return pets.Pet{}, err
	}
	return p, nil
}

func encodeImages(images []pets.Image) ([]byte, error) {
	rows := make([]imageRow, 0, len(images))
	for _, img := range images {
		rows = append(rows, imageRow{URL: img.URL, Caption: img.Caption, IsPrimary: img.IsPrimary})
	}
	return json.Marshal(rows)
}

func decodeImages(b []byte) ([]pets.Image, error) {
	if len(b) == 0 {
		return nil, nil
	}
	var rows []imageRow
	if err := json.Unmarshal(b, &rows); err != nil {
		return nil, fmt.Errorf("decode images: %w", err)
	}
	out := make([]pets.Image, 0, len(rows))
	for _, r := range rows {
		out = append(out, pets.Image{URL: r.URL, Caption: r.Caption, IsPrimary: r.IsPrimary})
	}
	return out, nil
}

// expectOne convierte "0 filas afectadas" en notFound.
func expectOne(res sql.Result, err error, notFound error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return notFound
	}
	return nil
}

package postgres

import (
	"context"
	"database/sql"
	"errors"

	"pet-adoption-marketplace/internal/domain/favorites"
	"pet-adoption-marketplace/internal/domain/pets"
)

type FavoritesRepo struct {
	db *sql.DB
}

func NewFavoritesRepo(db *sql.DB) *FavoritesRepo {
	return &FavoritesRepo{db: db}
}

// Toggle mueve la fila de saved_pets y el contador pets.saves en la misma transacción.
func (r *FavoritesRepo) Toggle(ctx context.Context, userID, petID string) (favorites.ToggleResult, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return favorites.ToggleResult{}, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `DELETE FROM saved_pets WHERE user_id = $1 AND pet_id = $2`, userID, petID)
	if err != nil {
		return favorites.ToggleResult{}, err
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return favorites.ToggleResult{}, err
	}

	saved := removed == 0
	delta := -1
	if saved {
		res, err = tx.ExecContext(ctx, `
			INSERT INTO saved_pets (user_id, pet_id)
			SELECT $1, id FROM pets WHERE id = $2
			ON CONFLICT DO NOTHING
		`, userID, petID)
		if err != nil {
			return favorites.ToggleResult{}, err
		}
		inserted, err := res.RowsAffected()
		if err != nil {
			return favorites.ToggleResult{}, err
		}
		// 0 filas: la mascota no existe (lo resuelve el UPDATE) o un toggle concurrente ya la guardó.
		delta = int(inserted)
	}

	var total int
	err = tx.QueryRowContext(ctx, `
		UPDATE pets SET saves = GREATEST(saves + $2, 0)
		WHERE id = $1
		RETURNING saves
	`, petID, delta).Scan(&total)
	if errors.Is(err, sql.ErrNoRows) {
		return favorites.ToggleResult{}, pets.ErrNotFound
	}
	if err != nil {
		return favorites.ToggleResult{}, err
	}

	if err := tx.Commit(); err != nil {
		return favorites.ToggleResult{}, err
	}
	return favorites.ToggleResult{Saved: saved, TotalSaves: total}, nil
}

// ListSaved devuelve las mascotas guardadas, la más reciente primero.
func (r *FavoritesRepo) ListSaved(ctx context.Context, userID string) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT p.id, p.shelter_id, p.name, p.type, p.breed, p.age_years, p.age_months, p.size, p.gender, p.color,
			p.description, p.images, p.city, p.state, p.zip_code, p.adoption_fee,
			p.good_with_children, p.good_with_dogs, p.good_with_cats,
			p.is_available, p.views, p.saves, p.created_at, p.updated_at
		FROM saved_pets s
		JOIN pets p ON p.id = s.pet_id
		WHERE s.user_id = $1
		ORDER BY s.created_at DESC, p.id DESC
	`, userID)
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

func (r *FavoritesRepo) Count(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM saved_pets WHERE user_id = $1`, userID).Scan(&n)
	return n, err
}

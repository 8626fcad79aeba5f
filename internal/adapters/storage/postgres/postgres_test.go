package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"pet-adoption-marketplace/internal/domain/applications"
	"pet-adoption-marketplace/internal/domain/appointments"
	"pet-adoption-marketplace/internal/domain/listing"
	"pet-adoption-marketplace/internal/domain/pets"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var petColumnNames = []string{
	"id", "shelter_id", "name", "type", "breed", "age_years", "age_months", "size", "gender", "color",
	"description", "images", "city", "state", "zip_code", "adoption_fee",
	"good_with_children", "good_with_dogs", "good_with_cats",
	"is_available", "views", "saves", "created_at", "updated_at",
}

func newMock(t *testing.T) (sqlmock.Sqlmock, func() *PetsRepo) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return mock, func() *PetsRepo { return NewPetsRepo(db) }
}

func petRow(rows *sqlmock.Rows, id, name string, saves int) *sqlmock.Rows {
	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	return rows.AddRow(
		id, "shelter-1", name, "dog", "Labrador", 2, 3, "large", "male", "black",
		"friendly", []byte(`[{"url":"https://img/1.jpg","isPrimary":true}]`), "Austin", "TX", "78701", 150.0,
		true, true, false,
		true, 10, saves, now, now,
	)
}

func TestPetsRepo_List_BuildsFilteredPage(t *testing.T) {
	mock, repo := newMock(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM pets WHERE is_available = \$1 AND type = \$2 AND breed ILIKE \$3`).
		WithArgs(true, "dog", "%lab\\_%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(13))
	mock.ExpectQuery(`FROM pets WHERE .* ORDER BY views DESC, id DESC LIMIT \$4 OFFSET \$5`).
		WithArgs(true, "dog", "%lab\\_%", 12, 12).
		WillReturnRows(petRow(sqlmock.NewRows(petColumnNames), "pet-13", "Rex", 1))

	available := true
	f := pets.Filter{Available: &available, Type: pets.TypeDog, Breed: "lab_"}
	items, total, err := repo().List(context.Background(), f, listing.Params{Page: 2, Limit: 12, SortBy: "views", SortDesc: true})
	require.NoError(t, err)

	assert.Equal(t, 13, total)
	require.Len(t, items, 1)
	assert.Equal(t, "Rex", items[0].Name)
	assert.Equal(t, pets.TypeDog, items[0].Type)
	assert.Equal(t, "https://img/1.jpg", items[0].PrimaryImage())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPetsRepo_List_PageBeyondTotalSkipsSelect(t *testing.T) {
	mock, repo := newMock(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM pets`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	items, total, err := repo().List(context.Background(), pets.Filter{}, listing.Params{Page: 5, Limit: 12, SortBy: "createdAt"})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Empty(t, items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPetsRepo_List_AgeBracketAndUnknownSort(t *testing.T) {
	mock, repo := newMock(t)

	mock.ExpectQuery(`FROM pets WHERE \(age_years <= 1 OR \(age_years = 2 AND age_months <= 6\)\)`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`ORDER BY created_at ASC, id ASC LIMIT \$1 OFFSET \$2`).
		WithArgs(10, 0).
		WillReturnRows(petRow(sqlmock.NewRows(petColumnNames), "pet-1", "Pup", 0))

	_, _, err := repo().List(context.Background(), pets.Filter{Age: pets.AgeYoung}, listing.Params{Page: 1, Limit: 10, SortBy: "password"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPetsRepo_IncrementViews_SingleStatement(t *testing.T) {
	mock, repo := newMock(t)

	mock.ExpectExec(`UPDATE pets SET views = views \+ 1 WHERE id IN \(\$1,\$2,\$3\)`).
		WithArgs("a", "b", "c").
		WillReturnResult(sqlmock.NewResult(0, 3))

	require.NoError(t, repo().IncrementViews(context.Background(), []string{"a", "b", "c"}))
	require.NoError(t, repo().IncrementViews(context.Background(), nil))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPetsRepo_Update_LeavesAvailabilityAlone(t *testing.T) {
	mock, repo := newMock(t)
	now := time.Date(2025, 5, 2, 9, 0, 0, 0, time.UTC)

	mock.ExpectExec(`good_with_cats = \$18,\s+updated_at = \$19\s+WHERE id = \$1`).
		WithArgs("p1", "Rex", "dog", "Labrador", 3, 0, "large", "male", "black", "calm",
			sqlmock.AnyArg(), "Austin", "TX", "78701", 150.0, true, true, false, now).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo().Update(context.Background(), pets.Pet{
		ID: "p1", Name: "Rex", Type: pets.TypeDog, Breed: "Labrador", Age: pets.Age{Years: 3},
		Size: pets.SizeLarge, Gender: pets.GenderMale, Color: "black", Description: "calm",
		Location:    pets.Location{City: "Austin", State: "TX", ZipCode: "78701"},
		AdoptionFee: 150, GoodWith: pets.GoodWith{Children: true, Dogs: true},
		IsAvailable: true, UpdatedAt: now,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPetsRepo_GetByID_NotFound(t *testing.T) {
	mock, repo := newMock(t)

	mock.ExpectQuery(`FROM pets WHERE id = \$1`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(petColumnNames))

	_, err := repo().GetByID(context.Background(), "missing")
	assert.True(t, errors.Is(err, pets.ErrNotFound))
}

func TestFavoritesRepo_Toggle(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewFavoritesRepo(db)

	t.Run("save", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM saved_pets`).WithArgs("u1", "p1").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`INSERT INTO saved_pets`).WithArgs("u1", "p1").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`UPDATE pets SET saves = GREATEST\(saves \+ \$2, 0\)`).
			WithArgs("p1", 1).
			WillReturnRows(sqlmock.NewRows([]string{"saves"}).AddRow(4))
		mock.ExpectCommit()

		res, err := repo.Toggle(context.Background(), "u1", "p1")
		require.NoError(t, err)
		assert.Equal(t, true, res.Saved)
		assert.Equal(t, 4, res.TotalSaves)
	})

	t.Run("unsave", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM saved_pets`).WithArgs("u1", "p1").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`UPDATE pets SET saves`).
			WithArgs("p1", -1).
			WillReturnRows(sqlmock.NewRows([]string{"saves"}).AddRow(0))
		mock.ExpectCommit()

		res, err := repo.Toggle(context.Background(), "u1", "p1")
		require.NoError(t, err)
		assert.False(t, res.Saved)
		assert.Equal(t, 0, res.TotalSaves)
	})

	t.Run("missing pet rolls back", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM saved_pets`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec(`INSERT INTO saved_pets`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`UPDATE pets SET saves`).
			WithArgs("ghost", 0).
			WillReturnRows(sqlmock.NewRows([]string{"saves"}))
		mock.ExpectRollback()

		_, err := repo.Toggle(context.Background(), "u1", "ghost")
		assert.True(t, errors.Is(err, pets.ErrNotFound))
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentsRepo_Create_SlotConflictFromUniqueIndex(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO appointments`).
		WillReturnError(&pgconn.PgError{Code: codeUniqueViolation, ConstraintName: constraintActiveSlot})

	err = NewAppointmentsRepo(db).Create(context.Background(), appointments.Appointment{
		ID: "a1", UserID: "u1", ProviderID: "prov-1", Date: "2025-06-01", Time: "10:00",
		Status: appointments.StatusScheduled,
	})
	assert.True(t, errors.Is(err, appointments.ErrSlotConflict))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationsRepo_Create_DuplicateFromUniqueIndex(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO applications`).
		WillReturnError(&pgconn.PgError{Code: codeUniqueViolation, ConstraintName: constraintActiveApplication})

	err = NewApplicationsRepo(db).Create(context.Background(), applications.Application{
		ID: "app-1", PetID: "p1", ApplicantID: "u1", Status: applications.StatusPending,
	})
	assert.True(t, errors.Is(err, applications.ErrDuplicateApplication))
}

func TestApplicationsRepo_UpdateStatus_CompareAndSet(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewApplicationsRepo(db)

	a := applications.Application{ID: "app-1", Status: applications.StatusUnderReview, UpdatedAt: time.Now()}

	mock.ExpectExec(`UPDATE applications .* WHERE id = \$1 AND status = \$2`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.UpdateStatus(context.Background(), a, applications.StatusPending))

	mock.ExpectExec(`UPDATE applications`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT EXISTS`).WithArgs("app-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	err = repo.UpdateStatus(context.Background(), a, applications.StatusPending)
	assert.True(t, errors.Is(err, applications.ErrInvalidTransition))

	mock.ExpectExec(`UPDATE applications`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`SELECT EXISTS`).WithArgs("app-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	err = repo.UpdateStatus(context.Background(), a, applications.StatusPending)
	assert.True(t, errors.Is(err, applications.ErrNotFound))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicationsRepo_HasActive(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`pet_id = \$1 AND applicant_id = \$2 AND status IN \(\$3,\$4,\$5\)`).
		WithArgs("p1", "u1", "pending", "under-review", "approved").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := NewApplicationsRepo(db).HasActive(context.Background(), "p1", "u1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMigrateURL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/app?sslmode=disable", migrateURL("postgres://u:p@db:5432/app?sslmode=disable"))
	assert.Equal(t, "pgx5://db/app", migrateURL("postgresql://db/app"))
	assert.Equal(t, "pgx5://db/app", migrateURL("pgx5://db/app"))
}

func TestLikePattern_EscapesWildcards(t *testing.T) {
	assert.Equal(t, `%50\% off\_now%`, likePattern(" 50% off_now "))
}

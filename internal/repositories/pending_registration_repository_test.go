package repositories

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nusaauth/internal/models"
)

func TestPendingRegistrationRepository_CreateEmailTaken(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	// параллельный register успел первым: unique violation по email
	mock.ExpectQuery(`INSERT INTO pending_registrations`).
		WithArgs("p1", "Aisha", "a@x.com", nil, "$2a$hash").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "pending_registrations_email_key"})

	repo := NewPendingRegistrationRepository(db)
	err := repo.Create(&models.PendingRegistration{ID: "p1", FullName: "Aisha", Email: "a@x.com", PasswordHash: "$2a$hash"})
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPendingRegistrationRepository_PromoteToAccount(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO accounts`).
		WithArgs("acc1", "Aisha", "a@x.com", "$2a$hash").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
	mock.ExpectExec(`DELETE FROM otp_challenges WHERE pending_id=\$1`).
		WithArgs("p1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM pending_registrations WHERE id=\$1`).
		WithArgs("p1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewPendingRegistrationRepository(db)
	p := &models.PendingRegistration{ID: "p1", FullName: "Aisha", Email: "a@x.com", PasswordHash: "$2a$hash"}
	a := &models.Account{ID: "acc1", FullName: "Aisha", Email: "a@x.com", PasswordHash: "$2a$hash"}

	promoted, err := repo.PromoteToAccount(p, a)
	require.NoError(t, err)
	assert.True(t, promoted)
	assert.False(t, a.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPendingRegistrationRepository_PromoteLosesRace(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	// заявку уже удалил параллельный verify: rows=0 → откат, аккаунта нет
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO accounts`).
		WithArgs("acc1", "Aisha", "a@x.com", "$2a$hash").
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))
	mock.ExpectExec(`DELETE FROM otp_challenges`).
		WithArgs("p1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM pending_registrations`).
		WithArgs("p1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	repo := NewPendingRegistrationRepository(db)
	p := &models.PendingRegistration{ID: "p1", FullName: "Aisha", Email: "a@x.com", PasswordHash: "$2a$hash"}
	a := &models.Account{ID: "acc1", FullName: "Aisha", Email: "a@x.com", PasswordHash: "$2a$hash"}

	promoted, err := repo.PromoteToAccount(p, a)
	require.NoError(t, err)
	assert.False(t, promoted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPendingRegistrationRepository_PromoteLosesOnEmailUnique(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	// победитель уже закоммитил аккаунт: вставка падает на unique по email
	// ещё до гейта rows=0 — это тоже проигрыш гонки, а не ошибка хранилища
	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO accounts`).
		WithArgs("acc1", "Aisha", "a@x.com", "$2a$hash").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "accounts_email_key"})
	mock.ExpectRollback()

	repo := NewPendingRegistrationRepository(db)
	p := &models.PendingRegistration{ID: "p1", FullName: "Aisha", Email: "a@x.com", PasswordHash: "$2a$hash"}
	a := &models.Account{ID: "acc1", FullName: "Aisha", Email: "a@x.com", PasswordHash: "$2a$hash"}

	promoted, err := repo.PromoteToAccount(p, a)
	require.NoError(t, err)
	assert.False(t, promoted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

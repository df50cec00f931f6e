package repositories

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nusaauth/internal/models"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

var otpColumns = []string{"id", "pending_id", "code", "method", "expires_at", "verified_at", "created_at"}

func TestOtpChallengeRepository_ClaimNoMatch(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`UPDATE otp_challenges`).
		WithArgs(now, "p1", "123456").
		WillReturnError(sql.ErrNoRows)

	repo := NewOtpChallengeRepository(db)
	ch, err := repo.Claim("p1", "123456", now)
	require.NoError(t, err)
	assert.Nil(t, ch)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOtpChallengeRepository_ClaimMarksVerified(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	now := time.Now()
	expires := now.Add(4 * time.Minute)
	created := now.Add(-time.Minute)

	// граница включительная: expires_at >= now; гасим самый ранний живой
	mock.ExpectQuery(`verified_at IS NULL AND expires_at >= \$1`).
		WithArgs(now, "p1", "123456").
		WillReturnRows(sqlmock.NewRows(otpColumns).
			AddRow("ch1", "p1", "123456", "email", expires, now, created))

	repo := NewOtpChallengeRepository(db)
	ch, err := repo.Claim("p1", "123456", now)
	require.NoError(t, err)
	require.NotNil(t, ch)
	assert.Equal(t, "ch1", ch.ID)
	assert.Equal(t, "email", ch.Method)
	require.NotNil(t, ch.VerifiedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOtpChallengeRepository_GetLatestNoRows(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	mock.ExpectQuery(`ORDER BY created_at DESC`).
		WithArgs("p1", "email").
		WillReturnError(sql.ErrNoRows)

	repo := NewOtpChallengeRepository(db)
	ch, err := repo.GetLatest("p1", "email")
	require.NoError(t, err)
	assert.Nil(t, ch)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOtpChallengeRepository_Create(t *testing.T) {
	db, mock := newSQLMockDB(t)
	defer db.Close()

	expires := time.Now().Add(5 * time.Minute)
	mock.ExpectQuery(`INSERT INTO otp_challenges`).
		WithArgs("ch1", "p1", "123456", "email", expires).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	repo := NewOtpChallengeRepository(db)
	err := repo.Create(&models.OtpChallenge{
		ID:        "ch1",
		PendingID: "p1",
		Code:      "123456",
		Method:    "email",
		ExpiresAt: expires,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

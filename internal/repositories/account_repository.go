package repositories

import (
	"database/sql"
	"time"

	"nusaauth/internal/models"
)

type AccountRepository interface {
	Create(a *models.Account) error
	GetByID(id string) (*models.Account, error)
	GetByEmail(email string) (*models.Account, error)
	UpdatePassword(id, passwordHash string) error

	// reset helpers
	SetResetToken(id, tokenHash string, expiresAt time.Time) error
	ListWithLiveResetTokens(now time.Time) ([]*models.Account, error)
	CompleteReset(id, newPasswordHash, expectedTokenHash string) (bool, error)
}

type accountRepository struct {
	DB *sql.DB
}

func NewAccountRepository(db *sql.DB) AccountRepository {
	return &accountRepository{DB: db}
}

func (r *accountRepository) Create(a *models.Account) error {
	const q = `
		INSERT INTO accounts (id, full_name, email, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`
	return r.DB.QueryRow(q, a.ID, a.FullName, a.Email, a.PasswordHash).Scan(&a.CreatedAt)
}

func (r *accountRepository) GetByID(id string) (*models.Account, error) {
	return r.getOne(`WHERE id = $1`, id)
}

func (r *accountRepository) GetByEmail(email string) (*models.Account, error) {
	return r.getOne(`WHERE email = $1`, email)
}

func (r *accountRepository) getOne(where string, arg any) (*models.Account, error) {
	q := `
		SELECT id, full_name, email, password_hash,
		       reset_token_hash, reset_token_expires_at, created_at
		FROM accounts ` + where
	a := &models.Account{}
	var (
		rth sql.NullString
		rte sql.NullTime
	)
	err := r.DB.QueryRow(q, arg).Scan(
		&a.ID, &a.FullName, &a.Email, &a.PasswordHash,
		&rth, &rte, &a.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if rth.Valid {
		s := rth.String
		a.ResetTokenHash = &s
	}
	if rte.Valid {
		t := rte.Time
		a.ResetTokenExpiresAt = &t
	}
	return a, nil
}

func (r *accountRepository) UpdatePassword(id, passwordHash string) error {
	_, err := r.DB.Exec(`UPDATE accounts SET password_hash=$1 WHERE id=$2`, passwordHash, id)
	return err
}

// ===== reset helpers =====

func (r *accountRepository) SetResetToken(id, tokenHash string, expiresAt time.Time) error {
	const q = `
		UPDATE accounts
		SET reset_token_hash=$1, reset_token_expires_at=$2
		WHERE id=$3
	`
	_, err := r.DB.Exec(q, tokenHash, expiresAt, id)
	return err
}

// ListWithLiveResetTokens — кандидаты на сброс: хэш проставлен и срок
// ещё не вышел (граница включительно: expires_at >= now).
func (r *accountRepository) ListWithLiveResetTokens(now time.Time) ([]*models.Account, error) {
	const q = `
		SELECT id, full_name, email, password_hash,
		       reset_token_hash, reset_token_expires_at, created_at
		FROM accounts
		WHERE reset_token_hash IS NOT NULL AND reset_token_expires_at >= $1
		ORDER BY created_at
	`
	rows, err := r.DB.Query(q, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []*models.Account
	for rows.Next() {
		a := &models.Account{}
		var (
			rth sql.NullString
			rte sql.NullTime
		)
		if err := rows.Scan(
			&a.ID, &a.FullName, &a.Email, &a.PasswordHash,
			&rth, &rte, &a.CreatedAt,
		); err != nil {
			return nil, err
		}
		if rth.Valid {
			s := rth.String
			a.ResetTokenHash = &s
		}
		if rte.Valid {
			t := rte.Time
			a.ResetTokenExpiresAt = &t
		}
		res = append(res, a)
	}
	return res, rows.Err()
}

// CompleteReset — меняет пароль и чистит reset-поля одним UPDATE.
// Условие по старому хэшу делает сброс одноразовым: параллельный
// победитель обнулит reset_token_hash, и у проигравшего rows=0.
func (r *accountRepository) CompleteReset(id, newPasswordHash, expectedTokenHash string) (bool, error) {
	const q = `
		UPDATE accounts
		SET password_hash=$1, reset_token_hash=NULL, reset_token_expires_at=NULL
		WHERE id=$2 AND reset_token_hash=$3
	`
	res, err := r.DB.Exec(q, newPasswordHash, id, expectedTokenHash)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
